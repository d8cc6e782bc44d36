package entity

// MirrorAccount is the subset of a mirror-node account record this service
// reads for address resolution.
type MirrorAccount struct {
	Account    string `json:"account"`
	EVMAddress string `json:"evm_address"`
}

// MirrorAccountsPage is the list body of GET /api/v1/accounts.
type MirrorAccountsPage struct {
	Accounts []MirrorAccount `json:"accounts"`
}
