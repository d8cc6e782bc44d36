package entity

// Wire shapes for the middleware REST API. Field names follow the server's
// snake_case payloads; services map these into domain entities at the fetch
// boundary.

// TokenizationRecord is the raw token record returned by the public
// tokenization lookup.
type TokenizationRecord struct {
	TokenID       string  `json:"token_id"`
	TokenName     string  `json:"token_name"`
	TokenSymbol   string  `json:"token_symbol"`
	CreatorWallet string  `json:"creator_wallet"`
	CreatorEmail  string  `json:"creator_email"`
	TotalSupply   float64 `json:"total_supply"`
	InitialPrice  float64 `json:"initial_price"`
	Description   string  `json:"description"`
	LogoURL       string  `json:"logo_url"`
	ExtensionLink string  `json:"extension_link"`
	ExtensionID   string  `json:"extension_id"`
	SocialLinks   *struct {
		Twitter  string `json:"twitter"`
		Telegram string `json:"telegram"`
		Discord  string `json:"discord"`
	} `json:"social_links"`
	Features *struct {
		BundleOptIn       bool `json:"bundle_opt_in"`
		EarlyBuyerAirdrop bool `json:"early_buyer_airdrop"`
		EnableDAOVoting   bool `json:"enable_dao_voting"`
	} `json:"features"`
	HederaTransactionID string `json:"hedera_transaction_id"`
	CreatedAt           string `json:"created_at"`
	Status              string `json:"status"`
}

// TokenizationResponse wraps the tokenization lookup body.
type TokenizationResponse struct {
	Success      bool                `json:"success"`
	Tokenization *TokenizationRecord `json:"tokenization"`
}

// ExtensionInfoResponse is the best-effort extension metadata body.
type ExtensionInfoResponse struct {
	Success          bool   `json:"success"`
	Title            string `json:"title"`
	ExtensionDetails *struct {
		Name        string   `json:"name"`
		Version     string   `json:"version"`
		Description string   `json:"description"`
		Permissions []string `json:"permissions"`
	} `json:"extension_details"`
	Files []struct {
		Name string `json:"name"`
		Size int64  `json:"size"`
	} `json:"files"`
	FileCount int `json:"file_count"`
}

// LogoResponse is the best-effort logo lookup body.
type LogoResponse struct {
	Success bool   `json:"success"`
	LogoURL string `json:"logo_url"`
}

// CreatorCheckResponse is the check-token-creator body.
type CreatorCheckResponse struct {
	Success   bool `json:"success"`
	IsCreator bool `json:"is_creator"`
}

// UpdateSocialsRequest is the POST body for update-socials.
type UpdateSocialsRequest struct {
	Twitter  string `json:"twitter,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	Discord  string `json:"discord,omitempty"`
}

// UpdateSocialsResponse echoes the persisted social links.
type UpdateSocialsResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	SocialLinks *struct {
		Twitter  string `json:"twitter"`
		Telegram string `json:"telegram"`
		Discord  string `json:"discord"`
	} `json:"social_links"`
}
