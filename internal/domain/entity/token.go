package entity

// SocialLinks holds the creator-managed social URLs for a token.
type SocialLinks struct {
	Twitter  string `json:"twitter,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	Discord  string `json:"discord,omitempty"`
}

// TokenFeatures holds the optional feature flags chosen at tokenization time.
type TokenFeatures struct {
	BundleOptIn       bool `json:"bundleOptIn"`
	EarlyBuyerAirdrop bool `json:"earlyBuyerAirdrop"`
	EnableDAOVoting   bool `json:"enableDaoVoting"`
}

// TokenInfo holds the identity and metadata of a tokenized extension.
// It is immutable from this service's perspective and loaded once per
// dashboard session.
type TokenInfo struct {
	TokenID             string         `json:"tokenId"`
	TokenName           string         `json:"tokenName"`
	TokenSymbol         string         `json:"tokenSymbol"`
	CreatorWallet       string         `json:"creatorWallet"`
	CreatorEmail        string         `json:"creatorEmail,omitempty"`
	TotalSupply         float64        `json:"totalSupply"`
	InitialPrice        float64        `json:"initialPrice"`
	Description         string         `json:"description"`
	LogoURL             string         `json:"logoUrl,omitempty"`
	ExtensionLink       string         `json:"extensionLink"`
	ExtensionID         string         `json:"extensionId"`
	SocialLinks         *SocialLinks   `json:"socialLinks,omitempty"`
	Features            *TokenFeatures `json:"features,omitempty"`
	HederaTransactionID string         `json:"hederaTransactionId"`
	CreatedAt           string         `json:"createdAt"`
	Status              string         `json:"status"`
}

// ExtensionFile describes one file bundled into a tokenized extension.
type ExtensionFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// ExtensionDetails holds the manifest-level description of an extension.
type ExtensionDetails struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

// ExtensionInfo is the optional, best-effort metadata for the extension
// behind a token. A missing ExtensionInfo never blocks the dashboard.
type ExtensionInfo struct {
	Title     string            `json:"title"`
	Details   *ExtensionDetails `json:"details,omitempty"`
	Files     []ExtensionFile   `json:"files,omitempty"`
	FileCount int               `json:"fileCount"`
}
