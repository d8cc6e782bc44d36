package entity

// MarketProvider tags which pricing source produced a MarketData value.
type MarketProvider string

const (
	ProviderHeliswap  MarketProvider = "heliswap"
	ProviderCustomAmm MarketProvider = "customAmm"
	ProviderMock      MarketProvider = "mock"
)

// HeliswapReserves holds the raw pool reserves as reported by the DEX.
type HeliswapReserves struct {
	TokenReserve string `json:"tokenReserve"`
	WhbarReserve string `json:"whbarReserve"`
	TotalSupply  string `json:"totalSupply"`
}

// HeliswapPricing holds the derived pricing figures for a HeliSwap pool.
type HeliswapPricing struct {
	CurrentPrice string `json:"currentPrice"`
	PriceInUSD   string `json:"priceInUsd"`
	MarketCap    string `json:"marketCap"`
	Liquidity    string `json:"liquidity"`
}

// HeliswapPoolInfo identifies the pair contract and its routing endpoints.
type HeliswapPoolInfo struct {
	Token0     string `json:"token0"`
	Token1     string `json:"token1"`
	IsToken0   bool   `json:"isToken0"`
	Factory    string `json:"factory"`
	Router     string `json:"router"`
	TradingURL string `json:"tradingUrl"`
}

// HeliswapTokenMeta describes one side of a HeliSwap pair.
type HeliswapTokenMeta struct {
	Address     string `json:"address"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    int    `json:"decimals"`
	TotalSupply string `json:"totalSupply,omitempty"`
}

// HeliswapPool is the provider-specific sub-record carried by MarketData
// when pricing came from the HeliSwap DEX pool.
type HeliswapPool struct {
	PairAddress string             `json:"pairAddress"`
	Reserves    HeliswapReserves   `json:"reserves"`
	Pricing     HeliswapPricing    `json:"pricing"`
	PoolInfo    HeliswapPoolInfo   `json:"poolInfo"`
	TokenInfo   *HeliswapTokenMeta `json:"tokenInfo,omitempty"`
	WhbarInfo   *HeliswapTokenMeta `json:"whbarInfo,omitempty"`
	LastUpdated string             `json:"lastUpdated,omitempty"`
}

// CustomAmmPoolInfo is the bonding-curve state of the custom AMM.
type CustomAmmPoolInfo struct {
	ReserveToken   string `json:"reserveToken"`
	ReserveHBAR    string `json:"reserveHBAR"`
	StartPrice     string `json:"startPrice"`
	Slope          string `json:"slope"`
	Sold           string `json:"sold"`
	FeeBps         string `json:"feeBps"`
	CreatorFeeBps  string `json:"creatorFeeBps"`
	CreatorFeeAcc  string `json:"creatorFeeAcc"`
	PlatformFeeAcc string `json:"platformFeeAcc"`
	Graduated      bool   `json:"graduated"`
	Exists         bool   `json:"exists"`
}

// CustomAmmReserves holds the custom AMM reserves snapshot.
type CustomAmmReserves struct {
	TokenReserve string `json:"tokenReserve"`
	HbarReserve  string `json:"hbarReserve"`
}

// CustomAmmStatus reports the trading status of a bonding-curve pool.
type CustomAmmStatus struct {
	IsGraduated   bool `json:"isGraduated"`
	TradingActive bool `json:"tradingActive"`
}

// CustomAmmPriceInfo carries the last quoted prices for the pool.
type CustomAmmPriceInfo struct {
	CurrentPrice       string `json:"currentPrice"`
	PriceFor1000Tokens string `json:"priceFor1000Tokens"`
}

// CustomAmmPool is the provider-specific sub-record for the bonding-curve
// fallback provider.
type CustomAmmPool struct {
	PoolInfo  CustomAmmPoolInfo   `json:"poolInfo"`
	Reserves  CustomAmmReserves   `json:"reserves"`
	Status    CustomAmmStatus     `json:"status"`
	PriceInfo *CustomAmmPriceInfo `json:"priceInfo,omitempty"`
}

// MarketData is the current market snapshot for a token. It is replaced
// wholesale on every refresh; there are no merge semantics. Exactly one of
// Heliswap/CustomAmm is set for the matching Provider, neither for mock.
type MarketData struct {
	Provider       MarketProvider `json:"provider"`
	Price          float64        `json:"price"`
	PriceChange24h float64        `json:"priceChange24h"`
	MarketCap      float64        `json:"marketCap"`
	Volume24h      float64        `json:"volume24h"`
	Liquidity      float64        `json:"liquidity"`
	Holders        int64          `json:"holders"`
	TotalTrades    int64          `json:"totalTrades"`

	Heliswap  *HeliswapPool  `json:"heliswap,omitempty"`
	CustomAmm *CustomAmmPool `json:"customAmm,omitempty"`
}

// MockMarketData returns the static dataset used when no pricing provider
// has a pool for the token, so the dashboard always has displayable numbers.
func MockMarketData() *MarketData {
	return &MarketData{
		Provider:       ProviderMock,
		Price:          0.0042,
		PriceChange24h: 12.5,
		MarketCap:      125420,
		Volume24h:      8942,
		Liquidity:      45210,
		Holders:        234,
		TotalTrades:    1829,
	}
}
