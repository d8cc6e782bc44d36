package entity

// AnalyticsMetrics is the pool-level metrics block from the analytics feed.
type AnalyticsMetrics struct {
	Price        float64 `json:"price,omitempty"`
	MarketCap    float64 `json:"marketCap,omitempty"`
	Liquidity    float64 `json:"liquidity,omitempty"`
	TokenReserve float64 `json:"tokenReserve,omitempty"`
	WhbarReserve float64 `json:"whbarReserve,omitempty"`
}

// AnalyticsTrading is the 24h trading block from the analytics feed.
type AnalyticsTrading struct {
	PriceChange24h float64 `json:"priceChange24h"`
	Volume24h      float64 `json:"volume24h"`
	Trades24h      int64   `json:"trades24h"`
	Holders        int64   `json:"holders"`
}

// AnalyticsBundle groups the secondary, independently fetched dashboard
// sections. Any section may be empty after a refresh; one section failing
// never blocks the rest.
type AnalyticsBundle struct {
	Metrics        *AnalyticsMetrics `json:"metrics,omitempty"`
	Trading        *AnalyticsTrading `json:"trading,omitempty"`
	Candles        []Candle          `json:"candles,omitempty"`
	Trades         []TradePoint      `json:"trades,omitempty"`
	Interactions   InteractionCounts `json:"interactions"`
	LastBurn       *BurnRecord       `json:"lastBurn,omitempty"`
	BurnHistory    []BurnRecord      `json:"burnHistory,omitempty"`
	FeeFeed        []FeeFeedEntry    `json:"feeFeed,omitempty"`
	RecentActivity []ActivityItem    `json:"recentActivity,omitempty"`
}

// DashboardState is the full observable state for one token dashboard.
type DashboardState struct {
	TokenInfo     *TokenInfo       `json:"tokenInfo,omitempty"`
	ExtensionInfo *ExtensionInfo   `json:"extensionInfo,omitempty"`
	LogoURL       string           `json:"logoUrl,omitempty"`
	IsCreator     bool             `json:"isCreator"`
	Market        *MarketData      `json:"market,omitempty"`
	Analytics     *AnalyticsBundle `json:"analytics,omitempty"`
	LastUpdated   int64            `json:"lastUpdated"` // unix milliseconds
}

// SubscriptionOverview is the subscription page's aggregate: the current
// subscription plus any pending checkout selection and its plan record.
type SubscriptionOverview struct {
	Subscription *Subscription `json:"subscription,omitempty"`
	Prefs        CheckoutPrefs `json:"prefs"`
	SelectedPlan *Plan         `json:"selectedPlan,omitempty"`
}
