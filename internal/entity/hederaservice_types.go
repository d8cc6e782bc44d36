package entity

// Wire shapes for the Hedera service API (pools, quotes, trades, analytics).

// HeliswapPoolResponse is the enhanced heliswap-pool body.
type HeliswapPoolResponse struct {
	Success     bool   `json:"success"`
	PairAddress string `json:"pairAddress"`
	Reserves    struct {
		TokenReserve string `json:"tokenReserve"`
		WhbarReserve string `json:"whbarReserve"`
		TotalSupply  string `json:"totalSupply"`
	} `json:"reserves"`
	Pricing *struct {
		CurrentPrice string `json:"currentPrice"`
		PriceInUSD   string `json:"priceInUsd"`
		MarketCap    string `json:"marketCap"`
		Liquidity    string `json:"liquidity"`
	} `json:"pricing"`
	PoolInfo struct {
		Token0     string `json:"token0"`
		Token1     string `json:"token1"`
		IsToken0   bool   `json:"isToken0"`
		Factory    string `json:"factory"`
		Router     string `json:"router"`
		TradingURL string `json:"tradingUrl"`
	} `json:"poolInfo"`
	TokenInfo *struct {
		Address     string `json:"address"`
		Name        string `json:"name"`
		Symbol      string `json:"symbol"`
		Decimals    int    `json:"decimals"`
		TotalSupply string `json:"totalSupply"`
	} `json:"tokenInfo"`
	WhbarInfo *struct {
		Address  string `json:"address"`
		Name     string `json:"name"`
		Symbol   string `json:"symbol"`
		Decimals int    `json:"decimals"`
	} `json:"whbarInfo"`
	LastUpdated string `json:"lastUpdated"`
}

// RawCandle accepts both the short (t/o/h/l/c/v) and long key forms the
// analytics endpoint has been seen emitting.
type RawCandle struct {
	T      *float64 `json:"t"`
	Time   *float64 `json:"time"`
	O      *float64 `json:"o"`
	Open   *float64 `json:"open"`
	H      *float64 `json:"h"`
	High   *float64 `json:"high"`
	L      *float64 `json:"l"`
	Low    *float64 `json:"low"`
	C      *float64 `json:"c"`
	Close  *float64 `json:"close"`
	V      *float64 `json:"v"`
	Volume *float64 `json:"volume"`
}

// RawTrade is one executed trade row from the analytics feed.
type RawTrade struct {
	Time  *float64 `json:"time"`
	TsMs  *float64 `json:"tsMs"`
	Price float64  `json:"price"`
	Hbar  float64  `json:"hbar"`
	Token float64  `json:"token"`
	Side  string   `json:"side"`
	Mc    float64  `json:"mc"`
}

// TokenAnalyticsResponse is the token-analytics body.
type TokenAnalyticsResponse struct {
	Success   bool `json:"success"`
	Analytics *struct {
		CurrentMetrics *struct {
			Price        float64 `json:"price"`
			MarketCap    float64 `json:"marketCap"`
			Liquidity    float64 `json:"liquidity"`
			TokenReserve float64 `json:"tokenReserve"`
			WhbarReserve float64 `json:"whbarReserve"`
		} `json:"currentMetrics"`
		Trading *struct {
			PriceChange24h float64 `json:"priceChange24h"`
			Volume24h      float64 `json:"volume24h"`
			Trades24h      int64   `json:"trades24h"`
			Holders        int64   `json:"holders"`
		} `json:"trading"`
		Charts *struct {
			Candles []RawCandle `json:"candles"`
			PriceHistory []struct {
				Timestamp int64   `json:"timestamp"`
				Price     float64 `json:"price"`
				Volume    float64 `json:"volume"`
			} `json:"priceHistory"`
		} `json:"charts"`
		Trades []RawTrade `json:"trades"`
	} `json:"analytics"`
}

// CustomPoolResponse is the custom-pool body.
type CustomPoolResponse struct {
	Success  bool `json:"success"`
	PoolInfo struct {
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
	} `json:"poolInfo"`
	Reserves struct {
		TokenReserve string `json:"tokenReserve"`
		HbarReserve  string `json:"hbarReserve"`
	} `json:"reserves"`
	Status struct {
		IsGraduated   bool `json:"isGraduated"`
		TradingActive bool `json:"tradingActive"`
	} `json:"status"`
}

// CustomPriceResponse is the custom-price body.
type CustomPriceResponse struct {
	Success     bool   `json:"success"`
	PriceInHbar string `json:"priceInHbar"`
}

// HeliswapQuoteResponse is the heliswap-quote body.
type HeliswapQuoteResponse struct {
	Success bool `json:"success"`
	Quote   *struct {
		AmountOut string `json:"amountOut"`
		AmountIn  string `json:"amountIn"`
		MinOut    string `json:"minOut"`
	} `json:"quote"`
}

// AssociationCheckResponse is the check-association body.
type AssociationCheckResponse struct {
	Success    bool `json:"success"`
	Associated bool `json:"associated"`
}

// TradeOrder is the POST body for custom-buy / custom-sell. HbarAmount is
// set for buys, TokenAmount for sells; the backend derives min-out from
// Slippage when no explicit override is given.
type TradeOrder struct {
	TokenAddress        string `json:"tokenAddress"`
	HbarAmount          string `json:"hbarAmount,omitempty"`
	TokenAmount         string `json:"tokenAmount,omitempty"`
	Slippage            int    `json:"slippage"`
	UserAddress         string `json:"userAddress"`
	RecipientAccountID  string `json:"recipientAccountId,omitempty"`
	RecipientEVMAddress string `json:"recipientEvmAddress,omitempty"`
}

// TradeResult is the custom-buy / custom-sell body.
type TradeResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Error       string `json:"error"`
	Transaction *struct {
		Hash string `json:"hash"`
	} `json:"transaction"`
}

// InteractionsResponse is the token-interactions body.
type InteractionsResponse struct {
	Success bool `json:"success"`
	Counts  *struct {
		Tests          int64  `json:"tests"`
		Downloads      int64  `json:"downloads"`
		LastTestAt     string `json:"lastTestAt"`
		LastDownloadAt string `json:"lastDownloadAt"`
	} `json:"counts"`
	Recent []struct {
		Type      string  `json:"type"`
		User      string  `json:"user"`
		Timestamp string  `json:"timestamp"`
		Amount    float64 `json:"amount"`
	} `json:"recent"`
}

// InteractionRecordResponse is the body of POST token-interactions/{action}.
type InteractionRecordResponse struct {
	Success bool  `json:"success"`
	Count   int64 `json:"count"`
	Burned  bool  `json:"burned"`
	Burn    *struct {
		Amount float64 `json:"amount"`
	} `json:"burn"`
}

// BurnsResponse is the token-burns body.
type BurnsResponse struct {
	Success bool `json:"success"`
	Burns   []struct {
		CreatedAt          string  `json:"createdAt"`
		ReasonAction       string  `json:"reasonAction"`
		InteractionCountAt int64   `json:"interactionCountAt"`
		Status             string  `json:"status"`
		TxID               string  `json:"txId"`
		ConsensusTimestamp string  `json:"consensusTimestamp"`
		Amount             float64 `json:"amount"`
	} `json:"burns"`
}

// FeesResponse is the token-fees body.
type FeesResponse struct {
	Success bool `json:"success"`
	Recent  []struct {
		Timestamp      string  `json:"timestamp"`
		Creator        string  `json:"creator"`
		CreatorTokens  float64 `json:"creatorTokens"`
		PlatformTokens float64 `json:"platformTokens"`
		TokenDelta     float64 `json:"tokenDelta"`
	} `json:"recent"`
}

// BalanceResponse is the token-balance body. Balance is in base units.
type BalanceResponse struct {
	Success  bool    `json:"success"`
	Balance  float64 `json:"balance"`
	Decimals int     `json:"decimals"`
}
