package entity

import (
	"math"
	"sort"
)

// Candle is one OHLCV point of the token's price series.
type Candle struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// TradeSide is the direction of an executed trade, if known.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
)

// TradePoint is one executed trade from the analytics feed.
type TradePoint struct {
	Time      int64     `json:"time"`
	Price     float64   `json:"price"`
	Hbar      float64   `json:"hbar,omitempty"`
	Token     float64   `json:"token,omitempty"`
	Side      TradeSide `json:"side,omitempty"`
	MarketCap float64   `json:"mc,omitempty"`
}

func finitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// SanitizeCandles drops rows with any non-finite or non-positive OHLC value
// or with high < low, and returns the survivors sorted ascending by
// timestamp. Invalid OHLC rows make the chart look stuck, so they are
// filtered before storage rather than at render time.
func SanitizeCandles(in []Candle) []Candle {
	out := make([]Candle, 0, len(in))
	for _, c := range in {
		if !finitePositive(c.Open) || !finitePositive(c.High) ||
			!finitePositive(c.Low) || !finitePositive(c.Close) {
			continue
		}
		if c.High < c.Low {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out
}

// SanitizeTrades drops trades with a non-finite or non-positive price and
// returns the survivors sorted ascending by time.
func SanitizeTrades(in []TradePoint) []TradePoint {
	out := make([]TradePoint, 0, len(in))
	for _, t := range in {
		if !finitePositive(t.Price) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}
