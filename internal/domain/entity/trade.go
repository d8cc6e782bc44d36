package entity

import (
	"fmt"
	"strconv"
)

// TradeDirection says whether the user is buying tokens with HBAR or
// selling tokens for HBAR.
type TradeDirection string

const (
	DirectionBuy  TradeDirection = "buy"
	DirectionSell TradeDirection = "sell"
)

// Valid reports whether d is one of the two known directions.
func (d TradeDirection) Valid() bool {
	return d == DirectionBuy || d == DirectionSell
}

// DefaultSlippageBps matches the fixed slippage applied when the user does
// not override it (35%).
const DefaultSlippageBps = 35

// TradeRequest is the ephemeral user-entered trade intent. It is discarded
// after a successful submission and kept for retry after a failed one.
type TradeRequest struct {
	Direction TradeDirection `json:"direction"`
	Amount    string         `json:"amount"`
	Slippage  int            `json:"slippage"`
}

// Validate checks the request before any network call is made.
func (r TradeRequest) Validate() error {
	if !r.Direction.Valid() {
		return fmt.Errorf("unknown trade direction %q", r.Direction)
	}
	amt, err := strconv.ParseFloat(r.Amount, 64)
	if err != nil || amt <= 0 {
		return fmt.Errorf("invalid trade amount %q", r.Amount)
	}
	if r.Slippage < 0 || r.Slippage > 100 {
		return fmt.Errorf("slippage %d out of range", r.Slippage)
	}
	return nil
}

// TradePhase is the explicit per-attempt trade state. One tagged value
// replaces the boolean combination the flow would otherwise need, so
// impossible states cannot be represented.
type TradePhase string

const (
	TradeIdle                 TradePhase = "idle"
	TradeEstimating           TradePhase = "estimating"
	TradeValidating           TradePhase = "validating"
	TradeNeedsAssociation     TradePhase = "needsAssociation"
	TradePendingWalletConnect TradePhase = "pendingWalletConnect"
	TradeSubmitting           TradePhase = "submitting"
	TradeSuccess              TradePhase = "success"
	TradeFailed               TradePhase = "failed"
)

// TradeState is the observable state of the current trade attempt.
type TradeState struct {
	Phase          TradePhase   `json:"phase"`
	Request        TradeRequest `json:"request"`
	EstimatedPrice string       `json:"estimatedPrice"`
	// AssociationURL is set while Phase is needsAssociation; opening it in
	// the user's wallet lets them complete the association.
	AssociationURL string `json:"associationUrl,omitempty"`
	// TransactionHash is set on success.
	TransactionHash string `json:"transactionHash,omitempty"`
	// Error carries the server-provided failure message on failed.
	Error string `json:"error,omitempty"`
}
