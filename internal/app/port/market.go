package port

import (
	"context"

	"token_dashboard/internal/domain/entity"
)

// MarketDataService loads the current market snapshot for a token through
// the provider fallback chain (HeliSwap pool, then custom AMM, then mock).
type MarketDataService interface {
	// Load never returns nil: when every provider fails it returns the
	// static mock dataset so callers always have displayable numbers.
	Load(ctx context.Context, tokenID string) *entity.MarketData
}

// AnalyticsService fetches the secondary dashboard sections. Each section
// is fetched independently; a failed section is returned empty.
type AnalyticsService interface {
	Refresh(ctx context.Context, tokenID string) *entity.AnalyticsBundle
}
