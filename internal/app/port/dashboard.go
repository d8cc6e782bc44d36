package port

import (
	"context"

	"token_dashboard/internal/domain/entity"
)

// DashboardService loads and refreshes the composed dashboard state for
// one token.
type DashboardService interface {
	// Open loads token info (terminal entity.ErrTokenNotFound on 404), then
	// market data and analytics, and starts the polling refreshers.
	Open(ctx context.Context, tokenName string) (*entity.DashboardState, error)

	// State returns a copy of the current state.
	State() *entity.DashboardState

	// RefreshMarket re-runs the market fetch immediately.
	RefreshMarket(ctx context.Context)

	// RecordInteraction posts a test/download interaction and refreshes the
	// affected sections.
	RecordInteraction(ctx context.Context, action string) error

	// UpdateSocials saves the creator-managed social links for the open
	// token. Fails when the caller is not the token's creator.
	UpdateSocials(ctx context.Context, links entity.SocialLinks) (*entity.SocialLinks, error)

	// Close stops the pollers.
	Close()
}

// SubscriptionService drives the subscription management flow against the
// payments backend.
type SubscriptionService interface {
	Overview(ctx context.Context) (*entity.SubscriptionOverview, error)
	ChangePlan(ctx context.Context, planID, billingCycle string) error
	Cancel(ctx context.Context, immediately bool) error
	CancelPlanChange(ctx context.Context) error
}
