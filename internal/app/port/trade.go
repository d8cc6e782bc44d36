package port

import (
	"context"

	"token_dashboard/internal/domain/entity"
)

// TradeOrchestrator runs one trade attempt at a time through the explicit
// phase machine: idle → estimating → validating → submitting →
// success/failed, with needsAssociation and pendingWalletConnect as the
// two interrupt states.
type TradeOrchestrator interface {
	// SetInput records the amount/direction and schedules a debounced price
	// estimate. Changing direction invalidates any pending estimate.
	SetInput(amount string, direction entity.TradeDirection)

	// Submit validates the current input and, when preconditions hold,
	// submits the trade. The returned state is the terminal state of this
	// submission attempt.
	Submit(ctx context.Context) entity.TradeState

	// AssociateAndResume runs the bounded association poll and, once the
	// association is observed, resumes the pending buy.
	AssociateAndResume(ctx context.Context) entity.TradeState

	// ResumePending re-submits the remembered trade intent after a wallet
	// connect; a no-op when nothing is pending.
	ResumePending(ctx context.Context) (entity.TradeState, bool)

	// State returns the current attempt state.
	State() entity.TradeState

	// Reset discards the current attempt and returns to idle.
	Reset()
}
