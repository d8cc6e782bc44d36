package port

import (
	"context"

	"token_dashboard/internal/domain/entity"
)

// WalletService owns the in-memory wallet identity and its persisted
// session.
type WalletService interface {
	// Restore rehydrates the session from the store; entity.ErrNoSession
	// is returned when nothing valid is persisted.
	Restore() (*entity.WalletSession, error)

	// Connect accepts a Hedera account id or an EVM address, resolves the
	// other form via the mirror node (best-effort) and persists the session.
	Connect(ctx context.Context, input string) (*entity.WalletSession, error)

	// Disconnect clears the in-memory identity and the persisted session.
	// No backend endpoint is called.
	Disconnect() error

	// Session returns the active session, or nil when disconnected.
	Session() *entity.WalletSession

	// TokenBalance returns the connected wallet's balance of the given
	// token, in display units.
	TokenBalance(ctx context.Context, tokenID string) (float64, error)
}

// SessionStore persists the wallet session and checkout prefs.
type SessionStore interface {
	SaveSession(sess entity.WalletSession) error
	LoadSession() (*entity.WalletSession, error)
	ClearSession() error
	SavePrefs(prefs entity.CheckoutPrefs) error
	LoadPrefs() entity.CheckoutPrefs
	ClearPrefs() error
}
