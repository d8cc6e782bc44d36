package entity

import "errors"

// Sentinel errors shared across services and handlers.
var (
	// ErrTokenNotFound means the token lookup returned 404. Terminal for the
	// dashboard: no further market or analytics fetches should run.
	ErrTokenNotFound = errors.New("token not found")

	// ErrTokenUnavailable covers non-404 lookup failures and success:false
	// bodies. The caller may retry.
	ErrTokenUnavailable = errors.New("token temporarily unavailable")

	// ErrNoSession means no wallet session is persisted, or the persisted one
	// expired and was discarded.
	ErrNoSession = errors.New("no wallet session")

	// ErrNoWallet means a trade was submitted without a connected wallet.
	ErrNoWallet = errors.New("no wallet connected")

	// ErrNotAssociated means the account has not opted in to hold this token.
	ErrNotAssociated = errors.New("account not associated with token")

	// ErrAssociationTimeout means the bounded association poll gave up before
	// the association was observed.
	ErrAssociationTimeout = errors.New("association not detected in time")

	// ErrInvalidWalletAddress means the input is neither a Hedera account id
	// nor a valid EVM address.
	ErrInvalidWalletAddress = errors.New("invalid wallet address")
)
