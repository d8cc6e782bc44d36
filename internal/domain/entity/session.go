package entity

import "time"

// WalletSessionTTL is how long a persisted wallet session stays valid.
const WalletSessionTTL = 60 * time.Minute

// WalletSession is the short-lived persisted wallet identity. At most one
// session exists per state directory; no server-side record backs it.
type WalletSession struct {
	AccountID string `json:"accountId"`
	EVM       string `json:"evm,omitempty"`
	SavedAt   int64  `json:"savedAt"` // unix milliseconds
}

// Expired reports whether the session is older than ttl at the given time.
func (s WalletSession) Expired(now time.Time, ttl time.Duration) bool {
	saved := time.UnixMilli(s.SavedAt)
	return s.SavedAt <= 0 || now.Sub(saved) >= ttl
}
