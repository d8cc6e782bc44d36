package sessionstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"token_dashboard/internal/app/port"
	"token_dashboard/internal/domain/entity"
)

const (
	sessionFileName = "walletSession.json"
	prefsFileName   = "checkoutPrefs.json"
)

// FileStore persists the wallet session and checkout prefs as JSON files
// under a state directory. There is no cross-process locking; concurrent
// writers are not coordinated, matching the browser-storage semantics this
// replaces.
type FileStore struct {
	dir    string
	ttl    time.Duration
	logger port.Logger
	now    func() time.Time
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string, ttl time.Duration, logger port.Logger) (*FileStore, error) {
	if ttl <= 0 {
		ttl = entity.WalletSessionTTL
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir, ttl: ttl, logger: logger, now: time.Now}, nil
}

func (s *FileStore) sessionPath() string { return filepath.Join(s.dir, sessionFileName) }
func (s *FileStore) prefsPath() string   { return filepath.Join(s.dir, prefsFileName) }

// SaveSession persists the wallet session, stamping SavedAt if unset.
func (s *FileStore) SaveSession(sess entity.WalletSession) error {
	if sess.SavedAt == 0 {
		sess.SavedAt = s.now().UnixMilli()
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet session: %w", err)
	}
	if err := os.WriteFile(s.sessionPath(), data, 0o600); err != nil {
		return fmt.Errorf("failed to write wallet session: %w", err)
	}
	return nil
}

// LoadSession returns the persisted session if it is still within its TTL.
// An expired session is deleted and reported as entity.ErrNoSession. Parse
// errors are swallowed and treated as "no session".
func (s *FileStore) LoadSession() (*entity.WalletSession, error) {
	data, err := os.ReadFile(s.sessionPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, entity.ErrNoSession
		}
		return nil, fmt.Errorf("failed to read wallet session: %w", err)
	}

	var sess entity.WalletSession
	if err := json.Unmarshal(data, &sess); err != nil {
		s.logger.Warn("Discarding unreadable wallet session", "error", err)
		_ = os.Remove(s.sessionPath())
		return nil, entity.ErrNoSession
	}
	if sess.AccountID == "" || sess.Expired(s.now(), s.ttl) {
		s.logger.Info("Wallet session expired, clearing", "savedAt", sess.SavedAt)
		_ = os.Remove(s.sessionPath())
		return nil, entity.ErrNoSession
	}
	return &sess, nil
}

// ClearSession deletes the persisted session, if any.
func (s *FileStore) ClearSession() error {
	err := os.Remove(s.sessionPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear wallet session: %w", err)
	}
	return nil
}

// SavePrefs persists the checkout selection.
func (s *FileStore) SavePrefs(prefs entity.CheckoutPrefs) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout prefs: %w", err)
	}
	if err := os.WriteFile(s.prefsPath(), data, 0o600); err != nil {
		return fmt.Errorf("failed to write checkout prefs: %w", err)
	}
	return nil
}

// LoadPrefs returns the persisted checkout selection; a missing or
// unreadable file yields empty prefs.
func (s *FileStore) LoadPrefs() entity.CheckoutPrefs {
	var prefs entity.CheckoutPrefs
	data, err := os.ReadFile(s.prefsPath())
	if err != nil {
		return prefs
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		s.logger.Warn("Discarding unreadable checkout prefs", "error", err)
		_ = os.Remove(s.prefsPath())
		return entity.CheckoutPrefs{}
	}
	return prefs
}

// ClearPrefs deletes the persisted checkout selection, if any.
func (s *FileStore) ClearPrefs() error {
	err := os.Remove(s.prefsPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear checkout prefs: %w", err)
	}
	return nil
}
