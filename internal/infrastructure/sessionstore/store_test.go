package sessionstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"token_dashboard/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), entity.WalletSessionTTL, nopLogger{})
	require.NoError(t, err)
	return store
}

func TestSessionRoundTrip(t *testing.T) {
	store := newTestStore(t)

	err := store.SaveSession(entity.WalletSession{AccountID: "0.0.9001", EVM: "0x1111111111111111111111111111111111111111"})
	require.NoError(t, err)

	loaded, err := store.LoadSession()
	require.NoError(t, err)
	assert.Equal(t, "0.0.9001", loaded.AccountID)
	assert.NotZero(t, loaded.SavedAt, "SavedAt is stamped on save")
}

func TestLoadSessionMissingFile(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LoadSession()
	assert.ErrorIs(t, err, entity.ErrNoSession)
}

func TestExpiredSessionIsDeleted(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveSession(entity.WalletSession{AccountID: "0.0.9001"}))

	store.now = func() time.Time { return time.Now().Add(entity.WalletSessionTTL + time.Minute) }

	_, err := store.LoadSession()
	assert.ErrorIs(t, err, entity.ErrNoSession)

	_, statErr := os.Stat(store.sessionPath())
	assert.True(t, os.IsNotExist(statErr), "expired session file must be removed")
}

func TestCorruptSessionIsDiscarded(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.sessionPath(), []byte("{not json"), 0o600))

	_, err := store.LoadSession()
	assert.ErrorIs(t, err, entity.ErrNoSession)

	_, statErr := os.Stat(store.sessionPath())
	assert.True(t, os.IsNotExist(statErr))
}

func TestClearSessionIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.ClearSession())

	require.NoError(t, store.SaveSession(entity.WalletSession{AccountID: "0.0.9001"}))
	require.NoError(t, store.ClearSession())
	require.NoError(t, store.ClearSession())
}

func TestPrefsRoundTripAndClear(t *testing.T) {
	store := newTestStore(t)

	assert.True(t, store.LoadPrefs().Empty())

	prefs := entity.CheckoutPrefs{SelectedPlanID: "pro", BillingCycle: "yearly", IsChangingPlan: true}
	require.NoError(t, store.SavePrefs(prefs))

	loaded := store.LoadPrefs()
	assert.Equal(t, prefs, loaded)

	require.NoError(t, store.ClearPrefs())
	assert.True(t, store.LoadPrefs().Empty())
}

func TestStoreCreatesStateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	_, err := NewFileStore(dir, entity.WalletSessionTTL, nopLogger{})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
