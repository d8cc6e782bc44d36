package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"token_dashboard/internal/app/port"
	"token_dashboard/internal/domain/entity"
	"token_dashboard/internal/infrastructure/httpclient"
	"token_dashboard/pkg/metrics"
)

// walletServiceImpl implements port.WalletService. The in-memory session
// is the single source of truth while the process runs; the store only
// carries it across restarts within the TTL.
type walletServiceImpl struct {
	store  port.SessionStore
	mirror httpclient.MirrorClient
	hedera httpclient.HederaServiceClient
	logger port.Logger

	mu      sync.RWMutex
	session *entity.WalletSession
}

// NewWalletService creates a new instance of walletServiceImpl.
func NewWalletService(store port.SessionStore, mc httpclient.MirrorClient, hc httpclient.HederaServiceClient, l port.Logger) port.WalletService {
	return &walletServiceImpl{
		store:  store,
		mirror: mc,
		hedera: hc,
		logger: l,
	}
}

// Restore implements port.WalletService.
func (s *walletServiceImpl) Restore() (*entity.WalletSession, error) {
	sess, err := s.store.LoadSession()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()
	s.logger.Info("Wallet session restored", "accountId", sess.AccountID)
	return sess, nil
}

// Connect implements port.WalletService. The mirror resolution of the
// counterpart address form is best-effort: a mirror outage never blocks
// the connect.
func (s *walletServiceImpl) Connect(ctx context.Context, input string) (*entity.WalletSession, error) {
	input = strings.TrimSpace(input)

	var sess entity.WalletSession
	switch {
	case entity.IsHederaAccountID(input):
		sess.AccountID = input
		if acct, err := s.mirror.AccountByID(ctx, input); err != nil {
			metrics.UpstreamRequestsTotal.WithLabelValues("mirror_account", "error").Inc()
			s.logger.Warn("Mirror lookup by account id failed, connecting without EVM alias", "accountId", input, "error", err)
		} else {
			metrics.UpstreamRequestsTotal.WithLabelValues("mirror_account", "ok").Inc()
			if acct.EVMAddress != "" {
				if evm, err := entity.NormalizeEVMAddress(acct.EVMAddress); err == nil {
					sess.EVM = evm
				}
			}
		}
	case entity.IsEVMAddress(input):
		evm, err := entity.NormalizeEVMAddress(input)
		if err != nil {
			return nil, err
		}
		sess.EVM = evm
		acct, err := s.mirror.AccountByEVM(ctx, evm)
		if err != nil {
			metrics.UpstreamRequestsTotal.WithLabelValues("mirror_account", "error").Inc()
			return nil, fmt.Errorf("failed to resolve account for %s: %w", evm, err)
		}
		metrics.UpstreamRequestsTotal.WithLabelValues("mirror_account", "ok").Inc()
		sess.AccountID = acct.Account
	default:
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidWalletAddress, input)
	}

	if sess.AccountID == "" {
		return nil, fmt.Errorf("%w: could not resolve a Hedera account for %q", entity.ErrInvalidWalletAddress, input)
	}

	if err := s.store.SaveSession(sess); err != nil {
		s.logger.Warn("Failed to persist wallet session", "accountId", sess.AccountID, "error", err)
	}

	s.mu.Lock()
	s.session = &sess
	s.mu.Unlock()
	s.logger.Info("Wallet connected", "accountId", sess.AccountID, "evm", sess.EVM)
	return &sess, nil
}

// Disconnect implements port.WalletService.
func (s *walletServiceImpl) Disconnect() error {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
	if err := s.store.ClearSession(); err != nil {
		return err
	}
	s.logger.Info("Wallet disconnected")
	return nil
}

// Session implements port.WalletService.
func (s *walletServiceImpl) Session() *entity.WalletSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	copied := *s.session
	return &copied
}

// TokenBalance implements port.WalletService. The balance endpoint returns
// base units; the result is scaled by the reported decimals (8 when the
// server omits them).
func (s *walletServiceImpl) TokenBalance(ctx context.Context, tokenID string) (float64, error) {
	sess := s.Session()
	if sess == nil {
		return 0, entity.ErrNoWallet
	}

	tokenAddress, err := entity.TokenEVMAddress(tokenID)
	if err != nil {
		return 0, err
	}

	account := sess.EVM
	if account == "" {
		account = sess.AccountID
	}

	resp, err := s.hedera.TokenBalance(ctx, tokenAddress, account)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("token_balance", "error").Inc()
		return 0, err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("token_balance", "ok").Inc()
	if !resp.Success {
		return 0, fmt.Errorf("balance lookup failed for %s", account)
	}

	decimals := resp.Decimals
	if decimals <= 0 {
		decimals = 8
	}
	return resp.Balance / math.Pow10(decimals), nil
}
