package service

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"sync"
	"time"

	"token_dashboard/internal/app/port"
	"token_dashboard/internal/domain/entity"
	wire "token_dashboard/internal/entity"
	"token_dashboard/internal/infrastructure/configloader"
	"token_dashboard/internal/infrastructure/httpclient"
	"token_dashboard/internal/pkg/utils"
	"token_dashboard/pkg/metrics"

	"github.com/cenkalti/backoff/v4"
)

// placeholderAccountID is the demo wallet id some upstream flows inject;
// it is never a real signer, so trades against it wait for a real connect.
const placeholderAccountID = "0.0.1234567"

// hbarDecimals is HBAR's base-unit precision (tinybars).
const hbarDecimals = 8

// tradeOrchestratorImpl implements port.TradeOrchestrator. It runs one
// attempt at a time; SetInput may be called freely while an attempt is in
// flight, but only the phase machine mutates Phase.
type tradeOrchestratorImpl struct {
	hedera httpclient.HederaServiceClient
	wallet port.WalletService
	cfg    *configloader.Config
	logger port.Logger

	// tokenFn reports the token currently on screen; marketFn its latest
	// market snapshot. Both are supplied by the dashboard wiring.
	tokenFn  func() string
	marketFn func() *entity.MarketData
	// refreshMarket is invoked (after a short settle delay) when a trade
	// lands, so the pool numbers catch up.
	refreshMarket func()

	mu       sync.Mutex
	state    entity.TradeState
	pending  *entity.TradeRequest
	estTimer *time.Timer
	estSeq   uint64
}

// NewTradeOrchestrator creates a new instance of tradeOrchestratorImpl.
func NewTradeOrchestrator(
	hc httpclient.HederaServiceClient,
	ws port.WalletService,
	cfg *configloader.Config,
	l port.Logger,
	tokenFn func() string,
	marketFn func() *entity.MarketData,
	refreshMarket func(),
) port.TradeOrchestrator {
	return &tradeOrchestratorImpl{
		hedera:        hc,
		wallet:        ws,
		cfg:           cfg,
		logger:        l,
		tokenFn:       tokenFn,
		marketFn:      marketFn,
		refreshMarket: refreshMarket,
		state:         entity.TradeState{Phase: entity.TradeIdle},
	}
}

// SetInput implements port.TradeOrchestrator. Each call re-arms the
// debounce timer; only the last input within the window is estimated.
func (s *tradeOrchestratorImpl) SetInput(amount string, direction entity.TradeDirection) {
	s.mu.Lock()

	if s.state.Request.Direction != "" && s.state.Request.Direction != direction {
		// A direction flip makes the previous estimate meaningless.
		s.state.EstimatedPrice = ""
	}
	s.state.Request.Amount = amount
	s.state.Request.Direction = direction
	if s.state.Request.Slippage == 0 {
		s.state.Request.Slippage = s.defaultSlippage()
	}

	if s.estTimer != nil {
		s.estTimer.Stop()
	}

	if _, err := strconv.ParseFloat(amount, 64); err != nil || amount == "" {
		s.state.EstimatedPrice = ""
		if s.state.Phase == entity.TradeEstimating {
			s.state.Phase = entity.TradeIdle
		}
		s.mu.Unlock()
		return
	}

	s.estSeq++
	seq := s.estSeq
	req := s.state.Request
	if s.state.Phase == entity.TradeIdle || s.state.Phase == entity.TradeEstimating {
		s.state.Phase = entity.TradeEstimating
	}
	debounce := time.Duration(s.cfg.Trade.DebounceMillis) * time.Millisecond
	s.estTimer = time.AfterFunc(debounce, func() { s.estimate(seq, req) })
	s.mu.Unlock()
}

// estimate runs one debounced price estimate. A stale seq means the user
// typed again after this timer was armed; its result is discarded.
func (s *tradeOrchestratorImpl) estimate(seq uint64, req entity.TradeRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	started := time.Now()
	estimated := s.fetchEstimate(ctx, req)
	metrics.QuoteLatencySeconds.Observe(time.Since(started).Seconds())

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.estSeq {
		return
	}
	s.state.EstimatedPrice = estimated
	if s.state.Phase == entity.TradeEstimating {
		s.state.Phase = entity.TradeIdle
	}
}

// fetchEstimate asks the provider matching the current market snapshot for
// a price. An empty string means no estimate is available.
func (s *tradeOrchestratorImpl) fetchEstimate(ctx context.Context, req entity.TradeRequest) string {
	tokenID := s.tokenFn()
	tokenAddress, err := entity.TokenEVMAddress(tokenID)
	if err != nil {
		return ""
	}

	md := s.marketFn()
	provider := entity.ProviderMock
	if md != nil {
		provider = md.Provider
	}

	switch provider {
	case entity.ProviderHeliswap:
		// Buys spend HBAR (8 decimals) and receive tokens; sells the
		// reverse. Both directions quote in base units and convert the
		// answer back to display units.
		tokenDecimals := heliswapTokenDecimals(md)
		inDecimals, outDecimals := uint8(hbarDecimals), tokenDecimals
		if req.Direction == entity.DirectionSell {
			inDecimals, outDecimals = tokenDecimals, hbarDecimals
		}
		amountWei, err := utils.ParseBaseUnits(req.Amount, inDecimals)
		if err != nil || amountWei.Sign() <= 0 {
			return ""
		}
		quote, err := s.hedera.HeliswapQuote(ctx, tokenAddress, amountWei.String(), req.Direction, s.cfg.Trade.QuoteSlippage)
		if err != nil {
			metrics.UpstreamRequestsTotal.WithLabelValues("heliswap_quote", "error").Inc()
			s.logger.Debug("HeliSwap quote failed", "tokenAddress", tokenAddress, "error", err)
			return ""
		}
		metrics.UpstreamRequestsTotal.WithLabelValues("heliswap_quote", "ok").Inc()
		if !quote.Success || quote.Quote == nil {
			return ""
		}
		amountOut, ok := new(big.Int).SetString(quote.Quote.AmountOut, 10)
		if !ok {
			return ""
		}
		display, err := utils.FormatBaseUnits(amountOut, outDecimals)
		if err != nil {
			return ""
		}
		return display
	case entity.ProviderCustomAmm:
		price, err := s.hedera.CustomPrice(ctx, tokenAddress, req.Amount)
		if err != nil {
			metrics.UpstreamRequestsTotal.WithLabelValues("custom_price", "error").Inc()
			s.logger.Debug("Custom price estimate failed", "tokenAddress", tokenAddress, "error", err)
			return ""
		}
		metrics.UpstreamRequestsTotal.WithLabelValues("custom_price", "ok").Inc()
		if !price.Success {
			return ""
		}
		return price.PriceInHbar
	default:
		amt, err := strconv.ParseFloat(req.Amount, 64)
		if err != nil || md == nil || md.Price <= 0 {
			return ""
		}
		return fmt.Sprintf("%g", amt*md.Price)
	}
}

// Submit implements port.TradeOrchestrator.
func (s *tradeOrchestratorImpl) Submit(ctx context.Context) entity.TradeState {
	s.mu.Lock()
	req := s.state.Request
	if req.Slippage == 0 {
		req.Slippage = s.defaultSlippage()
	}
	s.mu.Unlock()

	return s.submit(ctx, req)
}

func (s *tradeOrchestratorImpl) submit(ctx context.Context, req entity.TradeRequest) entity.TradeState {
	if err := req.Validate(); err != nil {
		return s.fail(req, err.Error())
	}
	s.setPhase(entity.TradeValidating)

	sess := s.wallet.Session()
	if sess == nil || sess.AccountID == placeholderAccountID {
		s.mu.Lock()
		pending := req
		s.pending = &pending
		s.state.Phase = entity.TradePendingWalletConnect
		s.state.Request = req
		state := s.state
		s.mu.Unlock()
		s.logger.Info("Trade deferred until a wallet is connected", "direction", req.Direction, "amount", req.Amount)
		return state
	}

	tokenID := s.tokenFn()
	tokenAddress, err := entity.TokenEVMAddress(tokenID)
	if err != nil {
		return s.fail(req, err.Error())
	}

	if req.Direction == entity.DirectionBuy {
		assoc, err := s.hedera.CheckAssociation(ctx, tokenAddress, sess.AccountID)
		if err != nil {
			metrics.UpstreamRequestsTotal.WithLabelValues("check_association", "error").Inc()
			return s.fail(req, fmt.Sprintf("association check failed: %v", err))
		}
		metrics.UpstreamRequestsTotal.WithLabelValues("check_association", "ok").Inc()
		if !assoc.Associated {
			s.mu.Lock()
			pending := req
			s.pending = &pending
			s.state.Phase = entity.TradeNeedsAssociation
			s.state.Request = req
			s.state.AssociationURL = s.cfg.Network.WalletAssociationURL
			state := s.state
			s.mu.Unlock()
			s.logger.Info("Account not associated with token, association required",
				"accountId", sess.AccountID, "tokenId", tokenID)
			return state
		}
	}

	s.setPhase(entity.TradeSubmitting)

	order := wire.TradeOrder{
		TokenAddress:       tokenAddress,
		Slippage:           req.Slippage,
		UserAddress:        sess.EVM,
		RecipientAccountID: sess.AccountID,
	}
	if order.UserAddress == "" {
		order.UserAddress = sess.AccountID
	}
	if sess.EVM != "" {
		order.RecipientEVMAddress = sess.EVM
	}
	if req.Direction == entity.DirectionBuy {
		order.HbarAmount = req.Amount
	} else {
		order.TokenAmount = req.Amount
	}

	result, err := s.hedera.SubmitTrade(ctx, req.Direction, order)
	if err != nil {
		metrics.TradesTotal.WithLabelValues(string(req.Direction), "error").Inc()
		return s.fail(req, fmt.Sprintf("trade submission failed: %v", err))
	}
	if !result.Success {
		metrics.TradesTotal.WithLabelValues(string(req.Direction), "rejected").Inc()
		msg := result.Error
		if msg == "" {
			msg = result.Message
		}
		if msg == "" {
			msg = "trade rejected"
		}
		return s.fail(req, msg)
	}

	metrics.TradesTotal.WithLabelValues(string(req.Direction), "ok").Inc()

	s.mu.Lock()
	s.pending = nil
	s.state = entity.TradeState{Phase: entity.TradeSuccess, Request: req}
	if result.Transaction != nil {
		s.state.TransactionHash = result.Transaction.Hash
	}
	state := s.state
	s.mu.Unlock()

	s.logger.Info("Trade executed", "direction", req.Direction, "amount", req.Amount, "txHash", state.TransactionHash)

	if s.refreshMarket != nil {
		settle := time.Duration(s.cfg.Trade.PostTradeRefreshMillis) * time.Millisecond
		time.AfterFunc(settle, s.refreshMarket)
	}
	return state
}

// AssociateAndResume implements port.TradeOrchestrator. It polls the
// association status on a constant interval until it flips or the attempt
// budget is spent, then re-submits the remembered trade.
func (s *tradeOrchestratorImpl) AssociateAndResume(ctx context.Context) entity.TradeState {
	s.mu.Lock()
	if s.state.Phase != entity.TradeNeedsAssociation || s.pending == nil {
		state := s.state
		s.mu.Unlock()
		return state
	}
	req := *s.pending
	s.mu.Unlock()

	sess := s.wallet.Session()
	if sess == nil {
		return s.fail(req, entity.ErrNoWallet.Error())
	}
	tokenAddress, err := entity.TokenEVMAddress(s.tokenFn())
	if err != nil {
		return s.fail(req, err.Error())
	}

	interval := time.Duration(s.cfg.Trade.AssociationPollSeconds) * time.Second
	attempts := uint64(s.cfg.Trade.AssociationPollAttempts)
	if attempts == 0 {
		attempts = 1
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(interval), attempts-1),
		ctx,
	)

	err = backoff.Retry(func() error {
		assoc, err := s.hedera.CheckAssociation(ctx, tokenAddress, sess.AccountID)
		if err != nil {
			return err
		}
		if !assoc.Associated {
			return entity.ErrNotAssociated
		}
		return nil
	}, policy)
	if err != nil {
		s.logger.Warn("Association polling gave up", "accountId", sess.AccountID, "error", err)
		return s.fail(req, entity.ErrAssociationTimeout.Error())
	}

	s.logger.Info("Association detected, resuming trade", "accountId", sess.AccountID)
	return s.submit(ctx, req)
}

// ResumePending implements port.TradeOrchestrator.
func (s *tradeOrchestratorImpl) ResumePending(ctx context.Context) (entity.TradeState, bool) {
	s.mu.Lock()
	if s.state.Phase != entity.TradePendingWalletConnect || s.pending == nil {
		state := s.state
		s.mu.Unlock()
		return state, false
	}
	req := *s.pending
	s.pending = nil
	s.mu.Unlock()

	return s.submit(ctx, req), true
}

// State implements port.TradeOrchestrator.
func (s *tradeOrchestratorImpl) State() entity.TradeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Reset implements port.TradeOrchestrator.
func (s *tradeOrchestratorImpl) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.estTimer != nil {
		s.estTimer.Stop()
	}
	s.estSeq++
	s.pending = nil
	s.state = entity.TradeState{Phase: entity.TradeIdle}
}

func (s *tradeOrchestratorImpl) defaultSlippage() int {
	if s.cfg.Trade.DefaultSlippage > 0 {
		return s.cfg.Trade.DefaultSlippage
	}
	return entity.DefaultSlippageBps
}

func (s *tradeOrchestratorImpl) setPhase(phase entity.TradePhase) {
	s.mu.Lock()
	s.state.Phase = phase
	s.mu.Unlock()
}

func (s *tradeOrchestratorImpl) fail(req entity.TradeRequest, msg string) entity.TradeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = entity.TradeState{Phase: entity.TradeFailed, Request: req, Error: msg}
	return s.state
}

// heliswapTokenDecimals reads the pool token's decimals from the current
// market snapshot, defaulting to 8 when the pool does not report them.
func heliswapTokenDecimals(md *entity.MarketData) uint8 {
	if md != nil && md.Heliswap != nil && md.Heliswap.TokenInfo != nil && md.Heliswap.TokenInfo.Decimals > 0 {
		return uint8(md.Heliswap.TokenInfo.Decimals)
	}
	return hbarDecimals
}
