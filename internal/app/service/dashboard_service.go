package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"token_dashboard/internal/app/port"
	"token_dashboard/internal/domain/entity"
	"token_dashboard/internal/infrastructure/configloader"
	"token_dashboard/internal/infrastructure/httpclient"
	"token_dashboard/pkg/metrics"
)

// dashboardServiceImpl implements port.DashboardService. One instance
// serves one token at a time; Open replaces the previous token and its
// pollers.
type dashboardServiceImpl struct {
	middleware httpclient.MiddlewareClient
	hedera     httpclient.HederaServiceClient
	market     port.MarketDataService
	analytics  port.AnalyticsService
	cfg        *configloader.Config
	logger     port.Logger

	mu      sync.RWMutex
	tokenID string
	state   *entity.DashboardState
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	marketBusy    atomic.Bool
	analyticsBusy atomic.Bool
}

// NewDashboardService creates a new instance of dashboardServiceImpl.
func NewDashboardService(
	mw httpclient.MiddlewareClient,
	hc httpclient.HederaServiceClient,
	ms port.MarketDataService,
	as port.AnalyticsService,
	cfg *configloader.Config,
	l port.Logger,
) port.DashboardService {
	return &dashboardServiceImpl{
		middleware: mw,
		hedera:     hc,
		market:     ms,
		analytics:  as,
		cfg:        cfg,
		logger:     l,
	}
}

// Open implements port.DashboardService. entity.ErrTokenNotFound is
// terminal: nothing else is fetched and no pollers start.
func (s *dashboardServiceImpl) Open(ctx context.Context, tokenName string) (*entity.DashboardState, error) {
	info, err := s.middleware.GetTokenization(ctx, tokenName)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("tokenization", "error").Inc()
		return nil, err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("tokenization", "ok").Inc()

	state := &entity.DashboardState{
		TokenInfo: info,
		LogoURL:   info.LogoURL,
	}

	// Creator status gates the stats panel and socials editing. The check
	// is best-effort: a failed check just renders the non-creator view.
	if isCreator, err := s.middleware.CheckTokenCreator(ctx, info.TokenID); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("creator_check", "error").Inc()
		s.logger.Debug("Creator check failed", "tokenId", info.TokenID, "error", err)
	} else {
		metrics.UpstreamRequestsTotal.WithLabelValues("creator_check", "ok").Inc()
		state.IsCreator = isCreator
	}

	// Extension metadata and logo are decoration; failures are logged and
	// the dashboard opens without them.
	if info.ExtensionID != "" {
		if ext, err := s.middleware.GetExtensionInfo(ctx, info.ExtensionID); err != nil {
			s.logger.Debug("Extension info unavailable", "extensionId", info.ExtensionID, "error", err)
		} else {
			state.ExtensionInfo = ext
		}
		if state.LogoURL == "" {
			if logo, err := s.middleware.GetLogo(ctx, info.ExtensionID); err != nil {
				s.logger.Debug("Logo unavailable", "extensionId", info.ExtensionID, "error", err)
			} else {
				state.LogoURL = logo
			}
		}
	}

	state.Market = s.market.Load(ctx, info.TokenID)
	state.Analytics = s.analytics.Refresh(ctx, info.TokenID)
	mergeTradingStats(state.Market, state.Analytics)
	state.LastUpdated = time.Now().UnixMilli()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	s.wg.Wait()

	pollCtx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.tokenID = info.TokenID
	s.state = state
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(2)
	go s.pollMarket(pollCtx)
	go s.pollAnalytics(pollCtx)

	s.logger.Info("Dashboard opened", "tokenName", tokenName, "tokenId", info.TokenID,
		"provider", state.Market.Provider)
	return s.State(), nil
}

// pollMarket refreshes market data on a fixed interval. A tick that would
// overlap a still-running one is skipped, and each tick runs under its own
// timeout so one hung upstream cannot stall the loop.
func (s *dashboardServiceImpl) pollMarket(ctx context.Context) {
	defer s.wg.Done()
	interval := time.Duration(s.cfg.Polling.MarketIntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.marketBusy.CompareAndSwap(false, true) {
				metrics.PollTicksTotal.WithLabelValues("market", "skipped").Inc()
				continue
			}
			tickCtx, cancel := context.WithTimeout(ctx, s.tickTimeout())
			s.refreshMarketLocked(tickCtx)
			cancel()
			s.marketBusy.Store(false)
			metrics.PollTicksTotal.WithLabelValues("market", "ok").Inc()
		}
	}
}

func (s *dashboardServiceImpl) pollAnalytics(ctx context.Context) {
	defer s.wg.Done()
	interval := time.Duration(s.cfg.Polling.AnalyticsIntervalMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.analyticsBusy.CompareAndSwap(false, true) {
				metrics.PollTicksTotal.WithLabelValues("analytics", "skipped").Inc()
				continue
			}
			tickCtx, cancel := context.WithTimeout(ctx, s.tickTimeout())
			s.refreshAnalytics(tickCtx)
			cancel()
			s.analyticsBusy.Store(false)
			metrics.PollTicksTotal.WithLabelValues("analytics", "ok").Inc()
		}
	}
}

func (s *dashboardServiceImpl) tickTimeout() time.Duration {
	return time.Duration(s.cfg.Polling.TickTimeoutSeconds) * time.Second
}

func (s *dashboardServiceImpl) refreshMarketLocked(ctx context.Context) {
	s.mu.RLock()
	tokenID := s.tokenID
	s.mu.RUnlock()
	if tokenID == "" {
		return
	}

	md := s.market.Load(ctx, tokenID)

	s.mu.Lock()
	if s.state != nil {
		mergeTradingStats(md, s.state.Analytics)
		s.state.Market = md
		s.state.LastUpdated = time.Now().UnixMilli()
	}
	s.mu.Unlock()
}

func (s *dashboardServiceImpl) refreshAnalytics(ctx context.Context) {
	s.mu.RLock()
	tokenID := s.tokenID
	s.mu.RUnlock()
	if tokenID == "" {
		return
	}

	bundle := s.analytics.Refresh(ctx, tokenID)

	s.mu.Lock()
	if s.state != nil {
		s.state.Analytics = bundle
		mergeTradingStats(s.state.Market, bundle)
		s.state.LastUpdated = time.Now().UnixMilli()
	}
	s.mu.Unlock()
}

// State implements port.DashboardService.
func (s *dashboardServiceImpl) State() *entity.DashboardState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return nil
	}
	copied := *s.state
	return &copied
}

// RefreshMarket implements port.DashboardService.
func (s *dashboardServiceImpl) RefreshMarket(ctx context.Context) {
	s.refreshMarketLocked(ctx)
}

// RecordInteraction implements port.DashboardService. A successful record
// may trigger a supply burn server-side, so the analytics sections are
// refreshed right after.
func (s *dashboardServiceImpl) RecordInteraction(ctx context.Context, action string) error {
	if action != "test" && action != "download" {
		return fmt.Errorf("unknown interaction action %q", action)
	}
	s.mu.RLock()
	tokenID := s.tokenID
	s.mu.RUnlock()
	if tokenID == "" {
		return fmt.Errorf("no token open")
	}

	resp, err := s.hedera.RecordInteraction(ctx, tokenID, action)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("record_interaction", "error").Inc()
		return err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("record_interaction", "ok").Inc()
	if resp.Burned {
		s.logger.Info("Interaction triggered a burn", "tokenId", tokenID, "action", action)
	}

	s.refreshAnalytics(ctx)
	return nil
}

// UpdateSocials implements port.DashboardService.
func (s *dashboardServiceImpl) UpdateSocials(ctx context.Context, links entity.SocialLinks) (*entity.SocialLinks, error) {
	s.mu.RLock()
	tokenID := s.tokenID
	isCreator := s.state != nil && s.state.IsCreator
	s.mu.RUnlock()
	if tokenID == "" {
		return nil, fmt.Errorf("no token open")
	}
	if !isCreator {
		return nil, fmt.Errorf("only the token creator can edit social links")
	}

	saved, err := s.middleware.UpdateSocials(ctx, tokenID, links)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("update_socials", "error").Inc()
		return nil, err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("update_socials", "ok").Inc()

	s.mu.Lock()
	if s.state != nil && s.state.TokenInfo != nil {
		s.state.TokenInfo.SocialLinks = saved
	}
	s.mu.Unlock()

	s.logger.Info("Social links updated", "tokenId", tokenID)
	return saved, nil
}

// Close implements port.DashboardService.
func (s *dashboardServiceImpl) Close() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// mergeTradingStats folds the analytics trading block into the market
// snapshot for providers that do not carry those figures themselves. The
// mock dataset already ships consistent numbers and is left alone.
func mergeTradingStats(md *entity.MarketData, bundle *entity.AnalyticsBundle) {
	if md == nil || bundle == nil || md.Provider == entity.ProviderMock {
		return
	}
	if bundle.Trading != nil {
		md.PriceChange24h = bundle.Trading.PriceChange24h
		md.Volume24h = bundle.Trading.Volume24h
		md.Holders = bundle.Trading.Holders
		// The bonding-curve provider reports its own lifetime trade count.
		if md.TotalTrades == 0 {
			md.TotalTrades = bundle.Trading.Trades24h
		}
	} else if len(bundle.Candles) > 0 {
		md.PriceChange24h = priceChange24h(bundle.Candles, time.Now().UnixMilli())
	}
}
