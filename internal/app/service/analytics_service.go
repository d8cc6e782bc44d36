package service

import (
	"context"
	"sync"

	"token_dashboard/internal/app/port"
	"token_dashboard/internal/domain/entity"
	wire "token_dashboard/internal/entity"
	"token_dashboard/internal/infrastructure/httpclient"
	"token_dashboard/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

const (
	burnHistoryLimit   = 10
	feeFeedLimit       = 20
	recentActivitySize = 10
)

// analyticsServiceImpl implements port.AnalyticsService. The four upstream
// sections (analytics, interactions, burns, fees) are fetched concurrently
// and failures are per-section: whatever arrives is kept, the rest stays
// empty until the next refresh.
type analyticsServiceImpl struct {
	hedera httpclient.HederaServiceClient
	logger port.Logger
}

// NewAnalyticsService creates a new instance of analyticsServiceImpl.
func NewAnalyticsService(hc httpclient.HederaServiceClient, l port.Logger) port.AnalyticsService {
	return &analyticsServiceImpl{hedera: hc, logger: l}
}

// Refresh implements port.AnalyticsService.
func (s *analyticsServiceImpl) Refresh(ctx context.Context, tokenID string) *entity.AnalyticsBundle {
	bundle := &entity.AnalyticsBundle{}
	var mu sync.Mutex

	tokenAddress, addrErr := entity.TokenEVMAddress(tokenID)
	if addrErr != nil {
		s.logger.Warn("Cannot derive token EVM address for analytics", "tokenId", tokenID, "error", addrErr)
	}

	g, gctx := errgroup.WithContext(ctx)

	if addrErr == nil {
		g.Go(func() error {
			resp, err := s.hedera.TokenAnalytics(gctx, tokenAddress)
			if err != nil {
				metrics.UpstreamRequestsTotal.WithLabelValues("token_analytics", "error").Inc()
				s.logger.Debug("Token analytics fetch failed", "tokenAddress", tokenAddress, "error", err)
				return nil
			}
			metrics.UpstreamRequestsTotal.WithLabelValues("token_analytics", "ok").Inc()
			metricsBlock, trading, candles, trades := mapAnalytics(resp)
			mu.Lock()
			bundle.Metrics = metricsBlock
			bundle.Trading = trading
			bundle.Candles = candles
			bundle.Trades = trades
			mu.Unlock()
			return nil
		})

		g.Go(func() error {
			resp, err := s.hedera.TokenFees(gctx, tokenAddress, feeFeedLimit)
			if err != nil {
				metrics.UpstreamRequestsTotal.WithLabelValues("token_fees", "error").Inc()
				s.logger.Debug("Token fees fetch failed", "tokenAddress", tokenAddress, "error", err)
				return nil
			}
			metrics.UpstreamRequestsTotal.WithLabelValues("token_fees", "ok").Inc()
			if !resp.Success {
				return nil
			}
			feed := make([]entity.FeeFeedEntry, 0, len(resp.Recent))
			for _, f := range resp.Recent {
				feed = append(feed, entity.FeeFeedEntry{
					Timestamp:      f.Timestamp,
					Creator:        f.Creator,
					CreatorTokens:  f.CreatorTokens,
					PlatformTokens: f.PlatformTokens,
					TokenDelta:     f.TokenDelta,
				})
			}
			mu.Lock()
			bundle.FeeFeed = feed
			mu.Unlock()
			return nil
		})
	}

	g.Go(func() error {
		resp, err := s.hedera.TokenInteractions(gctx, tokenID)
		if err != nil {
			metrics.UpstreamRequestsTotal.WithLabelValues("token_interactions", "error").Inc()
			s.logger.Debug("Token interactions fetch failed", "tokenId", tokenID, "error", err)
			return nil
		}
		metrics.UpstreamRequestsTotal.WithLabelValues("token_interactions", "ok").Inc()
		if !resp.Success || resp.Counts == nil {
			return nil
		}
		mu.Lock()
		bundle.Interactions = entity.InteractionCounts{
			Tests:          resp.Counts.Tests,
			Downloads:      resp.Counts.Downloads,
			LastTestAt:     resp.Counts.LastTestAt,
			LastDownloadAt: resp.Counts.LastDownloadAt,
		}
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		resp, err := s.hedera.TokenBurns(gctx, tokenID, burnHistoryLimit)
		if err != nil {
			metrics.UpstreamRequestsTotal.WithLabelValues("token_burns", "error").Inc()
			s.logger.Debug("Token burns fetch failed", "tokenId", tokenID, "error", err)
			return nil
		}
		metrics.UpstreamRequestsTotal.WithLabelValues("token_burns", "ok").Inc()
		if !resp.Success {
			return nil
		}
		history := make([]entity.BurnRecord, 0, len(resp.Burns))
		for _, b := range resp.Burns {
			history = append(history, entity.BurnRecord{
				CreatedAt:          b.CreatedAt,
				ReasonAction:       b.ReasonAction,
				InteractionCountAt: b.InteractionCountAt,
				Status:             b.Status,
				TxID:               b.TxID,
				ConsensusTimestamp: b.ConsensusTimestamp,
				Amount:             b.Amount,
			})
		}
		mu.Lock()
		bundle.BurnHistory = history
		if len(history) > 0 {
			last := history[0]
			bundle.LastBurn = &last
		}
		mu.Unlock()
		return nil
	})

	_ = g.Wait()

	bundle.RecentActivity = entity.MergeRecentActivity(bundle.Interactions, bundle.Trades, recentActivitySize)
	return bundle
}

// mapAnalytics flattens the nested analytics body into the bundle blocks,
// sanitizing the chart series on the way in.
func mapAnalytics(resp *wire.TokenAnalyticsResponse) (*entity.AnalyticsMetrics, *entity.AnalyticsTrading, []entity.Candle, []entity.TradePoint) {
	if !resp.Success || resp.Analytics == nil {
		return nil, nil, nil, nil
	}
	a := resp.Analytics

	var metricsBlock *entity.AnalyticsMetrics
	if a.CurrentMetrics != nil {
		metricsBlock = &entity.AnalyticsMetrics{
			Price:        a.CurrentMetrics.Price,
			MarketCap:    a.CurrentMetrics.MarketCap,
			Liquidity:    a.CurrentMetrics.Liquidity,
			TokenReserve: a.CurrentMetrics.TokenReserve,
			WhbarReserve: a.CurrentMetrics.WhbarReserve,
		}
	}

	var trading *entity.AnalyticsTrading
	if a.Trading != nil {
		trading = &entity.AnalyticsTrading{
			PriceChange24h: a.Trading.PriceChange24h,
			Volume24h:      a.Trading.Volume24h,
			Trades24h:      a.Trading.Trades24h,
			Holders:        a.Trading.Holders,
		}
	}

	var candles []entity.Candle
	if a.Charts != nil {
		raw := make([]entity.Candle, 0, len(a.Charts.Candles))
		for _, c := range a.Charts.Candles {
			raw = append(raw, entity.Candle{
				Timestamp: int64(coalesce(c.T, c.Time)),
				Open:      coalesce(c.O, c.Open),
				High:      coalesce(c.H, c.High),
				Low:       coalesce(c.L, c.Low),
				Close:     coalesce(c.C, c.Close),
				Volume:    coalesce(c.V, c.Volume),
			})
		}
		candles = entity.SanitizeCandles(raw)
	}

	raw := make([]entity.TradePoint, 0, len(a.Trades))
	for _, t := range a.Trades {
		raw = append(raw, entity.TradePoint{
			Time:      int64(coalesce(t.Time, t.TsMs)),
			Price:     t.Price,
			Hbar:      t.Hbar,
			Token:     t.Token,
			Side:      entity.TradeSide(t.Side),
			MarketCap: t.Mc,
		})
	}
	trades := entity.SanitizeTrades(raw)

	return metricsBlock, trading, candles, trades
}

// coalesce returns the first non-nil value, or zero.
func coalesce(vals ...*float64) float64 {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}

// priceChange24h derives the 24h change percent from the sanitized candle
// series when the trading block does not carry one.
func priceChange24h(candles []entity.Candle, nowMs int64) float64 {
	if len(candles) == 0 {
		return 0
	}
	last := candles[len(candles)-1].Close
	cutoff := nowMs - 24*60*60*1000
	ref := candles[0].Close
	for _, c := range candles {
		if c.Timestamp >= cutoff {
			break
		}
		ref = c.Close
	}
	if ref <= 0 {
		return 0
	}
	return (last - ref) / ref * 100
}
