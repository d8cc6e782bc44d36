package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"token_dashboard/internal/app/port"
	"token_dashboard/internal/domain/entity"
	wire "token_dashboard/internal/entity"
	"token_dashboard/internal/infrastructure/httpclient"
	"token_dashboard/pkg/metrics"

	gocache "github.com/patrickmn/go-cache"
)

// customPriceSampleSize is the token amount quoted against the bonding
// curve to derive a per-token price.
const customPriceSampleSize = 1000

// marketDataServiceImpl implements port.MarketDataService. Providers are
// tried in order: HeliSwap DEX pool, then the custom bonding-curve AMM,
// then the static mock dataset. The first provider that yields a usable
// snapshot wins; lower-priority providers are not consulted.
type marketDataServiceImpl struct {
	hedera httpclient.HederaServiceClient
	cache  *gocache.Cache
	logger port.Logger
}

// NewMarketDataService creates a new instance of marketDataServiceImpl.
// cacheTTL bounds how stale a served snapshot may be between poll ticks.
func NewMarketDataService(hc httpclient.HederaServiceClient, cacheTTL, cleanupInterval time.Duration, l port.Logger) port.MarketDataService {
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Second
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}
	return &marketDataServiceImpl{
		hedera: hc,
		cache:  gocache.New(cacheTTL, cleanupInterval),
		logger: l,
	}
}

// Load implements port.MarketDataService.
func (s *marketDataServiceImpl) Load(ctx context.Context, tokenID string) *entity.MarketData {
	if cached, ok := s.cache.Get(tokenID); ok {
		return cached.(*entity.MarketData)
	}

	tokenAddress, err := entity.TokenEVMAddress(tokenID)
	if err != nil {
		s.logger.Warn("Cannot derive token EVM address, serving mock market data", "tokenId", tokenID, "error", err)
		return s.finish(tokenID, entity.MockMarketData())
	}

	if md := s.loadHeliswap(ctx, tokenAddress); md != nil {
		return s.finish(tokenID, md)
	}
	if md := s.loadCustomAmm(ctx, tokenAddress); md != nil {
		return s.finish(tokenID, md)
	}

	s.logger.Info("No pricing provider available, serving mock market data", "tokenId", tokenID)
	return s.finish(tokenID, entity.MockMarketData())
}

func (s *marketDataServiceImpl) finish(tokenID string, md *entity.MarketData) *entity.MarketData {
	var level float64
	switch md.Provider {
	case entity.ProviderHeliswap:
		level = 2
	case entity.ProviderCustomAmm:
		level = 1
	}
	metrics.MarketProviderGauge.WithLabelValues(tokenID).Set(level)
	s.cache.SetDefault(tokenID, md)
	return md
}

// loadHeliswap returns a snapshot from the HeliSwap pool, or nil when the
// pool does not exist or the response is unusable.
func (s *marketDataServiceImpl) loadHeliswap(ctx context.Context, tokenAddress string) *entity.MarketData {
	pool, err := s.hedera.HeliswapPool(ctx, tokenAddress)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("heliswap_pool", "error").Inc()
		s.logger.Debug("HeliSwap pool fetch failed", "tokenAddress", tokenAddress, "error", err)
		return nil
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("heliswap_pool", "ok").Inc()
	if !pool.Success || pool.Pricing == nil {
		return nil
	}

	md := &entity.MarketData{
		Provider:  entity.ProviderHeliswap,
		Price:     parseFloatOrZero(pool.Pricing.PriceInUSD),
		MarketCap: parseFloatOrZero(pool.Pricing.MarketCap),
		Liquidity: parseFloatOrZero(pool.Pricing.Liquidity),
		Heliswap:  mapHeliswapPool(pool),
	}
	if md.Price <= 0 {
		md.Price = parseFloatOrZero(pool.Pricing.CurrentPrice)
	}
	if md.Price <= 0 {
		s.logger.Debug("HeliSwap pool has no usable price", "tokenAddress", tokenAddress)
		return nil
	}
	return md
}

// loadCustomAmm returns a snapshot from the bonding-curve AMM. The curve
// has no per-token spot price endpoint, so the price of a 1000-token
// sample buy is divided back down.
func (s *marketDataServiceImpl) loadCustomAmm(ctx context.Context, tokenAddress string) *entity.MarketData {
	pool, err := s.hedera.CustomPool(ctx, tokenAddress)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("custom_pool", "error").Inc()
		s.logger.Debug("Custom pool fetch failed", "tokenAddress", tokenAddress, "error", err)
		return nil
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("custom_pool", "ok").Inc()
	if !pool.Success || !pool.PoolInfo.Exists {
		return nil
	}

	md := &entity.MarketData{
		Provider:    entity.ProviderCustomAmm,
		Liquidity:   parseFloatOrZero(pool.PoolInfo.ReserveHBAR),
		TotalTrades: parseIntOrZero(pool.PoolInfo.Sold),
		CustomAmm:   mapCustomPool(pool),
	}

	price, err := s.hedera.CustomPrice(ctx, tokenAddress, strconv.Itoa(customPriceSampleSize))
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("custom_price", "error").Inc()
		s.logger.Debug("Custom price fetch failed", "tokenAddress", tokenAddress, "error", err)
	} else {
		metrics.UpstreamRequestsTotal.WithLabelValues("custom_price", "ok").Inc()
		if price.Success {
			sample := parseFloatOrZero(price.PriceInHbar)
			if sample > 0 {
				md.Price = sample / customPriceSampleSize
				md.MarketCap = md.Price * parseFloatOrZero(pool.PoolInfo.ReserveToken)
				md.CustomAmm.PriceInfo = &entity.CustomAmmPriceInfo{
					CurrentPrice:       fmt.Sprintf("%g", md.Price),
					PriceFor1000Tokens: price.PriceInHbar,
				}
			}
		}
	}
	if md.Price <= 0 {
		return nil
	}
	return md
}

func mapHeliswapPool(p *wire.HeliswapPoolResponse) *entity.HeliswapPool {
	out := &entity.HeliswapPool{
		PairAddress: p.PairAddress,
		Reserves: entity.HeliswapReserves{
			TokenReserve: p.Reserves.TokenReserve,
			WhbarReserve: p.Reserves.WhbarReserve,
			TotalSupply:  p.Reserves.TotalSupply,
		},
		PoolInfo: entity.HeliswapPoolInfo{
			Token0:     p.PoolInfo.Token0,
			Token1:     p.PoolInfo.Token1,
			IsToken0:   p.PoolInfo.IsToken0,
			Factory:    p.PoolInfo.Factory,
			Router:     p.PoolInfo.Router,
			TradingURL: p.PoolInfo.TradingURL,
		},
		LastUpdated: p.LastUpdated,
	}
	if p.Pricing != nil {
		out.Pricing = entity.HeliswapPricing{
			CurrentPrice: p.Pricing.CurrentPrice,
			PriceInUSD:   p.Pricing.PriceInUSD,
			MarketCap:    p.Pricing.MarketCap,
			Liquidity:    p.Pricing.Liquidity,
		}
	}
	if p.TokenInfo != nil {
		out.TokenInfo = &entity.HeliswapTokenMeta{
			Address:     p.TokenInfo.Address,
			Name:        p.TokenInfo.Name,
			Symbol:      p.TokenInfo.Symbol,
			Decimals:    p.TokenInfo.Decimals,
			TotalSupply: p.TokenInfo.TotalSupply,
		}
	}
	if p.WhbarInfo != nil {
		out.WhbarInfo = &entity.HeliswapTokenMeta{
			Address:  p.WhbarInfo.Address,
			Name:     p.WhbarInfo.Name,
			Symbol:   p.WhbarInfo.Symbol,
			Decimals: p.WhbarInfo.Decimals,
		}
	}
	return out
}

func mapCustomPool(p *wire.CustomPoolResponse) *entity.CustomAmmPool {
	return &entity.CustomAmmPool{
		PoolInfo: entity.CustomAmmPoolInfo{
			ReserveToken:   p.PoolInfo.ReserveToken,
			ReserveHBAR:    p.PoolInfo.ReserveHBAR,
			StartPrice:     p.PoolInfo.StartPrice,
			Slope:          p.PoolInfo.Slope,
			Sold:           p.PoolInfo.Sold,
			FeeBps:         p.PoolInfo.FeeBps,
			CreatorFeeBps:  p.PoolInfo.CreatorFeeBps,
			CreatorFeeAcc:  p.PoolInfo.CreatorFeeAcc,
			PlatformFeeAcc: p.PoolInfo.PlatformFeeAcc,
			Graduated:      p.PoolInfo.Graduated,
			Exists:         p.PoolInfo.Exists,
		},
		Reserves: entity.CustomAmmReserves{
			TokenReserve: p.Reserves.TokenReserve,
			HbarReserve:  p.Reserves.HbarReserve,
		},
		Status: entity.CustomAmmStatus{
			IsGraduated:   p.Status.IsGraduated,
			TradingActive: p.Status.TradingActive,
		},
	}
}

func parseFloatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseIntOrZero(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return int64(parseFloatOrZero(s))
	}
	return v
}
