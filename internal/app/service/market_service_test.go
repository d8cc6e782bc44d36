package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"token_dashboard/internal/domain/entity"
	wire "token_dashboard/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTokenID = "0.0.5005"

func heliswapBody(priceUSD string) *wire.HeliswapPoolResponse {
	body := &wire.HeliswapPoolResponse{Success: true, PairAddress: "0xpair"}
	body.Pricing = &struct {
		CurrentPrice string `json:"currentPrice"`
		PriceInUSD   string `json:"priceInUsd"`
		MarketCap    string `json:"marketCap"`
		Liquidity    string `json:"liquidity"`
	}{
		CurrentPrice: priceUSD,
		PriceInUSD:   priceUSD,
		MarketCap:    "125000",
		Liquidity:    "45000",
	}
	return body
}

func TestMarketDataLoadPrefersHeliswap(t *testing.T) {
	hedera := &fakeHederaClient{
		heliswapPool: func(string) (*wire.HeliswapPoolResponse, error) {
			return heliswapBody("0.0042"), nil
		},
	}
	svc := NewMarketDataService(hedera, time.Minute, time.Minute, nopLogger{})

	md := svc.Load(context.Background(), testTokenID)

	require.NotNil(t, md)
	assert.Equal(t, entity.ProviderHeliswap, md.Provider)
	assert.InDelta(t, 0.0042, md.Price, 1e-12)
	assert.NotNil(t, md.Heliswap)
	assert.Nil(t, md.CustomAmm)
	assert.Equal(t, 0, hedera.callCount("CustomPool"), "lower-priority provider must not be consulted")
}

func TestMarketDataFallsBackToCustomAmm(t *testing.T) {
	hedera := &fakeHederaClient{
		heliswapPool: func(string) (*wire.HeliswapPoolResponse, error) {
			return nil, errors.New("no pool")
		},
		customPool: func(string) (*wire.CustomPoolResponse, error) {
			body := &wire.CustomPoolResponse{Success: true}
			body.PoolInfo.Exists = true
			body.PoolInfo.ReserveToken = "1000000"
			body.PoolInfo.ReserveHBAR = "45000"
			body.PoolInfo.Sold = "1829"
			body.Reserves.HbarReserve = "4500000000000"
			body.Status.TradingActive = true
			return body, nil
		},
		customPrice: func(_, amount string) (*wire.CustomPriceResponse, error) {
			require.Equal(t, "1000", amount)
			return &wire.CustomPriceResponse{Success: true, PriceInHbar: "4.2"}, nil
		},
	}
	svc := NewMarketDataService(hedera, time.Minute, time.Minute, nopLogger{})

	md := svc.Load(context.Background(), testTokenID)

	require.NotNil(t, md)
	assert.Equal(t, entity.ProviderCustomAmm, md.Provider)
	assert.InDelta(t, 0.0042, md.Price, 1e-12)
	require.NotNil(t, md.CustomAmm)
	assert.Nil(t, md.Heliswap)

	// Derived figures come from the pool body: mcap = price x reserveToken,
	// liquidity = reserveHBAR, lifetime trades = sold.
	assert.InDelta(t, 4200, md.MarketCap, 1e-9)
	assert.InDelta(t, 45000, md.Liquidity, 1e-9)
	assert.Equal(t, int64(1829), md.TotalTrades)
}

func TestMarketDataFallsBackToMock(t *testing.T) {
	hedera := &fakeHederaClient{
		heliswapPool: func(string) (*wire.HeliswapPoolResponse, error) {
			return nil, errors.New("down")
		},
		customPool: func(string) (*wire.CustomPoolResponse, error) {
			return nil, errors.New("down")
		},
	}
	svc := NewMarketDataService(hedera, time.Minute, time.Minute, nopLogger{})

	md := svc.Load(context.Background(), testTokenID)

	require.NotNil(t, md)
	assert.Equal(t, entity.ProviderMock, md.Provider)
	assert.Equal(t, entity.MockMarketData(), md)
}

func TestMarketDataMissingPoolIsNotAnError(t *testing.T) {
	hedera := &fakeHederaClient{
		heliswapPool: func(string) (*wire.HeliswapPoolResponse, error) {
			return &wire.HeliswapPoolResponse{Success: false}, nil
		},
		customPool: func(string) (*wire.CustomPoolResponse, error) {
			return &wire.CustomPoolResponse{Success: true}, nil // exists=false
		},
	}
	svc := NewMarketDataService(hedera, time.Minute, time.Minute, nopLogger{})

	md := svc.Load(context.Background(), testTokenID)

	assert.Equal(t, entity.ProviderMock, md.Provider)
}

func TestMarketDataServesCachedSnapshot(t *testing.T) {
	hedera := &fakeHederaClient{
		heliswapPool: func(string) (*wire.HeliswapPoolResponse, error) {
			return heliswapBody("0.01"), nil
		},
	}
	svc := NewMarketDataService(hedera, time.Minute, time.Minute, nopLogger{})

	first := svc.Load(context.Background(), testTokenID)
	second := svc.Load(context.Background(), testTokenID)

	assert.Same(t, first, second)
	assert.Equal(t, 1, hedera.callCount("HeliswapPool"))
}
