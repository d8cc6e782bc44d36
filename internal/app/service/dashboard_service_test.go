package service

import (
	"context"
	"testing"

	"token_dashboard/internal/domain/entity"
	"token_dashboard/internal/infrastructure/configloader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboardTestConfig() *configloader.Config {
	return &configloader.Config{
		Polling: configloader.PollingConfig{
			MarketIntervalSeconds:    3600,
			AnalyticsIntervalMinutes: 600,
			TickTimeoutSeconds:       5,
		},
	}
}

func TestOpenUnknownTokenIsTerminal(t *testing.T) {
	middleware := &fakeMiddlewareClient{
		tokenization: func(string) (*entity.TokenInfo, error) {
			return nil, entity.ErrTokenNotFound
		},
	}
	market := &fakeMarketService{}
	svc := NewDashboardService(middleware, &fakeHederaClient{}, market, &fakeAnalyticsService{}, dashboardTestConfig(), nopLogger{})

	_, err := svc.Open(context.Background(), "ghost-token")

	require.ErrorIs(t, err, entity.ErrTokenNotFound)
	assert.Equal(t, 0, market.loadCount(), "no market fetch after a 404 lookup")
	assert.Nil(t, svc.State())
}

func TestOpenComposesStateAndMergesTradingStats(t *testing.T) {
	middleware := &fakeMiddlewareClient{
		tokenization: func(name string) (*entity.TokenInfo, error) {
			return &entity.TokenInfo{
				TokenID:     testTokenID,
				TokenName:   name,
				TokenSymbol: "EXT",
				ExtensionID: "ext-1",
			}, nil
		},
		extensionInfo: func(string) (*entity.ExtensionInfo, error) {
			return &entity.ExtensionInfo{Title: "My Extension", FileCount: 3}, nil
		},
		logo: func(string) (string, error) { return "https://cdn.example/logo.png", nil },
	}
	market := &fakeMarketService{data: &entity.MarketData{
		Provider: entity.ProviderHeliswap,
		Price:    0.01,
	}}
	analytics := &fakeAnalyticsService{bundle: &entity.AnalyticsBundle{
		Trading: &entity.AnalyticsTrading{
			PriceChange24h: 4.2,
			Volume24h:      999,
			Trades24h:      17,
			Holders:        88,
		},
	}}
	svc := NewDashboardService(middleware, &fakeHederaClient{}, market, analytics, dashboardTestConfig(), nopLogger{})
	defer svc.Close()

	state, err := svc.Open(context.Background(), "my-token")

	require.NoError(t, err)
	require.NotNil(t, state.TokenInfo)
	assert.Equal(t, testTokenID, state.TokenInfo.TokenID)
	require.NotNil(t, state.ExtensionInfo)
	assert.Equal(t, "https://cdn.example/logo.png", state.LogoURL)
	assert.NotZero(t, state.LastUpdated)

	// Pool metadata comes from the provider, 24h stats from analytics.
	require.NotNil(t, state.Market)
	assert.InDelta(t, 4.2, state.Market.PriceChange24h, 1e-9)
	assert.Equal(t, float64(999), state.Market.Volume24h)
	assert.Equal(t, int64(88), state.Market.Holders)
}

func TestMockMarketKeepsItsOwnNumbers(t *testing.T) {
	middleware := &fakeMiddlewareClient{
		tokenization: func(string) (*entity.TokenInfo, error) {
			return &entity.TokenInfo{TokenID: testTokenID}, nil
		},
	}
	analytics := &fakeAnalyticsService{bundle: &entity.AnalyticsBundle{
		Trading: &entity.AnalyticsTrading{PriceChange24h: -50},
	}}
	svc := NewDashboardService(middleware, &fakeHederaClient{}, &fakeMarketService{}, analytics, dashboardTestConfig(), nopLogger{})
	defer svc.Close()

	state, err := svc.Open(context.Background(), "my-token")

	require.NoError(t, err)
	assert.Equal(t, entity.ProviderMock, state.Market.Provider)
	assert.InDelta(t, 12.5, state.Market.PriceChange24h, 1e-9)
}

func TestOpenRecordsCreatorStatus(t *testing.T) {
	middleware := &fakeMiddlewareClient{
		tokenization: func(string) (*entity.TokenInfo, error) {
			return &entity.TokenInfo{TokenID: testTokenID}, nil
		},
		creatorCheck: func(tokenID string) (bool, error) {
			assert.Equal(t, testTokenID, tokenID)
			return true, nil
		},
	}
	svc := NewDashboardService(middleware, &fakeHederaClient{}, &fakeMarketService{}, &fakeAnalyticsService{}, dashboardTestConfig(), nopLogger{})
	defer svc.Close()

	state, err := svc.Open(context.Background(), "my-token")

	require.NoError(t, err)
	assert.True(t, state.IsCreator)
}

func TestUpdateSocialsRequiresCreator(t *testing.T) {
	middleware := &fakeMiddlewareClient{
		tokenization: func(string) (*entity.TokenInfo, error) {
			return &entity.TokenInfo{TokenID: testTokenID}, nil
		},
		updateSocials: func(string, entity.SocialLinks) (*entity.SocialLinks, error) {
			t.Fatal("socials must not be updated for a non-creator")
			return nil, nil
		},
	}
	svc := NewDashboardService(middleware, &fakeHederaClient{}, &fakeMarketService{}, &fakeAnalyticsService{}, dashboardTestConfig(), nopLogger{})
	defer svc.Close()

	_, err := svc.Open(context.Background(), "my-token")
	require.NoError(t, err)

	_, err = svc.UpdateSocials(context.Background(), entity.SocialLinks{Twitter: "https://x.com/ext"})
	assert.Error(t, err)
}

func TestUpdateSocialsStoresSavedLinks(t *testing.T) {
	middleware := &fakeMiddlewareClient{
		tokenization: func(string) (*entity.TokenInfo, error) {
			return &entity.TokenInfo{TokenID: testTokenID}, nil
		},
		creatorCheck: func(string) (bool, error) { return true, nil },
		updateSocials: func(tokenID string, links entity.SocialLinks) (*entity.SocialLinks, error) {
			assert.Equal(t, testTokenID, tokenID)
			saved := links
			return &saved, nil
		},
	}
	svc := NewDashboardService(middleware, &fakeHederaClient{}, &fakeMarketService{}, &fakeAnalyticsService{}, dashboardTestConfig(), nopLogger{})
	defer svc.Close()

	_, err := svc.Open(context.Background(), "my-token")
	require.NoError(t, err)

	saved, err := svc.UpdateSocials(context.Background(), entity.SocialLinks{Twitter: "https://x.com/ext", Discord: "https://discord.gg/ext"})

	require.NoError(t, err)
	assert.Equal(t, "https://x.com/ext", saved.Twitter)
	require.NotNil(t, svc.State().TokenInfo.SocialLinks)
	assert.Equal(t, "https://discord.gg/ext", svc.State().TokenInfo.SocialLinks.Discord)
}

func TestRefreshMarketReplacesSnapshot(t *testing.T) {
	middleware := &fakeMiddlewareClient{
		tokenization: func(string) (*entity.TokenInfo, error) {
			return &entity.TokenInfo{TokenID: testTokenID}, nil
		},
	}
	market := &fakeMarketService{data: &entity.MarketData{Provider: entity.ProviderHeliswap, Price: 0.01}}
	svc := NewDashboardService(middleware, &fakeHederaClient{}, market, &fakeAnalyticsService{}, dashboardTestConfig(), nopLogger{})
	defer svc.Close()

	_, err := svc.Open(context.Background(), "my-token")
	require.NoError(t, err)

	market.mu.Lock()
	market.data = &entity.MarketData{Provider: entity.ProviderHeliswap, Price: 0.02}
	market.mu.Unlock()

	svc.RefreshMarket(context.Background())

	assert.InDelta(t, 0.02, svc.State().Market.Price, 1e-12)
	assert.Equal(t, 2, market.loadCount())
}
