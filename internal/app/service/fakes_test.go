package service

import (
	"context"
	"errors"
	"sync"

	"token_dashboard/internal/domain/entity"
	wire "token_dashboard/internal/entity"
)

// fakeHederaClient implements httpclient.HederaServiceClient with
// overridable function fields. Unset methods fail loudly so tests notice
// unexpected calls.
type fakeHederaClient struct {
	mu    sync.Mutex
	calls map[string]int

	heliswapPool     func(tokenAddress string) (*wire.HeliswapPoolResponse, error)
	tokenAnalytics   func(tokenAddress string) (*wire.TokenAnalyticsResponse, error)
	customPool       func(tokenAddress string) (*wire.CustomPoolResponse, error)
	customPrice      func(tokenAddress, amount string) (*wire.CustomPriceResponse, error)
	heliswapQuote    func(tokenAddress, amountWei string, direction entity.TradeDirection, slippage int) (*wire.HeliswapQuoteResponse, error)
	checkAssociation func(tokenAddress, accountID string) (*wire.AssociationCheckResponse, error)
	submitTrade      func(direction entity.TradeDirection, order wire.TradeOrder) (*wire.TradeResult, error)
	interactions     func(tokenID string) (*wire.InteractionsResponse, error)
	recordAction     func(tokenID, action string) (*wire.InteractionRecordResponse, error)
	tokenBurns       func(tokenID string, limit int) (*wire.BurnsResponse, error)
	tokenFees        func(tokenAddress string, limit int) (*wire.FeesResponse, error)
	tokenBalance     func(tokenAddress, account string) (*wire.BalanceResponse, error)
}

func (f *fakeHederaClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
}

func (f *fakeHederaClient) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

var errFakeUnset = errors.New("fake method not configured")

func (f *fakeHederaClient) HeliswapPool(_ context.Context, tokenAddress string) (*wire.HeliswapPoolResponse, error) {
	f.record("HeliswapPool")
	if f.heliswapPool == nil {
		return nil, errFakeUnset
	}
	return f.heliswapPool(tokenAddress)
}

func (f *fakeHederaClient) TokenAnalytics(_ context.Context, tokenAddress string) (*wire.TokenAnalyticsResponse, error) {
	f.record("TokenAnalytics")
	if f.tokenAnalytics == nil {
		return nil, errFakeUnset
	}
	return f.tokenAnalytics(tokenAddress)
}

func (f *fakeHederaClient) CustomPool(_ context.Context, tokenAddress string) (*wire.CustomPoolResponse, error) {
	f.record("CustomPool")
	if f.customPool == nil {
		return nil, errFakeUnset
	}
	return f.customPool(tokenAddress)
}

func (f *fakeHederaClient) CustomPrice(_ context.Context, tokenAddress, amount string) (*wire.CustomPriceResponse, error) {
	f.record("CustomPrice")
	if f.customPrice == nil {
		return nil, errFakeUnset
	}
	return f.customPrice(tokenAddress, amount)
}

func (f *fakeHederaClient) HeliswapQuote(_ context.Context, tokenAddress, amountWei string, direction entity.TradeDirection, slippage int) (*wire.HeliswapQuoteResponse, error) {
	f.record("HeliswapQuote")
	if f.heliswapQuote == nil {
		return nil, errFakeUnset
	}
	return f.heliswapQuote(tokenAddress, amountWei, direction, slippage)
}

func (f *fakeHederaClient) CheckAssociation(_ context.Context, tokenAddress, accountID string) (*wire.AssociationCheckResponse, error) {
	f.record("CheckAssociation")
	if f.checkAssociation == nil {
		return nil, errFakeUnset
	}
	return f.checkAssociation(tokenAddress, accountID)
}

func (f *fakeHederaClient) SubmitTrade(_ context.Context, direction entity.TradeDirection, order wire.TradeOrder) (*wire.TradeResult, error) {
	f.record("SubmitTrade")
	if f.submitTrade == nil {
		return nil, errFakeUnset
	}
	return f.submitTrade(direction, order)
}

func (f *fakeHederaClient) TokenInteractions(_ context.Context, tokenID string) (*wire.InteractionsResponse, error) {
	f.record("TokenInteractions")
	if f.interactions == nil {
		return nil, errFakeUnset
	}
	return f.interactions(tokenID)
}

func (f *fakeHederaClient) RecordInteraction(_ context.Context, tokenID, action string) (*wire.InteractionRecordResponse, error) {
	f.record("RecordInteraction")
	if f.recordAction == nil {
		return nil, errFakeUnset
	}
	return f.recordAction(tokenID, action)
}

func (f *fakeHederaClient) TokenBurns(_ context.Context, tokenID string, limit int) (*wire.BurnsResponse, error) {
	f.record("TokenBurns")
	if f.tokenBurns == nil {
		return nil, errFakeUnset
	}
	return f.tokenBurns(tokenID, limit)
}

func (f *fakeHederaClient) TokenFees(_ context.Context, tokenAddress string, limit int) (*wire.FeesResponse, error) {
	f.record("TokenFees")
	if f.tokenFees == nil {
		return nil, errFakeUnset
	}
	return f.tokenFees(tokenAddress, limit)
}

func (f *fakeHederaClient) TokenBalance(_ context.Context, tokenAddress, account string) (*wire.BalanceResponse, error) {
	f.record("TokenBalance")
	if f.tokenBalance == nil {
		return nil, errFakeUnset
	}
	return f.tokenBalance(tokenAddress, account)
}

// fakeMiddlewareClient implements httpclient.MiddlewareClient.
type fakeMiddlewareClient struct {
	tokenization  func(tokenName string) (*entity.TokenInfo, error)
	extensionInfo func(extensionID string) (*entity.ExtensionInfo, error)
	logo          func(extensionID string) (string, error)
	creatorCheck  func(tokenID string) (bool, error)
	updateSocials func(tokenID string, links entity.SocialLinks) (*entity.SocialLinks, error)
}

func (f *fakeMiddlewareClient) GetTokenization(_ context.Context, tokenName string) (*entity.TokenInfo, error) {
	if f.tokenization == nil {
		return nil, errFakeUnset
	}
	return f.tokenization(tokenName)
}

func (f *fakeMiddlewareClient) GetExtensionInfo(_ context.Context, extensionID string) (*entity.ExtensionInfo, error) {
	if f.extensionInfo == nil {
		return nil, errors.New("no extension info")
	}
	return f.extensionInfo(extensionID)
}

func (f *fakeMiddlewareClient) GetLogo(_ context.Context, extensionID string) (string, error) {
	if f.logo == nil {
		return "", errors.New("no logo")
	}
	return f.logo(extensionID)
}

func (f *fakeMiddlewareClient) CheckTokenCreator(_ context.Context, tokenID string) (bool, error) {
	if f.creatorCheck == nil {
		return false, nil
	}
	return f.creatorCheck(tokenID)
}

func (f *fakeMiddlewareClient) UpdateSocials(_ context.Context, tokenID string, links entity.SocialLinks) (*entity.SocialLinks, error) {
	if f.updateSocials == nil {
		return nil, errFakeUnset
	}
	return f.updateSocials(tokenID, links)
}

// fakeWalletService implements port.WalletService with a fixed session.
type fakeWalletService struct {
	session *entity.WalletSession
	balance float64
}

func (f *fakeWalletService) Restore() (*entity.WalletSession, error) {
	if f.session == nil {
		return nil, entity.ErrNoSession
	}
	return f.session, nil
}

func (f *fakeWalletService) Connect(_ context.Context, input string) (*entity.WalletSession, error) {
	f.session = &entity.WalletSession{AccountID: input}
	return f.session, nil
}

func (f *fakeWalletService) Disconnect() error {
	f.session = nil
	return nil
}

func (f *fakeWalletService) Session() *entity.WalletSession { return f.session }

func (f *fakeWalletService) TokenBalance(context.Context, string) (float64, error) {
	return f.balance, nil
}

// fakeMarketService implements port.MarketDataService with canned data.
type fakeMarketService struct {
	mu    sync.Mutex
	data  *entity.MarketData
	loads int
}

func (f *fakeMarketService) Load(context.Context, string) *entity.MarketData {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.data == nil {
		return entity.MockMarketData()
	}
	return f.data
}

func (f *fakeMarketService) loadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads
}

// fakeAnalyticsService implements port.AnalyticsService.
type fakeAnalyticsService struct {
	bundle *entity.AnalyticsBundle
}

func (f *fakeAnalyticsService) Refresh(context.Context, string) *entity.AnalyticsBundle {
	if f.bundle == nil {
		return &entity.AnalyticsBundle{}
	}
	return f.bundle
}

// nopLogger implements port.Logger and drops everything.
type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
