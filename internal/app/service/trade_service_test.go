package service

import (
	"context"
	"testing"
	"time"

	"token_dashboard/internal/domain/entity"
	wire "token_dashboard/internal/entity"
	"token_dashboard/internal/infrastructure/configloader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tradeTestConfig() *configloader.Config {
	return &configloader.Config{
		Trade: configloader.TradeConfig{
			DefaultSlippage:         35,
			QuoteSlippage:           5,
			DebounceMillis:          5,
			AssociationPollSeconds:  1,
			AssociationPollAttempts: 3,
			PostTradeRefreshMillis:  1,
		},
		Network: configloader.NetworkConfig{
			WalletAssociationURL: "https://hashpack.app/dapp",
		},
	}
}

func newTestOrchestrator(hedera *fakeHederaClient, wallet *fakeWalletService, md *entity.MarketData) *tradeOrchestratorImpl {
	orch := NewTradeOrchestrator(
		hedera,
		wallet,
		tradeTestConfig(),
		nopLogger{},
		func() string { return testTokenID },
		func() *entity.MarketData { return md },
		nil,
	)
	return orch.(*tradeOrchestratorImpl)
}

func associated(yes bool) func(string, string) (*wire.AssociationCheckResponse, error) {
	return func(string, string) (*wire.AssociationCheckResponse, error) {
		return &wire.AssociationCheckResponse{Success: true, Associated: yes}, nil
	}
}

func tradeAccepted(hash string) func(entity.TradeDirection, wire.TradeOrder) (*wire.TradeResult, error) {
	return func(entity.TradeDirection, wire.TradeOrder) (*wire.TradeResult, error) {
		result := &wire.TradeResult{Success: true}
		result.Transaction = &struct {
			Hash string `json:"hash"`
		}{Hash: hash}
		return result, nil
	}
}

func TestSubmitWithoutWalletParksTheTrade(t *testing.T) {
	hedera := &fakeHederaClient{}
	wallet := &fakeWalletService{}
	orch := newTestOrchestrator(hedera, wallet, entity.MockMarketData())

	orch.SetInput("10", entity.DirectionBuy)
	state := orch.Submit(context.Background())

	assert.Equal(t, entity.TradePendingWalletConnect, state.Phase)
	assert.Equal(t, "10", state.Request.Amount)
	assert.Equal(t, 0, hedera.callCount("SubmitTrade"))
}

func TestPlaceholderWalletIsNotASigner(t *testing.T) {
	hedera := &fakeHederaClient{}
	wallet := &fakeWalletService{session: &entity.WalletSession{AccountID: "0.0.1234567"}}
	orch := newTestOrchestrator(hedera, wallet, entity.MockMarketData())

	orch.SetInput("10", entity.DirectionBuy)
	state := orch.Submit(context.Background())

	assert.Equal(t, entity.TradePendingWalletConnect, state.Phase)
}

func TestResumePendingAfterWalletConnect(t *testing.T) {
	hedera := &fakeHederaClient{
		checkAssociation: associated(true),
		submitTrade:      tradeAccepted("0xabc"),
	}
	wallet := &fakeWalletService{}
	orch := newTestOrchestrator(hedera, wallet, entity.MockMarketData())

	orch.SetInput("10", entity.DirectionBuy)
	state := orch.Submit(context.Background())
	require.Equal(t, entity.TradePendingWalletConnect, state.Phase)

	wallet.session = &entity.WalletSession{AccountID: "0.0.9001", EVM: "0x1111111111111111111111111111111111111111"}
	state, resumed := orch.ResumePending(context.Background())

	require.True(t, resumed)
	assert.Equal(t, entity.TradeSuccess, state.Phase)
	assert.Equal(t, "0xabc", state.TransactionHash)
	assert.Equal(t, 1, hedera.callCount("SubmitTrade"))

	// A second resume has nothing to do.
	_, resumed = orch.ResumePending(context.Background())
	assert.False(t, resumed)
}

func TestBuyRequiresAssociation(t *testing.T) {
	hedera := &fakeHederaClient{
		checkAssociation: associated(false),
	}
	wallet := &fakeWalletService{session: &entity.WalletSession{AccountID: "0.0.9001"}}
	orch := newTestOrchestrator(hedera, wallet, entity.MockMarketData())

	orch.SetInput("10", entity.DirectionBuy)
	state := orch.Submit(context.Background())

	assert.Equal(t, entity.TradeNeedsAssociation, state.Phase)
	assert.Equal(t, "https://hashpack.app/dapp", state.AssociationURL)
	assert.Equal(t, 0, hedera.callCount("SubmitTrade"), "trade must not be submitted before association")
}

func TestSellSkipsAssociationCheck(t *testing.T) {
	hedera := &fakeHederaClient{
		submitTrade: tradeAccepted("0xsell"),
	}
	wallet := &fakeWalletService{session: &entity.WalletSession{AccountID: "0.0.9001"}}
	orch := newTestOrchestrator(hedera, wallet, entity.MockMarketData())

	orch.SetInput("5", entity.DirectionSell)
	state := orch.Submit(context.Background())

	assert.Equal(t, entity.TradeSuccess, state.Phase)
	assert.Equal(t, 0, hedera.callCount("CheckAssociation"))
}

func TestAssociateAndResumeWaitsForAssociation(t *testing.T) {
	seen := 0
	hedera := &fakeHederaClient{
		checkAssociation: func(string, string) (*wire.AssociationCheckResponse, error) {
			seen++
			return &wire.AssociationCheckResponse{Success: true, Associated: seen > 2}, nil
		},
		submitTrade: tradeAccepted("0xresumed"),
	}
	wallet := &fakeWalletService{session: &entity.WalletSession{AccountID: "0.0.9001"}}
	orch := newTestOrchestrator(hedera, wallet, entity.MockMarketData())

	orch.SetInput("10", entity.DirectionBuy)
	state := orch.Submit(context.Background())
	require.Equal(t, entity.TradeNeedsAssociation, state.Phase)

	state = orch.AssociateAndResume(context.Background())

	assert.Equal(t, entity.TradeSuccess, state.Phase)
	assert.Equal(t, "0xresumed", state.TransactionHash)
}

func TestRejectedTradeCarriesServerMessage(t *testing.T) {
	hedera := &fakeHederaClient{
		checkAssociation: associated(true),
		submitTrade: func(entity.TradeDirection, wire.TradeOrder) (*wire.TradeResult, error) {
			return &wire.TradeResult{Success: false, Error: "INSUFFICIENT_PAYER_BALANCE"}, nil
		},
	}
	wallet := &fakeWalletService{session: &entity.WalletSession{AccountID: "0.0.9001"}}
	orch := newTestOrchestrator(hedera, wallet, entity.MockMarketData())

	orch.SetInput("10", entity.DirectionBuy)
	state := orch.Submit(context.Background())

	assert.Equal(t, entity.TradeFailed, state.Phase)
	assert.Equal(t, "INSUFFICIENT_PAYER_BALANCE", state.Error)
}

func TestInvalidAmountFailsBeforeAnyNetworkCall(t *testing.T) {
	hedera := &fakeHederaClient{}
	wallet := &fakeWalletService{session: &entity.WalletSession{AccountID: "0.0.9001"}}
	orch := newTestOrchestrator(hedera, wallet, entity.MockMarketData())

	orch.SetInput("not-a-number", entity.DirectionBuy)
	state := orch.Submit(context.Background())

	assert.Equal(t, entity.TradeFailed, state.Phase)
	assert.Equal(t, 0, hedera.callCount("CheckAssociation"))
	assert.Equal(t, 0, hedera.callCount("SubmitTrade"))
}

func heliswapSnapshot(decimals int) *entity.MarketData {
	return &entity.MarketData{
		Provider: entity.ProviderHeliswap,
		Price:    0.0042,
		Heliswap: &entity.HeliswapPool{
			TokenInfo: &entity.HeliswapTokenMeta{Symbol: "EXT", Decimals: decimals},
		},
	}
}

func quoteReturning(amountOut string) *wire.HeliswapQuoteResponse {
	resp := &wire.HeliswapQuoteResponse{Success: true}
	resp.Quote = &struct {
		AmountOut string `json:"amountOut"`
		AmountIn  string `json:"amountIn"`
		MinOut    string `json:"minOut"`
	}{AmountOut: amountOut}
	return resp
}

func TestHeliswapBuyEstimateConvertsToDisplayUnits(t *testing.T) {
	hedera := &fakeHederaClient{
		heliswapQuote: func(_, amountWei string, direction entity.TradeDirection, _ int) (*wire.HeliswapQuoteResponse, error) {
			// 10 HBAR in tinybars; 4.2 tokens out at 8 decimals.
			assert.Equal(t, "1000000000", amountWei)
			assert.Equal(t, entity.DirectionBuy, direction)
			return quoteReturning("420000000"), nil
		},
	}
	orch := newTestOrchestrator(hedera, &fakeWalletService{}, heliswapSnapshot(8))

	orch.SetInput("10", entity.DirectionBuy)

	require.Eventually(t, func() bool {
		return orch.State().EstimatedPrice != ""
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "4.2", orch.State().EstimatedPrice)
}

func TestHeliswapSellEstimateUsesTokenDecimals(t *testing.T) {
	hedera := &fakeHederaClient{
		heliswapQuote: func(_, amountWei string, direction entity.TradeDirection, _ int) (*wire.HeliswapQuoteResponse, error) {
			// 2.5 tokens at 6 decimals in; 0.5 HBAR in tinybars out.
			assert.Equal(t, "2500000", amountWei)
			assert.Equal(t, entity.DirectionSell, direction)
			return quoteReturning("50000000"), nil
		},
	}
	orch := newTestOrchestrator(hedera, &fakeWalletService{}, heliswapSnapshot(6))

	orch.SetInput("2.5", entity.DirectionSell)

	require.Eventually(t, func() bool {
		return orch.State().EstimatedPrice != ""
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "0.5", orch.State().EstimatedPrice)
}

func TestConfiguredDefaultSlippageIsApplied(t *testing.T) {
	var got int
	hedera := &fakeHederaClient{
		submitTrade: func(_ entity.TradeDirection, order wire.TradeOrder) (*wire.TradeResult, error) {
			got = order.Slippage
			return &wire.TradeResult{Success: true}, nil
		},
	}
	wallet := &fakeWalletService{session: &entity.WalletSession{AccountID: "0.0.9001"}}
	cfg := tradeTestConfig()
	cfg.Trade.DefaultSlippage = 50
	orch := NewTradeOrchestrator(
		hedera,
		wallet,
		cfg,
		nopLogger{},
		func() string { return testTokenID },
		func() *entity.MarketData { return entity.MockMarketData() },
		nil,
	).(*tradeOrchestratorImpl)

	orch.SetInput("5", entity.DirectionSell)
	state := orch.Submit(context.Background())

	require.Equal(t, entity.TradeSuccess, state.Phase)
	assert.Equal(t, 50, got)
}

func TestDebouncedEstimateLandsAfterTyping(t *testing.T) {
	orch := newTestOrchestrator(&fakeHederaClient{}, &fakeWalletService{}, entity.MockMarketData())

	orch.SetInput("10", entity.DirectionBuy)

	require.Eventually(t, func() bool {
		return orch.State().EstimatedPrice != ""
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "0.042", orch.State().EstimatedPrice)
	assert.Equal(t, entity.TradeIdle, orch.State().Phase)
}

func TestDirectionFlipInvalidatesEstimate(t *testing.T) {
	cfg := tradeTestConfig()
	cfg.Trade.DebounceMillis = 200
	orch := NewTradeOrchestrator(
		&fakeHederaClient{},
		&fakeWalletService{},
		cfg,
		nopLogger{},
		func() string { return testTokenID },
		func() *entity.MarketData { return entity.MockMarketData() },
		nil,
	).(*tradeOrchestratorImpl)

	orch.SetInput("10", entity.DirectionBuy)
	require.Eventually(t, func() bool {
		return orch.State().EstimatedPrice != ""
	}, 2*time.Second, 10*time.Millisecond)

	orch.SetInput("10", entity.DirectionSell)

	// The stale buy estimate is cleared synchronously; the sell estimate
	// only lands after the debounce window.
	state := orch.State()
	assert.Empty(t, state.EstimatedPrice)
	assert.Equal(t, entity.DirectionSell, state.Request.Direction)
}

func TestResetReturnsToIdle(t *testing.T) {
	orch := newTestOrchestrator(&fakeHederaClient{}, &fakeWalletService{}, entity.MockMarketData())

	orch.SetInput("10", entity.DirectionBuy)
	orch.Submit(context.Background())
	orch.Reset()

	state := orch.State()
	assert.Equal(t, entity.TradeIdle, state.Phase)
	assert.Empty(t, state.Error)
	assert.Empty(t, state.EstimatedPrice)
}
