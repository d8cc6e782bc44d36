package httpclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	domain "token_dashboard/internal/domain/entity"
	"token_dashboard/internal/entity"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// HederaServiceClient defines the interface for the Hedera service API:
// DEX pools, bonding-curve pools, quotes, trades, and per-token analytics.
type HederaServiceClient interface {
	HeliswapPool(ctx context.Context, tokenAddress string) (*entity.HeliswapPoolResponse, error)
	TokenAnalytics(ctx context.Context, tokenAddress string) (*entity.TokenAnalyticsResponse, error)
	CustomPool(ctx context.Context, tokenAddress string) (*entity.CustomPoolResponse, error)
	CustomPrice(ctx context.Context, tokenAddress, amount string) (*entity.CustomPriceResponse, error)
	HeliswapQuote(ctx context.Context, tokenAddress, amountWei string, direction domain.TradeDirection, slippage int) (*entity.HeliswapQuoteResponse, error)
	CheckAssociation(ctx context.Context, tokenAddress, accountID string) (*entity.AssociationCheckResponse, error)
	SubmitTrade(ctx context.Context, direction domain.TradeDirection, order entity.TradeOrder) (*entity.TradeResult, error)
	TokenInteractions(ctx context.Context, tokenID string) (*entity.InteractionsResponse, error)
	RecordInteraction(ctx context.Context, tokenID, action string) (*entity.InteractionRecordResponse, error)
	TokenBurns(ctx context.Context, tokenID string, limit int) (*entity.BurnsResponse, error)
	TokenFees(ctx context.Context, tokenAddress string, limit int) (*entity.FeesResponse, error)
	TokenBalance(ctx context.Context, tokenAddress, account string) (*entity.BalanceResponse, error)
}

// hederaServiceClientImpl is the fasthttp implementation of
// HederaServiceClient.
type hederaServiceClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewHederaServiceClient creates a new instance of hederaServiceClientImpl.
func NewHederaServiceClient(baseURL string, timeout time.Duration, logger *zap.Logger) HederaServiceClient {
	return &hederaServiceClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("HederaServiceClient"),
	}
}

// getJSON fetches requestURL and decodes a 200 body into out.
func (c *hederaServiceClientImpl) getJSON(ctx context.Context, requestURL string, out any) error {
	c.logger.Debug("Requesting Hedera service endpoint", zap.String("url", requestURL))

	status, rawBody, err := doRequest(ctx, c.client, fasthttp.MethodGet, requestURL, nil, c.timeout)
	if err != nil {
		return err
	}
	if status != fasthttp.StatusOK {
		return fmt.Errorf("hedera service request to %s failed with status %d", requestURL, status)
	}
	if err := json.Unmarshal(rawBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response from %s: %w", requestURL, err)
	}
	return nil
}

// HeliswapPool implements the HederaServiceClient interface.
func (c *hederaServiceClientImpl) HeliswapPool(ctx context.Context, tokenAddress string) (*entity.HeliswapPoolResponse, error) {
	var body entity.HeliswapPoolResponse
	requestURL := fmt.Sprintf("%s/heliswap-pool/%s", c.baseURL, tokenAddress)
	if err := c.getJSON(ctx, requestURL, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// TokenAnalytics implements the HederaServiceClient interface.
func (c *hederaServiceClientImpl) TokenAnalytics(ctx context.Context, tokenAddress string) (*entity.TokenAnalyticsResponse, error) {
	var body entity.TokenAnalyticsResponse
	requestURL := fmt.Sprintf("%s/token-analytics/%s", c.baseURL, tokenAddress)
	if err := c.getJSON(ctx, requestURL, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// CustomPool implements the HederaServiceClient interface.
func (c *hederaServiceClientImpl) CustomPool(ctx context.Context, tokenAddress string) (*entity.CustomPoolResponse, error) {
	var body entity.CustomPoolResponse
	requestURL := fmt.Sprintf("%s/custom-pool/%s", c.baseURL, tokenAddress)
	if err := c.getJSON(ctx, requestURL, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// CustomPrice implements the HederaServiceClient interface. Amount is in
// whole tokens, not base units.
func (c *hederaServiceClientImpl) CustomPrice(ctx context.Context, tokenAddress, amount string) (*entity.CustomPriceResponse, error) {
	var body entity.CustomPriceResponse
	requestURL := fmt.Sprintf("%s/custom-price/%s/%s", c.baseURL, tokenAddress, url.PathEscape(amount))
	if err := c.getJSON(ctx, requestURL, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// HeliswapQuote implements the HederaServiceClient interface. AmountWei is
// in base units of the input asset (HBAR for buys, token for sells).
func (c *hederaServiceClientImpl) HeliswapQuote(ctx context.Context, tokenAddress, amountWei string, direction domain.TradeDirection, slippage int) (*entity.HeliswapQuoteResponse, error) {
	var body entity.HeliswapQuoteResponse
	requestURL := fmt.Sprintf("%s/heliswap-quote/%s/%s/%s?slippage=%d",
		c.baseURL, tokenAddress, url.PathEscape(amountWei), direction, slippage)
	if err := c.getJSON(ctx, requestURL, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// CheckAssociation implements the HederaServiceClient interface.
func (c *hederaServiceClientImpl) CheckAssociation(ctx context.Context, tokenAddress, accountID string) (*entity.AssociationCheckResponse, error) {
	var body entity.AssociationCheckResponse
	requestURL := fmt.Sprintf("%s/check-association/%s/%s", c.baseURL, tokenAddress, url.PathEscape(accountID))
	if err := c.getJSON(ctx, requestURL, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// SubmitTrade implements the HederaServiceClient interface.
func (c *hederaServiceClientImpl) SubmitTrade(ctx context.Context, direction domain.TradeDirection, order entity.TradeOrder) (*entity.TradeResult, error) {
	endpoint := "/custom-buy"
	if direction == domain.DirectionSell {
		endpoint = "/custom-sell"
	}
	requestURL := c.baseURL + endpoint

	payload, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal trade order: %w", err)
	}

	c.logger.Debug("Submitting trade", zap.String("url", requestURL), zap.String("direction", string(direction)))

	status, rawBody, err := doRequest(ctx, c.client, fasthttp.MethodPost, requestURL, payload, c.timeout)
	if err != nil {
		return nil, err
	}

	// The trade endpoint reports domain failures in the body, not via
	// status codes; decode regardless of status.
	var body entity.TradeResult
	if err := json.Unmarshal(rawBody, &body); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trade result (status %d): %w", status, err)
	}
	return &body, nil
}

// TokenInteractions implements the HederaServiceClient interface.
func (c *hederaServiceClientImpl) TokenInteractions(ctx context.Context, tokenID string) (*entity.InteractionsResponse, error) {
	var body entity.InteractionsResponse
	requestURL := fmt.Sprintf("%s/token-interactions/%s", c.baseURL, url.PathEscape(tokenID))
	if err := c.getJSON(ctx, requestURL, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// RecordInteraction implements the HederaServiceClient interface. Action is
// "test" or "download".
func (c *hederaServiceClientImpl) RecordInteraction(ctx context.Context, tokenID, action string) (*entity.InteractionRecordResponse, error) {
	requestURL := fmt.Sprintf("%s/token-interactions/%s/%s", c.baseURL, url.PathEscape(tokenID), url.PathEscape(action))

	status, rawBody, err := doRequest(ctx, c.client, fasthttp.MethodPost, requestURL, nil, c.timeout)
	if err != nil {
		return nil, err
	}
	if status != fasthttp.StatusOK {
		return nil, fmt.Errorf("record interaction %s failed with status %d: %s", action, status, string(rawBody))
	}

	var body entity.InteractionRecordResponse
	if err := json.Unmarshal(rawBody, &body); err != nil {
		return nil, fmt.Errorf("failed to unmarshal interaction record response: %w", err)
	}
	return &body, nil
}

// TokenBurns implements the HederaServiceClient interface. Limit is clamped
// to 1..50 server-side; the client clamps too to keep requests canonical.
func (c *hederaServiceClientImpl) TokenBurns(ctx context.Context, tokenID string, limit int) (*entity.BurnsResponse, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 50 {
		limit = 50
	}
	var body entity.BurnsResponse
	requestURL := fmt.Sprintf("%s/token-burns/%s?limit=%d", c.baseURL, url.PathEscape(tokenID), limit)
	if err := c.getJSON(ctx, requestURL, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// TokenFees implements the HederaServiceClient interface.
func (c *hederaServiceClientImpl) TokenFees(ctx context.Context, tokenAddress string, limit int) (*entity.FeesResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	var body entity.FeesResponse
	requestURL := fmt.Sprintf("%s/token-fees/%s?limit=%d", c.baseURL, tokenAddress, limit)
	if err := c.getJSON(ctx, requestURL, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// TokenBalance implements the HederaServiceClient interface. Account may be
// a Hedera account id or an EVM address.
func (c *hederaServiceClientImpl) TokenBalance(ctx context.Context, tokenAddress, account string) (*entity.BalanceResponse, error) {
	var body entity.BalanceResponse
	requestURL := fmt.Sprintf("%s/token-balance/%s/%s", c.baseURL, tokenAddress, url.PathEscape(account))
	if err := c.getJSON(ctx, requestURL, &body); err != nil {
		return nil, err
	}
	return &body, nil
}
