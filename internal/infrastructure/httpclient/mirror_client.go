package httpclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"token_dashboard/internal/entity"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// MirrorClient defines the interface for the read-only Hedera mirror node,
// used only for bidirectional account/EVM address resolution.
type MirrorClient interface {
	AccountByID(ctx context.Context, accountID string) (*entity.MirrorAccount, error)
	AccountByEVM(ctx context.Context, evmAddress string) (*entity.MirrorAccount, error)
}

// mirrorClientImpl is the fasthttp implementation of MirrorClient. The
// public mirror node throttles aggressively, so calls go through a limiter.
type mirrorClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewMirrorClient creates a new instance of mirrorClientImpl.
func NewMirrorClient(baseURL string, timeout time.Duration, rps float64, burst int, logger *zap.Logger) MirrorClient {
	if rps <= 0 {
		rps = 5
	}
	if burst <= 0 {
		burst = 2
	}
	return &mirrorClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger.Named("MirrorClient"),
	}
}

func (c *mirrorClientImpl) get(ctx context.Context, requestURL string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("mirror rate limiter: %w", err)
	}

	c.logger.Debug("Requesting mirror node", zap.String("url", requestURL))

	status, rawBody, err := doRequest(ctx, c.client, fasthttp.MethodGet, requestURL, nil, c.timeout)
	if err != nil {
		return err
	}
	if status != fasthttp.StatusOK {
		return fmt.Errorf("mirror node request to %s failed with status %d", requestURL, status)
	}
	if err := json.Unmarshal(rawBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal mirror node response from %s: %w", requestURL, err)
	}
	return nil
}

// AccountByID implements the MirrorClient interface.
func (c *mirrorClientImpl) AccountByID(ctx context.Context, accountID string) (*entity.MirrorAccount, error) {
	var body entity.MirrorAccount
	requestURL := fmt.Sprintf("%s/api/v1/accounts/%s", c.baseURL, url.PathEscape(accountID))
	if err := c.get(ctx, requestURL, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// AccountByEVM implements the MirrorClient interface.
func (c *mirrorClientImpl) AccountByEVM(ctx context.Context, evmAddress string) (*entity.MirrorAccount, error) {
	var page entity.MirrorAccountsPage
	requestURL := fmt.Sprintf("%s/api/v1/accounts?evm_address=%s", c.baseURL, url.QueryEscape(evmAddress))
	if err := c.get(ctx, requestURL, &page); err != nil {
		return nil, err
	}
	if len(page.Accounts) == 0 {
		return nil, fmt.Errorf("no account found for evm address %s", evmAddress)
	}
	return &page.Accounts[0], nil
}
