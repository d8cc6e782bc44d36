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

// MiddlewareClient defines the interface for the middleware REST API that
// owns token records and extension metadata.
type MiddlewareClient interface {
	GetTokenization(ctx context.Context, tokenName string) (*domain.TokenInfo, error)
	GetExtensionInfo(ctx context.Context, extensionID string) (*domain.ExtensionInfo, error)
	GetLogo(ctx context.Context, extensionID string) (string, error)
	CheckTokenCreator(ctx context.Context, tokenID string) (bool, error)
	UpdateSocials(ctx context.Context, tokenID string, links domain.SocialLinks) (*domain.SocialLinks, error)
}

// middlewareClientImpl is the fasthttp implementation of MiddlewareClient.
type middlewareClientImpl struct {
	client   *fasthttp.Client
	baseURL  string
	apiToken string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewMiddlewareClient creates a new instance of middlewareClientImpl.
func NewMiddlewareClient(baseURL, apiToken string, timeout time.Duration, logger *zap.Logger) MiddlewareClient {
	return &middlewareClientImpl{
		client:   &fasthttp.Client{},
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiToken: apiToken,
		timeout:  timeout,
		logger:   logger.Named("MiddlewareClient"),
	}
}

// GetTokenization implements the MiddlewareClient interface. A 404 maps to
// entity.ErrTokenNotFound; any other non-OK status or a success:false body
// maps to entity.ErrTokenUnavailable.
func (c *middlewareClientImpl) GetTokenization(ctx context.Context, tokenName string) (*domain.TokenInfo, error) {
	requestURL := fmt.Sprintf("%s/middleware/hedera/public/tokenization/%s", c.baseURL, url.PathEscape(tokenName))
	c.logger.Debug("Requesting tokenization record", zap.String("url", requestURL))

	status, rawBody, err := doRequest(ctx, c.client, fasthttp.MethodGet, requestURL, nil, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenUnavailable, err)
	}
	if status == fasthttp.StatusNotFound {
		return nil, domain.ErrTokenNotFound
	}
	if status != fasthttp.StatusOK {
		c.logger.Warn("Tokenization lookup failed",
			zap.Int("statusCode", status),
			zap.ByteString("responseBody", rawBody))
		return nil, fmt.Errorf("%w: status %d", domain.ErrTokenUnavailable, status)
	}

	var body entity.TokenizationResponse
	if err := json.Unmarshal(rawBody, &body); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %v", domain.ErrTokenUnavailable, err)
	}
	if !body.Success || body.Tokenization == nil {
		return nil, fmt.Errorf("%w: server reported failure", domain.ErrTokenUnavailable)
	}
	return mapTokenization(body.Tokenization), nil
}

// GetExtensionInfo implements the MiddlewareClient interface. Best-effort:
// callers treat any error as "no extension info".
func (c *middlewareClientImpl) GetExtensionInfo(ctx context.Context, extensionID string) (*domain.ExtensionInfo, error) {
	requestURL := fmt.Sprintf("%s/middleware/hedera/extension-info/%s", c.baseURL, url.PathEscape(extensionID))

	status, rawBody, err := doRequest(ctx, c.client, fasthttp.MethodGet, requestURL, nil, c.timeout)
	if err != nil {
		return nil, err
	}
	if status != fasthttp.StatusOK {
		return nil, fmt.Errorf("extension-info request failed with status %d", status)
	}

	var body entity.ExtensionInfoResponse
	if err := json.Unmarshal(rawBody, &body); err != nil {
		return nil, fmt.Errorf("failed to unmarshal extension-info response: %w", err)
	}
	if !body.Success {
		return nil, fmt.Errorf("extension-info reported failure")
	}

	info := &domain.ExtensionInfo{Title: body.Title, FileCount: body.FileCount}
	if body.ExtensionDetails != nil {
		info.Details = &domain.ExtensionDetails{
			Name:        body.ExtensionDetails.Name,
			Version:     body.ExtensionDetails.Version,
			Description: body.ExtensionDetails.Description,
			Permissions: body.ExtensionDetails.Permissions,
		}
	}
	for _, f := range body.Files {
		info.Files = append(info.Files, domain.ExtensionFile{Name: f.Name, Size: f.Size})
	}
	return info, nil
}

// GetLogo implements the MiddlewareClient interface. Best-effort.
func (c *middlewareClientImpl) GetLogo(ctx context.Context, extensionID string) (string, error) {
	requestURL := fmt.Sprintf("%s/middleware/hedera/get-logo/%s", c.baseURL, url.PathEscape(extensionID))

	status, rawBody, err := doRequest(ctx, c.client, fasthttp.MethodGet, requestURL, nil, c.timeout)
	if err != nil {
		return "", err
	}
	if status != fasthttp.StatusOK {
		return "", fmt.Errorf("get-logo request failed with status %d", status)
	}

	var body entity.LogoResponse
	if err := json.Unmarshal(rawBody, &body); err != nil {
		return "", fmt.Errorf("failed to unmarshal logo response: %w", err)
	}
	if !body.Success || body.LogoURL == "" {
		return "", fmt.Errorf("no logo available")
	}
	return body.LogoURL, nil
}

// CheckTokenCreator implements the MiddlewareClient interface.
func (c *middlewareClientImpl) CheckTokenCreator(ctx context.Context, tokenID string) (bool, error) {
	requestURL := fmt.Sprintf("%s/middleware/hedera/check-token-creator/%s", c.baseURL, url.PathEscape(tokenID))

	status, rawBody, err := c.doAuthorized(ctx, fasthttp.MethodGet, requestURL, nil)
	if err != nil {
		return false, err
	}
	if status != fasthttp.StatusOK {
		return false, fmt.Errorf("check-token-creator request failed with status %d", status)
	}

	var body entity.CreatorCheckResponse
	if err := json.Unmarshal(rawBody, &body); err != nil {
		return false, fmt.Errorf("failed to unmarshal creator check response: %w", err)
	}
	return body.Success && body.IsCreator, nil
}

// UpdateSocials implements the MiddlewareClient interface.
func (c *middlewareClientImpl) UpdateSocials(ctx context.Context, tokenID string, links domain.SocialLinks) (*domain.SocialLinks, error) {
	requestURL := fmt.Sprintf("%s/middleware/hedera/update-socials/%s", c.baseURL, url.PathEscape(tokenID))

	payload, err := json.Marshal(entity.UpdateSocialsRequest{
		Twitter:  links.Twitter,
		Telegram: links.Telegram,
		Discord:  links.Discord,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal socials payload: %w", err)
	}

	status, rawBody, err := c.doAuthorized(ctx, fasthttp.MethodPost, requestURL, payload)
	if err != nil {
		return nil, err
	}

	var body entity.UpdateSocialsResponse
	if err := json.Unmarshal(rawBody, &body); err != nil {
		return nil, fmt.Errorf("failed to unmarshal update-socials response: %w", err)
	}
	if status != fasthttp.StatusOK || !body.Success {
		msg := body.Message
		if msg == "" {
			msg = fmt.Sprintf("status %d", status)
		}
		return nil, fmt.Errorf("update-socials failed: %s", msg)
	}

	out := &domain.SocialLinks{}
	if body.SocialLinks != nil {
		out.Twitter = body.SocialLinks.Twitter
		out.Telegram = body.SocialLinks.Telegram
		out.Discord = body.SocialLinks.Discord
	}
	return out, nil
}

// doAuthorized sends the request with the configured bearer token attached.
func (c *middlewareClientImpl) doAuthorized(ctx context.Context, method, requestURL string, payload []byte) (int, []byte, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(method)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
	if len(payload) > 0 {
		req.SetBody(payload)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return 0, nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			return 0, nil, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}
	return resp.StatusCode(), append([]byte(nil), resp.Body()...), nil
}

func mapTokenization(rec *entity.TokenizationRecord) *domain.TokenInfo {
	info := &domain.TokenInfo{
		TokenID:             rec.TokenID,
		TokenName:           rec.TokenName,
		TokenSymbol:         rec.TokenSymbol,
		CreatorWallet:       rec.CreatorWallet,
		CreatorEmail:        rec.CreatorEmail,
		TotalSupply:         rec.TotalSupply,
		InitialPrice:        rec.InitialPrice,
		Description:         rec.Description,
		LogoURL:             rec.LogoURL,
		ExtensionLink:       rec.ExtensionLink,
		ExtensionID:         rec.ExtensionID,
		HederaTransactionID: rec.HederaTransactionID,
		CreatedAt:           rec.CreatedAt,
		Status:              rec.Status,
	}
	if rec.SocialLinks != nil {
		info.SocialLinks = &domain.SocialLinks{
			Twitter:  rec.SocialLinks.Twitter,
			Telegram: rec.SocialLinks.Telegram,
			Discord:  rec.SocialLinks.Discord,
		}
	}
	if rec.Features != nil {
		info.Features = &domain.TokenFeatures{
			BundleOptIn:       rec.Features.BundleOptIn,
			EarlyBuyerAirdrop: rec.Features.EarlyBuyerAirdrop,
			EnableDAOVoting:   rec.Features.EnableDAOVoting,
		}
	}
	return info
}
