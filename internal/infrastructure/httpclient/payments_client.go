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

// PaymentsClient defines the interface for the subscription/payments
// backend.
type PaymentsClient interface {
	Subscription(ctx context.Context) (*domain.Subscription, error)
	Plan(ctx context.Context, planID string) (*domain.Plan, error)
	ChangePlan(ctx context.Context, planID, billingCycle string) error
	CancelSubscription(ctx context.Context, immediately bool) error
	CancelPlanChange(ctx context.Context) error
}

// paymentsClientImpl is the fasthttp implementation of PaymentsClient.
type paymentsClientImpl struct {
	client   *fasthttp.Client
	baseURL  string
	apiToken string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewPaymentsClient creates a new instance of paymentsClientImpl.
func NewPaymentsClient(baseURL, apiToken string, timeout time.Duration, logger *zap.Logger) PaymentsClient {
	return &paymentsClientImpl{
		client:   &fasthttp.Client{},
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiToken: apiToken,
		timeout:  timeout,
		logger:   logger.Named("PaymentsClient"),
	}
}

func (c *paymentsClientImpl) do(ctx context.Context, method, requestURL string, payload []byte, out any) error {
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
			return fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			return fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return fmt.Errorf("payments request to %s failed with status %d: %s", requestURL, resp.StatusCode(), string(resp.Body()))
	}
	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("failed to unmarshal payments response from %s: %w", requestURL, err)
		}
	}
	return nil
}

// Subscription implements the PaymentsClient interface.
func (c *paymentsClientImpl) Subscription(ctx context.Context) (*domain.Subscription, error) {
	var body entity.SubscriptionResponse
	if err := c.do(ctx, fasthttp.MethodGet, c.baseURL+"/payments/subscription", nil, &body); err != nil {
		return nil, err
	}
	if !body.Success || body.Subscription == nil {
		return nil, fmt.Errorf("no active subscription")
	}
	s := body.Subscription
	return &domain.Subscription{
		PlanID:            s.PlanID,
		PlanName:          s.PlanName,
		Status:            s.Status,
		BillingCycle:      s.BillingCycle,
		CurrentPeriodEnd:  s.CurrentPeriodEnd,
		CancelAtPeriodEnd: s.CancelAtPeriodEnd,
		PendingPlanChange: s.PendingPlanChange,
		CreditsRemaining:  s.CreditsRemaining,
	}, nil
}

// Plan implements the PaymentsClient interface.
func (c *paymentsClientImpl) Plan(ctx context.Context, planID string) (*domain.Plan, error) {
	var body entity.PlanResponse
	requestURL := fmt.Sprintf("%s/payments/plan/%s", c.baseURL, url.PathEscape(planID))
	if err := c.do(ctx, fasthttp.MethodGet, requestURL, nil, &body); err != nil {
		return nil, err
	}
	if !body.Success || body.Plan == nil {
		return nil, fmt.Errorf("plan %s not found", planID)
	}
	p := body.Plan
	return &domain.Plan{
		ID:           p.ID,
		Name:         p.Name,
		PriceMonthly: p.PriceMonthly,
		PriceYearly:  p.PriceYearly,
		Credits:      p.Credits,
		Features:     p.Features,
	}, nil
}

// ChangePlan implements the PaymentsClient interface.
func (c *paymentsClientImpl) ChangePlan(ctx context.Context, planID, billingCycle string) error {
	payload, err := json.Marshal(entity.ChangePlanRequest{PlanID: planID, BillingCycle: billingCycle})
	if err != nil {
		return fmt.Errorf("failed to marshal change-plan payload: %w", err)
	}
	var ack entity.PaymentsAck
	if err := c.do(ctx, fasthttp.MethodPost, c.baseURL+"/payments/change-plan", payload, &ack); err != nil {
		return err
	}
	if !ack.Success {
		return fmt.Errorf("change-plan rejected: %s", ack.Message)
	}
	return nil
}

// CancelSubscription implements the PaymentsClient interface.
func (c *paymentsClientImpl) CancelSubscription(ctx context.Context, immediately bool) error {
	endpoint := "/payments/cancel-subscription"
	if immediately {
		endpoint = "/payments/cancel-subscription-immediately"
	}
	var ack entity.PaymentsAck
	if err := c.do(ctx, fasthttp.MethodPost, c.baseURL+endpoint, nil, &ack); err != nil {
		return err
	}
	if !ack.Success {
		return fmt.Errorf("cancel subscription rejected: %s", ack.Message)
	}
	return nil
}

// CancelPlanChange implements the PaymentsClient interface.
func (c *paymentsClientImpl) CancelPlanChange(ctx context.Context) error {
	var ack entity.PaymentsAck
	if err := c.do(ctx, fasthttp.MethodPost, c.baseURL+"/payments/cancel-plan-change", nil, &ack); err != nil {
		return err
	}
	if !ack.Success {
		return fmt.Errorf("cancel plan change rejected: %s", ack.Message)
	}
	return nil
}
