package service

import (
	"context"

	"token_dashboard/internal/app/port"
	"token_dashboard/internal/domain/entity"
	"token_dashboard/internal/infrastructure/httpclient"
	"token_dashboard/pkg/metrics"
)

// subscriptionServiceImpl implements port.SubscriptionService.
type subscriptionServiceImpl struct {
	payments httpclient.PaymentsClient
	store    port.SessionStore
	logger   port.Logger
}

// NewSubscriptionService creates a new instance of subscriptionServiceImpl.
func NewSubscriptionService(pc httpclient.PaymentsClient, store port.SessionStore, l port.Logger) port.SubscriptionService {
	return &subscriptionServiceImpl{payments: pc, store: store, logger: l}
}

// Overview implements port.SubscriptionService. A pending checkout
// selection is surfaced together with its plan record; having no active
// subscription is not an error, the overview just carries nil.
func (s *subscriptionServiceImpl) Overview(ctx context.Context) (*entity.SubscriptionOverview, error) {
	out := &entity.SubscriptionOverview{Prefs: s.store.LoadPrefs()}

	sub, err := s.payments.Subscription(ctx)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("payments_subscription", "error").Inc()
		s.logger.Debug("No subscription reported", "error", err)
	} else {
		metrics.UpstreamRequestsTotal.WithLabelValues("payments_subscription", "ok").Inc()
		out.Subscription = sub
	}

	if out.Prefs.SelectedPlanID != "" {
		plan, err := s.payments.Plan(ctx, out.Prefs.SelectedPlanID)
		if err != nil {
			s.logger.Warn("Selected plan lookup failed, dropping stale checkout selection",
				"planId", out.Prefs.SelectedPlanID, "error", err)
			_ = s.store.ClearPrefs()
			out.Prefs = entity.CheckoutPrefs{}
		} else {
			out.SelectedPlan = plan
		}
	}
	return out, nil
}

// ChangePlan implements port.SubscriptionService. The checkout selection
// is consumed on success so a reload does not re-trigger the change.
func (s *subscriptionServiceImpl) ChangePlan(ctx context.Context, planID, billingCycle string) error {
	if err := s.payments.ChangePlan(ctx, planID, billingCycle); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("payments_change_plan", "error").Inc()
		return err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("payments_change_plan", "ok").Inc()
	if err := s.store.ClearPrefs(); err != nil {
		s.logger.Warn("Failed to clear checkout prefs after plan change", "error", err)
	}
	s.logger.Info("Plan change requested", "planId", planID, "billingCycle", billingCycle)
	return nil
}

// Cancel implements port.SubscriptionService.
func (s *subscriptionServiceImpl) Cancel(ctx context.Context, immediately bool) error {
	if err := s.payments.CancelSubscription(ctx, immediately); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("payments_cancel", "error").Inc()
		return err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("payments_cancel", "ok").Inc()
	s.logger.Info("Subscription cancelled", "immediately", immediately)
	return nil
}

// CancelPlanChange implements port.SubscriptionService.
func (s *subscriptionServiceImpl) CancelPlanChange(ctx context.Context) error {
	if err := s.payments.CancelPlanChange(ctx); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("payments_cancel_plan_change", "error").Inc()
		return err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("payments_cancel_plan_change", "ok").Inc()
	s.logger.Info("Pending plan change cancelled")
	return nil
}
