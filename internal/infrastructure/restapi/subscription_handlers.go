package restapi

import (
	"net/http"

	"token_dashboard/internal/app/port"
	"token_dashboard/internal/domain/entity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChangePlanAPIRequest is the body of POST /subscription/change-plan.
type ChangePlanAPIRequest struct {
	PlanID       string `json:"planId" binding:"required"`
	BillingCycle string `json:"billingCycle" binding:"required"`
}

// CancelSubscriptionRequest is the body of POST /subscription/cancel.
type CancelSubscriptionRequest struct {
	Immediately bool `json:"immediately"`
}

// SubscriptionHandler handles HTTP requests for subscription management.
type SubscriptionHandler struct {
	subs   port.SubscriptionService
	store  port.SessionStore
	logger *zap.Logger
}

// NewSubscriptionHandler creates a new instance of SubscriptionHandler.
func NewSubscriptionHandler(ss port.SubscriptionService, store port.SessionStore, logger *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subs:   ss,
		store:  store,
		logger: logger.Named("SubscriptionHandler"),
	}
}

// OverviewHandler returns the current subscription plus any pending
// checkout selection.
func (h *SubscriptionHandler) OverviewHandler(c *gin.Context) {
	overview, err := h.subs.Overview(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load subscription overview", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, overview)
}

// SavePrefsHandler persists the checkout selection carried from the
// pricing page.
func (h *SubscriptionHandler) SavePrefsHandler(c *gin.Context) {
	var prefs entity.CheckoutPrefs
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.SavePrefs(prefs); err != nil {
		h.logger.Error("Failed to save checkout prefs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// ClearPrefsHandler drops the pending checkout selection.
func (h *SubscriptionHandler) ClearPrefsHandler(c *gin.Context) {
	if err := h.store.ClearPrefs(); err != nil {
		h.logger.Error("Failed to clear checkout prefs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// ChangePlanHandler requests a plan change.
func (h *SubscriptionHandler) ChangePlanHandler(c *gin.Context) {
	var req ChangePlanAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.subs.ChangePlan(c.Request.Context(), req.PlanID, req.BillingCycle); err != nil {
		h.logger.Error("Plan change failed", zap.String("planId", req.PlanID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "plan change requested"})
}

// CancelHandler cancels the subscription, optionally immediately.
func (h *SubscriptionHandler) CancelHandler(c *gin.Context) {
	var req CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.subs.Cancel(c.Request.Context(), req.Immediately); err != nil {
		h.logger.Error("Subscription cancel failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// CancelPlanChangeHandler withdraws a pending plan change.
func (h *SubscriptionHandler) CancelPlanChangeHandler(c *gin.Context) {
	if err := h.subs.CancelPlanChange(c.Request.Context()); err != nil {
		h.logger.Error("Cancel plan change failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "plan change cancelled"})
}
