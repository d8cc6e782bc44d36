package restapi

import (
	"errors"
	"net/http"

	"token_dashboard/internal/app/port"
	"token_dashboard/internal/domain/entity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OpenDashboardRequest is the body of POST /dashboard/open.
type OpenDashboardRequest struct {
	TokenName string `json:"tokenName" binding:"required"`
}

// DashboardHandler handles HTTP requests for the token dashboard state.
type DashboardHandler struct {
	dashboard port.DashboardService
	logger    *zap.Logger
}

// NewDashboardHandler creates a new instance of DashboardHandler.
func NewDashboardHandler(ds port.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: ds,
		logger:    logger.Named("DashboardHandler"),
	}
}

// OpenHandler loads a token dashboard by token name and starts polling.
func (h *DashboardHandler) OpenHandler(c *gin.Context) {
	var req OpenDashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.dashboard.Open(c.Request.Context(), req.TokenName)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrTokenNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "token not found"})
		case errors.Is(err, entity.ErrTokenUnavailable):
			h.logger.Warn("Token lookup unavailable", zap.String("tokenName", req.TokenName), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "token temporarily unavailable"})
		default:
			h.logger.Error("Failed to open dashboard", zap.String("tokenName", req.TokenName), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, state)
}

// StateHandler returns the current dashboard state.
func (h *DashboardHandler) StateHandler(c *gin.Context) {
	state := h.dashboard.State()
	if state == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no dashboard open"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// RefreshMarketHandler forces an immediate market refresh.
func (h *DashboardHandler) RefreshMarketHandler(c *gin.Context) {
	h.dashboard.RefreshMarket(c.Request.Context())
	state := h.dashboard.State()
	if state == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no dashboard open"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// RecordInteractionHandler records a test or download interaction.
func (h *DashboardHandler) RecordInteractionHandler(c *gin.Context) {
	action := c.Param("action")
	if err := h.dashboard.RecordInteraction(c.Request.Context(), action); err != nil {
		h.logger.Warn("Failed to record interaction", zap.String("action", action), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.dashboard.State())
}

// UpdateSocialsRequest is the body of POST /dashboard/socials.
type UpdateSocialsRequest struct {
	Twitter  string `json:"twitter"`
	Telegram string `json:"telegram"`
	Discord  string `json:"discord"`
}

// UpdateSocialsHandler saves the creator-managed social links for the
// open token.
func (h *DashboardHandler) UpdateSocialsHandler(c *gin.Context) {
	var req UpdateSocialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.dashboard.UpdateSocials(c.Request.Context(), entity.SocialLinks{
		Twitter:  req.Twitter,
		Telegram: req.Telegram,
		Discord:  req.Discord,
	})
	if err != nil {
		h.logger.Warn("Failed to update social links", zap.Error(err))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"socialLinks": saved})
}

// CloseHandler stops the pollers for the open dashboard.
func (h *DashboardHandler) CloseHandler(c *gin.Context) {
	h.dashboard.Close()
	c.JSON(http.StatusOK, gin.H{"status": "closed"})
}
