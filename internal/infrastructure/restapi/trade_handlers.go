package restapi

import (
	"net/http"

	"token_dashboard/internal/app/port"
	"token_dashboard/internal/domain/entity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TradeInputRequest is the body of POST /trade/input.
type TradeInputRequest struct {
	Amount    string `json:"amount"`
	Direction string `json:"direction" binding:"required"`
}

// TradeHandler handles HTTP requests for the trade flow.
type TradeHandler struct {
	trade  port.TradeOrchestrator
	logger *zap.Logger
}

// NewTradeHandler creates a new instance of TradeHandler.
func NewTradeHandler(to port.TradeOrchestrator, logger *zap.Logger) *TradeHandler {
	return &TradeHandler{
		trade:  to,
		logger: logger.Named("TradeHandler"),
	}
}

// InputHandler records the trade input and schedules a debounced estimate.
func (h *TradeHandler) InputHandler(c *gin.Context) {
	var req TradeInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	direction := entity.TradeDirection(req.Direction)
	if !direction.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be buy or sell"})
		return
	}

	h.trade.SetInput(req.Amount, direction)
	c.JSON(http.StatusOK, h.trade.State())
}

// SubmitHandler submits the current trade input.
func (h *TradeHandler) SubmitHandler(c *gin.Context) {
	state := h.trade.Submit(c.Request.Context())
	c.JSON(http.StatusOK, state)
}

// AssociateHandler waits for the account to associate with the token and
// resumes the pending buy. This request blocks for up to the association
// poll budget; callers should use a generous client timeout.
func (h *TradeHandler) AssociateHandler(c *gin.Context) {
	state := h.trade.AssociateAndResume(c.Request.Context())
	c.JSON(http.StatusOK, state)
}

// StateHandler returns the current trade attempt state.
func (h *TradeHandler) StateHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.trade.State())
}

// ResetHandler discards the current trade attempt.
func (h *TradeHandler) ResetHandler(c *gin.Context) {
	h.trade.Reset()
	c.JSON(http.StatusOK, h.trade.State())
}
