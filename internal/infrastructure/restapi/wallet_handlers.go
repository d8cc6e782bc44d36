package restapi

import (
	"errors"
	"net/http"

	"token_dashboard/internal/app/port"
	"token_dashboard/internal/domain/entity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConnectWalletRequest is the body of POST /wallet/connect. Address may be
// a Hedera account id or an EVM address.
type ConnectWalletRequest struct {
	Address string `json:"address" binding:"required"`
}

// ConnectWalletResponse carries the new session and, when a trade was
// waiting on the connect, the state of its resumed submission.
type ConnectWalletResponse struct {
	Session      *entity.WalletSession `json:"session"`
	ResumedTrade *entity.TradeState    `json:"resumedTrade,omitempty"`
}

// WalletHandler handles HTTP requests for the wallet session.
type WalletHandler struct {
	wallet port.WalletService
	trade  port.TradeOrchestrator
	logger *zap.Logger
}

// NewWalletHandler creates a new instance of WalletHandler.
func NewWalletHandler(ws port.WalletService, to port.TradeOrchestrator, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{
		wallet: ws,
		trade:  to,
		logger: logger.Named("WalletHandler"),
	}
}

// ConnectHandler connects a wallet and resumes any trade that was parked
// waiting for one.
func (h *WalletHandler) ConnectHandler(c *gin.Context) {
	var req ConnectWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.wallet.Connect(c.Request.Context(), req.Address)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidWalletAddress) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Wallet connect failed", zap.String("address", req.Address), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	resp := ConnectWalletResponse{Session: sess}
	if state, resumed := h.trade.ResumePending(c.Request.Context()); resumed {
		resp.ResumedTrade = &state
	}
	c.JSON(http.StatusOK, resp)
}

// DisconnectHandler clears the wallet session.
func (h *WalletHandler) DisconnectHandler(c *gin.Context) {
	if err := h.wallet.Disconnect(); err != nil {
		h.logger.Error("Wallet disconnect failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "disconnected"})
}

// SessionHandler returns the active session, restoring a persisted one if
// nothing is in memory yet.
func (h *WalletHandler) SessionHandler(c *gin.Context) {
	sess := h.wallet.Session()
	if sess == nil {
		restored, err := h.wallet.Restore()
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no wallet session"})
			return
		}
		sess = restored
	}
	c.JSON(http.StatusOK, sess)
}

// BalanceHandler returns the connected wallet's balance of a token.
func (h *WalletHandler) BalanceHandler(c *gin.Context) {
	tokenID := c.Query("tokenId")
	if tokenID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tokenId query parameter is required"})
		return
	}

	balance, err := h.wallet.TokenBalance(c.Request.Context(), tokenID)
	if err != nil {
		if errors.Is(err, entity.ErrNoWallet) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no wallet connected"})
			return
		}
		h.logger.Warn("Balance lookup failed", zap.String("tokenId", tokenID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokenId": tokenID, "balance": balance})
}
