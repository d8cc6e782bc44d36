package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	_ "github.com/json-iterator/go"
)

// RegisterRoutes mounts all API routes on the given router.
func RegisterRoutes(
	router *gin.Engine,
	dashboard *DashboardHandler,
	wallet *WalletHandler,
	trade *TradeHandler,
	subscription *SubscriptionHandler,
) {
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	v1 := router.Group("/api/v1")
	{
		d := v1.Group("/dashboard")
		{
			d.POST("/open", dashboard.OpenHandler)
			d.GET("/state", dashboard.StateHandler)
			d.POST("/refresh-market", dashboard.RefreshMarketHandler)
			d.POST("/interactions/:action", dashboard.RecordInteractionHandler)
			d.POST("/socials", dashboard.UpdateSocialsHandler)
			d.POST("/close", dashboard.CloseHandler)
		}

		w := v1.Group("/wallet")
		{
			w.POST("/connect", wallet.ConnectHandler)
			w.POST("/disconnect", wallet.DisconnectHandler)
			w.GET("/session", wallet.SessionHandler)
			w.GET("/balance", wallet.BalanceHandler)
		}

		t := v1.Group("/trade")
		{
			t.POST("/input", trade.InputHandler)
			t.POST("/submit", trade.SubmitHandler)
			t.POST("/associate", trade.AssociateHandler)
			t.GET("/state", trade.StateHandler)
			t.POST("/reset", trade.ResetHandler)
		}

		s := v1.Group("/subscription")
		{
			s.GET("", subscription.OverviewHandler)
			s.POST("/checkout-prefs", subscription.SavePrefsHandler)
			s.DELETE("/checkout-prefs", subscription.ClearPrefsHandler)
			s.POST("/change-plan", subscription.ChangePlanHandler)
			s.POST("/cancel", subscription.CancelHandler)
			s.POST("/cancel-plan-change", subscription.CancelPlanChangeHandler)
		}
	}
}
