package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"token_dashboard/internal/app/port"
	"token_dashboard/internal/app/service"
	"token_dashboard/internal/domain/entity"
	"token_dashboard/internal/infrastructure/configloader"
	"token_dashboard/internal/infrastructure/httpclient"
	"token_dashboard/internal/infrastructure/restapi"
	"token_dashboard/internal/infrastructure/sessionstore"
	"token_dashboard/internal/pkg/logger"
	"token_dashboard/internal/pkg/utils"
	"token_dashboard/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	slogHandler := zapslog.NewHandler(zapLogger.Core(), &zapslog.HandlerOptions{})
	slog.SetDefault(slog.New(slogHandler))

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Warnf("Invalid log level in config: %s. Defaulting to Info.", cfg.Logging.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	logger.InitSlog(cfg.Logging.Level)

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	metrics.MustRegisterMetrics()

	appLogger := logger.NewSlogAdapter()

	// Outbound clients
	middlewareClient := httpclient.NewMiddlewareClient(
		cfg.Middleware.BaseURL,
		cfg.Middleware.APIToken,
		time.Duration(cfg.Middleware.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)
	hederaClient := httpclient.NewHederaServiceClient(
		cfg.HederaService.BaseURL,
		time.Duration(cfg.HederaService.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)
	mirrorClient := httpclient.NewMirrorClient(
		cfg.Mirror.BaseURL,
		time.Duration(cfg.Mirror.RequestTimeoutMillis)*time.Millisecond,
		cfg.Mirror.RateLimit,
		cfg.Mirror.BurstLimit,
		zapLogger,
	)
	paymentsClient := httpclient.NewPaymentsClient(
		cfg.Payments.BaseURL,
		cfg.Payments.APIToken,
		time.Duration(cfg.Payments.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)
	zapLogger.Info("Outbound clients initialized",
		zap.String("middleware", cfg.Middleware.BaseURL),
		zap.String("hederaService", cfg.HederaService.BaseURL),
		zap.String("mirror", cfg.Mirror.BaseURL))

	store, err := sessionstore.NewFileStore(
		cfg.Session.StateDir,
		time.Duration(cfg.Session.TTLMinutes)*time.Minute,
		appLogger,
	)
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}

	// Services
	marketSvc := service.NewMarketDataService(
		hederaClient,
		time.Duration(cfg.Cache.MarketTTLSeconds)*time.Second,
		time.Duration(cfg.Cache.CleanupIntervalMinutes)*time.Minute,
		appLogger,
	)
	analyticsSvc := service.NewAnalyticsService(hederaClient, appLogger)
	dashboardSvc := service.NewDashboardService(middlewareClient, hederaClient, marketSvc, analyticsSvc, cfg, appLogger)
	walletSvc := service.NewWalletService(store, mirrorClient, hederaClient, appLogger)
	subscriptionSvc := service.NewSubscriptionService(paymentsClient, store, appLogger)

	if _, err := walletSvc.Restore(); err != nil && !errors.Is(err, entity.ErrNoSession) {
		zapLogger.Warn("Wallet session restore failed", zap.Error(err))
	}

	tradeSvc := service.NewTradeOrchestrator(
		hederaClient,
		walletSvc,
		cfg,
		appLogger,
		func() string { return currentTokenID(dashboardSvc) },
		func() *entity.MarketData { return currentMarket(dashboardSvc) },
		func() { dashboardSvc.RefreshMarket(context.Background()) },
	)
	zapLogger.Info("Services initialized")

	// HTTP surface
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))
	router.Use(utils.ZapLoggerMiddleware(zapLogger))
	router.Use(gin.Recovery())

	restapi.RegisterRoutes(
		router,
		restapi.NewDashboardHandler(dashboardSvc, zapLogger),
		restapi.NewWalletHandler(walletSvc, tradeSvc, zapLogger),
		restapi.NewTradeHandler(tradeSvc, zapLogger),
		restapi.NewSubscriptionHandler(subscriptionSvc, store, zapLogger),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	zapLogger.Info("Prometheus metrics endpoint enabled", zap.String("path", "/metrics"))

	pprofRouter := router.Group("/debug/pprof")
	{
		pprofRouter.GET("/", gin.WrapF(pprof.Index))
		pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
		pprofRouter.POST("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
		pprofRouter.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
		pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
	}
	zapLogger.Info("Pprof endpoints enabled under /debug/pprof")

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	dashboardSvc.Close()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}

func currentTokenID(ds port.DashboardService) string {
	state := ds.State()
	if state == nil || state.TokenInfo == nil {
		return ""
	}
	return state.TokenInfo.TokenID
}

func currentMarket(ds port.DashboardService) *entity.MarketData {
	state := ds.State()
	if state == nil {
		return nil
	}
	return state.Market
}
