package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"log/slog"

	"token_dashboard/internal/app/service"
	"token_dashboard/internal/infrastructure/configloader"
	"token_dashboard/internal/infrastructure/httpclient"
	"token_dashboard/internal/pkg/logger"
	"token_dashboard/internal/pkg/utils"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// snapshot fetches one full dashboard state for a token and prints it as
// JSON, without starting any pollers. Useful for smoke checks and cron
// captures.
func main() {
	tokenName := flag.String("token", "", "token name to snapshot")
	timeout := flag.Duration("timeout", 30*time.Second, "overall fetch timeout")
	flag.Parse()

	if *tokenName == "" {
		fmt.Fprintln(os.Stderr, "usage: snapshot -token <tokenName> [-timeout 30s]")
		os.Exit(2)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stderr)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()
	slog.SetDefault(slog.New(zapslog.NewHandler(zapLogger.Core(), &zapslog.HandlerOptions{})))

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.InitSlog(cfg.Logging.Level)
	appLogger := logger.NewSlogAdapter()

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

	marketSvc := service.NewMarketDataService(
		hederaClient,
		time.Duration(cfg.Cache.MarketTTLSeconds)*time.Second,
		time.Duration(cfg.Cache.CleanupIntervalMinutes)*time.Minute,
		appLogger,
	)
	analyticsSvc := service.NewAnalyticsService(hederaClient, appLogger)
	dashboardSvc := service.NewDashboardService(middlewareClient, hederaClient, marketSvc, analyticsSvc, cfg, appLogger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	state, err := dashboardSvc.Open(ctx, *tokenName)
	if err != nil {
		log.Fatalf("Failed to load dashboard for %s: %v", *tokenName, err)
	}
	dashboardSvc.Close()

	out, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal state: %v", err)
	}
	fmt.Println(string(out))
}
