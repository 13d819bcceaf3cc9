package main

import (
	"context"
	"log"
	"time"

	"ledger-sync/internal/core/cache"
	"ledger-sync/internal/core/config"
	"ledger-sync/internal/core/logger"
	"ledger-sync/internal/core/proxy"
	"ledger-sync/internal/core/server"
	ledgeradapter "ledger-sync/internal/features/ledger/adapters"
	ledgerservice "ledger-sync/internal/features/ledger/service"
	lifecycleservice "ledger-sync/internal/features/lifecycle/service"
	orderadapter "ledger-sync/internal/features/orders/adapters"
	orderhandler "ledger-sync/internal/features/orders/handler"
	orderservice "ledger-sync/internal/features/orders/service"
	syncadapter "ledger-sync/internal/features/sync/adapters"
	synchandler "ledger-sync/internal/features/sync/handler"
	syncports "ledger-sync/internal/features/sync/ports"
	syncservice "ledger-sync/internal/features/sync/service"
	trackingadapter "ledger-sync/internal/features/tracking/adapters"
	trackinghandler "ledger-sync/internal/features/tracking/handler"
	trackingservice "ledger-sync/internal/features/tracking/service"

	"go.uber.org/zap"
)

// @title Ledger Sync API
// @version 1.0
// @description This API keeps a spreadsheet ledger in sync with store orders and courier tracking statuses.
// @contact.name API Support
// @contact.email support@ledgersync.dev
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Initialize Order Provider and run Health Check
	shopify := orderadapter.NewShopifyAdapter(cfg.Shopify)
	if err := shopify.HealthCheck(context.Background()); err != nil {
		l.Fatal("Shopify Health Check Failed", zap.Error(err))
	}
	l.Info("Shopify connection verified")

	// Optional Redis cache for payloads and pass summaries
	var appCache cache.Cache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisAdapter(cfg.RedisURL)
		if err != nil {
			l.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisCache.Close()
		appCache = redisCache
		l.Info("Redis cache connected")
	}

	// Courier registry
	couriers, err := config.LoadCouriers(cfg.CouriersFile)
	if err != nil {
		l.Fatal("Failed to load courier registry", zap.Error(err))
	}
	l.Info("Courier registry loaded", zap.Int("couriers", len(couriers)))

	proxySettings := proxy.Settings{
		Enabled:  cfg.Proxy.Enabled,
		Hostname: cfg.Proxy.Hostname,
		Port:     cfg.Proxy.Port,
		Username: cfg.Proxy.Username,
		Password: cfg.Proxy.Password,
	}

	// Tracking analysis pipeline
	registry := trackingadapter.NewCourierRegistry(couriers)
	fetcher := trackingadapter.NewHTTPFetcher(30*time.Second, appCache)
	browser := trackingadapter.NewBrowserFetcher(proxySettings)
	classifier := trackingadapter.NewHTTPClassifier(cfg.Classifier)
	analysisSvc := trackingservice.NewAnalysisService(registry, fetcher, browser, classifier)
	trackingHdl := trackinghandler.NewTrackingHandler(analysisSvc)

	// Lifecycle engine
	resolver := lifecycleservice.NewResolver()
	alerts := lifecycleservice.NewAlertGenerator()

	// Ledger store and reconciler
	ledgerStore := ledgeradapter.NewSheetBridgeAdapter(cfg.SheetBridge)
	reconciler := ledgerservice.NewReconciler(ledgerStore, resolver, alerts)

	// Pass summaries survive restarts only when a cache backend exists
	var summaries syncports.SummaryRepository
	if appCache != nil {
		summaries = syncadapter.NewRedisSummaryRepository(appCache)
	}

	// Sync orchestration
	syncSvc := syncservice.NewSyncService(shopify, ledgerStore, resolver, analysisSvc, reconciler, summaries)
	syncHdl := synchandler.NewSyncHandler(syncSvc)

	// Read-only scenario preview
	orderSvc := orderservice.NewOrderService(shopify, ledgerStore, resolver, alerts)
	orderHdl := orderhandler.NewOrderHandler(orderSvc)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Post("/sync", syncHdl.RunPass)
	srv.App.Get("/sync/last", syncHdl.LastPass)
	srv.App.Get("/orders/:id/scenario", orderHdl.GetScenario)
	srv.App.Get("/tracking/analyze", trackingHdl.AnalyzeTracking)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
