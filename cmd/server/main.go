package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	accountingapp "github.com/tajer/backend/internal/application/accounting"
	catalogapp "github.com/tajer/backend/internal/application/catalog"
	deliveryapp "github.com/tajer/backend/internal/application/delivery"
	identityapp "github.com/tajer/backend/internal/application/identity"
	inventoryapp "github.com/tajer/backend/internal/application/inventory"
	notificationapp "github.com/tajer/backend/internal/application/notification"
	ordersapp "github.com/tajer/backend/internal/application/orders"
	reportapp "github.com/tajer/backend/internal/application/report"
	"github.com/tajer/backend/internal/infrastructure/auth"
	"github.com/tajer/backend/internal/infrastructure/cache"
	"github.com/tajer/backend/internal/infrastructure/config"
	"github.com/tajer/backend/internal/infrastructure/event"
	"github.com/tajer/backend/internal/infrastructure/logger"
	"github.com/tajer/backend/internal/infrastructure/notification"
	"github.com/tajer/backend/internal/infrastructure/persistence"
	"github.com/tajer/backend/internal/interfaces/http/handler"
	"github.com/tajer/backend/internal/interfaces/http/middleware"
	"github.com/tajer/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis: idempotency store and report cache share one client
	idempotencyStore, err := cache.NewRedisIdempotencyStore(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	reportCache := cache.NewReportCache(idempotencyStore.GetClient(), cfg.Orders.ReportCacheTTL)
	log.Info("Redis connected")

	// Repositories
	platformRepo := persistence.NewGormPlatformRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	cashAccountRepo := persistence.NewGormCashAccountRepository(db.DB)
	cashTxRepo := persistence.NewGormCashTransactionRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	expenseCategoryRepo := persistence.NewGormExpenseCategoryRepository(db.DB)
	deliverySettingRepo := persistence.NewGormDeliverySettingRepository(db.DB)
	inventoryReadRepo := persistence.NewGormInventoryReadRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(platformRepo, userRepo, jwtService, log)
	platformService := identityapp.NewPlatformService(platformRepo, log)
	userService := identityapp.NewUserService(userRepo, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, log)
	orderService := ordersapp.NewOrderService(
		orderRepo, productRepo, deliverySettingRepo, platformRepo,
		idempotencyStore, cfg.Orders.IdempotencyTTL, log,
	)
	accountingService := accountingapp.NewAccountingService(
		cashAccountRepo, cashTxRepo, expenseRepo, expenseCategoryRepo, log,
	)
	inventoryService := inventoryapp.NewInventoryService(inventoryReadRepo, log)
	deliveryService := deliveryapp.NewDeliveryService(deliverySettingRepo, log)
	reportService := reportapp.NewReportService(reportRepo, reportCache, log)

	// Event bus and cross-context handlers
	eventBus := event.NewInMemoryEventBus(log)

	var sender notification.Sender = notification.NopSender{}
	if cfg.WhatsApp.Enabled {
		sender = notification.NewWhatsAppClient(cfg.WhatsApp, log)
	}
	orderCreatedHandler := notificationapp.NewOrderCreatedHandler(platformRepo, sender, log)
	eventBus.Subscribe(orderCreatedHandler)

	settlementHandler := accountingapp.NewOrderSettlementHandler(orderRepo, accountingService, log)
	eventBus.Subscribe(settlementHandler)

	cacheInvalidationHandler := reportapp.NewCacheInvalidationHandler(reportService, log)
	eventBus.Subscribe(cacheInvalidationHandler)

	lowStockHandler := inventoryapp.NewStockBelowThresholdHandler(log)
	eventBus.Subscribe(lowStockHandler)

	log.Info("Event handlers registered",
		zap.Strings("order_created_events", orderCreatedHandler.EventTypes()),
		zap.Strings("settlement_events", settlementHandler.EventTypes()),
		zap.Strings("cache_invalidation_events", cacheInvalidationHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	orderService.SetEventPublisher(eventBus)
	productService.SetEventPublisher(eventBus)
	accountingService.SetEventPublisher(eventBus)

	// HTTP layer
	handlers := router.Handlers{
		System:     handler.NewSystemHandler(db),
		Auth:       handler.NewAuthHandler(authService),
		Platform:   handler.NewPlatformHandler(platformService),
		User:       handler.NewUserHandler(userService),
		Category:   handler.NewCategoryHandler(categoryService),
		Product:    handler.NewProductHandler(productService, platformService),
		Order:      handler.NewOrderHandler(orderService),
		Inventory:  handler.NewInventoryHandler(inventoryService),
		Accounting: handler.NewAccountingHandler(accountingService),
		Delivery:   handler.NewDeliveryHandler(deliveryService, platformService),
		Report:     handler.NewReportHandler(reportService),
	}
	middleware.SetupValidator()
	engine := router.Setup(cfg, jwtService, log, handlers)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Expire overdue subscriptions once a day
	expiryCtx, cancelExpiry := context.WithCancel(context.Background())
	defer cancelExpiry()
	go runSubscriptionExpiry(expiryCtx, platformService, log)

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func runSubscriptionExpiry(ctx context.Context, platformService *identityapp.PlatformService, log *zap.Logger) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := platformService.ExpireOverdueSubscriptions(ctx)
			if err != nil {
				log.Error("Subscription expiry sweep failed", zap.Error(err))
				continue
			}
			if count > 0 {
				log.Info("Expired overdue subscriptions", zap.Int("count", count))
			}
		}
	}
}
