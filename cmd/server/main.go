package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/gasflow/backend/internal/application/catalog"
	creditapp "github.com/gasflow/backend/internal/application/credit"
	deliveryapp "github.com/gasflow/backend/internal/application/delivery"
	financeapp "github.com/gasflow/backend/internal/application/finance"
	identityapp "github.com/gasflow/backend/internal/application/identity"
	mappingapp "github.com/gasflow/backend/internal/application/mapping"
	partnerapp "github.com/gasflow/backend/internal/application/partner"
	purchaseapp "github.com/gasflow/backend/internal/application/purchase"
	stockapp "github.com/gasflow/backend/internal/application/stock"
	"github.com/gasflow/backend/internal/infrastructure/auth"
	"github.com/gasflow/backend/internal/infrastructure/config"
	"github.com/gasflow/backend/internal/infrastructure/event"
	"github.com/gasflow/backend/internal/infrastructure/logger"
	"github.com/gasflow/backend/internal/infrastructure/persistence"
	"github.com/gasflow/backend/internal/interfaces/http/handler"
	"github.com/gasflow/backend/internal/interfaces/http/middleware"
	"github.com/gasflow/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting GasFlow Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	driverRepo := persistence.NewGormDriverRepository(db.DB)
	vehicleRepo := persistence.NewGormVehicleRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	deliveryRepo := persistence.NewGormDailyDeliveryRepository(db.DB)
	mappingRepo := persistence.NewGormDeliveryMappingRepository(db.DB)
	creditAccountRepo := persistence.NewGormCreditAccountRepository(db.DB)
	creditTransactionRepo := persistence.NewGormCreditTransactionRepository(db.DB)
	stockRegisterRepo := persistence.NewGormStockRegisterRepository(db.DB)
	incomeExpenseRepo := persistence.NewGormIncomeExpenseRepository(db.DB)
	reconciliationTaskRepo := persistence.NewGormReconciliationTaskRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseEntryRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Initialize application services
	productService := catalogapp.NewProductService(productRepo)
	customerService := partnerapp.NewCustomerService(customerRepo)
	fleetService := partnerapp.NewFleetService(driverRepo, vehicleRepo)
	vendorService := partnerapp.NewVendorService(vendorRepo)
	deliveryService := deliveryapp.NewDeliveryService(deliveryRepo, vehicleRepo, driverRepo, productRepo)
	mappingService := mappingapp.NewMappingService(mappingRepo, deliveryRepo, customerRepo)
	creditService := creditapp.NewCreditService(creditAccountRepo, creditTransactionRepo, customerRepo)
	financeService := financeapp.NewFinanceService(incomeExpenseRepo)
	purchaseService := purchaseapp.NewPurchaseService(purchaseRepo, vendorRepo, productRepo)

	// Stock services share a single reconciler so manual replays and event
	// handlers park failures in the same task queue
	reconciler := stockapp.NewStockReconciler(stockRegisterRepo, reconciliationTaskRepo, log)
	stockService := stockapp.NewStockService(stockRegisterRepo, productRepo)
	manualUpdateService := stockapp.NewManualUpdateService(reconciler, deliveryRepo, purchaseRepo, log)
	reconciliationService := stockapp.NewReconciliationService(reconciliationTaskRepo, stockRegisterRepo, log)

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist := newTokenBlacklist(cfg, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Delivery created -> dispatch deltas on the stock register
	deliveryCreatedHandler := stockapp.NewDeliveryCreatedHandler(reconciler, log)
	eventBus.Subscribe(deliveryCreatedHandler)

	// Delivery closed -> return deltas (empties, damaged, in-field)
	deliveryClosedHandler := stockapp.NewDeliveryClosedHandler(reconciler, log)
	eventBus.Subscribe(deliveryClosedHandler)

	// Purchase received -> filled stock increase
	purchaseReceivedHandler := stockapp.NewPurchaseReceivedHandler(reconciler, log)
	eventBus.Subscribe(purchaseReceivedHandler)

	log.Info("Event handlers registered",
		zap.Strings("delivery_created_events", deliveryCreatedHandler.EventTypes()),
		zap.Strings("delivery_closed_events", deliveryClosedHandler.EventTypes()),
		zap.Strings("purchase_received_events", purchaseReceivedHandler.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	deliveryService.SetEventPublisher(eventBus)
	purchaseService.SetEventPublisher(eventBus)

	// Periodic retry sweep for parked reconciliation tasks (if enabled)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if cfg.Stock.RetrySweepEnabled {
		go retrySweep(sweepCtx, reconciliationService, cfg.Stock.RetrySweepInterval, log)
		log.Info("Reconciliation retry sweep started",
			zap.Duration("interval", cfg.Stock.RetrySweepInterval),
		)
	}

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	customerHandler := handler.NewCustomerHandler(customerService)
	fleetHandler := handler.NewFleetHandler(fleetService)
	vendorHandler := handler.NewVendorHandler(vendorService)
	deliveryHandler := handler.NewDailyDeliveryHandler(deliveryService)
	mappingHandler := handler.NewMappingHandler(mappingService)
	creditHandler := handler.NewCreditHandler(creditService)
	financeHandler := handler.NewFinanceHandler(financeService)
	stockHandler := handler.NewStockHandler(stockService, manualUpdateService, reconciliationService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	// Configure skip paths for public endpoints
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Daily delivery domain
	deliveryRoutes := router.NewDomainGroup("delivery", "/daily-deliveries")
	deliveryRoutes.POST("", deliveryHandler.Create)
	deliveryRoutes.GET("", deliveryHandler.List)
	deliveryRoutes.GET("/summary", deliveryHandler.Summary)
	deliveryRoutes.GET("/:id", deliveryHandler.GetByID)
	deliveryRoutes.POST("/:id/actuals/initialize", deliveryHandler.InitializeActuals)
	deliveryRoutes.PUT("/:id/actuals", deliveryHandler.UpdateActuals)
	deliveryRoutes.PUT("/:id/metrics", deliveryHandler.RecomputeMetrics)
	deliveryRoutes.PUT("/:id/close", deliveryHandler.Close)

	// Delivery mapping domain (commercial allocation to customers)
	mappingRoutes := router.NewDomainGroup("mapping", "/delivery-mappings")
	mappingRoutes.POST("", mappingHandler.Create)
	mappingRoutes.DELETE("/:id", mappingHandler.Delete)
	mappingRoutes.GET("/commercial-items/:deliveryId", mappingHandler.CommercialItems)
	mappingRoutes.GET("/delivery/:deliveryId", mappingHandler.ListByDelivery)
	mappingRoutes.GET("/summary/:deliveryId", mappingHandler.Summary)

	// Customer credit domain
	creditRoutes := router.NewDomainGroup("credit", "/customer-credits")
	creditRoutes.GET("", creditHandler.ListAccounts)
	creditRoutes.POST("", creditHandler.SaveLimit)
	creditRoutes.POST("/payments", creditHandler.RecordPayment)
	creditRoutes.GET("/payment-history", creditHandler.PaymentHistory)
	creditRoutes.GET("/:customerId", creditHandler.GetAccount)
	creditRoutes.GET("/:customerId/transactions", creditHandler.ListTransactions)
	creditRoutes.DELETE("/:customerId", creditHandler.Deactivate)

	// Income/expense ledger
	financeRoutes := router.NewDomainGroup("finance", "/income-expense")
	financeRoutes.POST("", financeHandler.Create)
	financeRoutes.GET("", financeHandler.List)
	financeRoutes.GET("/categories", financeHandler.SearchCategories)
	financeRoutes.GET("/:id", financeHandler.Get)
	financeRoutes.DELETE("/:id", financeHandler.Delete)

	reportRoutes := router.NewDomainGroup("reports", "/reports")
	reportRoutes.GET("/income-expense", financeHandler.DailyReport)

	// Stock register domain
	stockRoutes := router.NewDomainGroup("stock", "/stock-register")
	stockRoutes.GET("", stockHandler.List)
	stockRoutes.GET("/summary", stockHandler.Summary)
	stockRoutes.GET("/transactions", stockHandler.Transactions)
	stockRoutes.POST("/adjust", stockHandler.Adjust)
	stockRoutes.POST("/initialize", stockHandler.Initialize)
	stockRoutes.POST("/update-from-purchase", stockHandler.UpdateFromPurchase)
	stockRoutes.POST("/update-from-delivery/:deliveryId", stockHandler.UpdateFromDelivery)
	stockRoutes.POST("/update-from-return/:deliveryId", stockHandler.UpdateFromReturn)
	stockRoutes.GET("/reconciliation/pending", stockHandler.ReconciliationPending)
	stockRoutes.POST("/reconciliation/retry/:id", stockHandler.ReconciliationRetry)
	stockRoutes.POST("/reconciliation/retry-all", stockHandler.ReconciliationRetryAll)

	// Purchase domain
	purchaseRoutes := router.NewDomainGroup("purchase", "/purchases")
	purchaseRoutes.POST("", purchaseHandler.Create)
	purchaseRoutes.GET("", purchaseHandler.List)
	purchaseRoutes.GET("/:id", purchaseHandler.GetByID)
	purchaseRoutes.PUT("/:id/items", purchaseHandler.UpdateItems)
	purchaseRoutes.PUT("/:id/active", purchaseHandler.SetActive)

	// Catalog domain
	catalogRoutes := router.NewDomainGroup("catalog", "/products")
	catalogRoutes.POST("", productHandler.Create)
	catalogRoutes.GET("", productHandler.List)
	catalogRoutes.GET("/:id", productHandler.GetByID)
	catalogRoutes.PUT("/:id/price", productHandler.UpdatePrice)
	catalogRoutes.PUT("/:id/active", productHandler.SetActive)

	// Partner domain (customers, drivers, vehicles, vendors)
	customerRoutes := router.NewDomainGroup("customer", "/customers")
	customerRoutes.POST("", customerHandler.Create)
	customerRoutes.GET("", customerHandler.List)
	customerRoutes.GET("/:id", customerHandler.GetByID)
	customerRoutes.PUT("/:id/active", customerHandler.SetActive)

	driverRoutes := router.NewDomainGroup("driver", "/drivers")
	driverRoutes.POST("", fleetHandler.CreateDriver)
	driverRoutes.GET("/active", fleetHandler.ListActiveDrivers)
	driverRoutes.PUT("/:id/active", fleetHandler.SetDriverActive)

	vehicleRoutes := router.NewDomainGroup("vehicle", "/vehicles")
	vehicleRoutes.POST("", fleetHandler.CreateVehicle)
	vehicleRoutes.GET("/active", fleetHandler.ListActiveVehicles)
	vehicleRoutes.PUT("/:id/active", fleetHandler.SetVehicleActive)

	vendorRoutes := router.NewDomainGroup("vendor", "/vendors")
	vendorRoutes.POST("", vendorHandler.Create)
	vendorRoutes.GET("/:id", vendorHandler.GetByID)
	vendorRoutes.PUT("/:id/active", vendorHandler.SetActive)

	// Identity domain (authentication, users)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.AuthRateLimit(authLimiter))
		log.Info("auth rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", authHandler.Logout)

	userRoutes := router.NewDomainGroup("user", "/users")
	userRoutes.POST("", userHandler.Register)
	userRoutes.GET("/me", userHandler.Me)
	userRoutes.PUT("/me/password", userHandler.ChangePassword)
	userRoutes.GET("/:id", userHandler.GetByID)
	userRoutes.DELETE("/:id", userHandler.Deactivate)

	// System routes
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(deliveryRoutes).
		Register(mappingRoutes).
		Register(creditRoutes).
		Register(financeRoutes).
		Register(reportRoutes).
		Register(stockRoutes).
		Register(purchaseRoutes).
		Register(catalogRoutes).
		Register(customerRoutes).
		Register(driverRoutes).
		Register(vehicleRoutes).
		Register(vendorRoutes).
		Register(authRoutes).
		Register(userRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newTokenBlacklist connects to Redis for token revocation, falling back to
// the in-process store when Redis is unreachable
func newTokenBlacklist(cfg *config.Config, log *zap.Logger) auth.TokenBlacklist {
	blacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		return auth.NewInMemoryTokenBlacklist()
	}
	log.Info("Redis token blacklist connected",
		zap.String("host", cfg.Redis.Host),
		zap.Int("port", cfg.Redis.Port),
	)
	return blacklist
}

// retrySweep periodically replays parked reconciliation tasks
func retrySweep(ctx context.Context, svc *stockapp.ReconciliationService, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			resolved, failed, err := svc.RetryAll(ctx, uuid.Nil)
			if err != nil {
				log.Error("Reconciliation retry sweep failed", zap.Error(err))
				continue
			}
			if resolved > 0 || failed > 0 {
				log.Info("Reconciliation retry sweep completed",
					zap.Int("resolved", resolved),
					zap.Int("failed", failed),
				)
			}
		}
	}
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
