package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	catalogapp "github.com/plantstore/backend/internal/application/catalog"
	engagementapp "github.com/plantstore/backend/internal/application/engagement"
	identityapp "github.com/plantstore/backend/internal/application/identity"
	shoppingapp "github.com/plantstore/backend/internal/application/shopping"
	tradeapp "github.com/plantstore/backend/internal/application/trade"
	"github.com/plantstore/backend/internal/infrastructure/auth"
	"github.com/plantstore/backend/internal/infrastructure/cache"
	"github.com/plantstore/backend/internal/infrastructure/config"
	"github.com/plantstore/backend/internal/infrastructure/event"
	"github.com/plantstore/backend/internal/infrastructure/logger"
	"github.com/plantstore/backend/internal/infrastructure/persistence"
	"github.com/plantstore/backend/internal/infrastructure/printing"
	"github.com/plantstore/backend/internal/infrastructure/seed"
	"github.com/plantstore/backend/internal/infrastructure/storage"
	"github.com/plantstore/backend/internal/infrastructure/telemetry"
	"github.com/plantstore/backend/internal/interfaces/http/handler"
	"github.com/plantstore/backend/internal/interfaces/http/middleware"
	"github.com/plantstore/backend/internal/interfaces/http/router"
)

func main() {
	seedOnly := flag.Bool("seed", false, "load fixtures and exit")
	fixturesDir := flag.String("fixtures", "fixtures", "directory holding fixture JSON files")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	// Telemetry providers come up before anything that emits spans or
	// metrics. Each is a no-op when telemetry is disabled.
	var (
		tracerProvider *telemetry.TracerProvider
		meterProvider  *telemetry.MeterProvider
		loggerProvider *telemetry.LoggerProvider
		profiler       *telemetry.Profiler
		storeMetrics   *telemetry.StoreMetrics
	)
	if cfg.Telemetry.Enabled {
		tracerProvider, err = telemetry.NewTracerProvider(ctx, telemetry.Config{
			Enabled:           true,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			SamplingRatio:     cfg.Telemetry.SamplingRatio,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize tracer provider", zap.Error(err))
		}

		meterProvider, err = telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
			Enabled:           true,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize meter provider", zap.Error(err))
		}

		loggerProvider, err = telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
			Enabled:           true,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize logger provider", zap.Error(err))
		}
		if loggerProvider.IsEnabled() {
			log = log.WithOptions(zap.WrapCore(loggerProvider.NewBridgedCore))
		}
	}

	if cfg.Profiling.Enabled {
		profiler, err = telemetry.NewProfiler(telemetry.ProfilerConfig{
			Enabled:         true,
			ServerAddress:   cfg.Profiling.ServerAddress,
			ApplicationName: cfg.App.Name,
			AuthToken:       cfg.Profiling.AuthToken,
			ProfileCPU:      true,
			ProfileGoroutines: true,
			ProfileInuseSpace: true,
		}, log)
		if err != nil {
			log.Warn("Failed to start profiler, continuing without", zap.Error(err))
			profiler = nil
		}
		if tracerProvider != nil && profiler != nil {
			if err := tracerProvider.EnableSpanProfiles(); err != nil {
				log.Warn("Failed to enable span profiles", zap.Error(err))
			}
		}
	}

	gormLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, logger.NewGormLogger(log, gormLevel))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbPlugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:        "postgresql",
		}, log)
		if err := dbPlugin.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	if *seedOnly {
		if err := seed.NewSeeder(db.DB, *fixturesDir, log).Run(ctx); err != nil {
			log.Fatal("Seeding failed", zap.Error(err))
		}
		log.Info("Seeding complete")
		return
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	imageRepo := persistence.NewGormProductImageRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	wishlistRepo := persistence.NewGormWishlistRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	txScope := persistence.NewGormTradeTransactionScope(db.DB)

	// Redis backs the OTP store and the token blacklist. When it is
	// unreachable the in-memory fallbacks keep a single instance working.
	var (
		blacklist auth.TokenBlacklist
		otpStore  cache.OTPStore
	)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, using in-memory OTP store and token blacklist",
			zap.String("addr", cfg.Redis.Addr()), zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
		otpStore = cache.NewInMemoryOTPStore(cfg.OTP.MaxAttempts)
	} else {
		blacklist = auth.NewRedisTokenBlacklistWithClient(redisClient)
		otpStore = cache.NewRedisOTPStore(redisClient, cfg.OTP.MaxAttempts)
	}

	// Event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewActivityLogHandler(log))
	eventBus.Subscribe(event.NewOrderNotificationHandler(log))

	if meterProvider != nil && meterProvider.IsEnabled() {
		storeMetrics, err = telemetry.NewStoreMetrics(telemetry.StoreMetricsConfig{
			Meter:           meterProvider.Meter("plantstore"),
			Logger:          log,
			CatalogProvider: telemetry.NewGormCatalogMetricsProvider(db.DB),
		})
		if err != nil {
			log.Warn("Failed to initialize store metrics", zap.Error(err))
		} else {
			storeMetrics.StartPeriodicCollection(ctx, 5*time.Minute, 5)
			eventBus.Subscribe(event.NewStoreMetricsHandler(storeMetrics))
		}
	}

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = eventBus.Stop(stopCtx)
	}()

	// Object storage for product images
	var imageStorage catalogapp.ObjectStorageService
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ImageStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		imageStorage = s3Storage
	} else {
		log.Warn("No storage bucket configured, image uploads use the stub backend")
		imageStorage = storage.NewStubImageStorage()
	}

	renderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		NoSandbox: true,
		Logger:    log,
	})
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() { _ = renderer.Close() }()

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	otpService := identityapp.NewOTPService(otpStore, identityapp.OTPServiceConfig{
		CodeLength: cfg.OTP.CodeLength,
		TTL:        cfg.OTP.TTL,
	}, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, otpService, eventBus, log)
	userService := identityapp.NewUserService(userRepo, otpService, log)
	addressService := identityapp.NewAddressService(addressRepo, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, eventBus)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, orderRepo, imageStorage, eventBus)
	imageService := catalogapp.NewImageService(productRepo, imageRepo, imageStorage)
	cartService := shoppingapp.NewCartService(cartRepo, productRepo, log)
	wishlistService := shoppingapp.NewWishlistService(wishlistRepo, productRepo, log)
	reviewService := engagementapp.NewReviewService(reviewRepo, productRepo, eventBus, log)
	orderService := tradeapp.NewOrderService(orderRepo, addressRepo, txScope, eventBus, log)
	invoiceService := tradeapp.NewInvoiceService(orderRepo, renderer, log)

	// Handlers
	healthHandler := handler.NewHealthHandler(db.DB)
	authHandler := handler.NewAuthHandler(authService, otpService)
	userHandler := handler.NewUserHandler(userService)
	addressHandler := handler.NewAddressHandler(addressService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	imageHandler := handler.NewImageHandler(imageService)
	cartHandler := handler.NewCartHandler(cartService)
	wishlistHandler := handler.NewWishlistHandler(wishlistService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	orderHandler := handler.NewOrderHandler(orderService, invoiceService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}
	engine.Use(middleware.Locale())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Enabled:       cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.Authenticate(middleware.AuthConfig{
		Checker: authService,
		PublicPaths: []string{
			"/health",
			"/api/v1/auth/otp/request",
			"/api/v1/auth/otp/verify",
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/auth/logout",
			"/api/v1/auth/password/reset",
		},
		PublicPathPrefixes: []string{
			"/api/v1/carts",
		},
		PublicMethods: map[string][]string{
			"/api/v1/products":   {http.MethodGet},
			"/api/v1/categories": {http.MethodGet},
		},
		Logger: log,
	}))

	engine.GET("/health", healthHandler.Check)

	authGroup := router.NewGroup("/auth").
		POST("/otp/request", authHandler.RequestOTP).
		POST("/otp/verify", authHandler.VerifyOTP).
		POST("/register", authHandler.Register).
		POST("/login", authHandler.Login).
		POST("/refresh", authHandler.Refresh).
		POST("/logout", authHandler.Logout).
		POST("/password/reset", authHandler.ResetPassword).
		POST("/password/change", authHandler.ChangePassword)
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authGroup.Use(middleware.RateLimit(authLimiter))
	}

	profileGroup := router.NewGroup("/profile").
		Use(middleware.RequireAuth()).
		GET("", userHandler.GetProfile).
		PATCH("", userHandler.UpdateProfile).
		POST("/identifier/change", userHandler.RequestIdentifierChange).
		POST("/identifier/confirm", userHandler.ConfirmIdentifierChange)

	addressGroup := router.NewGroup("/addresses").
		Use(middleware.RequireAuth()).
		GET("", addressHandler.List).
		POST("", addressHandler.Create).
		GET("/:id", addressHandler.Get).
		PUT("/:id", addressHandler.Update).
		DELETE("/:id", addressHandler.Delete).
		POST("/:id/default", addressHandler.SetDefault)

	adminGroup := router.NewGroup("/admin").
		Use(middleware.RequireAuth(), middleware.RequireStaff()).
		GET("/users", userHandler.ListUsers).
		GET("/users/:id", userHandler.GetUser).
		POST("/users/:id/deactivate", userHandler.DeactivateUser).
		PATCH("/orders/:id", orderHandler.AdminUpdate)

	categoryGroup := router.NewGroup("/categories").
		GET("", categoryHandler.List).
		GET("/:id", categoryHandler.Get).
		POST("", middleware.RequireStaff(), categoryHandler.Create).
		PUT("/:id", middleware.RequireStaff(), categoryHandler.Update).
		DELETE("/:id", middleware.RequireStaff(), categoryHandler.Delete)

	productGroup := router.NewGroup("/products").
		GET("", productHandler.List).
		GET("/:slug", productHandler.Get).
		POST("", middleware.RequireStaff(), productHandler.Create).
		PUT("/:slug", middleware.RequireStaff(), productHandler.Update).
		DELETE("/:slug", middleware.RequireStaff(), productHandler.Delete).
		POST("/:slug/images", middleware.RequireStaff(), imageHandler.InitiateUpload).
		DELETE("/:slug/images/:id", middleware.RequireStaff(), imageHandler.Delete).
		POST("/:slug/images/:id/main", middleware.RequireStaff(), imageHandler.SetMain).
		GET("/:slug/reviews", reviewHandler.ListByProduct).
		POST("/:slug/reviews", middleware.RequireAuth(), reviewHandler.Create)

	cartGroup := router.NewGroup("/carts").
		POST("", cartHandler.Create).
		GET("/:id", cartHandler.Get).
		DELETE("/:id", cartHandler.Delete).
		POST("/:id/items", cartHandler.AddItem).
		PUT("/:id/items/:item_id", cartHandler.UpdateItem).
		DELETE("/:id/items/:item_id", cartHandler.RemoveItem)

	wishlistGroup := router.NewGroup("/wishlist").
		Use(middleware.RequireAuth()).
		GET("", wishlistHandler.List).
		POST("", wishlistHandler.Add).
		DELETE("/:product_id", wishlistHandler.Remove)

	reviewGroup := router.NewGroup("/reviews").
		Use(middleware.RequireAuth()).
		PATCH("/:id", reviewHandler.Update).
		DELETE("/:id", reviewHandler.Delete).
		POST("/:id/like", reviewHandler.ToggleLike)

	orderGroup := router.NewGroup("/orders").
		Use(middleware.RequireAuth()).
		POST("", orderHandler.Create).
		GET("", orderHandler.List).
		GET("/:id", orderHandler.Get).
		POST("/:id/cancel", orderHandler.Cancel).
		GET("/:id/invoice", orderHandler.Invoice)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(authGroup).
		Register(profileGroup).
		Register(addressGroup).
		Register(adminGroup).
		Register(categoryGroup).
		Register(productGroup).
		Register(cartGroup).
		Register(wishlistGroup).
		Register(reviewGroup).
		Register(orderGroup)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	if storeMetrics != nil {
		storeMetrics.Stop()
	}
	if profiler != nil {
		_ = profiler.Stop()
	}
	if tracerProvider != nil {
		_ = tracerProvider.Shutdown(shutdownCtx)
	}
	if meterProvider != nil {
		_ = meterProvider.Shutdown(shutdownCtx)
	}
	if loggerProvider != nil {
		_ = loggerProvider.Shutdown(shutdownCtx)
	}

	log.Info("Server stopped")
}
