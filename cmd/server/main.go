package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/Charan2012-gif/Shopping-App/internal/application/catalog"
	identityapp "github.com/Charan2012-gif/Shopping-App/internal/application/identity"
	"github.com/Charan2012-gif/Shopping-App/internal/application/media"
	partnerapp "github.com/Charan2012-gif/Shopping-App/internal/application/partner"
	promotionapp "github.com/Charan2012-gif/Shopping-App/internal/application/promotion"
	reportapp "github.com/Charan2012-gif/Shopping-App/internal/application/report"
	tradeapp "github.com/Charan2012-gif/Shopping-App/internal/application/trade"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/auth"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/cache"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/config"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/event"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/logger"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/persistence"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/printing"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/scheduler"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/storage"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/telemetry"
	"github.com/Charan2012-gif/Shopping-App/internal/interfaces/http/handler"
	"github.com/Charan2012-gif/Shopping-App/internal/interfaces/http/middleware"
	"github.com/Charan2012-gif/Shopping-App/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/Charan2012-gif/Shopping-App/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Shopping App API
//	@version		1.0
//	@description	Back-office API of a clothing store: catalog, orders, shipments, promotions and the owner dashboard.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

// version is stamped at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output}
	appFields := logger.WithFields(zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Env))
	bootLog, err := logger.New(logCfg, appFields)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	// Telemetry comes first so the application logger can tee into the OTEL log bridge
	tel, err := telemetry.Setup(context.Background(), cfg.Telemetry, bootLog, telemetry.WithServiceVersion(version))
	if err != nil {
		bootLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tel.Shutdown(ctx); err != nil {
			bootLog.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	log, err := logger.New(logCfg, appFields,
		logger.WithCore(telemetry.NewZapOTELCore(tel.Logs, logger.ParseLevel(cfg.Log.Level))))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Shopping App", zap.String("version", version), zap.String("port", cfg.App.Port))

	// Database with the zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.QueryLogConfig{
		Level:         logger.MapGormLogLevel(cfg.Log.Level),
		SlowThreshold: cfg.Telemetry.DBSlowQueryThresh,
		FullSQL:       cfg.Telemetry.DBLogFullSQL,
	})
	db, err := persistence.Open(context.Background(), &cfg.Database, persistence.WithGormLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	dbInst, err := telemetry.NewDBInstrumentation(tel.AppMeter(), telemetry.DBConfigFrom(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to create database instrumentation", zap.Error(err))
	}
	if err := dbInst.Register(db.DB); err != nil {
		log.Fatal("Failed to register database instrumentation", zap.Error(err))
	}
	dbInst.StartPoolStats(context.Background(), db.SQL())
	defer dbInst.Stop()

	// Redis-backed stores, falling back to in-memory outside production
	cacheFactory := cache.NewFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.IsProduction()),
	)
	defer func() {
		if err := cacheFactory.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	dashboardCache, err := cacheFactory.CreateDashboardCache()
	if err != nil {
		log.Fatal("Failed to create dashboard cache", zap.Error(err))
	}
	idempotencyStore, err := cacheFactory.CreateIdempotencyStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer idempotencyStore.Close()
	tokenBlacklist, err := cacheFactory.CreateTokenBlacklist()
	if err != nil {
		log.Fatal("Failed to create token blacklist", zap.Error(err))
	}

	objectStorage, err := newObjectStorage(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Repositories
	collectionRepo := persistence.NewGormCollectionRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	variantRepo := persistence.NewGormVariantRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	packageRepo := persistence.NewGormPackageRepository(db.DB)
	couponRepo := persistence.NewGormCouponRepository(db.DB)
	discountRepo := persistence.NewGormDiscountRepository(db.DB)
	dashboardRepo := persistence.NewGormDashboardRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(customerRepo, jwtService, tokenBlacklist, log)
	collectionService := catalogapp.NewCollectionService(collectionRepo)
	productService := catalogapp.NewProductService(productRepo, variantRepo, discountRepo, txScope)
	customerService := partnerapp.NewCustomerService(customerRepo, orderRepo)
	orderService := tradeapp.NewOrderService(orderRepo, txScope)
	packageService := tradeapp.NewPackageService(packageRepo, orderRepo, txScope)
	couponService := promotionapp.NewCouponService(couponRepo, customerRepo)
	discountService := promotionapp.NewDiscountService(discountRepo, productRepo)
	dashboardService := reportapp.NewDashboardService(dashboardRepo, dashboardCache, cfg.Cache.DashboardTTL, log)
	uploadService := media.NewUploadService(objectStorage, media.UploadServiceConfig{
		MaxFileSize: cfg.Storage.MaxFileSize,
		MaxFiles:    cfg.Storage.MaxFiles,
	}, log)

	if cfg.Printing.Enabled {
		renderer := printing.NewChromedpRenderer(cfg.Printing,
			printing.WithRendererLogger(log),
			printing.WithNoSandbox(),
		)
		defer renderer.Close()
		packageService.SetRenderer(printing.NewPackingSlipPrinter(renderer, log))
		log.Info("Packing slip rendering enabled", zap.Duration("timeout", cfg.Printing.Timeout))
	}

	// Event bus: dashboard invalidation, order audit log, business metrics
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(reportapp.NewCacheInvalidationHandler(dashboardService, log))
	eventBus.Subscribe(tradeapp.NewOrderAuditHandler(log))
	shopMetrics, err := telemetry.NewShopMetrics(tel.AppMeter())
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}
	eventBus.Subscribe(shopMetrics)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	collectionService.SetEventPublisher(eventBus)
	productService.SetEventPublisher(eventBus)
	customerService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)
	packageService.SetEventPublisher(eventBus)
	couponService.SetEventPublisher(eventBus)
	discountService.SetEventPublisher(eventBus)

	// Dashboard warm-up keeps the owner dashboard served from cache
	if cfg.Scheduler.Enabled {
		warmupScheduler := scheduler.NewScheduler(cfg.Scheduler, scheduler.NewDashboardWarmer(dashboardService), log)
		if err := warmupScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start dashboard scheduler", zap.Error(err))
		}
		warmupTrigger := scheduler.NewWarmupTrigger(cfg.Scheduler.Interval, warmupScheduler, log)
		if err := warmupTrigger.Start(context.Background()); err != nil {
			log.Fatal("Failed to start dashboard warm-up trigger", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := warmupTrigger.Stop(ctx); err != nil {
				log.Error("Error stopping dashboard warm-up trigger", zap.Error(err))
			}
			if err := warmupScheduler.Stop(ctx); err != nil {
				log.Error("Error stopping dashboard scheduler", zap.Error(err))
			}
		}()
	}

	// HTTP handlers
	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, map[string]handler.HealthCheck{
		"database": db.Ping,
		"redis":    cacheFactory.Ping,
	})
	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Collection: handler.NewCollectionHandler(collectionService),
		Product:    handler.NewProductHandler(productService, discountService),
		Order:      handler.NewOrderHandler(orderService),
		Package:    handler.NewPackageHandler(packageService),
		Coupon:     handler.NewCouponHandler(couponService),
		Discount:   handler.NewDiscountHandler(discountService),
		Customer:   handler.NewCustomerHandler(customerService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
		Upload:     handler.NewUploadHandler(uploadService, cfg.Storage.MaxFileSize),
		System:     systemHandler,
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Rate limiter buckets are evicted until the server stops
	serverCtx, stopServerCtx := context.WithCancel(context.Background())
	defer stopServerCtx()

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(tel.AppMeter(), log))
	engine.Use(middleware.SecureWithConfig(middleware.DefaultSecurityConfig()))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFrom(cfg.HTTP)))

	// Multipart uploads may carry a full batch of images
	uploadLimit := cfg.Storage.MaxFileSize*int64(cfg.Storage.MaxFiles) + 1<<20
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize, uploadLimit))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(serverCtx, cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.GET("/health", systemHandler.Health)
	engine.GET("/swagger/*any", middleware.SwaggerGuard(cfg.Swagger), ginSwagger.WrapHandler(swaggerFiles.Handler))

	devIdentity, err := middleware.DevIdentityFrom(cfg.Auth)
	if err != nil {
		log.Fatal("Invalid development identity", zap.Error(err))
	}
	if devIdentity != nil {
		log.Warn("Development identity stub enabled; unauthenticated requests act as it",
			zap.String("id", devIdentity.ID.String()),
			zap.String("role", string(devIdentity.Role)),
		)
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	jwtConfig := middleware.DefaultJWTConfig(authService)
	jwtConfig.DevIdentity = devIdentity
	jwtConfig.SkipPaths = router.PublicAuthPaths(r.BasePath())
	jwtConfig.Logger = log
	r.Use(
		middleware.JWTAuthMiddlewareWithConfig(jwtConfig),
		middleware.SpanEnricher(),
		middleware.ProfilingWithConfig(middleware.DefaultProfilingConfig(tel.Profiler.IsEnabled())),
	)

	guards := router.Guards{
		OwnerOnly:   middleware.OwnerOnly(),
		Idempotency: middleware.Idempotency(idempotencyStore, cfg.HTTP.IdempotencyTTL, log),
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(serverCtx, cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		guards.AuthRateLimit = middleware.RateLimit(authLimiter)
	}
	r.Register(router.ShopGroups(handlers, guards)...)
	routes := r.Setup()
	for _, rt := range routes {
		log.Debug("Route", zap.String("group", rt.Group), zap.String("method", rt.Method), zap.String("path", rt.Path))
	}
	log.Info("Routes registered", zap.Int("count", len(routes)), zap.String("base_path", r.BasePath()))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newObjectStorage returns S3 storage when configured, else the in-memory stub
func newObjectStorage(cfg *config.Config, log *zap.Logger) (media.ObjectStorage, error) {
	if !cfg.Storage.Enabled {
		log.Warn("Object storage disabled; uploads are kept in memory")
		return storage.NewStubObjectStorage(cfg.Storage.PublicURL), nil
	}

	s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s3Storage.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	log.Info("Using S3 object storage", zap.String("bucket", s3Storage.GetBucket()))
	return s3Storage, nil
}
