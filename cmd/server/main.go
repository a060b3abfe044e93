package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/snehagupta9582883065/recent-api/internal/application/catalog"
	importapp "github.com/snehagupta9582883065/recent-api/internal/application/import"
	marketingapp "github.com/snehagupta9582883065/recent-api/internal/application/marketing"
	"github.com/snehagupta9582883065/recent-api/internal/application/media"
	"github.com/snehagupta9582883065/recent-api/internal/domain/catalog"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/auth"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/cache"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/config"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/event"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/logger"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/migration"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/persistence"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/storage"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/telemetry"
	"github.com/snehagupta9582883065/recent-api/internal/interfaces/http/handler"
	"github.com/snehagupta9582883065/recent-api/internal/interfaces/http/middleware"
	"github.com/snehagupta9582883065/recent-api/internal/interfaces/http/router"
	"go.uber.org/zap"
)

//	@title						Catalog API
//	@version					1.0
//	@description				Category tree, products and banners for the storefront and its admin.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if len(os.Args) > 1 && os.Args[1] == "token" {
		os.Exit(runToken(cfg, os.Args[2:], os.Stdout, os.Stderr))
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting catalog API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log,
		telemetry.WithServiceVersion(version))
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")
	if err := tracerProvider.InstrumentGorm(db.DB); err != nil {
		log.Fatal("Failed to instrument database", zap.Error(err))
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		// the migrator is not closed: its driver shares sqlDB with gorm
		m, err := migration.New(sqlDB, log)
		if err != nil {
			log.Fatal("Failed to create migrator", zap.Error(err))
		}
		if err := m.Up(); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	store, err := cache.NewStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.IsProduction()),
	).CreateStore()
	if err != nil {
		log.Fatal("Failed to create cache store", zap.Error(err))
	}
	defer func() {
		_ = store.Close()
	}()

	objects, err := newObjectStorage(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	deletePolicy, err := catalog.ParseDeletePolicy(cfg.Catalog.DeletePolicy)
	if err != nil {
		log.Fatal("Invalid catalog delete policy", zap.Error(err))
	}

	// Repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	bannerRepo := persistence.NewGormBannerRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Events
	eventBus := event.NewInMemoryEventBus(log)
	productCounts := catalogapp.NewProductCountHandler(categoryRepo, log)
	eventBus.Subscribe(productCounts, productCounts.EventTypes()...)
	treeInvalidator := catalogapp.NewTreeCacheInvalidator(store, log)
	eventBus.Subscribe(treeInvalidator, treeInvalidator.EventTypes()...)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Services
	imageService := media.NewImageService(objects, cfg.Storage.MaxUploadSize, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, txScope, catalogapp.CategoryServiceConfig{
		DeletePolicy:     deletePolicy,
		MaxDepth:         cfg.Catalog.MaxDepth,
		SubtreeBatchSize: cfg.Catalog.SubtreeBatchSize,
		TreeCacheTTL:     cfg.Catalog.TreeCacheTTL,
	}).
		WithEventPublisher(eventBus).
		WithTreeCache(store).
		WithImageReleaser(imageService).
		WithLogger(log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo).
		WithEventPublisher(eventBus).
		WithImageReleaser(imageService).
		WithLogger(log)
	bannerService := marketingapp.NewBannerService(bannerRepo)
	categoryImport := importapp.NewCategoryImportService(categoryRepo, categoryService, cfg.Import.MaxRows, log)
	productImport := importapp.NewProductImportService(
		productRepo, categoryRepo, productService, categoryService, cfg.Import.MaxRows, log,
	)

	systemHandler := handler.NewSystemHandler(cfg.App.Name, version).
		WithCheck("database", db).
		WithPoolStats(db.PoolStats)
	if redisStore, ok := store.(*cache.RedisStore); ok {
		systemHandler.WithCheck("redis", pingFunc(redisStore.Ping))
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

	// Middleware order: request id, tracing, recovery, access log, security
	// headers, CORS, body limit, rate limit, timeout
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	})...)
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)
		defer rateLimiter.Stop()
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Float64("rps", cfg.HTTP.RateLimitRPS),
			zap.Int("burst", cfg.HTTP.RateLimitBurst),
		)
	}

	if cfg.HTTP.RequestTimeout > 0 {
		engine.Use(middleware.Timeout(cfg.HTTP.RequestTimeout))
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	if cfg.HTTP.SwaggerEnabled {
		log.Info("Swagger UI enabled", zap.String("path", "/swagger/index.html"))
	}
	router.RegisterAPI(router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithSwagger(cfg.HTTP.SwaggerEnabled),
	), router.Handlers{
		Category: handler.NewCategoryHandler(categoryService),
		Product:  handler.NewProductHandler(productService),
		Banner:   handler.NewBannerHandler(bannerService),
		Import:   handler.NewImportHandler(categoryImport, productImport, cfg.Import.MaxRows, cfg.Import.MaxFileSize),
		Upload:   handler.NewUploadHandler(imageService),
		System:   systemHandler,
	}, middleware.AdminAuth(jwtService, log))

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(ctx); err != nil {
		log.Warn("Event bus did not drain", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newObjectStorage returns S3 storage when enabled, otherwise process memory
func newObjectStorage(cfg *config.Config, log *zap.Logger) (media.ObjectStorage, error) {
	if !cfg.Storage.Enabled {
		log.Warn("Object storage disabled, uploaded images are kept in memory")
		return storage.NewMemoryObjectStorage(), nil
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
	log.Info("Using S3 object storage",
		zap.String("endpoint", cfg.Storage.Endpoint),
		zap.String("bucket", cfg.Storage.Bucket),
	)
	return s3Storage, nil
}
