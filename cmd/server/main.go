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
	cartapp "github.com/storefront/backend/internal/application/cart"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/application/confirmation"
	favoritesapp "github.com/storefront/backend/internal/application/favorites"
	identityapp "github.com/storefront/backend/internal/application/identity"
	reviewapp "github.com/storefront/backend/internal/application/review"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/catalog"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/storage"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync(log)

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("storage", cfg.Storage.Driver),
	)

	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	backend := newStorageBackend(cfg, log)
	defer backend.close()

	factory := cache.NewStateStoreFactory(cfg.Storage, cfg.Redis,
		cache.WithLogger(log),
		cache.WithOpener(config.DriverSQLite, backend.openSQLite),
		cache.WithOpener(config.DriverPostgres, backend.openPostgres),
		cache.WithOpener(config.DriverS3, backend.openS3),
		cache.WithOpener(config.DriverRedis, backend.openRedis),
	)
	store, err := factory.CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to open state storage", zap.Error(err))
	}

	products, err := catalog.Load(cfg.Catalog.SeedFile)
	if err != nil {
		log.Fatal("Failed to load catalog", zap.Error(err))
	}
	log.Info("Catalog loaded", zap.Int("products", products.Len()))

	// Stores
	cartService := cartapp.NewCartService(store, products, log)
	favoritesService := favoritesapp.NewFavoritesService(store, products, log)
	reviewService := reviewapp.NewReviewService(store, products, log)
	identityService := identityapp.NewIdentityService(store, log)
	for _, loader := range []interface {
		Load(context.Context) error
	}{cartService, favoritesService, reviewService, identityService} {
		if err := loader.Load(ctx); err != nil {
			log.Fatal("Failed to restore state", zap.Error(err))
		}
	}

	// Events
	eventBus := event.NewInMemoryEventBus(log)
	inbox := confirmation.NewInbox(log)
	eventBus.Subscribe(inbox)
	eventBus.Subscribe(event.NewAuditHandler(log))
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	checkoutService := checkoutapp.NewCheckoutService(cartService, identityService, products, eventBus,
		checkoutapp.WithStockRevalidation(cfg.Checkout.RevalidateStock),
		checkoutapp.WithLogger(log),
	)
	catalogService := catalogapp.NewCatalogService(products, reviewService)

	systemHandler := handler.NewSystemHandler(cfg.App.Name, version)
	if backend.check != nil {
		systemHandler.AddCheck("storage", backend.check)
	}

	middleware.SetupValidator()
	engine, err := router.NewEngine(router.EngineConfig{
		Mode:           ginMode(cfg),
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		CORS: middleware.CORSConfig{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     cfg.HTTP.CORSAllowMethods,
			AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     tp.IsEnabled(),
		},
	}, router.Handlers{
		Catalog:   handler.NewCatalogHandler(catalogService),
		Cart:      handler.NewCartHandler(cartService),
		Favorites: handler.NewFavoritesHandler(favoritesService),
		Reviews:   handler.NewReviewHandler(reviewService),
		Identity:  handler.NewIdentityHandler(identityService),
		Checkout:  handler.NewCheckoutHandler(checkoutService, inbox),
		System:    systemHandler,
	}, log)
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func ginMode(cfg *config.Config) string {
	if cfg.IsProduction() {
		return gin.ReleaseMode
	}
	return gin.DebugMode
}

// storageBackend opens the durable backends the factory may select and
// remembers how to probe and close whichever one was opened.
type storageBackend struct {
	cfg    *config.Config
	log    *zap.Logger
	check  handler.HealthCheck
	closer func() error
}

func newStorageBackend(cfg *config.Config, log *zap.Logger) *storageBackend {
	return &storageBackend{cfg: cfg, log: log}
}

func (b *storageBackend) openSQLite(context.Context) (shared.StateStorage, error) {
	return b.openDatabase(func(opts ...persistence.Option) (*persistence.Database, error) {
		return persistence.NewSQLiteDatabase(b.cfg.Storage.SQLitePath, opts...)
	}, "sqlite")
}

func (b *storageBackend) openPostgres(context.Context) (shared.StateStorage, error) {
	return b.openDatabase(func(opts ...persistence.Option) (*persistence.Database, error) {
		return persistence.NewPostgresDatabase(&b.cfg.Database, opts...)
	}, "postgresql")
}

func (b *storageBackend) openDatabase(open func(...persistence.Option) (*persistence.Database, error), system string) (shared.StateStorage, error) {
	tracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         b.cfg.Telemetry.Enabled && b.cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      b.cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: b.cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        system,
	}, b.log)

	db, err := open(
		persistence.WithGormLogger(logger.NewGormLogger(b.log, logger.MapGormLogLevel(b.cfg.Log.Level))),
		persistence.WithTracing(tracing),
	)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	b.check = func(context.Context) error { return db.Ping() }
	b.closer = db.Close
	return persistence.NewGormStateRepository(db.DB), nil
}

func (b *storageBackend) openRedis(ctx context.Context) (shared.StateStorage, error) {
	store, err := cache.NewRedisStateStore(b.cfg.Redis, b.cfg.Storage.KeyPrefix)
	if err != nil {
		return nil, err
	}
	b.check = func(ctx context.Context) error { return store.GetClient().Ping(ctx).Err() }
	b.closer = store.Close
	return store, nil
}

func (b *storageBackend) openS3(ctx context.Context) (shared.StateStorage, error) {
	store, err := storage.NewS3StateStorage(&b.cfg.S3,
		storage.WithLogger(b.log),
		storage.WithKeyPrefix(b.cfg.Storage.KeyPrefix),
	)
	if err != nil {
		return nil, err
	}
	if b.cfg.S3.CreateBucket {
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func (b *storageBackend) close() {
	if b.closer == nil {
		return
	}
	if err := b.closer(); err != nil {
		b.log.Error("Error closing state storage", zap.Error(err))
	}
}
