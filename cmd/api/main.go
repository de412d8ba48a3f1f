package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nordlane/catalog-service/config"
	"github.com/nordlane/catalog-service/internal/api"
	"github.com/nordlane/catalog-service/internal/cache"
	catalogRepoPkg "github.com/nordlane/catalog-service/internal/catalog/repository"
	catalogUCPkg "github.com/nordlane/catalog-service/internal/catalog/usecase"
	catRepoPkg "github.com/nordlane/catalog-service/internal/category/repository"
	catUCPkg "github.com/nordlane/catalog-service/internal/category/usecase"
	"github.com/nordlane/catalog-service/internal/db"
	"github.com/nordlane/catalog-service/internal/events"
	prodRepoPkg "github.com/nordlane/catalog-service/internal/product/repository"
	prodUCPkg "github.com/nordlane/catalog-service/internal/product/usecase"
)

func main() {
	// 1. Load configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize logger
	appLogger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer appLogger.Sync()

	// 3. Connect to database
	database, err := db.NewPostgres(&cfg.Postgres)
	if err != nil {
		appLogger.Fatal("could not connect to database", zap.Error(err))
	}
	defer database.Close()
	appLogger.Info("connected to PostgreSQL", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Optional infrastructure: nav cache and event producer
	var navCache *cache.NavigationCache
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			appLogger.Warn("redis unavailable, navigation cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			navCache = cache.NewNavigationCache(redisClient, time.Duration(cfg.Redis.NavTTLSecs)*time.Second, appLogger)
			appLogger.Info("navigation cache enabled", zap.String("addr", cfg.Redis.Addr))
		}
	}

	var producer *events.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		appLogger.Info("event producer enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	// 5. Repositories
	catalogRepo := catalogRepoPkg.NewPGRepository(database)
	categoryRepo := catRepoPkg.NewPGRepository(database)
	productRepo := prodRepoPkg.NewPGRepository(database)

	// 6. Usecases
	catalogUC := catalogUCPkg.NewCatalogUseCase(catalogRepo, appLogger)
	categoryUC := catUCPkg.NewCategoryUseCase(categoryRepo, navCache, producer, appLogger)
	productUC := prodUCPkg.NewProductUseCase(productRepo, producer, appLogger)

	// 7. HTTP server
	router := api.NewRouter(
		api.NewCatalogHandlers(catalogUC, appLogger),
		api.NewCategoryHandlers(categoryUC, appLogger),
		api.NewProductHandlers(productUC, appLogger),
		appLogger,
	)

	server := &http.Server{
		Addr:         cfg.Server.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		appLogger.Info("starting HTTP server", zap.String("addr", cfg.Server.HTTPPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if level, err := zapcore.ParseLevel(cfg.Logger.Level); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}
	if cfg.Logger.Encoding != "" {
		zapCfg.Encoding = cfg.Logger.Encoding
	}
	zapCfg.DisableCaller = cfg.Logger.DisableCaller
	zapCfg.DisableStacktrace = cfg.Logger.DisableStacktrace

	return zapCfg.Build()
}
