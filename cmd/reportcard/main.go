package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/reportcard-service/internal/cache"
	"github.com/SAP-F-2025/reportcard-service/internal/config"
	"github.com/SAP-F-2025/reportcard-service/internal/handlers"
	"github.com/SAP-F-2025/reportcard-service/internal/repositories"
	"github.com/SAP-F-2025/reportcard-service/internal/repositories/csvstore"
	"github.com/SAP-F-2025/reportcard-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/reportcard-service/internal/services"
	"github.com/SAP-F-2025/reportcard-service/internal/utils"
	"github.com/SAP-F-2025/reportcard-service/internal/validator"
	"github.com/SAP-F-2025/reportcard-service/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment, os.Stdout)
	slogger := utils.ToSlogLogger(logger)
	slog.SetDefault(slogger)

	if err := run(cfg, logger); err != nil {
		logger.LogError(err, "Report card service stopped")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger utils.Logger) error {
	ctx := context.Background()
	slogger := utils.ToSlogLogger(logger)

	// 1. Record store
	repo, err := openRepository(cfg, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	// 2. Cache: redis when configured, in-memory otherwise
	cacheService := cache.NewMemoryCache()
	if cfg.RedisURL != "" {
		client, err := pkg.NewRedisClient(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Close()
		cacheService = cache.NewRedisCache(client, slogger, "reportcard:")
		logger.Info("Using redis cache")
	}

	// 3. Events
	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		return fmt.Errorf("create event publisher: %w", err)
	}
	defer publisher.Close()

	serviceManager := services.NewServiceManager(services.Dependencies{
		Repo:            repo,
		Cache:           cacheService,
		Publisher:       publisher,
		Validator:       validator.New(),
		Logger:          slogger,
		FormTTL:         cfg.FormTTL,
		RankingCacheTTL: cfg.RankingCacheTTL,
	})

	// 4. Routes and middleware
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.RequestID(), utils.LoggerMiddleware(logger), utils.ContextLogger(logger), gin.Recovery())
	handlers.NewHandlerManager(serviceManager, logger).SetupRoutes(router)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Report card service listening", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// 5. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Report card service stopped")
	return nil
}

func openRepository(cfg *config.Config, logger utils.Logger) (repositories.Repository, error) {
	if cfg.StoreDriver == config.StoreDriverPostgres {
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("Using postgres record store")
		return postgres.NewRepository(db), nil
	}

	store, err := csvstore.Open(cfg.DataDir, cfg.ProgressFile, cfg.SchoolInfoFile)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	if missing := store.MissingColumns(); len(missing) > 0 {
		logger.Warn("Progress file lacked columns; filled with defaults", "columns", missing)
	}
	logger.Info("Using file record store", "dir", cfg.DataDir, "progress_file", cfg.ProgressFile)
	return store, nil
}
