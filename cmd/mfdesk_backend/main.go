package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/mf_receipt_desk/internal/adapters/mfapi"
	portsrepo "github.com/SscSPs/mf_receipt_desk/internal/core/ports/repositories"
	"github.com/SscSPs/mf_receipt_desk/internal/core/services"
	"github.com/SscSPs/mf_receipt_desk/internal/handlers"
	"github.com/SscSPs/mf_receipt_desk/internal/middleware"
	"github.com/SscSPs/mf_receipt_desk/internal/platform/config"
	"github.com/SscSPs/mf_receipt_desk/internal/repositories/database/pgsql"
	"github.com/SscSPs/mf_receipt_desk/internal/repositories/memory"
	"github.com/SscSPs/mf_receipt_desk/internal/repositories/redis"
	"github.com/SscSPs/mf_receipt_desk/pkg/database"
	"github.com/gin-gonic/gin"
)

// @title MF Receipt Desk API
// @version 1.0
// @description Cashier receipt desk in front of the MF backend.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, cleanup, err := newRepositoryProvider(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize client state store", slog.String("driver", cfg.StateStoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	backend := mfapi.NewClient(mfapi.Options{
		BaseURL:     cfg.MFAPIBaseURL,
		Timeout:     cfg.MFAPITimeout,
		AuthTimeout: cfg.AuthTimeout,
	})
	logger.Info("MF backend client configured", slog.String("base_url", cfg.MFAPIBaseURL))

	serviceContainer := services.NewServiceContainer(cfg, repos, backend)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("state_store", cfg.StateStoreDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newRepositoryProvider opens the configured client state store. The returned
// cleanup closes any connection it opened.
func newRepositoryProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StateStoreDriver {
	case config.StateStoreRedis:
		client, err := redis.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Redis client state store connected", slog.String("addr", cfg.RedisAddr))
		cleanup := func() {
			if err := client.Close(); err != nil {
				logger.Error("Error closing redis client", slog.String("error", err.Error()))
			}
		}
		return redis.NewRepositoryProvider(client, cfg.StateTTL), cleanup, nil

	case config.StateStorePostgres:
		logger.Info("Running database migrations...")
		applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("migrations: %w", err)
		}
		if applied {
			logger.Info("Database migrations applied successfully.")
		} else {
			logger.Info("No new migrations to apply.")
		}

		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(pool, cfg.StateTTL), func() { database.ClosePgxPool(pool) }, nil

	default:
		logger.Warn("Using in-memory client state store; sessions are lost on restart")
		return memory.NewRepositoryProvider(), func() {}, nil
	}
}
