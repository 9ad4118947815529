package main

import (
	"log/slog"
	"os"

	"github.com/SscSPs/mf_receipt_desk/pkg/config"
	"github.com/SscSPs/mf_receipt_desk/pkg/database"
)

// Applies the client_state schema without starting the desk server.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Running database migrations...", slog.String("path", cfg.MigrationsPath))
	if _, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
