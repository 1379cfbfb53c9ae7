// Package main implements the entry point for the Voyagr API server,
// which manages users' trips and generates day-by-day itineraries for
// them through an external planning service.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/voyagr/voyagr-api/internal/config"
	"github.com/voyagr/voyagr-api/internal/platform/logger"
	"github.com/voyagr/voyagr-api/internal/platform/postgres"
)

// main initializes configuration, logging, the database, and the itinerary
// generation pipeline, then serves HTTP until a shutdown signal arrives.
func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := postgres.RunMigrations(db, appLogger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
