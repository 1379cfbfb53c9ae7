package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/voyagr/voyagr-api/internal/config"
	"github.com/voyagr/voyagr-api/internal/platform/planner"
	"github.com/voyagr/voyagr-api/internal/platform/postgres"
	"github.com/voyagr/voyagr-api/internal/retry"
	"github.com/voyagr/voyagr-api/internal/service"
	"github.com/voyagr/voyagr-api/internal/service/auth"
	"github.com/voyagr/voyagr-api/internal/store"
	"github.com/voyagr/voyagr-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (retry-decorated so every write runs under the policy)
	userStore      store.UserStore
	tripStore      store.TripStore
	itineraryStore store.ItineraryStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	plannerClient    planner.Client
	tripService      service.TripService

	// Background pipeline
	jobQueue *task.JobQueue
	worker   *task.Worker
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	// Every store is wrapped with the write-retry policy so a database
	// failover during a write is absorbed rather than surfaced.
	retryPolicy := retry.FromConfig(cfg.Retry)
	app.userStore = retry.NewUserStore(
		postgres.NewPostgresUserStore(db, bcrypt.DefaultCost, logger), retryPolicy, logger)
	app.tripStore = retry.NewTripStore(
		postgres.NewPostgresTripStore(db, logger), retryPolicy, logger)
	app.itineraryStore = retry.NewItineraryStore(
		postgres.NewPostgresItineraryStore(db, logger), retryPolicy, logger)

	logger.Info("write-retry policy configured",
		"enabled", retryPolicy.Enabled,
		"max_attempts", retryPolicy.MaxAttempts)

	app.plannerClient, err = planner.NewHTTPClient(cfg.Planner, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize planner client: %w", err)
	}
	logger.Info("planner client initialized", "base_url", cfg.Planner.BaseURL)

	// The generation pipeline: an unbounded queue fed by trip creation and
	// drained by a single worker, preserving submission order.
	app.jobQueue = task.NewJobQueue(cfg.Task.QueueWarnDepth, logger)
	app.worker = task.NewWorker(app.jobQueue, logger)
	app.worker.Start()

	jobFactory := task.NewItineraryJobFactory(
		app.plannerClient,
		app.tripStore,
		app.itineraryStore,
		logger,
	)

	app.tripService, err = service.NewTripService(
		db,
		app.tripStore,
		app.itineraryStore,
		jobFactory,
		app.jobQueue,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trip service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources. The queue is
// closed before the worker stops so the worker's dequeue wait wakes up;
// jobs still queued at that point are lost.
func (app *application) cleanup() {
	if app.jobQueue != nil {
		app.jobQueue.Close()
	}
	if app.worker != nil {
		app.worker.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
