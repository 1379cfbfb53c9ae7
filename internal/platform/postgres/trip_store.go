package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/voyagr/voyagr-api/internal/domain"
	"github.com/voyagr/voyagr-api/internal/platform/logger"
	"github.com/voyagr/voyagr-api/internal/store"
)

// PostgresTripStore implements the store.TripStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTripStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTripStore creates a new PostgreSQL implementation of the
// TripStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
func NewPostgresTripStore(db store.DBTX, log *slog.Logger) *PostgresTripStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresTripStore{
		db:     db,
		logger: log.With(slog.String("component", "trip_store")),
	}
}

// Ensure PostgresTripStore implements store.TripStore interface
var _ store.TripStore = (*PostgresTripStore)(nil)

// Create implements store.TripStore.Create
// Returns store.ErrInvalidEntity if the owner does not exist.
func (s *PostgresTripStore) Create(ctx context.Context, trip *domain.Trip) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := trip.Validate(); err != nil {
		log.Warn("trip validation failed during create",
			slog.String("error", err.Error()),
			slog.String("trip_id", trip.ID.String()))
		return err
	}

	themes, err := json.Marshal(trip.Themes)
	if err != nil {
		return fmt.Errorf("failed to marshal themes: %w", err)
	}
	wantedPlaces, err := json.Marshal(trip.WantedPlaces)
	if err != nil {
		return fmt.Errorf("failed to marshal wanted places: %w", err)
	}

	query := `
		INSERT INTO trips (id, owner_id, title, arrives_at, departs_at, city,
			total_budget, themes, wanted_places, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		trip.ID,
		trip.OwnerID,
		trip.Title,
		trip.ArrivesAt,
		trip.DepartsAt,
		trip.City,
		trip.TotalBudget,
		themes,
		wantedPlaces,
		trip.CreatedAt,
		trip.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during trip creation",
				slog.String("trip_id", trip.ID.String()),
				slog.String("owner_id", trip.OwnerID.String()))
			return fmt.Errorf("%w: owner with ID %s not found",
				store.ErrInvalidEntity, trip.OwnerID)
		}

		log.Error("failed to create trip",
			slog.String("error", err.Error()),
			slog.String("trip_id", trip.ID.String()))
		return err
	}

	log.Info("trip created successfully",
		slog.String("trip_id", trip.ID.String()),
		slog.String("owner_id", trip.OwnerID.String()),
		slog.String("city", trip.City))
	return nil
}

// GetByID implements store.TripStore.GetByID
// Returns store.ErrTripNotFound if the trip does not exist.
func (s *PostgresTripStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, title, arrives_at, departs_at, city,
			total_budget, themes, wanted_places, created_at, updated_at
		FROM trips
		WHERE id = $1
	`

	trip, err := scanTrip(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("trip not found", slog.String("trip_id", id.String()))
			return nil, store.ErrTripNotFound
		}
		log.Error("failed to get trip by ID",
			slog.String("error", err.Error()),
			slog.String("trip_id", id.String()))
		return nil, err
	}

	return trip, nil
}

// ListByOwner implements store.TripStore.ListByOwner
func (s *PostgresTripStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Trip, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, title, arrives_at, departs_at, city,
			total_budget, themes, wanted_places, created_at, updated_at
		FROM trips
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to list trips by owner",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	trips := []*domain.Trip{}
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			log.Error("failed to scan trip row", slog.String("error", err.Error()))
			return nil, err
		}
		trips = append(trips, trip)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return trips, nil
}

// Delete implements store.TripStore.Delete
// Itinerary days and activities are removed by cascading constraints.
// Returns store.ErrTripNotFound if the trip does not exist.
func (s *PostgresTripStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM trips WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete trip",
			slog.String("error", err.Error()),
			slog.String("trip_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("trip_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		return store.ErrTripNotFound
	}

	log.Info("trip deleted successfully",
		slog.String("trip_id", id.String()))
	return nil
}

// WithTx implements store.TripStore.WithTx
func (s *PostgresTripStore) WithTx(tx *sql.Tx) store.TripStore {
	return &PostgresTripStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTrip scans a single trip row, unmarshalling the JSON-encoded
// theme and wanted-place lists.
func scanTrip(row rowScanner) (*domain.Trip, error) {
	var trip domain.Trip
	var themes, wantedPlaces []byte

	err := row.Scan(
		&trip.ID,
		&trip.OwnerID,
		&trip.Title,
		&trip.ArrivesAt,
		&trip.DepartsAt,
		&trip.City,
		&trip.TotalBudget,
		&themes,
		&wantedPlaces,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(themes, &trip.Themes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal themes: %w", err)
	}
	if err := json.Unmarshal(wantedPlaces, &trip.WantedPlaces); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wanted places: %w", err)
	}

	return &trip, nil
}
