package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/voyagr/voyagr-api/internal/domain"
	"github.com/voyagr/voyagr-api/internal/platform/logger"
	"github.com/voyagr/voyagr-api/internal/store"
)

// PostgresItineraryStore implements the store.ItineraryStore interface
// using a PostgreSQL database as the storage backend.
//
// Start times and durations are persisted as whole seconds; sub-second
// precision has no meaning for itinerary scheduling.
type PostgresItineraryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresItineraryStore creates a new PostgreSQL implementation of the
// ItineraryStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
func NewPostgresItineraryStore(db store.DBTX, log *slog.Logger) *PostgresItineraryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresItineraryStore{
		db:     db,
		logger: log.With(slog.String("component", "itinerary_store")),
	}
}

// Ensure PostgresItineraryStore implements store.ItineraryStore interface
var _ store.ItineraryStore = (*PostgresItineraryStore)(nil)

// CreateDay implements store.ItineraryStore.CreateDay
// Returns store.ErrInvalidEntity if the owning trip no longer exists.
func (s *PostgresItineraryStore) CreateDay(ctx context.Context, day *domain.ItineraryDay) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := day.Validate(); err != nil {
		log.Warn("itinerary day validation failed during create",
			slog.String("error", err.Error()),
			slog.String("day_id", day.ID.String()))
		return err
	}

	var date sql.NullTime
	if day.Date != nil {
		date = sql.NullTime{Time: *day.Date, Valid: true}
	}

	query := `
		INSERT INTO itinerary_days (id, trip_id, day_index, date, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		day.ID,
		day.TripID,
		day.DayIndex,
		date,
		day.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during day creation",
				slog.String("day_id", day.ID.String()),
				slog.String("trip_id", day.TripID.String()))
			return fmt.Errorf("%w: trip with ID %s not found",
				store.ErrInvalidEntity, day.TripID)
		}

		log.Error("failed to create itinerary day",
			slog.String("error", err.Error()),
			slog.String("day_id", day.ID.String()))
		return err
	}

	log.Debug("itinerary day created",
		slog.String("day_id", day.ID.String()),
		slog.String("trip_id", day.TripID.String()),
		slog.Int("day_index", day.DayIndex))
	return nil
}

// CreateActivity implements store.ItineraryStore.CreateActivity
// Returns store.ErrInvalidEntity if the owning day no longer exists.
func (s *PostgresItineraryStore) CreateActivity(ctx context.Context, activity *domain.ItineraryActivity) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := activity.Validate(); err != nil {
		log.Warn("activity validation failed during create",
			slog.String("error", err.Error()),
			slog.String("activity_id", activity.ID.String()))
		return err
	}

	query := `
		INSERT INTO itinerary_activities (id, day_id, kind, event_order,
			start_time_secs, duration_secs, place_name, cost, memo, map_url,
			transport_mode, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		activity.ID,
		activity.DayID,
		string(activity.Kind),
		activity.EventOrder,
		int64(activity.StartTime/time.Second),
		int64(activity.Duration/time.Second),
		activity.PlaceName,
		activity.Cost,
		activity.Memo,
		activity.MapURL,
		activity.TransportMode,
		activity.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during activity creation",
				slog.String("activity_id", activity.ID.String()),
				slog.String("day_id", activity.DayID.String()))
			return fmt.Errorf("%w: itinerary day with ID %s not found",
				store.ErrInvalidEntity, activity.DayID)
		}

		log.Error("failed to create activity",
			slog.String("error", err.Error()),
			slog.String("activity_id", activity.ID.String()))
		return err
	}

	log.Debug("activity created",
		slog.String("activity_id", activity.ID.String()),
		slog.String("day_id", activity.DayID.String()),
		slog.String("kind", string(activity.Kind)),
		slog.Int("event_order", activity.EventOrder))
	return nil
}

// ListDaysByTrip implements store.ItineraryStore.ListDaysByTrip
func (s *PostgresItineraryStore) ListDaysByTrip(ctx context.Context, tripID uuid.UUID) ([]*domain.ItineraryDay, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, trip_id, day_index, date, created_at
		FROM itinerary_days
		WHERE trip_id = $1
		ORDER BY day_index
	`

	rows, err := s.db.QueryContext(ctx, query, tripID)
	if err != nil {
		log.Error("failed to list itinerary days",
			slog.String("error", err.Error()),
			slog.String("trip_id", tripID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	days := []*domain.ItineraryDay{}
	for rows.Next() {
		var day domain.ItineraryDay
		var date sql.NullTime

		err := rows.Scan(&day.ID, &day.TripID, &day.DayIndex, &date, &day.CreatedAt)
		if err != nil {
			log.Error("failed to scan day row", slog.String("error", err.Error()))
			return nil, err
		}

		if date.Valid {
			d := date.Time
			day.Date = &d
		}
		days = append(days, &day)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return days, nil
}

// ListActivitiesByDay implements store.ItineraryStore.ListActivitiesByDay
// The secondary created_at ordering preserves insertion order for
// activities that share an event order.
func (s *PostgresItineraryStore) ListActivitiesByDay(ctx context.Context, dayID uuid.UUID) ([]*domain.ItineraryActivity, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, day_id, kind, event_order, start_time_secs, duration_secs,
			place_name, cost, memo, map_url, transport_mode, created_at
		FROM itinerary_activities
		WHERE day_id = $1
		ORDER BY event_order, created_at
	`

	rows, err := s.db.QueryContext(ctx, query, dayID)
	if err != nil {
		log.Error("failed to list activities",
			slog.String("error", err.Error()),
			slog.String("day_id", dayID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	activities := []*domain.ItineraryActivity{}
	for rows.Next() {
		var activity domain.ItineraryActivity
		var kind string
		var startSecs, durationSecs int64

		err := rows.Scan(
			&activity.ID,
			&activity.DayID,
			&kind,
			&activity.EventOrder,
			&startSecs,
			&durationSecs,
			&activity.PlaceName,
			&activity.Cost,
			&activity.Memo,
			&activity.MapURL,
			&activity.TransportMode,
			&activity.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan activity row", slog.String("error", err.Error()))
			return nil, err
		}

		activity.Kind = domain.ActivityKind(kind)
		activity.StartTime = time.Duration(startSecs) * time.Second
		activity.Duration = time.Duration(durationSecs) * time.Second
		activities = append(activities, &activity)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return activities, nil
}

// WithTx implements store.ItineraryStore.WithTx
func (s *PostgresItineraryStore) WithTx(tx *sql.Tx) store.ItineraryStore {
	return &PostgresItineraryStore{
		db:     tx,
		logger: s.logger,
	}
}
