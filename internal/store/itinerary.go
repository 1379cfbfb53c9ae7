package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/voyagr/voyagr-api/internal/domain"
)

// ItineraryStore defines the interface for itinerary day and activity
// persistence. Days and activities are only ever created by the generation
// pipeline; they are never updated through this interface.
type ItineraryStore interface {
	// CreateDay saves a new itinerary day.
	// Returns ErrInvalidEntity if the owning trip does not exist.
	CreateDay(ctx context.Context, day *domain.ItineraryDay) error

	// CreateActivity saves a new activity within a day.
	// Returns ErrInvalidEntity if the owning day does not exist.
	CreateActivity(ctx context.Context, activity *domain.ItineraryActivity) error

	// ListDaysByTrip retrieves all itinerary days of a trip ordered by
	// day index. Returns an empty slice if no itinerary was generated.
	ListDaysByTrip(ctx context.Context, tripID uuid.UUID) ([]*domain.ItineraryDay, error)

	// ListActivitiesByDay retrieves all activities of a day ordered by
	// event order, preserving insertion order for duplicate orders.
	ListActivitiesByDay(ctx context.Context, dayID uuid.UUID) ([]*domain.ItineraryActivity, error)

	// WithTx returns a new ItineraryStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) ItineraryStore
}
