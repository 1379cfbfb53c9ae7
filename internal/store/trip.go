package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/voyagr/voyagr-api/internal/domain"
)

// TripStore defines the interface for trip data persistence.
type TripStore interface {
	// Create saves a new trip to the store.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by its unique ID.
	// Returns ErrTripNotFound if the trip does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error)

	// ListByOwner retrieves all trips owned by the given user, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Trip, error)

	// Delete removes a trip and, through cascading constraints, any
	// itinerary generated for it. Returns ErrTripNotFound if the trip
	// does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TripStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TripStore
}
