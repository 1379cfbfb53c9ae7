package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Trip
var (
	ErrEmptyTripID      = errors.New("trip ID cannot be empty")
	ErrEmptyTripOwnerID = errors.New("trip owner ID cannot be empty")
	ErrEmptyTripTitle   = errors.New("trip title cannot be empty")
	ErrEmptyTripCity    = errors.New("trip city cannot be empty")
	ErrInvalidTripDates = errors.New("trip departure must not be before arrival")
	ErrNegativeBudget   = errors.New("trip budget cannot be negative")
)

// Trip represents a planned journey created by a user. Its identity and
// travel parameters are immutable once created; the itinerary pipeline only
// ever reads it.
type Trip struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Title        string    `json:"title"`
	ArrivesAt    time.Time `json:"arrives_at"`
	DepartsAt    time.Time `json:"departs_at"`
	City         string    `json:"city"`
	TotalBudget  int64     `json:"total_budget"` // minor currency units
	Themes       []string  `json:"themes"`
	WantedPlaces []string  `json:"wanted_places"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewTrip creates a new Trip owned by the given user.
// It generates a new UUID for the trip ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewTrip(
	ownerID uuid.UUID,
	title string,
	arrivesAt, departsAt time.Time,
	city string,
	totalBudget int64,
	themes []string,
	wantedPlaces []string,
) (*Trip, error) {
	trip := &Trip{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        title,
		ArrivesAt:    arrivesAt,
		DepartsAt:    departsAt,
		City:         city,
		TotalBudget:  totalBudget,
		Themes:       themes,
		WantedPlaces: wantedPlaces,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := trip.Validate(); err != nil {
		return nil, err
	}

	return trip, nil
}

// Validate checks if the Trip has valid data.
// Returns an error if any field fails validation.
func (t *Trip) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTripID
	}

	if t.OwnerID == uuid.Nil {
		return ErrEmptyTripOwnerID
	}

	if t.Title == "" {
		return ErrEmptyTripTitle
	}

	if t.City == "" {
		return ErrEmptyTripCity
	}

	if t.DepartsAt.Before(t.ArrivesAt) {
		return ErrInvalidTripDates
	}

	if t.TotalBudget < 0 {
		return ErrNegativeBudget
	}

	return nil
}
