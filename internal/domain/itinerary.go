package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ActivityKind distinguishes the two activity subtypes that share the
// event-order axis within a day.
type ActivityKind string

// Possible activity kinds
const (
	ActivityKindPlace     ActivityKind = "place"
	ActivityKindTransport ActivityKind = "transport"
)

// TransportModeUnknown is substituted when the AI response omits the
// transport mode of a route activity.
const TransportModeUnknown = "UNKNOWN"

// Common validation errors for itinerary entities
var (
	ErrEmptyDayID            = errors.New("itinerary day ID cannot be empty")
	ErrEmptyDayTripID        = errors.New("itinerary day trip ID cannot be empty")
	ErrInvalidDayIndex       = errors.New("itinerary day index must be positive")
	ErrEmptyActivityID       = errors.New("activity ID cannot be empty")
	ErrEmptyActivityDayID    = errors.New("activity day ID cannot be empty")
	ErrInvalidActivityKind   = errors.New("invalid activity kind")
	ErrNegativeActivityCost  = errors.New("activity cost cannot be negative")
	ErrNegativeEventOrder    = errors.New("activity event order cannot be negative")
	ErrNegativeActivityStart = errors.New("activity start time cannot be negative")
)

// ItineraryDay is one generated day of a trip's itinerary. DayIndex is
// 1-based and mirrors the day numbering of the AI response; Date is nil when
// the response omitted it.
type ItineraryDay struct {
	ID        uuid.UUID  `json:"id"`
	TripID    uuid.UUID  `json:"trip_id"`
	DayIndex  int        `json:"day_index"`
	Date      *time.Time `json:"date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewItineraryDay creates an ItineraryDay for the given trip.
// date may be nil. Returns an error if validation fails.
func NewItineraryDay(tripID uuid.UUID, dayIndex int, date *time.Time) (*ItineraryDay, error) {
	day := &ItineraryDay{
		ID:        uuid.New(),
		TripID:    tripID,
		DayIndex:  dayIndex,
		Date:      date,
		CreatedAt: time.Now().UTC(),
	}

	if err := day.Validate(); err != nil {
		return nil, err
	}

	return day, nil
}

// Validate checks if the ItineraryDay has valid data.
func (d *ItineraryDay) Validate() error {
	if d.ID == uuid.Nil {
		return ErrEmptyDayID
	}

	if d.TripID == uuid.Nil {
		return ErrEmptyDayTripID
	}

	if d.DayIndex < 1 {
		return ErrInvalidDayIndex
	}

	return nil
}

// ItineraryActivity is one scheduled event within a day, either a place
// visit or a transport leg. StartTime is the offset from midnight. Activities
// are ordered by EventOrder; duplicate orders are permitted and preserved in
// whatever order they were persisted.
type ItineraryActivity struct {
	ID         uuid.UUID     `json:"id"`
	DayID      uuid.UUID     `json:"day_id"`
	Kind       ActivityKind  `json:"kind"`
	EventOrder int           `json:"event_order"`
	StartTime  time.Duration `json:"start_time"`
	Duration   time.Duration `json:"duration"`

	// Place fields (Kind == ActivityKindPlace)
	PlaceName string `json:"place_name,omitempty"`
	Cost      int64  `json:"cost,omitempty"` // minor currency units
	Memo      string `json:"memo,omitempty"`
	MapURL    string `json:"map_url,omitempty"`

	// Transport field (Kind == ActivityKindTransport)
	TransportMode string `json:"transport_mode,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewPlaceActivity creates a place-visit activity within the given day.
// Returns an error if validation fails.
func NewPlaceActivity(
	dayID uuid.UUID,
	eventOrder int,
	startTime, duration time.Duration,
	placeName string,
	cost int64,
	memo, mapURL string,
) (*ItineraryActivity, error) {
	activity := &ItineraryActivity{
		ID:         uuid.New(),
		DayID:      dayID,
		Kind:       ActivityKindPlace,
		EventOrder: eventOrder,
		StartTime:  startTime,
		Duration:   duration,
		PlaceName:  placeName,
		Cost:       cost,
		Memo:       memo,
		MapURL:     mapURL,
		CreatedAt:  time.Now().UTC(),
	}

	if err := activity.Validate(); err != nil {
		return nil, err
	}

	return activity, nil
}

// NewTransportActivity creates a transport-leg activity within the given day.
// An empty mode is replaced with TransportModeUnknown.
// Returns an error if validation fails.
func NewTransportActivity(
	dayID uuid.UUID,
	eventOrder int,
	startTime, duration time.Duration,
	mode string,
) (*ItineraryActivity, error) {
	if mode == "" {
		mode = TransportModeUnknown
	}

	activity := &ItineraryActivity{
		ID:            uuid.New(),
		DayID:         dayID,
		Kind:          ActivityKindTransport,
		EventOrder:    eventOrder,
		StartTime:     startTime,
		Duration:      duration,
		TransportMode: mode,
		CreatedAt:     time.Now().UTC(),
	}

	if err := activity.Validate(); err != nil {
		return nil, err
	}

	return activity, nil
}

// Validate checks if the ItineraryActivity has valid data.
func (a *ItineraryActivity) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyActivityID
	}

	if a.DayID == uuid.Nil {
		return ErrEmptyActivityDayID
	}

	if a.Kind != ActivityKindPlace && a.Kind != ActivityKindTransport {
		return ErrInvalidActivityKind
	}

	if a.EventOrder < 0 {
		return ErrNegativeEventOrder
	}

	if a.StartTime < 0 {
		return ErrNegativeActivityStart
	}

	if a.Cost < 0 {
		return ErrNegativeActivityCost
	}

	return nil
}
