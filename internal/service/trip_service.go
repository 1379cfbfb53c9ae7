package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/voyagr/voyagr-api/internal/domain"
	"github.com/voyagr/voyagr-api/internal/store"
	"github.com/voyagr/voyagr-api/internal/task"
)

// JobEnqueuer defines the interface for submitting background jobs
type JobEnqueuer interface {
	// Enqueue adds a job to the processing queue. It never blocks and
	// never fails.
	Enqueue(job task.Job)
}

// ItineraryJobFactory creates generation jobs for newly persisted trips
type ItineraryJobFactory interface {
	// CreateJob creates a job carrying a snapshot of the given trip
	CreateJob(trip *domain.Trip) (task.Job, error)
}

// TripDetail is a trip together with its generated itinerary, if any.
type TripDetail struct {
	Trip *domain.Trip
	Days []DayDetail
}

// DayDetail is one itinerary day and its ordered activities.
type DayDetail struct {
	Day        *domain.ItineraryDay
	Activities []*domain.ItineraryActivity
}

// TripService provides trip-related operations
type TripService interface {
	// CreateTripAndEnqueueJob persists a new trip and queues itinerary
	// generation for it. The trip is returned as soon as it is committed;
	// generation happens in the background.
	CreateTripAndEnqueueJob(
		ctx context.Context,
		ownerID uuid.UUID,
		title string,
		arrivesAt, departsAt time.Time,
		city string,
		totalBudget int64,
		themes []string,
		wantedPlaces []string,
	) (*domain.Trip, error)

	// GetTripDetail retrieves a trip and its itinerary. Only the owner may
	// read a trip.
	GetTripDetail(ctx context.Context, tripID, callerID uuid.UUID) (*TripDetail, error)

	// ListTrips retrieves all trips owned by the caller, newest first.
	ListTrips(ctx context.Context, callerID uuid.UUID) ([]*domain.Trip, error)

	// DeleteTrip removes a trip and its itinerary. Only the owner may
	// delete a trip.
	DeleteTrip(ctx context.Context, tripID, callerID uuid.UUID) error
}

// Common sentinel errors for TripService
var (
	// ErrTripNotFound indicates that the trip does not exist
	ErrTripNotFound = errors.New("trip not found")

	// ErrTripAccessDenied indicates the caller does not own the trip
	ErrTripAccessDenied = errors.New("trip access denied")
)

// TripServiceError wraps errors from the trip service with context.
type TripServiceError struct {
	// Operation is the operation that failed (e.g., "create_trip")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TripServiceError.
func (e *TripServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("trip service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("trip service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TripServiceError) Unwrap() error {
	return e.Err
}

// newTripServiceError wraps err, passing service and store sentinels
// through as ErrTripNotFound.
func newTripServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrTripNotFound) || errors.Is(err, store.ErrTripNotFound) {
		return ErrTripNotFound
	}

	return &TripServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// tripServiceImpl implements the TripService interface
type tripServiceImpl struct {
	db             *sql.DB
	tripStore      store.TripStore
	itineraryStore store.ItineraryStore
	jobFactory     ItineraryJobFactory
	enqueuer       JobEnqueuer
	logger         *slog.Logger

	// runInTx executes a function inside a database transaction. It is
	// store.RunInTransaction in production and replaceable in tests.
	runInTx func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewTripService creates a new TripService.
// It returns an error if any of the required dependencies are nil.
func NewTripService(
	db *sql.DB,
	tripStore store.TripStore,
	itineraryStore store.ItineraryStore,
	jobFactory ItineraryJobFactory,
	enqueuer JobEnqueuer,
	logger *slog.Logger,
) (TripService, error) {
	if db == nil {
		return nil, &TripServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if tripStore == nil {
		return nil, &TripServiceError{Operation: "create_service", Message: "tripStore cannot be nil"}
	}
	if itineraryStore == nil {
		return nil, &TripServiceError{Operation: "create_service", Message: "itineraryStore cannot be nil"}
	}
	if jobFactory == nil {
		return nil, &TripServiceError{Operation: "create_service", Message: "jobFactory cannot be nil"}
	}
	if enqueuer == nil {
		return nil, &TripServiceError{Operation: "create_service", Message: "enqueuer cannot be nil"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &tripServiceImpl{
		db:             db,
		tripStore:      tripStore,
		itineraryStore: itineraryStore,
		jobFactory:     jobFactory,
		enqueuer:       enqueuer,
		logger:         logger.With("component", "trip_service"),
		runInTx:        store.RunInTransaction,
	}, nil
}

// CreateTripAndEnqueueJob persists a new trip, then enqueues generation.
// The enqueue happens strictly after the trip write commits, so the job can
// never observe a trip that was rolled back.
func (s *tripServiceImpl) CreateTripAndEnqueueJob(
	ctx context.Context,
	ownerID uuid.UUID,
	title string,
	arrivesAt, departsAt time.Time,
	city string,
	totalBudget int64,
	themes []string,
	wantedPlaces []string,
) (*domain.Trip, error) {
	trip, err := domain.NewTrip(ownerID, title, arrivesAt, departsAt, city, totalBudget, themes, wantedPlaces)
	if err != nil {
		s.logger.Warn("failed to create trip object",
			"error", err,
			"owner_id", ownerID)
		return nil, newTripServiceError("create_trip", "invalid trip data", err)
	}

	err = s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.tripStore.WithTx(tx)
		if err := txStore.Create(ctx, trip); err != nil {
			s.logger.Error("failed to create trip in transaction",
				"error", err,
				"owner_id", ownerID,
				"trip_id", trip.ID)
			return newTripServiceError("create_trip", "failed to save trip", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("trip created",
		"trip_id", trip.ID,
		"owner_id", ownerID,
		"city", trip.City)

	job, err := s.jobFactory.CreateJob(trip)
	if err != nil {
		// The trip is already committed, so surface the failure but leave
		// the trip in place; it simply never gets an itinerary.
		s.logger.Error("failed to create itinerary generation job",
			"error", err,
			"trip_id", trip.ID)
		return nil, newTripServiceError("create_trip", "failed to create generation job", err)
	}

	s.enqueuer.Enqueue(job)

	s.logger.Info("itinerary generation job enqueued",
		"trip_id", trip.ID,
		"job_id", job.ID())

	return trip, nil
}

// GetTripDetail retrieves a trip and its generated itinerary.
func (s *tripServiceImpl) GetTripDetail(ctx context.Context, tripID, callerID uuid.UUID) (*TripDetail, error) {
	trip, err := s.tripStore.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, store.ErrTripNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, newTripServiceError("get_trip", "failed to retrieve trip", err)
	}

	if trip.OwnerID != callerID {
		s.logger.Warn("trip access denied",
			"trip_id", tripID,
			"owner_id", trip.OwnerID,
			"caller_id", callerID)
		return nil, ErrTripAccessDenied
	}

	days, err := s.itineraryStore.ListDaysByTrip(ctx, tripID)
	if err != nil {
		return nil, newTripServiceError("get_trip", "failed to retrieve itinerary days", err)
	}

	detail := &TripDetail{Trip: trip, Days: make([]DayDetail, 0, len(days))}
	for _, day := range days {
		activities, err := s.itineraryStore.ListActivitiesByDay(ctx, day.ID)
		if err != nil {
			return nil, newTripServiceError("get_trip", "failed to retrieve activities", err)
		}
		detail.Days = append(detail.Days, DayDetail{Day: day, Activities: activities})
	}

	return detail, nil
}

// ListTrips retrieves all trips owned by the caller.
func (s *tripServiceImpl) ListTrips(ctx context.Context, callerID uuid.UUID) ([]*domain.Trip, error) {
	trips, err := s.tripStore.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, newTripServiceError("list_trips", "failed to list trips", err)
	}
	return trips, nil
}

// DeleteTrip removes a trip after checking ownership. Itinerary rows go
// with it through cascading constraints.
func (s *tripServiceImpl) DeleteTrip(ctx context.Context, tripID, callerID uuid.UUID) error {
	trip, err := s.tripStore.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, store.ErrTripNotFound) {
			return ErrTripNotFound
		}
		return newTripServiceError("delete_trip", "failed to retrieve trip", err)
	}

	if trip.OwnerID != callerID {
		s.logger.Warn("trip delete denied",
			"trip_id", tripID,
			"owner_id", trip.OwnerID,
			"caller_id", callerID)
		return ErrTripAccessDenied
	}

	if err := s.tripStore.Delete(ctx, tripID); err != nil {
		if errors.Is(err, store.ErrTripNotFound) {
			return ErrTripNotFound
		}
		return newTripServiceError("delete_trip", "failed to delete trip", err)
	}

	s.logger.Info("trip deleted",
		"trip_id", tripID,
		"owner_id", callerID)
	return nil
}
