package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/voyagr/voyagr-api/internal/domain"
	"github.com/voyagr/voyagr-api/internal/platform/planner"
	"github.com/voyagr/voyagr-api/internal/store"
)

// Common errors
var (
	ErrNilPlannerClient  = errors.New("planner client cannot be nil")
	ErrNilTripStore      = errors.New("trip store cannot be nil")
	ErrNilItineraryStore = errors.New("itinerary store cannot be nil")
	ErrNilTrip           = errors.New("trip cannot be nil")
)

const routeActivityType = "route"

// ItineraryGenerationJob implements the Job interface. It carries an
// immutable snapshot of the trip taken at creation time, asks the planning
// service for a day-by-day plan, and persists the resulting days and
// activities. The stores it writes through are expected to carry the
// write-retry behavior; the job itself never retries.
type ItineraryGenerationJob struct {
	id             uuid.UUID
	trip           domain.Trip
	plannerClient  planner.Client
	tripStore      store.TripStore
	itineraryStore store.ItineraryStore
	logger         *slog.Logger
	status         JobStatus
}

// NewItineraryGenerationJob creates a job for the given trip. The trip is
// copied so later mutations of the caller's value cannot leak into the job.
func NewItineraryGenerationJob(
	trip *domain.Trip,
	plannerClient planner.Client,
	tripStore store.TripStore,
	itineraryStore store.ItineraryStore,
	logger *slog.Logger,
) (*ItineraryGenerationJob, error) {
	if trip == nil {
		return nil, ErrNilTrip
	}
	if plannerClient == nil {
		return nil, ErrNilPlannerClient
	}
	if tripStore == nil {
		return nil, ErrNilTripStore
	}
	if itineraryStore == nil {
		return nil, ErrNilItineraryStore
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ItineraryGenerationJob{
		id:             uuid.New(),
		trip:           *trip,
		plannerClient:  plannerClient,
		tripStore:      tripStore,
		itineraryStore: itineraryStore,
		logger:         logger.With("job_type", JobTypeItineraryGeneration, "trip_id", trip.ID),
		status:         JobStatusPending,
	}, nil
}

// ID returns the job's unique identifier
func (j *ItineraryGenerationJob) ID() uuid.UUID {
	return j.id
}

// Type returns the job type identifier
func (j *ItineraryGenerationJob) Type() string {
	return JobTypeItineraryGeneration
}

// Status returns the current job status
func (j *ItineraryGenerationJob) Status() JobStatus {
	return j.status
}

// TripID returns the ID of the trip this job plans.
func (j *ItineraryGenerationJob) TripID() uuid.UUID {
	return j.trip.ID
}

// Execute runs the itinerary generation pipeline for one trip: request a
// plan from the planning service, confirm the trip still exists, then map
// and persist each day and its activities in response order.
func (j *ItineraryGenerationJob) Execute(ctx context.Context) error {
	j.status = JobStatusProcessing
	j.logger.Info("starting itinerary generation")

	if err := ctx.Err(); err != nil {
		j.status = JobStatusFailed
		return fmt.Errorf("job cancelled by context: %w", err)
	}

	// 1. Request the plan. A failed call or an empty plan aborts the job
	// with nothing written; the trip simply stays itinerary-less.
	resp, err := j.plannerClient.GenerateItinerary(ctx, &j.trip)
	if err != nil {
		j.status = JobStatusFailed
		return fmt.Errorf("failed to generate itinerary plan: %w", err)
	}

	if resp == nil || len(resp.Itineraries) == 0 {
		j.status = JobStatusCompleted
		j.logger.Warn("planning service returned no itinerary days")
		return nil
	}

	// 2. Confirm the trip still exists. It may have been deleted while
	// the job sat in the queue; that is a normal outcome, not an error.
	if _, err := j.tripStore.GetByID(ctx, j.trip.ID); err != nil {
		if errors.Is(err, store.ErrTripNotFound) {
			j.status = JobStatusCompleted
			j.logger.Info("trip deleted before processing, discarding plan")
			return nil
		}
		j.status = JobStatusFailed
		return fmt.Errorf("failed to look up trip: %w", err)
	}

	// 3. Persist days and activities in response order.
	var dayCount, activityCount int
	for _, planDay := range resp.Itineraries {
		// A day the response misnumbered is skipped rather than failing
		// the whole plan; the remaining days still get persisted.
		if planDay.Day < 1 {
			j.logger.Warn("skipping day with invalid index", "day", planDay.Day)
			continue
		}

		day, err := domain.NewItineraryDay(j.trip.ID, planDay.Day, parsePlanDate(planDay.Date))
		if err != nil {
			j.status = JobStatusFailed
			return fmt.Errorf("invalid day entry %d: %w", planDay.Day, err)
		}

		if err := j.itineraryStore.CreateDay(ctx, day); err != nil {
			j.status = JobStatusFailed
			return fmt.Errorf("failed to persist day %d: %w", day.DayIndex, err)
		}
		dayCount++

		for _, planActivity := range planDay.Activities {
			activity, err := mapActivity(day.ID, planActivity)
			if err != nil {
				j.status = JobStatusFailed
				return fmt.Errorf("invalid activity on day %d: %w", day.DayIndex, err)
			}
			if activity == nil {
				continue
			}

			if err := j.itineraryStore.CreateActivity(ctx, activity); err != nil {
				j.status = JobStatusFailed
				return fmt.Errorf("failed to persist activity on day %d: %w", day.DayIndex, err)
			}
			activityCount++
		}
	}

	j.status = JobStatusCompleted
	j.logger.Info("itinerary generation completed",
		"days", dayCount,
		"activities", activityCount)
	return nil
}

// mapActivity converts one plan activity into a domain entity, substituting
// defaults for absent or out-of-range fields. Entries with no type are
// skipped and mapped to nil. An activity whose type equals "route" in any
// case becomes a transport activity; every other typed entry becomes a
// place activity.
func mapActivity(dayID uuid.UUID, a planner.Activity) (*domain.ItineraryActivity, error) {
	if a.Type == "" {
		return nil, nil
	}

	eventOrder := 0
	if a.EventOrder != nil && *a.EventOrder > 0 {
		eventOrder = *a.EventOrder
	}

	startTime := parsePlanTime(a.StartTime)
	duration := planDuration(a.Duration)

	if strings.EqualFold(a.Type, routeActivityType) {
		return domain.NewTransportActivity(dayID, eventOrder, startTime, duration, a.Transport)
	}

	placeName := a.PlaceName
	if placeName == "" && a.PlaceID != nil {
		placeName = strconv.FormatInt(*a.PlaceID, 10)
	}

	var cost int64
	if a.Cost != nil && *a.Cost > 0 {
		cost = *a.Cost
	}

	return domain.NewPlaceActivity(
		dayID,
		eventOrder,
		startTime,
		duration,
		placeName,
		cost,
		a.Memo,
		a.GoogleMapURL,
	)
}

// parsePlanDate parses a yyyy-MM-dd plan date at start of day. Absent or
// malformed dates map to nil.
func parsePlanDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}

	d, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &d
}

// parsePlanTime parses an HH:mm plan time into an offset from midnight.
// Absent or malformed times default to midnight.
func parsePlanTime(s *string) time.Duration {
	if s == nil || *s == "" {
		return 0
	}

	t, err := time.Parse("15:04", *s)
	if err != nil {
		return 0
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
}

// planDuration converts a plan duration in minutes into a time.Duration.
// Absent or non-positive values map to zero.
func planDuration(minutes *int64) time.Duration {
	if minutes == nil || *minutes <= 0 {
		return 0
	}
	return time.Duration(*minutes) * time.Minute
}
