package task

import (
	"log/slog"

	"github.com/voyagr/voyagr-api/internal/domain"
	"github.com/voyagr/voyagr-api/internal/platform/planner"
	"github.com/voyagr/voyagr-api/internal/store"
)

// ItineraryJobFactory creates ItineraryGenerationJob instances with the
// pipeline's shared dependencies already bound.
type ItineraryJobFactory struct {
	plannerClient  planner.Client
	tripStore      store.TripStore
	itineraryStore store.ItineraryStore
	logger         *slog.Logger
}

// NewItineraryJobFactory creates a new factory for itinerary generation jobs.
func NewItineraryJobFactory(
	plannerClient planner.Client,
	tripStore store.TripStore,
	itineraryStore store.ItineraryStore,
	logger *slog.Logger,
) *ItineraryJobFactory {
	if logger == nil {
		logger = slog.Default()
	}

	return &ItineraryJobFactory{
		plannerClient:  plannerClient,
		tripStore:      tripStore,
		itineraryStore: itineraryStore,
		logger:         logger.With("component", "itinerary_job_factory"),
	}
}

// CreateJob creates a new generation job carrying a snapshot of the trip.
func (f *ItineraryJobFactory) CreateJob(trip *domain.Trip) (Job, error) {
	return NewItineraryGenerationJob(
		trip,
		f.plannerClient,
		f.tripStore,
		f.itineraryStore,
		f.logger,
	)
}
