package task

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/voyagr/voyagr-api/internal/domain"
	"github.com/voyagr/voyagr-api/internal/platform/planner"
	"github.com/voyagr/voyagr-api/internal/store"
)

// mockJob is a configurable Job implementation for queue and worker tests.
type mockJob struct {
	id        uuid.UUID
	executeFn func(ctx context.Context) error
}

func newMockJob(executeFn func(ctx context.Context) error) *mockJob {
	return &mockJob{id: uuid.New(), executeFn: executeFn}
}

func (j *mockJob) ID() uuid.UUID     { return j.id }
func (j *mockJob) Type() string      { return "mock" }
func (j *mockJob) Status() JobStatus { return JobStatusPending }

func (j *mockJob) Execute(ctx context.Context) error {
	if j.executeFn != nil {
		return j.executeFn(ctx)
	}
	return nil
}

// mockPlannerClient returns a canned response or error.
type mockPlannerClient struct {
	response *planner.ItineraryResponse
	err      error
	calls    int
}

func (m *mockPlannerClient) GenerateItinerary(ctx context.Context, trip *domain.Trip) (*planner.ItineraryResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

// mockTripStore serves a single trip, or a configured error.
type mockTripStore struct {
	trip *domain.Trip
	err  error
}

func (m *mockTripStore) Create(ctx context.Context, trip *domain.Trip) error { return nil }

func (m *mockTripStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.trip, nil
}

func (m *mockTripStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Trip, error) {
	return nil, nil
}

func (m *mockTripStore) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (m *mockTripStore) WithTx(tx *sql.Tx) store.TripStore { return m }

// recordingItineraryStore captures every persisted day and activity so tests
// can assert on exactly what the job wrote.
type recordingItineraryStore struct {
	mu         sync.Mutex
	days       []*domain.ItineraryDay
	activities []*domain.ItineraryActivity

	createDayErr      error
	createActivityErr error
}

func (m *recordingItineraryStore) CreateDay(ctx context.Context, day *domain.ItineraryDay) error {
	if m.createDayErr != nil {
		return m.createDayErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.days = append(m.days, day)
	return nil
}

func (m *recordingItineraryStore) CreateActivity(ctx context.Context, activity *domain.ItineraryActivity) error {
	if m.createActivityErr != nil {
		return m.createActivityErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities = append(m.activities, activity)
	return nil
}

func (m *recordingItineraryStore) ListDaysByTrip(ctx context.Context, tripID uuid.UUID) ([]*domain.ItineraryDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.days, nil
}

func (m *recordingItineraryStore) ListActivitiesByDay(ctx context.Context, dayID uuid.UUID) ([]*domain.ItineraryActivity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activities, nil
}

func (m *recordingItineraryStore) WithTx(tx *sql.Tx) store.ItineraryStore { return m }
