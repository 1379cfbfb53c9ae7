package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagr/voyagr-api/internal/domain"
	"github.com/voyagr/voyagr-api/internal/store"
	"github.com/voyagr/voyagr-api/internal/task"
)

// fakeTripStore is an in-memory TripStore for service tests.
type fakeTripStore struct {
	trips      map[uuid.UUID]*domain.Trip
	getErr     error
	deleteErr  error
	deletedIDs []uuid.UUID
}

func newFakeTripStore() *fakeTripStore {
	return &fakeTripStore{trips: make(map[uuid.UUID]*domain.Trip)}
}

func (f *fakeTripStore) Create(ctx context.Context, trip *domain.Trip) error {
	f.trips[trip.ID] = trip
	return nil
}

func (f *fakeTripStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	trip, ok := f.trips[id]
	if !ok {
		return nil, store.ErrTripNotFound
	}
	return trip, nil
}

func (f *fakeTripStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Trip, error) {
	var out []*domain.Trip
	for _, trip := range f.trips {
		if trip.OwnerID == ownerID {
			out = append(out, trip)
		}
	}
	return out, nil
}

func (f *fakeTripStore) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.trips[id]; !ok {
		return store.ErrTripNotFound
	}
	delete(f.trips, id)
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeTripStore) WithTx(tx *sql.Tx) store.TripStore { return f }

// fakeItineraryStore serves canned days and activities.
type fakeItineraryStore struct {
	days       []*domain.ItineraryDay
	activities map[uuid.UUID][]*domain.ItineraryActivity
}

func (f *fakeItineraryStore) CreateDay(ctx context.Context, day *domain.ItineraryDay) error {
	return nil
}

func (f *fakeItineraryStore) CreateActivity(ctx context.Context, activity *domain.ItineraryActivity) error {
	return nil
}

func (f *fakeItineraryStore) ListDaysByTrip(ctx context.Context, tripID uuid.UUID) ([]*domain.ItineraryDay, error) {
	return f.days, nil
}

func (f *fakeItineraryStore) ListActivitiesByDay(ctx context.Context, dayID uuid.UUID) ([]*domain.ItineraryActivity, error) {
	return f.activities[dayID], nil
}

func (f *fakeItineraryStore) WithTx(tx *sql.Tx) store.ItineraryStore { return f }

// fakeEnqueuer records enqueued jobs.
type fakeEnqueuer struct {
	jobs []task.Job
}

func (f *fakeEnqueuer) Enqueue(job task.Job) { f.jobs = append(f.jobs, job) }

// fakeJobFactory returns a stub job, or an error.
type fakeJobFactory struct {
	err error
}

type stubJob struct {
	id     uuid.UUID
	tripID uuid.UUID
}

func (j *stubJob) ID() uuid.UUID                    { return j.id }
func (j *stubJob) Type() string                     { return "stub" }
func (j *stubJob) Status() task.JobStatus           { return task.JobStatusPending }
func (j *stubJob) Execute(ctx context.Context) error { return nil }

func (f *fakeJobFactory) CreateJob(trip *domain.Trip) (task.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &stubJob{id: uuid.New(), tripID: trip.ID}, nil
}

func newTestService(t *testing.T, trips *fakeTripStore, itineraries *fakeItineraryStore, enqueuer *fakeEnqueuer) TripService {
	t.Helper()
	return newTestServiceWithFactory(t, trips, itineraries, &fakeJobFactory{}, enqueuer)
}

// newTestServiceWithFactory builds a service whose transaction runner
// invokes the callback directly, so the fakes stand in for a real database.
func newTestServiceWithFactory(t *testing.T, trips *fakeTripStore, itineraries *fakeItineraryStore, factory *fakeJobFactory, enqueuer *fakeEnqueuer) TripService {
	t.Helper()

	svc, err := NewTripService(&sql.DB{}, trips, itineraries, factory, enqueuer, nil)
	require.NoError(t, err)

	impl := svc.(*tripServiceImpl)
	impl.runInTx = func(ctx context.Context, db *sql.DB, fn store.TxFn) error {
		return fn(ctx, nil)
	}
	return svc
}

func seedTrip(t *testing.T, trips *fakeTripStore, ownerID uuid.UUID) *domain.Trip {
	t.Helper()

	arrives := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	trip, err := domain.NewTrip(ownerID, "Test trip", arrives, arrives.Add(48*time.Hour),
		"Porto", 50000, nil, nil)
	require.NoError(t, err)
	trips.trips[trip.ID] = trip
	return trip
}

func TestCreateTripPersistsThenEnqueuesJob(t *testing.T) {
	t.Parallel()

	trips := newFakeTripStore()
	enqueuer := &fakeEnqueuer{}
	svc := newTestService(t, trips, &fakeItineraryStore{}, enqueuer)

	ownerID := uuid.New()
	arrives := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	trip, err := svc.CreateTripAndEnqueueJob(context.Background(), ownerID, "Summer in Porto",
		arrives, arrives.Add(72*time.Hour), "Porto", 50000, []string{"food"}, nil)
	require.NoError(t, err)

	require.NotNil(t, trip)
	assert.Equal(t, ownerID, trip.OwnerID)
	assert.Contains(t, trips.trips, trip.ID)

	require.Len(t, enqueuer.jobs, 1)
	assert.Equal(t, trip.ID, enqueuer.jobs[0].(*stubJob).tripID)
}

func TestCreateTripInvalidDataEnqueuesNothing(t *testing.T) {
	t.Parallel()

	trips := newFakeTripStore()
	enqueuer := &fakeEnqueuer{}
	svc := newTestService(t, trips, &fakeItineraryStore{}, enqueuer)

	arrives := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	_, err := svc.CreateTripAndEnqueueJob(context.Background(), uuid.New(), "Backwards",
		arrives, arrives.Add(-24*time.Hour), "Porto", 50000, nil, nil)
	require.Error(t, err)

	assert.Empty(t, trips.trips)
	assert.Empty(t, enqueuer.jobs)
}

func TestCreateTripCommitFailureEnqueuesNothing(t *testing.T) {
	t.Parallel()

	trips := newFakeTripStore()
	enqueuer := &fakeEnqueuer{}
	svc := newTestService(t, trips, &fakeItineraryStore{}, enqueuer)

	commitErr := errors.New("commit failed")
	svc.(*tripServiceImpl).runInTx = func(ctx context.Context, db *sql.DB, fn store.TxFn) error {
		return commitErr
	}

	arrives := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	_, err := svc.CreateTripAndEnqueueJob(context.Background(), uuid.New(), "Doomed",
		arrives, arrives.Add(24*time.Hour), "Porto", 50000, nil, nil)
	require.ErrorIs(t, err, commitErr)

	assert.Empty(t, enqueuer.jobs)
}

func TestCreateTripFactoryFailureLeavesTripWithoutJob(t *testing.T) {
	t.Parallel()

	trips := newFakeTripStore()
	enqueuer := &fakeEnqueuer{}
	factory := &fakeJobFactory{err: errors.New("factory broke")}
	svc := newTestServiceWithFactory(t, trips, &fakeItineraryStore{}, factory, enqueuer)

	arrives := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	_, err := svc.CreateTripAndEnqueueJob(context.Background(), uuid.New(), "Jobless",
		arrives, arrives.Add(24*time.Hour), "Porto", 50000, nil, nil)
	require.Error(t, err)

	// The trip committed before the factory ran, so it stays persisted;
	// it just never gets an itinerary.
	assert.Len(t, trips.trips, 1)
	assert.Empty(t, enqueuer.jobs)
}

func TestGetTripDetailReturnsItinerary(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	trips := newFakeTripStore()
	trip := seedTrip(t, trips, ownerID)

	day, err := domain.NewItineraryDay(trip.ID, 1, nil)
	require.NoError(t, err)
	activity, err := domain.NewPlaceActivity(day.ID, 1, 9*time.Hour, time.Hour, "Livraria Lello", 500, "", "")
	require.NoError(t, err)

	itineraries := &fakeItineraryStore{
		days:       []*domain.ItineraryDay{day},
		activities: map[uuid.UUID][]*domain.ItineraryActivity{day.ID: {activity}},
	}

	svc := newTestService(t, trips, itineraries, &fakeEnqueuer{})

	detail, err := svc.GetTripDetail(context.Background(), trip.ID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, trip.ID, detail.Trip.ID)
	require.Len(t, detail.Days, 1)
	require.Len(t, detail.Days[0].Activities, 1)
	assert.Equal(t, "Livraria Lello", detail.Days[0].Activities[0].PlaceName)
}

func TestGetTripDetailUnknownTrip(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newFakeTripStore(), &fakeItineraryStore{}, &fakeEnqueuer{})

	_, err := svc.GetTripDetail(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrTripNotFound)
}

func TestGetTripDetailDeniesForeignCaller(t *testing.T) {
	t.Parallel()

	trips := newFakeTripStore()
	trip := seedTrip(t, trips, uuid.New())

	svc := newTestService(t, trips, &fakeItineraryStore{}, &fakeEnqueuer{})

	_, err := svc.GetTripDetail(context.Background(), trip.ID, uuid.New())
	assert.ErrorIs(t, err, ErrTripAccessDenied)
}

func TestDeleteTripChecksOwnership(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	trips := newFakeTripStore()
	trip := seedTrip(t, trips, ownerID)

	svc := newTestService(t, trips, &fakeItineraryStore{}, &fakeEnqueuer{})

	err := svc.DeleteTrip(context.Background(), trip.ID, uuid.New())
	assert.ErrorIs(t, err, ErrTripAccessDenied)
	assert.Empty(t, trips.deletedIDs)

	err = svc.DeleteTrip(context.Background(), trip.ID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{trip.ID}, trips.deletedIDs)
}

func TestDeleteTripUnknownTrip(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newFakeTripStore(), &fakeItineraryStore{}, &fakeEnqueuer{})

	err := svc.DeleteTrip(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrTripNotFound)
}

func TestListTripsReturnsOwnTripsOnly(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	trips := newFakeTripStore()
	seedTrip(t, trips, ownerID)
	seedTrip(t, trips, uuid.New())

	svc := newTestService(t, trips, &fakeItineraryStore{}, &fakeEnqueuer{})

	got, err := svc.ListTrips(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestNewTripServiceValidatesDependencies(t *testing.T) {
	t.Parallel()

	trips := newFakeTripStore()
	itineraries := &fakeItineraryStore{}
	enqueuer := &fakeEnqueuer{}
	factory := &fakeJobFactory{}
	db := &sql.DB{}

	_, err := NewTripService(nil, trips, itineraries, factory, enqueuer, nil)
	assert.Error(t, err)

	_, err = NewTripService(db, nil, itineraries, factory, enqueuer, nil)
	assert.Error(t, err)

	_, err = NewTripService(db, trips, nil, factory, enqueuer, nil)
	assert.Error(t, err)

	_, err = NewTripService(db, trips, itineraries, nil, enqueuer, nil)
	assert.Error(t, err)

	_, err = NewTripService(db, trips, itineraries, factory, nil, nil)
	assert.Error(t, err)
}

func TestServiceErrorWrapping(t *testing.T) {
	t.Parallel()

	inner := errors.New("boom")
	err := newTripServiceError("get_trip", "failed", inner)

	var svcErr *TripServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "get_trip", svcErr.Operation)
	assert.ErrorIs(t, err, inner)

	assert.ErrorIs(t, newTripServiceError("get_trip", "failed", store.ErrTripNotFound), ErrTripNotFound)
	assert.NoError(t, newTripServiceError("get_trip", "failed", nil))
}
