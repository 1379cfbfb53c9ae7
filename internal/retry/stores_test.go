package retry

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voyagr/voyagr-api/internal/domain"
	"github.com/voyagr/voyagr-api/internal/store"
)

// flakyItineraryStore fails each write a fixed number of times before
// succeeding, counting every call.
type flakyItineraryStore struct {
	failuresPerCall int
	createDayCalls  int
	createActCalls  int
	listDayCalls    int
	dayFailures     int
	actFailures     int
}

var _ store.ItineraryStore = (*flakyItineraryStore)(nil)

func (s *flakyItineraryStore) CreateDay(ctx context.Context, day *domain.ItineraryDay) error {
	s.createDayCalls++
	if s.dayFailures < s.failuresPerCall {
		s.dayFailures++
		return transientErr()
	}
	return nil
}

func (s *flakyItineraryStore) CreateActivity(ctx context.Context, activity *domain.ItineraryActivity) error {
	s.createActCalls++
	if s.actFailures < s.failuresPerCall {
		s.actFailures++
		return transientErr()
	}
	return nil
}

func (s *flakyItineraryStore) ListDaysByTrip(ctx context.Context, tripID uuid.UUID) ([]*domain.ItineraryDay, error) {
	s.listDayCalls++
	return nil, transientErr()
}

func (s *flakyItineraryStore) ListActivitiesByDay(ctx context.Context, dayID uuid.UUID) ([]*domain.ItineraryActivity, error) {
	return nil, transientErr()
}

func (s *flakyItineraryStore) WithTx(tx *sql.Tx) store.ItineraryStore {
	return s
}

func TestRetryingItineraryStoreRetriesWrites(t *testing.T) {
	t.Parallel()

	inner := &flakyItineraryStore{failuresPerCall: 2}
	decorated := NewItineraryStore(inner, fastPolicy(5), nil)

	day, err := domain.NewItineraryDay(uuid.New(), 1, nil)
	require.NoError(t, err)

	require.NoError(t, decorated.CreateDay(context.Background(), day))
	assert.Equal(t, 3, inner.createDayCalls, "two transient failures then success")

	activity, err := domain.NewTransportActivity(day.ID, 0, 0, 0, "bus")
	require.NoError(t, err)

	require.NoError(t, decorated.CreateActivity(context.Background(), activity))
	assert.Equal(t, 3, inner.createActCalls)
}

func TestRetryingItineraryStoreDoesNotRetryReads(t *testing.T) {
	t.Parallel()

	inner := &flakyItineraryStore{failuresPerCall: 1}
	decorated := NewItineraryStore(inner, fastPolicy(5), nil)

	_, err := decorated.ListDaysByTrip(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 1, inner.listDayCalls, "reads pass through without retrying")
}
