package retry

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/voyagr/voyagr-api/internal/domain"
	"github.com/voyagr/voyagr-api/internal/store"
)

// The decorators below wrap the store interfaces so every create, update and
// delete in the system runs under the write-retry policy. Reads pass through
// untouched: a failed read is reported to the caller, which can simply try
// again, while a dropped write during failover would lose data.

// NewTripStore decorates a TripStore with the write-retry policy.
func NewTripStore(inner store.TripStore, policy Policy, log *slog.Logger) store.TripStore {
	if log == nil {
		log = slog.Default()
	}
	return &retryingTripStore{
		inner:  inner,
		policy: policy,
		logger: log.With(slog.String("component", "retrying_trip_store")),
	}
}

type retryingTripStore struct {
	inner  store.TripStore
	policy Policy
	logger *slog.Logger
}

var _ store.TripStore = (*retryingTripStore)(nil)

func (s *retryingTripStore) Create(ctx context.Context, trip *domain.Trip) error {
	return Do(ctx, s.logger, s.policy, func() error {
		return s.inner.Create(ctx, trip)
	})
}

func (s *retryingTripStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	return s.inner.GetByID(ctx, id)
}

func (s *retryingTripStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Trip, error) {
	return s.inner.ListByOwner(ctx, ownerID)
}

func (s *retryingTripStore) Delete(ctx context.Context, id uuid.UUID) error {
	return Do(ctx, s.logger, s.policy, func() error {
		return s.inner.Delete(ctx, id)
	})
}

func (s *retryingTripStore) WithTx(tx *sql.Tx) store.TripStore {
	return &retryingTripStore{
		inner:  s.inner.WithTx(tx),
		policy: s.policy,
		logger: s.logger,
	}
}

// NewItineraryStore decorates an ItineraryStore with the write-retry policy.
func NewItineraryStore(inner store.ItineraryStore, policy Policy, log *slog.Logger) store.ItineraryStore {
	if log == nil {
		log = slog.Default()
	}
	return &retryingItineraryStore{
		inner:  inner,
		policy: policy,
		logger: log.With(slog.String("component", "retrying_itinerary_store")),
	}
}

type retryingItineraryStore struct {
	inner  store.ItineraryStore
	policy Policy
	logger *slog.Logger
}

var _ store.ItineraryStore = (*retryingItineraryStore)(nil)

func (s *retryingItineraryStore) CreateDay(ctx context.Context, day *domain.ItineraryDay) error {
	return Do(ctx, s.logger, s.policy, func() error {
		return s.inner.CreateDay(ctx, day)
	})
}

func (s *retryingItineraryStore) CreateActivity(ctx context.Context, activity *domain.ItineraryActivity) error {
	return Do(ctx, s.logger, s.policy, func() error {
		return s.inner.CreateActivity(ctx, activity)
	})
}

func (s *retryingItineraryStore) ListDaysByTrip(ctx context.Context, tripID uuid.UUID) ([]*domain.ItineraryDay, error) {
	return s.inner.ListDaysByTrip(ctx, tripID)
}

func (s *retryingItineraryStore) ListActivitiesByDay(ctx context.Context, dayID uuid.UUID) ([]*domain.ItineraryActivity, error) {
	return s.inner.ListActivitiesByDay(ctx, dayID)
}

func (s *retryingItineraryStore) WithTx(tx *sql.Tx) store.ItineraryStore {
	return &retryingItineraryStore{
		inner:  s.inner.WithTx(tx),
		policy: s.policy,
		logger: s.logger,
	}
}

// NewUserStore decorates a UserStore with the write-retry policy.
func NewUserStore(inner store.UserStore, policy Policy, log *slog.Logger) store.UserStore {
	if log == nil {
		log = slog.Default()
	}
	return &retryingUserStore{
		inner:  inner,
		policy: policy,
		logger: log.With(slog.String("component", "retrying_user_store")),
	}
}

type retryingUserStore struct {
	inner  store.UserStore
	policy Policy
	logger *slog.Logger
}

var _ store.UserStore = (*retryingUserStore)(nil)

func (s *retryingUserStore) Create(ctx context.Context, user *domain.User) error {
	return Do(ctx, s.logger, s.policy, func() error {
		return s.inner.Create(ctx, user)
	})
}

func (s *retryingUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.inner.GetByID(ctx, id)
}

func (s *retryingUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.inner.GetByEmail(ctx, email)
}

func (s *retryingUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &retryingUserStore{
		inner:  s.inner.WithTx(tx),
		policy: s.policy,
		logger: s.logger,
	}
}
