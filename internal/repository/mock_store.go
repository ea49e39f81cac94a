package repository

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/ChatterBot_Go/internal/domain"
)

// MockStore is a mock implementation of the Store interface
type MockStore struct {
	mock.Mock
}

var _ Store = (*MockStore)(nil)

func (m *MockStore) EnsureUser(ctx context.Context, userID int64, now time.Time) error {
	args := m.Called(ctx, userID, now)
	return args.Error(0)
}

func (m *MockStore) ApplyIncrements(ctx context.Context, userID int64, deltas domain.CounterDeltas, profile domain.ProfileUpdate, now time.Time) error {
	args := m.Called(ctx, userID, deltas, profile, now)
	return args.Error(0)
}

func (m *MockStore) GetCounters(ctx context.Context, userID int64) (*domain.UserCounters, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCounters), args.Error(1)
}

func (m *MockStore) SumCounter(ctx context.Context, field domain.CounterField) (int64, error) {
	args := m.Called(ctx, field)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) TopByCounter(ctx context.Context, field domain.CounterField, limit int) ([]domain.UserCounters, error) {
	args := m.Called(ctx, field, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserCounters), args.Error(1)
}

func (m *MockStore) RecordActivity(ctx context.Context, event domain.ActivityEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockStore) TopActivity(ctx context.Context, userID int64, grouping domain.ActivityGrouping, limit int) ([]domain.ActivityBucket, error) {
	args := m.Called(ctx, userID, grouping, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityBucket), args.Error(1)
}

func (m *MockStore) ActivityByDay(ctx context.Context, userID int64, since time.Time) ([]domain.ActivityBucket, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityBucket), args.Error(1)
}

func (m *MockStore) DeleteActivityBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) IncrementReplies(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockStore) PopularityRank(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) TopPopular(ctx context.Context, limit int) ([]domain.PopularityRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PopularityRecord), args.Error(1)
}

func (m *MockStore) InsertGroup(ctx context.Context, name string, userID int64, now time.Time) error {
	args := m.Called(ctx, name, userID, now)
	return args.Error(0)
}

func (m *MockStore) AddMember(ctx context.Context, name string, userID int64, now time.Time) (bool, error) {
	args := m.Called(ctx, name, userID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) RemoveMemberIfOthers(ctx context.Context, name string, userID int64, now time.Time) (bool, error) {
	args := m.Called(ctx, name, userID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) DeleteIfSoleMember(ctx context.Context, name string, userID int64) (bool, error) {
	args := m.Called(ctx, name, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) DeleteGroup(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) GetGroup(ctx context.Context, name string) (*domain.Group, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockStore) ListGroups(ctx context.Context) ([]domain.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}

func (m *MockStore) GroupsForUser(ctx context.Context, userID int64) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) StoreMessage(ctx context.Context, msg domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockStore) RecentMessages(ctx context.Context, chatID int64, since time.Time, limit int) ([]domain.Message, error) {
	args := m.Called(ctx, chatID, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockStore) DeleteMessagesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStore) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
