package counter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ChatterBot_Go/internal/database/memory"
	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/repository"
)

func strPtr(s string) *string { return &s }

func TestApplyIncrements_CreatesAndAccumulates(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore(), time.Second)

	err := svc.ApplyIncrements(ctx, 10, domain.CounterDeltas{domain.FieldTextMessages: 1, domain.FieldTotalChars: 5},
		domain.ProfileUpdate{Username: strPtr("alice")})
	require.NoError(t, err)
	err = svc.ApplyIncrements(ctx, 10, domain.CounterDeltas{domain.FieldTextMessages: 2},
		domain.ProfileUpdate{Username: strPtr("alice2")})
	require.NoError(t, err)

	u, err := svc.Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.TextMessages)
	assert.Equal(t, int64(5), u.TotalChars)
	assert.Equal(t, "alice2", u.Username, "profile fields are last-write-wins")
	assert.False(t, u.JoinedDate.IsZero())
}

func TestApplyIncrements_ConcurrentSumsAllDeltas(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore(), time.Second)

	const n = 100
	var wg sync.WaitGroup
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(delta int64) {
			defer wg.Done()
			assert.NoError(t, svc.ApplyIncrements(ctx, 5, domain.CounterDeltas{domain.FieldTotalChars: delta}, domain.ProfileUpdate{}))
		}(int64(i))
	}
	wg.Wait()

	u, err := svc.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(n*(n+1)/2), u.TotalChars)
}

func TestEnsureUser_ConcurrentCreatesOneZeroedRecord(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewService(store, time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.EnsureUser(ctx, 77))
		}()
	}
	wg.Wait()

	u, err := svc.Get(ctx, 77)
	require.NoError(t, err)
	for _, f := range domain.CounterFields {
		assert.Zero(t, u.Value(f), f)
	}

	top, err := store.TopByCounter(ctx, domain.FieldTextMessages, 10)
	require.NoError(t, err)
	assert.Empty(t, top, "zeroed users are not ranked")
}

func TestEnsureUser_DoesNotResetCounters(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore(), time.Second)

	require.NoError(t, svc.ApplyIncrements(ctx, 3, domain.CounterDeltas{domain.FieldStickers: 4}, domain.ProfileUpdate{}))
	require.NoError(t, svc.EnsureUser(ctx, 3))

	u, err := svc.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), u.Stickers)
}

func TestApplyIncrements_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore(), time.Second)

	err := svc.ApplyIncrements(ctx, 1, domain.CounterDeltas{"reactions": 1}, domain.ProfileUpdate{})
	assert.ErrorIs(t, err, domain.ErrInvalidField)

	err = svc.ApplyIncrements(ctx, 1, domain.CounterDeltas{domain.FieldVoices: -1}, domain.ProfileUpdate{})
	assert.ErrorIs(t, err, domain.ErrInvalidField)

	err = svc.ApplyIncrements(ctx, 0, domain.CounterDeltas{domain.FieldVoices: 1}, domain.ProfileUpdate{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Get(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrUserNotFound, "rejected updates must not create the user")
}

func TestGet_NotFound(t *testing.T) {
	_, err := NewService(memory.NewStore(), time.Second).Get(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreUnavailablePropagates(t *testing.T) {
	ctx := context.Background()
	repo := new(repository.MockStore)
	storeErr := domain.StoreError("apply", errors.New("connection refused"))
	repo.On("ApplyIncrements", mock.Anything, int64(1), mock.Anything, mock.Anything, mock.Anything).Return(storeErr)
	repo.On("GetCounters", mock.Anything, int64(1)).Return(nil, storeErr)
	repo.On("EnsureUser", mock.Anything, int64(1), mock.Anything).Return(storeErr)

	svc := NewService(repo, time.Second)

	assert.ErrorIs(t, svc.ApplyIncrements(ctx, 1, domain.CounterDeltas{domain.FieldTextMessages: 1}, domain.ProfileUpdate{}), domain.ErrStoreUnavailable)
	assert.ErrorIs(t, svc.EnsureUser(ctx, 1), domain.ErrStoreUnavailable)
	_, err := svc.Get(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	repo.AssertExpectations(t)
}

func TestStoreCallsAreBounded(t *testing.T) {
	repo := new(repository.MockStore)
	repo.On("EnsureUser", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), int64(1), mock.Anything).Return(nil)

	require.NoError(t, NewService(repo, time.Second).EnsureUser(context.Background(), 1))
	repo.AssertExpectations(t)
}
