package stats

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ChatterBot_Go/internal/activity"
	"github.com/osse101/ChatterBot_Go/internal/database/memory"
	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/popularity"
	"github.com/osse101/ChatterBot_Go/internal/repository"
)

type fixture struct {
	store    *memory.Store
	activity activity.Service
	svc      Service
}

func newFixture() *fixture {
	store := memory.NewStore()
	act := activity.NewService(store, time.Second)
	pop := popularity.NewService(store, time.Second)
	return &fixture{
		store:    store,
		activity: act,
		svc:      NewService(store, act, pop, time.Second),
	}
}

func strPtr(s string) *string { return &s }

func (f *fixture) messages(t *testing.T, userID, n int64, profile domain.ProfileUpdate) {
	t.Helper()
	err := f.store.ApplyIncrements(context.Background(), userID,
		domain.CounterDeltas{domain.FieldTextMessages: n, domain.FieldTotalChars: n * 10}, profile, time.Now())
	require.NoError(t, err)
}

func TestUserReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.messages(t, 1, 30, domain.ProfileUpdate{Username: strPtr("alice")})
	f.messages(t, 2, 10, domain.ProfileUpdate{})
	require.NoError(t, f.store.ApplyIncrements(ctx, 1, domain.CounterDeltas{domain.FieldStickers: 2, domain.FieldVoices: 1}, domain.ProfileUpdate{}, time.Now()))

	for _, ts := range []string{"2024-04-01T10:00:00Z", "2024-04-01T11:00:00Z", "2024-04-02T10:00:00Z"} {
		at, _ := time.Parse(time.RFC3339, ts)
		f.activity.RecordEvent(ctx, 1, at)
	}
	require.NoError(t, f.store.IncrementReplies(ctx, 2))
	require.NoError(t, f.store.IncrementReplies(ctx, 2))
	require.NoError(t, f.store.IncrementReplies(ctx, 1))

	r, err := f.svc.UserReport(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, "@alice", r.DisplayName)
	assert.Equal(t, int64(30), r.TextMessages)
	assert.Equal(t, int64(300), r.TotalChars)
	assert.Equal(t, int64(2), r.Stickers)
	assert.Equal(t, int64(1), r.Voices)
	assert.InDelta(t, 75.0, r.PercentageOfTotal, 1e-9)
	assert.Equal(t, "2024-04-01", r.HighestPostingDate)
	assert.Equal(t, int64(2), r.HighestPostingDateCount)
	assert.Equal(t, "2024-W14", r.HighestPostingWeek)
	assert.Equal(t, int64(3), r.HighestPostingWeekCount)
	assert.Equal(t, "Monday", r.FavoriteDay)
	assert.Equal(t, int64(2), r.PopularityPosition)
}

func TestUserReport_NotFound(t *testing.T) {
	_, err := newFixture().svc.UserReport(context.Background(), 12345)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserReport_ZeroTotalIsZeroPercent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	require.NoError(t, f.store.EnsureUser(ctx, 5, time.Now()))

	r, err := f.svc.UserReport(ctx, 5)
	require.NoError(t, err)
	assert.Zero(t, r.PercentageOfTotal)
	assert.Empty(t, r.HighestPostingDate)
	assert.Empty(t, r.FavoriteDay)
	assert.Zero(t, r.PopularityPosition)
	assert.Equal(t, "User 5", r.DisplayName)
}

func TestUserReport_ComponentFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(repository.MockStore)
	repo.On("GetCounters", mock.Anything, int64(1)).Return(&domain.UserCounters{UserID: 1, TextMessages: 3}, nil)
	repo.On("SumCounter", mock.Anything, domain.FieldTextMessages).Return(int64(0), domain.StoreError("sum", errors.New("timeout")))
	repo.On("TopActivity", mock.Anything, int64(1), mock.Anything, 1).Return([]domain.ActivityBucket{}, nil).Maybe()
	repo.On("PopularityRank", mock.Anything, int64(1)).Return(int64(0), nil).Maybe()

	svc := NewService(repo, activity.NewService(repo, time.Second), popularity.NewService(repo, time.Second), time.Second)

	_, err := svc.UserReport(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestLeaderboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.messages(t, 1, 5, domain.ProfileUpdate{FirstName: strPtr("Ann"), LastName: strPtr("Lee")})
	f.messages(t, 2, 50, domain.ProfileUpdate{Username: strPtr("bob")})
	f.messages(t, 3, 5, domain.ProfileUpdate{FirstName: strPtr("Cy")})
	f.messages(t, 4, 1, domain.ProfileUpdate{})
	require.NoError(t, f.store.EnsureUser(ctx, 6, time.Now()))
	require.NoError(t, f.store.ApplyIncrements(ctx, 7, domain.CounterDeltas{domain.FieldStickers: 9}, domain.ProfileUpdate{}, time.Now()))

	got, err := f.svc.Leaderboard(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []domain.LeaderboardEntry{
		{UserID: 2, DisplayName: "@bob", TextMessages: 50},
		{UserID: 1, DisplayName: "Ann Lee", TextMessages: 5},
		{UserID: 3, DisplayName: "Cy", TextMessages: 5},
		{UserID: 4, DisplayName: "User 4", TextMessages: 1},
	}, got)

	top2, err := f.svc.Leaderboard(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, top2, 2)
}

func TestLeaderboard_Properties(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	for i := int64(1); i <= 25; i++ {
		f.messages(t, i, i%7, domain.ProfileUpdate{})
	}

	for _, k := range []int{1, 5, 10, 30} {
		t.Run(fmt.Sprintf("limit %d", k), func(t *testing.T) {
			got, err := f.svc.Leaderboard(ctx, k)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(got), k)
			for i, e := range got {
				assert.Positive(t, e.TextMessages)
				if i > 0 {
					assert.GreaterOrEqual(t, got[i-1].TextMessages, e.TextMessages)
				}
			}
		})
	}

	def, err := f.svc.Leaderboard(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, def, DefaultLeaderboardLimit)
}

func TestLeaderboard_Empty(t *testing.T) {
	got, err := newFixture().svc.Leaderboard(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
