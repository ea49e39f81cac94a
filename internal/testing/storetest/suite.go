// Package storetest holds the behavioral suite every repository.Store backend must pass.
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/repository"
)

// Factory returns an empty store. Each call must be isolated from the others.
type Factory func(t *testing.T) repository.Store

var baseTime = time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

// Run executes the full suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("Counters", func(t *testing.T) { testCounters(t, newStore) })
	t.Run("ConcurrentIncrements", func(t *testing.T) { testConcurrentIncrements(t, newStore) })
	t.Run("ConcurrentEnsureUser", func(t *testing.T) { testConcurrentEnsureUser(t, newStore) })
	t.Run("TopByCounter", func(t *testing.T) { testTopByCounter(t, newStore) })
	t.Run("Activity", func(t *testing.T) { testActivity(t, newStore) })
	t.Run("Popularity", func(t *testing.T) { testPopularity(t, newStore) })
	t.Run("Groups", func(t *testing.T) { testGroups(t, newStore) })
	t.Run("ConcurrentJoins", func(t *testing.T) { testConcurrentAddMember(t, newStore) })
	t.Run("Messages", func(t *testing.T) { testMessages(t, newStore) })
}

func testCounters(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	_, err := s.GetCounters(ctx, 1)
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, s.EnsureUser(ctx, 1, baseTime))
	u, err := s.GetCounters(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, u.TextMessages)
	assert.True(t, baseTime.Equal(u.JoinedDate))

	name, first := "alice", "Alice"
	seen := baseTime.Add(time.Hour)
	err = s.ApplyIncrements(ctx, 1,
		domain.CounterDeltas{domain.FieldTextMessages: 1, domain.FieldTotalChars: 5},
		domain.ProfileUpdate{Username: &name, FirstName: &first, LastActive: &seen},
		baseTime.Add(time.Hour))
	require.NoError(t, err)

	// ensure_user never overwrites existing counters
	require.NoError(t, s.EnsureUser(ctx, 1, baseTime.Add(2*time.Hour)))

	u, err = s.GetCounters(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.TextMessages)
	assert.Equal(t, int64(5), u.TotalChars)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "Alice", u.FirstName)
	assert.True(t, baseTime.Equal(u.JoinedDate), "joined date is set once")
	require.NotNil(t, u.LastActive)
	assert.True(t, seen.Equal(*u.LastActive))

	// first write creates the record with defaults
	require.NoError(t, s.ApplyIncrements(ctx, 2, domain.CounterDeltas{domain.FieldStickers: 1}, domain.ProfileUpdate{}, baseTime))
	u, err = s.GetCounters(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.Stickers)
	assert.Zero(t, u.TextMessages)

	err = s.ApplyIncrements(ctx, 2, domain.CounterDeltas{"karma": 1}, domain.ProfileUpdate{}, baseTime)
	assert.ErrorIs(t, err, domain.ErrInvalidField)
}

func testConcurrentIncrements(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	const workers = 50
	var wg sync.WaitGroup
	var want int64
	for i := 1; i <= workers; i++ {
		want += int64(i)
		wg.Add(1)
		go func(delta int64) {
			defer wg.Done()
			err := s.ApplyIncrements(ctx, 42,
				domain.CounterDeltas{domain.FieldTextMessages: 1, domain.FieldTotalChars: delta},
				domain.ProfileUpdate{}, baseTime)
			assert.NoError(t, err)
		}(int64(i))
	}
	wg.Wait()

	u, err := s.GetCounters(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(workers), u.TextMessages)
	assert.Equal(t, want, u.TotalChars)
}

func testConcurrentEnsureUser(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.EnsureUser(ctx, 7, baseTime))
		}()
	}
	wg.Wait()

	u, err := s.GetCounters(ctx, 7)
	require.NoError(t, err)
	assert.Zero(t, u.TextMessages)

	top, err := s.TopByCounter(ctx, domain.FieldTextMessages, 10)
	require.NoError(t, err)
	assert.Empty(t, top, "zeroed users never appear in rankings")

	total, err := s.SumCounter(ctx, domain.FieldTextMessages)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func testTopByCounter(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	seed := map[int64]int64{1: 5, 2: 9, 3: 5, 4: 1, 5: 0}
	for id, n := range seed {
		if n == 0 {
			require.NoError(t, s.EnsureUser(ctx, id, baseTime))
			continue
		}
		require.NoError(t, s.ApplyIncrements(ctx, id, domain.CounterDeltas{domain.FieldTextMessages: n}, domain.ProfileUpdate{}, baseTime))
	}

	top, err := s.TopByCounter(ctx, domain.FieldTextMessages, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []int64{2, 1, 3}, []int64{top[0].UserID, top[1].UserID, top[2].UserID})

	all, err := s.TopByCounter(ctx, domain.FieldTextMessages, 10)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	total, err := s.SumCounter(ctx, domain.FieldTextMessages)
	require.NoError(t, err)
	assert.Equal(t, int64(20), total)
}

func testActivity(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	// round trip: one event is immediately the peak day with count 1
	e := domain.NewActivityEvent(1, baseTime)
	require.NoError(t, s.RecordActivity(ctx, e))
	top, err := s.TopActivity(ctx, 1, domain.GroupByDate, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, domain.ActivityBucket{Key: "2024-03-04", Count: 1}, top[0])

	// 2024-03-05 gets 2 events, 2024-03-03 gets 2 events: tie resolves to the earlier date
	for _, at := range []time.Time{
		baseTime.Add(24 * time.Hour), baseTime.Add(25 * time.Hour),
		baseTime.Add(-24 * time.Hour), baseTime.Add(-23 * time.Hour),
	} {
		require.NoError(t, s.RecordActivity(ctx, domain.NewActivityEvent(1, at)))
	}
	require.NoError(t, s.RecordActivity(ctx, domain.NewActivityEvent(2, baseTime)))

	top, err = s.TopActivity(ctx, 1, domain.GroupByDate, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "2024-03-03", top[0].Key)
	assert.Equal(t, int64(2), top[0].Count)

	weeks, err := s.TopActivity(ctx, 1, domain.GroupByWeek, 5)
	require.NoError(t, err)
	require.Len(t, weeks, 2)
	assert.Equal(t, domain.ActivityBucket{Key: "2024-W10", Count: 3}, weeks[0])
	assert.Equal(t, domain.ActivityBucket{Key: "2024-W09", Count: 2}, weeks[1])

	days, err := s.TopActivity(ctx, 1, domain.GroupByDayOfWeek, 1)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "Sunday", days[0].Key, "Sunday and Tuesday tie; alphabetical wins")

	daily, err := s.ActivityByDay(ctx, 1, baseTime.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []domain.ActivityBucket{
		{Key: "2024-03-04", Count: 1},
		{Key: "2024-03-05", Count: 2},
	}, daily)

	none, err := s.TopActivity(ctx, 99, domain.GroupByDate, 1)
	require.NoError(t, err)
	assert.Empty(t, none)

	removed, err := s.DeleteActivityBefore(ctx, baseTime)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	top, err = s.TopActivity(ctx, 1, domain.GroupByDate, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "2024-03-05", top[0].Key)
}

func testPopularity(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.IncrementReplies(ctx, 7))
	}
	require.NoError(t, s.IncrementReplies(ctx, 8))

	rank, err := s.PopularityRank(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rank)

	rank, err = s.PopularityRank(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rank)

	rank, err = s.PopularityRank(ctx, 9)
	require.NoError(t, err)
	assert.Zero(t, rank)

	// ties rank the lower user id first
	require.NoError(t, s.IncrementReplies(ctx, 3))
	rank, err = s.PopularityRank(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rank)
	rank, err = s.PopularityRank(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(3), rank)

	top, err := s.TopPopular(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []domain.PopularityRecord{{UserID: 7, ReplyCount: 3}, {UserID: 3, ReplyCount: 1}}, top)
}

func testGroups(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	_, err := s.GetGroup(ctx, "gamers")
	require.ErrorIs(t, err, domain.ErrGroupNotFound)

	ok, err := s.AddMember(ctx, "gamers", 100, baseTime)
	require.NoError(t, err)
	assert.False(t, ok, "add to an absent group matches nothing")

	require.NoError(t, s.InsertGroup(ctx, "gamers", 100, baseTime))
	assert.ErrorIs(t, s.InsertGroup(ctx, "gamers", 200, baseTime), domain.ErrGroupExists)

	ok, err = s.AddMember(ctx, "gamers", 100, baseTime)
	require.NoError(t, err)
	assert.False(t, ok, "existing member is not added twice")

	ok, err = s.AddMember(ctx, "gamers", 200, baseTime.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, ok)

	g, err := s.GetGroup(ctx, "gamers")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{100, 200}, g.Members)
	assert.Equal(t, int64(100), g.CreatedBy)

	ok, err = s.DeleteIfSoleMember(ctx, "gamers", 100)
	require.NoError(t, err)
	assert.False(t, ok, "not the sole member")

	ok, err = s.RemoveMemberIfOthers(ctx, "gamers", 300, baseTime)
	require.NoError(t, err)
	assert.False(t, ok, "non-member")

	require.NoError(t, s.InsertGroup(ctx, "chess", 200, baseTime))

	names, err := s.GroupsForUser(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, []string{"chess", "gamers"}, names)

	ok, err = s.RemoveMemberIfOthers(ctx, "gamers", 100, baseTime)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.RemoveMemberIfOthers(ctx, "gamers", 200, baseTime)
	require.NoError(t, err)
	assert.False(t, ok, "last member cannot be removed without deleting")

	ok, err = s.DeleteIfSoleMember(ctx, "gamers", 200)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.GetGroup(ctx, "gamers")
	assert.ErrorIs(t, err, domain.ErrGroupNotFound)

	list, err := s.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "chess", list[0].Name)

	ok, err = s.DeleteGroup(ctx, "chess")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.DeleteGroup(ctx, "chess")
	require.NoError(t, err)
	assert.False(t, ok)

	names, err = s.GroupsForUser(ctx, 200)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func testConcurrentAddMember(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)
	require.NoError(t, s.InsertGroup(ctx, "raid", 1, baseTime))

	var wg sync.WaitGroup
	for id := int64(2); id <= 21; id++ {
		for dup := 0; dup < 2; dup++ {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				_, err := s.AddMember(ctx, "raid", id, baseTime)
				assert.NoError(t, err)
			}(id)
		}
	}
	wg.Wait()

	g, err := s.GetGroup(ctx, "raid")
	require.NoError(t, err)
	assert.Len(t, g.Members, 21, "every user added exactly once")
}

func testMessages(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.StoreMessage(ctx, domain.Message{
			MessageID: int64(i + 1),
			ChatID:    10,
			UserID:    1,
			Text:      "hello",
			Timestamp: baseTime.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, s.StoreMessage(ctx, domain.Message{MessageID: 99, ChatID: 11, UserID: 1, Text: "other", Timestamp: baseTime}))

	recent, err := s.RecentMessages(ctx, 10, baseTime.Add(time.Hour), 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, []int64{3, 4, 5}, []int64{recent[0].MessageID, recent[1].MessageID, recent[2].MessageID},
		"newest messages within the window, oldest first")

	removed, err := s.DeleteMessagesBefore(ctx, baseTime.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	recent, err = s.RecentMessages(ctx, 10, baseTime.Add(-time.Hour), 100)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
}
