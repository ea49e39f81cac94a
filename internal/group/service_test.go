package group

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
	"github.com/osse101/ChatterBot_Go/internal/event"
	"github.com/osse101/ChatterBot_Go/internal/repository"
)

func newMemoryService() Service {
	return NewService(memory.NewStore(), nil, time.Second)
}

func TestValidateName(t *testing.T) {
	svc := newMemoryService()

	assert.ErrorIs(t, svc.ValidateName("ab"), domain.ErrInvalidName)
	assert.ErrorIs(t, svc.ValidateName("this_name_is_way_too_long_to_be_valid_12"), domain.ErrInvalidName)
	assert.ErrorIs(t, svc.ValidateName("bad-name"), domain.ErrInvalidName)
	assert.NoError(t, svc.ValidateName("valid_Name1"))
}

func TestJoinLeaveScenario(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService()

	res, err := svc.Join(ctx, "gamers", 100)
	require.NoError(t, err)
	assert.Equal(t, domain.GroupResult{Success: true, Outcome: domain.OutcomeCreated, Group: "gamers", Message: "created and joined"}, res)
	members, err := svc.MembersOf(ctx, "gamers")
	require.NoError(t, err)
	assert.Equal(t, []int64{100}, members)

	res, err = svc.Join(ctx, "gamers", 100)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "already a member", res.Message)

	res, err = svc.Join(ctx, "gamers", 200)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "joined", res.Message)
	members, _ = svc.MembersOf(ctx, "gamers")
	assert.ElementsMatch(t, []int64{100, 200}, members)

	res, err = svc.Leave(ctx, "gamers", 100)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "left", res.Message)
	members, _ = svc.MembersOf(ctx, "gamers")
	assert.Equal(t, []int64{200}, members)

	res, err = svc.Leave(ctx, "gamers", 200)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "left; group deleted", res.Message)

	_, err = svc.MembersOf(ctx, "gamers")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJoin_InvalidName(t *testing.T) {
	res, err := newMemoryService().Join(context.Background(), "ab", 1)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, domain.OutcomeInvalidName, res.Outcome)
	assert.Contains(t, res.Message, domain.ErrMsgInvalidName)
}

func TestNamesAreCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService()

	res, err := svc.Join(ctx, "Gamers", 1)
	require.NoError(t, err)
	assert.Equal(t, "gamers", res.Group)

	res, err = svc.Join(ctx, "GAMERS", 2)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeJoined, res.Outcome)

	groups, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "gamers", groups[0].Name)

	info, err := svc.Info(ctx, "gAmErS")
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.CreatedBy)
}

func TestLeave_Failures(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService()

	res, err := svc.Leave(ctx, "nobody_here", 1)
	require.NoError(t, err)
	assert.Equal(t, domain.GroupResult{Success: false, Outcome: domain.OutcomeNotFound, Group: "nobody_here", Message: "does not exist"}, res)

	_, err = svc.Join(ctx, "club", 1)
	require.NoError(t, err)

	res, err = svc.Leave(ctx, "club", 2)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNotMember, res.Outcome)
	assert.Equal(t, "not a member", res.Message)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService()

	for _, id := range []int64{1, 2, 3} {
		_, err := svc.Join(ctx, "crew", id)
		require.NoError(t, err)
	}

	res, err := svc.Delete(ctx, "CREW")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, domain.OutcomeDeleted, res.Outcome)

	res, err = svc.Delete(ctx, "crew")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "does not exist", res.Message)

	groups, err := svc.GroupsOf(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestGroupsOf(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService()

	_, _ = svc.Join(ctx, "zeta", 1)
	_, _ = svc.Join(ctx, "alpha", 1)
	_, _ = svc.Join(ctx, "alpha", 2)

	groups, err := svc.GroupsOf(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, groups)
}

func TestConcurrentJoinsOnNewGroup(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService()

	const n = 25
	results := make([]domain.GroupResult, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.Join(ctx, "race", int64(i+1))
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	created := 0
	for _, r := range results {
		assert.True(t, r.Success)
		if r.Outcome == domain.OutcomeCreated {
			created++
		}
	}
	assert.Equal(t, 1, created, "exactly one join creates the group")

	members, err := svc.MembersOf(ctx, "race")
	require.NoError(t, err)
	assert.Len(t, members, n)
}

func TestConcurrentLeavesDeleteOnce(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService()

	const n = 10
	for i := 1; i <= n; i++ {
		_, err := svc.Join(ctx, "party", int64(i))
		require.NoError(t, err)
	}

	var mu sync.Mutex
	outcomes := map[domain.GroupOutcome]int{}
	var wg sync.WaitGroup
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			res, err := svc.Leave(ctx, "party", id)
			assert.NoError(t, err)
			mu.Lock()
			outcomes[res.Outcome]++
			mu.Unlock()
		}(int64(i))
	}
	wg.Wait()

	assert.Equal(t, n-1, outcomes[domain.OutcomeLeft])
	assert.Equal(t, 1, outcomes[domain.OutcomeLeftDeleted])
	_, err := svc.Info(ctx, "party")
	assert.ErrorIs(t, err, domain.ErrGroupNotFound)
}

func TestJoin_RetriesAfterLostCreateRace(t *testing.T) {
	ctx := context.Background()
	repo := new(repository.MockStore)

	repo.On("AddMember", mock.Anything, "race", int64(2), mock.Anything).Return(false, nil).Once()
	repo.On("GetGroup", mock.Anything, "race").Return(nil, domain.ErrGroupNotFound).Once()
	repo.On("InsertGroup", mock.Anything, "race", int64(2), mock.Anything).Return(domain.ErrGroupExists).Once()
	repo.On("AddMember", mock.Anything, "race", int64(2), mock.Anything).Return(true, nil).Once()

	res, err := NewService(repo, nil, time.Second).Join(ctx, "race", 2)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeJoined, res.Outcome)
	repo.AssertExpectations(t)
}

func TestJoin_RetryBudgetExhausted(t *testing.T) {
	repo := new(repository.MockStore)
	repo.On("AddMember", mock.Anything, "busy", int64(9), mock.Anything).Return(false, nil)
	repo.On("GetGroup", mock.Anything, "busy").Return(&domain.Group{Name: "busy", Members: []int64{1}}, nil)

	_, err := NewService(repo, nil, time.Second).Join(context.Background(), "busy", 9)
	assert.ErrorIs(t, err, ErrConflict)
	repo.AssertNumberOfCalls(t, "AddMember", MaxGroupRetries)
}

func TestLeave_RetriesWhenMembershipShifts(t *testing.T) {
	repo := new(repository.MockStore)
	repo.On("DeleteIfSoleMember", mock.Anything, "duo", int64(1)).Return(false, nil).Once()
	repo.On("RemoveMemberIfOthers", mock.Anything, "duo", int64(1), mock.Anything).Return(false, nil).Once()
	// The other member left between the two statements, leaving userID alone.
	repo.On("GetGroup", mock.Anything, "duo").Return(&domain.Group{Name: "duo", Members: []int64{1}}, nil).Once()
	repo.On("DeleteIfSoleMember", mock.Anything, "duo", int64(1)).Return(true, nil).Once()

	res, err := NewService(repo, nil, time.Second).Leave(context.Background(), "duo", 1)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeLeftDeleted, res.Outcome)
	repo.AssertExpectations(t)
}

func TestStoreUnavailableIsReturned(t *testing.T) {
	ctx := context.Background()
	down := domain.StoreError("groups", errors.New("connection reset"))
	repo := new(repository.MockStore)
	repo.On("AddMember", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, down)
	repo.On("DeleteIfSoleMember", mock.Anything, mock.Anything, mock.Anything).Return(false, down)
	repo.On("DeleteGroup", mock.Anything, mock.Anything).Return(false, down)
	repo.On("GetGroup", mock.Anything, mock.Anything).Return(nil, down)
	repo.On("ListGroups", mock.Anything).Return(nil, down)

	svc := NewService(repo, nil, time.Second)

	_, err := svc.Join(ctx, "gamers", 1)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	_, err = svc.Leave(ctx, "gamers", 1)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	_, err = svc.Delete(ctx, "gamers")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	_, err = svc.MembersOf(ctx, "gamers")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	_, err = svc.List(ctx)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestOutcomesArePublished(t *testing.T) {
	ctx := context.Background()
	bus := event.NewMemoryBus()
	var got []event.GroupChangedPayloadV1
	bus.Subscribe(event.GroupChanged, func(_ context.Context, e event.Event) error {
		got = append(got, e.Payload.(event.GroupChangedPayloadV1))
		return nil
	})

	svc := NewService(memory.NewStore(), bus, time.Second)
	_, _ = svc.Join(ctx, "news", 4)
	_, _ = svc.Join(ctx, "news", 4)
	_, _ = svc.Delete(ctx, "news")

	require.Len(t, got, 3)
	assert.Equal(t, domain.OutcomeCreated, got[0].Outcome)
	assert.Equal(t, int64(4), got[0].UserID)
	assert.Equal(t, domain.OutcomeAlreadyMember, got[1].Outcome)
	assert.False(t, got[1].Success)
	assert.Equal(t, domain.OutcomeDeleted, got[2].Outcome)
}
