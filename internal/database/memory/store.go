// Package memory is an in-process repository.Store used for development and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store keeps every collection in mutex-guarded maps.
type Store struct {
	mu         sync.RWMutex
	counters   map[int64]*domain.UserCounters
	activity   []domain.ActivityEvent
	popularity map[int64]int64
	groups     map[string]*domain.Group
	messages   []domain.Message
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		counters:   make(map[int64]*domain.UserCounters),
		popularity: make(map[int64]int64),
		groups:     make(map[string]*domain.Group),
	}
}

// Ping always succeeds unless ctx is done.
func (s *Store) Ping(ctx context.Context) error {
	return ctxErr(ctx, "ping")
}

// Close is a no-op.
func (s *Store) Close(_ context.Context) error {
	return nil
}

func ctxErr(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return domain.StoreError(op, err)
	}
	return nil
}

// Counters

func (s *Store) EnsureUser(ctx context.Context, userID int64, now time.Time) error {
	if err := ctxErr(ctx, "ensure user"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userLocked(userID, now)
	return nil
}

func (s *Store) userLocked(userID int64, now time.Time) *domain.UserCounters {
	u, ok := s.counters[userID]
	if !ok {
		u = &domain.UserCounters{UserID: userID, JoinedDate: now.UTC()}
		s.counters[userID] = u
	}
	return u
}

func (s *Store) ApplyIncrements(ctx context.Context, userID int64, deltas domain.CounterDeltas, profile domain.ProfileUpdate, now time.Time) error {
	if err := deltas.Validate(); err != nil {
		return err
	}
	if err := ctxErr(ctx, "apply increments"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userLocked(userID, now)
	for f, d := range deltas {
		u.Add(f, d)
	}
	profile.Apply(u)
	return nil
}

func (s *Store) GetCounters(ctx context.Context, userID int64) (*domain.UserCounters, error) {
	if err := ctxErr(ctx, "get counters"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.counters[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) SumCounter(ctx context.Context, field domain.CounterField) (int64, error) {
	if !field.Valid() {
		return 0, domain.ErrInvalidField
	}
	if err := ctxErr(ctx, "sum counter"); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, u := range s.counters {
		total += u.Value(field)
	}
	return total, nil
}

func (s *Store) TopByCounter(ctx context.Context, field domain.CounterField, limit int) ([]domain.UserCounters, error) {
	if !field.Valid() {
		return nil, domain.ErrInvalidField
	}
	if err := ctxErr(ctx, "top by counter"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]domain.UserCounters, 0, len(s.counters))
	for _, u := range s.counters {
		if u.Value(field) > 0 {
			out = append(out, *u)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		vi, vj := out[i].Value(field), out[j].Value(field)
		if vi != vj {
			return vi > vj
		}
		return out[i].UserID < out[j].UserID
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Activity

func (s *Store) RecordActivity(ctx context.Context, event domain.ActivityEvent) error {
	if err := ctxErr(ctx, "record activity"); err != nil {
		return err
	}
	s.mu.Lock()
	s.activity = append(s.activity, event)
	s.mu.Unlock()
	return nil
}

func (s *Store) TopActivity(ctx context.Context, userID int64, grouping domain.ActivityGrouping, limit int) ([]domain.ActivityBucket, error) {
	if err := ctxErr(ctx, "top activity"); err != nil {
		return nil, err
	}
	counts := make(map[string]int64)
	s.mu.RLock()
	for _, e := range s.activity {
		if e.UserID == userID {
			counts[grouping.KeyOf(e)]++
		}
	}
	s.mu.RUnlock()

	buckets := toBuckets(counts)
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Before(buckets[j]) })
	if limit >= 0 && len(buckets) > limit {
		buckets = buckets[:limit]
	}
	return buckets, nil
}

func (s *Store) ActivityByDay(ctx context.Context, userID int64, since time.Time) ([]domain.ActivityBucket, error) {
	if err := ctxErr(ctx, "activity by day"); err != nil {
		return nil, err
	}
	counts := make(map[string]int64)
	s.mu.RLock()
	for _, e := range s.activity {
		if e.UserID == userID && !e.CreatedAt.Before(since) {
			counts[e.MessageDate]++
		}
	}
	s.mu.RUnlock()

	buckets := toBuckets(counts)
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Key < buckets[j].Key })
	return buckets, nil
}

func (s *Store) DeleteActivityBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := ctxErr(ctx, "delete activity"); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.activity[:0]
	var removed int64
	for _, e := range s.activity {
		if e.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.activity = kept
	return removed, nil
}

func toBuckets(counts map[string]int64) []domain.ActivityBucket {
	buckets := make([]domain.ActivityBucket, 0, len(counts))
	for k, c := range counts {
		buckets = append(buckets, domain.ActivityBucket{Key: k, Count: c})
	}
	return buckets
}

// Popularity

func (s *Store) IncrementReplies(ctx context.Context, userID int64) error {
	if err := ctxErr(ctx, "increment replies"); err != nil {
		return err
	}
	s.mu.Lock()
	s.popularity[userID]++
	s.mu.Unlock()
	return nil
}

func (s *Store) PopularityRank(ctx context.Context, userID int64) (int64, error) {
	if err := ctxErr(ctx, "popularity rank"); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	mine, ok := s.popularity[userID]
	if !ok {
		return 0, nil
	}
	me := domain.PopularityRecord{UserID: userID, ReplyCount: mine}
	rank := int64(1)
	for id, c := range s.popularity {
		if (domain.PopularityRecord{UserID: id, ReplyCount: c}).RanksAhead(me) {
			rank++
		}
	}
	return rank, nil
}

func (s *Store) TopPopular(ctx context.Context, limit int) ([]domain.PopularityRecord, error) {
	if err := ctxErr(ctx, "top popular"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]domain.PopularityRecord, 0, len(s.popularity))
	for id, c := range s.popularity {
		out = append(out, domain.PopularityRecord{UserID: id, ReplyCount: c})
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].RanksAhead(out[j]) })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Groups

func (s *Store) InsertGroup(ctx context.Context, name string, userID int64, now time.Time) error {
	if err := ctxErr(ctx, "insert group"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.NormalizeGroupName(name)
	if _, ok := s.groups[key]; ok {
		return domain.ErrGroupExists
	}
	s.groups[key] = &domain.Group{
		Name:      key,
		Members:   []int64{userID},
		CreatedBy: userID,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	return nil
}

func (s *Store) AddMember(ctx context.Context, name string, userID int64, now time.Time) (bool, error) {
	if err := ctxErr(ctx, "add member"); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[domain.NormalizeGroupName(name)]
	if !ok || g.HasMember(userID) {
		return false, nil
	}
	g.Members = append(g.Members, userID)
	g.UpdatedAt = now.UTC()
	return true, nil
}

func (s *Store) RemoveMemberIfOthers(ctx context.Context, name string, userID int64, now time.Time) (bool, error) {
	if err := ctxErr(ctx, "remove member"); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[domain.NormalizeGroupName(name)]
	if !ok || !g.HasMember(userID) || len(g.Members) < 2 {
		return false, nil
	}
	members := make([]int64, 0, len(g.Members)-1)
	for _, m := range g.Members {
		if m != userID {
			members = append(members, m)
		}
	}
	g.Members = members
	g.UpdatedAt = now.UTC()
	return true, nil
}

func (s *Store) DeleteIfSoleMember(ctx context.Context, name string, userID int64) (bool, error) {
	if err := ctxErr(ctx, "delete sole member group"); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.NormalizeGroupName(name)
	g, ok := s.groups[key]
	if !ok || len(g.Members) != 1 || g.Members[0] != userID {
		return false, nil
	}
	delete(s.groups, key)
	return true, nil
}

func (s *Store) DeleteGroup(ctx context.Context, name string) (bool, error) {
	if err := ctxErr(ctx, "delete group"); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.NormalizeGroupName(name)
	if _, ok := s.groups[key]; !ok {
		return false, nil
	}
	delete(s.groups, key)
	return true, nil
}

func (s *Store) GetGroup(ctx context.Context, name string) (*domain.Group, error) {
	if err := ctxErr(ctx, "get group"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[domain.NormalizeGroupName(name)]
	if !ok {
		return nil, domain.ErrGroupNotFound
	}
	return cloneGroup(g), nil
}

func (s *Store) ListGroups(ctx context.Context) ([]domain.Group, error) {
	if err := ctxErr(ctx, "list groups"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]domain.Group, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, *cloneGroup(g))
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GroupsForUser(ctx context.Context, userID int64) ([]string, error) {
	if err := ctxErr(ctx, "groups for user"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	names := []string{}
	for name, g := range s.groups {
		if g.HasMember(userID) {
			names = append(names, name)
		}
	}
	s.mu.RUnlock()

	sort.Strings(names)
	return names, nil
}

func cloneGroup(g *domain.Group) *domain.Group {
	cp := *g
	cp.Members = append([]int64(nil), g.Members...)
	return &cp
}

// Messages

func (s *Store) StoreMessage(ctx context.Context, msg domain.Message) error {
	if err := ctxErr(ctx, "store message"); err != nil {
		return err
	}
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
	return nil
}

func (s *Store) RecentMessages(ctx context.Context, chatID int64, since time.Time, limit int) ([]domain.Message, error) {
	if err := ctxErr(ctx, "recent messages"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := []domain.Message{}
	for _, m := range s.messages {
		if m.ChatID == chatID && !m.Timestamp.Before(since) {
			out = append(out, m)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	if limit >= 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (s *Store) DeleteMessagesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := ctxErr(ctx, "delete messages"); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.messages[:0]
	var removed int64
	for _, m := range s.messages {
		if m.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	s.messages = kept
	return removed, nil
}
