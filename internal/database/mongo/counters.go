package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/osse101/ChatterBot_Go/internal/domain"
)

// EnsureUser upserts a zeroed record, leaving an existing one untouched
func (s *Store) EnsureUser(ctx context.Context, userID int64, now time.Time) error {
	update := bson.M{"$setOnInsert": insertDefaults(userID, now, nil)}
	err := s.upsertUser(ctx, userID, update)
	return domain.StoreError(OpEnsureUser, err)
}

// ApplyIncrements performs $inc, $set and $setOnInsert in one upsert.
// Fields incremented here are excluded from $setOnInsert since the two operators may not share a path.
func (s *Store) ApplyIncrements(ctx context.Context, userID int64, deltas domain.CounterDeltas, profile domain.ProfileUpdate, now time.Time) error {
	if err := deltas.Validate(); err != nil {
		return err
	}

	inc := bson.M{}
	for f, d := range deltas {
		inc[string(f)] = d
	}

	update := bson.M{"$setOnInsert": insertDefaults(userID, now, deltas)}
	if len(inc) > 0 {
		update["$inc"] = inc
	}
	if set := profileSet(profile); len(set) > 0 {
		update["$set"] = set
	}

	return domain.StoreError(OpApplyIncrements, s.upsertUser(ctx, userID, update))
}

// upsertUser runs an upsert and retries once when a concurrent upsert won the insert race.
func (s *Store) upsertUser(ctx context.Context, userID int64, update bson.M) error {
	filter := bson.M{"user_id": userID}
	opts := options.Update().SetUpsert(true)

	_, err := s.userStats.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		_, err = s.userStats.UpdateOne(ctx, filter, update, opts)
	}
	return err
}

func insertDefaults(userID int64, now time.Time, skip domain.CounterDeltas) bson.M {
	doc := bson.M{"user_id": userID, "joined_date": now.UTC()}
	for _, f := range domain.CounterFields {
		if _, ok := skip[f]; ok {
			continue
		}
		doc[string(f)] = int64(0)
	}
	return doc
}

func profileSet(p domain.ProfileUpdate) bson.M {
	set := bson.M{}
	if p.Username != nil {
		set["username"] = *p.Username
	}
	if p.FirstName != nil {
		set["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		set["last_name"] = *p.LastName
	}
	if p.LastActive != nil {
		set["last_active"] = p.LastActive.UTC()
	}
	return set
}

// GetCounters loads one user's counters
func (s *Store) GetCounters(ctx context.Context, userID int64) (*domain.UserCounters, error) {
	var u domain.UserCounters
	err := s.userStats.FindOne(ctx, bson.M{"user_id": userID}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, domain.StoreError(OpGetCounters, err)
	}
	return &u, nil
}

// SumCounter sums one counter across all users with a $group stage
func (s *Store) SumCounter(ctx context.Context, field domain.CounterField) (int64, error) {
	if !field.Valid() {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidField, string(field))
	}
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$" + string(field)}}}},
	}
	cursor, err := s.userStats.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, domain.StoreError(OpSumCounter, err)
	}
	var results []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, domain.StoreError(OpSumCounter, err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// TopByCounter returns users with a positive counter, highest first
func (s *Store) TopByCounter(ctx context.Context, field domain.CounterField, limit int) ([]domain.UserCounters, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidField, string(field))
	}
	opts := options.Find().
		SetSort(bson.D{{Key: string(field), Value: -1}, {Key: "user_id", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := s.userStats.Find(ctx, bson.M{string(field): bson.M{"$gt": 0}}, opts)
	if err != nil {
		return nil, domain.StoreError(OpTopByCounter, err)
	}
	out := []domain.UserCounters{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, domain.StoreError(OpTopByCounter, err)
	}
	return out, nil
}
