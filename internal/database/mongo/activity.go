package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/osse101/ChatterBot_Go/internal/domain"
)

// RecordActivity appends one activity event
func (s *Store) RecordActivity(ctx context.Context, event domain.ActivityEvent) error {
	_, err := s.activity.InsertOne(ctx, event)
	return domain.StoreError(OpRecordActivity, err)
}

// TopActivity runs $match, $group, $sort, $limit over a user's events
func (s *Store) TopActivity(ctx context.Context, userID int64, grouping domain.ActivityGrouping, limit int) ([]domain.ActivityBucket, error) {
	if !grouping.Valid() {
		return nil, fmt.Errorf("%w: unknown grouping %q", domain.ErrInvalidInput, string(grouping))
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{"_id": "$" + string(grouping), "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	}
	return s.aggregateBuckets(ctx, OpTopActivity, pipeline)
}

// ActivityByDay returns per-date counts since a point in time
func (s *Store) ActivityByDay(ctx context.Context, userID int64, since time.Time) ([]domain.ActivityBucket, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID, "created_at": bson.M{"$gte": since.UTC()}}}},
		{{Key: "$group", Value: bson.M{"_id": "$message_date", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	return s.aggregateBuckets(ctx, OpActivityByDay, pipeline)
}

func (s *Store) aggregateBuckets(ctx context.Context, op string, pipeline mongo.Pipeline) ([]domain.ActivityBucket, error) {
	cursor, err := s.activity.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, domain.StoreError(op, err)
	}
	out := []domain.ActivityBucket{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, domain.StoreError(op, err)
	}
	return out, nil
}

// DeleteActivityBefore prunes old activity events
func (s *Store) DeleteActivityBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.activity.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff.UTC()}})
	if err != nil {
		return 0, domain.StoreError(OpDeleteActivity, err)
	}
	return res.DeletedCount, nil
}
