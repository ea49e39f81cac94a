package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/osse101/ChatterBot_Go/internal/domain"
)

// IncrementReplies credits one reply to a user
func (s *Store) IncrementReplies(ctx context.Context, userID int64) error {
	filter := bson.M{"user_id": userID}
	update := bson.M{"$inc": bson.M{"reply_count": int64(1)}}
	opts := options.Update().SetUpsert(true)

	_, err := s.popularity.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		_, err = s.popularity.UpdateOne(ctx, filter, update, opts)
	}
	return domain.StoreError(OpIncrementReplies, err)
}

// PopularityRank counts the records ranked strictly ahead of the user
func (s *Store) PopularityRank(ctx context.Context, userID int64) (int64, error) {
	var me domain.PopularityRecord
	err := s.popularity.FindOne(ctx, bson.M{"user_id": userID}).Decode(&me)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, domain.StoreError(OpPopularityRank, err)
	}

	ahead, err := s.popularity.CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{"reply_count": bson.M{"$gt": me.ReplyCount}},
		bson.M{"reply_count": me.ReplyCount, "user_id": bson.M{"$lt": userID}},
	}})
	if err != nil {
		return 0, domain.StoreError(OpPopularityRank, err)
	}
	return ahead + 1, nil
}

// TopPopular returns the most replied-to users
func (s *Store) TopPopular(ctx context.Context, limit int) ([]domain.PopularityRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "reply_count", Value: -1}, {Key: "user_id", Value: 1}}).
		SetLimit(int64(limit))
	cursor, err := s.popularity.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, domain.StoreError(OpTopPopular, err)
	}
	out := []domain.PopularityRecord{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, domain.StoreError(OpTopPopular, err)
	}
	return out, nil
}
