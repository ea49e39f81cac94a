package mongo

import (
	"context"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/osse101/ChatterBot_Go/internal/domain"
)

// StoreMessage archives one chat message
func (s *Store) StoreMessage(ctx context.Context, msg domain.Message) error {
	msg.Timestamp = msg.Timestamp.UTC()
	_, err := s.messages.InsertOne(ctx, msg)
	return domain.StoreError(OpStoreMessage, err)
}

// RecentMessages returns the newest messages of a chat in chronological order
func (s *Store) RecentMessages(ctx context.Context, chatID int64, since time.Time, limit int) ([]domain.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := s.messages.Find(ctx, bson.M{"chat_id": chatID, "timestamp": bson.M{"$gte": since.UTC()}}, opts)
	if err != nil {
		return nil, domain.StoreError(OpRecentMessages, err)
	}
	out := []domain.Message{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, domain.StoreError(OpRecentMessages, err)
	}
	slices.Reverse(out)
	return out, nil
}

// DeleteMessagesBefore removes messages older than the cutoff
func (s *Store) DeleteMessagesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.messages.DeleteMany(ctx, bson.M{"timestamp": bson.M{"$lt": cutoff.UTC()}})
	if err != nil {
		return 0, domain.StoreError(OpDeleteMessages, err)
	}
	return res.DeletedCount, nil
}
