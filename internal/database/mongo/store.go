// Package mongo implements repository.Store on MongoDB.
package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// groupNameCollation compares group names case-insensitively.
var groupNameCollation = &options.Collation{Locale: "en", Strength: 2}

// Store is the MongoDB backend.
type Store struct {
	client     *mongo.Client
	db         *mongo.Database
	userStats  *mongo.Collection
	activity   *mongo.Collection
	popularity *mongo.Collection
	groups     *mongo.Collection
	messages   *mongo.Collection
}

// Connect opens a client, verifies connectivity and ensures indexes.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(uri).
		SetMonitor(newCommandMonitor()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	s := NewStore(client, database)
	if err := s.EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	slog.Default().Info(LogMsgConnected, "db", database)
	return s, nil
}

// NewStore binds the collections of an already connected client.
func NewStore(client *mongo.Client, database string) *Store {
	db := client.Database(database)
	return &Store{
		client:     client,
		db:         db,
		userStats:  db.Collection(CollectionUserStats),
		activity:   db.Collection(CollectionActivity),
		popularity: db.Collection(CollectionPopularity),
		groups:     db.Collection(CollectionGroups),
		messages:   db.Collection(CollectionMessages),
	}
}

// EnsureIndexes creates the unique and query indexes. Safe to call repeatedly.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	specs := []struct {
		coll   *mongo.Collection
		models []mongo.IndexModel
	}{
		{s.userStats, []mongo.IndexModel{
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "text_messages", Value: -1}, {Key: "user_id", Value: 1}}},
		}},
		{s.activity, []mongo.IndexModel{
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "message_date", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: 1}}},
		}},
		{s.popularity, []mongo.IndexModel{
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "reply_count", Value: -1}, {Key: "user_id", Value: 1}}},
		}},
		{s.groups, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "group_name", Value: 1}},
				Options: options.Index().SetUnique(true).SetCollation(groupNameCollation),
			},
			{Keys: bson.D{{Key: "members", Value: 1}}},
		}},
		{s.messages, []mongo.IndexModel{
			{Keys: bson.D{{Key: "chat_id", Value: 1}, {Key: "timestamp", Value: -1}}},
			{Keys: bson.D{{Key: "timestamp", Value: 1}}},
		}},
	}

	for _, spec := range specs {
		if _, err := spec.coll.Indexes().CreateMany(ctx, spec.models); err != nil {
			return domain.StoreError(fmt.Sprintf(OpCreateIndexes, spec.coll.Name()), err)
		}
	}
	return nil
}

// Ping checks connectivity
func (s *Store) Ping(ctx context.Context) error {
	return domain.StoreError(OpPing, s.client.Ping(ctx, nil))
}

// Close disconnects the client
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Drop removes the whole database. Used by tests.
func (s *Store) Drop(ctx context.Context) error {
	return s.db.Drop(ctx)
}
