package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/osse101/ChatterBot_Go/internal/domain"
)

// InsertGroup creates a group whose only member is its creator
func (s *Store) InsertGroup(ctx context.Context, name string, userID int64, now time.Time) error {
	now = now.UTC()
	_, err := s.groups.InsertOne(ctx, domain.Group{
		Name:      domain.NormalizeGroupName(name),
		Members:   []int64{userID},
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrGroupExists
	}
	return domain.StoreError(OpInsertGroup, err)
}

// AddMember pushes a user when not already present
func (s *Store) AddMember(ctx context.Context, name string, userID int64, now time.Time) (bool, error) {
	res, err := s.groups.UpdateOne(ctx,
		bson.M{"group_name": domain.NormalizeGroupName(name), "members": bson.M{"$ne": userID}},
		bson.M{"$push": bson.M{"members": userID}, "$set": bson.M{"updated_at": now.UTC()}},
	)
	if err != nil {
		return false, domain.StoreError(OpAddMember, err)
	}
	return res.MatchedCount == 1, nil
}

// RemoveMemberIfOthers pulls a member that is not the last one
func (s *Store) RemoveMemberIfOthers(ctx context.Context, name string, userID int64, now time.Time) (bool, error) {
	res, err := s.groups.UpdateOne(ctx,
		bson.M{
			"group_name": domain.NormalizeGroupName(name),
			"members":    userID,
			"members.1":  bson.M{"$exists": true},
		},
		bson.M{"$pull": bson.M{"members": userID}, "$set": bson.M{"updated_at": now.UTC()}},
	)
	if err != nil {
		return false, domain.StoreError(OpRemoveMember, err)
	}
	return res.MatchedCount == 1, nil
}

// DeleteIfSoleMember deletes the group when the user is its only member
func (s *Store) DeleteIfSoleMember(ctx context.Context, name string, userID int64) (bool, error) {
	res, err := s.groups.DeleteOne(ctx, bson.M{
		"group_name": domain.NormalizeGroupName(name),
		"members":    bson.A{userID},
	})
	if err != nil {
		return false, domain.StoreError(OpDeleteSoleMember, err)
	}
	return res.DeletedCount == 1, nil
}

// DeleteGroup removes a group regardless of its members
func (s *Store) DeleteGroup(ctx context.Context, name string) (bool, error) {
	res, err := s.groups.DeleteOne(ctx, bson.M{"group_name": domain.NormalizeGroupName(name)})
	if err != nil {
		return false, domain.StoreError(OpDeleteGroup, err)
	}
	return res.DeletedCount == 1, nil
}

// GetGroup loads one group
func (s *Store) GetGroup(ctx context.Context, name string) (*domain.Group, error) {
	var g domain.Group
	err := s.groups.FindOne(ctx, bson.M{"group_name": domain.NormalizeGroupName(name)}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrGroupNotFound
	}
	if err != nil {
		return nil, domain.StoreError(OpGetGroup, err)
	}
	return &g, nil
}

// ListGroups returns all groups by name
func (s *Store) ListGroups(ctx context.Context) ([]domain.Group, error) {
	cursor, err := s.groups.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "group_name", Value: 1}}))
	if err != nil {
		return nil, domain.StoreError(OpListGroups, err)
	}
	out := []domain.Group{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, domain.StoreError(OpListGroups, err)
	}
	return out, nil
}

// GroupsForUser returns the names of the user's groups
func (s *Store) GroupsForUser(ctx context.Context, userID int64) ([]string, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "group_name", Value: 1}}).
		SetProjection(bson.M{"group_name": 1})
	cursor, err := s.groups.Find(ctx, bson.M{"members": userID}, opts)
	if err != nil {
		return nil, domain.StoreError(OpGroupsForUser, err)
	}
	var docs []struct {
		Name string `bson:"group_name"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domain.StoreError(OpGroupsForUser, err)
	}
	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Name)
	}
	return names, nil
}
