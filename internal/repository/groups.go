package repository

import (
	"context"
	"time"

	"github.com/osse101/ChatterBot_Go/internal/domain"
)

// Groups defines the interface for mention-group persistence.
// Names passed in are already normalized. Every mutation is a single conditional statement.
type Groups interface {
	// InsertGroup creates a group with one member. Returns domain.ErrGroupExists on a name conflict.
	InsertGroup(ctx context.Context, name string, userID int64, now time.Time) error

	// AddMember adds userID when the group exists and userID is not yet a member.
	// Reports whether a group matched.
	AddMember(ctx context.Context, name string, userID int64, now time.Time) (bool, error)

	// RemoveMemberIfOthers removes userID when it is a member and at least one other member remains.
	RemoveMemberIfOthers(ctx context.Context, name string, userID int64, now time.Time) (bool, error)

	// DeleteIfSoleMember deletes the group when userID is its only member.
	DeleteIfSoleMember(ctx context.Context, name string, userID int64) (bool, error)

	// DeleteGroup removes the group unconditionally. Reports whether it existed.
	DeleteGroup(ctx context.Context, name string) (bool, error)

	// GetGroup returns domain.ErrGroupNotFound when absent.
	GetGroup(ctx context.Context, name string) (*domain.Group, error)

	// ListGroups returns every group ordered by name.
	ListGroups(ctx context.Context) ([]domain.Group, error)

	// GroupsForUser returns the names of groups userID belongs to, ordered by name.
	GroupsForUser(ctx context.Context, userID int64) ([]string, error)
}
