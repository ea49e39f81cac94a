package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/ChatterBot_Go/internal/domain"
)

const groupColumns = `group_name, members, created_by, created_at, updated_at`

// InsertGroup creates a group whose only member is its creator
func (s *Store) InsertGroup(ctx context.Context, name string, userID int64, now time.Time) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO mention_groups (group_name, members, created_by, created_at, updated_at)
		VALUES ($1, ARRAY[$2::BIGINT], $2, $3, $3)`,
		domain.NormalizeGroupName(name), userID, now)
	if isUniqueViolation(err) {
		return domain.ErrGroupExists
	}
	return domain.StoreError(OpInsertGroup, err)
}

// AddMember appends a user when not already present
func (s *Store) AddMember(ctx context.Context, name string, userID int64, now time.Time) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE mention_groups
		SET members = array_append(members, $2::BIGINT), updated_at = $3
		WHERE group_name = $1 AND NOT ($2::BIGINT = ANY(members))`,
		domain.NormalizeGroupName(name), userID, now)
	if err != nil {
		return false, domain.StoreError(OpAddMember, err)
	}
	return tag.RowsAffected() == 1, nil
}

// RemoveMemberIfOthers removes a member that is not the last one
func (s *Store) RemoveMemberIfOthers(ctx context.Context, name string, userID int64, now time.Time) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE mention_groups
		SET members = array_remove(members, $2::BIGINT), updated_at = $3
		WHERE group_name = $1 AND $2::BIGINT = ANY(members) AND cardinality(members) > 1`,
		domain.NormalizeGroupName(name), userID, now)
	if err != nil {
		return false, domain.StoreError(OpRemoveMember, err)
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteIfSoleMember deletes the group when the user is its only member
func (s *Store) DeleteIfSoleMember(ctx context.Context, name string, userID int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM mention_groups
		WHERE group_name = $1 AND members = ARRAY[$2::BIGINT]`,
		domain.NormalizeGroupName(name), userID)
	if err != nil {
		return false, domain.StoreError(OpDeleteSoleMember, err)
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteGroup removes a group regardless of its members
func (s *Store) DeleteGroup(ctx context.Context, name string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM mention_groups WHERE group_name = $1`, domain.NormalizeGroupName(name))
	if err != nil {
		return false, domain.StoreError(OpDeleteGroup, err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetGroup loads one group
func (s *Store) GetGroup(ctx context.Context, name string) (*domain.Group, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+groupColumns+` FROM mention_groups WHERE group_name = $1`, domain.NormalizeGroupName(name))
	g, err := scanGroup(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrGroupNotFound
	}
	if err != nil {
		return nil, domain.StoreError(OpGetGroup, err)
	}
	return &g, nil
}

// ListGroups returns all groups by name
func (s *Store) ListGroups(ctx context.Context) ([]domain.Group, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+groupColumns+` FROM mention_groups ORDER BY group_name`)
	if err != nil {
		return nil, domain.StoreError(OpListGroups, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Group, error) {
		return scanGroup(row)
	})
	if err != nil {
		return nil, domain.StoreError(OpListGroups, err)
	}
	return out, nil
}

// GroupsForUser returns the names of the user's groups
func (s *Store) GroupsForUser(ctx context.Context, userID int64) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT group_name FROM mention_groups
		WHERE $1::BIGINT = ANY(members)
		ORDER BY group_name`, userID)
	if err != nil {
		return nil, domain.StoreError(OpGroupsForUser, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, domain.StoreError(OpGroupsForUser, err)
	}
	return out, nil
}

func scanGroup(row pgx.Row) (domain.Group, error) {
	var g domain.Group
	err := row.Scan(&g.Name, &g.Members, &g.CreatedBy, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}
