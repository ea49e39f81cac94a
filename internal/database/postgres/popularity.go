package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/ChatterBot_Go/internal/domain"
)

// IncrementReplies credits one reply to a user
func (s *Store) IncrementReplies(ctx context.Context, userID int64) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO popularity (user_id, reply_count)
		VALUES ($1, 1)
		ON CONFLICT (user_id) DO UPDATE SET reply_count = popularity.reply_count + 1`, userID)
	return domain.StoreError(OpIncrementReplies, err)
}

// PopularityRank counts the records ranked strictly ahead of the user
func (s *Store) PopularityRank(ctx context.Context, userID int64) (int64, error) {
	var rank int64
	err := s.pool.QueryRow(ctx, `
		SELECT 1 + (
			SELECT COUNT(*) FROM popularity p
			WHERE p.reply_count > me.reply_count
			   OR (p.reply_count = me.reply_count AND p.user_id < me.user_id)
		)
		FROM popularity me
		WHERE me.user_id = $1`, userID).Scan(&rank)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, domain.StoreError(OpPopularityRank, err)
	}
	return rank, nil
}

// TopPopular returns the most replied-to users
func (s *Store) TopPopular(ctx context.Context, limit int) ([]domain.PopularityRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT user_id, reply_count FROM popularity
		ORDER BY reply_count DESC, user_id ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, domain.StoreError(OpTopPopular, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PopularityRecord, error) {
		var r domain.PopularityRecord
		err := row.Scan(&r.UserID, &r.ReplyCount)
		return r, err
	})
	if err != nil {
		return nil, domain.StoreError(OpTopPopular, err)
	}
	return out, nil
}
