package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/ChatterBot_Go/internal/domain"
)

// RecordActivity appends one activity event
func (s *Store) RecordActivity(ctx context.Context, event domain.ActivityEvent) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO activity_events (user_id, message_date, day_of_week, week_number, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		event.UserID, event.MessageDate, event.DayOfWeek, event.WeekNumber, event.CreatedAt)
	return domain.StoreError(OpRecordActivity, err)
}

// TopActivity counts a user's events per grouping key
func (s *Store) TopActivity(ctx context.Context, userID int64, grouping domain.ActivityGrouping, limit int) ([]domain.ActivityBucket, error) {
	if !grouping.Valid() {
		return nil, fmt.Errorf("%w: unknown grouping %q", domain.ErrInvalidInput, string(grouping))
	}
	query := fmt.Sprintf(`
		SELECT %s AS bucket_key, COUNT(*) AS bucket_count
		FROM activity_events
		WHERE user_id = $1
		GROUP BY bucket_key
		ORDER BY bucket_count DESC, bucket_key ASC
		LIMIT $2`, grouping)

	rows, err := s.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, domain.StoreError(OpTopActivity, err)
	}
	out, err := pgx.CollectRows(rows, scanBucket)
	if err != nil {
		return nil, domain.StoreError(OpTopActivity, err)
	}
	return out, nil
}

// ActivityByDay returns per-date counts since a point in time
func (s *Store) ActivityByDay(ctx context.Context, userID int64, since time.Time) ([]domain.ActivityBucket, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT message_date, COUNT(*)
		FROM activity_events
		WHERE user_id = $1 AND created_at >= $2
		GROUP BY message_date
		ORDER BY message_date ASC`, userID, since)
	if err != nil {
		return nil, domain.StoreError(OpActivityByDay, err)
	}
	out, err := pgx.CollectRows(rows, scanBucket)
	if err != nil {
		return nil, domain.StoreError(OpActivityByDay, err)
	}
	return out, nil
}

// DeleteActivityBefore prunes old activity events
func (s *Store) DeleteActivityBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM activity_events WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, domain.StoreError(OpDeleteActivity, err)
	}
	return tag.RowsAffected(), nil
}

func scanBucket(row pgx.CollectableRow) (domain.ActivityBucket, error) {
	var b domain.ActivityBucket
	err := row.Scan(&b.Key, &b.Count)
	return b, err
}
