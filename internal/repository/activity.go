package repository

import (
	"context"
	"time"

	"github.com/osse101/ChatterBot_Go/internal/domain"
)

// Activity defines the interface for the append-only activity log
type Activity interface {
	RecordActivity(ctx context.Context, event domain.ActivityEvent) error

	// TopActivity groups a user's events and returns up to limit buckets ordered by count desc, key asc.
	TopActivity(ctx context.Context, userID int64, grouping domain.ActivityGrouping, limit int) ([]domain.ActivityBucket, error)

	// ActivityByDay returns per-date counts for events at or after since, ordered by date asc.
	ActivityByDay(ctx context.Context, userID int64, since time.Time) ([]domain.ActivityBucket, error)

	// DeleteActivityBefore prunes events created before cutoff and returns the number removed.
	DeleteActivityBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
