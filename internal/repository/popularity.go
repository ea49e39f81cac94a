package repository

import (
	"context"

	"github.com/osse101/ChatterBot_Go/internal/domain"
)

// Popularity defines the interface for the reply-received ledger
type Popularity interface {
	// IncrementReplies atomically adds one reply to userID, creating the record when absent.
	IncrementReplies(ctx context.Context, userID int64) error

	// PopularityRank returns 1 + the number of records ranked ahead of userID, or 0 when userID has no record.
	PopularityRank(ctx context.Context, userID int64) (int64, error)

	// TopPopular returns up to limit records ordered by reply count desc then user id asc.
	TopPopular(ctx context.Context, limit int) ([]domain.PopularityRecord, error)
}
