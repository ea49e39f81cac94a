package repository

import (
	"context"
	"time"

	"github.com/osse101/ChatterBot_Go/internal/domain"
)

// Counters defines the interface for per-user counter persistence
type Counters interface {
	// EnsureUser creates a zeroed record for userID if none exists. Safe under concurrent calls.
	EnsureUser(ctx context.Context, userID int64, now time.Time) error

	// ApplyIncrements adds deltas and overwrites profile fields in one atomic upsert,
	// creating the record with zero defaults when absent.
	ApplyIncrements(ctx context.Context, userID int64, deltas domain.CounterDeltas, profile domain.ProfileUpdate, now time.Time) error

	// GetCounters returns domain.ErrUserNotFound when the user has no record.
	GetCounters(ctx context.Context, userID int64) (*domain.UserCounters, error)

	// SumCounter returns the sum of field across all users.
	SumCounter(ctx context.Context, field domain.CounterField) (int64, error)

	// TopByCounter returns up to limit users with field > 0, ordered by field desc then user id asc.
	TopByCounter(ctx context.Context, field domain.CounterField, limit int) ([]domain.UserCounters, error)
}
