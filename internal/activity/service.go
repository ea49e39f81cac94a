package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/logger"
	"github.com/osse101/ChatterBot_Go/internal/repository"
)

// Service defines the Activity Log operations
type Service interface {
	// RecordEvent appends one event for userID at the given time. Failures are logged and swallowed.
	RecordEvent(ctx context.Context, userID int64, at time.Time)
	// PeakDay returns the date with the most events, or nil when the user has none.
	PeakDay(ctx context.Context, userID int64) (*domain.ActivityBucket, error)
	// PeakWeek returns the ISO week with the most events, or nil when the user has none.
	PeakWeek(ctx context.Context, userID int64) (*domain.ActivityBucket, error)
	// FavoriteDayOfWeek returns the weekday name with the most events, or nil when the user has none.
	FavoriteDayOfWeek(ctx context.Context, userID int64) (*domain.ActivityBucket, error)
	// DailyActivity returns per-date counts for the last days days, ascending by date.
	DailyActivity(ctx context.Context, userID int64, days int) ([]domain.ActivityBucket, error)
	// Prune deletes events older than retention and returns how many were removed.
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

type service struct {
	repo    repository.Activity
	timeout time.Duration
	now     func() time.Time
}

// NewService creates an activity service. Every store call is bounded by timeout.
func NewService(repo repository.Activity, timeout time.Duration) Service {
	return &service{
		repo:    repo,
		timeout: timeout,
		now:     time.Now,
	}
}

func (s *service) RecordEvent(ctx context.Context, userID int64, at time.Time) {
	if at.IsZero() {
		at = s.now()
	}

	ctx, cancel := repository.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.repo.RecordActivity(ctx, domain.NewActivityEvent(userID, at)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgRecordFailed, "user_id", userID, "error", err)
	}
}

func (s *service) PeakDay(ctx context.Context, userID int64) (*domain.ActivityBucket, error) {
	return s.top(ctx, userID, domain.GroupByDate)
}

func (s *service) PeakWeek(ctx context.Context, userID int64) (*domain.ActivityBucket, error) {
	return s.top(ctx, userID, domain.GroupByWeek)
}

func (s *service) FavoriteDayOfWeek(ctx context.Context, userID int64) (*domain.ActivityBucket, error) {
	return s.top(ctx, userID, domain.GroupByDayOfWeek)
}

func (s *service) top(ctx context.Context, userID int64, grouping domain.ActivityGrouping) (*domain.ActivityBucket, error) {
	ctx, cancel := repository.WithTimeout(ctx, s.timeout)
	defer cancel()

	buckets, err := s.repo.TopActivity(ctx, userID, grouping, 1)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgTopActivity, grouping, userID, err)
	}
	if len(buckets) == 0 {
		return nil, nil
	}
	b := buckets[0]
	return &b, nil
}

// WindowDays returns the number of days DailyActivity actually covers for a requested days.
func WindowDays(days int) int {
	switch {
	case days <= 0:
		return DefaultDailyActivityDays
	case days > MaxDailyActivityDays:
		return MaxDailyActivityDays
	}
	return days
}

func (s *service) DailyActivity(ctx context.Context, userID int64, days int) ([]domain.ActivityBucket, error) {
	days = WindowDays(days)

	today := s.now().UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(days - 1))

	ctx, cancel := repository.WithTimeout(ctx, s.timeout)
	defer cancel()

	buckets, err := s.repo.ActivityByDay(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgDailyFailed, userID, err)
	}
	return buckets, nil
}

func (s *service) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, errors.New(ErrMsgBadRetention)
	}
	cutoff := s.now().UTC().Add(-retention)

	ctx, cancel := repository.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.repo.DeleteActivityBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgPruneFailed, cutoff.Format(time.RFC3339), err)
	}
	logger.FromContext(ctx).Info(LogMsgPruned, "deleted", n, "cutoff", cutoff)
	return n, nil
}
