package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/ChatterBot_Go/internal/activity"
	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/logger"
	"github.com/osse101/ChatterBot_Go/internal/popularity"
	"github.com/osse101/ChatterBot_Go/internal/repository"
)

// Service defines the Stats Aggregator operations
type Service interface {
	// UserReport derives statistics for one user. Returns domain.ErrUserNotFound when the user has no counters.
	UserReport(ctx context.Context, userID int64) (*domain.UserReport, error)
	// Leaderboard returns the top senders by text messages, excluding users with none.
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

type service struct {
	counters   repository.Counters
	activity   activity.Service
	popularity popularity.Service
	timeout    time.Duration
}

// NewService creates a stats service over the counter store and the activity and popularity services.
func NewService(counters repository.Counters, activitySvc activity.Service, popularitySvc popularity.Service, timeout time.Duration) Service {
	return &service{
		counters:   counters,
		activity:   activitySvc,
		popularity: popularitySvc,
		timeout:    timeout,
	}
}

func (s *service) UserReport(ctx context.Context, userID int64) (*domain.UserReport, error) {
	log := logger.FromContext(ctx)

	u, err := s.getCounters(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := &domain.UserReport{
		UserID:       u.UserID,
		DisplayName:  u.DisplayName(),
		TextMessages: u.TextMessages,
		TotalChars:   u.TotalChars,
		Stickers:     u.Stickers,
		Voices:       u.Voices,
		ImagesPosted: u.ImagesPosted,
		CommandsUsed: u.CommandsUsed,
		JoinedDate:   u.JoinedDate,
	}

	// Each goroutine writes a distinct report field.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := s.sumTextMessages(gctx)
		if err != nil {
			return err
		}
		report.PercentageOfTotal = domain.PercentageOf(u.TextMessages, total)
		return nil
	})
	g.Go(func() error {
		b, err := s.activity.PeakDay(gctx, userID)
		if err == nil && b != nil {
			report.HighestPostingDate, report.HighestPostingDateCount = b.Key, b.Count
		}
		return err
	})
	g.Go(func() error {
		b, err := s.activity.PeakWeek(gctx, userID)
		if err == nil && b != nil {
			report.HighestPostingWeek, report.HighestPostingWeekCount = b.Key, b.Count
		}
		return err
	})
	g.Go(func() error {
		b, err := s.activity.FavoriteDayOfWeek(gctx, userID)
		if err == nil && b != nil {
			report.FavoriteDay = b.Key
		}
		return err
	})
	g.Go(func() error {
		rank, err := s.popularity.Rank(gctx, userID)
		report.PopularityPosition = rank
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf(ErrMsgReportComponent, userID, err)
	}

	log.Debug(LogMsgReportBuilt, "user_id", userID)
	return report, nil
}

func (s *service) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	ctx, cancel := repository.WithTimeout(ctx, s.timeout)
	defer cancel()

	users, err := s.counters.TopByCounter(ctx, domain.FieldTextMessages, limit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLeaderboard, err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(users))
	for i := range users {
		if users[i].TextMessages <= 0 {
			continue
		}
		entries = append(entries, domain.LeaderboardEntry{
			UserID:       users[i].UserID,
			DisplayName:  users[i].DisplayName(),
			TextMessages: users[i].TextMessages,
		})
	}

	logger.FromContext(ctx).Debug(LogMsgLeaderboardBuilt, "entries", len(entries))
	return entries, nil
}

func (s *service) getCounters(ctx context.Context, userID int64) (*domain.UserCounters, error) {
	ctx, cancel := repository.WithTimeout(ctx, s.timeout)
	defer cancel()

	u, err := s.counters.GetCounters(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf(ErrMsgGetCounters, err)
	}
	return u, nil
}

func (s *service) sumTextMessages(ctx context.Context) (int64, error) {
	ctx, cancel := repository.WithTimeout(ctx, s.timeout)
	defer cancel()

	total, err := s.counters.SumCounter(ctx, domain.FieldTextMessages)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgSumTotal, err)
	}
	return total, nil
}
