package counter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/logger"
	"github.com/osse101/ChatterBot_Go/internal/repository"
)

// Service defines the Counter Store operations
type Service interface {
	// EnsureUser creates a zeroed record for userID if absent.
	EnsureUser(ctx context.Context, userID int64) error
	// ApplyIncrements adds deltas and overwrites profile fields in one atomic store operation.
	ApplyIncrements(ctx context.Context, userID int64, deltas domain.CounterDeltas, profile domain.ProfileUpdate) error
	// Get returns domain.ErrUserNotFound when userID has no record.
	Get(ctx context.Context, userID int64) (*domain.UserCounters, error)
}

type service struct {
	repo    repository.Counters
	timeout time.Duration
	now     func() time.Time
}

// NewService creates a counter service. Every store call is bounded by timeout.
func NewService(repo repository.Counters, timeout time.Duration) Service {
	return &service{
		repo:    repo,
		timeout: timeout,
		now:     time.Now,
	}
}

func (s *service) EnsureUser(ctx context.Context, userID int64) error {
	if err := validateUserID(userID); err != nil {
		return err
	}

	ctx, cancel := repository.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.repo.EnsureUser(ctx, userID, s.now().UTC()); err != nil {
		return fmt.Errorf(ErrMsgEnsureUser, userID, err)
	}
	return nil
}

func (s *service) ApplyIncrements(ctx context.Context, userID int64, deltas domain.CounterDeltas, profile domain.ProfileUpdate) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	if err := deltas.Validate(); err != nil {
		return err
	}

	ctx, cancel := repository.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.repo.ApplyIncrements(ctx, userID, deltas, profile, s.now().UTC()); err != nil {
		return fmt.Errorf(ErrMsgApply, userID, err)
	}

	logger.FromContext(ctx).Debug(LogMsgApplied, "user_id", userID, "fields", len(deltas))
	return nil
}

func (s *service) Get(ctx context.Context, userID int64) (*domain.UserCounters, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	ctx, cancel := repository.WithTimeout(ctx, s.timeout)
	defer cancel()

	u, err := s.repo.GetCounters(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf(ErrMsgGet, userID, err)
	}
	return u, nil
}

func validateUserID(userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgInvalidUserID)
	}
	return nil
}
