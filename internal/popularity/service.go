package popularity

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/repository"
)

// Service defines the Popularity Ledger operations
type Service interface {
	// RecordReply credits one received reply to targetUserID.
	RecordReply(ctx context.Context, targetUserID int64) error
	// Rank returns the 1-based popularity position of userID, or 0 when unranked.
	// Ties are ordered by user id ascending.
	Rank(ctx context.Context, userID int64) (int64, error)
	// Top returns the most replied-to users.
	Top(ctx context.Context, limit int) ([]domain.PopularityRecord, error)
}

type service struct {
	repo    repository.Popularity
	timeout time.Duration
}

// NewService creates a popularity service. Every store call is bounded by timeout.
func NewService(repo repository.Popularity, timeout time.Duration) Service {
	return &service{repo: repo, timeout: timeout}
}

func (s *service) RecordReply(ctx context.Context, targetUserID int64) error {
	if targetUserID <= 0 {
		return fmt.Errorf("%w: reply target %d", domain.ErrInvalidInput, targetUserID)
	}

	ctx, cancel := repository.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.repo.IncrementReplies(ctx, targetUserID); err != nil {
		return fmt.Errorf(ErrMsgRecordReply, targetUserID, err)
	}
	return nil
}

func (s *service) Rank(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := repository.WithTimeout(ctx, s.timeout)
	defer cancel()

	rank, err := s.repo.PopularityRank(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgRank, userID, err)
	}
	return rank, nil
}

func (s *service) Top(ctx context.Context, limit int) ([]domain.PopularityRecord, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	ctx, cancel := repository.WithTimeout(ctx, s.timeout)
	defer cancel()

	recs, err := s.repo.TopPopular(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgTop, err)
	}
	return recs, nil
}
