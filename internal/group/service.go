package group

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/event"
	"github.com/osse101/ChatterBot_Go/internal/logger"
	"github.com/osse101/ChatterBot_Go/internal/repository"
)

// ErrConflict is returned when a group kept changing underneath every retry.
var ErrConflict = errors.New("group modified concurrently")

// Service defines the Group Registry operations.
//
// Join, Leave and Delete report business outcomes (invalid name, already a member,
// does not exist, ...) in the returned GroupResult. A non-nil error means the store
// could not be reached or the retry budget ran out.
type Service interface {
	ValidateName(name string) error
	Join(ctx context.Context, name string, userID int64) (domain.GroupResult, error)
	Leave(ctx context.Context, name string, userID int64) (domain.GroupResult, error)
	// Delete removes a group regardless of its members. Authorization is the caller's job.
	Delete(ctx context.Context, name string) (domain.GroupResult, error)
	// MembersOf returns domain.ErrGroupNotFound when the group does not exist.
	MembersOf(ctx context.Context, name string) ([]int64, error)
	GroupsOf(ctx context.Context, userID int64) ([]string, error)
	// List returns every group ordered by name.
	List(ctx context.Context) ([]domain.Group, error)
	// Info returns domain.ErrGroupNotFound when the group does not exist.
	Info(ctx context.Context, name string) (*domain.Group, error)
}

type service struct {
	repo      repository.Groups
	publisher event.Publisher
	timeout   time.Duration
	now       func() time.Time
}

// NewService creates a group registry. Outcomes are published to publisher; pass nil to skip.
func NewService(repo repository.Groups, publisher event.Publisher, timeout time.Duration) Service {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	return &service{
		repo:      repo,
		publisher: publisher,
		timeout:   timeout,
		now:       time.Now,
	}
}

func (s *service) ValidateName(name string) error {
	return domain.ValidateGroupName(name)
}

func (s *service) Join(ctx context.Context, name string, userID int64) (domain.GroupResult, error) {
	if res, ok := s.invalid(name); !ok {
		return res, nil
	}
	name = domain.NormalizeGroupName(name)

	for attempt := 0; attempt < MaxGroupRetries; attempt++ {
		added, err := s.addMember(ctx, name, userID)
		if err != nil {
			return domain.GroupResult{}, fmt.Errorf(ErrMsgJoin, name, err)
		}
		if added {
			return s.done(ctx, userID, result(true, domain.OutcomeJoined, name, domain.MsgGroupJoined)), nil
		}

		g, err := s.get(ctx, name)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			err = s.insert(ctx, name, userID)
			if errors.Is(err, domain.ErrGroupExists) {
				s.retrying(ctx, name, attempt)
				continue
			}
			if err != nil {
				return domain.GroupResult{}, fmt.Errorf(ErrMsgJoin, name, err)
			}
			return s.done(ctx, userID, result(true, domain.OutcomeCreated, name, domain.MsgGroupCreated)), nil
		case err != nil:
			return domain.GroupResult{}, fmt.Errorf(ErrMsgJoin, name, err)
		case g.HasMember(userID):
			return s.done(ctx, userID, result(false, domain.OutcomeAlreadyMember, name, domain.MsgGroupAlreadyMember)), nil
		}
		// The group exists without userID, so it changed between the two statements.
		s.retrying(ctx, name, attempt)
	}
	return domain.GroupResult{}, fmt.Errorf("%w: "+ErrMsgRetryExceeded, ErrConflict, name, MaxGroupRetries)
}

func (s *service) Leave(ctx context.Context, name string, userID int64) (domain.GroupResult, error) {
	if res, ok := s.invalid(name); !ok {
		return res, nil
	}
	name = domain.NormalizeGroupName(name)

	for attempt := 0; attempt < MaxGroupRetries; attempt++ {
		deleted, err := s.deleteIfSole(ctx, name, userID)
		if err != nil {
			return domain.GroupResult{}, fmt.Errorf(ErrMsgLeave, name, err)
		}
		if deleted {
			return s.done(ctx, userID, result(true, domain.OutcomeLeftDeleted, name, domain.MsgGroupLeftDeleted)), nil
		}

		removed, err := s.removeIfOthers(ctx, name, userID)
		if err != nil {
			return domain.GroupResult{}, fmt.Errorf(ErrMsgLeave, name, err)
		}
		if removed {
			return s.done(ctx, userID, result(true, domain.OutcomeLeft, name, domain.MsgGroupLeft)), nil
		}

		g, err := s.get(ctx, name)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return s.done(ctx, userID, result(false, domain.OutcomeNotFound, name, domain.MsgGroupNotFound)), nil
		case err != nil:
			return domain.GroupResult{}, fmt.Errorf(ErrMsgLeave, name, err)
		case !g.HasMember(userID):
			return s.done(ctx, userID, result(false, domain.OutcomeNotMember, name, domain.MsgGroupNotMember)), nil
		}
		s.retrying(ctx, name, attempt)
	}
	return domain.GroupResult{}, fmt.Errorf("%w: "+ErrMsgRetryExceeded, ErrConflict, name, MaxGroupRetries)
}

func (s *service) Delete(ctx context.Context, name string) (domain.GroupResult, error) {
	if res, ok := s.invalid(name); !ok {
		return res, nil
	}
	name = domain.NormalizeGroupName(name)

	ctx2, cancel := repository.WithTimeout(ctx, s.timeout)
	defer cancel()

	deleted, err := s.repo.DeleteGroup(ctx2, name)
	if err != nil {
		return domain.GroupResult{}, fmt.Errorf(ErrMsgDelete, name, err)
	}
	if !deleted {
		return s.done(ctx, 0, result(false, domain.OutcomeNotFound, name, domain.MsgGroupNotFound)), nil
	}
	return s.done(ctx, 0, result(true, domain.OutcomeDeleted, name, domain.MsgGroupDeleted)), nil
}

func (s *service) MembersOf(ctx context.Context, name string) ([]int64, error) {
	g, err := s.Info(ctx, name)
	if err != nil {
		return nil, err
	}
	return g.Members, nil
}

func (s *service) Info(ctx context.Context, name string) (*domain.Group, error) {
	if err := domain.ValidateGroupName(name); err != nil {
		return nil, err
	}
	name = domain.NormalizeGroupName(name)

	g, err := s.get(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf(ErrMsgRead, name, err)
	}
	return g, nil
}

func (s *service) GroupsOf(ctx context.Context, userID int64) ([]string, error) {
	ctx, cancel := repository.WithTimeout(ctx, s.timeout)
	defer cancel()

	names, err := s.repo.GroupsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgList, err)
	}
	return names, nil
}

func (s *service) List(ctx context.Context) ([]domain.Group, error) {
	ctx, cancel := repository.WithTimeout(ctx, s.timeout)
	defer cancel()

	groups, err := s.repo.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgList, err)
	}
	return groups, nil
}

func (s *service) invalid(name string) (domain.GroupResult, bool) {
	if err := domain.ValidateGroupName(name); err != nil {
		return result(false, domain.OutcomeInvalidName, name, err.Error()), false
	}
	return domain.GroupResult{}, true
}

func (s *service) done(ctx context.Context, userID int64, res domain.GroupResult) domain.GroupResult {
	logger.FromContext(ctx).Info(LogMsgGroupOperation,
		"group", res.Group, "user_id", userID, "outcome", res.Outcome, "success", res.Success)
	if err := s.publisher.Publish(ctx, event.NewGroupChangedEvent(userID, res)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "error", err)
	}
	return res
}

func (s *service) retrying(ctx context.Context, name string, attempt int) {
	logger.FromContext(ctx).Debug(LogMsgGroupRetry, "group", name, "attempt", attempt+1)
}

func result(success bool, outcome domain.GroupOutcome, name, msg string) domain.GroupResult {
	return domain.GroupResult{Success: success, Outcome: outcome, Group: name, Message: msg}
}

// Single-statement store calls, each with its own timeout.

func (s *service) addMember(ctx context.Context, name string, userID int64) (bool, error) {
	ctx, cancel := repository.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.AddMember(ctx, name, userID, s.now().UTC())
}

func (s *service) insert(ctx context.Context, name string, userID int64) error {
	ctx, cancel := repository.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.InsertGroup(ctx, name, userID, s.now().UTC())
}

func (s *service) deleteIfSole(ctx context.Context, name string, userID int64) (bool, error) {
	ctx, cancel := repository.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.DeleteIfSoleMember(ctx, name, userID)
}

func (s *service) removeIfOthers(ctx context.Context, name string, userID int64) (bool, error) {
	ctx, cancel := repository.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.RemoveMemberIfOthers(ctx, name, userID, s.now().UTC())
}

func (s *service) get(ctx context.Context, name string) (*domain.Group, error) {
	ctx, cancel := repository.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.GetGroup(ctx, name)
}
