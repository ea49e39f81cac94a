package tracking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/ChatterBot_Go/internal/activity"
	"github.com/osse101/ChatterBot_Go/internal/counter"
	"github.com/osse101/ChatterBot_Go/internal/dedupe"
	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/event"
	"github.com/osse101/ChatterBot_Go/internal/logger"
	"github.com/osse101/ChatterBot_Go/internal/popularity"
	"github.com/osse101/ChatterBot_Go/internal/repository"
)

// Service ingests platform-neutral chat events into the stats stores
type Service interface {
	// Track records e. It returns domain.ErrInvalidInput for malformed events,
	// domain.ErrDuplicateEvent for redeliveries and domain.ErrStoreUnavailable when
	// the counters could not be written. Every failure is logged and counted before returning.
	Track(ctx context.Context, e *domain.InboundEvent) error
}

// Deps groups the collaborators of the tracking service.
type Deps struct {
	Counters   counter.Service
	Activity   activity.Service
	Popularity popularity.Service
	Messages   repository.Messages
	Dedupe     dedupe.Deduper
	Publisher  event.Publisher
	Timeout    time.Duration
}

type service struct {
	Deps
	validate *validator.Validate
	now      func() time.Time
}

// NewService creates a tracking service. Dedupe, Messages and Publisher are optional.
func NewService(deps Deps) Service {
	if deps.Publisher == nil {
		deps.Publisher = event.NopPublisher{}
	}
	return &service{
		Deps:     deps,
		validate: validator.New(),
		now:      time.Now,
	}
}

func (s *service) Track(ctx context.Context, e *domain.InboundEvent) error {
	log := logger.FromContext(ctx)

	if e.Timestamp.IsZero() {
		e.Timestamp = s.now()
	}
	e.Timestamp = e.Timestamp.UTC()

	if err := s.validate.Struct(e); err != nil {
		log.Warn(LogMsgInvalidEvent, "user_id", e.UserID, "event_type", e.Type, "error", err)
		s.publish(ctx, event.NewMessageDroppedEvent(e, event.DropReasonInvalid))
		return fmt.Errorf("%w: "+ErrMsgInvalidEvent, domain.ErrInvalidInput, err)
	}

	if s.Dedupe != nil && e.MessageID != 0 {
		key := dedupe.EventKey(DedupePlatform, e.ChatID, e.MessageID)
		dctx, cancel := repository.WithTimeout(ctx, s.Timeout)
		seen, err := s.Dedupe.Seen(dctx, key)
		cancel()
		if err == nil && seen {
			log.Debug(LogMsgDuplicateEvent, "key", key)
			s.publish(ctx, event.NewMessageDroppedEvent(e, event.DropReasonDuplicate))
			return domain.ErrDuplicateEvent
		}
	}

	if err := s.Counters.ApplyIncrements(ctx, e.UserID, DeltasFor(e), ProfileFor(e)); err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			log.Warn(LogMsgStoreDown, "user_id", e.UserID, "event_type", e.Type, "error", err)
			s.publish(ctx, event.NewMessageDroppedEvent(e, event.DropReasonStoreUnavailable))
		} else {
			log.Error(LogMsgTrackFailed, "user_id", e.UserID, "event_type", e.Type, "error", err)
			s.publish(ctx, event.NewMessageDroppedEvent(e, event.DropReasonInvalid))
		}
		return err
	}

	// The counters are committed; the remaining writes are best effort.
	if CountsTowardActivity(e) {
		s.Activity.RecordEvent(ctx, e.UserID, e.Timestamp)
	}

	if e.CreditsReply() {
		if err := s.Popularity.RecordReply(ctx, e.ReplyTargetUserID); err != nil {
			log.Warn(LogMsgReplyFailed, "target_user_id", e.ReplyTargetUserID, "error", err)
		}
	}

	if s.Messages != nil && e.IsText() && e.Text != "" {
		s.archive(ctx, e)
	}

	s.publish(ctx, event.NewMessageTrackedEvent(e))
	log.Debug(LogMsgTracked, "user_id", e.UserID, "event_type", e.Type)
	return nil
}

func (s *service) archive(ctx context.Context, e *domain.InboundEvent) {
	ctx2, cancel := repository.WithTimeout(ctx, s.Timeout)
	defer cancel()

	err := s.Messages.StoreMessage(ctx2, domain.Message{
		MessageID: e.MessageID,
		ChatID:    e.ChatID,
		UserID:    e.UserID,
		Username:  e.Username,
		Text:      e.Text,
		Timestamp: e.Timestamp,
	})
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgMessageFailed, "chat_id", e.ChatID, "message_id", e.MessageID, "error", err)
	}
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if err := s.Publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}
