package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/ChatterBot_Go/internal/activity"
	"github.com/osse101/ChatterBot_Go/internal/event"
	"github.com/osse101/ChatterBot_Go/internal/logger"
	"github.com/osse101/ChatterBot_Go/internal/repository"
)

// MessageRetentionJob deletes archived messages older than the retention window.
type MessageRetentionJob struct {
	repo      repository.Messages
	retention time.Duration
	publisher event.Publisher
	now       func() time.Time
}

// NewMessageRetentionJob creates the message cleanup job. A non-positive retention disables it.
func NewMessageRetentionJob(repo repository.Messages, retention time.Duration, publisher event.Publisher) *MessageRetentionJob {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	return &MessageRetentionJob{repo: repo, retention: retention, publisher: publisher, now: time.Now}
}

// Name implements Job
func (j *MessageRetentionJob) Name() string { return TargetMessages }

// Process implements Job
func (j *MessageRetentionJob) Process(ctx context.Context) error {
	return runRetention(ctx, TargetMessages, j.retention, j.now, j.publisher, func(cutoff time.Time) (int64, error) {
		return j.repo.DeleteMessagesBefore(ctx, cutoff)
	})
}

// ActivityRetentionJob prunes activity events older than the retention window.
type ActivityRetentionJob struct {
	activity  activity.Service
	retention time.Duration
	publisher event.Publisher
	now       func() time.Time
}

// NewActivityRetentionJob creates the activity prune job. A non-positive retention disables it.
func NewActivityRetentionJob(svc activity.Service, retention time.Duration, publisher event.Publisher) *ActivityRetentionJob {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	return &ActivityRetentionJob{activity: svc, retention: retention, publisher: publisher, now: time.Now}
}

// Name implements Job
func (j *ActivityRetentionJob) Name() string { return TargetActivity }

// Process implements Job
func (j *ActivityRetentionJob) Process(ctx context.Context) error {
	return runRetention(ctx, TargetActivity, j.retention, j.now, j.publisher, func(time.Time) (int64, error) {
		return j.activity.Prune(ctx, j.retention)
	})
}

func runRetention(ctx context.Context, target string, retention time.Duration, now func() time.Time,
	publisher event.Publisher, del func(cutoff time.Time) (int64, error)) error {
	log := logger.FromContext(ctx).With("target", target)
	if retention <= 0 {
		log.Debug(LogMsgRetentionDisabled)
		return nil
	}

	cutoff := now().UTC().Add(-retention)
	log.Info(LogMsgRetentionStarting, "cutoff", cutoff)

	deleted, err := del(cutoff)
	if err != nil {
		return fmt.Errorf(ErrMsgRetentionFailed, target, err)
	}
	log.Info(LogMsgRetentionCompleted, "deleted", deleted)

	if err := publisher.Publish(ctx, event.NewRetentionCompletedEvent(target, deleted, cutoff)); err != nil {
		log.Warn(LogMsgRetentionPublishFailed, "error", err)
	}
	return nil
}
