package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/ChatterBot_Go/internal/activity"
	"github.com/osse101/ChatterBot_Go/internal/config"
	"github.com/osse101/ChatterBot_Go/internal/event"
	"github.com/osse101/ChatterBot_Go/internal/repository"
	"github.com/osse101/ChatterBot_Go/internal/scheduler"
	"github.com/osse101/ChatterBot_Go/internal/worker"
)

// Jobs bundles the retention worker pool and the cron scheduler feeding it.
type Jobs struct {
	Pool      *worker.Pool
	Scheduler *scheduler.Scheduler
}

// InitializeJobs registers the message and activity retention jobs on
// cfg.CleanupSchedule. Nothing runs until Start.
func InitializeJobs(ctx context.Context, cfg *config.Config, messages repository.Messages,
	activitySvc activity.Service, publisher event.Publisher) (*Jobs, error) {
	pool := worker.NewPool(ctx, cfg.WorkerCount, JobQueueSize, worker.DefaultJobTimeout)
	sched := scheduler.New(pool)

	for _, job := range []worker.Job{
		worker.NewMessageRetentionJob(messages, cfg.MessageRetention(), publisher),
		worker.NewActivityRetentionJob(activitySvc, cfg.ActivityRetention(), publisher),
	} {
		if err := sched.Schedule(cfg.CleanupSchedule, job); err != nil {
			return nil, fmt.Errorf(ErrMsgScheduleJob, job.Name(), err)
		}
	}

	slog.Info(LogMsgJobsScheduled,
		"schedule", cfg.CleanupSchedule,
		"workers", cfg.WorkerCount,
		"message_retention", cfg.MessageRetention(),
		"activity_retention", cfg.ActivityRetention())
	return &Jobs{Pool: pool, Scheduler: sched}, nil
}

// Start starts the workers and then the cron loop.
func (j *Jobs) Start() {
	j.Pool.Start()
	j.Scheduler.Start()
}

// Stop stops scheduling first so no run is enqueued onto a stopped pool.
func (j *Jobs) Stop() {
	j.Scheduler.Stop()
	j.Pool.Stop()
}
