package scheduler

import "errors"

var (
	// ErrUnknownJob is returned by Trigger for a name that was never scheduled.
	ErrUnknownJob = errors.New("unknown job")
	// ErrJobNotQueued is returned by Trigger when the pool is stopped or its queue is full.
	ErrJobNotQueued = errors.New("job not queued")
)

// Log messages
const (
	LogMsgJobScheduled  = "Job scheduled"
	LogMsgJobTriggered  = "Job triggered"
	LogMsgSchedulerStop = "Scheduler stopped"
)

// Error messages
const (
	ErrMsgInvalidSchedule = "invalid schedule %q for job %s: %w"
	ErrMsgUnknownJob      = "%w: %q"
	ErrMsgNotQueued       = "%w: %q"
)
