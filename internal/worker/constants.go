package worker

import "time"

// Defaults
const (
	DefaultQueueSize  = 16
	DefaultJobTimeout = 5 * time.Minute
)

// Retention targets, used as the job name and metric label.
const (
	TargetMessages = "messages"
	TargetActivity = "activity"
)

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
	LogMsgWorkerQueueFull   = "Worker queue full, job skipped"
	LogMsgWorkerPoolStopped = "Worker pool stopped"
)

// ============================================================================
// Log Messages - Retention
// ============================================================================

const (
	LogMsgRetentionStarting      = "Retention job starting"
	LogMsgRetentionCompleted     = "Retention job completed"
	LogMsgRetentionDisabled      = "Retention disabled, job skipped"
	LogMsgRetentionPublishFailed = "Failed to publish retention event"
)

// ErrMsgRetentionFailed prefixes retention job failures
const ErrMsgRetentionFailed = "retention %s failed: %w"
