package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept next to the new session log
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingChatterBot  = "Starting ChatterBot"
	LogMsgConfigurationLoaded = "Configuration loaded"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// =============================================================================
// Store and Dedupe
// =============================================================================

const (
	LogMsgStoreOpened        = "Store opened"
	LogMsgMigrationsApplied  = "Database migrations applied"
	LogMsgDedupeRedis        = "Event dedupe backed by Redis"
	LogMsgDedupeInProcess    = "Event dedupe in process"
	LogMsgRedisCloseFailed   = "Failed to close Redis client"
	ErrMsgFailedConnectDB    = "failed to connect to database"
	ErrMsgFailedMigrate      = "failed to apply migrations"
	ErrMsgFailedConnectMongo = "failed to connect to mongodb"
	ErrMsgFailedConnectRedis = "failed to connect to redis"
	ErrMsgUnknownStoreDriver = "unknown store driver %q"
)

// =============================================================================
// Event System
// =============================================================================

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLoggerRegistered      = "Event logger registered"
	LogMsgGroupChanged               = "Group changed"
	LogMsgRetentionEvent             = "Retention completed"
)

// =============================================================================
// Background Jobs
// =============================================================================

const (
	// JobQueueSize bounds pending retention runs
	JobQueueSize = 8

	LogMsgJobsScheduled = "Background jobs scheduled"
	ErrMsgScheduleJob   = "failed to schedule %s job: %w"
)

// =============================================================================
// Shutdown
// =============================================================================

const (
	// ShutdownTimeout bounds the whole graceful shutdown sequence
	ShutdownTimeout = 10 * time.Second

	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgShuttingDownJobs     = "Stopping background jobs..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgStoreCloseFailed     = "Store close failed"
)
