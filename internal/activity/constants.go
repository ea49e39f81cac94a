package activity

// DefaultDailyActivityDays is used by DailyActivity when days <= 0.
const DefaultDailyActivityDays = 7

// MaxDailyActivityDays caps the DailyActivity window.
const MaxDailyActivityDays = 366

// Error messages
const (
	ErrMsgTopActivity  = "failed to aggregate activity by %s for user %d: %w"
	ErrMsgDailyFailed  = "failed to load daily activity for user %d: %w"
	ErrMsgPruneFailed  = "failed to prune activity before %s: %w"
	ErrMsgBadRetention = "retention must be positive"
)

// Log messages
const (
	LogMsgRecordFailed = "Failed to record activity event, dropping"
	LogMsgPruned       = "Pruned activity events"
)
