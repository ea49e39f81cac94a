package counter

// Error messages
const (
	ErrMsgInvalidUserID = "user id must be positive"
	ErrMsgEnsureUser    = "failed to ensure user %d: %w"
	ErrMsgApply         = "failed to apply increments for user %d: %w"
	ErrMsgGet           = "failed to get counters for user %d: %w"
)

// Log messages
const (
	LogMsgApplied = "Counters applied"
)
