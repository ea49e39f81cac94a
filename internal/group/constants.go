package group

// MaxGroupRetries bounds the compare-and-set loops of Join and Leave.
const MaxGroupRetries = 5

// Error messages
const (
	ErrMsgJoin          = "failed to join group %q: %w"
	ErrMsgLeave         = "failed to leave group %q: %w"
	ErrMsgDelete        = "failed to delete group %q: %w"
	ErrMsgRead          = "failed to read group %q: %w"
	ErrMsgList          = "failed to list groups: %w"
	ErrMsgRetryExceeded = "group %q changed concurrently %d times"
)

// Log messages
const (
	LogMsgGroupOperation = "Group operation completed"
	LogMsgGroupRetry     = "Group changed concurrently, retrying"
	LogMsgPublishFailed  = "Failed to publish group event"
)
