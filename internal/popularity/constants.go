package popularity

// DefaultTopLimit is used by Top when limit <= 0.
const DefaultTopLimit = 10

// Error messages
const (
	ErrMsgRecordReply = "failed to record reply for user %d: %w"
	ErrMsgRank        = "failed to rank user %d: %w"
	ErrMsgTop         = "failed to load popularity leaderboard: %w"
)
