package stats

// ============================================================================
// Query Limits
// ============================================================================

// DefaultLeaderboardLimit is the number of entries returned when limit <= 0
const DefaultLeaderboardLimit = 10

// MaxLeaderboardLimit caps leaderboard queries
const MaxLeaderboardLimit = 100

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgGetCounters     = "failed to load counters: %w"
	ErrMsgSumTotal        = "failed to sum total messages: %w"
	ErrMsgLeaderboard     = "failed to load leaderboard: %w"
	ErrMsgReportComponent = "failed to build report for user %d: %w"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgReportBuilt      = "User report built"
	LogMsgLeaderboardBuilt = "Leaderboard built"
)
