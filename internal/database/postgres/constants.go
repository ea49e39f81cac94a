package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Operation names used when wrapping driver errors
const (
	OpEnsureUser       = "ensure user"
	OpApplyIncrements  = "apply increments"
	OpGetCounters      = "get counters"
	OpSumCounter       = "sum counter"
	OpTopByCounter     = "top by counter"
	OpRecordActivity   = "record activity"
	OpTopActivity      = "top activity"
	OpActivityByDay    = "activity by day"
	OpDeleteActivity   = "delete activity"
	OpIncrementReplies = "increment replies"
	OpPopularityRank   = "popularity rank"
	OpTopPopular       = "top popular"
	OpInsertGroup      = "insert group"
	OpAddMember        = "add member"
	OpRemoveMember     = "remove member"
	OpDeleteSoleMember = "delete sole member group"
	OpDeleteGroup      = "delete group"
	OpGetGroup         = "get group"
	OpListGroups       = "list groups"
	OpGroupsForUser    = "groups for user"
	OpStoreMessage     = "store message"
	OpRecentMessages   = "recent messages"
	OpDeleteMessages   = "delete messages"
	OpPing             = "ping"
)
