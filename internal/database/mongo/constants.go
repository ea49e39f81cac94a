package mongo

import "time"

// Collection names
const (
	CollectionUserStats  = "user_stats"
	CollectionActivity   = "message_metadata"
	CollectionPopularity = "popularity"
	CollectionGroups     = "groups"
	CollectionMessages   = "messages"
)

// Connection defaults
const (
	ConnectTimeout     = 10 * time.Second
	SlowQueryThreshold = 200 * time.Millisecond
	maxCommandLogBytes = 1000
)

// Operation names reported in StoreError
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
	OpCreateIndexes    = "create indexes on %s"
)

// Log Messages
const (
	LogMsgConnected     = "MongoDB initialized successfully"
	LogMsgSlowCommand   = "MongoDB slow command"
	LogMsgCommandFailed = "MongoDB command failed"
	LogMsgCommandOK     = "MongoDB command succeeded"
)
