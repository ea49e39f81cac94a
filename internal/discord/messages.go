package discord

// Friendly message constants for Discord responses
const (
	// Stats
	MsgNoStats    = "No stats found for this user."
	MsgNoMessages = "No message data found."

	// Groups
	MsgNoGroups       = "📝 No groups have been created yet.\nUse /joingroup to create one!"
	MsgAdminOnly      = "❌ This command is only available to group administrators."
	MsgGroupEmpty     = "Group '%s' has no members."
	MsgGroupsHelp     = "ℹ️ Commands:\n• /joingroup <name> - Join/create a group\n• /leavegroup <name> - Leave a group\n• /<groupname> - Mention group members"
	MsgGroupsOfNone   = "You are not in any groups."
	MsgGroupRequestKO = "❌ An error occurred while processing your request."

	// Rates
	MsgRatesUnavailable = "❌ Rate lookups are not configured."
	MsgRatesFailed      = "❌ Error fetching rates: %s"
	MsgConvertFailed    = "❌ Error converting currency: %s"
	MsgPriceFailed      = "❌ Error fetching cryptocurrency price: %s"
	MsgInvalidAmount    = "❌ Error: Amount must be a positive number"

	MsgStoreUnavailable = "⚠️ Stats are temporarily unavailable, try again shortly."
	MsgGenericError     = "❌ Something went wrong."
	MsgPong             = "Pong! 🏓"
)

// Embed colors
const (
	ColorStats   = 0x3498db
	ColorTop     = 0x1abc9c
	ColorGroups  = 0x9b59b6
	ColorRates   = 0xf1c40f
	ColorSuccess = 0x2ecc71
	ColorError   = 0xe74c3c
)

// Footer constants for standardized embed footers.
const (
	FooterChatterBot      = "ChatterBot"
	FooterChatterBotAdmin = "ChatterBot Admin"
)

// Command names
const (
	CmdPing       = "ping"
	CmdStats      = "stats"
	CmdTop10      = "top10"
	CmdJoinGroup  = "joingroup"
	CmdLeaveGroup = "leavegroup"
	CmdRmGroup    = "rmgroup"
	CmdGroups     = "groups"
	CmdMyGroups   = "mygroups"
	CmdMention    = "mention"
	CmdConvert    = "convert"
	CmdLatest     = "latest"
	CmdPrice      = "p"
)

// Option names
const (
	OptUser    = "user"
	OptGroup   = "group"
	OptAmount  = "amount"
	OptFrom    = "from"
	OptTo      = "to"
	OptBase    = "base"
	OptSymbols = "symbols"
	OptTicker  = "ticker"
)

// TopLimit is the size of the /top10 list.
const TopLimit = 10

// Log messages
const (
	LogMsgBotReady          = "Discord bot is ready"
	LogMsgBotRunning        = "Discord bot is now running"
	LogMsgCommandPanic      = "Recovered from panic in command handler"
	LogMsgCommandFailed     = "Command failed"
	LogMsgTrackFailed       = "Failed to track Discord event"
	LogMsgSkipMessage       = "Skipping Discord message"
	LogMsgRespondFailed     = "Failed to send interaction response"
	LogMsgDeferFailed       = "Failed to send deferred response"
	LogMsgEditFailed        = "Failed to edit interaction response"
	LogMsgMentionFailed     = "Failed to send group mention"
	LogMsgPublishFailed     = "Failed to publish command event"
	LogMsgCheckingCommands  = "Checking Discord commands"
	LogMsgCommandsUnchanged = "Commands unchanged, skipping registration"
	LogMsgCommandsChanged   = "Commands changed, updating"
	LogMsgCommandsUpdated   = "Commands updated successfully"
	LogMsgForceUpdate       = "Force update enabled, replacing all commands"
)

// Error messages
const (
	ErrMsgCreateSession  = "error creating Discord session: %w"
	ErrMsgOpenSession    = "error opening connection: %w"
	ErrMsgFetchCommands  = "failed to fetch existing commands: %w"
	ErrMsgOverwrite      = "failed to update commands: %w"
	ErrMsgParseID        = "invalid snowflake %q: %w"
	ErrMsgNoAuthor       = "message has no author"
	ErrMsgNothingToTrack = "message carries nothing to track"
)
