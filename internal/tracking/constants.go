package tracking

// DedupePlatform namespaces dedupe keys for inbound events.
const DedupePlatform = "chat"

// Log messages
const (
	LogMsgInvalidEvent   = "Dropping invalid inbound event"
	LogMsgDuplicateEvent = "Dropping duplicate inbound event"
	LogMsgStoreDown      = "Store unavailable, dropping inbound event"
	LogMsgTrackFailed    = "Failed to record inbound event"
	LogMsgReplyFailed    = "Failed to credit reply"
	LogMsgMessageFailed  = "Failed to archive message"
	LogMsgTracked        = "Inbound event recorded"
	LogMsgPublishFailed  = "Failed to publish tracking event"
)

// Error messages
const (
	ErrMsgInvalidEvent = "invalid inbound event: %w"
)
