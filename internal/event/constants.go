package event

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Log message constants
const (
	// Log message for handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// Drop reasons carried by MessageDroppedPayloadV1
const (
	DropReasonStoreUnavailable = "store_unavailable"
	DropReasonInvalid          = "invalid"
	DropReasonDuplicate        = "duplicate"
)
