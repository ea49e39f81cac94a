package handler

// Generic HTTP error messages for client responses.
// These do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidQueryParam     = "Invalid %s query parameter"
	ErrMsgInvalidPathParam      = "Invalid %s path parameter"

	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnavailableError   = "Storage is temporarily unavailable. Please try again later."
	ErrMsgUserNotFoundError  = "User not found"
	ErrMsgGroupNotFoundError = "Group not found"
	ErrMsgInvalidFieldError  = "Invalid counter field"
	ErrMsgInvalidNameError   = "Invalid group name. Use 3-32 letters, digits or underscores."
	ErrMsgConflictError      = "Group is busy, please retry"
	ErrMsgUnknownJobError    = "Unknown job"
	ErrMsgJobNotQueuedError  = "Job could not be queued, try again later"
)

// Success messages
const (
	MsgEventTracked = "Event tracked"
	MsgJobTriggered = "Job triggered"
)

// Log messages
const (
	LogMsgDecodeFailed   = "Failed to decode request"
	LogMsgServiceError   = "Service call failed"
	LogMsgReadinessFail  = "Readiness check failed"
	LogMsgEncodeFailed   = "Failed to encode JSON response"
	LogMsgWriteFailed    = "Failed to write response buffer"
	LogMsgMissingParam   = "Missing query parameter"
	LogMsgEventRejected  = "Inbound event rejected"
	LogMsgEventTracked   = "Inbound event tracked"
	LogMsgGroupOperation = "Group operation handled"
)

// Query parameter defaults and bounds
const (
	DefaultActivityDays = 7
	DefaultRecentHours  = 24
	MaxRecentHours      = 24 * 7
	DefaultRecentLimit  = 1000
)
