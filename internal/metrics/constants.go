package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Chat metric names
const (
	MetricNameMessagesTracked  = "chat_messages_tracked_total"
	MetricNameMessagesDropped  = "chat_messages_dropped_total"
	MetricNameCharsTracked     = "chat_chars_tracked_total"
	MetricNameGroupOperations  = "group_operations_total"
	MetricNameCommandsUsed     = "chat_commands_used_total"
	MetricNameRetentionDeleted = "retention_deleted_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Chat metric help text
const (
	HelpTextMessagesTracked  = "Total number of inbound chat events recorded"
	HelpTextMessagesDropped  = "Total number of inbound chat events dropped"
	HelpTextCharsTracked     = "Total number of text characters recorded"
	HelpTextGroupOperations  = "Total number of group registry operations"
	HelpTextCommandsUsed     = "Total number of chat commands handled"
	HelpTextRetentionDeleted = "Total number of records removed by retention jobs"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelReason  = "reason"
	LabelOutcome = "outcome"
	LabelCommand = "command"
	LabelTarget  = "target"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected shape"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
