package dedupe

import "time"

// KeyPrefix namespaces dedupe keys in shared Redis instances.
const KeyPrefix = "chatterbot:seen:"

// Redis client limits. A dedupe check sits on the ingestion path, so an
// unreachable server must fail fast rather than retry with backoff.
const (
	RedisDialTimeout = 500 * time.Millisecond
	RedisIOTimeout   = 250 * time.Millisecond
	RedisMaxRetries  = 1
)

// Log messages
const (
	LogMsgRedisDedupeFailed = "Redis dedupe check failed, using in-process cache"
)

// Error messages
const (
	ErrMsgMarkSeen = "failed to mark event as seen: %w"
)
