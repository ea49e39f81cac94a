package mongo

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/event"

	"github.com/osse101/ChatterBot_Go/internal/logger"
)

// newCommandMonitor logs command latency through the request-scoped logger.
// Successful commands are logged at debug; slow ones at warn.
func newCommandMonitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: func(ctx context.Context, evt *event.CommandSucceededEvent) {
			attrs := []any{
				slog.String("command", evt.CommandName),
				slog.Duration("latency", evt.Duration),
				slog.Int64("mongo_request_id", evt.RequestID),
			}
			if evt.Duration > SlowQueryThreshold {
				logger.FromContext(ctx).Warn(LogMsgSlowCommand, attrs...)
				return
			}
			logger.FromContext(ctx).Debug(LogMsgCommandOK, attrs...)
		},
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			failure := evt.Failure
			if len(failure) > maxCommandLogBytes {
				failure = failure[:maxCommandLogBytes] + "...[truncated]"
			}
			logger.FromContext(ctx).Error(LogMsgCommandFailed,
				slog.String("command", evt.CommandName),
				slog.Duration("latency", evt.Duration),
				slog.String("error", failure),
			)
		},
	}
}
