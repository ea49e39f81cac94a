package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/ChatterBot_Go/internal/event"
	"github.com/osse101/ChatterBot_Go/internal/logger"
	"github.com/osse101/ChatterBot_Go/internal/metrics"
)

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (for event-based metrics)
// - Event logger (group changes and retention runs at info level)
func RegisterEventHandlers(bus event.Bus) {
	metrics.NewEventMetricsCollector().Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	bus.Subscribe(event.GroupChanged, logGroupChanged)
	bus.Subscribe(event.RetentionCompleted, logRetentionCompleted)
	slog.Info(LogMsgEventLoggerRegistered)
}

func logGroupChanged(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.GroupChangedPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgGroupChanged,
		"group", p.Group, "user_id", p.UserID, "outcome", p.Outcome, "success", p.Success)
	return nil
}

func logRetentionCompleted(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.RetentionCompletedPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgRetentionEvent,
		"target", p.Target, "deleted", p.Deleted, "cutoff", p.Cutoff)
	return nil
}
