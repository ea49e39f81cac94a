package metrics

import (
	"context"

	"github.com/osse101/ChatterBot_Go/internal/event"
	"github.com/osse101/ChatterBot_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics. Malformed payloads are counted, never returned.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	if err := record(evt); err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func record(evt event.Event) error {
	switch evt.Type {
	case event.MessageTracked:
		p, err := event.DecodePayload[event.MessageTrackedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		MessagesTracked.WithLabelValues(string(p.EventType)).Inc()
		CharsTracked.Add(float64(p.Chars))

	case event.MessageDropped:
		p, err := event.DecodePayload[event.MessageDroppedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		MessagesDropped.WithLabelValues(string(p.EventType), p.Reason).Inc()

	case event.GroupChanged:
		p, err := event.DecodePayload[event.GroupChangedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		GroupOperations.WithLabelValues(string(p.Outcome)).Inc()

	case event.CommandUsed:
		p, err := event.DecodePayload[event.CommandUsedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		CommandsUsed.WithLabelValues(p.Command).Inc()

	case event.RetentionCompleted:
		p, err := event.DecodePayload[event.RetentionCompletedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		RetentionDeleted.WithLabelValues(p.Target).Add(float64(p.Deleted))
	}
	return nil
}
