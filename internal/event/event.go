package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/ChatterBot_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Event types
const (
	MessageTracked     Type = "message.tracked"
	MessageDropped     Type = "message.dropped"
	GroupChanged       Type = "group.changed"
	CommandUsed        Type = "command.used"
	RetentionCompleted Type = "retention.completed"
)

// AllTypes lists every event type published by the application.
var AllTypes = []Type{MessageTracked, MessageDropped, GroupChanged, CommandUsed, RetentionCompleted}

// MessageTrackedPayloadV1 is published after an inbound event is fully recorded
type MessageTrackedPayloadV1 struct {
	UserID    int64            `json:"user_id"`
	ChatID    int64            `json:"chat_id"`
	EventType domain.EventType `json:"event_type"`
	Chars     int              `json:"chars"`
}

// MessageDroppedPayloadV1 is published when an inbound event is not recorded
type MessageDroppedPayloadV1 struct {
	UserID    int64            `json:"user_id"`
	EventType domain.EventType `json:"event_type"`
	Reason    string           `json:"reason"`
}

// GroupChangedPayloadV1 is published for every group registry operation
type GroupChangedPayloadV1 struct {
	Group   string              `json:"group"`
	UserID  int64               `json:"user_id,omitempty"`
	Outcome domain.GroupOutcome `json:"outcome"`
	Success bool                `json:"success"`
}

// CommandUsedPayloadV1 is published for every chat command handled
type CommandUsedPayloadV1 struct {
	UserID  int64  `json:"user_id"`
	Command string `json:"command"`
}

// RetentionCompletedPayloadV1 is published after a retention job runs
type RetentionCompletedPayloadV1 struct {
	Target  string    `json:"target"`
	Deleted int64     `json:"deleted"`
	Cutoff  time.Time `json:"cutoff"`
}

// New wraps payload in a versioned event.
func New(t Type, payload interface{}) Event {
	return Event{Version: EventSchemaVersion, Type: t, Payload: payload}
}

// NewMessageTrackedEvent creates a message.tracked event
func NewMessageTrackedEvent(e *domain.InboundEvent) Event {
	return New(MessageTracked, MessageTrackedPayloadV1{
		UserID:    e.UserID,
		ChatID:    e.ChatID,
		EventType: e.Type,
		Chars:     e.CharCount(),
	})
}

// NewMessageDroppedEvent creates a message.dropped event
func NewMessageDroppedEvent(e *domain.InboundEvent, reason string) Event {
	return New(MessageDropped, MessageDroppedPayloadV1{
		UserID:    e.UserID,
		EventType: e.Type,
		Reason:    reason,
	})
}

// NewGroupChangedEvent creates a group.changed event
func NewGroupChangedEvent(userID int64, res domain.GroupResult) Event {
	return New(GroupChanged, GroupChangedPayloadV1{
		Group:   res.Group,
		UserID:  userID,
		Outcome: res.Outcome,
		Success: res.Success,
	})
}

// NewCommandUsedEvent creates a command.used event
func NewCommandUsedEvent(userID int64, command string) Event {
	return New(CommandUsed, CommandUsedPayloadV1{UserID: userID, Command: command})
}

// NewRetentionCompletedEvent creates a retention.completed event
func NewRetentionCompletedEvent(target string, deleted int64, cutoff time.Time) Event {
	return New(RetentionCompleted, RetentionCompletedPayloadV1{Target: target, Deleted: deleted, Cutoff: cutoff})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is the publishing half of Bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher discards every event.
type NopPublisher struct{}

// Publish implements Publisher
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
