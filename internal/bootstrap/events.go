package bootstrap

import (
	"log/slog"

	"github.com/osse101/ChatterBot_Go/internal/event"
)

// InitializeEventSystem creates the in-process event bus and registers its subscribers.
func InitializeEventSystem() *event.MemoryBus {
	bus := event.NewMemoryBus()
	RegisterEventHandlers(bus)
	slog.Info(LogMsgEventSystemInitialized, "types", len(event.AllTypes))
	return bus
}
