package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/ChatterBot_Go/internal/repository"
	"github.com/osse101/ChatterBot_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown. The
// Discord bot closes its own session when its run context ends. Jobs may be nil.
type ShutdownComponents struct {
	Server      *server.Server
	Jobs        *Jobs
	Store       repository.Store
	CloseDedupe func()
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in this order:
// 1. HTTP server (stop accepting new requests)
// 2. Background jobs (finish in-flight retention runs)
// 3. Dedupe client and store (release connections last)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)
	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Jobs != nil {
		slog.Info(LogMsgShuttingDownJobs)
		c.Jobs.Stop()
	}

	if c.CloseDedupe != nil {
		c.CloseDedupe()
	}

	if c.Store != nil {
		if err := c.Store.Close(ctx); err != nil {
			slog.Error(LogMsgStoreCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
