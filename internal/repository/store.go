package repository

import "context"

// Store aggregates every persistence contract behind one backend.
type Store interface {
	Counters
	Activity
	Popularity
	Groups
	Messages

	// Ping checks connectivity to the backend.
	Ping(ctx context.Context) error

	// Close releases the backend's connections.
	Close(ctx context.Context) error
}
