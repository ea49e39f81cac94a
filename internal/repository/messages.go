package repository

import (
	"context"
	"time"

	"github.com/osse101/ChatterBot_Go/internal/domain"
)

// Messages defines the interface for the chat message archive
type Messages interface {
	StoreMessage(ctx context.Context, msg domain.Message) error

	// RecentMessages returns up to limit messages of chatID at or after since, oldest first.
	RecentMessages(ctx context.Context, chatID int64, since time.Time, limit int) ([]domain.Message, error)

	// DeleteMessagesBefore removes messages older than cutoff and returns the number removed.
	DeleteMessagesBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
