package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/ChatterBot_Go/internal/domain"
)

// StoreMessage archives one chat message
func (s *Store) StoreMessage(ctx context.Context, msg domain.Message) error {
	var username *string
	if msg.Username != "" {
		username = &msg.Username
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO chat_messages (message_id, chat_id, user_id, username, text, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		msg.MessageID, msg.ChatID, msg.UserID, username, msg.Text, msg.Timestamp)
	return domain.StoreError(OpStoreMessage, err)
}

// RecentMessages returns the newest messages of a chat in chronological order
func (s *Store) RecentMessages(ctx context.Context, chatID int64, since time.Time, limit int) ([]domain.Message, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT message_id, chat_id, user_id, username, text, timestamp FROM (
			SELECT id, message_id, chat_id, user_id, username, text, timestamp
			FROM chat_messages
			WHERE chat_id = $1 AND timestamp >= $2
			ORDER BY timestamp DESC, id DESC
			LIMIT $3
		) recent
		ORDER BY timestamp ASC, id ASC`, chatID, since, limit)
	if err != nil {
		return nil, domain.StoreError(OpRecentMessages, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Message, error) {
		var (
			m        domain.Message
			username *string
		)
		err := row.Scan(&m.MessageID, &m.ChatID, &m.UserID, &username, &m.Text, &m.Timestamp)
		m.Username = deref(username)
		return m, err
	})
	if err != nil {
		return nil, domain.StoreError(OpRecentMessages, err)
	}
	return out, nil
}

// DeleteMessagesBefore removes messages older than the cutoff
func (s *Store) DeleteMessagesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM chat_messages WHERE timestamp < $1`, cutoff)
	if err != nil {
		return 0, domain.StoreError(OpDeleteMessages, err)
	}
	return tag.RowsAffected(), nil
}
