package domain

import "time"

// Message is a stored chat message, kept for summarization over recent history.
type Message struct {
	MessageID int64     `json:"message_id" bson:"message_id"`
	ChatID    int64     `json:"chat_id" bson:"chat_id"`
	UserID    int64     `json:"user_id" bson:"user_id"`
	Username  string    `json:"username,omitempty" bson:"username,omitempty"`
	Text      string    `json:"text" bson:"text"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
