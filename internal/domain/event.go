package domain

import (
	"time"
	"unicode/utf8"
)

// EventType classifies an inbound chat event.
type EventType string

const (
	EventText    EventType = "text"
	EventSticker EventType = "sticker"
	EventVoice   EventType = "voice"
	EventPhoto   EventType = "photo"
	EventReply   EventType = "reply"
	EventCommand EventType = "command"
)

// InboundEvent is the platform-neutral shape of a chat event.
type InboundEvent struct {
	MessageID         int64     `json:"message_id"`
	UserID            int64     `json:"user_id" validate:"required,gt=0"`
	ChatID            int64     `json:"chat_id"`
	Type              EventType `json:"event_type" validate:"required,oneof=text sticker voice photo reply command"`
	Text              string    `json:"text,omitempty" validate:"max=4096"`
	TextLength        int       `json:"text_length,omitempty" validate:"gte=0"`
	ReplyTargetUserID int64     `json:"reply_target_user_id,omitempty" validate:"gte=0"`
	Username          string    `json:"username,omitempty" validate:"max=64"`
	FirstName         string    `json:"first_name,omitempty" validate:"max=64"`
	LastName          string    `json:"last_name,omitempty" validate:"max=64"`
	Timestamp         time.Time `json:"timestamp"`
}

// IsText reports whether the event carries message text.
func (e *InboundEvent) IsText() bool {
	return e.Type == EventText || e.Type == EventReply
}

// CharCount returns the explicit text length or the rune count of Text.
func (e *InboundEvent) CharCount() int {
	if e.TextLength > 0 {
		return e.TextLength
	}
	return utf8.RuneCountInString(e.Text)
}

// CreditsReply reports whether the event credits the replied-to user's
// popularity. Replies to one's own message count too.
func (e *InboundEvent) CreditsReply() bool {
	return e.ReplyTargetUserID > 0
}
