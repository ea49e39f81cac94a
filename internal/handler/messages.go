package handler

import (
	"net/http"
	"time"

	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/repository"
)

// RecentMessagesResponse carries a chat's recent message history
type RecentMessagesResponse struct {
	ChatID   int64            `json:"chat_id"`
	Since    time.Time        `json:"since"`
	Messages []domain.Message `json:"messages"`
}

// HandleRecentMessages returns up to 1000 messages of a chat from the last hours hours, oldest first
// @Summary Recent messages
// @Tags messages
// @Produce json
// @Param chat_id query int true "Chat ID"
// @Param hours query int false "Look-back window in hours (default 24, max 168)"
// @Success 200 {object} RecentMessagesResponse
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/messages/recent [get]
func HandleRecentMessages(repo repository.Messages, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chatID, ok := GetInt64QueryParam(r, w, "chat_id")
		if !ok {
			return
		}
		hours, ok := GetOptionalIntQueryParam(r, w, "hours", DefaultRecentHours)
		if !ok {
			return
		}
		if hours == 0 || hours > MaxRecentHours {
			hours = DefaultRecentHours
		}

		since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)

		ctx, cancel := repository.WithTimeout(r.Context(), timeout)
		defer cancel()

		msgs, err := repo.RecentMessages(ctx, chatID, since, DefaultRecentLimit)
		if err != nil {
			respondServiceError(w, r, "recent messages", err)
			return
		}
		if msgs == nil {
			msgs = []domain.Message{}
		}
		respondJSON(w, http.StatusOK, RecentMessagesResponse{ChatID: chatID, Since: since, Messages: msgs})
	}
}
