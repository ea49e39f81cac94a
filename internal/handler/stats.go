package handler

import (
	"net/http"

	"github.com/osse101/ChatterBot_Go/internal/activity"
	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/stats"
)

// ActivityResponse lists per-date message counts for a user.
type ActivityResponse struct {
	UserID int64                   `json:"user_id"`
	Days   int                     `json:"days"`
	Daily  []domain.ActivityBucket `json:"daily"`
}

// HandleGetUserStats returns the derived report of one user
// @Summary Get user stats
// @Tags stats
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {object} domain.UserReport
// @Failure 404 {object} ErrorResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/stats/user [get]
func HandleGetUserStats(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetInt64QueryParam(r, w, "user_id")
		if !ok {
			return
		}

		report, err := svc.UserReport(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "user report", err)
			return
		}
		respondJSON(w, http.StatusOK, report)
	}
}

// HandleGetLeaderboard returns the top senders by text messages
// @Summary Get leaderboard
// @Tags stats
// @Produce json
// @Param limit query int false "Number of entries (default 10)"
// @Success 200 {array} domain.LeaderboardEntry
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/stats/leaderboard [get]
func HandleGetLeaderboard(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := GetOptionalIntQueryParam(r, w, "limit", stats.DefaultLeaderboardLimit)
		if !ok {
			return
		}

		entries, err := svc.Leaderboard(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, "leaderboard", err)
			return
		}
		if entries == nil {
			entries = []domain.LeaderboardEntry{}
		}
		respondJSON(w, http.StatusOK, entries)
	}
}

// HandleGetActivity returns a user's daily activity for the last days days
// @Summary Get daily activity
// @Tags stats
// @Produce json
// @Param user_id query int true "User ID"
// @Param days query int false "Number of days (default 7)"
// @Success 200 {object} ActivityResponse
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/stats/activity [get]
func HandleGetActivity(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetInt64QueryParam(r, w, "user_id")
		if !ok {
			return
		}
		days, ok := GetOptionalIntQueryParam(r, w, "days", DefaultActivityDays)
		if !ok {
			return
		}
		days = activity.WindowDays(days)

		daily, err := svc.DailyActivity(r.Context(), userID, days)
		if err != nil {
			respondServiceError(w, r, "daily activity", err)
			return
		}
		if daily == nil {
			daily = []domain.ActivityBucket{}
		}
		respondJSON(w, http.StatusOK, ActivityResponse{UserID: userID, Days: days, Daily: daily})
	}
}
