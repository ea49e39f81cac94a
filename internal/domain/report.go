package domain

import "time"

// UserReport is the derived statistics for one user.
type UserReport struct {
	UserID                  int64     `json:"user_id"`
	DisplayName             string    `json:"display_name"`
	TextMessages            int64     `json:"text_messages"`
	TotalChars              int64     `json:"total_chars"`
	Stickers                int64     `json:"stickers"`
	Voices                  int64     `json:"voices"`
	ImagesPosted            int64     `json:"images_posted"`
	CommandsUsed            int64     `json:"commands_used"`
	JoinedDate              time.Time `json:"joined_date"`
	PercentageOfTotal       float64   `json:"percentage_of_total"`
	FavoriteDay             string    `json:"favorite_day,omitempty"`
	HighestPostingDate      string    `json:"highest_posting_date,omitempty"`
	HighestPostingDateCount int64     `json:"highest_posting_date_count"`
	HighestPostingWeek      string    `json:"highest_posting_week,omitempty"`
	HighestPostingWeekCount int64     `json:"highest_posting_week_count"`
	PopularityPosition      int64     `json:"popularity_position"`
}

// LeaderboardEntry is one row of the top senders list.
type LeaderboardEntry struct {
	UserID       int64  `json:"user_id"`
	DisplayName  string `json:"display_name"`
	TextMessages int64  `json:"text_messages"`
}

// PercentageOf returns 100*part/total, or 0 when total is 0.
func PercentageOf(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * float64(part) / float64(total)
}
