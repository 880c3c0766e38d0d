package model

import "time"

// BannedView is a tombstone joined with the banner's username.
type BannedView struct {
	Banned
	BannerUsername string `json:"banner_username"`
}

// ReviewView is a review joined with its author and movie.
type ReviewView struct {
	ReviewID   uint      `json:"review_id"`
	UserID     uint      `json:"user_id"`
	MovieID    uint      `json:"movie_id"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"review_text"`
	CreatedAt  time.Time `json:"created_at"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	MovieTitle string    `json:"movie_title,omitempty"`
}

// Stats are the counters shown on the admin dashboard.
type Stats struct {
	ActiveUsers int64 `json:"active_users"`
	BannedUsers int64 `json:"banned_users"`
	Movies      int64 `json:"movies"`
	Awards      int64 `json:"awards"`
	Reviews     int64 `json:"reviews"`
	People      int64 `json:"people"`
}

// Activity kinds.
const (
	ActivityReview = "review"
	ActivityBan    = "ban"
	ActivityUnban  = "unban"
)

// Activity is one entry of a user's merged activity feed.
type Activity struct {
	Type       string    `json:"activity_type"`
	Date       time.Time `json:"activity_date"`
	TargetID   uint      `json:"target_id"`
	TargetName string    `json:"target_name"`
	Details    string    `json:"details"`
	Rating     int       `json:"rating,omitempty"`
}
