package model

import "time"

// Review is a user's rating of a movie. Reviews reference users loosely so
// they survive a ban and reappear after unban.
type Review struct {
	ReviewID   uint      `json:"review_id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	MovieID    uint      `json:"movie_id" gorm:"not null;index"`
	Rating     int       `json:"rating" gorm:"not null"`
	ReviewText string    `json:"review_text" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Movie *Movie `json:"-" gorm:"foreignKey:MovieID;references:MovieID;constraint:OnDelete:CASCADE"`
}

func (Review) TableName() string { return "reviews" }
