package model

import "time"

// Unbanned is an append-only history row written on every unban.
type Unbanned struct {
	UnbannedID uint      `json:"unbanned_id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	Username   string    `json:"username" gorm:"size:100;not null"`
	Email      string    `json:"email" gorm:"size:255;not null"`
	Role       string    `json:"role" gorm:"size:20;not null"`
	BanReason  string    `json:"ban_reason" gorm:"type:text;not null"`
	BannerID   uint      `json:"banner_id" gorm:"not null"`
	BanDate    time.Time `json:"ban_date" gorm:"not null"`
	UnbannerID uint      `json:"unbanner_id" gorm:"not null;index"`
	UnbanDate  time.Time `json:"unban_date" gorm:"not null"`
}

func (Unbanned) TableName() string { return "unbanned_users" }

// NewUnbanned records that b was lifted by unbannerID at the given time.
func NewUnbanned(b *Banned, unbannerID uint, at time.Time) *Unbanned {
	return &Unbanned{
		UserID:     b.UserID,
		Username:   b.Username,
		Email:      b.Email,
		Role:       b.Role,
		BanReason:  b.BanReason,
		BannerID:   b.BannerID,
		BanDate:    b.BanDate,
		UnbannerID: unbannerID,
		UnbanDate:  at,
	}
}

// LiftedBan rebuilds the ban this row lifted. The password hash and join
// date are not kept in the history.
func (u *Unbanned) LiftedBan() Banned {
	return Banned{
		UserID:    u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		BanReason: u.BanReason,
		BannerID:  u.BannerID,
		BanDate:   u.BanDate,
	}
}
