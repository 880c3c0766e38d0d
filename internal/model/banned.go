package model

import "time"

// Banned is the tombstone of a banned user. It keeps everything needed to
// restore the account on unban.
type Banned struct {
	BannedID     uint      `json:"banned_id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Username     string    `json:"username" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	JoinDate     time.Time `json:"join_date" gorm:"not null"`
	Role         string    `json:"role" gorm:"size:20;not null"`
	BanReason    string    `json:"ban_reason" gorm:"type:text;not null"`
	BannerID     uint      `json:"banner_id" gorm:"not null;index"`
	BanDate      time.Time `json:"ban_date" gorm:"not null"`
}

func (Banned) TableName() string { return "banned_users" }

// NewBanned snapshots u into a tombstone.
func NewBanned(u *User, reason string, bannerID uint, at time.Time) *Banned {
	return &Banned{
		UserID:       u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		JoinDate:     u.JoinDate,
		Role:         u.Role,
		BanReason:    reason,
		BannerID:     bannerID,
		BanDate:      at,
	}
}

// Restore rebuilds the user row. The account stays inactive until the next
// login.
func (b *Banned) Restore() *User {
	return &User{
		ID:           b.UserID,
		Username:     b.Username,
		Email:        b.Email,
		PasswordHash: b.PasswordHash,
		JoinDate:     b.JoinDate,
		Role:         b.Role,
		IsActive:     false,
	}
}
