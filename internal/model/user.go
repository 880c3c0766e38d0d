package model

import "time"

// Roles a user can hold. Only regular and moderator move between each other.
const (
	RoleRegular   = "regular"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User is an account that can authenticate. A user id lives either here or
// in banned_users, never both.
type User struct {
	ID           uint      `json:"user_id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:100;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	JoinDate     time.Time `json:"join_date" gorm:"not null"`
	Role         string    `json:"role" gorm:"size:20;not null;index"`
	IsActive     bool      `json:"is_active" gorm:"not null;index"`
}

func (User) TableName() string { return "users" }

// IsStaff reports whether the user may use the moderation panel.
func (u *User) IsStaff() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}
