package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the single profile record per account. Linked platform usernames are
// plain columns; an empty string means the platform is not linked.
type User struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Handle is the slugified public identifier used by portfolio links.
	Handle    string  `gorm:"uniqueIndex" json:"handle"`
	AvatarURL *string `json:"avatar_url,omitempty"`

	GitHub   string `gorm:"column:github" json:"github"`
	LinkedIn string `gorm:"column:linkedin" json:"linkedin"`

	LeetcodeUsername   string `json:"leetcode_username"`
	CodeforcesUsername string `json:"codeforces_username"`
	CodechefUsername   string `json:"codechef_username"`

	Timestamps
}

// Session is a bearer token issued at login and checked by the auth middleware.
type Session struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `json:"expires_at"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// HasLinkedPlatform reports whether at least one platform username is set.
func (u *User) HasLinkedPlatform() bool {
	return u.LeetcodeUsername != "" || u.CodeforcesUsername != "" || u.CodechefUsername != ""
}
