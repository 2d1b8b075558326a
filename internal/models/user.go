// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a user in the Spotlight application. Users are
// provisioned from Clerk webhook events and are never deleted.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ClerkID  string `gorm:"uniqueIndex;not null" json:"-"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Fullname string `gorm:"not null" json:"fullname"`
	Email    string `gorm:"not null" json:"email"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`

	// Denormalized counters, maintained transactionally alongside the
	// rows they count.
	Followers int `gorm:"not null;default:0" json:"followers"`
	Following int `gorm:"not null;default:0" json:"following"`
	Posts     int `gorm:"not null;default:0" json:"posts"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserSummary is the trimmed author/sender payload embedded in feed,
// comment, and notification responses.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname,omitempty"`
	Image    string `json:"image"`
}

// Summary returns the embeddable summary for u.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Fullname: u.Fullname,
		Image:    u.Image,
	}
}
