// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a photo post. The Likes and Comments counters are
// denormalized and kept in step with the like/comment rows inside the
// same transaction that touches them.
type Post struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     uint   `gorm:"not null;index" json:"user_id"`
	User       User   `gorm:"foreignKey:UserID" json:"author"`
	ImageURL   string `gorm:"not null" json:"image_url"`
	StorageKey string `gorm:"not null" json:"-"`
	Caption    string `json:"caption"`
	Likes      int    `gorm:"not null;default:0" json:"likes"`
	Comments   int    `gorm:"not null;default:0" json:"comments"`

	// IsLiked and IsBookmarked are not persisted; they are annotated
	// per caller at query time.
	IsLiked      bool `gorm:"->;-:migration" json:"is_liked"`
	IsBookmarked bool `gorm:"->;-:migration" json:"is_bookmarked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
