package models

import (
	"time"
)

// NotificationType enumerates the mutations that fan out a notification.
type NotificationType string

const (
	// NotificationTypeLike is sent when someone likes your post.
	NotificationTypeLike NotificationType = "like"
	// NotificationTypeComment is sent when someone comments on your post.
	NotificationTypeComment NotificationType = "comment"
	// NotificationTypeFollow is sent when someone follows you.
	NotificationTypeFollow NotificationType = "follow"
)

// Notification is a derived row written as a side effect of like,
// comment, and follow mutations. It is never created directly by a
// user action, and it is not retracted when the originating toggle is
// reversed.
type Notification struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	ReceiverID uint             `gorm:"not null;index" json:"receiver_id"`
	SenderID   uint             `gorm:"not null" json:"sender_id"`
	Sender     User             `gorm:"foreignKey:SenderID" json:"sender"`
	Type       NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	PostID     *uint            `gorm:"index" json:"post_id,omitempty"`
	Post       *Post            `gorm:"foreignKey:PostID" json:"post,omitempty"`
	CommentID  *uint            `json:"comment_id,omitempty"`
	Comment    *Comment         `gorm:"foreignKey:CommentID" json:"comment,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}
