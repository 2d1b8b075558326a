package models

import (
	"time"
)

// Follow is a directed edge: FollowerID follows FollowingID. The
// composite unique index guarantees at most one edge per ordered pair.
// Self-follow is not rejected here; the upstream client never offers
// it, and the toggle logic deliberately mirrors that behavior.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follows_pair;index" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follows_pair;index" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}
