package repository

import (
	"context"

	"spotlight/internal/models"

	"gorm.io/gorm"
)

// BookmarkRepository defines the interface for bookmark data operations
type BookmarkRepository interface {
	ListPosts(ctx context.Context, userID uint) ([]*models.Post, error)
}

type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository creates a new bookmark repository
func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// ListPosts returns the posts the user has bookmarked, most recently
// bookmarked first. IsBookmarked is trivially true for every row here,
// IsLiked still reflects the viewer.
func (r *bookmarkRepository) ListPosts(ctx context.Context, userID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := withViewerFlags(r.db.WithContext(ctx), userID).
		Preload("User", authorSummary).
		Joins("JOIN bookmarks ON bookmarks.post_id = posts.id").
		Where("bookmarks.user_id = ?", userID).
		Order("bookmarks.created_at DESC, bookmarks.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}
