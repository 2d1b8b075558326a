package repository

import (
	"context"
	"errors"

	"spotlight/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error)
	ListFeed(ctx context.Context, viewerID uint) ([]*models.Post, error)
	ListByUser(ctx context.Context, userID uint, viewerID uint) ([]*models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// withViewerFlags annotates each row with whether the viewer has liked
// or bookmarked it, using correlated EXISTS subqueries so the feed stays
// a single round trip.
func withViewerFlags(db *gorm.DB, viewerID uint) *gorm.DB {
	return db.Select(
		"posts.*, "+
			"EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS is_liked, "+
			"EXISTS(SELECT 1 FROM bookmarks WHERE bookmarks.post_id = posts.id AND bookmarks.user_id = ?) AS is_bookmarked",
		viewerID, viewerID,
	)
}

func authorSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "fullname", "image")
}

func (r *postRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	var post models.Post
	err := withViewerFlags(r.db.WithContext(ctx), viewerID).
		Preload("User", authorSummary).
		First(&post, "posts.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// ListFeed returns every post, newest first, annotated for the viewer.
func (r *postRepository) ListFeed(ctx context.Context, viewerID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := withViewerFlags(r.db.WithContext(ctx), viewerID).
		Preload("User", authorSummary).
		Order("posts.created_at DESC, posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint, viewerID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := withViewerFlags(r.db.WithContext(ctx), viewerID).
		Preload("User", authorSummary).
		Where("posts.user_id = ?", userID).
		Order("posts.created_at DESC, posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}
