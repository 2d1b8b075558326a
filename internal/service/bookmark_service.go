package service

import (
	"context"
	"errors"

	"spotlight/internal/models"
	"spotlight/internal/repository"

	"gorm.io/gorm"
)

// BookmarkService handles private bookmarks. Bookmarks move no
// counters and fan out no notifications.
type BookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
	db           *gorm.DB
}

// NewBookmarkService creates a new bookmark service
func NewBookmarkService(bookmarkRepo repository.BookmarkRepository, db *gorm.DB) *BookmarkService {
	return &BookmarkService{
		bookmarkRepo: bookmarkRepo,
		db:           db,
	}
}

// ToggleBookmark flips the caller's bookmark on a post.
func (s *BookmarkService) ToggleBookmark(ctx context.Context, callerID, postID uint) (bool, error) {
	var bookmarked bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return models.NewInternalError(err)
		}

		var bookmark models.Bookmark
		err := tx.Where("user_id = ? AND post_id = ?", callerID, postID).First(&bookmark).Error
		switch {
		case err == nil:
			if err := tx.Delete(&bookmark).Error; err != nil {
				return models.NewInternalError(err)
			}
			bookmarked = false
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Bookmark{UserID: callerID, PostID: postID}).Error; err != nil {
				return models.NewInternalError(err)
			}
			bookmarked = true
			return nil
		default:
			return models.NewInternalError(err)
		}
	})
	if err != nil {
		return false, err
	}
	return bookmarked, nil
}

// GetBookmarks lists the caller's bookmarked posts, most recently
// bookmarked first.
func (s *BookmarkService) GetBookmarks(ctx context.Context, callerID uint) ([]*models.Post, error) {
	return s.bookmarkRepo.ListPosts(ctx, callerID)
}
