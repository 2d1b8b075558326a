package service

import (
	"context"
	"errors"
	"strings"

	"spotlight/internal/middleware"
	"spotlight/internal/models"
	"spotlight/internal/repository"
	"spotlight/internal/storage"

	"gorm.io/gorm"
)

const maxCaptionLength = 2200

// PostService handles post creation, the feed, likes, and deletion.
type PostService struct {
	postRepo repository.PostRepository
	store    storage.ObjectStore
	db       *gorm.DB
}

// NewPostService creates a new post service
func NewPostService(postRepo repository.PostRepository, store storage.ObjectStore, db *gorm.DB) *PostService {
	return &PostService{
		postRepo: postRepo,
		store:    store,
		db:       db,
	}
}

// GenerateUploadURL hands the caller a short-lived presigned PUT target
// for their image. The object is written directly to storage; the post
// row is created afterwards via CreatePost.
func (s *PostService) GenerateUploadURL(ctx context.Context, userID uint, contentType string) (*storage.PresignedUpload, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, models.NewValidationError("content type must be an image")
	}
	upload, err := s.store.PresignUpload(ctx, userID, contentType)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return upload, nil
}

// CreatePostInput carries a new post. StorageKey must reference an
// object already uploaded through GenerateUploadURL.
type CreatePostInput struct {
	StorageKey string
	Caption    string
}

// CreatePost persists a post for an uploaded image and bumps the
// author's posts counter in the same transaction.
func (s *PostService) CreatePost(ctx context.Context, userID uint, input CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(input.StorageKey) == "" {
		return nil, models.NewValidationError("storage key is required")
	}
	if len(input.Caption) > maxCaptionLength {
		return nil, models.NewValidationError("caption is too long")
	}

	exists, err := s.store.Exists(ctx, input.StorageKey)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !exists {
		return nil, models.NewNotFoundError("Image", input.StorageKey)
	}

	post := &models.Post{
		UserID:     userID,
		ImageURL:   s.store.PublicURL(input.StorageKey),
		StorageKey: input.StorageKey,
		Caption:    input.Caption,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return models.NewInternalError(err)
		}
		return adjustCounter(tx, &models.User{}, userID, "posts", 1)
	})
	if err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, userID)
}

// GetFeedPosts returns every post newest first, annotated with the
// viewer's like and bookmark state.
func (s *PostService) GetFeedPosts(ctx context.Context, viewerID uint) ([]*models.Post, error) {
	return s.postRepo.ListFeed(ctx, viewerID)
}

// GetUserPosts returns one user's posts for a profile page.
func (s *PostService) GetUserPosts(ctx context.Context, userID, viewerID uint) ([]*models.Post, error) {
	return s.postRepo.ListByUser(ctx, userID, viewerID)
}

// ToggleLike flips the caller's like on a post. The post's likes
// counter moves with the row, and a fresh like on someone else's post
// fans out a notification; unliking does not retract it.
func (s *PostService) ToggleLike(ctx context.Context, callerID, postID uint) (bool, error) {
	var liked bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return models.NewInternalError(err)
		}

		var like models.Like
		err := tx.Where("user_id = ? AND post_id = ?", callerID, postID).First(&like).Error
		switch {
		case err == nil:
			if err := tx.Delete(&like).Error; err != nil {
				return models.NewInternalError(err)
			}
			if err := adjustCounter(tx, &models.Post{}, postID, "likes", -1); err != nil {
				return err
			}
			liked = false
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Like{UserID: callerID, PostID: postID}).Error; err != nil {
				return models.NewInternalError(err)
			}
			if err := adjustCounter(tx, &models.Post{}, postID, "likes", 1); err != nil {
				return err
			}
			if post.UserID != callerID {
				notification := &models.Notification{
					ReceiverID: post.UserID,
					SenderID:   callerID,
					Type:       models.NotificationTypeLike,
					PostID:     &post.ID,
				}
				if err := tx.Create(notification).Error; err != nil {
					return models.NewInternalError(err)
				}
				middleware.NotificationsFanned.WithLabelValues(string(models.NotificationTypeLike)).Inc()
			}
			liked = true
			return nil
		default:
			return models.NewInternalError(err)
		}
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

// DeletePost removes the caller's post together with every row that
// hangs off it: likes, comments, bookmarks, and the notifications it
// generated. Only the author may delete. The stored image is removed
// after the database transaction commits; a storage failure at that
// point is logged, not surfaced.
func (s *PostService) DeletePost(ctx context.Context, callerID, postID uint) error {
	var storageKey string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return models.NewInternalError(err)
		}
		if post.UserID != callerID {
			return models.NewForbiddenError("only the author can delete a post")
		}
		storageKey = post.StorageKey

		if err := tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Bookmark{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Notification{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&post).Error; err != nil {
			return models.NewInternalError(err)
		}
		return decrementFloored(tx, &models.User{}, callerID, "posts")
	})
	if err != nil {
		return err
	}

	if storageKey != "" {
		if err := s.store.Delete(ctx, storageKey); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to delete stored image",
				"storage_key", storageKey, "post_id", postID, "error", err)
		}
	}
	return nil
}
