package service

import (
	"context"
	"errors"
	"strings"

	"spotlight/internal/middleware"
	"spotlight/internal/models"
	"spotlight/internal/repository"

	"gorm.io/gorm"
)

const maxCommentLength = 1000

// CommentService handles comments on posts.
type CommentService struct {
	commentRepo repository.CommentRepository
	db          *gorm.DB
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo repository.CommentRepository, db *gorm.DB) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		db:          db,
	}
}

// AddComment appends a comment to a post, bumps the post's comments
// counter in the same transaction, and notifies the post author unless
// they commented on their own post. The notification carries the new
// comment's id so clients can show its content.
func (s *CommentService) AddComment(ctx context.Context, callerID, postID uint, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("comment content is required")
	}
	if len(content) > maxCommentLength {
		return nil, models.NewValidationError("comment is too long")
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  callerID,
		Content: content,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return models.NewInternalError(err)
		}

		if err := tx.Create(comment).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := adjustCounter(tx, &models.Post{}, postID, "comments", 1); err != nil {
			return err
		}

		if post.UserID != callerID {
			notification := &models.Notification{
				ReceiverID: post.UserID,
				SenderID:   callerID,
				Type:       models.NotificationTypeComment,
				PostID:     &post.ID,
				CommentID:  &comment.ID,
			}
			if err := tx.Create(notification).Error; err != nil {
				return models.NewInternalError(err)
			}
			middleware.NotificationsFanned.WithLabelValues(string(models.NotificationTypeComment)).Inc()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// GetComments lists a post's comments oldest first.
func (s *CommentService) GetComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}
