// Package service contains the business logic of the application.
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

// UserService handles user accounts and the follow graph.
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	db         *gorm.DB
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository, db *gorm.DB) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
		db:         db,
	}
}

// CreateUserInput carries the identity fields received from the auth
// provider.
type CreateUserInput struct {
	ClerkID  string
	Username string
	Fullname string
	Email    string
	Image    string
	Bio      string
}

// CreateUser provisions a local account for a federated identity.
// Creating the same Clerk ID twice is a no-op.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) error {
	if strings.TrimSpace(input.ClerkID) == "" {
		return models.NewValidationError("clerk id is required")
	}
	if strings.TrimSpace(input.Username) == "" {
		return models.NewValidationError("username is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return models.NewValidationError("email is required")
	}

	user := &models.User{
		ClerkID:  input.ClerkID,
		Username: input.Username,
		Fullname: input.Fullname,
		Email:    input.Email,
		Image:    input.Image,
		Bio:      input.Bio,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to create user", "clerk_id", input.ClerkID, "error", err)
		return err
	}
	return nil
}

// GetUserByClerkID resolves the local account for an authenticated caller.
func (s *UserService) GetUserByClerkID(ctx context.Context, clerkID string) (*models.User, error) {
	return s.userRepo.GetByClerkID(ctx, clerkID)
}

// GetUserProfile returns a user's public profile.
func (s *UserService) GetUserProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfileInput carries the caller-editable profile fields. A nil
// Bio means "leave it unchanged".
type UpdateProfileInput struct {
	Fullname string
	Bio      *string
}

// UpdateProfile updates the caller's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	if strings.TrimSpace(input.Fullname) == "" {
		return nil, models.NewValidationError("fullname is required")
	}
	if err := s.userRepo.UpdateProfile(ctx, userID, input.Fullname, input.Bio); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// IsFollowing reports whether follower currently follows following.
func (s *UserService) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followingID)
}

// GetFollowing lists the users the given user follows.
func (s *UserService) GetFollowing(ctx context.Context, userID uint) ([]*models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowing(ctx, userID)
}

// ToggleFollow flips the follow edge from the caller to target. Both
// sides' counters move with the edge in the same transaction, and a
// fresh follow fans out a notification to the target. The reverse
// toggle does not retract it. Following yourself is not rejected; it
// produces a self-edge and a self-notification like any other.
func (s *UserService) ToggleFollow(ctx context.Context, callerID, targetID uint) (bool, error) {
	var following bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target models.User
		if err := tx.First(&target, targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", targetID)
			}
			return models.NewInternalError(err)
		}

		var edge models.Follow
		err := tx.Where("follower_id = ? AND following_id = ?", callerID, targetID).First(&edge).Error
		switch {
		case err == nil:
			if err := tx.Delete(&edge).Error; err != nil {
				return models.NewInternalError(err)
			}
			if err := adjustCounter(tx, &models.User{}, callerID, "following", -1); err != nil {
				return err
			}
			if err := adjustCounter(tx, &models.User{}, targetID, "followers", -1); err != nil {
				return err
			}
			following = false
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Follow{FollowerID: callerID, FollowingID: targetID}).Error; err != nil {
				return models.NewInternalError(err)
			}
			if err := adjustCounter(tx, &models.User{}, callerID, "following", 1); err != nil {
				return err
			}
			if err := adjustCounter(tx, &models.User{}, targetID, "followers", 1); err != nil {
				return err
			}
			notification := &models.Notification{
				ReceiverID: targetID,
				SenderID:   callerID,
				Type:       models.NotificationTypeFollow,
			}
			if err := tx.Create(notification).Error; err != nil {
				return models.NewInternalError(err)
			}
			middleware.NotificationsFanned.WithLabelValues(string(models.NotificationTypeFollow)).Inc()
			following = true
			return nil
		default:
			return models.NewInternalError(err)
		}
	})
	if err != nil {
		return false, err
	}
	return following, nil
}
