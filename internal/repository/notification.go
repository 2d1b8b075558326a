package repository

import (
	"context"

	"spotlight/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification reads
type NotificationRepository interface {
	ListByReceiver(ctx context.Context, receiverID uint) ([]*models.Notification, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// ListByReceiver returns the user's notifications newest first, each
// with its sender summary and, where applicable, the post and comment
// it refers to.
func (r *notificationRepository) ListByReceiver(ctx context.Context, receiverID uint) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.WithContext(ctx).
		Preload("Sender", authorSummary).
		Preload("Post").
		Preload("Comment").
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return notifications, nil
}
