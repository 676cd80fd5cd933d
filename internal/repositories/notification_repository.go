package repositories

import (
	"context"

	"github.com/anonto42/nano-forum/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetByRecipientID(ctx context.Context, recipientID uint, limit int) ([]models.Notification, error)
	GetUnreadCount(ctx context.Context, recipientID uint) (int64, error)
	MarkAsRead(ctx context.Context, recipientID, notificationID uint) error
	MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error)
	DeleteByPost(ctx context.Context, postID uint, commentIDs []uint) (int64, error)
}

type gormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) NotificationRepository {
	return &gormNotificationRepository{db: db}
}

func (r *gormNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *gormNotificationRepository) GetByRecipientID(ctx context.Context, recipientID uint, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).Where("user_id = ?", recipientID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *gormNotificationRepository) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", recipientID, false).Count(&count).Error
	return count, err
}

// MarkAsRead flips one notification of the recipient to read. Notifications
// of other users are reported as not found.
func (r *gormNotificationRepository) MarkAsRead(ctx context.Context, recipientID, notificationID uint) error {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, recipientID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

// DeleteByPost removes notifications that point at the post or at any of
// the given comments.
func (r *gormNotificationRepository) DeleteByPost(ctx context.Context, postID uint, commentIDs []uint) (int64, error) {
	q := r.db.WithContext(ctx).Where("post_id = ?", postID)
	if len(commentIDs) > 0 {
		q = q.Or("comment_id IN ?", commentIDs)
	}
	res := q.Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}
