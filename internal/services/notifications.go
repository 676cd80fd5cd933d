package services

import (
	"context"

	"github.com/anonto42/nano-forum/backend/internal/models"
)

const (
	DefaultNotificationLimit = 20
	MaxNotificationLimit     = 100
)

// ListNotifications returns the actor's newest notifications. A limit outside
// 1..MaxNotificationLimit falls back to DefaultNotificationLimit.
func (s *Service) ListNotifications(ctx context.Context, actor Actor, limit int) ([]models.Notification, error) {
	if limit < 1 || limit > MaxNotificationLimit {
		limit = DefaultNotificationLimit
	}
	notifications, err := s.store.Notifications.GetByRecipientID(ctx, actor.UserID, limit)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

func (s *Service) UnreadCount(ctx context.Context, actor Actor) (int64, error) {
	return s.store.Notifications.GetUnreadCount(ctx, actor.UserID)
}

// MarkNotificationRead flips one of the actor's notifications to read.
func (s *Service) MarkNotificationRead(ctx context.Context, actor Actor, notificationID uint) error {
	if err := s.store.Notifications.MarkAsRead(ctx, actor.UserID, notificationID); err != nil {
		return notFound(err, "notification", notificationID)
	}
	return nil
}

// MarkAllRead flips every unread notification of the actor and returns how
// many changed.
func (s *Service) MarkAllRead(ctx context.Context, actor Actor) (int64, error) {
	return s.store.Notifications.MarkAllAsRead(ctx, actor.UserID)
}
