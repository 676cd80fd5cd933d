package models

import "time"

type NotificationType string

const (
	NotificationTypeComment NotificationType = "comment"
	NotificationTypeReply   NotificationType = "reply"
	NotificationTypeLike    NotificationType = "like"
)

// Notification represents a user notification
type Notification struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	UserID    uint             `json:"user_id" gorm:"not null;index"` // recipient
	Type      NotificationType `json:"type" gorm:"size:20;not null"`
	Message   string           `json:"message" gorm:"type:text"`
	PostID    uint             `json:"post_id" gorm:"not null;index"`
	CommentID *uint            `json:"comment_id" gorm:"index"`
	FromUser  string           `json:"from_user" gorm:"size:80"`
	IsRead    bool             `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time        `json:"created_at" gorm:"index"`
}
