package models

import "time"

// Like represents a like on a post. Rows are hard-deleted so the unique
// index always reflects the live state.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_like_user_post"`
	PostID    uint      `json:"post_id" gorm:"not null;index;uniqueIndex:idx_like_user_post"`
	CreatedAt time.Time `json:"created_at"`
}
