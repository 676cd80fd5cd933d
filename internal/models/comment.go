package models

import "time"

// Comment on a post. ParentID is nil for top-level comments and otherwise
// points at a comment of the same post.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Author    string    `json:"author" gorm:"size:80;not null"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	ParentID  *uint     `json:"parent_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for creating a comment or a reply
type CreateCommentRequest struct {
	Content  string `json:"content" form:"content" validate:"required,max=5000"`
	ParentID *uint  `json:"parent_id,omitempty" form:"parent_id" validate:"omitempty,gt=0"`
}
