package models

import "time"

// Post is a forum thread. Author holds the username, not a relation.
// Likes mirrors the number of Like rows for the post.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:200;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Author    string    `json:"author" gorm:"size:80;not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	Likes     int       `json:"likes" gorm:"not null;default:0"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title   string `json:"title" form:"title" validate:"required,max=200"`
	Content string `json:"content" form:"content" validate:"required,max=20000"`
}
