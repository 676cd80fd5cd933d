package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/anonto42/nano-forum/backend/internal/models"
	"gorm.io/gorm"
)

const maxCommentLen = 5000

// CreateCommentWithNotifications stores a comment or a reply and fans out
// notifications for it. A parent must be a comment of the same post.
func (s *Service) CreateCommentWithNotifications(ctx context.Context, actor Actor, postID uint, content string, parentID *uint) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("comment cannot be empty")
	}
	if utf8.RuneCountInString(content) > maxCommentLen {
		return nil, invalid("comment must be at most %d characters", maxCommentLen)
	}

	post, err := s.store.Posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, "post", postID)
	}

	var parent *models.Comment
	if parentID != nil {
		parent, err = s.store.Comments.GetCommentByID(ctx, *parentID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if parent == nil || parent.PostID != post.ID {
			return nil, invalid("parent comment does not belong to this post")
		}
	}

	if err := s.throttle.Allow(ctx, actor.SessionID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:   content,
		Author:    actor.Username,
		PostID:    post.ID,
		ParentID:  parentID,
		CreatedAt: s.now(),
	}
	if err := s.store.Comments.CreateComment(ctx, comment); err != nil {
		s.throttle.Reset(ctx, actor.SessionID)
		return nil, err
	}

	s.fanOutComment(ctx, actor, post, parent, comment)
	return comment, nil
}
