package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/anonto42/nano-forum/backend/internal/metrics"
	"github.com/anonto42/nano-forum/backend/internal/models"
	"github.com/anonto42/nano-forum/backend/internal/repositories"
)

const maxTitleLen = 200

// PostSummary is a post as listed on the front page.
type PostSummary struct {
	models.Post
	Liked bool `json:"liked"`
}

// PostView is a single post with everything needed to display it.
type PostView struct {
	Post      models.Post    `json:"post"`
	Liked     bool           `json:"liked"`
	CanDelete bool           `json:"can_delete"`
	Comments  []*CommentNode `json:"comments"`
}

// CreatePost publishes a post authored by the actor. It is subject to the
// session cooldown; a failed insert gives the cooldown back.
func (s *Service) CreatePost(ctx context.Context, actor Actor, title, content string) (*models.Post, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, invalid("please fill in all fields")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return nil, invalid("title must be at most %d characters", maxTitleLen)
	}

	if err := s.throttle.Allow(ctx, actor.SessionID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:     title,
		Content:   content,
		Author:    actor.Username,
		CreatedAt: s.now(),
	}
	if err := s.store.Posts.CreatePost(ctx, post); err != nil {
		s.throttle.Reset(ctx, actor.SessionID)
		return nil, err
	}

	s.logger.Info("Post created", "post_id", post.ID, "author", post.Author)
	return post, nil
}

// ListPosts returns every post, newest first, flagged with whether the actor
// liked it.
func (s *Service) ListPosts(ctx context.Context, actor Actor) ([]PostSummary, error) {
	posts, err := s.store.Posts.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	liked, err := s.store.Likes.LikedPostIDs(ctx, actor.UserID, ids)
	if err != nil {
		return nil, err
	}

	out := make([]PostSummary, len(posts))
	for i, p := range posts {
		out[i] = PostSummary{Post: p, Liked: liked[p.ID]}
	}
	return out, nil
}

// GetPost returns a post with its comment tree.
func (s *Service) GetPost(ctx context.Context, actor Actor, postID uint) (*PostView, error) {
	post, err := s.store.Posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, "post", postID)
	}
	liked, err := s.store.Likes.LikedPostIDs(ctx, actor.UserID, []uint{post.ID})
	if err != nil {
		return nil, err
	}
	comments, err := s.store.Comments.GetCommentsByPostID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	return &PostView{
		Post:      *post,
		Liked:     liked[post.ID],
		CanDelete: post.Author == actor.Username,
		Comments:  BuildTree(comments),
	}, nil
}

// DeletePostCascade deletes a post of the actor together with its likes,
// comments and every notification pointing at the post or its comments. All
// rows go in one transaction.
func (s *Service) DeletePostCascade(ctx context.Context, actor Actor, postID uint) error {
	var likes, comments, notifications int64
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		post, err := tx.Posts.GetPostByID(ctx, postID)
		if err != nil {
			return notFound(err, "post", postID)
		}
		if post.Author != actor.Username {
			return fmt.Errorf("%w: only the author can delete this post", ErrForbidden)
		}

		commentIDs, err := tx.Comments.GetCommentIDsByPostID(ctx, postID)
		if err != nil {
			return err
		}
		if likes, err = tx.Likes.DeleteLikesByPostID(ctx, postID); err != nil {
			return err
		}
		if notifications, err = tx.Notifications.DeleteByPost(ctx, postID, commentIDs); err != nil {
			return err
		}
		if comments, err = tx.Comments.DeleteCommentsByPostID(ctx, postID); err != nil {
			return err
		}
		if err := tx.Posts.DeletePost(ctx, postID); err != nil {
			return notFound(err, "post", postID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.PostsDeleted.Inc()
	metrics.CascadeRowsDeleted.WithLabelValues("likes").Add(float64(likes))
	metrics.CascadeRowsDeleted.WithLabelValues("comments").Add(float64(comments))
	metrics.CascadeRowsDeleted.WithLabelValues("notifications").Add(float64(notifications))
	s.logger.Info("Post deleted", "post_id", postID, "author", actor.Username,
		"likes", likes, "comments", comments, "notifications", notifications)
	return nil
}
