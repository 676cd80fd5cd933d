package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/nano-forum/backend/internal/metrics"
	"github.com/anonto42/nano-forum/backend/internal/models"
	"github.com/anonto42/nano-forum/backend/internal/repositories"
	"gorm.io/gorm"
)

// LikeResult is the state of a post after a toggle.
type LikeResult struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}

// ToggleLike likes the post when the actor has not liked it yet and unlikes
// it otherwise. The post row is locked for the whole transaction, so toggles
// on one post run one after another and the counter recomputed from the like
// rows sees every committed like. A like row that appears or vanishes under
// the lookup anyway makes the call fail with ErrConflict instead of double
// counting.
// Only a new like notifies the post author, and never the actor themselves.
func (s *Service) ToggleLike(ctx context.Context, actor Actor, postID uint) (*LikeResult, error) {
	var (
		res  LikeResult
		post *models.Post
	)
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		p, err := tx.Posts.GetPostForUpdate(ctx, postID)
		if err != nil {
			return notFound(err, "post", postID)
		}
		post = p

		_, err = tx.Likes.GetLike(ctx, postID, actor.UserID)
		switch {
		case err == nil:
			if err := tx.Likes.DeleteLike(ctx, postID, actor.UserID); err != nil {
				return err
			}
			res.Liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			like := &models.Like{UserID: actor.UserID, PostID: postID, CreatedAt: s.now()}
			if err := tx.Likes.CreateLike(ctx, like); err != nil {
				return err
			}
			res.Liked = true
		default:
			return err
		}

		if err := tx.Posts.RecountLikes(ctx, postID); err != nil {
			return err
		}
		count, err := tx.Likes.GetLikesCountByPostID(ctx, postID)
		if err != nil {
			return err
		}
		res.Likes = int(count)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.LikeToggles.WithLabelValues("conflict").Inc()
			return nil, fmt.Errorf("like on post %d changed concurrently: %w", postID, ErrConflict)
		}
		return nil, err
	}

	if !res.Liked {
		metrics.LikeToggles.WithLabelValues("unliked").Inc()
		return &res, nil
	}

	metrics.LikeToggles.WithLabelValues("liked").Inc()
	if post.Author != actor.Username {
		s.notify(ctx, post.Author, &models.Notification{
			Type:     models.NotificationTypeLike,
			Message:  fmt.Sprintf("%s liked your post %q", actor.Username, post.Title),
			PostID:   post.ID,
			FromUser: actor.Username,
		})
	}
	return &res, nil
}
