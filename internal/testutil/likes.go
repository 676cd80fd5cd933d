package testutil

import (
	"context"
	"errors"
	"time"

	"github.com/anonto42/nano-forum/backend/internal/models"
	"github.com/anonto42/nano-forum/backend/internal/repositories"
	"gorm.io/gorm"
)

// racingLikes lets a competing writer change the like of one user right
// after it was looked up: a missing like is inserted and an existing one is
// deleted before the caller acts on what GetLike returned.
type racingLikes struct {
	repositories.LikeRepository
	userID uint
}

func (r *racingLikes) GetLike(ctx context.Context, postID, userID uint) (*models.Like, error) {
	like, err := r.LikeRepository.GetLike(ctx, postID, userID)
	if userID != r.userID {
		return like, err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		competing := &models.Like{UserID: userID, PostID: postID, CreatedAt: time.Now().UTC()}
		if cerr := r.LikeRepository.CreateLike(ctx, competing); cerr != nil {
			return nil, cerr
		}
	case err == nil:
		if derr := r.LikeRepository.DeleteLike(ctx, postID, userID); derr != nil {
			return nil, derr
		}
	}
	return like, err
}

// LikeRace makes every like toggle of userID lose a race against a writer
// that flips the same like between the lookup and the write.
func LikeRace(userID uint) repositories.StoreOption {
	return func(s *repositories.Store) {
		s.Likes = &racingLikes{LikeRepository: s.Likes, userID: userID}
	}
}
