package repositories

import (
	"context"

	"github.com/anonto42/nano-forum/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, postID, userID uint) error
	GetLike(ctx context.Context, postID, userID uint) (*models.Like, error)
	GetLikesCountByPostID(ctx context.Context, postID uint) (int64, error)
	LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
	DeleteLikesByPostID(ctx context.Context, postID uint) (int64, error)
}

// GormLikeRepository implements LikeRepository on top of gorm
type GormLikeRepository struct {
	db *gorm.DB
}

// NewGormLikeRepository creates a new GormLikeRepository
func NewGormLikeRepository(db *gorm.DB) *GormLikeRepository {
	return &GormLikeRepository{db: db}
}

// CreateLike inserts a like. A second like for the same (user, post) pair
// fails with gorm.ErrDuplicatedKey.
func (r *GormLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

// DeleteLike deletes the like of a user on a post
func (r *GormLikeRepository) DeleteLike(ctx context.Context, postID, userID uint) error {
	res := r.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetLike retrieves a specific like by postID and userID
func (r *GormLikeRepository) GetLike(ctx context.Context, postID, userID uint) (*models.Like, error) {
	var like models.Like
	if err := r.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

// GetLikesCountByPostID counts the like rows of a post
func (r *GormLikeRepository) GetLikesCountByPostID(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// LikedPostIDs reports which of the given posts the user has liked
func (r *GormLikeRepository) LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(postIDs))
	if len(postIDs) == 0 {
		return liked, nil
	}
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// DeleteLikesByPostID deletes every like of a post
func (r *GormLikeRepository) DeleteLikesByPostID(ctx context.Context, postID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Like{})
	return res.RowsAffected, res.Error
}
