package repositories

import (
	"context"

	"github.com/anonto42/nano-forum/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID uint) ([]models.Comment, error)
	GetCommentIDsByPostID(ctx context.Context, postID uint) ([]uint, error)
	DeleteCommentsByPostID(ctx context.Context, postID uint) (int64, error)
}

// GormCommentRepository implements CommentRepository on top of gorm
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// CreateComment creates a new comment
func (r *GormCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetCommentByID retrieves a comment by ID
func (r *GormCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves every comment of a post, replies included,
// oldest first.
func (r *GormCommentRepository) GetCommentsByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).Where("post_id = ?", postID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCommentIDsByPostID returns the ids of every comment of a post
func (r *GormCommentRepository) GetCommentIDsByPostID(ctx context.Context, postID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("post_id = ?", postID).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteCommentsByPostID deletes every comment of a post. Replies carry the
// same post_id as their parent, so whole subtrees go at once.
func (r *GormCommentRepository) DeleteCommentsByPostID(ctx context.Context, postID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Comment{})
	return res.RowsAffected, res.Error
}
