package repositories

import (
	"context"

	"github.com/anonto42/nano-forum/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetPostForUpdate(ctx context.Context, id uint) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	DeletePost(ctx context.Context, id uint) error
	RecountLikes(ctx context.Context, postID uint) error
}

// GormPostRepository implements PostRepository on top of gorm
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// CreatePost creates a new post
func (r *GormPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPostByID retrieves a post by ID
func (r *GormPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostForUpdate reads a post and locks its row until the surrounding
// transaction ends. SQLite has no row locks and ignores the clause; its
// single connection serializes writers instead.
func (r *GormPostRepository) GetPostForUpdate(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves every post, newest first
func (r *GormPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// DeletePost deletes a post by ID
func (r *GormPostRepository) DeletePost(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RecountLikes sets the denormalized like counter from the likes table. The
// caller must hold the post row lock (GetPostForUpdate) so the count sees
// every committed like.
func (r *GormPostRepository) RecountLikes(ctx context.Context, postID uint) error {
	count := r.db.Model(&models.Like{}).Select("COUNT(*)").Where("post_id = ?", postID)
	return r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", postID).
		Update("likes", count).Error
}
