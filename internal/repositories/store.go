package repositories

import (
	"context"

	"github.com/anonto42/nano-forum/backend/internal/models"
	"gorm.io/gorm"
)

// StoreOption adjusts the repositories of a Store. Options are applied again
// to every transaction-bound Store.
type StoreOption func(*Store)

// Store bundles the repositories that share one connection or transaction.
type Store struct {
	db            *gorm.DB
	opts          []StoreOption
	Users         UserRepository
	Posts         PostRepository
	Comments      CommentRepository
	Likes         LikeRepository
	Notifications NotificationRepository
}

// NewStore builds every repository on top of db
func NewStore(db *gorm.DB, opts ...StoreOption) *Store {
	s := &Store{
		db:            db,
		opts:          opts,
		Users:         NewGormUserRepository(db),
		Posts:         NewGormPostRepository(db),
		Comments:      NewGormCommentRepository(db),
		Likes:         NewGormLikeRepository(db),
		Notifications: NewGormNotificationRepository(db),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Transaction runs fn with a Store bound to a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx, s.opts...))
	})
}

// Migrate creates or updates the forum tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Notification{},
	)
}
