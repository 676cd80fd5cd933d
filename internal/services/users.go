package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/anonto42/nano-forum/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxUsernameLen = 80
	// bcrypt ignores input past 72 bytes
	maxPasswordBytes = 72
)

// Register creates an account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, invalid("please fill in all fields")
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return nil, invalid("username must be at most %d characters", maxUsernameLen)
	}
	if len(password) > maxPasswordBytes {
		return nil, invalid("password must be at most %d bytes", maxPasswordBytes)
	}

	_, err := s.store.Users.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, invalid("user already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.store.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalid("user already exists")
		}
		return nil, err
	}

	s.logger.Info("User registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login checks the credentials and returns the matching user.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, invalid("please fill in all fields")
	}

	user, err := s.store.Users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// Profile returns the actor's account together with their unread
// notification count.
func (s *Service) Profile(ctx context.Context, actor Actor) (*models.User, int64, error) {
	user, err := s.store.Users.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return nil, 0, notFound(err, "user", actor.UserID)
	}
	unread, err := s.store.Notifications.GetUnreadCount(ctx, user.ID)
	if err != nil {
		return nil, 0, err
	}
	return user, unread, nil
}
