package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is a registered forum account.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:80;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:200;not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// CredentialsRequest is the body of both the register and the login calls.
type CredentialsRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=1,max=80"`
	Password string `json:"password" form:"password" validate:"required,min=1,max=72"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims.
// SessionID identifies one login and keys the write-action cooldown.
type JwtCustomClaims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}
