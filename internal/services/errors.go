package services

import (
	"errors"
	"fmt"

	"github.com/anonto42/nano-forum/backend/internal/throttle"
	"gorm.io/gorm"
)

var (
	// ErrNotFound means a referenced post, comment, notification or user is absent.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the actor may not act on the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation is wrapped by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrConflict means a concurrent write won a race; re-reading state and
	// retrying is safe.
	ErrConflict = errors.New("conflict")
	// ErrUnauthenticated means the supplied credentials did not match.
	ErrUnauthenticated = errors.New("invalid username or password")
	// ErrThrottled means the session cooldown is still active.
	ErrThrottled = throttle.ErrThrottled
)

// ValidationError carries a message that can be shown to the user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// notFound converts gorm's missing-record error into ErrNotFound and passes
// any other error through unchanged.
func notFound(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d %w", what, id, ErrNotFound)
	}
	return err
}
