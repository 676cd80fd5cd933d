// Package services holds the forum operations: accounts, posts, the comment
// tree, like toggling, notification fan-out and cascade deletion. Every
// operation receives the authenticated Actor explicitly.
package services

import (
	"log/slog"
	"time"

	"github.com/anonto42/nano-forum/backend/internal/repositories"
	"github.com/anonto42/nano-forum/backend/internal/throttle"
)

// Actor is the authenticated user on whose behalf an operation runs.
type Actor struct {
	UserID    uint
	Username  string
	SessionID string
}

// Options configures a Service. Zero values select defaults.
type Options struct {
	Throttle throttle.Throttle
	Now      func() time.Time
	Logger   *slog.Logger
}

type Service struct {
	store    *repositories.Store
	throttle throttle.Throttle
	clock    func() time.Time
	logger   *slog.Logger
}

// New creates a Service over store. Without an explicit throttle an
// in-memory one with the default cooldown is used.
func New(store *repositories.Store, opts Options) *Service {
	s := &Service{
		store:    store,
		throttle: opts.Throttle,
		clock:    opts.Now,
		logger:   opts.Logger,
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.throttle == nil {
		s.throttle = throttle.NewMemory(throttle.DefaultCooldown, s.clock)
	}
	return s
}

func (s *Service) now() time.Time {
	return s.clock().UTC()
}
