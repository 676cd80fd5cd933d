// Package throttle implements the per-session cooldown applied to write
// actions such as creating posts and comments.
//
// It is coarse spam mitigation: a client that opens a second session is not
// held back, so it must not be treated as a security control.
package throttle

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/anonto42/nano-forum/backend/internal/metrics"
)

// DefaultCooldown is the minimum interval between two write actions of a session.
const DefaultCooldown = 10 * time.Second

// ErrThrottled is matched with errors.Is when the cooldown is still active.
var ErrThrottled = errors.New("action throttled")

// ThrottledError carries how long the session still has to wait.
type ThrottledError struct {
	Remaining time.Duration
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("please wait %d seconds before the next action", e.Seconds())
}

func (e *ThrottledError) Unwrap() error { return ErrThrottled }

// Seconds is the remaining wait rounded up to whole seconds, at least 1.
func (e *ThrottledError) Seconds() int {
	s := int(math.Ceil(e.Remaining.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}

// Throttle gates write actions per session key.
type Throttle interface {
	// Allow records an action for key and returns nil, or returns a
	// *ThrottledError without recording when the cooldown is active.
	Allow(ctx context.Context, key string) error
	// Reset forgets the last action of key, so an action that failed after
	// Allow does not hold the session back.
	Reset(ctx context.Context, key string)
}

// pruneThreshold bounds how many sessions Memory tracks before it drops
// expired entries.
const pruneThreshold = 1024

// Memory keeps the last action time per key in process memory.
type Memory struct {
	mu       sync.Mutex
	cooldown time.Duration
	now      func() time.Time
	last     map[string]time.Time
}

// NewMemory creates an in-process throttle. A nil now uses time.Now.
func NewMemory(cooldown time.Duration, now func() time.Time) *Memory {
	if now == nil {
		now = time.Now
	}
	return &Memory{
		cooldown: cooldown,
		now:      now,
		last:     make(map[string]time.Time),
	}
}

func (m *Memory) Allow(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if last, ok := m.last[key]; ok {
		if elapsed := now.Sub(last); elapsed < m.cooldown {
			metrics.ThrottleRejections.Inc()
			return &ThrottledError{Remaining: m.cooldown - elapsed}
		}
	}
	m.last[key] = now

	if len(m.last) > pruneThreshold {
		for k, t := range m.last {
			if now.Sub(t) >= m.cooldown {
				delete(m.last, k)
			}
		}
	}
	return nil
}

func (m *Memory) Reset(_ context.Context, key string) {
	m.mu.Lock()
	delete(m.last, key)
	m.mu.Unlock()
}
