package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/nano-forum/backend/internal/models"
	"github.com/anonto42/nano-forum/backend/internal/repositories"
	"github.com/anonto42/nano-forum/backend/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// manualClock only moves when told to.
type manualClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// tickingClock moves a minute forward on every read, so the default
// cooldown never triggers and timestamps are strictly increasing.
type tickingClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Minute)
	return c.t
}

type fixture struct {
	svc   *Service
	db    *gorm.DB
	store *repositories.Store
}

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := &tickingClock{t: epoch}
	return newFixtureWithClock(t, clock.Now)
}

func newFixtureWithClock(t *testing.T, now func() time.Time) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	store := repositories.NewStore(db)
	svc := New(store, Options{Now: now, Logger: quietLogger()})
	return &fixture{svc: svc, db: db, store: store}
}

// withStore builds a second Service over the fixture's database whose
// repositories are adjusted by opts.
func (f *fixture) withStore(opts ...repositories.StoreOption) *Service {
	return New(repositories.NewStore(f.db, opts...), Options{Now: f.svc.clock, Logger: quietLogger()})
}

func (f *fixture) register(t *testing.T, username string) Actor {
	t.Helper()
	u, err := f.svc.Register(context.Background(), username, "secret")
	require.NoError(t, err)
	return Actor{UserID: u.ID, Username: u.Username, SessionID: "sid-" + username}
}

func (f *fixture) post(t *testing.T, author Actor, title string) *models.Post {
	t.Helper()
	p, err := f.svc.CreatePost(context.Background(), author, title, "content of "+title)
	require.NoError(t, err)
	return p
}

func (f *fixture) comment(t *testing.T, author Actor, postID uint, content string, parentID *uint) *models.Comment {
	t.Helper()
	c, err := f.svc.CreateCommentWithNotifications(context.Background(), author, postID, content, parentID)
	require.NoError(t, err)
	return c
}

func (f *fixture) count(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func (f *fixture) unread(t *testing.T, a Actor) int64 {
	t.Helper()
	n, err := f.svc.UnreadCount(context.Background(), a)
	require.NoError(t, err)
	return n
}

func (f *fixture) notificationsOf(t *testing.T, a Actor) []models.Notification {
	t.Helper()
	list, err := f.svc.ListNotifications(context.Background(), a, MaxNotificationLimit)
	require.NoError(t, err)
	return list
}

func ptr(id uint) *uint { return &id }
