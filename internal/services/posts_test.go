package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/anonto42/nano-forum/backend/internal/models"
	"github.com/anonto42/nano-forum/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost_Validation(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")

	tests := []struct {
		name, title, content string
	}{
		{"missing title", "", "body"},
		{"blank content", "title", "  \n "},
		{"title too long", strings.Repeat("t", maxTitleLen+1), "body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreatePost(context.Background(), alice, tt.title, tt.content)
			assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
		})
	}
	assert.EqualValues(t, 0, f.count(t, &models.Post{}, "author = ?", "alice"))
}

func TestCreatePost_Throttle(t *testing.T) {
	clock := &manualClock{t: epoch}
	f := newFixtureWithClock(t, clock.Now)
	ctx := context.Background()
	alice := f.register(t, "alice")

	_, err := f.svc.CreatePost(ctx, alice, "first", "body")
	require.NoError(t, err)

	clock.Advance(3 * time.Second)
	_, err = f.svc.CreatePost(ctx, alice, "second", "body")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrThrottled))
	assert.Contains(t, err.Error(), "7 seconds")

	// a different session of the same user is not affected
	other := alice
	other.SessionID = "sid-alice-2"
	_, err = f.svc.CreatePost(ctx, other, "from another tab", "body")
	require.NoError(t, err)

	clock.Advance(7 * time.Second)
	_, err = f.svc.CreatePost(ctx, alice, "second", "body")
	require.NoError(t, err)

	assert.EqualValues(t, 3, f.count(t, &models.Post{}, "author = ?", "alice"))
}

func TestCreatePost_InvalidInputDoesNotStartCooldown(t *testing.T) {
	clock := &manualClock{t: epoch}
	f := newFixtureWithClock(t, clock.Now)
	alice := f.register(t, "alice")

	_, err := f.svc.CreatePost(context.Background(), alice, "", "")
	require.Error(t, err)
	_, err = f.svc.CreatePost(context.Background(), alice, "ok", "body")
	require.NoError(t, err)
}

func TestListPosts_NewestFirstWithLikedFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	older := f.post(t, alice, "older")
	newer := f.post(t, alice, "newer")
	_, err := f.svc.ToggleLike(ctx, bob, older.ID)
	require.NoError(t, err)

	list, err := f.svc.ListPosts(ctx, bob)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.False(t, list[0].Liked)
	assert.Equal(t, older.ID, list[1].ID)
	assert.True(t, list[1].Liked)
	assert.Equal(t, 1, list[1].Likes)

	list, err = f.svc.ListPosts(ctx, alice)
	require.NoError(t, err)
	assert.False(t, list[1].Liked)
}

func TestGetPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	p := f.post(t, alice, "Hello")
	c := f.comment(t, bob, p.ID, "Hi", nil)
	f.comment(t, alice, p.ID, "Thanks", &c.ID)

	view, err := f.svc.GetPost(ctx, alice, p.ID)
	require.NoError(t, err)
	assert.True(t, view.CanDelete)
	assert.False(t, view.Liked)
	require.Len(t, view.Comments, 1)
	require.Len(t, view.Comments[0].Replies, 1)
	assert.Equal(t, "Thanks", view.Comments[0].Replies[0].Content)

	view, err = f.svc.GetPost(ctx, bob, p.ID)
	require.NoError(t, err)
	assert.False(t, view.CanDelete)

	_, err = f.svc.GetPost(ctx, bob, 999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeletePostCascade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	carol := f.register(t, "carol")

	doomed := f.post(t, alice, "doomed")
	kept := f.post(t, alice, "kept")

	hi := f.comment(t, bob, doomed.ID, "Hi", nil)
	f.comment(t, carol, doomed.ID, "Welcome", &hi.ID)
	_, err := f.svc.ToggleLike(ctx, bob, doomed.ID)
	require.NoError(t, err)
	_, err = f.svc.ToggleLike(ctx, carol, doomed.ID)
	require.NoError(t, err)

	f.comment(t, bob, kept.ID, "on the other post", nil)
	_, err = f.svc.ToggleLike(ctx, carol, kept.ID)
	require.NoError(t, err)
	keptNotifications := f.count(t, &models.Notification{}, "post_id = ?", kept.ID)
	require.EqualValues(t, 2, keptNotifications)

	require.NoError(t, f.svc.DeletePostCascade(ctx, alice, doomed.ID))

	assert.EqualValues(t, 0, f.count(t, &models.Post{}, "id = ?", doomed.ID))
	assert.EqualValues(t, 0, f.count(t, &models.Comment{}, "post_id = ?", doomed.ID))
	assert.EqualValues(t, 0, f.count(t, &models.Like{}, "post_id = ?", doomed.ID))
	assert.EqualValues(t, 0, f.count(t, &models.Notification{}, "post_id = ?", doomed.ID))
	assert.EqualValues(t, 0, f.count(t, &models.Notification{},
		"comment_id IS NOT NULL AND comment_id NOT IN (?)", f.db.Model(&models.Comment{}).Select("id")))

	assert.EqualValues(t, 1, f.count(t, &models.Comment{}, "post_id = ?", kept.ID))
	assert.EqualValues(t, 1, f.count(t, &models.Like{}, "post_id = ?", kept.ID))
	assert.Equal(t, keptNotifications, f.count(t, &models.Notification{}, "post_id = ?", kept.ID))

	_, err = f.svc.GetPost(ctx, alice, doomed.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeletePostCascade_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	p := f.post(t, alice, "Hello")
	f.comment(t, bob, p.ID, "Hi", nil)

	err := f.svc.DeletePostCascade(ctx, bob, p.ID)
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.EqualValues(t, 1, f.count(t, &models.Post{}, "id = ?", p.ID))
	assert.EqualValues(t, 1, f.count(t, &models.Comment{}, "post_id = ?", p.ID))

	err = f.svc.DeletePostCascade(ctx, alice, 999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

// failingPosts rejects every insert.
type failingPosts struct {
	repositories.PostRepository
}

func (failingPosts) CreatePost(context.Context, *models.Post) error {
	return errors.New("disk full")
}

func TestCreatePost_FailedInsertReturnsCooldown(t *testing.T) {
	clock := &manualClock{t: epoch}
	f := newFixtureWithClock(t, clock.Now)
	ctx := context.Background()
	alice := f.register(t, "alice")

	broken := f.withStore(func(s *repositories.Store) {
		s.Posts = failingPosts{PostRepository: s.Posts}
	})
	broken.throttle = f.svc.throttle

	_, err := broken.CreatePost(ctx, alice, "lost", "body")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrThrottled))

	_, err = f.svc.CreatePost(ctx, alice, "retry", "body")
	require.NoError(t, err)
}
