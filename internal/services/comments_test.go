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

func TestCreateComment_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	p1 := f.post(t, alice, "one")
	p2 := f.post(t, alice, "two")
	other := f.comment(t, bob, p2.ID, "on post two", nil)

	tests := []struct {
		name     string
		postID   uint
		content  string
		parentID *uint
		wantErr  error
	}{
		{name: "empty content", postID: p1.ID, content: "   ", wantErr: ErrValidation},
		{name: "too long", postID: p1.ID, content: strings.Repeat("a", maxCommentLen+1), wantErr: ErrValidation},
		{name: "unknown post", postID: 999, content: "hi", wantErr: ErrNotFound},
		{name: "parent from another post", postID: p1.ID, content: "hi", parentID: &other.ID, wantErr: ErrValidation},
		{name: "unknown parent", postID: p1.ID, content: "hi", parentID: ptr(999), wantErr: ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateCommentWithNotifications(ctx, bob, tt.postID, tt.content, tt.parentID)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}

	assert.EqualValues(t, 0, f.count(t, &models.Comment{}, "post_id = ?", p1.ID))
}

func TestCreateComment_TrimsAndStoresReply(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	p := f.post(t, alice, "Hello")
	parent := f.comment(t, bob, p.ID, "root", nil)

	reply := f.comment(t, alice, p.ID, "  nested  ", &parent.ID)

	stored, err := f.store.Comments.GetCommentByID(context.Background(), reply.ID)
	require.NoError(t, err)
	assert.Equal(t, "nested", stored.Content)
	assert.Equal(t, "alice", stored.Author)
	require.NotNil(t, stored.ParentID)
	assert.Equal(t, parent.ID, *stored.ParentID)
}

func TestCreateComment_Throttled(t *testing.T) {
	clock := &manualClock{t: epoch}
	f := newFixtureWithClock(t, clock.Now)
	ctx := context.Background()
	alice := f.register(t, "alice")
	clock.Advance(time.Minute)
	p := f.post(t, alice, "Hello")
	clock.Advance(time.Minute)

	_, err := f.svc.CreateCommentWithNotifications(ctx, alice, p.ID, "one", nil)
	require.NoError(t, err)
	_, err = f.svc.CreateCommentWithNotifications(ctx, alice, p.ID, "two", nil)
	assert.True(t, errors.Is(err, ErrThrottled))

	assert.EqualValues(t, 1, f.count(t, &models.Comment{}, "post_id = ?", p.ID))
}

// failingComments rejects every insert.
type failingComments struct {
	repositories.CommentRepository
}

func (failingComments) CreateComment(context.Context, *models.Comment) error {
	return errors.New("disk full")
}

func TestCreateComment_FailedInsertReturnsCooldown(t *testing.T) {
	clock := &manualClock{t: epoch}
	f := newFixtureWithClock(t, clock.Now)
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	p := f.post(t, alice, "Hello")

	broken := f.withStore(func(s *repositories.Store) {
		s.Comments = failingComments{CommentRepository: s.Comments}
	})
	broken.throttle = f.svc.throttle

	_, err := broken.CreateCommentWithNotifications(ctx, bob, p.ID, "lost", nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrThrottled))
	assert.EqualValues(t, 0, f.unread(t, alice))

	_, err = f.svc.CreateCommentWithNotifications(ctx, bob, p.ID, "retry", nil)
	require.NoError(t, err)
}
