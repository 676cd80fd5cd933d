package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.svc.Register(ctx, "  alice ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.NotEqual(t, "secret", u.PasswordHash)

	_, err = f.svc.Register(ctx, "alice", "other")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "user already exists", err.Error())

	_, err = f.svc.Register(ctx, "", "secret")
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = f.svc.Register(ctx, strings.Repeat("u", maxUsernameLen+1), "secret")
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = f.svc.Register(ctx, "bob", strings.Repeat("p", maxPasswordBytes+1))
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	registered := f.register(t, "alice")

	u, err := f.svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, u.ID)

	_, err = f.svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.svc.Login(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.svc.Login(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	p := f.post(t, alice, "Hello")
	f.comment(t, bob, p.ID, "Hi", nil)

	user, unread, err := f.svc.Profile(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.EqualValues(t, 1, unread)

	_, _, err = f.svc.Profile(ctx, Actor{UserID: 999, Username: "ghost", SessionID: "sid-ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}
