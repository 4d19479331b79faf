package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark-server/internal/auth"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
)

func newAuthService(t *testing.T, env *testEnv) (*AuthService, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService(testKey(t), time.Hour)
	require.NoError(t, err)
	return NewAuthService(env.store, env.reg, tokens, env.logger), tokens
}

func TestAuthService_Register(t *testing.T) {
	env := newTestEnv(t)
	svc, _ := newAuthService(t, env)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Username: "carol", Password: "a decent password"})
	require.NoError(t, err)
	assert.Equal(t, "carol", user.Username)
	assert.Equal(t, env.roleMember, user.RoleID)

	// The new user is visible through the cache.
	_, ok := env.reg.UserByUsername("carol")
	assert.True(t, ok)

	_, err = svc.Register(ctx, RegisterRequest{Username: "alice", Password: "a decent password"})
	assert.True(t, apperrors.Is(err, apperrors.ErrDuplicate))

	_, err = svc.Register(ctx, RegisterRequest{Username: "dj", Password: "short"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	svc, tokens := newAuthService(t, env)
	ctx := context.Background()

	resp, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "password-alice"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "alice", resp.User.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)

	claims, err := tokens.VerifyAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, env.alice, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "member", claims.Role)
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	svc, _ := newAuthService(t, env)
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "wrong"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))

	// Unknown usernames get the same error as wrong passwords.
	_, err = svc.Login(ctx, LoginRequest{Username: "nobody", Password: "whatever"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))
}
