package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addressbook/internal/addressbook/adapters/session"
)

const prefix = "addressbook:revoked:"

func newStore(t *testing.T) (*miniredis.Miniredis, *session.RedisStore) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return srv, session.NewRedisStore(client, prefix).(*session.RedisStore)
}

func TestRedisStore_RevokeAndCheck(t *testing.T) {
	ctx := context.Background()
	srv, store := newStore(t)

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Minute))

	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.True(t, srv.Exists(prefix+"jti-1"))
	assert.Equal(t, time.Minute, srv.TTL(prefix+"jti-1"))

	other, err := store.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, other)
}

func TestRedisStore_ExpiresWithToken(t *testing.T) {
	ctx := context.Background()
	srv, store := newStore(t)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Minute))
	srv.FastForward(time.Minute + time.Second)

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisStore_EdgeCases(t *testing.T) {
	ctx := context.Background()
	srv, store := newStore(t)

	require.ErrorIs(t, store.Revoke(ctx, "", time.Minute), session.ErrEmptyTokenID)
	_, err := store.IsRevoked(ctx, "")
	require.ErrorIs(t, err, session.ErrEmptyTokenID)

	require.NoError(t, store.Revoke(ctx, "expired", 0))
	assert.False(t, srv.Exists(prefix+"expired"))
}

func TestRedisStore_ServerDown(t *testing.T) {
	ctx := context.Background()
	srv, store := newStore(t)
	srv.Close()

	require.Error(t, store.Revoke(ctx, "jti-1", time.Minute))
	_, err := store.IsRevoked(ctx, "jti-1")
	require.Error(t, err)
}
