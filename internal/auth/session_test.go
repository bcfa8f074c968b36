package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expensedesk/reimbursement-service/internal/domain"
)

func newTestStore(t *testing.T, ttl time.Duration) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSessionStore(client, ttl), mr
}

func TestRedisSessionStoreCreateAndGet(t *testing.T) {
	store, mr := newTestStore(t, 30*time.Minute)
	ctx := context.Background()
	principal := domain.Principal{ID: 1, Username: "admin", RoleID: domain.RoleAdmin}

	session, err := store.Create(ctx, principal)
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)
	assert.Equal(t, 30*time.Minute, session.ExpiresAt.Sub(session.IssuedAt))
	assert.Equal(t, 30*time.Minute, mr.TTL(sessionKeyPrefix+session.ID))

	loaded, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, principal, loaded.Principal)
	assert.True(t, session.ExpiresAt.Equal(loaded.ExpiresAt))
}

func TestRedisSessionStoreExpiry(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	session, err := store.Create(ctx, domain.Principal{ID: 3, Username: "emp", RoleID: domain.RoleEmployee})
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionStoreDelete(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)
	ctx := context.Background()

	session, err := store.Create(ctx, domain.Principal{ID: 3})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, session.ID))
	require.NoError(t, store.Delete(ctx, session.ID))

	_, err = store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
