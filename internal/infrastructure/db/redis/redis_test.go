package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servicehub/marketplace/internal/core/domain"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestSessionStore_SaveGetDelete(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	sess := domain.Session{
		Token:     "abc",
		Principal: domain.Principal{Role: domain.RoleProvider, AccountID: "p1"},
		CreatedAt: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, sess, time.Hour))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", got.Token)
	assert.Equal(t, sess.Principal, got.Principal)
	assert.True(t, sess.CreatedAt.Equal(got.CreatedAt))

	require.NoError(t, store.Delete(ctx, "abc"))
	require.NoError(t, store.Delete(ctx, "abc"))

	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionStore_Expiry(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	sess := domain.Session{Token: "short", Principal: domain.Principal{Role: domain.RoleUser, AccountID: "u1"}}
	require.NoError(t, store.Save(ctx, sess, time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "short")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionStore_CorruptValue(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewSessionStore(client)

	require.NoError(t, mr.Set(sessionPrefix+"bad", "not-json"))

	_, err := store.Get(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionStore_Unavailable(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewSessionStore(client)
	mr.Close()

	_, err := store.Get(context.Background(), "abc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
}

func TestDedupChecker(t *testing.T) {
	mr, client := setupTestRedis(t)
	dedup := NewDedupChecker(client)
	ctx := context.Background()
	ts := time.Unix(1760000000, 0)

	dup, err := dedup.IsDuplicate(ctx, "b1", "Completed", ts)
	require.NoError(t, err)
	assert.False(t, dup)

	require.NoError(t, dedup.Mark(ctx, "b1", "Completed", ts))
	assert.True(t, mr.Exists("dedup:b1:Completed:1760000000"))

	dup, err = dedup.IsDuplicate(ctx, "b1", "Completed", ts)
	require.NoError(t, err)
	assert.True(t, dup)

	dup, err = dedup.IsDuplicate(ctx, "b1", "Completed", ts.Add(time.Second))
	require.NoError(t, err)
	assert.False(t, dup, "a different timestamp is a different event")

	mr.FastForward(dedupTTL + time.Second)
	dup, err = dedup.IsDuplicate(ctx, "b1", "Completed", ts)
	require.NoError(t, err)
	assert.False(t, dup)
}

func TestGeocodeCache(t *testing.T) {
	_, client := setupTestRedis(t)
	cache := NewGeocodeCache(client)
	ctx := context.Background()

	_, found, err := cache.Get(ctx, "411001")
	require.NoError(t, err)
	assert.False(t, found)

	want := domain.Coordinates{Lat: 18.5204, Lng: 73.8567}
	require.NoError(t, cache.Set(ctx, "411001", want))

	got, found, err := cache.Get(ctx, "411001")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}
