package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb), mr
}

func TestRedisStore_Lifecycle(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "abc", 42, time.Hour))
	assert.True(t, mr.Exists("session:abc"))

	uid, found, err := s.Lookup(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint(42), uid)

	require.NoError(t, s.Delete(ctx, "abc"))
	_, found, err = s.Lookup(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, found)

	// deleting twice is fine
	require.NoError(t, s.Delete(ctx, "abc"))
}

func TestRedisStore_Expiry(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "short", 1, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, found, err := s.Lookup(ctx, "short")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	s, mr := newRedisStore(t)
	require.NoError(t, mr.Set("session:bad", "not-a-number"))

	_, _, err := s.Lookup(context.Background(), "bad")
	assert.Error(t, err)
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "abc", 7, time.Hour))
	uid, found, err := s.Lookup(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint(7), uid)

	now = now.Add(time.Hour)
	_, found, _ = s.Lookup(ctx, "abc")
	assert.False(t, found)

	require.NoError(t, s.Save(ctx, "def", 8, time.Hour))
	require.NoError(t, s.Delete(ctx, "def"))
	require.NoError(t, s.Delete(ctx, "def"))
	_, found, _ = s.Lookup(ctx, "def")
	assert.False(t, found)
}

func TestNewStore(t *testing.T) {
	_, ok := NewStore(nil).(*MemoryStore)
	assert.True(t, ok)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	_, ok = NewStore(rdb).(*RedisStore)
	assert.True(t, ok)
}
