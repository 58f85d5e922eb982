package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name string `json:"name"`
}

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(rdb)
	t.Cleanup(func() {
		SetClient(nil)
		_ = rdb.Close()
	})
	return mr
}

func TestAside_NilClientAlwaysFetches(t *testing.T) {
	SetClient(nil)
	calls := 0
	var dest cachedThing
	for i := 0; i < 2; i++ {
		err := Aside(context.Background(), "k", &dest, UserTTL, func() error {
			calls++
			dest.Name = "fresh"
			return nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
	assert.Equal(t, "fresh", dest.Name)
}

func TestAside_HitSkipsFetch(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *cachedThing) func() error {
		return func() error {
			calls++
			dest.Name = "db"
			return nil
		}
	}

	var first cachedThing
	require.NoError(t, Aside(ctx, "thing", &first, UserTTL, fetch(&first)))
	assert.True(t, mr.Exists("thing"))

	var second cachedThing
	require.NoError(t, Aside(ctx, "thing", &second, UserTTL, fetch(&second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "db", second.Name)

	Invalidate(ctx, "thing")
	assert.False(t, mr.Exists("thing"))
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	mr := withMiniredis(t)
	boom := errors.New("boom")
	var dest cachedThing
	err := Aside(context.Background(), "bad", &dest, UserTTL, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("bad"))
}

func TestAside_InvalidateDuringFetchDiscardsStaleValue(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	source := "old"
	var stale cachedThing
	err := Aside(ctx, "thing", &stale, UserTTL, func() error {
		stale.Name = source
		// A writer commits and invalidates after this read but before the
		// value reaches Redis.
		source = "new"
		Invalidate(ctx, "thing")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "old", stale.Name)

	calls := 0
	var fresh cachedThing
	require.NoError(t, Aside(ctx, "thing", &fresh, UserTTL, func() error {
		calls++
		fresh.Name = source
		return nil
	}))
	assert.Equal(t, 1, calls, "stale entry must not be served")
	assert.Equal(t, "new", fresh.Name)

	var cached cachedThing
	require.NoError(t, Aside(ctx, "thing", &cached, UserTTL, func() error {
		t.Fatal("current entry should be served from cache")
		return nil
	}))
	assert.Equal(t, "new", cached.Name)
}

func TestInitRedis_UnreachableLeavesNilClient(t *testing.T) {
	InitRedis("redis://127.0.0.1:1")
	assert.Nil(t, GetClient())
}

func TestUserKey(t *testing.T) {
	assert.Equal(t, "user:7", UserKey(7))
}
