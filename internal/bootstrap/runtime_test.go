package bootstrap

import (
	"context"
	"testing"

	"forum/internal/cache"
	"forum/internal/config"
	"forum/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRuntime_SQLiteWithDefaultAccount(t *testing.T) {
	cfg := &config.Config{
		Env:           "test",
		DBDriver:      "sqlite",
		DBPath:        t.TempDir() + "/forum.db",
		RedisURL:      "redis://127.0.0.1:1",
		SessionSecret: "test-secret-that-is-long-enough-for-hs256",
		BcryptCost:    4,
	}
	t.Cleanup(func() { cache.SetClient(nil) })

	db, rdb, err := InitRuntime(context.Background(), cfg, Options{SeedDefaultUser: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	assert.Nil(t, rdb, "unreachable redis runs without cache")

	svc := NewServices(cfg, db, rdb)
	sess, err := svc.Auth.Login(context.Background(), seed.DefaultEmail, seed.DefaultPassword)
	require.NoError(t, err)

	uid, err := svc.Auth.RequireAuthenticated(context.Background(), sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, uid)
}
