package database

import (
	"testing"

	"forum/internal/config"
	"forum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func TestOpen_SQLiteSingleConnection(t *testing.T) {
	db, err := Open(sqlite.Open(":memory:"), 10)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.True(t, IsSQLite(db))
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestAutoMigrate_CreatesTables(t *testing.T) {
	db, err := Open(sqlite.Open(":memory:"), 1)
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(db))

	for _, table := range []string{"users", "posts", "likes"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex(&models.Like{}, "idx_like_user_post"))
}

func TestConnect_SQLiteFile(t *testing.T) {
	cfg := &config.Config{
		Env:      "test",
		DBDriver: "sqlite",
		DBPath:   t.TempDir() + "/forum.db",
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	assert.True(t, db.Migrator().HasTable(&models.Post{}))
}

func TestDialector_Postgres(t *testing.T) {
	d := Dialector(&config.Config{DBDriver: "postgres", DBHost: "db", DBPort: "5432"})
	assert.Equal(t, "postgres", d.Name())
}
