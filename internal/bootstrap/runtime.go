// Package bootstrap wires the runtime dependencies shared by the commands.
package bootstrap

import (
	"context"
	"fmt"

	"forum/internal/cache"
	"forum/internal/config"
	"forum/internal/database"
	"forum/internal/repository"
	"forum/internal/seed"
	"forum/internal/service"
	"forum/internal/session"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDefaultUser bool
}

// Services bundles the application services built over one database handle.
type Services struct {
	Users *service.UserService
	Auth  *service.AuthService
	Posts *service.PostService
}

// NewServices builds the services. A nil Redis client keeps sessions in memory.
func NewServices(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *Services {
	users := service.NewUserService(repository.NewUserRepository(db), cfg.BcryptCost)
	return &Services{
		Users: users,
		Auth:  service.NewAuthService(users, session.NewStore(rdb), cfg.SessionSecret, cfg.SessionTTL()),
		Posts: service.NewPostService(repository.NewPostRepository(db)),
	}
}

// InitRuntime connects to DB and Redis and optionally creates the default account.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDefaultUser {
		users := service.NewUserService(repository.NewUserRepository(db), cfg.BcryptCost)
		if _, err := seed.DefaultAccount(ctx, users); err != nil {
			return nil, nil, fmt.Errorf("failed to seed default account: %w", err)
		}
	}

	return db, r, nil
}
