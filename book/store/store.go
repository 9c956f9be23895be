package store

import (
	"context"
	"fmt"

	"github.com/marcelsud/bookshelf/book"
	"github.com/marcelsud/bookshelf/book/postgres"
	"github.com/marcelsud/bookshelf/book/redis"
	"github.com/marcelsud/bookshelf/book/sqlite"
	"github.com/marcelsud/bookshelf/config"
	"github.com/marcelsud/bookshelf/internal/user"
)

// Repository is a backend that stores both users and their books
type Repository interface {
	book.Repository
	user.Reader
	user.Writer
}

// Open connects to the backend named by cfg.StoreDriver and makes sure its schema exists
func Open(ctx context.Context, cfg *config.Config) (Repository, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		repo, err := sqlite.NewRepository(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return repo, nil
	case config.DriverPostgres:
		repo, err := postgres.NewRepositoryWithPoolConfig(
			cfg.PostgresConnectionString(),
			cfg.PostgresMaxOpenConns,
			cfg.PostgresMaxIdleConns,
			cfg.PostgresConnMaxLifeMinutes,
		)
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}
		if err := repo.CreateTables(ctx); err != nil {
			repo.Close(ctx)
			return nil, err
		}
		return repo, nil
	case config.DriverRedis:
		repo, err := redis.NewRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("opening redis store: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
