package storage

import (
	"context"
	"fmt"

	"github.com/middleclass/localstore/internal/config"
)

// Open picks the Store backend from STORAGE_DRIVER: "memory" (default),
// "sqlite", "postgres" or "redis".
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.STORAGE_DRIVER {
	case "", "memory":
		return NewMemory(), nil
	case "sqlite":
		return OpenSqlite(cfg.STORAGE_PATH)
	case "postgres":
		return OpenPostgres(ctx, cfg.DATABASE_URL)
	case "redis":
		return OpenRedis(ctx, cfg.REDIS_ADDR, cfg.REDIS_PASSWORD)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.STORAGE_DRIVER)
	}
}
