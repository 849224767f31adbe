package store

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/lifeplan/internal/config"
)

// OpenConfigured opens the backend named in cfg. The "none" backend
// returns a nil Cache, which Solve treats as always missing.
func OpenConfigured(ctx context.Context, cfg config.Config) (Cache, error) {
	ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour

	switch cfg.Cache.Backend {
	case config.CacheSQLite, "":
		c, err := Open(config.CachePath(cfg), ttl)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.CacheRedis:
		c, err := NewRedisCache(ctx, config.GetRedisAddr(cfg), ttl)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.CacheMemory:
		return NewMemoryCache(ttl), nil
	case config.CacheNone:
		return nil, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
}
