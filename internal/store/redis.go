package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/theirongolddev/lifeplan/internal/projection"
)

// RedisCache shares solver answers between processes through Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to addr and checks the server answers a PING.
func NewRedisCache(ctx context.Context, addr string, ttl time.Duration) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis %s: %w", addr, err)
	}
	return &RedisCache{client: rdb, ttl: ttl}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) (projection.Solution, bool, error) {
	var sol projection.Solution
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return sol, false, nil
	}
	if err != nil {
		return sol, false, err
	}
	if err := json.Unmarshal(val, &sol); err != nil {
		return sol, false, fmt.Errorf("decoding cached solution: %w", err)
	}
	return sol, true, nil
}

func (r *RedisCache) Put(ctx context.Context, key string, sol projection.Solution) error {
	payload, err := json.Marshal(sol)
	if err != nil {
		return fmt.Errorf("encoding solution: %w", err)
	}
	return r.client.Set(ctx, key, payload, r.ttl).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
