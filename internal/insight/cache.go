package insight

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Cache stores generated summaries so repeat requests against an
// unchanged transaction log skip the model call. Keys encode the log
// length and newest transaction ID, so a fresh checkout naturally
// misses; stale entries age out by TTL.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

type NoopCache struct{}

func (NoopCache) Get(_ context.Context, _ string) (string, bool, error) {
	return "", false, nil
}

func (NoopCache) Set(_ context.Context, _ string, _ string, _ time.Duration) error {
	return nil
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr string, password string, db int) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisCache{client: client}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if value == "" {
		return nil
	}
	return c.client.Set(ctx, key, value, ttl).Err()
}
