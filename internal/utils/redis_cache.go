package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lirivelle/internal/logger"

	"github.com/redis/go-redis/v9"
)

// RedisCache shares cached values between server instances.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to redisURL and pings it once.
func NewRedisCache(ctx context.Context, redisURL, prefix string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisCache{client: client, prefix: prefix}, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.WithContext("cache", "set").WithError(err).WithField("key", key).Warn("Skipping value that cannot be encoded")
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		logger.WithContext("cache", "set").WithError(err).WithField("key", key).Warn("Redis set failed")
	}
}

func (c *RedisCache) Get(ctx context.Context, key string, dst interface{}) bool {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.WithContext("cache", "get").WithError(err).WithField("key", key).Warn("Redis get failed")
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logger.WithContext("cache", "get").WithError(err).WithField("key", key).Warn("Dropping undecodable cache entry")
		c.Delete(ctx, key)
		return false
	}
	return true
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		logger.WithContext("cache", "delete").WithError(err).WithField("key", key).Warn("Redis delete failed")
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
