package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"lirivelle/internal/logger"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache stores JSON-encoded values with a TTL. Misses and backend failures
// look the same to callers; failures are logged.
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// cacheItem wraps the encoded value and its expiry time.
type cacheItem struct {
	Data      []byte
	ExpiresAt time.Time
}

// LocalCache is an in-process LRU cache.
type LocalCache struct {
	lruCache *lru.Cache[string, cacheItem]
	now      func() time.Time
	mu       sync.Mutex
}

func NewLocalCache(size int) (*LocalCache, error) {
	if size <= 0 {
		size = 500
	}
	l, err := lru.New[string, cacheItem](size)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}
	return &LocalCache{lruCache: l, now: time.Now}, nil
}

// Set stores value under key. Values that cannot be encoded are skipped.
func (c *LocalCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.WithContext("cache", "set").WithError(err).WithField("key", key).Warn("Skipping value that cannot be encoded")
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lruCache.Add(key, cacheItem{
		Data:      data,
		ExpiresAt: c.now().Add(ttl),
	})
}

// Get decodes the entry into dst. Expired entries are evicted and reported
// as a miss.
func (c *LocalCache) Get(_ context.Context, key string, dst interface{}) bool {
	c.mu.Lock()
	val, ok := c.lruCache.Get(key)
	if ok && c.now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return false
	}

	if err := json.Unmarshal(val.Data, dst); err != nil {
		logger.WithContext("cache", "get").WithError(err).WithField("key", key).Warn("Dropping undecodable cache entry")
		c.Delete(context.Background(), key)
		return false
	}
	return true
}

func (c *LocalCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lruCache.Remove(key)
}

func (c *LocalCache) Len() int {
	return c.lruCache.Len()
}
