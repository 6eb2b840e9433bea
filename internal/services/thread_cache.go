package services

import (
	"context"
	"fmt"
	"time"

	"lirivelle/internal/utils"

	"github.com/google/uuid"
)

// threadVersionTTL outlives any thread TTL so a missing version only means
// the thread has not been written since the process (or Redis) started.
const threadVersionTTL = 24 * time.Hour

// ThreadCacheKey is the cache key of the reply forest of one content item.
func ThreadCacheKey(contentID uint) string {
	return fmt.Sprintf("thread:%d", contentID)
}

// ThreadVersionKey holds a marker that changes on every write to a thread.
func ThreadVersionKey(contentID uint) string {
	return fmt.Sprintf("thread-version:%d", contentID)
}

func threadVersion(ctx context.Context, cache utils.Cache, contentID uint) string {
	var v string
	cache.Get(ctx, ThreadVersionKey(contentID), &v)
	return v
}

// invalidateThread moves the version first, then drops the cached forest.
// A reader that loaded comments before the write sees the version change and
// does not store its result.
func invalidateThread(ctx context.Context, cache utils.Cache, contentID uint) {
	cache.Set(ctx, ThreadVersionKey(contentID), uuid.NewString(), threadVersionTTL)
	cache.Delete(ctx, ThreadCacheKey(contentID))
}

// storeThread caches forest only if no write happened since version was read.
// The check runs again after Set to catch a write that landed in between.
func storeThread(ctx context.Context, cache utils.Cache, contentID uint, version string, forest interface{}, ttl time.Duration) {
	if threadVersion(ctx, cache, contentID) != version {
		return
	}
	cache.Set(ctx, ThreadCacheKey(contentID), forest, ttl)
	if threadVersion(ctx, cache, contentID) != version {
		cache.Delete(ctx, ThreadCacheKey(contentID))
	}
}
