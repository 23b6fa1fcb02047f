// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"watchlist_backend/internal/feature/platforms/domain/entity"
	"watchlist_backend/internal/feature/platforms/usecase"
)

// CachingPlatformRepository decorates a PlatformRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingPlatformRepository struct {
	inner     usecase.PlatformRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.PlatformRepository = (*CachingPlatformRepository)(nil)

// NewCachingPlatformRepository decorates a PlatformRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "platforms".
// A nil rdb disables caching.
func NewCachingPlatformRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PlatformRepository, namespace string) *CachingPlatformRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "platforms"
	}
	return &CachingPlatformRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: safe(namespace),
	}
}

// InsertMissing inserts platforms and invalidates the cached list.
func (c *CachingPlatformRepository) InsertMissing(ctx context.Context, names []string) (int64, error) {
	inserted, err := c.inner.InsertMissing(ctx, names)
	if err != nil {
		return 0, err
	}
	// Exit early if Redis is not configured or there was nothing to insert
	if c.rdb == nil || len(names) == 0 {
		return inserted, nil
	}

	if err := c.deleteByPattern(ctx, c.namespace+":*"); err != nil {
		slog.WarnContext(ctx, "platform cache invalidation failed", "error", err)
	}
	return inserted, nil
}

// List returns platforms, checking the cache first then falling back to the database.
func (c *CachingPlatformRepository) List(ctx context.Context) ([]entity.Platform, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	key := c.listKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Platform
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// listKey is the key of the full platform list.
func (c *CachingPlatformRepository) listKey() string {
	return c.namespace + ":all"
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingPlatformRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
