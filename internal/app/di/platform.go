// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	platformadapters "watchlist_backend/internal/feature/platforms/adapters"
	platformusecase "watchlist_backend/internal/feature/platforms/usecase"
	"watchlist_backend/internal/platform/cache"
)

// PlatformCacheNamespace is the Redis key prefix for the platform list cache.
const PlatformCacheNamespace = "platforms"

// NewPlatformRepository creates a PlatformRepository implementation.
// If Redis is available, the database repository is wrapped with a cache.
// Otherwise, it reads the database directly.
func NewPlatformRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) platformusecase.PlatformRepository {
	repo := platformadapters.NewPlatformRepository(db)
	if rdb != nil {
		return cache.NewCachingPlatformRepository(rdb, ttl, repo, PlatformCacheNamespace)
	}
	return repo
}
