// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	entriesadapters "moodjournal/internal/feature/entries/adapters"
	"moodjournal/internal/platform/cache"
)

// NewEntryRepository creates the entry repository used by the entries and
// transfer features. When Redis is available the GORM repository is wrapped
// with per-user list caching; otherwise it is used directly.
func NewEntryRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) cache.EntryRepository {
	repo := entriesadapters.NewEntryRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingEntryRepository(rdb, ttl, repo, "entries")
}
