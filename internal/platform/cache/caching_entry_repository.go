// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"moodjournal/internal/feature/entries/domain/entity"
	entriesusecase "moodjournal/internal/feature/entries/usecase"
	transferusecase "moodjournal/internal/feature/transfer/usecase"
)

// EntryRepository is the full entry persistence surface the decorator wraps:
// the CRUD contract plus the import engine's duplicate lookup.
type EntryRepository interface {
	Create(ctx context.Context, e *entity.Entry) error
	FindAllByUser(ctx context.Context, userID uint) ([]entity.Entry, error)
	FindByID(ctx context.Context, id uint) (*entity.Entry, error)
	Update(ctx context.Context, e *entity.Entry) (*entity.Entry, error)
	Delete(ctx context.Context, id uint) (bool, error)
	ExistsByTitle(ctx context.Context, userID uint, title string) (bool, error)
}

// CachingEntryRepository decorates an EntryRepository with Redis caching of
// the per-user entry list. The cached value is the already-ordered slice, so
// the newest-first contract survives cache hits. Writes invalidate the
// owner's cached list; cache failures are never fatal.
type CachingEntryRepository struct {
	inner     EntryRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Interface checks against every consumer of the decorated repository.
var (
	_ entriesusecase.EntryRepository = (*CachingEntryRepository)(nil)
	_ transferusecase.EntryStore     = (*CachingEntryRepository)(nil)
	_ transferusecase.EntryLister    = (*CachingEntryRepository)(nil)
)

// NewCachingEntryRepository decorates an EntryRepository with Redis caching.
// If ttl is 0 it defaults to 5 minutes; an empty namespace defaults to
// "entries".
func NewCachingEntryRepository(rdb *redis.Client, ttl time.Duration, inner EntryRepository, namespace string) *CachingEntryRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "entries"
	}
	return &CachingEntryRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create persists the entry and invalidates the owner's cached list.
func (c *CachingEntryRepository) Create(ctx context.Context, e *entity.Entry) error {
	if err := c.inner.Create(ctx, e); err != nil {
		return err
	}
	c.invalidate(ctx, e.UserID)
	return nil
}

// FindAllByUser returns the cached list when present, falling back to the
// underlying repository and storing the result best-effort.
func (c *CachingEntryRepository) FindAllByUser(ctx context.Context, userID uint) ([]entity.Entry, error) {
	if c.rdb == nil {
		return c.inner.FindAllByUser(ctx, userID)
	}

	key := c.cacheKey(userID)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Entry
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Drop the corrupted cache entry.
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// FindByID bypasses the cache; single-entry reads go straight through.
func (c *CachingEntryRepository) FindByID(ctx context.Context, id uint) (*entity.Entry, error) {
	return c.inner.FindByID(ctx, id)
}

// Update writes through and invalidates the owner's cached list.
func (c *CachingEntryRepository) Update(ctx context.Context, e *entity.Entry) (*entity.Entry, error) {
	updated, err := c.inner.Update(ctx, e)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, updated.UserID)
	return updated, nil
}

// Delete removes the entry and invalidates the owner's cached list. The
// owner is looked up first because the delete itself only knows the ID.
func (c *CachingEntryRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var owner uint
	if c.rdb != nil {
		if e, err := c.inner.FindByID(ctx, id); err == nil {
			owner = e.UserID
		}
	}

	existed, err := c.inner.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if existed && owner != 0 {
		c.invalidate(ctx, owner)
	}
	return existed, nil
}

// ExistsByTitle goes straight through; the duplicate check must always see
// current state.
func (c *CachingEntryRepository) ExistsByTitle(ctx context.Context, userID uint, title string) (bool, error) {
	return c.inner.ExistsByTitle(ctx, userID, title)
}

func (c *CachingEntryRepository) cacheKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", c.namespace, userID)
}

// invalidate drops the user's cached list. Best effort: a failed delete only
// shortens cache freshness, it never fails the write.
func (c *CachingEntryRepository) invalidate(ctx context.Context, userID uint) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.cacheKey(userID)).Err()
}
