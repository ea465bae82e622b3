package reports

import (
	"context"
	"log/slog"
	"time"

	"github.com/emotube/backend/internal/logging"
	"github.com/emotube/backend/internal/models"
)

// DefaultTTL is how long a computed report is trusted.
const DefaultTTL = 10 * 24 * time.Hour

// Store persists one cache entry per video identifier. Put replaces any
// existing entry for the same identifier in a single atomic write.
type Store interface {
	Get(ctx context.Context, videoID string) (models.CacheEntry, bool, error)
	Put(ctx context.Context, entry models.CacheEntry) error
}

// Cache applies the staleness policy on top of a Store.
type Cache struct {
	store Store
	ttl   time.Duration
}

// NewCache returns a cache over store. A non-positive ttl selects DefaultTTL.
func NewCache(store Store, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{store: store, ttl: ttl}
}

// TTL reports the configured staleness window.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Lookup returns the entry for videoID. Store failures are logged and reported
// as a miss.
func (c *Cache) Lookup(ctx context.Context, videoID string) (models.CacheEntry, bool) {
	if c == nil || c.store == nil {
		return models.CacheEntry{}, false
	}

	entry, ok, err := c.store.Get(ctx, videoID)
	if err != nil {
		logging.FromContext(ctx).Warn("report cache lookup failed",
			slog.String("video_id", videoID),
			slog.Any("error", err),
		)
		return models.CacheEntry{}, false
	}
	if !ok {
		return models.CacheEntry{}, false
	}
	return entry, true
}

// IsStale reports whether more than the TTL has elapsed since the entry was computed.
func (c *Cache) IsStale(entry models.CacheEntry, now time.Time) bool {
	return now.Sub(entry.LastComputed) > c.ttl
}

// Upsert replaces the entry for videoID with a fresh snapshot stamped now.
func (c *Cache) Upsert(ctx context.Context, videoID string, video models.Video, report models.Report, now time.Time) error {
	if c == nil || c.store == nil {
		return ErrCacheUnavailable
	}
	return c.store.Put(ctx, models.CacheEntry{
		VideoID:      videoID,
		Video:        video.Clone(),
		Report:       report.Clone(),
		LastComputed: now.UTC(),
	})
}
