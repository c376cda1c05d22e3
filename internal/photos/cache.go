package photos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"wanderplan/internal/metrics"
)

// CachedLookup memoizes another Lookup in redis. NoPhoto results are cached
// with a shorter TTL so places that gain photos are picked up again.
type CachedLookup struct {
	next    Lookup
	redis   *redis.Client
	ttl     time.Duration
	missTTL time.Duration
	logger  *zap.Logger
}

// NewCachedLookup wraps next. A cache read or write error falls through to
// next and never fails the lookup.
func NewCachedLookup(next Lookup, rdb *redis.Client, ttl, missTTL time.Duration, logger *zap.Logger) *CachedLookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedLookup{next: next, redis: rdb, ttl: ttl, missTTL: missTTL, logger: logger}
}

func (c *CachedLookup) LookupPhoto(ctx context.Context, name, destination string) (string, error) {
	key := cacheKey(name, destination)

	// Lookup outcomes are counted by the enricher; only cache reads are counted here.
	cached, err := c.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		metrics.PhotoCacheCounter.WithLabelValues(metrics.CacheHit).Inc()
		return cached, nil
	case errors.Is(err, redis.Nil):
		metrics.PhotoCacheCounter.WithLabelValues(metrics.CacheMiss).Inc()
	default:
		metrics.PhotoCacheCounter.WithLabelValues(metrics.CacheError).Inc()
		c.logger.Warn("photo cache read failed", zap.String("key", key), zap.Error(err))
	}

	url, err := c.next.LookupPhoto(ctx, name, destination)
	if err != nil {
		return "", err
	}

	ttl := c.ttl
	if isNoPhoto(url) {
		url, ttl = NoPhoto, c.missTTL
	}
	if err := c.redis.Set(ctx, key, url, ttl).Err(); err != nil {
		c.logger.Warn("photo cache write failed", zap.String("key", key), zap.Error(err))
	}
	return url, nil
}

// cacheVersion is bumped when the stored URL format changes.
const cacheVersion = "v2"

func cacheKey(name, destination string) string {
	norm := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	return fmt.Sprintf("photos:%s:%s:%s", cacheVersion, norm(destination), norm(name))
}
