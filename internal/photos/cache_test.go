package photos

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderplan/internal/metrics"
)

// lookupOutcomes sums the enricher's outcome counter over every label.
func lookupOutcomes() float64 {
	var total float64
	for _, outcome := range []string{metrics.LookupFound, metrics.LookupNone, metrics.LookupError} {
		total += testutil.ToFloat64(metrics.PhotoLookupCounter.WithLabelValues(outcome))
	}
	return total
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "photos:v2:kyoto:hotel kyo", cacheKey(" Hotel Kyo ", "Kyoto"))
	assert.Equal(t, cacheKey("Gion", "KYOTO"), cacheKey("gion", "kyoto"))
}

func TestCachedLookupRedis(t *testing.T) {
	rdb := setupRedis(t)
	ctx := context.Background()

	lookup := &stubLookup{results: map[string]string{"Hotel Kyo": "https://img/hotel.jpg"}}
	cached := NewCachedLookup(lookup, rdb, time.Minute, 10*time.Second, nil)

	hits := testutil.ToFloat64(metrics.PhotoCacheCounter.WithLabelValues(metrics.CacheHit))
	outcomes := lookupOutcomes()
	for i := 0; i < 3; i++ {
		url, err := cached.LookupPhoto(ctx, "Hotel Kyo", "Kyoto")
		require.NoError(t, err)
		assert.Equal(t, "https://img/hotel.jpg", url)
	}
	assert.Len(t, lookup.calls, 1, "later lookups are served from redis")
	assert.Equal(t, hits+2, testutil.ToFloat64(metrics.PhotoCacheCounter.WithLabelValues(metrics.CacheHit)))
	assert.Equal(t, outcomes, lookupOutcomes(), "the cache does not count lookup outcomes")

	url, err := cached.LookupPhoto(ctx, "Nowhere Inn", "Kyoto")
	require.NoError(t, err)
	assert.Equal(t, NoPhoto, url)

	ttl, err := rdb.TTL(ctx, cacheKey("Nowhere Inn", "Kyoto")).Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, 10*time.Second)
}

func TestCachedLookupDoesNotCacheErrors(t *testing.T) {
	rdb := setupRedis(t)
	ctx := context.Background()

	lookup := &stubLookup{errs: map[string]error{"Gion": errors.New("timeout")}}
	cached := NewCachedLookup(lookup, rdb, time.Minute, time.Minute, nil)

	_, err := cached.LookupPhoto(ctx, "Gion", "Kyoto")
	require.Error(t, err)
	_, err = cached.LookupPhoto(ctx, "Gion", "Kyoto")
	require.Error(t, err)
	assert.Len(t, lookup.calls, 2)
}

func TestCachedLookupRedisDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	cacheErrors := testutil.ToFloat64(metrics.PhotoCacheCounter.WithLabelValues(metrics.CacheError))
	outcomes := lookupOutcomes()

	lookup := &stubLookup{results: map[string]string{"Gion": "https://img/gion.jpg"}}
	url, err := NewCachedLookup(lookup, rdb, time.Minute, time.Minute, nil).LookupPhoto(context.Background(), "Gion", "Kyoto")
	require.NoError(t, err)
	assert.Equal(t, "https://img/gion.jpg", url)

	assert.Equal(t, cacheErrors+1, testutil.ToFloat64(metrics.PhotoCacheCounter.WithLabelValues(metrics.CacheError)))
	assert.Equal(t, outcomes, lookupOutcomes())
}

func TestEnrichThroughCacheCountsEachLookupOnce(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	lookup := &stubLookup{results: map[string]string{"Hotel Kyo": "https://img/hotel.jpg", "Kinkaku-ji": "https://img/kinkaku.jpg"}}
	enricher := NewEnricher(NewCachedLookup(lookup, rdb, time.Minute, time.Minute, nil), nil)

	plan := map[string]any{
		"accommodation": map[string]any{"hotels": []any{map[string]any{"name": "Hotel Kyo"}}},
		"attractions":   []any{map[string]any{"name": "Kinkaku-ji"}},
	}
	found := testutil.ToFloat64(metrics.PhotoLookupCounter.WithLabelValues(metrics.LookupFound))
	require.NoError(t, enricher.Enrich(context.Background(), plan, "Kyoto"))
	assert.Equal(t, found+2, testutil.ToFloat64(metrics.PhotoLookupCounter.WithLabelValues(metrics.LookupFound)))
}

// setupRedis connects to WANDER_TEST_REDIS_ADDR and flushes the photo keys.
// It skips the test when the variable is not set.
func setupRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("WANDER_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("WANDER_TEST_REDIS_ADDR not set; skipping redis-backed tests")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Fatalf("redis ping: %v", err)
	}
	cleanup := func() {
		keys, _ := rdb.Keys(ctx, "photos:*").Result()
		if len(keys) > 0 {
			rdb.Del(ctx, keys...)
		}
	}
	cleanup()
	t.Cleanup(func() {
		cleanup()
		_ = rdb.Close()
	})
	return rdb
}
