package sentiment

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/kweisser/sentimeter/internal/metrics"
)

// ResultCache provides in-memory caching of analysis results with TTL-based
// expiration. Inference dominates request latency, so repeated texts (health
// probes, hot documents, retried clients) skip the pipeline entirely.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration
	clock   clockwork.Clock
}

type cacheEntry struct {
	result    Result
	expiresAt time.Time
}

// CacheKey derives the content-addressed cache key for a text.
func CacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// NewResultCache creates a result cache with the specified TTL.
func NewResultCache(ttl time.Duration, clock clockwork.Clock) *ResultCache {
	return &ResultCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
		clock:   clock,
	}
}

// Get retrieves a cached result if present and not expired.
// Returns (result, true) on cache hit, (nil, false) on miss or expiry.
func (c *ResultCache) Get(key string) (*Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	// Expired entries are treated as misses; eviction happens periodically
	// since only a read lock is held here.
	if c.clock.Now().After(entry.expiresAt) {
		return nil, false
	}

	return &entry.result, true
}

// Set stores a result in the cache with current timestamp + TTL.
func (c *ResultCache) Set(key string, result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &cacheEntry{
		result:    result,
		expiresAt: c.clock.Now().Add(c.ttl),
	}
	metrics.CacheSize.Set(float64(len(c.entries)))
}

// Clear removes all entries from the cache.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
	metrics.CacheSize.Set(0)
}

// Size returns the current number of entries in the cache (including expired).
func (c *ResultCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// EvictExpired removes all expired entries and returns the count evicted.
// This prevents unbounded cache growth over time.
func (c *ResultCache) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	evicted := 0

	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}

	if evicted > 0 {
		metrics.CacheEvictions.Add(float64(evicted))
		metrics.CacheSize.Set(float64(len(c.entries)))
	}

	return evicted
}

// StartEvictionTimer runs EvictExpired every interval until the returned
// stop function is called.
func (c *ResultCache) StartEvictionTimer(interval time.Duration) func() {
	ticker := c.clock.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.Chan():
				if evicted := c.EvictExpired(); evicted > 0 {
					slog.Debug("Evicted expired result cache entries",
						"count", evicted,
						"remaining", c.Size(),
					)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}
