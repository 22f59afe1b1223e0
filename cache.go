// Package snapcache provides an in-process key-value cache with LRU
// eviction, per-entry TTL expiry, and optional snapshot persistence so a
// restarted process can resume with previous state.
package snapcache

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gozephyr/snapcache/errors"
	"github.com/gozephyr/snapcache/metrics"
	"github.com/gozephyr/snapcache/store"
	"github.com/gozephyr/snapcache/ttl"
)

// Cache is a bounded key-value cache. All public operations are
// serialized by one exclusive lock; expiration is lazy and discovered on
// access, and every mutating operation triggers a snapshot save when
// persistence is enabled.
type Cache[V any] struct {
	mu sync.Mutex

	items     *orderedStore[V]
	maxSize   int
	ttlConfig ttl.Config

	persist   bool
	snapshots store.Store
	writerID  string

	autoCleanup bool
	stats       *Stats
	metrics     metrics.Exporter
	log         *slog.Logger
	closed      bool
}

// New creates a cache with the given options. Construction fails on a
// non-positive max size, on persistence without a store, or on a negative
// default TTL. When persistence is enabled and a prior snapshot exists,
// its non-expired entries are loaded with their metadata intact.
func New[V any](opts ...Option[V]) (*Cache[V], error) {
	options := DefaultOptions[V]()
	for _, opt := range opts {
		opt(options)
	}

	if options.MaxSize <= 0 {
		return nil, errors.WrapError("New", nil, errors.ErrInvalidSize)
	}
	if err := ttl.Validate(options.TTLConfig.DefaultTTL); err != nil {
		return nil, errors.WrapError("New", nil, errors.ErrInvalidTTL)
	}
	if !options.persistenceSet {
		options.Persistence = options.Store != nil
	}
	if options.Persistence && options.Store == nil {
		return nil, errors.WrapError("New", nil, errors.ErrNoStore)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Metrics == nil {
		options.Metrics = metrics.NewExporter(metrics.StandardExporter, options.CacheName, nil)
	}

	c := &Cache[V]{
		items:       newOrderedStore[V](),
		maxSize:     options.MaxSize,
		ttlConfig:   options.TTLConfig,
		persist:     options.Persistence,
		snapshots:   options.Store,
		writerID:    uuid.NewString(),
		autoCleanup: options.AutoCleanup,
		stats:       &Stats{},
		metrics:     options.Metrics,
		log:         options.Logger,
	}

	if c.persist {
		c.loadSnapshot()
	}

	return c, nil
}

// Set stores a value under key using the default TTL.
func (c *Cache[V]) Set(key string, value V) error {
	return c.SetTTL(key, value, c.ttlConfig.DefaultTTL)
}

// SetTTL stores a value under key with an explicit TTL. A TTL of
// ttl.NoExpiry means the entry never expires. Inserting a new key at
// capacity first purges expired entries, then evicts from the least
// recently used end until there is room.
func (c *Cache[V]) SetTTL(key string, value V, d time.Duration) error {
	if key == "" {
		return errors.WrapError("Set", key, errors.ErrInvalidKey)
	}
	if err := ttl.Validate(d); err != nil {
		return errors.WrapError("Set", key, errors.ErrInvalidTTL)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errors.WrapError("Set", key, errors.ErrCacheClosed)
	}

	now := time.Now()
	if c.autoCleanup {
		c.removeExpired(now)
	}

	if _, exists := c.items.get(key); !exists && c.items.len() >= c.maxSize {
		// The eviction decision is only correct once expired entries are
		// gone, so this purge runs regardless of AutoCleanup.
		c.removeExpired(now)
		for c.items.len() >= c.maxSize {
			oldest, ok := c.items.oldest()
			if !ok {
				break
			}
			c.items.remove(oldest.Key)
			c.stats.IncEvictions()
			c.metrics.RecordEviction()
		}
	}

	c.items.put(newEntry(key, value, now, d))
	c.metrics.UpdateSize(int64(c.items.len()))
	c.saveSnapshot()
	return nil
}

// Get retrieves the value for key. A hit refreshes the entry's recency
// and last access time; an entry found expired is removed and reported as
// not found.
func (c *Cache[V]) Get(key string) (V, error) {
	var zero V

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return zero, errors.WrapError("Get", key, errors.ErrCacheClosed)
	}

	entry, ok := c.items.get(key)
	if !ok {
		c.stats.IncMisses()
		c.metrics.RecordMiss()
		return zero, errors.WrapError("Get", key, errors.ErrKeyNotFound)
	}

	now := time.Now()
	if entry.Expired(now) {
		c.items.remove(key)
		c.stats.IncExpirations()
		c.stats.IncMisses()
		c.metrics.RecordExpiration()
		c.metrics.RecordMiss()
		c.metrics.UpdateSize(int64(c.items.len()))
		c.saveSnapshot()
		return zero, errors.WrapError("Get", key, errors.ErrKeyNotFound)
	}

	entry.LastAccess = now
	c.items.touch(key)
	c.stats.IncHits()
	c.metrics.RecordHit()
	return entry.Value, nil
}

// GetOrDefault retrieves the value for key, falling back to def when the
// key is missing or expired.
func (c *Cache[V]) GetOrDefault(key string, def V) V {
	value, err := c.Get(key)
	if err != nil {
		return def
	}
	return value
}

// Has reports whether key exists and is not expired. An entry found
// expired is removed, but unlike Get this neither refreshes recency nor
// counts toward hits and misses.
func (c *Cache[V]) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	entry, ok := c.items.get(key)
	if !ok {
		return false
	}

	if entry.Expired(time.Now()) {
		c.items.remove(key)
		c.stats.IncExpirations()
		c.metrics.RecordExpiration()
		c.metrics.UpdateSize(int64(c.items.len()))
		c.saveSnapshot()
		return false
	}

	return true
}

// Delete removes key from the cache. It reports whether the key was
// present.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	if !c.items.remove(key) {
		return false
	}
	c.metrics.UpdateSize(int64(c.items.len()))
	c.saveSnapshot()
	return true
}

// Clear removes all entries.
func (c *Cache[V]) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errors.WrapError("Clear", nil, errors.ErrCacheClosed)
	}

	c.items.clear()
	c.metrics.UpdateSize(0)
	c.saveSnapshot()
	return nil
}

// Size returns the current number of entries. With AutoCleanup enabled,
// expired entries are purged first so they are not counted.
func (c *Cache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0
	}
	if c.autoCleanup {
		c.removeExpired(time.Now())
	}
	return c.items.len()
}

// Keys returns all keys in recency order, least recently used first. With
// AutoCleanup enabled, expired entries are purged first.
func (c *Cache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	if c.autoCleanup {
		c.removeExpired(time.Now())
	}
	return c.items.keys()
}

// GetStats returns a snapshot of the counters plus current size, capacity
// and derived hit rate.
func (c *Cache[V]) GetStats() StatsSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed && c.autoCleanup {
		c.removeExpired(time.Now())
	}

	return StatsSnapshot{
		Size:        c.items.len(),
		MaxSize:     c.maxSize,
		Hits:        c.stats.Hits.Load(),
		Misses:      c.stats.Misses.Load(),
		Evictions:   c.stats.Evictions.Load(),
		Expirations: c.stats.Expirations.Load(),
	}
}

// Cleanup removes all currently expired entries and returns how many were
// removed.
func (c *Cache[V]) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0
	}
	return c.removeExpired(time.Now())
}

// Close writes a final snapshot when persistence is enabled, releases the
// store, and rejects further operations. It is idempotent.
func (c *Cache[V]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.saveSnapshot()
	c.closed = true

	if c.snapshots != nil {
		if err := c.snapshots.Close(context.Background()); err != nil {
			return errors.WrapError("Close", nil, errors.ErrStoreError)
		}
	}
	return nil
}

// removeExpired purges every currently expired entry and persists if any
// were removed. Callers must hold the lock.
func (c *Cache[V]) removeExpired(now time.Time) int {
	removed := 0
	for _, entry := range c.items.entries() {
		if entry.Expired(now) {
			c.items.remove(entry.Key)
			c.stats.IncExpirations()
			c.metrics.RecordExpiration()
			removed++
		}
	}
	if removed > 0 {
		c.metrics.UpdateSize(int64(c.items.len()))
		c.saveSnapshot()
	}
	return removed
}

// saveSnapshot serializes the current contents and hands them to the
// store. Failures are logged and swallowed: the in-memory cache stays
// fully usable, the save is simply lost. Callers must hold the lock.
func (c *Cache[V]) saveSnapshot() {
	if !c.persist {
		return
	}

	snap := store.NewSnapshot(c.writerID)
	for _, entry := range c.items.entries() {
		value, err := json.Marshal(entry.Value)
		if err != nil {
			c.log.Warn("skipping unserializable entry in snapshot",
				"key", entry.Key, "error", err)
			continue
		}
		snap.Entries = append(snap.Entries, store.SnapshotEntry{
			Key:        entry.Key,
			Value:      value,
			CreatedAt:  entry.CreatedAt,
			ExpiresAt:  entry.ExpiresAt,
			LastAccess: entry.LastAccess,
		})
	}

	if err := c.snapshots.Save(context.Background(), snap); err != nil {
		c.log.Warn("snapshot save failed, continuing in-memory", "error", err)
	}
}

// loadSnapshot reconstructs the cache from a prior snapshot. Entries keep
// their original metadata and relative recency order; already expired or
// malformed entries are skipped. Absent and corrupt snapshots both mean
// starting empty.
func (c *Cache[V]) loadSnapshot() {
	snap, err := c.snapshots.Load(context.Background())
	if err != nil {
		if errors.IsNoSnapshot(err) {
			return
		}
		c.log.Warn("snapshot unreadable, starting empty", "error", err)
		return
	}

	now := time.Now()
	loaded := 0
	for _, se := range snap.Entries {
		if se.Key == "" {
			c.log.Warn("skipping snapshot entry with empty key")
			continue
		}
		if ttl.Expired(se.ExpiresAt, now) {
			continue
		}

		var value V
		if err := json.Unmarshal(se.Value, &value); err != nil {
			c.log.Warn("skipping malformed snapshot entry", "key", se.Key, "error", err)
			continue
		}

		// Entries are stored least recently used first, so inserting in
		// order rebuilds the recency order.
		c.items.put(&Entry[V]{
			Key:        se.Key,
			Value:      value,
			CreatedAt:  se.CreatedAt,
			ExpiresAt:  se.ExpiresAt,
			LastAccess: se.LastAccess,
		})
		loaded++
		if c.items.len() > c.maxSize {
			if oldest, ok := c.items.oldest(); ok {
				c.items.remove(oldest.Key)
			}
		}
	}

	c.metrics.UpdateSize(int64(c.items.len()))
	c.log.Debug("loaded cache snapshot",
		"entries", loaded, "saved_at", snap.SavedAt, "writer_id", snap.WriterID)
}
