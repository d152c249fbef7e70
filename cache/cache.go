package cache

import (
	"container/list"
	"fmt"
	"sync"
	"time"
)

// DefaultMaxSize is the capacity used when Config.MaxSize is zero.
const DefaultMaxSize = 1000

// Config configures cache capacity and expiry. All fields are optional;
// invalid values (negative size or TTL) are rejected by New.
type Config struct {
	// MaxSize is the maximum number of live entries. When an insert would
	// exceed it, the least-recently-used entry is evicted first.
	// Default: DefaultMaxSize
	MaxSize int

	// TTL is the time-to-live applied to every entry. Zero means entries
	// never expire. Expiry is enforced lazily at read time: an expired
	// entry is purged by the Get or Has that discovers it, never returned.
	TTL time.Duration

	// DisableStats turns off hit/miss/eviction accounting. Statistics are
	// collected by default.
	DisableStats bool
}

// Cache is a bounded key/value store with least-recently-used eviction and
// optional TTL expiry. A map gives O(1) key lookup and a doubly-linked list
// maintains recency ordering (front = most recently used).
//
// All methods serialize through a single mutex, so a Cache is safe for
// concurrent use; Get stays O(1) under the lock.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	maxSize int
	ttl     time.Duration
	items   map[K]*list.Element
	order   *list.List

	statsEnabled bool
	hits         uint64
	misses       uint64
	evictions    uint64

	// now is replaced in tests to drive TTL expiry deterministically.
	now func() time.Time
}

// entry is the value stored in recency list elements. The key lives here
// because eviction starts from list nodes.
type entry[K comparable, V any] struct {
	key            K
	value          V
	insertedAt     time.Time
	lastAccessedAt time.Time
}

// New creates a Cache, applying defaults and failing fast on configuration
// that cannot describe a valid cache.
func New[K comparable, V any](config Config) (*Cache[K, V], error) {
	if config.MaxSize < 0 {
		return nil, fmt.Errorf("cache: MaxSize must be positive, got %d", config.MaxSize)
	}
	if config.TTL < 0 {
		return nil, fmt.Errorf("cache: TTL must be non-negative, got %v", config.TTL)
	}

	maxSize := config.MaxSize
	if maxSize == 0 {
		maxSize = DefaultMaxSize
	}

	return &Cache[K, V]{
		maxSize:      maxSize,
		ttl:          config.TTL,
		items:        make(map[K]*list.Element),
		order:        list.New(),
		statsEnabled: !config.DisableStats,
		now:          time.Now,
	}, nil
}

// Get retrieves a value. Returns the zero value and false on miss. An
// expired entry found during lookup is purged and counts as a miss. A live
// hit refreshes the entry to most-recently-used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V

	elem, ok := c.items[key]
	if !ok {
		c.recordMiss()
		return zero, false
	}

	ent := elem.Value.(*entry[K, V])
	now := c.now()

	if c.expired(ent, now) {
		c.removeLocked(elem, ent)
		c.recordMiss()
		return zero, false
	}

	ent.lastAccessedAt = now
	c.order.MoveToFront(elem)
	c.recordHit()
	return ent.value, true
}

// Set inserts or overwrites a key. The entry becomes most-recently-used.
// Inserting a new key at capacity evicts the least-recently-used entry
// first; overwriting an existing key is not an eviction.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	if elem, ok := c.items[key]; ok {
		ent := elem.Value.(*entry[K, V])
		ent.value = value
		ent.insertedAt = now
		ent.lastAccessedAt = now
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.maxSize {
		c.evictOldestLocked()
	}

	elem := c.order.PushFront(&entry[K, V]{
		key:            key,
		value:          value,
		insertedAt:     now,
		lastAccessedAt: now,
	})
	c.items[key] = elem
}

// Has reports whether a live entry exists for the key. It shares Get's
// liveness semantics (expired entries are purged) but is a pure existence
// probe: no hit/miss accounting and no recency refresh.
func (c *Cache[K, V]) Has(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return false
	}

	ent := elem.Value.(*entry[K, V])
	if c.expired(ent, c.now()) {
		c.removeLocked(elem, ent)
		return false
	}

	return true
}

// Delete removes the entry if present, live or expired, and reports whether
// one was removed. Statistics are unaffected.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return false
	}

	c.removeLocked(elem, elem.Value.(*entry[K, V]))
	return true
}

// Clear empties the store. Cumulative statistics persist: they describe the
// cache's lifetime behavior, not its current contents.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.items)
	c.order.Init()
}

// Len returns the tracked entry count. The count is maintained by
// insert/evict/delete bookkeeping, not a sweep, so entries that expired but
// were never read again still count toward MaxSize until a read purges them.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      c.order.Len(),
	}
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (c *Cache[K, V]) HitRate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hits + c.misses
	if total == 0 {
		return 0
	}
	return float64(c.hits) / float64(total)
}

func (c *Cache[K, V]) expired(ent *entry[K, V], now time.Time) bool {
	return c.ttl > 0 && now.Sub(ent.insertedAt) > c.ttl
}

func (c *Cache[K, V]) evictOldestLocked() {
	elem := c.order.Back()
	if elem == nil {
		return
	}

	c.removeLocked(elem, elem.Value.(*entry[K, V]))
	if c.statsEnabled {
		c.evictions++
	}
}

func (c *Cache[K, V]) removeLocked(elem *list.Element, ent *entry[K, V]) {
	c.order.Remove(elem)
	delete(c.items, ent.key)
}

func (c *Cache[K, V]) recordHit() {
	if c.statsEnabled {
		c.hits++
	}
}

func (c *Cache[K, V]) recordMiss() {
	if c.statsEnabled {
		c.misses++
	}
}
