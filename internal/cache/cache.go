package cache

import (
	"sync"
	"sync/atomic"
)

// Cache is a thread-safe LRU cache bounded by entry count and total cost.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*cacheEntry[K, V]
	order    recency[K]
	capacity int   // max entries, 0 = unlimited
	maxCost  int64 // max total cost, 0 = unlimited
	cost     int64

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// cacheEntry holds a cached value with its recency link and cost.
type cacheEntry[K comparable, V any] struct {
	value V
	cost  int64
	link  *link[K]
}

// New creates a cache holding at most capacity entries whose costs add up to
// at most maxCost. Zero disables either bound.
func New[K comparable, V any](capacity int, maxCost int64) *Cache[K, V] {
	return &Cache[K, V]{
		entries:  make(map[K]*cacheEntry[K, V]),
		capacity: max(capacity, 0),
		maxCost:  max(maxCost, 0),
	}
}

// Get retrieves a value and marks it most recently used.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.hits.Add(1)
	c.order.touch(entry.link)
	return entry.value, true
}

// Set stores a value with the given cost, evicting least recently used
// entries until both bounds hold. A value costing more than maxCost on its
// own is not stored.
func (c *Cache[K, V]) Set(key K, value V, cost int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[key]; ok {
		c.removeEntry(old)
	}
	if c.maxCost > 0 && cost > c.maxCost {
		return
	}

	c.entries[key] = &cacheEntry[K, V]{
		value: value,
		cost:  cost,
		link:  c.order.insert(key),
	}
	c.cost += cost

	for c.overLimit() {
		oldest := c.order.last()
		if oldest == nil {
			break
		}
		c.removeEntry(c.entries[oldest.key])
		c.evictions.Add(1)
	}
}

// Delete removes an entry from the cache.
// Returns true if the entry was found and removed.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if ok {
		c.removeEntry(entry)
	}
	return ok
}

// Clear removes all entries from the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*cacheEntry[K, V])
	c.order = recency[K]{}
	c.cost = 0
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	n, cost := len(c.entries), c.cost
	c.mu.Unlock()

	hits, misses := c.hits.Load(), c.misses.Load()
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return Stats{
		Len:       n,
		Capacity:  c.capacity,
		Cost:      cost,
		MaxCost:   c.maxCost,
		Hits:      hits,
		Misses:    misses,
		HitRate:   rate,
		Evictions: c.evictions.Load(),
	}
}

func (c *Cache[K, V]) overLimit() bool {
	return (c.capacity > 0 && len(c.entries) > c.capacity) ||
		(c.maxCost > 0 && c.cost > c.maxCost)
}

// removeEntry drops entry from the map and list. Caller must hold c.mu.
func (c *Cache[K, V]) removeEntry(entry *cacheEntry[K, V]) {
	c.order.detach(entry.link)
	delete(c.entries, entry.link.key)
	c.cost -= entry.cost
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the entry bound (0 = unlimited).
	Capacity int
	// Cost is the summed cost of the current entries.
	Cost int64
	// MaxCost is the cost bound (0 = unlimited).
	MaxCost int64
	// Hits is the number of cache hits.
	Hits uint64
	// Misses is the number of cache misses.
	Misses uint64
	// HitRate is the cache hit rate 0.0 to 1.0.
	HitRate float64
	// Evictions is the number of entries evicted to honour the bounds.
	Evictions uint64
}
