// Package interning implements the bounded, lock-protected intern table
// described in SPEC_FULL.md §4.8 (A1): a structural-hash-keyed cache that
// increases pointer-sharing for PredictionContext values without ever
// being a source of truth. It is backed by
// github.com/hashicorp/golang-lru/simplelru for eviction, the same
// package istio-istio uses for its xDS cache.
package interning

import (
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
)

// DefaultCapacity bounds how many structurally distinct values the cache
// keeps alive before evicting the least-recently-used entry. It is large
// enough that a single parse's worth of PredictionContext construction
// fits comfortably, small enough not to let a pathological grammar grow
// the cache unbounded.
const DefaultCapacity = 1 << 16

// Cache interns values of type V, keyed by a caller-supplied structural
// hash. A miss never blocks on anything but the cache's own mutex (§5:
// "guards pure in-memory state... held only for the duration of the map
// operation").
type Cache[V any] struct {
	mu  sync.Mutex
	lru simplelru.LRUCache
}

// New returns a cache bounded to capacity entries.
func New[V any](capacity int) *Cache[V] {
	lru, _ := simplelru.NewLRU(capacity, nil)
	return &Cache[V]{lru: lru}
}

// GetOrStore returns the value already interned for key, if any; otherwise
// it stores and returns value. The second return is true on a hit.
func (c *Cache[V]) GetOrStore(key uint32, value V) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.lru.Get(key); ok {
		return existing.(V), true
	}
	c.lru.Add(key, value)
	return value, false
}

// Len returns the number of entries currently interned.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
