// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package cache

import (
	"sync"
	"time"
)

// lruEntry is a node in the LRU list.
type lruEntry[V any] struct {
	key       string
	value     V
	prev      *lruEntry[V]
	next      *lruEntry[V]
	expiresAt time.Time
}

// EvictFunc is called, without the cache lock held, for every entry removed
// by capacity pressure or idle expiry. It is not called for Remove or Clear.
type EvictFunc[V any] func(key string, value V)

// LRU is a thread-safe least-recently-used map with idle expiry.
// Every Get or Add refreshes the entry's expiry.
//
// This implementation uses a doubly-linked list for ordering and a hashmap for lookups.
type LRU[V any] struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	now      func() time.Time
	onEvict  EvictFunc[V]

	items map[string]*lruEntry[V]

	// head.next is the most recently used, tail.prev is the least recently used
	head *lruEntry[V]
	tail *lruEntry[V]

	hits   int64
	misses int64
}

// LRUOptions configures an LRU.
type LRUOptions[V any] struct {
	// Capacity is the maximum number of entries. Default 10000.
	Capacity int

	// TTL is the idle time after which an entry expires. Default 30 minutes.
	TTL time.Duration

	// OnEvict observes entries dropped for capacity or expiry.
	OnEvict EvictFunc[V]

	// Clock overrides time.Now.
	Clock func() time.Time
}

// NewLRU creates an LRU cache.
func NewLRU[V any](opts LRUOptions[V]) *LRU[V] {
	if opts.Capacity <= 0 {
		opts.Capacity = 10000
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	c := &LRU[V]{
		capacity: opts.Capacity,
		ttl:      opts.TTL,
		now:      opts.Clock,
		onEvict:  opts.OnEvict,
		items:    make(map[string]*lruEntry[V], opts.Capacity),
		head:     &lruEntry[V]{},
		tail:     &lruEntry[V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the value for key and marks it most recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	var zero V
	var expired *lruEntry[V]

	c.mu.Lock()
	entry, exists := c.items[key]
	switch {
	case !exists:
		c.misses++
	case c.now().After(entry.expiresAt):
		c.removeEntry(entry)
		c.misses++
		expired = entry
	default:
		entry.expiresAt = c.now().Add(c.ttl)
		c.moveToFront(entry)
		c.hits++
	}
	c.mu.Unlock()

	if expired != nil {
		c.evicted([]*lruEntry[V]{expired})
		return zero, false
	}
	if !exists {
		return zero, false
	}
	return entry.value, true
}

// AddIfAbsent stores value under key unless a live entry already exists.
// It returns the stored value and whether it was already present.
func (c *LRU[V]) AddIfAbsent(key string, value V) (V, bool) {
	var dropped []*lruEntry[V]

	c.mu.Lock()
	now := c.now()
	if entry, ok := c.items[key]; ok {
		if !now.After(entry.expiresAt) {
			entry.expiresAt = now.Add(c.ttl)
			c.moveToFront(entry)
			v := entry.value
			c.mu.Unlock()
			return v, true
		}
		c.removeEntry(entry)
		dropped = append(dropped, entry)
	}
	dropped = append(dropped, c.insert(key, value, now)...)
	c.mu.Unlock()

	c.evicted(dropped)
	return value, false
}

// Add adds or replaces an entry, evicting the least recently used entry when
// the cache is full.
func (c *LRU[V]) Add(key string, value V) {
	c.mu.Lock()
	now := c.now()
	if entry, exists := c.items[key]; exists {
		entry.value = value
		entry.expiresAt = now.Add(c.ttl)
		c.moveToFront(entry)
		c.mu.Unlock()
		return
	}
	dropped := c.insert(key, value, now)
	c.mu.Unlock()

	c.evicted(dropped)
}

// Remove removes an entry and returns its value.
func (c *LRU[V]) Remove(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.items[key]; exists {
		c.removeEntry(entry)
		return entry.value, true
	}
	var zero V
	return zero, false
}

// Len returns the current number of entries in the cache.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Values returns every live value, most recently used first.
func (c *LRU[V]) Values() []V {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]V, 0, len(c.items))
	for e := c.head.next; e != c.tail; e = e.next {
		out = append(out, e.value)
	}
	return out
}

// Clear removes all entries without calling the eviction callback.
func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*lruEntry[V], c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// CleanupExpired removes all expired entries and returns how many were
// removed.
func (c *LRU[V]) CleanupExpired() int {
	c.mu.Lock()
	now := c.now()
	var dropped []*lruEntry[V]

	// Walk from tail (oldest) to head (newest)
	for entry := c.tail.prev; entry != c.head; {
		prev := entry.prev
		if now.After(entry.expiresAt) {
			c.removeEntry(entry)
			dropped = append(dropped, entry)
		}
		entry = prev
	}
	c.mu.Unlock()

	c.evicted(dropped)
	return len(dropped)
}

// Stats returns cache hit/miss statistics.
func (c *LRU[V]) Stats() (hits, misses int64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, len(c.items)
}

// Internal methods (must be called with lock held)

func (c *LRU[V]) insert(key string, value V, now time.Time) []*lruEntry[V] {
	entry := &lruEntry[V]{
		key:       key,
		value:     value,
		expiresAt: now.Add(c.ttl),
	}
	c.addToFront(entry)
	c.items[key] = entry

	var dropped []*lruEntry[V]
	for len(c.items) > c.capacity {
		oldest := c.tail.prev
		c.removeEntry(oldest)
		dropped = append(dropped, oldest)
	}
	return dropped
}

func (c *LRU[V]) addToFront(entry *lruEntry[V]) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *LRU[V]) moveToFront(entry *lruEntry[V]) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	c.addToFront(entry)
}

func (c *LRU[V]) removeEntry(entry *lruEntry[V]) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(c.items, entry.key)
}

// evicted runs the callback outside the lock.
func (c *LRU[V]) evicted(entries []*lruEntry[V]) {
	if c.onEvict == nil {
		return
	}
	for _, e := range entries {
		c.onEvict(e.key, e.value)
	}
}
