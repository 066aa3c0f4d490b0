// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// Defaults for Options.
const (
	DefaultSweepInterval = 5 * time.Minute
	DefaultMaxEntries    = 4096
)

// Options configures a TTL cache.
type Options struct {
	// Name labels the cache in logs and supervisor events.
	Name string

	// TTL is how long a stored value stays readable.
	TTL time.Duration

	// MaxEntries bounds the cache. When full, Set drops the entry closest
	// to expiry.
	MaxEntries int

	// SweepInterval is how often Serve removes expired entries.
	SweepInterval time.Duration

	// Clock overrides time.Now.
	Clock func() time.Time
}

type ttlEntry[V any] struct {
	value   V
	expires time.Time
}

// Stats are cumulative counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Entries   int
	LastSweep time.Time
}

// TTL is a bounded map whose values expire a fixed time after they are set.
type TTL[V any] struct {
	mu      sync.Mutex
	entries map[string]ttlEntry[V]
	opts    Options
	stats   Stats
}

// NewTTL creates a TTL cache. Zero options take the package defaults.
func NewTTL[V any](opts Options) *TTL[V] {
	if opts.Name == "" {
		opts.Name = "ttl-cache"
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = DefaultSweepInterval
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &TTL[V]{
		entries: make(map[string]ttlEntry[V]),
		opts:    opts,
		stats:   Stats{LastSweep: opts.Clock()},
	}
}

// Get returns the live value for key.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if ok && c.opts.Clock().After(e.expires) {
		delete(c.entries, key)
		c.stats.Evictions++
		ok = false
	}
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	c.stats.Hits++
	return e.value, true
}

// Set stores value under key for the configured TTL.
func (c *TTL[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.opts.MaxEntries {
		c.dropSoonest()
	}
	c.entries[key] = ttlEntry[V]{value: value, expires: c.opts.Clock().Add(c.opts.TTL)}
}

// dropSoonest removes the entry closest to expiry. Must hold mu.
func (c *TTL[V]) dropSoonest() {
	var victim string
	var soonest time.Time
	for k, e := range c.entries {
		if victim == "" || e.expires.Before(soonest) {
			victim, soonest = k, e.expires
		}
	}
	if victim != "" {
		delete(c.entries, victim)
		c.stats.Evictions++
	}
}

// Len returns the number of stored entries, expired or not.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the counters.
func (c *TTL[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Entries = len(c.entries)
	return s
}

// Sweep removes expired entries and returns how many were removed.
func (c *TTL[V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.opts.Clock()
	removed := 0
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
			removed++
		}
	}
	c.stats.Evictions += int64(removed)
	c.stats.LastSweep = now
	return removed
}

// Serve sweeps on a ticker until ctx is cancelled.
func (c *TTL[V]) Serve(ctx context.Context) error {
	ticker := time.NewTicker(c.opts.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.Sweep()
		}
	}
}

func (c *TTL[V]) String() string { return c.opts.Name }

// GenerateKey hashes the JSON encoding of params under prefix.
func GenerateKey(prefix string, params any) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", prefix, params)
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", prefix, sum[:16])
}
