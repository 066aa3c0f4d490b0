// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package store

import (
	"context"
	"sync"

	"github.com/tomtom215/spark/internal/behavior"
)

// MemorySink keeps snapshots in a map. Useful for tests and single-process
// deployments that accept losing state on restart.
type MemorySink struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{slots: make(map[string][]byte)}
}

// Load returns a copy of the stored snapshot.
func (m *MemorySink) Load(_ context.Context, slot string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.slots[slot]
	if !ok {
		return nil, behavior.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Save stores a copy of data.
func (m *MemorySink) Save(_ context.Context, slot string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = append([]byte(nil), data...)
	return nil
}

// Delete removes the slot.
func (m *MemorySink) Delete(_ context.Context, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, slot)
	return nil
}

// Len returns the number of stored slots.
func (m *MemorySink) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.slots)
}

// Close is a no-op.
func (m *MemorySink) Close() error { return nil }
