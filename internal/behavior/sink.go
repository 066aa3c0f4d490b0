// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package behavior

import (
	"context"
	"errors"
)

// SlotPrefix names the storage slot behavior snapshots are written to.
const SlotPrefix = "spark_user_behavior"

// ErrNotFound is returned by a Sink when no snapshot exists for a slot.
var ErrNotFound = errors.New("behavior snapshot not found")

// Sink is a key-value store for encoded snapshots.
// Implementations must be safe for concurrent use across slots.
type Sink interface {
	// Load returns the snapshot stored under slot or ErrNotFound.
	Load(ctx context.Context, slot string) ([]byte, error)

	// Save replaces the snapshot stored under slot.
	Save(ctx context.Context, slot string, data []byte) error

	// Delete removes the snapshot. Deleting a missing slot is not an error.
	Delete(ctx context.Context, slot string) error
}

// SlotKey returns the slot for a session.
func SlotKey(sessionID string) string {
	if sessionID == "" {
		return SlotPrefix
	}
	return SlotPrefix + ":" + sessionID
}
