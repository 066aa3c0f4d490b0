// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/spark/internal/behavior"
)

// badgerKeyPrefix namespaces snapshot keys inside a shared database.
const badgerKeyPrefix = "behavior:"

// Value log GC schedule.
const (
	DefaultGCInterval    = 10 * time.Minute
	valueLogDiscardRatio = 0.5
	maxGCRoundsPerTick   = 8
)

// BadgerSink stores snapshots in BadgerDB. Each Save runs in its own
// read-write transaction, so a snapshot is either fully written or not at all.
type BadgerSink struct {
	db     *badger.DB
	ownsDB bool
}

// NewBadgerSink wraps an open database. When owns is true Close also closes db.
func NewBadgerSink(db *badger.DB, owns bool) *BadgerSink {
	return &BadgerSink{db: db, ownsDB: owns}
}

func badgerKey(slot string) []byte {
	return []byte(badgerKeyPrefix + slot)
}

// Load returns the snapshot for slot or behavior.ErrNotFound.
func (s *BadgerSink) Load(_ context.Context, slot string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(slot))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, behavior.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", slot, err)
	}
	return data, nil
}

// Save replaces the snapshot for slot.
func (s *BadgerSink) Save(_ context.Context, slot string, data []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(slot), data)
	})
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", slot, err)
	}
	return nil
}

// Delete removes the snapshot for slot.
func (s *BadgerSink) Delete(_ context.Context, slot string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(badgerKey(slot))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", slot, err)
	}
	return nil
}

// Slots lists every stored slot.
func (s *BadgerSink) Slots(_ context.Context) ([]string, error) {
	var slots []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(badgerKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().Key()
			slots = append(slots, string(key[len(badgerKeyPrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return slots, nil
}

// GCService runs badger value log garbage collection on a ticker. It
// implements suture.Service.
type GCService struct {
	db       *badger.DB
	interval time.Duration
	logger   zerolog.Logger
}

// NewGCService returns a GC loop for the sink's database, or nil when sink is
// not a BadgerSink.
func NewGCService(sink Sink, interval time.Duration, logger zerolog.Logger) *GCService {
	bs, ok := sink.(*BadgerSink)
	if !ok {
		return nil
	}
	if interval <= 0 {
		interval = DefaultGCInterval
	}
	return &GCService{
		db:       bs.db,
		interval: interval,
		logger:   logger.With().Str("component", "badger-gc").Logger(),
	}
}

// Serve blocks until ctx is cancelled.
func (g *GCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			g.RunOnce()
		}
	}
}

// RunOnce rewrites value log files until badger reports nothing left to
// reclaim. It returns the number of files rewritten.
func (g *GCService) RunOnce() int {
	rewritten := 0
rounds:
	for rewritten < maxGCRoundsPerTick {
		err := g.db.RunValueLogGC(valueLogDiscardRatio)
		switch {
		case err == nil:
			rewritten++
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
			break rounds
		default:
			g.logger.Warn().Err(err).Msg("Value log GC failed")
			break rounds
		}
	}
	if rewritten > 0 {
		g.logger.Debug().Int("files", rewritten).Msg("Value log GC reclaimed space")
	}
	return rewritten
}

func (g *GCService) String() string { return "badger-gc" }

// Close closes the database if the sink owns it.
func (s *BadgerSink) Close() error {
	if s.ownsDB && s.db != nil {
		return s.db.Close()
	}
	return nil
}
