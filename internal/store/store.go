// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

// Package store provides the persistence sinks for behavior snapshots.
//
// Three backends implement behavior.Sink:
//
//   - memory: process-local map, lost on restart
//   - badger: embedded BadgerDB, one key per session slot
//   - redis: shared Redis, one string key per session slot with optional TTL
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/spark/internal/behavior"
)

// Backend selects a sink implementation.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendBadger Backend = "badger"
	BackendRedis  Backend = "redis"
)

// Options configures New.
type Options struct {
	Backend Backend

	// BadgerPath is the data directory for the badger backend.
	// An empty path opens an in-memory database.
	BadgerPath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	RedisTTL      time.Duration
}

// Closer releases a sink's resources.
type Closer interface {
	Close() error
}

// Sink is a behavior.Sink that owns resources.
type Sink interface {
	behavior.Sink
	Closer
}

// New opens the configured sink.
func New(ctx context.Context, opts Options) (Sink, error) {
	switch opts.Backend {
	case BackendMemory, "":
		return NewMemorySink(), nil

	case BackendBadger:
		bopts := badger.DefaultOptions(opts.BadgerPath)
		if opts.BadgerPath == "" {
			bopts = bopts.WithInMemory(true)
		}
		bopts.Logger = nil // badger's own logger is too chatty

		db, err := badger.Open(bopts)
		if err != nil {
			return nil, fmt.Errorf("open badger db for behavior snapshots: %w", err)
		}
		return NewBadgerSink(db, true), nil

	case BackendRedis:
		return DialRedis(ctx, RedisOptions{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			Prefix:   opts.RedisPrefix,
			TTL:      opts.RedisTTL,
		})

	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
