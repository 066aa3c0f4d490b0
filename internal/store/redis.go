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

	goredis "github.com/redis/go-redis/v9"

	"github.com/tomtom215/spark/internal/behavior"
)

// RedisOptions configures DialRedis.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int

	// Prefix is prepended to every slot key. Default "spark:".
	Prefix string

	// TTL expires idle snapshots. Zero keeps them forever.
	TTL time.Duration
}

// RedisSink stores snapshots as Redis strings.
type RedisSink struct {
	rdb    goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

// DialRedis connects and pings the server.
func DialRedis(ctx context.Context, opts RedisOptions) (*RedisSink, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis address is required")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewRedisSink(rdb, opts.Prefix, opts.TTL), nil
}

// NewRedisSink wraps an existing client.
func NewRedisSink(rdb goredis.UniversalClient, prefix string, ttl time.Duration) *RedisSink {
	if prefix == "" {
		prefix = "spark:"
	}
	return &RedisSink{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisSink) key(slot string) string {
	return s.prefix + slot
}

// Load returns the snapshot for slot or behavior.ErrNotFound.
func (s *RedisSink) Load(ctx context.Context, slot string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, s.key(slot)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, behavior.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", slot, err)
	}
	return data, nil
}

// Save replaces the snapshot and refreshes its TTL.
func (s *RedisSink) Save(ctx context.Context, slot string, data []byte) error {
	if err := s.rdb.Set(ctx, s.key(slot), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", slot, err)
	}
	return nil
}

// Delete removes the snapshot.
func (s *RedisSink) Delete(ctx context.Context, slot string) error {
	if err := s.rdb.Del(ctx, s.key(slot)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", slot, err)
	}
	return nil
}

// Close closes the client.
func (s *RedisSink) Close() error {
	return s.rdb.Close()
}
