// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/spark/internal/behavior"
	"github.com/tomtom215/spark/internal/cache"
	"github.com/tomtom215/spark/internal/feed"
	"github.com/tomtom215/spark/internal/metrics"
)

// ErrSessionNotFound is returned for malformed session IDs.
var ErrSessionNotFound = errors.New("session not found")

// flushTimeout bounds a single snapshot read or write.
const flushTimeout = 5 * time.Second

// Session is one viewer's live state.
type Session struct {
	ID       string
	Tracker  *behavior.Tracker
	Selector *feed.Selector
	Opened   time.Time
}

// Config configures a Registry.
type Config struct {
	// Capacity bounds the number of live sessions.
	Capacity int

	// IdleTimeout evicts sessions not used for this long.
	IdleTimeout time.Duration

	// SweepInterval is how often Serve evicts idle sessions.
	SweepInterval time.Duration

	// PreferredRatio is passed to each session's feed.Selector.
	PreferredRatio float64

	// Observer receives every behavior change of every session.
	Observer behavior.Observer
}

// Registry maps session IDs to live sessions.
type Registry struct {
	sink     behavior.Sink
	sessions *cache.LRU[*Session]
	loads    singleflight.Group
	cfg      Config
	logger   zerolog.Logger
}

// NewRegistry creates a registry persisting through sink.
func NewRegistry(sink behavior.Sink, cfg Config, logger zerolog.Logger) *Registry {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 5 * time.Minute
	}
	r := &Registry{
		sink:   sink,
		cfg:    cfg,
		logger: logger.With().Str("component", "sessions").Logger(),
	}
	r.sessions = cache.NewLRU(cache.LRUOptions[*Session]{
		Capacity: cfg.Capacity,
		TTL:      cfg.IdleTimeout,
		OnEvict:  r.evict,
	})
	return r
}

// Create starts a new empty session.
func (r *Registry) Create(ctx context.Context) *Session {
	id := uuid.NewString()
	s := r.load(ctx, id)
	r.logger.Debug().Str("session_id", id).Msg("Session created")
	return s
}

// Get returns the live session for id, reopening it from the sink when it
// is not in memory.
func (r *Registry) Get(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}
	return r.load(ctx, id), nil
}

// load returns the live session for id. Concurrent cold loads of the same
// id share one sink read; the cache lock is never held across it.
func (r *Registry) load(ctx context.Context, id string) *Session {
	if s, ok := r.sessions.Get(id); ok {
		return s
	}
	v, _, _ := r.loads.Do(id, func() (any, error) {
		if s, ok := r.sessions.Get(id); ok {
			return s, nil
		}
		// Shared by every waiter, so one caller's cancellation must not
		// turn the load into an empty session.
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
		defer cancel()
		s, existed := r.sessions.AddIfAbsent(id, r.open(loadCtx, id))
		if !existed {
			metrics.ActiveSessions.Set(float64(r.sessions.Len()))
		}
		return s, nil
	})
	return v.(*Session)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int { return r.sessions.Len() }

// Sweep evicts idle sessions and returns how many were evicted.
func (r *Registry) Sweep() int {
	n := r.sessions.CleanupExpired()
	metrics.ActiveSessions.Set(float64(r.sessions.Len()))
	if n > 0 {
		r.logger.Debug().Int("evicted", n).Msg("Evicted idle sessions")
	}
	return n
}

// FlushAll writes every live session to the sink.
func (r *Registry) FlushAll(ctx context.Context) {
	for _, s := range r.sessions.Values() {
		s.Tracker.Flush(ctx)
	}
}

// Serve sweeps idle sessions every SweepInterval and flushes all sessions
// on shutdown.
func (r *Registry) Serve(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
			r.FlushAll(flushCtx)
			cancel()
			r.logger.Info().Int("sessions", r.Len()).Msg("Flushed sessions on shutdown")
			return ctx.Err()
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (r *Registry) String() string { return "session-janitor" }

func (r *Registry) open(ctx context.Context, id string) *Session {
	logger := r.logger.With().Str("session_id", id).Logger()
	return &Session{
		ID: id,
		Tracker: behavior.Open(ctx, r.sink, id, behavior.Options{
			Observer: r.cfg.Observer,
			Logger:   &logger,
		}),
		Selector: feed.NewSelector(nil, r.cfg.PreferredRatio),
		Opened:   time.Now(),
	}
}

func (r *Registry) evict(id string, s *Session) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	s.Tracker.Flush(ctx)
}
