// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/spark/internal/metrics"
)

// RecorderStats is a snapshot of consumed events.
type RecorderStats struct {
	Total   int64            `json:"total"`
	ByKind  map[string]int64 `json:"by_kind"`
	Invalid int64            `json:"invalid"`
}

// Recorder consumes behavior events and keeps aggregate counters.
type Recorder struct {
	bus    *Bus
	logger zerolog.Logger

	mu    sync.Mutex
	stats RecorderStats

	// handled is signalled after each processed message when set.
	handled chan<- BehaviorEvent
}

// NewRecorder creates a recorder reading from bus.
func NewRecorder(bus *Bus, logger zerolog.Logger) *Recorder {
	return &Recorder{
		bus:    bus,
		logger: logger.With().Str("component", "event-recorder").Logger(),
		stats:  RecorderStats{ByKind: make(map[string]int64)},
	}
}

// Serve consumes events until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context) error {
	messages, err := r.bus.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", Topic, err)
	}
	r.logger.Info().Str("topic", Topic).Msg("Event recorder started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			e, err := Decode(msg)
			if err != nil {
				r.logger.Warn().Err(err).Msg("Dropping undecodable behavior event")
				r.mu.Lock()
				r.stats.Invalid++
				r.mu.Unlock()
				msg.Ack()
				continue
			}
			r.record(e)
			msg.Ack()
			if r.handled != nil {
				r.handled <- e
			}
		}
	}
}

func (r *Recorder) record(e BehaviorEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.Total++
	r.stats.ByKind[e.Kind]++
	metrics.EventsConsumed.WithLabelValues(e.Kind).Inc()
}

// Stats returns a copy of the counters.
func (r *Recorder) Stats() RecorderStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.stats
	out.ByKind = make(map[string]int64, len(r.stats.ByKind))
	for k, v := range r.stats.ByKind {
		out.ByKind[k] = v
	}
	return out
}

// String implements fmt.Stringer for supervisor logs.
func (r *Recorder) String() string { return "event-recorder" }
