// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package behavior

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/spark/internal/career"
	"github.com/tomtom215/spark/internal/logging"
	"github.com/tomtom215/spark/internal/metrics"
)

// Kind names a tracked interaction.
type Kind string

// Interaction kinds.
const (
	KindWatch   Kind = "watch"
	KindLike    Kind = "like"
	KindUnlike  Kind = "unlike"
	KindReplay  Kind = "replay"
	KindReact   Kind = "react"
	KindComment Kind = "comment"
	KindScroll  Kind = "scroll"
	KindReset   Kind = "reset_preference"
	KindClear   Kind = "clear"
)

// Change describes one applied mutation.
type Change struct {
	SessionID         string
	Kind              Kind
	VideoID           string
	Category          string
	PreviousPreferred string
	Preferred         string
	At                time.Time
}

// PreferenceLocked reports whether the change locked in a new preference.
func (c Change) PreferenceLocked() bool {
	return c.Preferred != "" && c.Preferred != c.PreviousPreferred
}

// PreferenceReleased reports whether the change cleared the preference.
func (c Change) PreferenceReleased() bool {
	return c.Preferred == "" && c.PreviousPreferred != ""
}

// Observer is notified after every mutation, while the tracker lock is held.
// It must not call back into the Tracker.
type Observer func(ctx context.Context, c Change)

// Options configures a Tracker.
type Options struct {
	// Clock overrides time.Now.
	Clock func() time.Time

	// Observer receives every applied change. Optional.
	Observer Observer

	// Logger overrides the component logger.
	Logger *zerolog.Logger
}

// Tracker applies State transitions for one session and persists a
// snapshot after each one. It is safe for concurrent use; mutations are
// serialized in call order.
type Tracker struct {
	mu        sync.Mutex
	state     *State
	sink      Sink
	slot      string
	sessionID string
	observer  Observer
	logger    zerolog.Logger
	now       func() time.Time
}

// Open loads the session's snapshot from sink. A missing snapshot starts an
// empty state; an unreadable or corrupt snapshot is logged and also starts
// empty.
func Open(ctx context.Context, sink Sink, sessionID string, opts Options) *Tracker {
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	logger := logging.WithComponent("behavior").With().Str("session_id", sessionID).Logger()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	t := &Tracker{
		state:     newStateWithClock(now),
		sink:      sink,
		slot:      SlotKey(sessionID),
		sessionID: sessionID,
		observer:  opts.Observer,
		logger:    logger,
		now:       now,
	}

	if sink == nil {
		return t
	}

	data, err := sink.Load(ctx, t.slot)
	switch {
	case errors.Is(err, ErrNotFound):
		return t
	case err != nil:
		metrics.BehaviorPersistFailures.WithLabelValues("load").Inc()
		t.logger.Warn().Err(err).Str("slot", t.slot).Msg("Failed to load behavior snapshot, starting empty")
		return t
	}

	state, err := Decode(data, now)
	if err != nil {
		metrics.BehaviorPersistFailures.WithLabelValues("decode").Inc()
		t.logger.Warn().Err(err).Str("slot", t.slot).Msg("Discarding corrupt behavior snapshot")
		return t
	}
	t.state = state
	return t
}

// SessionID returns the session this tracker belongs to.
func (t *Tracker) SessionID() string { return t.sessionID }


// RecordWatch forwards to State.RecordWatch and persists.
func (t *Tracker) RecordWatch(ctx context.Context, videoID string, deltaMs, totalMs int64, category career.Category) {
	t.apply(ctx, KindWatch, videoID, category, func(s *State) {
		s.RecordWatch(videoID, deltaMs, totalMs, category)
	})
}

// Like forwards to State.Like and persists.
func (t *Tracker) Like(ctx context.Context, videoID string, category career.Category) {
	t.apply(ctx, KindLike, videoID, category, func(s *State) {
		s.Like(videoID, category)
	})
}

// Unlike forwards to State.Unlike and persists.
func (t *Tracker) Unlike(ctx context.Context, videoID string, category career.Category) {
	t.apply(ctx, KindUnlike, videoID, category, func(s *State) {
		s.Unlike(videoID, category)
	})
}

// Replay forwards to State.Replay and persists.
func (t *Tracker) Replay(ctx context.Context, videoID string, category career.Category) {
	t.apply(ctx, KindReplay, videoID, category, func(s *State) {
		s.Replay(videoID, category)
	})
}

// React forwards to State.React and persists.
func (t *Tracker) React(ctx context.Context, videoID string, kind ReactionKind, category career.Category) {
	t.apply(ctx, KindReact, videoID, category, func(s *State) {
		s.React(videoID, kind, category)
	})
}

// Comment forwards to State.Comment and persists.
func (t *Tracker) Comment(ctx context.Context, videoID, text string, category career.Category) {
	t.apply(ctx, KindComment, videoID, category, func(s *State) {
		s.Comment(videoID, text, category)
	})
}

// TrackScroll forwards to State.TrackScroll and persists.
func (t *Tracker) TrackScroll(ctx context.Context, direction ScrollDirection, videoID string) {
	t.apply(ctx, KindScroll, videoID, career.Category{}, func(s *State) {
		s.TrackScroll(direction, videoID, time.Time{})
	})
}

// ResetCategoryPreference clears the preferred category and persists.
func (t *Tracker) ResetCategoryPreference(ctx context.Context) {
	t.apply(ctx, KindReset, "", career.Category{}, func(s *State) {
		s.ResetCategoryPreference()
	})
}

// Clear resets the state and deletes the persisted snapshot.
func (t *Tracker) Clear(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	previous := t.state.preferred
	t.state.Reset()
	metrics.BehaviorMutations.WithLabelValues(string(KindClear)).Inc()

	if t.sink != nil {
		if err := t.sink.Delete(ctx, t.slot); err != nil {
			metrics.BehaviorPersistFailures.WithLabelValues("delete").Inc()
			t.logger.Error().Err(err).Str("slot", t.slot).Msg("Failed to delete behavior snapshot")
		}
	}
	t.notify(ctx, Change{Kind: KindClear, PreviousPreferred: previous})
}

// Flush writes the current snapshot without mutating the state.
func (t *Tracker) Flush(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.persist(ctx)
}

// View runs fn with a consistent read-only view of the state. fn must not
// retain s or mutate it.
func (t *Tracker) View(fn func(s *State)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.state)
}

// PreferredCategory returns the locked-in category, or "".
func (t *Tracker) PreferredCategory() string {
	var pref string
	t.View(func(s *State) { pref = s.PreferredCategory() })
	return pref
}

// CategoryStreak returns the current streak.
func (t *Tracker) CategoryStreak() Streak {
	var streak Streak
	t.View(func(s *State) { streak = s.CategoryStreak() })
	return streak
}

// TopInterests returns the n highest interests.
func (t *Tracker) TopInterests(n int) []Interest {
	var out []Interest
	t.View(func(s *State) { out = s.TopInterests(n) })
	return out
}

// AnalyticsSummary returns the aggregate activity view.
func (t *Tracker) AnalyticsSummary() Summary {
	var sum Summary
	t.View(func(s *State) { sum = s.AnalyticsSummary() })
	return sum
}

func (t *Tracker) apply(ctx context.Context, kind Kind, videoID string, category career.Category, fn func(s *State)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	previous := t.state.preferred
	fn(t.state)

	metrics.BehaviorMutations.WithLabelValues(string(kind)).Inc()
	t.persist(ctx)
	t.notify(ctx, Change{
		Kind:              kind,
		VideoID:           videoID,
		Category:          category.String(),
		PreviousPreferred: previous,
	})
}

// persist saves the snapshot. Must be called with mu held.
func (t *Tracker) persist(ctx context.Context) {
	if t.sink == nil {
		return
	}
	data, err := Encode(t.state)
	if err != nil {
		metrics.BehaviorPersistFailures.WithLabelValues("encode").Inc()
		t.logger.Error().Err(err).Msg("Failed to encode behavior snapshot")
		return
	}
	if err := t.sink.Save(ctx, t.slot, data); err != nil {
		metrics.BehaviorPersistFailures.WithLabelValues("save").Inc()
		t.logger.Error().Err(err).Str("slot", t.slot).Msg("Failed to persist behavior snapshot")
	}
}

// notify fills in the post-mutation fields and calls the observer.
// Must be called with mu held.
func (t *Tracker) notify(ctx context.Context, c Change) {
	c.SessionID = t.sessionID
	c.Preferred = t.state.preferred
	c.At = t.now()

	switch {
	case c.PreferenceLocked():
		metrics.PreferenceTransitions.WithLabelValues("locked").Inc()
		t.logger.Info().Str("category", c.Preferred).Int("run_length", t.state.runLength).
			Msg("Preferred category locked in")
	case c.PreferenceReleased():
		metrics.PreferenceTransitions.WithLabelValues("released").Inc()
		t.logger.Debug().Str("previous", c.PreviousPreferred).Msg("Preferred category released")
	}

	if t.observer != nil {
		t.observer(ctx, c)
	}
}
