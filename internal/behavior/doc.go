// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

// Package behavior models what a single viewer does with the feed and what
// that says about their career interests.
//
// # Components
//
//   - State: watch time, likes, replays, reactions, comments, skip and
//     high-engagement sets, per-category interest scores, scroll history
//   - Category streak detection: a 10-entry rolling window of high-engagement
//     category watches; three consecutive matches lock in a preferred category,
//     a change of category releases it
//   - Engagement scoring: an additive per-video score derived from State
//   - Tracker: applies a State transition, then persists a Snapshot to a Sink
//
// State is pure: its methods never perform I/O and never fail. Tracker wraps a
// State with a mutex and a Sink so that every mutation is applied in call
// order and followed by a save. Save failures are logged and counted, never
// returned.
//
// # Usage
//
//	tracker := behavior.Open(ctx, sink, sessionID, behavior.Options{})
//	tracker.RecordWatch(ctx, "vid123", 45_000, 60_000, career.Parse("dance"))
//	tracker.Like(ctx, "vid123", career.Parse("dance"))
//
//	if pref := tracker.PreferredCategory(); pref != "" {
//	    // bias the next candidate fetch
//	}
package behavior
