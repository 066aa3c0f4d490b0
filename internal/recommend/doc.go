// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

// Package recommend ranks candidate videos against a viewer's behavior
// profile and composes the personalized feed.
//
// # Scoring
//
// Viewers with no recorded interests get every candidate at the cold-start
// score in source order. Otherwise each candidate starts at the base score
// and collects, in order:
//
//	+ interest score x 0.5    category matches a recorded interest
//	+ 30                      viewer liked the video before
//	+ 15                      local artist
//	+ engagement x 0.3        always applied
//	+ 20                      "career" tag and a top-3 interest mentions
//	                          career, music, or dance
//	- 40                      candidate flagged as skipped by the source
//
// The result is clamped to [0, 100]. Only the first matching reason is
// reported. Candidates are sorted by score, descending; ties keep source order.
//
// # Feed Mix
//
// PersonalizedFeed concatenates the top 60% by score, a 20% slice of the
// best video per unseen category, and a 20% slice of local artists, removes
// duplicate IDs (the later slice's copy wins), and truncates to the limit.
//
// # Profiles
//
// The engine reads viewer facts through the Profile interface, implemented
// by *behavior.State. Callers holding a behavior.Tracker should score inside
// Tracker.View so the profile cannot change mid-ranking.
package recommend
