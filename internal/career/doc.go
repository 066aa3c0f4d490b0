// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

// Package career defines the career category model shared by the behavior
// tracker, the recommendation engine, and the candidate sources.
//
// # Categories
//
// A category reaches the service in one of two shapes:
//
//   - Canonical: one of the six display categories (e.g. "Music")
//   - Code: a finer-grained identifier (e.g. "music_production")
//
// The shape is captured once, at the boundary, in a Category value. Downstream
// code asks the value for its canonical form through Normalize and never
// guesses the shape from the string itself.
//
// # Static Tables
//
// The package also owns the static lookup tables used for output formatting
// (display names, descriptions), interest prediction (adjacency), and search
// query construction (career titles per canonical category). None of these
// tables influence scoring.
package career
