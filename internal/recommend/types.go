// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package recommend

import "github.com/tomtom215/spark/internal/behavior"

// Profile is the read-only view of viewer behavior the engine needs.
type Profile interface {
	// Interests returns every interest sorted by descending score.
	Interests() []behavior.Interest

	// TopInterests returns the first n entries of Interests.
	TopInterests(n int) []behavior.Interest

	// HasLiked reports whether the viewer currently likes videoID.
	HasLiked(videoID string) bool

	// EngagementScore returns the non-negative engagement score of videoID.
	EngagementScore(videoID string) float64
}

var _ Profile = (*behavior.State)(nil)

// Recommendation reasons, in priority order.
const (
	ReasonColdStart   = "New user - exploring all content"
	ReasonInterest    = "Matches your interest in "
	ReasonLiked       = "You liked this before"
	ReasonLocalArtist = "Local artist from your area"
	ReasonCareer      = "Career discovery content"
	ReasonDefault     = "Recommended for you"
)

// ColdStartMessage is shown by CareerInsights before any interest exists.
const ColdStartMessage = "Keep watching videos to discover your interests!"

// CareerSummary describes the viewer's strongest interest.
type CareerSummary struct {
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// Suggestion is a runner-up interest.
type Suggestion struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Insights is the display-ready career discovery summary.
type Insights struct {
	Message     string         `json:"message"`
	TopCareer   *CareerSummary `json:"topCareer"`
	Suggestions []Suggestion   `json:"suggestions"`
}
