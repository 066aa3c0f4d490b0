// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package behavior

import "time"

// ScrollCapacity bounds the scroll history.
const ScrollCapacity = 100

// ScrollDirection is the direction of a feed swipe.
type ScrollDirection string

// Scroll directions.
const (
	ScrollUp   ScrollDirection = "up"
	ScrollDown ScrollDirection = "down"
)

// ScrollEvent is one swipe between videos.
type ScrollEvent struct {
	Direction ScrollDirection `json:"direction"`
	VideoID   string          `json:"videoId"`
	At        time.Time       `json:"timestamp"`
}

// TrackScroll records a swipe. A zero at uses the state clock.
func (s *State) TrackScroll(direction ScrollDirection, videoID string, at time.Time) {
	if at.IsZero() {
		at = s.now()
	}
	s.scrolls = append(s.scrolls, ScrollEvent{Direction: direction, VideoID: videoID, At: at})
	if n := len(s.scrolls); n > ScrollCapacity {
		s.scrolls = append([]ScrollEvent(nil), s.scrolls[n-ScrollCapacity:]...)
	}
}

// Scrolls returns a copy of the scroll history, oldest first.
func (s *State) Scrolls() []ScrollEvent {
	return append([]ScrollEvent(nil), s.scrolls...)
}

// Summary is an aggregate view of a viewer's activity.
type Summary struct {
	TotalVideosWatched int        `json:"totalVideosWatched"`
	TotalLikes         int        `json:"totalLikes"`
	TotalReplays       int        `json:"totalReplays"` // distinct videos replayed
	TopInterests       []Interest `json:"topInterests"`
	TotalScrolls       int        `json:"totalScrolls"`
	PreferredCategory  string     `json:"preferredCategory,omitempty"`
	CategoryStreak     Streak     `json:"categoryStreak"`
	StreakRunLength    int        `json:"streakRunLength"`
}

// AnalyticsSummary aggregates the state for display.
func (s *State) AnalyticsSummary() Summary {
	return Summary{
		TotalVideosWatched: len(s.watchTimeMs),
		TotalLikes:         len(s.liked),
		TotalReplays:       len(s.replays),
		TopInterests:       s.TopInterests(5),
		TotalScrolls:       len(s.scrolls),
		PreferredCategory:  s.preferred,
		CategoryStreak:     s.streak,
		StreakRunLength:    s.runLength,
	}
}
