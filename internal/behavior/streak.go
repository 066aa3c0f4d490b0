// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package behavior

import (
	"time"

	"github.com/tomtom215/spark/internal/career"
)

const (
	// HistoryCapacity bounds the category watch history.
	HistoryCapacity = 10

	// StreakThreshold is the number of consecutive same-category watches
	// that locks in a preferred category.
	StreakThreshold = 3
)

// CategoryWatch is one high-engagement watch of a normalized category.
type CategoryWatch struct {
	Category string    `json:"category"`
	At       time.Time `json:"timestamp"`
}

// Streak is the locked-in category run. Count is 0 or StreakThreshold.
type Streak struct {
	Category string `json:"category,omitempty"`
	Count    int    `json:"count"`
}

// trackCategoryWatch appends the normalized category to the rolling window
// and re-derives the preferred category from its trailing entries.
func (s *State) trackCategoryWatch(category career.Category) {
	name := career.Normalize(category)
	if name == "" {
		return
	}

	s.history = append(s.history, CategoryWatch{Category: name, At: s.now()})
	if n := len(s.history); n > HistoryCapacity {
		s.history = append([]CategoryWatch(nil), s.history[n-HistoryCapacity:]...)
	}
	s.runLength = s.trailingRun(name)

	n := len(s.history)
	if n >= StreakThreshold && s.trailingRun(name) >= StreakThreshold {
		s.streak = Streak{Category: name, Count: StreakThreshold}
		s.preferred = name
		return
	}

	// A different category immediately before this one breaks the streak.
	// The same category with fewer than three in a row is still building.
	if n >= 2 && s.history[n-2].Category != name {
		s.streak = Streak{}
		s.preferred = ""
	}
}

// trailingRun counts how many of the newest history entries equal name.
func (s *State) trailingRun(name string) int {
	run := 0
	for i := len(s.history) - 1; i >= 0 && s.history[i].Category == name; i-- {
		run++
	}
	return run
}

// PreferredCategory returns the locked-in canonical category, or "".
func (s *State) PreferredCategory() string {
	return s.preferred
}

// CategoryStreak returns the current streak.
func (s *State) CategoryStreak() Streak {
	return s.streak
}

// RunLength returns the number of consecutive entries at the end of the
// watch history that share the newest entry's category. Unlike
// CategoryStreak it is not capped at the lock-in threshold, but it is
// bounded by HistoryCapacity.
func (s *State) RunLength() int {
	return s.runLength
}

// CategoryHistory returns a copy of the rolling category watch window,
// oldest first.
func (s *State) CategoryHistory() []CategoryWatch {
	return append([]CategoryWatch(nil), s.history...)
}

// ResetCategoryPreference clears the streak and the preferred category.
// The watch history and RunLength are kept.
func (s *State) ResetCategoryPreference() {
	s.streak = Streak{}
	s.preferred = ""
}
