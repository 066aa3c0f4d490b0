// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package behavior

import (
	"fmt"
	"testing"

	"github.com/tomtom215/spark/internal/career"
)

// watchHigh records a >70% watch of a fresh video in the category.
func watchHigh(s *State, id string, category career.Category) {
	s.RecordWatch(id, 9_000, 10_000, category)
}

func TestStreak_LockInAndRelease(t *testing.T) {
	s := newTestState()

	watchHigh(s, "a1", music)
	watchHigh(s, "a2", music)
	if s.PreferredCategory() != "" {
		t.Fatal("two watches must not lock in")
	}

	watchHigh(s, "a3", music)
	if got := s.PreferredCategory(); got != "Music" {
		t.Fatalf("PreferredCategory = %q, want Music", got)
	}
	if st := s.CategoryStreak(); st.Category != "Music" || st.Count != StreakThreshold {
		t.Errorf("CategoryStreak = %+v", st)
	}

	watchHigh(s, "b1", career.FromCanonical(career.Sports))
	if got := s.PreferredCategory(); got != "" {
		t.Errorf("PreferredCategory after switch = %q, want none", got)
	}
	if st := s.CategoryStreak(); st != (Streak{}) {
		t.Errorf("CategoryStreak after switch = %+v, want zero", st)
	}
}

func TestStreak_SameVideoRewatched(t *testing.T) {
	s := newTestState()
	for i := 0; i < 3; i++ {
		s.RecordWatch("A", 9_000, 10_000, music)
	}
	if got := s.PreferredCategory(); got != "Music" {
		t.Errorf("PreferredCategory = %q, want Music", got)
	}
}

func TestStreak_CodesNormalizeTogether(t *testing.T) {
	s := newTestState()
	watchHigh(s, "a", career.FromCode("music_production"))
	watchHigh(s, "b", career.FromCode("rap_music"))
	watchHigh(s, "c", music)

	if got := s.PreferredCategory(); got != "Music" {
		t.Errorf("PreferredCategory = %q, want Music", got)
	}
	for _, w := range s.CategoryHistory() {
		if w.Category != "Music" {
			t.Errorf("history entry %q not normalized", w.Category)
		}
	}
}

func TestStreak_InterruptedRunDoesNotLock(t *testing.T) {
	s := newTestState()
	sports := career.FromCanonical(career.Sports)

	watchHigh(s, "a", music)
	watchHigh(s, "b", music)
	watchHigh(s, "c", sports)
	watchHigh(s, "d", music)
	if s.PreferredCategory() != "" {
		t.Errorf("PreferredCategory = %q, interrupted run must not lock", s.PreferredCategory())
	}

	watchHigh(s, "e", music)
	if s.PreferredCategory() != "" {
		t.Error("two after an interruption must not lock")
	}
	watchHigh(s, "f", music)
	if s.PreferredCategory() != "Music" {
		t.Error("three consecutive after an interruption should lock")
	}
}

func TestStreak_BuildingDoesNotReset(t *testing.T) {
	s := newTestState()
	film := career.FromCanonical(career.FilmTelevision)

	watchHigh(s, "a", music)
	watchHigh(s, "b", music)
	watchHigh(s, "c", music)
	// Switching releases; a second watch of the new category keeps it released
	// without touching anything else.
	watchHigh(s, "d", film)
	watchHigh(s, "e", film)
	if s.PreferredCategory() != "" || s.CategoryStreak().Count != 0 {
		t.Error("building streak should leave state cleared")
	}
	watchHigh(s, "f", film)
	if s.PreferredCategory() != "Film & Television" {
		t.Errorf("PreferredCategory = %q", s.PreferredCategory())
	}
}

func TestStreak_LowEngagementIgnored(t *testing.T) {
	s := newTestState()
	for i := 0; i < 3; i++ {
		s.RecordWatch(fmt.Sprintf("v%d", i), 5_000, 10_000, music)
	}
	if len(s.CategoryHistory()) != 0 || s.PreferredCategory() != "" {
		t.Error("watches at or below 70% must not reach the streak detector")
	}
}

func TestStreak_HistoryBounded(t *testing.T) {
	cats := []career.Category{
		music,
		career.FromCanonical(career.Sports),
		career.FromCode("filmmaking"),
	}

	for n := 1; n <= 25; n++ {
		s := newTestState()
		var want []string
		for i := 0; i < n; i++ {
			c := cats[i%len(cats)]
			watchHigh(s, fmt.Sprintf("v%d", i), c)
			want = append(want, career.Normalize(c))
		}

		got := s.CategoryHistory()
		wantLen := n
		if wantLen > HistoryCapacity {
			wantLen = HistoryCapacity
		}
		if len(got) != wantLen {
			t.Fatalf("after %d calls len = %d, want %d", n, len(got), wantLen)
		}
		want = want[len(want)-wantLen:]
		for i := range got {
			if got[i].Category != want[i] {
				t.Fatalf("after %d calls history[%d] = %q, want %q", n, i, got[i].Category, want[i])
			}
		}
	}
}

func TestStreak_RunLengthTracksLongRuns(t *testing.T) {
	s := newTestState()
	for i := 0; i < 7; i++ {
		watchHigh(s, fmt.Sprintf("v%d", i), music)
	}
	if s.CategoryStreak().Count != StreakThreshold {
		t.Errorf("streak count = %d, want capped at %d", s.CategoryStreak().Count, StreakThreshold)
	}
	if s.RunLength() != 7 {
		t.Errorf("RunLength = %d, want 7", s.RunLength())
	}

	for i := 0; i < 15; i++ {
		watchHigh(s, fmt.Sprintf("w%d", i), music)
	}
	if s.RunLength() != HistoryCapacity {
		t.Errorf("RunLength = %d, want %d", s.RunLength(), HistoryCapacity)
	}
}

func TestResetCategoryPreference(t *testing.T) {
	s := newTestState()
	for i := 0; i < 3; i++ {
		watchHigh(s, fmt.Sprintf("v%d", i), music)
	}
	s.ResetCategoryPreference()

	if s.PreferredCategory() != "" || s.CategoryStreak() != (Streak{}) {
		t.Error("reset should clear preference and streak")
	}
	if len(s.CategoryHistory()) != 3 {
		t.Error("reset should keep the history")
	}
}
