// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package behavior

import (
	"fmt"
	"sort"
	"time"

	"github.com/goccy/go-json"
)

// SnapshotVersion is written into every encoded snapshot.
const SnapshotVersion = 1

// Snapshot is the persisted form of a State. Sets are rendered as sorted
// slices and interests keep their first-recorded order.
type Snapshot struct {
	Version               int                   `json:"version"`
	WatchTime             map[string]int64      `json:"watchTime"`
	Likes                 []string              `json:"likes"`
	Replays               map[string]int        `json:"replays"`
	Reactions             map[string][]Reaction `json:"reactions"`
	Comments              map[string][]Comment  `json:"comments"`
	SkippedVideos         []string              `json:"skippedVideos"`
	HighEngagement        []string              `json:"highEngagement"`
	Interests             []Interest            `json:"interests"`
	CategoryWatchHistory  []CategoryWatch       `json:"categoryWatchHistory"`
	CurrentCategoryStreak Streak                `json:"currentCategoryStreak"`
	PreferredCategory     string                `json:"preferredCategory,omitempty"`
	ScrollPatterns        []ScrollEvent         `json:"scrollPatterns"`
	LastUpdated           time.Time             `json:"lastUpdated"`
}

// Snapshot captures the state for persistence.
func (s *State) Snapshot() Snapshot {
	interests := make([]Interest, 0, len(s.interestOrder))
	for _, key := range s.interestOrder {
		interests = append(interests, Interest{Category: key, Score: s.interests[key]})
	}

	reactions := make(map[string][]Reaction, len(s.reactions))
	for id, list := range s.reactions {
		reactions[id] = append([]Reaction(nil), list...)
	}
	comments := make(map[string][]Comment, len(s.comments))
	for id, list := range s.comments {
		comments[id] = append([]Comment(nil), list...)
	}
	watch := make(map[string]int64, len(s.watchTimeMs))
	for id, ms := range s.watchTimeMs {
		watch[id] = ms
	}
	replays := make(map[string]int, len(s.replays))
	for id, n := range s.replays {
		replays[id] = n
	}

	return Snapshot{
		Version:               SnapshotVersion,
		WatchTime:             watch,
		Likes:                 setToSlice(s.liked),
		Replays:               replays,
		Reactions:             reactions,
		Comments:              comments,
		SkippedVideos:         setToSlice(s.skipped),
		HighEngagement:        setToSlice(s.highEngagement),
		Interests:             interests,
		CategoryWatchHistory:  s.CategoryHistory(),
		CurrentCategoryStreak: s.streak,
		PreferredCategory:     s.preferred,
		ScrollPatterns:        s.Scrolls(),
		LastUpdated:           s.now(),
	}
}

// restore replaces the state with the snapshot contents. Bounds and
// interest ranges are re-applied so a hand-edited snapshot cannot break
// the invariants.
func (s *State) restore(snap *Snapshot) {
	s.Reset()

	for id, ms := range snap.WatchTime {
		if ms < 0 {
			ms = 0
		}
		s.watchTimeMs[id] = ms
	}
	for _, id := range snap.Likes {
		s.liked[id] = struct{}{}
	}
	for id, n := range snap.Replays {
		if n > 0 {
			s.replays[id] = n
		}
	}
	for id, list := range snap.Reactions {
		s.reactions[id] = append([]Reaction(nil), list...)
	}
	for id, list := range snap.Comments {
		s.comments[id] = append([]Comment(nil), list...)
	}
	for _, id := range snap.SkippedVideos {
		s.skipped[id] = struct{}{}
	}
	for _, id := range snap.HighEngagement {
		s.highEngagement[id] = struct{}{}
	}
	for _, in := range snap.Interests {
		if _, dup := s.interests[in.Category]; dup || in.Category == "" {
			continue
		}
		s.interestOrder = append(s.interestOrder, in.Category)
		s.interests[in.Category] = clampInterest(finite(in.Score))
	}

	history := snap.CategoryWatchHistory
	if n := len(history); n > HistoryCapacity {
		history = history[n-HistoryCapacity:]
	}
	s.history = append([]CategoryWatch(nil), history...)
	if n := len(s.history); n > 0 {
		s.runLength = s.trailingRun(s.history[n-1].Category)
	}

	s.streak = snap.CurrentCategoryStreak
	s.preferred = snap.PreferredCategory

	scrolls := snap.ScrollPatterns
	if n := len(scrolls); n > ScrollCapacity {
		scrolls = scrolls[n-ScrollCapacity:]
	}
	s.scrolls = append([]ScrollEvent(nil), scrolls...)
}

// Encode serializes the state.
func Encode(s *State) ([]byte, error) {
	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("encode behavior snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot into a new State using the given clock.
func Decode(data []byte, now func() time.Time) (*State, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode behavior snapshot: %w", err)
	}
	s := newStateWithClock(now)
	s.restore(&snap)
	return s, nil
}

func setToSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
