// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package behavior

import (
	"math"
	"sort"
	"time"

	"github.com/tomtom215/spark/internal/career"
)

// Interest score adjustments per interaction.
const (
	LikePoints     = 10.0
	UnlikePoints   = -2.0
	ReplayPoints   = 15.0
	ReactionPoints = 8.0
	CommentPoints  = 12.0

	MinInterest = 0.0
	MaxInterest = 100.0
)

// Watch thresholds. Fractions are of the assumed total duration.
const (
	HighEngagementFraction = 0.70
	SkipFraction           = 0.10
	SkipMaxDeltaMs         = 3000
)

// ReactionKind names a reaction button. Any kind is recorded; only
// positive kinds move interest scores.
type ReactionKind string

// Positive reactions.
const (
	ReactionLove     ReactionKind = "love"
	ReactionInspired ReactionKind = "inspired"
	ReactionWow      ReactionKind = "wow"
)

// Positive reports whether the reaction raises interest in the category.
func (k ReactionKind) Positive() bool {
	switch k {
	case ReactionLove, ReactionInspired, ReactionWow:
		return true
	default:
		return false
	}
}

// Reaction is one recorded reaction on a video.
type Reaction struct {
	Kind ReactionKind `json:"type"`
	At   time.Time    `json:"timestamp"`
}

// Comment is one recorded comment on a video.
type Comment struct {
	Text string    `json:"text"`
	At   time.Time `json:"timestamp"`
}

// Interest is a category and its score.
type Interest struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// State is the behavioral model of one viewer.
// The zero value is not usable; call NewState.
type State struct {
	watchTimeMs    map[string]int64
	liked          map[string]struct{}
	replays        map[string]int
	reactions      map[string][]Reaction
	comments       map[string][]Comment
	skipped        map[string]struct{}
	highEngagement map[string]struct{}

	interests     map[string]float64
	interestOrder []string

	history   []CategoryWatch
	streak    Streak
	preferred string
	runLength int

	scrolls []ScrollEvent

	now func() time.Time
}

// NewState returns an empty State using the wall clock.
func NewState() *State {
	return newStateWithClock(time.Now)
}

func newStateWithClock(now func() time.Time) *State {
	if now == nil {
		now = time.Now
	}
	return &State{
		watchTimeMs:    make(map[string]int64),
		liked:          make(map[string]struct{}),
		replays:        make(map[string]int),
		reactions:      make(map[string][]Reaction),
		comments:       make(map[string][]Comment),
		skipped:        make(map[string]struct{}),
		highEngagement: make(map[string]struct{}),
		interests:      make(map[string]float64),
		now:            now,
	}
}

// Reset returns the state to its zero value, keeping the clock.
func (s *State) Reset() {
	*s = *newStateWithClock(s.now)
}

// RecordWatch accumulates deltaMs of watch time for videoID and classifies the
// view against totalMs. Views above 70% mark the video as highly engaged and,
// when a category is given, feed the streak detector. Views below 10% that
// lasted under three seconds mark the video as skipped. Both checks run on
// every call.
func (s *State) RecordWatch(videoID string, deltaMs, totalMs int64, category career.Category) {
	if deltaMs < 0 {
		deltaMs = 0
	}
	s.watchTimeMs[videoID] += deltaMs

	var fraction float64
	if totalMs > 0 {
		fraction = float64(s.watchTimeMs[videoID]) / float64(totalMs)
	}

	if fraction > HighEngagementFraction {
		s.highEngagement[videoID] = struct{}{}
		if !category.IsZero() {
			s.trackCategoryWatch(category)
		}
	}

	if fraction < SkipFraction && deltaMs < SkipMaxDeltaMs {
		s.skipped[videoID] = struct{}{}
	}
}

// Like marks videoID as liked. Repeated likes keep adding interest.
func (s *State) Like(videoID string, category career.Category) {
	s.liked[videoID] = struct{}{}
	s.adjustInterest(category, LikePoints)
}

// Unlike removes the like and slightly lowers interest.
func (s *State) Unlike(videoID string, category career.Category) {
	delete(s.liked, videoID)
	s.adjustInterest(category, UnlikePoints)
}

// Replay counts a replay of videoID.
func (s *State) Replay(videoID string, category career.Category) {
	s.replays[videoID]++
	s.adjustInterest(category, ReplayPoints)
}

// React records a reaction. Only positive kinds move interest.
func (s *State) React(videoID string, kind ReactionKind, category career.Category) {
	s.reactions[videoID] = append(s.reactions[videoID], Reaction{Kind: kind, At: s.now()})
	if kind.Positive() {
		s.adjustInterest(category, ReactionPoints)
	}
}

// Comment records a comment on videoID.
func (s *State) Comment(videoID, text string, category career.Category) {
	s.comments[videoID] = append(s.comments[videoID], Comment{Text: text, At: s.now()})
	s.adjustInterest(category, CommentPoints)
}

// adjustInterest adds points to the category's score and clamps the result.
// Interest keys are the category identifier as supplied.
func (s *State) adjustInterest(category career.Category, points float64) {
	if category.IsZero() {
		return
	}
	key := category.String()
	current, ok := s.interests[key]
	if !ok {
		s.interestOrder = append(s.interestOrder, key)
	}
	s.interests[key] = clampInterest(finite(current) + finite(points))
}

// Interests returns every interest sorted by descending score. Ties keep the
// order in which the categories were first recorded.
func (s *State) Interests() []Interest {
	out := make([]Interest, 0, len(s.interestOrder))
	for _, key := range s.interestOrder {
		out = append(out, Interest{Category: key, Score: s.interests[key]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// TopInterests returns the first n entries of Interests.
func (s *State) TopInterests(n int) []Interest {
	all := s.Interests()
	if n < 0 {
		n = 0
	}
	if n < len(all) {
		return all[:n]
	}
	return all
}

// InterestScore returns the score for a category identifier.
func (s *State) InterestScore(category string) (float64, bool) {
	v, ok := s.interests[category]
	return v, ok
}

// HasLiked reports whether videoID is currently liked.
func (s *State) HasLiked(videoID string) bool {
	_, ok := s.liked[videoID]
	return ok
}

// ReplayCount returns how often videoID was replayed.
func (s *State) ReplayCount(videoID string) int {
	return s.replays[videoID]
}

// WatchTime returns the cumulative milliseconds watched for videoID.
func (s *State) WatchTime(videoID string) int64 {
	return s.watchTimeMs[videoID]
}

// IsSkipped reports whether videoID was classified as skipped.
func (s *State) IsSkipped(videoID string) bool {
	_, ok := s.skipped[videoID]
	return ok
}

// IsHighEngagement reports whether videoID was watched past 70%.
func (s *State) IsHighEngagement(videoID string) bool {
	_, ok := s.highEngagement[videoID]
	return ok
}

// Reactions returns a copy of the reactions recorded on videoID.
func (s *State) Reactions(videoID string) []Reaction {
	return append([]Reaction(nil), s.reactions[videoID]...)
}

// Comments returns a copy of the comments recorded on videoID.
func (s *State) Comments(videoID string) []Comment {
	return append([]Comment(nil), s.comments[videoID]...)
}

func clampInterest(v float64) float64 {
	return math.Max(MinInterest, math.Min(MaxInterest, v))
}

// finite maps NaN and infinities to zero.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
