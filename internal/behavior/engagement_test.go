// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package behavior

import (
	"testing"

	"github.com/tomtom215/spark/internal/career"
)

func TestEngagementScore(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *State)
		want  float64
	}{
		{
			name:  "unknown video",
			setup: func(s *State) {},
			want:  0,
		},
		{
			name:  "liked",
			setup: func(s *State) { s.Like("v", career.Category{}) },
			want:  20,
		},
		{
			name: "replays are uncapped",
			setup: func(s *State) {
				for i := 0; i < 10; i++ {
					s.Replay("v", career.Category{})
				}
			},
			want: 150,
		},
		{
			name: "reactions and comments",
			setup: func(s *State) {
				s.React("v", ReactionWow, career.Category{})
				s.React("v", "meh", career.Category{})
				s.Comment("v", "nice", career.Category{})
			},
			want: 32,
		},
		{
			name:  "skipped floors at zero",
			setup: func(s *State) { s.RecordWatch("v", 100, 60_000, career.Category{}) },
			want:  0,
		},
		{
			name: "skipped offsets other signals",
			setup: func(s *State) {
				s.RecordWatch("v", 100, 60_000, career.Category{})
				s.Like("v", career.Category{})
				s.Replay("v", career.Category{})
			},
			want: 5,
		},
		{
			name:  "long watch bonus",
			setup: func(s *State) { s.RecordWatch("v", 61_000, 120_000, career.Category{}) },
			want:  25,
		},
		{
			name:  "exactly sixty seconds gets no bonus",
			setup: func(s *State) { s.RecordWatch("v", 60_000, 120_000, career.Category{}) },
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState()
			tt.setup(s)
			if got := s.EngagementScore("v"); got != tt.want {
				t.Errorf("EngagementScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEngagementScore_NeverNegative(t *testing.T) {
	s := newTestState()
	for i := 0; i < 50; i++ {
		id := string(rune('a' + i%5))
		switch i % 4 {
		case 0:
			s.RecordWatch(id, 10, 100_000, career.Category{})
		case 1:
			s.Unlike(id, career.Category{})
		case 2:
			s.React(id, "meh", career.Category{})
		case 3:
			s.Like(id, career.Category{})
		}
		if got := s.EngagementScore(id); got < 0 {
			t.Fatalf("EngagementScore(%s) = %v", id, got)
		}
	}
}
