// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package recommend

import (
	"testing"

	"github.com/tomtom215/spark/internal/behavior"
)

func TestCareerInsights_ColdStart(t *testing.T) {
	e := newTestEngine(t)

	got := e.CareerInsights(&fakeProfile{})

	if got.Message != ColdStartMessage {
		t.Errorf("Message = %q", got.Message)
	}
	if got.TopCareer != nil {
		t.Errorf("TopCareer = %+v, want nil", got.TopCareer)
	}
	if got.Suggestions == nil || len(got.Suggestions) != 0 {
		t.Errorf("Suggestions = %#v, want empty non-nil", got.Suggestions)
	}
}

func TestCareerInsights(t *testing.T) {
	e := newTestEngine(t)
	p := &fakeProfile{interests: []behavior.Interest{
		{Category: "music_production", Score: 90},
		{Category: "dance", Score: 70},
		{Category: "Film & Television", Score: 40},
		{Category: "street_art", Score: 30},
		{Category: "Sports", Score: 20},
		{Category: "Music", Score: 10},
	}}

	got := e.CareerInsights(p)

	if got.Message != "You're showing strong interest in Music Production!" {
		t.Errorf("Message = %q", got.Message)
	}
	if got.TopCareer == nil {
		t.Fatal("TopCareer = nil")
	}
	if got.TopCareer.Name != "Music Production" || got.TopCareer.Score != 90 {
		t.Errorf("TopCareer = %+v", got.TopCareer)
	}
	if got.TopCareer.Description != "Create beats, produce tracks, and work in recording studios" {
		t.Errorf("Description = %q", got.TopCareer.Description)
	}

	want := []Suggestion{
		{Name: "Dance & Choreography", Score: 70},
		{Name: "Film & Television", Score: 40},
		{Name: "Street Art", Score: 30},
	}
	if len(got.Suggestions) != len(want) {
		t.Fatalf("Suggestions = %+v, want %+v", got.Suggestions, want)
	}
	for i := range want {
		if got.Suggestions[i] != want[i] {
			t.Errorf("Suggestions[%d] = %+v, want %+v", i, got.Suggestions[i], want[i])
		}
	}
}

func TestCareerInsights_UnknownDescription(t *testing.T) {
	e := newTestEngine(t)
	p := &fakeProfile{interests: []behavior.Interest{{Category: "Sports", Score: 12}}}

	got := e.CareerInsights(p)

	if got.TopCareer.Description != "A creative career path worth exploring" {
		t.Errorf("Description = %q", got.TopCareer.Description)
	}
	if len(got.Suggestions) != 0 {
		t.Errorf("Suggestions = %+v, want none", got.Suggestions)
	}
}

func TestPredictNextInterest(t *testing.T) {
	tests := []struct {
		name      string
		interests []behavior.Interest
		want      string
		wantOK    bool
	}{
		{name: "none", wantOK: false},
		{
			name:      "single interest",
			interests: []behavior.Interest{{Category: "music_production", Score: 50}},
			wantOK:    false,
		},
		{
			name: "known successor",
			interests: []behavior.Interest{
				{Category: "music_production", Score: 50},
				{Category: "dance", Score: 20},
			},
			want:   "Video Editing",
			wantOK: true,
		},
		{
			name: "unmapped successor gets title case",
			interests: []behavior.Interest{
				{Category: "dance", Score: 50},
				{Category: "rap_music", Score: 20},
			},
			want:   "Choreography",
			wantOK: true,
		},
		{
			name: "no adjacency",
			interests: []behavior.Interest{
				{Category: "Music", Score: 50},
				{Category: "dance", Score: 20},
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			got, ok := e.PredictNextInterest(&fakeProfile{interests: tt.interests})
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("PredictNextInterest() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
