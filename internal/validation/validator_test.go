// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package validation

import (
	"strings"
	"testing"
)

type feedQuery struct {
	Limit    int    `json:"limit" validate:"gte=0,lte=100"`
	Category string `json:"category" validate:"omitempty,canonical"`
	Region   string `json:"region" validate:"omitempty,region"`
	Kind     string `json:"kind" validate:"omitempty,oneof=love wow"`
	VideoID  string `json:"videoId" validate:"required,max=8"`
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct(t *testing.T) {
	valid := feedQuery{Limit: 20, Category: "Music", Region: "US", Kind: "wow", VideoID: "abc"}

	tests := []struct {
		name      string
		mutate    func(q *feedQuery)
		wantField string
		wantMsg   string
	}{
		{name: "valid", mutate: func(*feedQuery) {}},
		{name: "limit too high", mutate: func(q *feedQuery) { q.Limit = 101 }, wantField: "limit", wantMsg: "limit must be less than or equal to 100"},
		{name: "unknown category", mutate: func(q *feedQuery) { q.Category = "music" }, wantField: "category", wantMsg: "category must be a career category"},
		{name: "lower-case region", mutate: func(q *feedQuery) { q.Region = "us" }, wantField: "region", wantMsg: "region must be a two-letter region code"},
		{name: "bad kind", mutate: func(q *feedQuery) { q.Kind = "meh" }, wantField: "kind", wantMsg: "kind must be one of: love wow"},
		{name: "missing video", mutate: func(q *feedQuery) { q.VideoID = "" }, wantField: "videoId", wantMsg: "videoId is required"},
		{name: "long video id", mutate: func(q *feedQuery) { q.VideoID = "123456789" }, wantField: "videoId", wantMsg: "videoId must be at most 8 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid
			tt.mutate(&q)
			err := ValidateStruct(&q)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if got := err.Details()[tt.wantField]; got != tt.wantMsg {
				t.Errorf("Details()[%q] = %q, want %q", tt.wantField, got, tt.wantMsg)
			}
		})
	}
}

func TestRequestValidationError_JoinsMessages(t *testing.T) {
	err := ValidateStruct(&feedQuery{Limit: -1})
	if err == nil {
		t.Fatal("expected errors")
	}
	if len(err.Fields) != 2 {
		t.Fatalf("got %d field errors, want 2", len(err.Fields))
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("Error() = %q, want joined messages", err.Error())
	}
}
