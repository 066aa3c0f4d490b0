// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/spark/internal/behavior"
	"github.com/tomtom215/spark/internal/models"
	"github.com/tomtom215/spark/internal/recommend"
	"github.com/tomtom215/spark/internal/source"
)

func TestHealthAndRoot(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/health", "", nil)
	if code != http.StatusOK || !env.Success {
		t.Fatalf("health: %d %+v", code, env)
	}
	var health HealthStatus
	env.decode(t, &health)
	if health.Message != "API is running" || health.Version != "test" {
		t.Errorf("health = %+v", health)
	}

	if code, _ := s.do(http.MethodGet, "/", "", nil); code != http.StatusOK {
		t.Errorf("root: %d", code)
	}
}

func TestNotFoundEnvelope(t *testing.T) {
	s := newTestServer(t)
	code, env := s.do(http.MethodGet, "/api/nope", "", nil)
	if code != http.StatusNotFound || env.Success || env.Error == nil || env.Error.Code != CodeNotFound {
		t.Errorf("got %d %+v", code, env)
	}
}

func TestSessionRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"garbage", "not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := s.do(http.MethodGet, "/api/behavior/summary", tt.token, nil)
			if code != http.StatusUnauthorized || env.Error == nil || env.Error.Code != CodeUnauthorized {
				t.Errorf("got %d %+v", code, env)
			}
		})
	}
}

func TestBehaviorFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.session()

	code, _ := s.do(http.MethodPost, "/api/behavior/like", token, map[string]any{
		"videoId": "v1", "category": "music_production",
	})
	if code != http.StatusOK {
		t.Fatalf("like: %d", code)
	}
	s.do(http.MethodPost, "/api/behavior/replay", token, map[string]any{"videoId": "v1", "category": "music_production"})
	s.do(http.MethodPost, "/api/behavior/scroll", token, map[string]any{"videoId": "v1", "direction": "down"})

	_, env := s.do(http.MethodGet, "/api/behavior/summary", token, nil)
	var sum behavior.Summary
	env.decode(t, &sum)
	if sum.TotalLikes != 1 || sum.TotalReplays != 1 || sum.TotalScrolls != 1 {
		t.Errorf("summary = %+v", sum)
	}

	_, env = s.do(http.MethodGet, "/api/behavior/interests?limit=3", token, nil)
	var interests []behavior.Interest
	env.decode(t, &interests)
	if len(interests) != 1 || interests[0].Category != "music_production" || interests[0].Score != 25 {
		t.Errorf("interests = %+v", interests)
	}
	if env.Count == nil || *env.Count != 1 {
		t.Errorf("count = %v", env.Count)
	}

	if code, _ := s.do(http.MethodDelete, "/api/behavior", token, nil); code != http.StatusOK {
		t.Fatalf("clear: %d", code)
	}
	_, env = s.do(http.MethodGet, "/api/behavior/summary", token, nil)
	env.decode(t, &sum)
	if sum.TotalLikes != 0 {
		t.Errorf("likes after clear = %d", sum.TotalLikes)
	}
}

func TestWatchLocksInPreference(t *testing.T) {
	s := newTestServer(t)
	token := s.session()

	var pref preferenceState
	for _, id := range []string{"a", "b", "c"} {
		_, env := s.do(http.MethodPost, "/api/behavior/watch", token, map[string]any{
			"videoId": id, "deltaMs": 9000, "durationMs": 10000, "category": "Sports",
		})
		env.decode(t, &pref)
	}
	if pref.PreferredCategory != "Sports" || pref.CategoryStreak.Count != behavior.StreakThreshold {
		t.Fatalf("after three watches: %+v", pref)
	}

	_, env := s.do(http.MethodPost, "/api/behavior/preferred/reset", token, nil)
	env.decode(t, &pref)
	if pref.PreferredCategory != "" {
		t.Errorf("after reset: %+v", pref)
	}
}

func TestValidationErrors(t *testing.T) {
	s := newTestServer(t)
	token := s.session()

	tests := []struct {
		name      string
		path      string
		body      any
		wantField string
	}{
		{"react without kind", "/api/behavior/react", map[string]any{"videoId": "v1"}, "kind"},
		{"scroll bad direction", "/api/behavior/scroll", map[string]any{"direction": "sideways"}, "direction"},
		{"comment too long", "/api/behavior/comment", map[string]any{"videoId": "v1", "text": strings.Repeat("x", 2001)}, "text"},
		{"negative watch", "/api/behavior/watch", map[string]any{"videoId": "v1", "deltaMs": -1}, "deltaMs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := s.do(http.MethodPost, tt.path, token, tt.body)
			if code != http.StatusBadRequest || env.Error == nil || env.Error.Code != CodeValidation {
				t.Fatalf("got %d %+v", code, env)
			}
			if _, ok := env.Error.Details[tt.wantField]; !ok {
				t.Errorf("details %v missing %q", env.Error.Details, tt.wantField)
			}
		})
	}

	code, env := s.do(http.MethodPost, "/api/behavior/like", token, nil)
	if code != http.StatusBadRequest || env.Error.Code != CodeBadRequest {
		t.Errorf("empty body: %d %+v", code, env)
	}
}

func TestScoreColdStart(t *testing.T) {
	s := newTestServer(t)
	token := s.session()

	_, env := s.do(http.MethodPost, "/api/feed/score", token, map[string]any{"candidates": sampleVideos(3)})
	var scored []models.ScoredVideo
	env.decode(t, &scored)
	if len(scored) != 3 {
		t.Fatalf("got %d", len(scored))
	}
	for i, v := range scored {
		if v.RecommendationReason != recommend.ReasonColdStart || v.ID != sampleVideos(3)[i].ID {
			t.Errorf("scored[%d] = %+v", i, v)
		}
	}

	_, env = s.do(http.MethodGet, "/api/health", "", nil)
	var health HealthStatus
	env.decode(t, &health)
	if health.Engine.VideosScored != 3 || health.Engine.ColdStarts != 1 {
		t.Errorf("health engine stats = %+v, want 3 scored and 1 cold start", health.Engine)
	}
	if health.Events != nil {
		t.Errorf("health events = %+v, want omitted without a recorder", health.Events)
	}
}

func TestPersonalizedLimit(t *testing.T) {
	s := newTestServer(t)
	token := s.session()

	// Every sample video shares one category and none is local, so only the
	// 60% top slice contributes unique items.
	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"absent limit uses default", map[string]any{"candidates": sampleVideos(30)}, 12},
		{"explicit limit", map[string]any{"candidates": sampleVideos(30), "limit": 5}, 3},
		{"zero limit is empty", map[string]any{"candidates": sampleVideos(30), "limit": 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, env := s.do(http.MethodPost, "/api/feed/personalized", token, tt.body)
			if env.Count == nil || *env.Count != tt.want {
				t.Errorf("count = %v, want %d", env.Count, tt.want)
			}
		})
	}
}

func TestFeed(t *testing.T) {
	s := newTestServer(t)
	token := s.session()

	code, env := s.do(http.MethodGet, "/api/feed?limit=5&category=Music&region=GB&school=Lincoln", token, nil)
	if code != http.StatusOK {
		t.Fatalf("feed: %d %+v", code, env)
	}
	// One category, no local artists: the top slice of 5 is 3 videos.
	if env.Category != "Music" || env.NextPageToken != "next" || env.Count == nil || *env.Count != 3 {
		t.Errorf("envelope = %+v", env)
	}
	q := s.youtube.lastQuery()
	if q.Region != "GB" || q.School != "Lincoln" || q.Category != "Music" {
		t.Errorf("query = %+v", q)
	}

	code, env = s.do(http.MethodGet, "/api/feed?category=Cooking", token, nil)
	if code != http.StatusBadRequest || env.Error.Details["category"] == "" {
		t.Errorf("bad category: %d %+v", code, env)
	}
}

func TestSourcePassthrough(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/youtube/top?maxResults=500&q=welding", "", nil)
	if code != http.StatusOK || env.Count == nil {
		t.Fatalf("youtube: %d %+v", code, env)
	}
	q := s.youtube.lastQuery()
	if q.MaxResults != maxYouTubeResults || q.Search != "welding" || q.Region != source.DefaultRegion {
		t.Errorf("query = %+v", q)
	}

	code, env = s.do(http.MethodGet, "/api/twitch/top", "", nil)
	if code != http.StatusServiceUnavailable || env.Error.Code != CodeUnavailable {
		t.Errorf("twitch disabled: %d %+v", code, env)
	}

	s.youtube.err = source.ErrCircuitOpen
	code, _ = s.do(http.MethodGet, "/api/youtube/top", "", nil)
	if code != http.StatusServiceUnavailable {
		t.Errorf("circuit open: %d", code)
	}
}

func TestInsights(t *testing.T) {
	s := newTestServer(t)
	token := s.session()

	_, env := s.do(http.MethodGet, "/api/insights", token, nil)
	var ins recommend.Insights
	env.decode(t, &ins)
	if ins.Message != recommend.ColdStartMessage {
		t.Errorf("message = %q", ins.Message)
	}

	_, env = s.do(http.MethodGet, "/api/insights/next", token, nil)
	var next nextInterest
	env.decode(t, &next)
	if next.Found {
		t.Errorf("next = %+v, want none", next)
	}
}
