// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/spark/internal/models"
)

type fakeHelix struct {
	tokens atomic.Int32
}

func (f *fakeHelix) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.URL.Path {
	case "/oauth2/token":
		f.tokens.Add(1)
		if err := r.ParseForm(); err != nil || r.Form.Get("grant_type") != "client_credentials" || r.Form.Get("client_id") != "cid" {
			http.Error(w, "bad token request", http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "app-token", "token_type": "bearer", "expires_in": 3600,
		})
		return
	}

	if r.Header.Get("Authorization") != "Bearer app-token" || r.Header.Get("Client-ID") != "cid" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.URL.Path {
	case "/helix/games":
		if r.URL.Query().Get("name") != "Music" {
			_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"id": "26936", "name": "Music"}},
		})
	case "/helix/streams":
		q := r.URL.Query()
		if n, _ := strconv.Atoi(q.Get("first")); n < 1 || n > 100 {
			http.Error(w, "first out of range", http.StatusBadRequest)
			return
		}
		title := "Global top"
		if q.Get("game_id") == "26936" {
			title = "Live beat making at Lincoln High"
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{
				"id": "s1", "user_name": "producer", "game_name": "Music", "title": title,
				"viewer_count": 420, "started_at": "2026-02-01T10:00:00Z",
				"thumbnail_url": "https://static/s1-{width}x{height}.jpg",
			}},
		})
	default:
		http.NotFound(w, r)
	}
}

func newTestTwitch(t *testing.T) (*Twitch, *fakeHelix) {
	t.Helper()
	fake := &fakeHelix{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	logger := zerolog.Nop()
	tw, err := NewTwitch(context.Background(), TwitchConfig{
		ClientID:     "cid",
		ClientSecret: "secret",
		APIBase:      srv.URL + "/helix",
		TokenURL:     srv.URL + "/oauth2/token",
		Logger:       &logger,
	})
	if err != nil {
		t.Fatalf("NewTwitch() error = %v", err)
	}
	return tw, fake
}

func TestNewTwitch_RequiresCredentials(t *testing.T) {
	_, err := NewTwitch(context.Background(), TwitchConfig{ClientID: "cid"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestTwitch_TopStreamsByGame(t *testing.T) {
	tw, fake := newTestTwitch(t)

	streams, err := tw.TopStreams(context.Background(), "Music", 500)
	if err != nil {
		t.Fatalf("TopStreams() error = %v", err)
	}
	if len(streams) != 1 {
		t.Fatalf("streams = %d, want 1", len(streams))
	}
	s := streams[0]
	if s.Thumbnail != "https://static/s1-320x180.jpg" {
		t.Errorf("thumbnail = %q", s.Thumbnail)
	}
	if s.StreamID != "s1" || s.ChannelName != "producer" || s.ViewerCount != 420 || s.Platform != "twitch" {
		t.Errorf("stream = %+v", s)
	}

	if _, err := tw.TopStreams(context.Background(), "", 0); err != nil {
		t.Fatalf("TopStreams(global) error = %v", err)
	}
	if got := fake.tokens.Load(); got != 1 {
		t.Errorf("token requests = %d, want 1 (token reused)", got)
	}
}

func TestTwitch_UnknownGame(t *testing.T) {
	tw, _ := newTestTwitch(t)

	streams, err := tw.TopStreams(context.Background(), "Nonexistent", 10)
	if err != nil {
		t.Fatalf("TopStreams() error = %v", err)
	}
	if len(streams) != 0 {
		t.Errorf("streams = %v, want none", streams)
	}
}

func TestTwitch_Fetch(t *testing.T) {
	tw, _ := newTestTwitch(t)

	page, err := tw.Fetch(context.Background(), Query{Category: "Music", School: "lincoln high"})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(page.Videos) != 1 {
		t.Fatalf("videos = %d, want 1", len(page.Videos))
	}
	v := page.Videos[0]
	if v.Platform != models.PlatformTwitch || v.ID != "s1" || v.ViewCount != 420 {
		t.Errorf("video = %+v", v)
	}
	if !v.IsLocalArtist {
		t.Error("stream title mentions the school")
	}
	if page.NextPageToken != "" {
		t.Errorf("NextPageToken = %q, want empty", page.NextPageToken)
	}
}

func TestFormatThumbnail(t *testing.T) {
	if got := formatThumbnail(""); got != "" {
		t.Errorf("formatThumbnail(\"\") = %q", got)
	}
	if got := formatThumbnail("a-{width}x{height}"); got != "a-320x180" {
		t.Errorf("formatThumbnail = %q", got)
	}
}
