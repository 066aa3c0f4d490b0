// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/spark/internal/career"
	"github.com/tomtom215/spark/internal/feed"
	"github.com/tomtom215/spark/internal/models"
	"github.com/tomtom215/spark/internal/recommend"
	"github.com/tomtom215/spark/internal/session"
	"github.com/tomtom215/spark/internal/source"
	"github.com/tomtom215/spark/internal/store"
)

// stubSource serves the same page for every category.
type stubSource struct {
	mu      sync.Mutex
	videos  []models.Video
	err     error
	queries []source.Query
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(_ context.Context, q source.Query) (source.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, q)
	if s.err != nil {
		return source.Page{}, s.err
	}
	return source.Page{Videos: s.videos, NextPageToken: "next", Category: q.Category}, nil
}

func (s *stubSource) lastQuery() source.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries[len(s.queries)-1]
}

func sampleVideos(n int) []models.Video {
	out := make([]models.Video, n)
	for i := range out {
		out[i] = models.Video{
			ID:             fmt.Sprintf("v%d", i),
			Title:          fmt.Sprintf("Video %d", i),
			CareerCategory: career.FromCanonical(career.Music),
		}
	}
	return out
}

type testServer struct {
	t       *testing.T
	handler http.Handler
	youtube *stubSource
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	tokens, err := session.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	engine, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	yt := &stubSource{videos: sampleVideos(8)}
	registry := session.NewRegistry(store.NewMemorySink(), session.Config{
		Capacity:    100,
		IdleTimeout: time.Hour,
	}, zerolog.Nop())

	h := NewHandler(Deps{
		Sessions: registry,
		Tokens:   tokens,
		Engine:   engine,
		Feed:     feed.NewService(yt, engine, "", zerolog.Nop()),
		YouTube:  yt,
		Version:  "test",
	})

	cfg := DefaultRouterConfig()
	cfg.RateLimitDisabled = true
	return &testServer{t: t, handler: NewRouter(h, cfg), youtube: yt}
}

// do sends a request and decodes the envelope. Data is left raw.
func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		s.t.Fatalf("%s %s: body %q is not an envelope: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, env
}

// session creates a session and returns its token.
func (s *testServer) session() string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/sessions", "", nil)
	if code != http.StatusCreated {
		s.t.Fatalf("create session: %d", code)
	}
	var out sessionResponse
	env.decode(s.t, &out)
	return out.Token
}

type envelope struct {
	Success       bool             `json:"success"`
	Count         *int             `json:"count"`
	Data          json.RawMessage  `json:"data"`
	NextPageToken string           `json:"nextPageToken"`
	Category      string           `json:"category"`
	Error         *models.APIError `json:"error"`
}

func (e envelope) decode(t *testing.T, v any) {
	t.Helper()
	if err := json.Unmarshal(e.Data, v); err != nil {
		t.Fatalf("decode data %s: %v", e.Data, err)
	}
}
