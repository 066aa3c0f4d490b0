// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package api

import (
	"net/http"

	"github.com/tomtom215/spark/internal/behavior"
	"github.com/tomtom215/spark/internal/feed"
	"github.com/tomtom215/spark/internal/models"
	"github.com/tomtom215/spark/internal/validation"
)

type candidatesRequest struct {
	Candidates []models.Video `json:"candidates" validate:"max=500,dive"`

	// Limit is only read by /api/feed/personalized. Absent means the
	// configured default; zero or negative yields an empty feed.
	Limit *int `json:"limit"`
}

type feedQuery struct {
	Limit     int    `json:"limit" validate:"gte=0"`
	PageToken string `json:"pageToken" validate:"max=256"`
	Category  string `json:"category" validate:"omitempty,canonical"`
	Region    string `json:"region" validate:"omitempty,region"`
	School    string `json:"school" validate:"max=128"`
	More      bool   `json:"more"`
}

// Feed handles GET /api/feed. It picks a category, fetches candidates, and
// returns them ranked for the session.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	if h.feed == nil {
		respondErr(w, r, ErrSourceDisabled)
		return
	}
	q := feedQuery{
		Limit:     getIntParam(r, "limit", 0),
		PageToken: r.URL.Query().Get("pageToken"),
		Category:  r.URL.Query().Get("category"),
		Region:    r.URL.Query().Get("region"),
		School:    r.URL.Query().Get("school"),
		More:      getBoolParam(r, "more"),
	}
	if verr := validation.ValidateStruct(&q); verr != nil {
		respondInvalid(w, r, verr)
		return
	}

	s := sessionFrom(r)
	resp, err := h.feed.Load(r.Context(), s.Tracker, s.Selector, feed.Request{
		Limit:     q.Limit,
		PageToken: q.PageToken,
		Category:  q.Category,
		More:      q.More,
		Region:    q.Region,
		School:    q.School,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondList(w, r, resp.Videos, resp.NextPageToken, resp.Category)
}

// Score handles POST /api/feed/score: every candidate scored and sorted.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	var req candidatesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var scored []models.ScoredVideo
	sessionFrom(r).Tracker.View(func(s *behavior.State) {
		scored = h.engine.ScoreVideosForUser(s, req.Candidates)
	})
	respondList(w, r, scored, "", "")
}

// Personalized handles POST /api/feed/personalized: the mixed feed built
// from the posted candidates.
func (h *Handler) Personalized(w http.ResponseWriter, r *http.Request) {
	var req candidatesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	limit := h.engine.Config().Mix.DefaultLimit
	if req.Limit != nil {
		limit = min(*req.Limit, h.engine.Config().Mix.MaxLimit)
	}

	var items []models.ScoredVideo
	sessionFrom(r).Tracker.View(func(s *behavior.State) {
		items = h.engine.PersonalizedFeed(s, req.Candidates, limit)
	})
	respondList(w, r, items, "", "")
}
