// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package api

import (
	"net/http"

	"github.com/tomtom215/spark/internal/logging"
	"github.com/tomtom215/spark/internal/source"
)

// Passthrough bounds.
const (
	defaultTopResults = 20
	maxYouTubeResults = 50
	maxTwitchResults  = 100
)

// YouTubeTop handles GET /api/youtube/top.
//
// Query: q (free-text search), category (canonical career category),
// regionCode (default US), maxResults (default 20, max 50), pageToken.
// Without q or category the most popular chart is returned.
func (h *Handler) YouTubeTop(w http.ResponseWriter, r *http.Request) {
	if h.youtube == nil {
		respondErr(w, r, ErrSourceDisabled)
		return
	}

	q := r.URL.Query()
	query := source.Query{
		Search:     q.Get("q"),
		Category:   q.Get("category"),
		Region:     q.Get("regionCode"),
		MaxResults: clampTop(getIntParam(r, "maxResults", defaultTopResults), maxYouTubeResults),
		PageToken:  q.Get("pageToken"),
	}
	if query.Region == "" {
		query.Region = source.DefaultRegion
	}

	logging.Ctx(r.Context()).Debug().
		Str("query", sanitizeLogValue(query.Search)).
		Str("category", sanitizeLogValue(query.Category)).
		Str("region", sanitizeLogValue(query.Region)).
		Int("max", query.MaxResults).
		Msg("YouTube passthrough")

	page, err := h.youtube.Fetch(r.Context(), query)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondList(w, r, page.Videos, page.NextPageToken, page.Category)
}

// TwitchTop handles GET /api/twitch/top.
//
// Query: game (optional game name), maxResults (default 20, max 100).
func (h *Handler) TwitchTop(w http.ResponseWriter, r *http.Request) {
	if h.twitch == nil {
		respondErr(w, r, ErrSourceDisabled)
		return
	}

	query := source.Query{
		Game:       r.URL.Query().Get("game"),
		MaxResults: clampTop(getIntParam(r, "maxResults", defaultTopResults), maxTwitchResults),
	}

	page, err := h.twitch.Fetch(r.Context(), query)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondList(w, r, page.Videos, "", "")
}

// clampTop applies the passthrough bounds: non-positive values fall back to
// the default.
func clampTop(n, limit int) int {
	if n <= 0 {
		n = defaultTopResults
	}
	return min(n, limit)
}
