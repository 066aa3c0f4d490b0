// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package source

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tomtom215/spark/internal/models"
)

// DefaultTimeout bounds a single upstream fetch.
const DefaultTimeout = 10 * time.Second

// DefaultRegion is used when a query has no region.
const DefaultRegion = "US"

var (
	// ErrNotConfigured is returned when a source lacks credentials.
	ErrNotConfigured = errors.New("source not configured")

	// ErrCircuitOpen is returned while a source's circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("source circuit breaker open")
)

// Query describes one page of candidates to fetch.
type Query struct {
	// Category is a canonical career category. Empty means no category.
	Category string `json:"category,omitempty"`

	// Search is a free-text query used when Category is not canonical.
	Search string `json:"q,omitempty"`

	// Game filters Twitch streams by game name. It overrides Category.
	Game string `json:"game,omitempty"`

	Region     string `json:"region,omitempty"`
	MaxResults int    `json:"maxResults,omitempty"`
	PageToken  string `json:"pageToken,omitempty"`

	// School marks videos whose title mentions it as local artist content.
	School string `json:"school,omitempty"`
}

// Page is one fetched page of candidates.
type Page struct {
	Videos        []models.Video `json:"videos"`
	NextPageToken string         `json:"nextPageToken,omitempty"`

	// Category is the category the page was fetched for, if any.
	Category string `json:"category,omitempty"`
}

// Source fetches candidate videos.
type Source interface {
	// Name identifies the source in logs, metrics, and cache keys.
	Name() string

	// Fetch returns one page of candidates.
	Fetch(ctx context.Context, q Query) (Page, error)
}

// clampResults bounds n to [1, max], using def when n is not positive.
func clampResults(n, def, max int) int {
	if n <= 0 {
		n = def
	}
	if n > max {
		n = max
	}
	return n
}

// isLocalArtist reports whether title mentions school, ignoring case.
func isLocalArtist(title, school string) bool {
	school = strings.TrimSpace(school)
	if school == "" {
		return false
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(school))
}
