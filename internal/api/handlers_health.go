// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/spark/internal/events"
	"github.com/tomtom215/spark/internal/recommend"
)

// HealthStatus is the body of GET /api/health.
type HealthStatus struct {
	Message        string                `json:"message"`
	Version        string                `json:"version"`
	Timestamp      time.Time             `json:"timestamp"`
	UptimeSeconds  float64               `json:"uptimeSeconds"`
	ActiveSessions int                   `json:"activeSessions"`
	Sources        map[string]any        `json:"sources"`
	Engine         recommend.Stats       `json:"engine"`
	Events         *events.RecorderStats `json:"events,omitempty"`
}

// Root handles GET /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, http.StatusOK, map[string]any{
		"message": "Spark Backend API",
		"version": h.version,
		"endpoints": map[string]string{
			"youtube": "/api/youtube/top",
			"twitch":  "/api/twitch/top",
			"feed":    "/api/feed",
			"health":  "/api/health",
		},
	})
}

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Message:        "API is running",
		Version:        h.version,
		Timestamp:      time.Now().UTC(),
		UptimeSeconds:  time.Since(h.startTime).Seconds(),
		ActiveSessions: h.sessions.Len(),
		Sources: map[string]any{
			"youtube": h.youtube != nil,
			"twitch":  h.twitch != nil,
		},
		Engine: h.engine.Stats(),
	}
	if h.events != nil {
		stats := h.events.Stats()
		status.Events = &stats
	}
	respondData(w, r, http.StatusOK, status)
}
