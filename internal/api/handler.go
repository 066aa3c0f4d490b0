// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package api

import (
	"time"

	"github.com/tomtom215/spark/internal/events"
	"github.com/tomtom215/spark/internal/feed"
	"github.com/tomtom215/spark/internal/recommend"
	"github.com/tomtom215/spark/internal/session"
	"github.com/tomtom215/spark/internal/source"
)

// Deps are the collaborators a Handler needs. YouTube and Twitch are
// optional; their passthrough routes answer 503 when nil. Events is only
// read by the health report.
type Deps struct {
	Sessions *session.Registry
	Tokens   *session.TokenManager
	Engine   *recommend.Engine
	Feed     *feed.Service
	YouTube  source.Source
	Twitch   source.Source
	Events   *events.Recorder
	Version  string
}

// Handler holds the dependencies shared by all API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: banner and health
//   - handlers_session.go: session creation and authentication
//   - handlers_behavior.go: behavior tracking and queries
//   - handlers_feed.go: feed assembly and scoring
//   - handlers_insights.go: career insights
//   - handlers_sources.go: upstream passthrough
type Handler struct {
	sessions  *session.Registry
	tokens    *session.TokenManager
	engine    *recommend.Engine
	feed      *feed.Service
	youtube   source.Source
	twitch    source.Source
	events    *events.Recorder
	version   string
	startTime time.Time
}

// NewHandler creates a Handler.
func NewHandler(d Deps) *Handler {
	if d.Version == "" {
		d.Version = "dev"
	}
	return &Handler{
		sessions:  d.Sessions,
		tokens:    d.Tokens,
		engine:    d.Engine,
		feed:      d.Feed,
		youtube:   d.YouTube,
		twitch:    d.Twitch,
		events:    d.Events,
		version:   d.Version,
		startTime: time.Now(),
	}
}
