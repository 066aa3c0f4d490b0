// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

// Package api serves the Spark HTTP API with chi.
//
// Every response uses models.Envelope:
//
//	{"success": true, "count": 20, "data": [...], "nextPageToken": "CAUQAA"}
//	{"success": false, "error": {"code": "VALIDATION_ERROR", "message": "..."}}
//
// Public routes:
//
//	GET  /                   service banner
//	GET  /api/health         liveness
//	POST /api/sessions       new anonymous session and its bearer token
//	GET  /api/youtube/top    YouTube passthrough (q, category, regionCode, maxResults<=50, pageToken)
//	GET  /api/twitch/top     Twitch passthrough (game, maxResults<=100)
//	GET  /metrics            Prometheus
//
// Session routes (Authorization: Bearer <token>):
//
//	POST   /api/behavior/{watch,like,unlike,replay,react,comment,scroll}
//	GET    /api/behavior/summary
//	GET    /api/behavior/interests?limit=
//	GET    /api/behavior/preferred
//	POST   /api/behavior/preferred/reset
//	DELETE /api/behavior
//	GET    /api/feed?limit=&pageToken=&category=&region=&school=&more=
//	POST   /api/feed/score
//	POST   /api/feed/personalized
//	GET    /api/insights
//	GET    /api/insights/next
//
// Behavior changes are published on the event bus by the session's
// tracker; handlers never publish directly.
package api
