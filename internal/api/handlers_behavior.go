// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/spark/internal/behavior"
	"github.com/tomtom215/spark/internal/career"
)

// maxInterests bounds GET /api/behavior/interests.
const maxInterests = 50

type watchRequest struct {
	VideoID    string `json:"videoId" validate:"required,max=128"`
	DeltaMs    int64  `json:"deltaMs" validate:"gte=0,lte=86400000"`
	DurationMs int64  `json:"durationMs" validate:"gte=0"`
	Category   string `json:"category" validate:"max=128"`
}

type videoRequest struct {
	VideoID  string `json:"videoId" validate:"required,max=128"`
	Category string `json:"category" validate:"max=128"`
}

type reactRequest struct {
	VideoID  string `json:"videoId" validate:"required,max=128"`
	Kind     string `json:"kind" validate:"required,max=32"`
	Category string `json:"category" validate:"max=128"`
}

type commentRequest struct {
	VideoID  string `json:"videoId" validate:"required,max=128"`
	Text     string `json:"text" validate:"required,max=2000"`
	Category string `json:"category" validate:"max=128"`
}

type scrollRequest struct {
	VideoID   string `json:"videoId" validate:"max=128"`
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

// preferenceState is returned by every mutation and by the preference
// routes so clients can follow streak lock-ins.
type preferenceState struct {
	PreferredCategory string          `json:"preferredCategory"`
	CategoryStreak    behavior.Streak `json:"categoryStreak"`
	StreakRunLength   int             `json:"streakRunLength"`
}

func preferenceOf(t *behavior.Tracker) preferenceState {
	var p preferenceState
	t.View(func(s *behavior.State) {
		p = preferenceState{
			PreferredCategory: s.PreferredCategory(),
			CategoryStreak:    s.CategoryStreak(),
			StreakRunLength:   s.AnalyticsSummary().StreakRunLength,
		}
	})
	return p
}

// Watch handles POST /api/behavior/watch.
func (h *Handler) Watch(w http.ResponseWriter, r *http.Request) {
	var req watchRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	t := sessionFrom(r).Tracker
	t.RecordWatch(r.Context(), req.VideoID, req.DeltaMs, req.DurationMs, career.Parse(req.Category))
	respondData(w, r, http.StatusOK, preferenceOf(t))
}

// Like handles POST /api/behavior/like.
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	h.videoMutation(w, r, (*behavior.Tracker).Like)
}

// Unlike handles POST /api/behavior/unlike.
func (h *Handler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.videoMutation(w, r, (*behavior.Tracker).Unlike)
}

// Replay handles POST /api/behavior/replay.
func (h *Handler) Replay(w http.ResponseWriter, r *http.Request) {
	h.videoMutation(w, r, (*behavior.Tracker).Replay)
}

func (h *Handler) videoMutation(w http.ResponseWriter, r *http.Request,
	apply func(*behavior.Tracker, context.Context, string, career.Category)) {
	var req videoRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	t := sessionFrom(r).Tracker
	apply(t, r.Context(), req.VideoID, career.Parse(req.Category))
	respondData(w, r, http.StatusOK, preferenceOf(t))
}

// React handles POST /api/behavior/react. Any reaction kind is recorded;
// only positive kinds raise interest.
func (h *Handler) React(w http.ResponseWriter, r *http.Request) {
	var req reactRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	t := sessionFrom(r).Tracker
	t.React(r.Context(), req.VideoID, behavior.ReactionKind(req.Kind), career.Parse(req.Category))
	respondData(w, r, http.StatusOK, preferenceOf(t))
}

// Comment handles POST /api/behavior/comment.
func (h *Handler) Comment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	t := sessionFrom(r).Tracker
	t.Comment(r.Context(), req.VideoID, req.Text, career.Parse(req.Category))
	respondData(w, r, http.StatusOK, preferenceOf(t))
}

// Scroll handles POST /api/behavior/scroll.
func (h *Handler) Scroll(w http.ResponseWriter, r *http.Request) {
	var req scrollRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	t := sessionFrom(r).Tracker
	t.TrackScroll(r.Context(), behavior.ScrollDirection(req.Direction), req.VideoID)
	respondData(w, r, http.StatusOK, preferenceOf(t))
}

// Summary handles GET /api/behavior/summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, http.StatusOK, sessionFrom(r).Tracker.AnalyticsSummary())
}

// Interests handles GET /api/behavior/interests?limit=.
func (h *Handler) Interests(w http.ResponseWriter, r *http.Request) {
	limit := min(getIntParam(r, "limit", 5), maxInterests)
	respondList(w, r, sessionFrom(r).Tracker.TopInterests(limit), "", "")
}

// Preferred handles GET /api/behavior/preferred.
func (h *Handler) Preferred(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, http.StatusOK, preferenceOf(sessionFrom(r).Tracker))
}

// ResetPreferred handles POST /api/behavior/preferred/reset.
func (h *Handler) ResetPreferred(w http.ResponseWriter, r *http.Request) {
	t := sessionFrom(r).Tracker
	t.ResetCategoryPreference(r.Context())
	respondData(w, r, http.StatusOK, preferenceOf(t))
}

// ClearBehavior handles DELETE /api/behavior.
func (h *Handler) ClearBehavior(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r).Tracker.Clear(r.Context())
	respondData(w, r, http.StatusOK, map[string]string{"message": "Behavior data cleared"})
}
