// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/spark/internal/logging"
	"github.com/tomtom215/spark/internal/session"
)

type sessionKey struct{}

// sessionResponse is returned by POST /api/sessions.
type sessionResponse struct {
	SessionID string    `json:"sessionId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CreateSession handles POST /api/sessions.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create(r.Context())

	token, expires, err := h.tokens.Issue(s.ID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "Failed to issue session token", err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("session_id", s.ID).Msg("Session started")
	respondData(w, r, http.StatusCreated, sessionResponse{
		SessionID: s.ID,
		Token:     token,
		ExpiresAt: expires,
	})
}

// RequireSession authenticates the bearer token, loads the session, and
// stores it in the request context.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			respondErr(w, r, ErrMissingToken)
			return
		}

		id, err := h.tokens.Validate(raw)
		if err != nil {
			respondErr(w, r, err)
			return
		}

		s, err := h.sessions.Get(r.Context(), id)
		if err != nil {
			respondErr(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey{}, s)
		ctx = logging.ContextWithSessionID(ctx, s.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFrom returns the session RequireSession stored. Handlers behind
// RequireSession can rely on it being present.
func sessionFrom(r *http.Request) *session.Session {
	s, _ := r.Context().Value(sessionKey{}).(*session.Session)
	return s
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
