// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package api

import (
	"net/http"

	"github.com/tomtom215/spark/internal/behavior"
	"github.com/tomtom215/spark/internal/recommend"
)

type nextInterest struct {
	Found    bool   `json:"found"`
	Interest string `json:"interest,omitempty"`
}

// Insights handles GET /api/insights.
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	var out recommend.Insights
	sessionFrom(r).Tracker.View(func(s *behavior.State) {
		out = h.engine.CareerInsights(s)
	})
	respondData(w, r, http.StatusOK, out)
}

// NextInterest handles GET /api/insights/next.
func (h *Handler) NextInterest(w http.ResponseWriter, r *http.Request) {
	var out nextInterest
	sessionFrom(r).Tracker.View(func(s *behavior.State) {
		out.Interest, out.Found = h.engine.PredictNextInterest(s)
	})
	respondData(w, r, http.StatusOK, out)
}
