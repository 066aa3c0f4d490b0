// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/spark/internal/middleware"
)

// RouterConfig holds the HTTP-level settings.
type RouterConfig struct {
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	// RateLimitRequests per RateLimitWindow per client IP on API routes.
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool

	// SessionRateLimit bounds session creation per client IP per minute.
	SessionRateLimit int

	// RequestTimeout bounds each request; upstream fetches inherit it.
	RequestTimeout time.Duration

	// SlowRequest is the access-log warning threshold.
	SlowRequest time.Duration
}

// DefaultRouterConfig returns the defaults. CORS origins default to empty,
// which rejects cross-origin browsers until configured.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimitRequests: 300,
		RateLimitWindow:   time.Minute,
		SessionRateLimit:  10,
		RequestTimeout:    30 * time.Second,
		SlowRequest:       2 * time.Second,
	}
}

// rateLimit returns an httprate limiter keyed by client IP, or a no-op
// when rate limiting is disabled.
func (c RouterConfig) rateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	if c.RateLimitDisabled || requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(middleware.RateLimited),
	)
}

// NewRouter builds the HTTP handler tree.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog(cfg.SlowRequest))
	r.Use(middleware.Prometheus)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: cfg.CORSAllowCredentials,
		MaxAge:           86400,
	}))
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, CodeNotFound, "Endpoint not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, CodeBadRequest, "Method not allowed", nil)
	})

	r.Get("/", h.Root)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Group(func(r chi.Router) {
			r.Use(cfg.rateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

			r.With(cfg.rateLimit(cfg.SessionRateLimit, time.Minute)).Post("/sessions", h.CreateSession)

			r.Get("/youtube/top", h.YouTubeTop)
			r.Get("/twitch/top", h.TwitchTop)

			r.Group(func(r chi.Router) {
				r.Use(h.RequireSession)

				r.Route("/behavior", func(r chi.Router) {
					r.Post("/watch", h.Watch)
					r.Post("/like", h.Like)
					r.Post("/unlike", h.Unlike)
					r.Post("/replay", h.Replay)
					r.Post("/react", h.React)
					r.Post("/comment", h.Comment)
					r.Post("/scroll", h.Scroll)
					r.Get("/summary", h.Summary)
					r.Get("/interests", h.Interests)
					r.Get("/preferred", h.Preferred)
					r.Post("/preferred/reset", h.ResetPreferred)
					r.Delete("/", h.ClearBehavior)
				})

				r.Get("/feed", h.Feed)
				r.Post("/feed/score", h.Score)
				r.Post("/feed/personalized", h.Personalized)

				r.Get("/insights", h.Insights)
				r.Get("/insights/next", h.NextInterest)
			})
		})
	})

	return r
}
