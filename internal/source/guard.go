// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/spark/internal/logging"
	"github.com/tomtom215/spark/internal/metrics"
)

// GuardConfig configures a Guard.
type GuardConfig struct {
	// RequestsPerSecond limits upstream calls. Zero disables limiting.
	RequestsPerSecond float64
	Burst             int

	// MinRequests and FailureRatio decide when the breaker opens.
	MinRequests  uint32
	FailureRatio float64

	// Interval resets failure counts while closed; Timeout is how long the
	// breaker stays open before probing.
	Interval time.Duration
	Timeout  time.Duration

	// HalfOpenRequests is the number of probes allowed while half-open.
	HalfOpenRequests uint32
}

func (c *GuardConfig) applyDefaults() {
	if c.Burst <= 0 {
		c.Burst = 5
	}
	if c.MinRequests == 0 {
		c.MinRequests = 10
	}
	if c.FailureRatio <= 0 || c.FailureRatio > 1 {
		c.FailureRatio = 0.6
	}
	if c.Interval <= 0 {
		c.Interval = time.Minute
	}
	if c.Timeout <= 0 {
		c.Timeout = 2 * time.Minute
	}
	if c.HalfOpenRequests == 0 {
		c.HalfOpenRequests = 3
	}
}

// Guard protects a Source with a rate limiter and a circuit breaker.
type Guard struct {
	next    Source
	name    string
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[Page]
}

// NewGuard wraps next.
func NewGuard(next Source, cfg GuardConfig) *Guard {
	cfg.applyDefaults()
	name := next.Name()
	logger := logging.WithComponent("source-guard").With().Str("source", name).Logger()

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	g := &Guard{next: next, name: name}
	if cfg.RequestsPerSecond > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	}

	g.cb = gobreaker.NewCircuitBreaker[Page](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.HalfOpenRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= cfg.FailureRatio {
				logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("Opening circuit")
				return true
			}
			return false
		},
		// Cancellation by the caller is not an upstream failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info().Str("from", stateToString(from)).Str("to", stateToString(to)).Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
		},
	})
	return g
}

// Name implements Source.
func (g *Guard) Name() string { return g.name }

// State returns the breaker state name.
func (g *Guard) State() string { return stateToString(g.cb.State()) }

// Unwrap returns the guarded source.
func (g *Guard) Unwrap() Source { return g.next }

// Fetch implements Source. Rejections by an open breaker return
// ErrCircuitOpen.
func (g *Guard) Fetch(ctx context.Context, q Query) (Page, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return Page{}, fmt.Errorf("%s rate limit: %w", g.name, err)
		}
	}

	start := time.Now()
	page, err := g.cb.Execute(func() (Page, error) {
		return g.next.Fetch(ctx, q)
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(g.name, "rejected").Inc()
		metrics.RecordSourceFetch(g.name, "rejected", time.Since(start))
		return Page{}, fmt.Errorf("%s: %w", g.name, ErrCircuitOpen)
	case err != nil:
		metrics.CircuitBreakerRequests.WithLabelValues(g.name, "failure").Inc()
		metrics.RecordSourceFetch(g.name, "error", time.Since(start))
		return Page{}, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(g.name, "success").Inc()
	metrics.RecordSourceFetch(g.name, "success", time.Since(start))
	return page, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
