// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

// Package metrics declares the Prometheus instruments exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spark_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spark_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "spark_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spark_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Behavior Tracking Metrics
	BehaviorMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spark_behavior_mutations_total",
			Help: "Total number of applied behavior mutations",
		},
		[]string{"kind"}, // watch, like, unlike, replay, react, comment, scroll, reset_preference, clear
	)

	BehaviorPersistFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spark_behavior_persist_failures_total",
			Help: "Total number of behavior snapshot persistence failures",
		},
		[]string{"operation"}, // load, decode, encode, save, delete
	)

	PreferenceTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spark_preferred_category_transitions_total",
			Help: "Preferred category lock-ins and releases",
		},
		[]string{"transition"}, // locked, released
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "spark_active_sessions",
			Help: "Number of viewer sessions held in memory",
		},
	)

	// Feed Metrics
	FeedItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "spark_feed_items",
			Help:    "Number of videos returned per personalized feed",
			Buckets: []float64{0, 1, 5, 10, 20, 30, 50},
		},
	)

	FeedColdStarts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spark_feed_cold_starts_total",
			Help: "Feeds scored for viewers with no recorded interests",
		},
	)

	// Candidate Source Metrics
	SourceFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spark_source_fetches_total",
			Help: "Total number of candidate source fetches",
		},
		[]string{"source", "result"}, // result: success, error, rejected
	)

	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spark_source_fetch_duration_seconds",
			Help:    "Candidate source fetch latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"source"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spark_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spark_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "spark_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spark_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spark_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Event Bus Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spark_events_published_total",
			Help: "Behavior events published to the event bus",
		},
		[]string{"topic", "result"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spark_events_consumed_total",
			Help: "Behavior events consumed from the event bus",
		},
		[]string{"kind"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordSourceFetch records one candidate fetch.
func RecordSourceFetch(source, result string, duration time.Duration) {
	SourceFetches.WithLabelValues(source, result).Inc()
	SourceFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
		return
	}
	CacheMisses.WithLabelValues(cache).Inc()
}
