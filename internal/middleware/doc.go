// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

// Package middleware provides the net/http middleware shared by every API
// route.
//
//   - RequestID: accepts or generates X-Request-ID and stores it in the
//     logging context
//   - AccessLog: one structured zerolog line per request, warning on slow
//     requests
//   - Prometheus: request counters, latency histograms and the in-flight
//     gauge, labelled by chi route pattern rather than raw path
//   - RateLimited: httprate limit handler that counts rejections
//
// All of them have the chi signature func(http.Handler) http.Handler:
//
//	r.Use(middleware.RequestID)
//	r.Use(middleware.AccessLog(500 * time.Millisecond))
//	r.Use(middleware.Prometheus)
package middleware
