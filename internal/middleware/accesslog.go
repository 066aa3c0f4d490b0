// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/spark/internal/logging"
)

// AccessLog logs one line per request. Requests slower than slow are logged
// at warn level; a zero slow disables the warning.
func AccessLog(slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := wrap(w)
			next.ServeHTTP(sw, r)
			elapsed := time.Since(start)

			logger := logging.Ctx(r.Context())
			var event *zerolog.Event
			switch {
			case sw.status >= http.StatusInternalServerError:
				event = logger.Error()
			case slow > 0 && elapsed > slow:
				event = logger.Warn().Bool("slow", true)
			default:
				event = logger.Debug()
			}

			event.
				Str("method", r.Method).
				Str("route", routePattern(r)).
				Int("status", sw.status).
				Int("bytes", sw.bytes).
				Dur("duration", elapsed).
				Str("remote", r.RemoteAddr).
				Msg("HTTP request")
		})
	}
}
