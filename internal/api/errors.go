// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/spark/internal/session"
	"github.com/tomtom215/spark/internal/source"
)

// Error codes.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeBadRequest      = "BAD_REQUEST"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeNotFound        = "NOT_FOUND"
	CodeUnavailable     = "SOURCE_UNAVAILABLE"
	CodeUpstream        = "UPSTREAM_ERROR"
	CodeUpstreamTimeout = "UPSTREAM_TIMEOUT"
	CodeInternal        = "INTERNAL_ERROR"
)

var (
	// ErrMissingToken is returned when a session route has no bearer token.
	ErrMissingToken = errors.New("missing bearer token")

	// ErrSourceDisabled is returned for passthrough routes whose source is
	// not configured.
	ErrSourceDisabled = errors.New("source disabled")
)

// classify maps an error to its HTTP status, code, and client message.
// Messages for 5xx errors never include the error text.
func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrMissingToken),
		errors.Is(err, session.ErrInvalidToken),
		errors.Is(err, session.ErrSessionNotFound):
		return http.StatusUnauthorized, CodeUnauthorized, "A valid session token is required"

	case errors.Is(err, ErrSourceDisabled),
		errors.Is(err, source.ErrNotConfigured):
		return http.StatusServiceUnavailable, CodeUnavailable, "Video source is not configured"

	case errors.Is(err, source.ErrCircuitOpen):
		return http.StatusServiceUnavailable, CodeUnavailable, "Video source is temporarily unavailable"

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, CodeUpstreamTimeout, "Video source timed out"

	case errors.Is(err, context.Canceled):
		// The client went away; nobody reads this response.
		return 499, CodeBadRequest, "Request canceled"

	default:
		return http.StatusBadGateway, CodeUpstream, "Failed to fetch videos"
	}
}
