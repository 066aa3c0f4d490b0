// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/spark/internal/logging"
	"github.com/tomtom215/spark/internal/models"
	"github.com/tomtom215/spark/internal/validation"
)

// maxBodyBytes bounds request bodies. Candidate lists are the largest.
const maxBodyBytes = 1 << 20

// sanitizeLogValue replaces control characters so client input cannot
// forge log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, env *models.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write JSON response")
	}
}

// respondData sends a success envelope.
func respondData(w http.ResponseWriter, r *http.Request, status int, data any) {
	respondJSON(w, r, status, &models.Envelope{Success: true, Data: data})
}

// respondList sends a success envelope with a count.
func respondList[T any](w http.ResponseWriter, r *http.Request, items []T, nextPageToken, category string) {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	respondJSON(w, r, http.StatusOK, &models.Envelope{
		Success:       true,
		Count:         &n,
		Data:          items,
		NextPageToken: nextPageToken,
		Category:      category,
	})
}

// respondError sends an error envelope. err, when given, is logged and
// never sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		event := logging.Ctx(r.Context()).Warn()
		if status >= http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Error()
		}
		event.Str("code", code).Str("error", sanitizeLogValue(err.Error())).Msg("API error")
	}
	respondJSON(w, r, status, &models.Envelope{
		Error: &models.APIError{Code: code, Message: message},
	})
}

// respondErr classifies err and sends the matching error envelope.
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := classify(err)
	respondError(w, r, status, code, message, err)
}

// respondInvalid sends a 400 VALIDATION_ERROR with per-field details.
func respondInvalid(w http.ResponseWriter, r *http.Request, verr *validation.RequestValidationError) {
	respondJSON(w, r, http.StatusBadRequest, &models.Envelope{
		Error: &models.APIError{
			Code:    CodeValidation,
			Message: verr.Error(),
			Details: verr.Details(),
		},
	})
}

// decodeAndValidate reads a JSON body into v and validates it. On failure
// it writes the response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			respondError(w, r, http.StatusRequestEntityTooLarge, CodeBadRequest, "Request body too large", nil)
		case errors.Is(err, io.EOF):
			respondError(w, r, http.StatusBadRequest, CodeBadRequest, "Request body is required", nil)
		default:
			respondError(w, r, http.StatusBadRequest, CodeBadRequest, "Request body is not valid JSON", nil)
		}
		return false
	}
	if verr := validation.ValidateStruct(v); verr != nil {
		respondInvalid(w, r, verr)
		return false
	}
	return true
}

// getIntParam returns the integer query parameter key, or def when it is
// absent or malformed.
func getIntParam(r *http.Request, key string, def int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return n
}

func getBoolParam(r *http.Request, key string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return b
}
