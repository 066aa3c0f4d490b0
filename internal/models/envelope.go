// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package models

// Envelope is the JSON wrapper every API response uses.
//
//	{"success": true, "count": 20, "data": [...], "nextPageToken": "CAUQAA"}
//	{"success": false, "error": {"code": "VALIDATION_ERROR", "message": "..."}}
type Envelope struct {
	Success       bool        `json:"success"`
	Count         *int        `json:"count,omitempty"`
	Data          interface{} `json:"data,omitempty"`
	NextPageToken string      `json:"nextPageToken,omitempty"`
	Category      string      `json:"category,omitempty"`
	Error         *APIError   `json:"error,omitempty"`
}

// APIError describes a failed request.
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}
