// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

// Package models defines the video and response types shared by the
// sources, the recommendation engine and the HTTP API.
//
// JSON field names follow the web client: camelCase, with a ScoredVideo
// flattening its Video and adding recommendationScore and
// recommendationReason.
package models
