// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

// Package session tracks anonymous viewer sessions.
//
// A session is identified by a random UUID and authenticated by an HS256
// JWT whose subject is the session ID. The Registry keeps the live sessions
// in a bounded LRU; a session evicted for idleness or capacity is flushed
// to the behavior sink and reopened from it on next use.
package session
