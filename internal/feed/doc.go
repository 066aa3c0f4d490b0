// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

// Package feed decides which category a viewer's next page comes from and
// assembles that page: the Selector keeps the per-viewer category rotation,
// and the Service fetches candidates for the chosen category and ranks them
// with the recommendation engine.
package feed
