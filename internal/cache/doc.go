// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

/*
Package cache provides the in-process caches used by the service.

Two structures are provided:

  - TTL: a bounded, generic map with a single time-to-live, used to hold
    upstream source pages between feed requests.
  - LRU: a bounded, generic least-recently-used map with idle expiry and
    an eviction callback, used by the session registry.

Both are safe for concurrent use and take an injectable clock so expiry can
be tested without sleeping.

# Cleanup

TTL expires entries lazily on Get. Serve runs a periodic sweep until its
context is cancelled, which lets the cache run as a supervised service:

	pages := cache.NewTTL[source.Page](cache.Options{Name: "page-cache", TTL: 10 * time.Minute})
	tree.AddDataService(pages)
*/
package cache
