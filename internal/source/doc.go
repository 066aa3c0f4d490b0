// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

/*
Package source fetches candidate videos from upstream platforms.

Two platforms are supported:

  - YouTube, through the YouTube Data API v3 client. A canonical career
    category becomes a search for a random career title from that
    category; a free-text query is searched as-is; otherwise the regional
    most-popular chart is used. Search results are expanded with a second
    videos.list call for snippet and statistics.
  - Twitch, through the Helix API with an app access token obtained by the
    OAuth client-credentials flow. The category (or explicit game name) is
    resolved to a game ID before listing live streams.

# Resilience

Guard wraps any Source with a rate limiter and a circuit breaker whose state
is exported as a Prometheus gauge. Cached stores successful pages in an
in-process TTL cache keyed by platform, category, region, query, and page
token.

A typical stack:

	yt, _ := source.NewYouTube(ctx, source.YouTubeConfig{APIKey: key})
	src := source.NewCached(source.NewGuard(yt, source.GuardConfig{}), cache.NewTTL[source.Page](cache.Options{TTL: 10 * time.Minute}))
	page, err := src.Fetch(ctx, source.Query{Category: "Music", Region: "US", MaxResults: 20})
*/
package source
