// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/spark/internal/cache"
	"github.com/tomtom215/spark/internal/config"
	"github.com/tomtom215/spark/internal/logging"
	"github.com/tomtom215/spark/internal/source"
)

// candidateSources holds the wrapped upstreams. A nil field means the source
// has no credentials.
type candidateSources struct {
	youtube source.Source
	twitch  source.Source
}

func (s candidateSources) primary(name string) source.Source {
	switch name {
	case config.SourceTwitch:
		return s.twitch
	default:
		return s.youtube
	}
}

// buildSources creates every configured source and wraps it as
// cache -> guard -> upstream, so cache hits never spend rate limit tokens.
func buildSources(ctx context.Context, cfg *config.Config, pages *cache.TTL[source.Page]) (candidateSources, error) {
	var out candidateSources
	logger := logging.Logger()

	if cfg.YouTube.Enabled() {
		yt, err := source.NewYouTube(ctx, source.YouTubeConfig{
			APIKey:   cfg.YouTube.APIKey,
			Endpoint: cfg.YouTube.Endpoint,
			Timeout:  cfg.YouTube.Timeout,
			Logger:   &logger,
		})
		if err != nil {
			return out, fmt.Errorf("create youtube source: %w", err)
		}
		out.youtube = wrap(yt, cfg.Feed, pages)
	}

	if cfg.Twitch.Enabled() {
		tw, err := source.NewTwitch(ctx, source.TwitchConfig{
			ClientID:     cfg.Twitch.ClientID,
			ClientSecret: cfg.Twitch.ClientSecret,
			APIBase:      cfg.Twitch.APIBase,
			TokenURL:     cfg.Twitch.TokenURL,
			Timeout:      cfg.Twitch.Timeout,
			Logger:       &logger,
		})
		if err != nil {
			return out, fmt.Errorf("create twitch source: %w", err)
		}
		out.twitch = wrap(tw, cfg.Feed, pages)
	}

	logger.Info().
		Bool("youtube", out.youtube != nil).
		Bool("twitch", out.twitch != nil).
		Msg("Candidate sources configured")
	return out, nil
}

func wrap(next source.Source, fc config.FeedConfig, pages *cache.TTL[source.Page]) source.Source {
	guarded := source.NewGuard(next, source.GuardConfig{
		RequestsPerSecond: fc.RequestsPerSecond,
		Burst:             fc.Burst,
		MinRequests:       fc.BreakerMinRequests,
		FailureRatio:      fc.BreakerFailureRatio,
		Interval:          fc.BreakerInterval,
		Timeout:           fc.BreakerTimeout,
	})
	if fc.CacheDuration <= 0 {
		return guarded
	}
	return source.NewCached(guarded, pages)
}
