// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package recommend

import (
	"math"

	"github.com/tomtom215/spark/internal/metrics"
	"github.com/tomtom215/spark/internal/models"
)

// otherCategory groups candidates without a career category in the
// diversity pass.
const otherCategory = "other"

// PersonalizedFeed scores the candidates and composes at most limit items:
// the best-scored slice, a one-per-category diversity slice, and a local
// artist slice. Each video ID appears once, at the position of its first
// appearance, carrying the data of its last appearance.
func (e *Engine) PersonalizedFeed(p Profile, videos []models.Video, limit int) []models.ScoredVideo {
	if limit <= 0 {
		metrics.FeedItems.Observe(0)
		return []models.ScoredVideo{}
	}

	scored := e.ScoreVideosForUser(p, videos)
	mix := &e.config.Mix

	top := scored[:min(quota(limit, mix.TopRatio), len(scored))]
	diverse := diverseSlice(scored, quota(limit, mix.DiverseRatio))
	local := localSlice(scored, quota(limit, mix.LocalRatio))

	out := dedupe(len(top)+len(diverse)+len(local), top, diverse, local)
	if len(out) > limit {
		out = out[:limit]
	}

	metrics.FeedItems.Observe(float64(len(out)))
	e.logger.Debug().
		Int("limit", limit).
		Int("top", len(top)).
		Int("diverse", len(diverse)).
		Int("local", len(local)).
		Int("items", len(out)).
		Msg("Composed personalized feed")

	return out
}

// ClampLimit maps a caller-supplied limit onto the configured bounds.
// Zero selects the default limit.
func (e *Engine) ClampLimit(limit int) int {
	switch {
	case limit == 0:
		return e.config.Mix.DefaultLimit
	case limit > e.config.Mix.MaxLimit:
		return e.config.Mix.MaxLimit
	default:
		return limit
	}
}

// quota returns floor(limit x ratio), tolerating float error at exact
// integer products.
func quota(limit int, ratio float64) int {
	return int(math.Floor(float64(limit)*ratio + 1e-9))
}

func diverseSlice(scored []models.ScoredVideo, count int) []models.ScoredVideo {
	out := make([]models.ScoredVideo, 0, count)
	seen := make(map[string]struct{})
	for i := range scored {
		if len(out) >= count {
			break
		}
		cat := scored[i].CareerCategory.String()
		if cat == "" {
			cat = otherCategory
		}
		if _, ok := seen[cat]; ok {
			continue
		}
		seen[cat] = struct{}{}
		out = append(out, scored[i])
	}
	return out
}

func localSlice(scored []models.ScoredVideo, count int) []models.ScoredVideo {
	out := make([]models.ScoredVideo, 0, count)
	for i := range scored {
		if len(out) >= count {
			break
		}
		if scored[i].IsLocalArtist {
			out = append(out, scored[i])
		}
	}
	return out
}

func dedupe(capacity int, slices ...[]models.ScoredVideo) []models.ScoredVideo {
	pos := make(map[string]int, capacity)
	out := make([]models.ScoredVideo, 0, capacity)
	for _, s := range slices {
		for i := range s {
			if at, ok := pos[s[i].ID]; ok {
				out[at] = s[i]
				continue
			}
			pos[s[i].ID] = len(out)
			out = append(out, s[i])
		}
	}
	return out
}
