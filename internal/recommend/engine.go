// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/tomtom215/spark/internal/behavior"
	"github.com/tomtom215/spark/internal/career"
	"github.com/tomtom215/spark/internal/metrics"
	"github.com/tomtom215/spark/internal/models"
)

// Engine scores candidate videos against a viewer profile.
// It holds no viewer state and is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	scored     atomic.Int64
	coldStarts atomic.Int64
}

// Stats reports how much work the engine has done since creation.
type Stats struct {
	VideosScored int64 `json:"videos_scored"`
	ColdStarts   int64 `json:"cold_starts"`
}

// NewEngine creates a new recommendation engine.
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Stats returns engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		VideosScored: e.scored.Load(),
		ColdStarts:   e.coldStarts.Load(),
	}
}

// ScoreVideosForUser returns every candidate with a score in [0, 100] and a
// reason, sorted by descending score. The input slice is not modified.
func (e *Engine) ScoreVideosForUser(p Profile, videos []models.Video) []models.ScoredVideo {
	out := make([]models.ScoredVideo, len(videos))
	e.scored.Add(int64(len(videos)))

	interests := p.Interests()
	if len(interests) == 0 {
		e.coldStarts.Add(1)
		metrics.FeedColdStarts.Inc()
		for i := range videos {
			out[i] = models.ScoredVideo{
				Video:                videos[i],
				RecommendationScore:  e.config.Scoring.ColdStartScore,
				RecommendationReason: ReasonColdStart,
			}
		}
		return out
	}

	byCategory := make(map[string]float64, len(interests))
	for _, in := range interests {
		byCategory[in.Category] = in.Score
	}
	careerInterest := e.hasCareerInterest(p.TopInterests(e.config.Scoring.CareerInterestTopN))

	for i := range videos {
		score, reason := e.score(p, &videos[i], byCategory, careerInterest)
		out[i] = models.ScoredVideo{
			Video:                videos[i],
			RecommendationScore:  score,
			RecommendationReason: reason,
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecommendationScore > out[j].RecommendationScore
	})

	e.logger.Debug().
		Int("candidates", len(videos)).
		Int("interests", len(interests)).
		Bool("career_interest", careerInterest).
		Msg("Scored candidates")

	return out
}

func (e *Engine) score(p Profile, v *models.Video, interests map[string]float64, careerInterest bool) (float64, string) {
	cfg := &e.config.Scoring
	score := cfg.BaseScore
	reason := ""
	note := func(r string) {
		if reason == "" {
			reason = r
		}
	}

	if !v.CareerCategory.IsZero() {
		key := v.CareerCategory.String()
		if s, ok := interests[key]; ok {
			score += s * cfg.InterestWeight
			note(ReasonInterest + career.DisplayName(key))
		}
	}

	if p.HasLiked(v.ID) {
		score += cfg.LikedBoost
		note(ReasonLiked)
	}

	if v.IsLocalArtist {
		score += cfg.LocalArtistBoost
		note(ReasonLocalArtist)
	}

	score += p.EngagementScore(v.ID) * cfg.EngagementWeight

	if careerInterest && v.HasTag(models.CareerTag) {
		score += cfg.CareerBoost
		note(ReasonCareer)
	}

	if v.WasSkipped {
		score -= cfg.SkippedPenalty
	}

	if reason == "" {
		reason = ReasonDefault
	}
	return clampScore(score), reason
}

// hasCareerInterest reports whether any of the given interests contains one
// of the configured career keywords. The match is case-sensitive, so the
// canonical "Music" does not count while "music_production" does.
func (e *Engine) hasCareerInterest(top []behavior.Interest) bool {
	for _, in := range top {
		for _, kw := range e.config.Scoring.CareerKeywords {
			if strings.Contains(in.Category, kw) {
				return true
			}
		}
	}
	return false
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}
