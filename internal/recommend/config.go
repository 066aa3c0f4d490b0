// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package recommend

import (
	"fmt"
	"strings"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Scoring contains the per-signal score contributions.
	Scoring ScoringConfig `json:"scoring" koanf:"scoring"`

	// Mix contains the feed composition ratios.
	Mix MixConfig `json:"mix" koanf:"mix"`

	// Insights contains the career insight window sizes.
	Insights InsightsConfig `json:"insights" koanf:"insights"`
}

// ScoringConfig holds the scoring constants.
type ScoringConfig struct {
	// ColdStartScore is assigned to every candidate when no interests exist.
	ColdStartScore float64 `json:"cold_start_score" koanf:"cold_start_score"`

	// BaseScore is the starting score for every candidate.
	BaseScore float64 `json:"base_score" koanf:"base_score"`

	// InterestWeight multiplies a matching interest score.
	InterestWeight float64 `json:"interest_weight" koanf:"interest_weight"`

	LikedBoost       float64 `json:"liked_boost" koanf:"liked_boost"`
	LocalArtistBoost float64 `json:"local_artist_boost" koanf:"local_artist_boost"`

	// EngagementWeight multiplies the viewer's engagement score for the video.
	EngagementWeight float64 `json:"engagement_weight" koanf:"engagement_weight"`

	// CareerBoost applies to career-tagged videos when one of the top
	// CareerInterestTopN interests contains a CareerKeywords entry.
	CareerBoost        float64  `json:"career_boost" koanf:"career_boost"`
	CareerInterestTopN int      `json:"career_interest_top_n" koanf:"career_interest_top_n"`
	CareerKeywords     []string `json:"career_keywords" koanf:"career_keywords"`

	SkippedPenalty float64 `json:"skipped_penalty" koanf:"skipped_penalty"`
}

// MixConfig holds the feed composition ratios. Each slice size is
// floor(limit x ratio).
type MixConfig struct {
	TopRatio     float64 `json:"top_ratio" koanf:"top_ratio"`
	DiverseRatio float64 `json:"diverse_ratio" koanf:"diverse_ratio"`
	LocalRatio   float64 `json:"local_ratio" koanf:"local_ratio"`

	// DefaultLimit is used when a caller passes no limit.
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`

	// MaxLimit caps caller-supplied limits.
	MaxLimit int `json:"max_limit" koanf:"max_limit"`
}

// InsightsConfig holds the interest window sizes.
type InsightsConfig struct {
	// TopN interests are considered by CareerInsights.
	TopN int `json:"top_n" koanf:"top_n"`

	// MaxSuggestions runner-up interests are returned.
	MaxSuggestions int `json:"max_suggestions" koanf:"max_suggestions"`

	// PredictTopN interests are considered by PredictNextInterest.
	PredictTopN int `json:"predict_top_n" koanf:"predict_top_n"`

	// PredictMinInterests is the minimum number of interests before
	// PredictNextInterest returns anything.
	PredictMinInterests int `json:"predict_min_interests" koanf:"predict_min_interests"`
}

// DefaultConfig returns the production scoring and mix constants.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			ColdStartScore:     50,
			BaseScore:          50,
			InterestWeight:     0.5,
			LikedBoost:         30,
			LocalArtistBoost:   15,
			EngagementWeight:   0.3,
			CareerBoost:        20,
			CareerInterestTopN: 3,
			CareerKeywords:     []string{"career", "music", "dance"},
			SkippedPenalty:     40,
		},
		Mix: MixConfig{
			TopRatio:     0.6,
			DiverseRatio: 0.2,
			LocalRatio:   0.2,
			DefaultLimit: 20,
			MaxLimit:     100,
		},
		Insights: InsightsConfig{
			TopN:                5,
			MaxSuggestions:      3,
			PredictTopN:         3,
			PredictMinInterests: 2,
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	s := c.Scoring
	if s.ColdStartScore < 0 || s.ColdStartScore > 100 {
		return fmt.Errorf("scoring.cold_start_score must be in [0, 100], got %f", s.ColdStartScore)
	}
	if s.BaseScore < 0 || s.BaseScore > 100 {
		return fmt.Errorf("scoring.base_score must be in [0, 100], got %f", s.BaseScore)
	}
	if s.InterestWeight < 0 || s.EngagementWeight < 0 {
		return fmt.Errorf("scoring weights must be non-negative")
	}
	if s.SkippedPenalty < 0 {
		return fmt.Errorf("scoring.skipped_penalty must be non-negative, got %f", s.SkippedPenalty)
	}
	if s.CareerInterestTopN < 0 {
		return fmt.Errorf("scoring.career_interest_top_n must be non-negative, got %d", s.CareerInterestTopN)
	}
	for _, kw := range s.CareerKeywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("scoring.career_keywords must not contain empty entries")
		}
	}

	m := c.Mix
	for name, r := range map[string]float64{"top_ratio": m.TopRatio, "diverse_ratio": m.DiverseRatio, "local_ratio": m.LocalRatio} {
		if r < 0 || r > 1 {
			return fmt.Errorf("mix.%s must be in [0, 1], got %f", name, r)
		}
	}
	if sum := m.TopRatio + m.DiverseRatio + m.LocalRatio; sum > 1+1e-9 {
		return fmt.Errorf("mix ratios must sum to at most 1, got %f", sum)
	}
	if m.DefaultLimit < 1 {
		return fmt.Errorf("mix.default_limit must be positive, got %d", m.DefaultLimit)
	}
	if m.MaxLimit < m.DefaultLimit {
		return fmt.Errorf("mix.max_limit (%d) must be >= mix.default_limit (%d)", m.MaxLimit, m.DefaultLimit)
	}

	in := c.Insights
	if in.TopN < 1 || in.PredictTopN < 1 {
		return fmt.Errorf("insights window sizes must be positive")
	}
	if in.MaxSuggestions < 0 || in.MaxSuggestions > in.TopN-1 {
		return fmt.Errorf("insights.max_suggestions must be in [0, top_n-1], got %d", in.MaxSuggestions)
	}
	if in.PredictMinInterests < 1 {
		return fmt.Errorf("insights.predict_min_interests must be positive, got %d", in.PredictMinInterests)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Scoring.CareerKeywords = append([]string(nil), c.Scoring.CareerKeywords...)
	return &out
}
