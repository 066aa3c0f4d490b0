// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package recommend

import "testing"

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"cold start above range", func(c *Config) { c.Scoring.ColdStartScore = 101 }},
		{"negative base", func(c *Config) { c.Scoring.BaseScore = -1 }},
		{"negative weight", func(c *Config) { c.Scoring.EngagementWeight = -0.1 }},
		{"negative penalty", func(c *Config) { c.Scoring.SkippedPenalty = -1 }},
		{"empty keyword", func(c *Config) { c.Scoring.CareerKeywords = []string{"music", " "} }},
		{"ratio above one", func(c *Config) { c.Mix.LocalRatio = 1.5 }},
		{"ratios sum above one", func(c *Config) { c.Mix.DiverseRatio = 0.3 }},
		{"zero default limit", func(c *Config) { c.Mix.DefaultLimit = 0 }},
		{"max below default", func(c *Config) { c.Mix.MaxLimit = 10 }},
		{"zero top n", func(c *Config) { c.Insights.TopN = 0 }},
		{"too many suggestions", func(c *Config) { c.Insights.MaxSuggestions = 5 }},
		{"zero predict minimum", func(c *Config) { c.Insights.PredictMinInterests = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() expected error")
			}
		})
	}
}

func TestConfig_CloneIsDeep(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Scoring.CareerKeywords[0] = "changed"

	if cfg.Scoring.CareerKeywords[0] != "career" {
		t.Error("Clone shares CareerKeywords with the original")
	}
}
