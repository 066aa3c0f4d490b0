// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package recommend

import "github.com/tomtom215/spark/internal/career"

// CareerInsights summarizes the viewer's strongest interests for display.
func (e *Engine) CareerInsights(p Profile) Insights {
	top := p.TopInterests(e.config.Insights.TopN)
	if len(top) == 0 {
		return Insights{
			Message:     ColdStartMessage,
			Suggestions: []Suggestion{},
		}
	}

	first := top[0]
	name := career.DisplayName(first.Category)

	rest := top[1:]
	if len(rest) > e.config.Insights.MaxSuggestions {
		rest = rest[:e.config.Insights.MaxSuggestions]
	}
	suggestions := make([]Suggestion, 0, len(rest))
	for _, in := range rest {
		suggestions = append(suggestions, Suggestion{
			Name:  career.DisplayName(in.Category),
			Score: in.Score,
		})
	}

	return Insights{
		Message: "You're showing strong interest in " + name + "!",
		TopCareer: &CareerSummary{
			Name:        name,
			Score:       first.Score,
			Description: career.Description(first.Category),
		},
		Suggestions: suggestions,
	}
}

// PredictNextInterest names a category the viewer may like next, derived
// from the successors of their top interest. It reports false when fewer
// than two interests exist or the top interest has no successors.
func (e *Engine) PredictNextInterest(p Profile) (string, bool) {
	top := p.TopInterests(e.config.Insights.PredictTopN)
	if len(top) < e.config.Insights.PredictMinInterests {
		return "", false
	}
	next := career.Successors(top[0].Category)
	if len(next) == 0 {
		return "", false
	}
	return career.DisplayName(next[0]), true
}
