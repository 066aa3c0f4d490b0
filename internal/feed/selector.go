// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package feed

import (
	"math/rand"
	"sync"

	"github.com/tomtom215/spark/internal/career"
)

// DefaultPreferredRatio is the probability that a fresh fetch uses the
// viewer's preferred category.
const DefaultPreferredRatio = 0.8

// Choice is the outcome of a category decision.
type Choice struct {
	// Category is the category to fetch.
	Category string

	// PageToken is carried over when the fetch continues a previous page.
	PageToken string

	// FromPreferred is true when Category is the viewer's preferred category.
	FromPreferred bool
}

// Selector decides which category the next candidate fetch should target.
// One Selector belongs to one viewer; it remembers the rotation position
// between calls. It is safe for concurrent use.
type Selector struct {
	mu    sync.Mutex
	rng   *rand.Rand
	ratio float64
	index int
}

// NewSelector creates a Selector. A nil rng gets a time-seeded source; ratio
// outside (0, 1] falls back to DefaultPreferredRatio.
func NewSelector(rng *rand.Rand, ratio float64) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	if ratio <= 0 || ratio > 1 {
		ratio = DefaultPreferredRatio
	}
	return &Selector{rng: rng, ratio: ratio}
}

// Start picks the category for a fresh feed: the preferred category when one
// is set, otherwise a random canonical category that also becomes the
// rotation position.
func (s *Selector) Start(preferred string) Choice {
	if preferred != "" {
		return Choice{Category: preferred, FromPreferred: true}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cats := career.Canonicals()
	s.index = s.rng.Intn(len(cats))
	return Choice{Category: string(cats[s.index])}
}

// Next picks the category for a follow-up fetch.
//
// A non-empty pageToken continues the current category: the preferred
// category if one is set, otherwise the rotation position. Without a token a
// viewer with a preference gets it with the configured probability and a
// random other canonical category otherwise; a viewer without one rotates to
// a random canonical category different from last.
func (s *Selector) Next(preferred, last, pageToken string) Choice {
	s.mu.Lock()
	defer s.mu.Unlock()

	cats := career.Canonicals()

	if pageToken != "" {
		if preferred != "" {
			return Choice{Category: preferred, PageToken: pageToken, FromPreferred: true}
		}
		return Choice{Category: string(cats[s.index]), PageToken: pageToken}
	}

	if preferred != "" {
		if s.rng.Float64() < s.ratio {
			return Choice{Category: preferred, FromPreferred: true}
		}
		others := exclude(cats, preferred)
		return Choice{Category: string(others[s.rng.Intn(len(others))])}
	}

	available := exclude(cats, last)
	pick := available[s.rng.Intn(len(available))]
	s.index = indexOf(cats, pick)
	return Choice{Category: string(pick)}
}

// Exhausted records that a fetch for c returned nothing. The preferred
// category stays in place; any other choice advances the rotation.
func (s *Selector) Exhausted(c Choice) {
	if c.FromPreferred {
		return
	}
	s.Advance()
}

// Advance moves the rotation position to the next canonical category.
func (s *Selector) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = (s.index + 1) % len(career.Canonicals())
}

// Current returns the canonical category at the rotation position.
func (s *Selector) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(career.Canonicals()[s.index])
}

func exclude(cats []career.Canonical, name string) []career.Canonical {
	out := make([]career.Canonical, 0, len(cats))
	for _, c := range cats {
		if string(c) != name {
			out = append(out, c)
		}
	}
	return out
}

func indexOf(cats []career.Canonical, c career.Canonical) int {
	for i := range cats {
		if cats[i] == c {
			return i
		}
	}
	return 0
}
