// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package feed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/spark/internal/behavior"
	"github.com/tomtom215/spark/internal/models"
	"github.com/tomtom215/spark/internal/recommend"
	"github.com/tomtom215/spark/internal/source"
)

// maxAttempts bounds how many empty categories a single load skips past.
const maxAttempts = 3

// Request describes one feed load.
type Request struct {
	// Limit is the number of videos wanted; 0 uses the engine default.
	Limit int

	// PageToken continues the previous page of the current category.
	PageToken string

	// Category forces a category and bypasses the selector.
	Category string

	// More marks a follow-up load. Without a page token it rotates to the
	// next category instead of starting over.
	More bool

	Region string
	School string
}

// Response is one personalized page.
type Response struct {
	Videos        []models.ScoredVideo
	NextPageToken string
	Category      string
}

// Service loads candidates for a viewer and ranks them.
type Service struct {
	source source.Source
	engine *recommend.Engine
	region string
	logger zerolog.Logger
}

// NewService creates a feed service. region is used when a request has none.
func NewService(src source.Source, engine *recommend.Engine, region string, logger zerolog.Logger) *Service {
	if region == "" {
		region = source.DefaultRegion
	}
	return &Service{
		source: src,
		engine: engine,
		region: region,
		logger: logger.With().Str("component", "feed").Logger(),
	}
}

// Load picks a category with sel, fetches a page from the source, and
// returns it ranked against the tracker's state. When a non-preferred
// category comes back empty the rotation advances and the next category is
// tried.
func (s *Service) Load(ctx context.Context, tracker *behavior.Tracker, sel *Selector, req Request) (Response, error) {
	limit := s.engine.ClampLimit(req.Limit)
	region := req.Region
	if region == "" {
		region = s.region
	}

	choice := s.choose(tracker, sel, req)
	var page source.Page
	for attempt := 1; ; attempt++ {
		var err error
		page, err = s.source.Fetch(ctx, source.Query{
			Category:   choice.Category,
			Region:     region,
			MaxResults: limit,
			PageToken:  choice.PageToken,
			School:     req.School,
		})
		if err != nil {
			return Response{}, fmt.Errorf("fetch %q: %w", choice.Category, err)
		}
		if len(page.Videos) > 0 || req.Category != "" || choice.FromPreferred || attempt == maxAttempts {
			break
		}

		s.logger.Debug().Str("category", choice.Category).Msg("Category returned no videos, rotating")
		sel.Exhausted(choice)
		choice = Choice{Category: sel.Current()}
	}

	var ranked []models.ScoredVideo
	tracker.View(func(st *behavior.State) {
		ranked = s.engine.PersonalizedFeed(st, page.Videos, limit)
	})

	return Response{
		Videos:        ranked,
		NextPageToken: page.NextPageToken,
		Category:      choice.Category,
	}, nil
}

func (s *Service) choose(tracker *behavior.Tracker, sel *Selector, req Request) Choice {
	preferred := tracker.PreferredCategory()
	switch {
	case req.Category != "":
		return Choice{
			Category:      req.Category,
			PageToken:     req.PageToken,
			FromPreferred: req.Category == preferred,
		}
	case req.PageToken != "" || req.More:
		return sel.Next(preferred, sel.Current(), req.PageToken)
	default:
		return sel.Start(preferred)
	}
}
