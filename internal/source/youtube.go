// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package source

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/tomtom215/spark/internal/career"
	"github.com/tomtom215/spark/internal/logging"
	"github.com/tomtom215/spark/internal/models"
)

// YouTube API bounds.
const (
	youtubeDefaultResults = 20
	youtubeMaxResults     = 50
)

// YouTubeConfig configures the YouTube source.
type YouTubeConfig struct {
	// APIKey is the YouTube Data API key.
	APIKey string

	// Endpoint overrides the API base URL. Used by tests.
	Endpoint string

	// Timeout bounds each fetch. Default DefaultTimeout.
	Timeout time.Duration

	// Rand picks the career title searched for a category.
	Rand *rand.Rand

	Logger *zerolog.Logger
}

// YouTube fetches career videos from the YouTube Data API v3.
type YouTube struct {
	svc     *youtube.Service
	timeout time.Duration
	logger  zerolog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewYouTube creates the YouTube source. An empty API key returns
// ErrNotConfigured.
func NewYouTube(ctx context.Context, cfg YouTubeConfig) (*YouTube, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("youtube: %w", ErrNotConfigured)
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("youtube: create service: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := logging.WithComponent("youtube")
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "youtube").Logger()
	}

	return &YouTube{
		svc:     svc,
		timeout: cfg.Timeout,
		logger:  logger,
		rng:     cfg.Rand,
	}, nil
}

// Name implements Source.
func (y *YouTube) Name() string { return string(models.PlatformYouTube) }

// Fetch implements Source.
func (y *YouTube) Fetch(ctx context.Context, q Query) (Page, error) {
	ctx, cancel := context.WithTimeout(ctx, y.timeout)
	defer cancel()

	maxResults := int64(clampResults(q.MaxResults, youtubeDefaultResults, youtubeMaxResults))
	region := q.Region
	if region == "" {
		region = DefaultRegion
	}

	var (
		ids  []string
		next string
		err  error
	)
	canonical := career.IsCanonical(q.Category)
	switch {
	case canonical:
		title := y.pickCareer(career.Canonical(q.Category))
		y.logger.Debug().Str("category", q.Category).Str("career", title).Msg("Searching career videos")
		ids, next, err = y.search(ctx, careerQuery(title), maxResults, q.PageToken)
	case q.Search != "":
		ids, next, err = y.search(ctx, q.Search, maxResults, q.PageToken)
	default:
		ids, err = y.mostPopular(ctx, region, maxResults)
	}
	if err != nil {
		return Page{}, err
	}

	page := Page{NextPageToken: next, Videos: []models.Video{}}
	if canonical {
		page.Category = q.Category
	}
	if len(ids) == 0 {
		return page, nil
	}

	items, err := y.details(ctx, ids)
	if err != nil {
		return Page{}, err
	}
	for _, item := range items {
		page.Videos = append(page.Videos, y.toVideo(item, q, canonical))
	}
	return page, nil
}

// careerQuery builds the search phrase for one career title.
func careerQuery(title string) string {
	return fmt.Sprintf("how to become %s OR %s career OR %s day in the life", title, title, title)
}

func (y *YouTube) pickCareer(c career.Canonical) string {
	titles := career.Careers(c)
	if len(titles) == 0 {
		return string(c)
	}
	y.rngMu.Lock()
	defer y.rngMu.Unlock()
	return titles[y.rng.Intn(len(titles))]
}

func (y *YouTube) search(ctx context.Context, query string, maxResults int64, pageToken string) ([]string, string, error) {
	call := y.svc.Search.List([]string{"id", "snippet"}).
		Q(query).
		Type("video").
		Order("viewCount").
		RelevanceLanguage("en").
		MaxResults(maxResults).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("youtube search failed: %w", err)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}
	return ids, resp.NextPageToken, nil
}

func (y *YouTube) mostPopular(ctx context.Context, region string, maxResults int64) ([]string, error) {
	resp, err := y.svc.Videos.List([]string{"id"}).
		Chart("mostPopular").
		RegionCode(region).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube most popular failed: %w", err)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		ids = append(ids, item.Id)
	}
	return ids, nil
}

func (y *YouTube) details(ctx context.Context, ids []string) ([]*youtube.Video, error) {
	resp, err := y.svc.Videos.List([]string{"snippet", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube video details failed: %w", err)
	}
	return resp.Items, nil
}

func (y *YouTube) toVideo(item *youtube.Video, q Query, canonical bool) models.Video {
	v := models.Video{
		ID:       item.Id,
		Platform: models.PlatformYouTube,
	}
	if s := item.Snippet; s != nil {
		v.Title = s.Title
		v.Channel = s.ChannelTitle
		v.Description = s.Description
		v.PublishedAt = s.PublishedAt
		if t := s.Thumbnails; t != nil {
			switch {
			case t.High != nil:
				v.Thumbnail = t.High.Url
			case t.Default != nil:
				v.Thumbnail = t.Default.Url
			}
		}
	}
	if item.Statistics != nil {
		v.ViewCount = int64(item.Statistics.ViewCount)
	}
	if canonical {
		v.CareerCategory = career.FromCode(career.PrimaryCode(career.Canonical(q.Category)))
		v.Category = q.Category
		v.Description = "Career discovery content - " + q.Category
		v.Tags = career.Tags(q.Category)
	}
	v.IsLocalArtist = isLocalArtist(v.Title, q.School)
	return v
}
