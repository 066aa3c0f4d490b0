// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package source

import (
	"context"

	"github.com/tomtom215/spark/internal/cache"
	"github.com/tomtom215/spark/internal/metrics"
	"github.com/tomtom215/spark/internal/models"
)

// Cached serves repeated queries from a TTL cache. Only successful,
// non-empty pages are stored.
type Cached struct {
	next  Source
	cache *cache.TTL[Page]
}

// NewCached wraps next with c. One cache may be shared by several sources;
// keys are prefixed with the source name.
func NewCached(next Source, c *cache.TTL[Page]) *Cached {
	return &Cached{next: next, cache: c}
}

// Name implements Source.
func (c *Cached) Name() string { return c.next.Name() }

// Fetch implements Source.
func (c *Cached) Fetch(ctx context.Context, q Query) (Page, error) {
	key := c.key(q)
	if page, ok := c.cache.Get(key); ok {
		metrics.RecordCacheLookup(c.Name(), true)
		return clonePage(page), nil
	}
	metrics.RecordCacheLookup(c.Name(), false)

	page, err := c.next.Fetch(ctx, q)
	if err != nil {
		return Page{}, err
	}
	if len(page.Videos) > 0 {
		c.cache.Set(key, clonePage(page))
	}
	return page, nil
}

// key covers every field that changes the fetched page.
func (c *Cached) key(q Query) string {
	return cache.GenerateKey(c.Name(), struct {
		Category   string `json:"c"`
		Search     string `json:"q"`
		Game       string `json:"g"`
		Region     string `json:"r"`
		MaxResults int    `json:"n"`
		PageToken  string `json:"t"`
		School     string `json:"s"`
	}{q.Category, q.Search, q.Game, q.Region, q.MaxResults, q.PageToken, q.School})
}

// clonePage copies the video slice so callers cannot mutate cached data.
func clonePage(p Page) Page {
	videos := make([]models.Video, len(p.Videos))
	for i := range p.Videos {
		videos[i] = p.Videos[i]
		videos[i].Tags = append([]string(nil), p.Videos[i].Tags...)
	}
	p.Videos = videos
	return p
}
