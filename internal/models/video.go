// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package models

import "github.com/tomtom215/spark/internal/career"

// Platform identifies where a video is hosted.
type Platform string

// Supported platforms.
const (
	PlatformYouTube Platform = "youtube"
	PlatformTwitch  Platform = "twitch"
)

// CareerTag marks a video as career-discovery content.
const CareerTag = "career"

// Video is a candidate video supplied by a content source. The ranking code
// reads it but never changes its identity fields.
type Video struct {
	ID          string   `json:"id" validate:"required,max=128"`
	Title       string   `json:"title" validate:"max=512"`
	Channel     string   `json:"channel,omitempty"`
	Description string   `json:"description,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	ViewCount   int64    `json:"viewCount,omitempty"`
	PublishedAt string   `json:"publishedAt,omitempty"`
	Platform    Platform `json:"platform,omitempty"`

	// CareerCategory is a category code or canonical category.
	CareerCategory career.Category `json:"careerCategory"`

	// Category is the canonical category the video was fetched for.
	Category string `json:"category,omitempty"`

	Tags          []string `json:"tags,omitempty" validate:"max=64"`
	IsLocalArtist bool     `json:"isLocalArtist"`
	WasSkipped    bool     `json:"wasSkipped"`
}

// HasTag reports whether the video carries tag.
func (v *Video) HasTag(tag string) bool {
	for _, t := range v.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ScoredVideo is a Video with its recommendation score and reason.
type ScoredVideo struct {
	Video
	RecommendationScore  float64 `json:"recommendationScore"`
	RecommendationReason string  `json:"recommendationReason"`
}
