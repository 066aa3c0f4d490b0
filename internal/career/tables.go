// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package career

import (
	"strings"
	"unicode"
)

// DefaultDescription is returned for categories without a description entry.
const DefaultDescription = "A creative career path worth exploring"

var displayNames = map[string]string{
	"music_production":   "Music Production",
	"dance":              "Dance & Choreography",
	"filmmaking":         "Filmmaking",
	"video_editing":      "Video Editing",
	"rap_music":          "Rap & Hip Hop",
	"creative_direction": "Creative Direction",
	"production":         "Video Production",
	"music_business":     "Music Business",
	"creative_career":    "Creative Careers",
}

var descriptions = map[string]string{
	"music_production":   "Create beats, produce tracks, and work in recording studios",
	"dance":              "Choreograph performances, teach dance, and perform professionally",
	"filmmaking":         "Direct music videos, films, and visual content",
	"video_editing":      "Edit videos, create visual effects, and post-production work",
	"rap_music":          "Write lyrics, perform, and build a music career",
	"creative_direction": "Lead creative projects and design visual concepts",
	"production":         "Manage video shoots, coordinate teams, and produce content",
	"music_business":     "Manage artists, promote music, and work in the industry",
	"creative_career":    "Explore various creative industry opportunities",
}

// adjacency lists the categories a user tends to move on to next.
var adjacency = map[string][]string{
	"music_production": {"video_editing", "music_business"},
	"dance":            {"choreography", "filmmaking"},
	"rap_music":        {"music_production", "music_business"},
	"filmmaking":       {"video_editing", "creative_direction"},
}

// tags lists the descriptive tags attached to videos of a category code.
var tags = map[string][]string{
	"music_production":   {"music", "producer", "beats", "studio", "career"},
	"dance":              {"dance", "choreography", "performing arts", "career"},
	"filmmaking":         {"film", "director", "cinematography", "career"},
	"video_editing":      {"editing", "post-production", "video", "career"},
	"rap_music":          {"rap", "hip hop", "music", "artist", "career"},
	"creative_direction": {"creative", "design", "art direction", "career"},
	"production":         {"behind the scenes", "production", "career"},
	"music_business":     {"music industry", "business", "career"},
	"creative_career":    {"creative", "career", "discovery"},
}

var defaultTags = []string{"career", "creative"}

// primaryCodes is the code used to tag videos fetched for a canonical
// category.
var primaryCodes = map[Canonical]string{
	BusinessManagement: "music_business",
	AnimationVFX:       "video_editing",
	WritingJournalism:  "creative_career",
	Music:              "music_production",
	Sports:             "creative_career",
	FilmTelevision:     "filmmaking",
}

// careers holds the job titles used to build search queries per category.
var careers = map[Canonical][]string{
	BusinessManagement: {
		"Talent Management", "Talent Agency", "Production Management",
		"Event Management", "Marketing & PR", "Business Development",
		"Legal", "Accounting Finance", "Casting", "Administrative Support",
	},
	AnimationVFX: {
		"Animator", "Graphic Design Artist", "Visual Effects Artist",
		"3D Animator", "Motion Graphics Designer",
	},
	WritingJournalism: {
		"Entertainment Journalist", "Publicist", "Content Creator",
		"Entertainment Writer", "Script Writer",
	},
	Music: {
		"Musician Singer", "Music Producer", "Songwriter",
		"Audio Engineer", "Music Producer Career",
	},
	Sports: {
		"Sports Broadcasting", "Game Day Operations", "Events Coordinator",
		"Sound Engineer", "Sports Advertising", "Sports Marketing",
		"Digital Design", "Merchandising", "Content Production", "Sports Talent",
	},
	FilmTelevision: {
		"Acting", "Directing", "Film Writing", "Casting", "Cinematography",
		"Video Editing", "Sound Design", "Sound Engineer", "Costume Design",
		"Set Design Engineer", "Equipment Operations", "Makeup Artists",
	},
}

// DisplayName returns a human-readable name for a category identifier.
// Unknown identifiers have underscores replaced by spaces and each word
// capitalized.
func DisplayName(id string) string {
	if name, ok := displayNames[id]; ok {
		return name
	}
	return titleCase(strings.ReplaceAll(id, "_", " "))
}

// Description returns the one-line description for a category identifier.
func Description(id string) string {
	if d, ok := descriptions[id]; ok {
		return d
	}
	return DefaultDescription
}

// Successors returns the categories adjacent to id, or nil.
func Successors(id string) []string {
	next, ok := adjacency[id]
	if !ok {
		return nil
	}
	out := make([]string, len(next))
	copy(out, next)
	return out
}

// Careers returns the career titles for a canonical category, or nil.
func Careers(c Canonical) []string {
	list, ok := careers[c]
	if !ok {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Tags returns the video tags for a category identifier. Canonical names
// use the tags of their primary code; unknown identifiers get a generic
// career tag set.
func Tags(id string) []string {
	if code, ok := primaryCodes[Canonical(id)]; ok {
		id = code
	}
	list, ok := tags[id]
	if !ok {
		list = defaultTags
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// PrimaryCode returns the category code associated with a canonical
// category, or "creative_career" for unknown names.
func PrimaryCode(c Canonical) string {
	if code, ok := primaryCodes[c]; ok {
		return code
	}
	return "creative_career"
}

// titleCase upper-cases the first letter of every word.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevWord := false
	for _, r := range s {
		isWord := unicode.IsLetter(r) || unicode.IsDigit(r)
		if isWord && !prevWord {
			r = unicode.ToUpper(r)
		}
		prevWord = isWord
		b.WriteRune(r)
	}
	return b.String()
}
