// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package career

import "github.com/goccy/go-json"

// Canonical is one of the six fixed career categories.
type Canonical string

// The canonical career categories.
const (
	BusinessManagement Canonical = "Business & Management"
	AnimationVFX       Canonical = "Animation & Visual Effects"
	WritingJournalism  Canonical = "Writing & Journalism"
	Music              Canonical = "Music"
	Sports             Canonical = "Sports"
	FilmTelevision     Canonical = "Film & Television"
)

var canonicals = []Canonical{
	BusinessManagement,
	AnimationVFX,
	WritingJournalism,
	Music,
	Sports,
	FilmTelevision,
}

// Canonicals returns the canonical categories in rotation order.
func Canonicals() []Canonical {
	out := make([]Canonical, len(canonicals))
	copy(out, canonicals)
	return out
}

// IsCanonical reports whether s names a canonical category.
func IsCanonical(s string) bool {
	for _, c := range canonicals {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Kind distinguishes the two shapes a category identifier can take.
type Kind uint8

const (
	// KindNone is the zero Category: no category was supplied.
	KindNone Kind = iota
	// KindCanonical holds one of the six Canonical values.
	KindCanonical
	// KindCode holds a free-form category code such as "music_production".
	KindCode
)

// Category is a category identifier tagged with its shape.
// The zero value means "no category".
type Category struct {
	kind  Kind
	value string
}

// FromCanonical wraps a canonical category.
func FromCanonical(c Canonical) Category {
	return Category{kind: KindCanonical, value: string(c)}
}

// FromCode wraps a category code. An empty code yields the zero Category.
func FromCode(code string) Category {
	if code == "" {
		return Category{}
	}
	return Category{kind: KindCode, value: code}
}

// Parse classifies a raw identifier received from a client or upstream API.
func Parse(s string) Category {
	if s == "" {
		return Category{}
	}
	if IsCanonical(s) {
		return Category{kind: KindCanonical, value: s}
	}
	return Category{kind: KindCode, value: s}
}

// Kind returns the shape of the identifier.
func (c Category) Kind() Kind { return c.kind }

// IsZero reports whether no category is present.
func (c Category) IsZero() bool { return c.kind == KindNone }

// String returns the identifier exactly as it was supplied.
func (c Category) String() string { return c.value }

// MarshalJSON renders the category as its raw identifier.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.value)
}

// UnmarshalJSON parses a raw identifier.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = Parse(s)
	return nil
}

// codeToCanonical maps category codes onto the canonical six.
var codeToCanonical = map[string]Canonical{
	"music_business":   BusinessManagement,
	"video_editing":    AnimationVFX,
	"creative_career":  WritingJournalism,
	"music_production": Music,
	"dance":            Sports,
	"rap_music":        Music,
	"filmmaking":       FilmTelevision,
	"production":       FilmTelevision,
}

// Normalize returns the canonical name for c. Canonical values map to
// themselves; unmapped codes pass through unchanged.
func Normalize(c Category) string {
	switch c.kind {
	case KindCanonical:
		return c.value
	case KindCode:
		if canon, ok := codeToCanonical[c.value]; ok {
			return string(canon)
		}
		return c.value
	default:
		return ""
	}
}
