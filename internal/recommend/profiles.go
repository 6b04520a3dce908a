// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package recommend

import (
	"sort"
	"strings"
)

// DefaultProfileName is the profile used for genres missing from the table.
const DefaultProfileName = "default"

// GenreProfile is the domain knowledge attached to one genre.
type GenreProfile struct {
	// Keywords trigger the content boost when they appear in a candidate's
	// cleaned tags and this profile was selected by the query's primary genre.
	Keywords []string `json:"keywords"`

	// Weight is the genre's contribution to weighted Jaccard.
	Weight float64 `json:"weight"`

	// MinRating is the minimum rating threshold recorded for the genre.
	// It is published with the table but not applied by the scorer.
	MinRating float64 `json:"min_rating"`
}

// GenreProfiles maps genre names to profiles with a default fallback.
type GenreProfiles struct {
	byName   map[string]GenreProfile
	keywords map[string]map[string]struct{}
	fallback GenreProfile
}

// NewGenreProfiles builds a profile table. profiles must contain an entry
// named DefaultProfileName; if it does not, a zero-keyword profile with
// weight 1.0 is used.
func NewGenreProfiles(profiles map[string]GenreProfile) *GenreProfiles {
	p := &GenreProfiles{
		byName:   make(map[string]GenreProfile, len(profiles)),
		keywords: make(map[string]map[string]struct{}, len(profiles)),
		fallback: GenreProfile{Weight: 1.0},
	}

	for name, prof := range profiles {
		name = strings.ToLower(name)
		if name == DefaultProfileName {
			p.fallback = prof
			continue
		}
		p.byName[name] = prof
		p.keywords[name] = tokenSet(strings.Join(prof.Keywords, " "))
	}

	return p
}

// DefaultTVProfiles returns the TV genre table.
func DefaultTVProfiles() *GenreProfiles {
	return NewGenreProfiles(map[string]GenreProfile{
		"comedy":  {Keywords: []string{"mockumentary", "workplace", "sitcom", "funny"}, Weight: 1.5, MinRating: 6.5},
		"drama":   {Keywords: []string{"intense", "emotional", "character", "story"}, Weight: 1.3, MinRating: 7.0},
		"sci-fi":  {Keywords: []string{"futuristic", "space", "technology", "alien"}, Weight: 1.4, MinRating: 7.0},
		"fantasy": {Keywords: []string{"magic", "supernatural", "mythology", "adventure"}, Weight: 1.4, MinRating: 7.0},
		"action":  {Keywords: []string{"adventure", "fight", "thriller", "stunt"}, Weight: 1.2, MinRating: 6.5},
		DefaultProfileName: {Keywords: nil, Weight: 1.0, MinRating: 6.0},
	})
}

// Lookup returns the profile for genre, or the default profile.
func (p *GenreProfiles) Lookup(genre string) GenreProfile {
	if prof, ok := p.byName[strings.ToLower(genre)]; ok {
		return prof
	}
	return p.fallback
}

// Weight returns the weighted-Jaccard weight for genre.
func (p *GenreProfiles) Weight(genre string) float64 {
	return p.Lookup(genre).Weight
}

// keywordSet returns the boost keywords for genre. Unknown genres get the
// default profile's keywords.
func (p *GenreProfiles) keywordSet(genre string) map[string]struct{} {
	if kw, ok := p.keywords[strings.ToLower(genre)]; ok {
		return kw
	}
	return tokenSet(strings.Join(p.fallback.Keywords, " "))
}

// All returns every profile including the default, keyed by name.
func (p *GenreProfiles) All() map[string]GenreProfile {
	out := make(map[string]GenreProfile, len(p.byName)+1)
	for name, prof := range p.byName {
		out[name] = prof
	}
	out[DefaultProfileName] = p.fallback
	return out
}

// Names returns the named genres in sorted order, excluding the default.
func (p *GenreProfiles) Names() []string {
	names := make([]string, 0, len(p.byName))
	for name := range p.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
