// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package recommend

import (
	"slices"
	"strings"
)

// ContentBoost multiplies the tag signal when a candidate's cleaned tags
// share a keyword with the query's primary-genre profile.
const ContentBoost = 1.3

// GenreStrategy computes genre similarity between a query row and every
// candidate row, plus the tag-signal boost for each candidate.
type GenreStrategy interface {
	// Name identifies the strategy in logs and the domain listing.
	Name() string

	// Bind prepares a scorer for one query. queryGenres is the raw,
	// ordered genre string of the query item.
	Bind(queryGenres string) GenreScorer
}

// GenreScorer scores candidates against a bound query.
type GenreScorer interface {
	// Similarity returns the genre similarity to a candidate genre set.
	Similarity(candidate map[string]struct{}) float64

	// Boost returns the tag-signal multiplier for a candidate's cleaned tags.
	Boost(candidateTags map[string]struct{}) float64
}

// Jaccard returns |a∩b| / |a∪b|. An empty union yields 0.
func Jaccard(a, b map[string]struct{}) float64 {
	return WeightedJaccard(a, b, nil)
}

// WeightedJaccard returns the summed weight of a∩b over the summed weight
// of a∪b. A nil weight function weighs every element 1. A zero-weight union
// yields 0.
//
// Weights are summed in sorted genre order so the result is bit-identical
// across calls and argument order.
func WeightedJaccard(a, b map[string]struct{}, weight func(string) float64) float64 {
	if weight == nil {
		weight = func(string) float64 { return 1 }
	}

	genres := make([]string, 0, len(a)+len(b))
	for g := range a {
		genres = append(genres, g)
	}
	for g := range b {
		if _, ok := a[g]; !ok {
			genres = append(genres, g)
		}
	}
	slices.Sort(genres)

	var inter, union float64
	for _, g := range genres {
		w := weight(g)
		union += w
		_, inA := a[g]
		_, inB := b[g]
		if inA && inB {
			inter += w
		}
	}

	if union == 0 {
		return 0
	}
	return inter / union
}

// PrimaryGenre returns the first lower-cased token of genres, or
// DefaultProfileName when genres has no tokens.
func PrimaryGenre(genres string) string {
	fields := strings.Fields(genres)
	if len(fields) == 0 {
		return DefaultProfileName
	}
	return strings.ToLower(fields[0])
}

// PlainJaccard is unweighted Jaccard with no content boost.
type PlainJaccard struct{}

// Name implements GenreStrategy.
func (PlainJaccard) Name() string { return "jaccard" }

// Bind implements GenreStrategy.
func (PlainJaccard) Bind(queryGenres string) GenreScorer {
	return plainScorer{query: tokenSet(queryGenres)}
}

type plainScorer struct {
	query map[string]struct{}
}

func (s plainScorer) Similarity(candidate map[string]struct{}) float64 {
	return Jaccard(s.query, candidate)
}

func (plainScorer) Boost(map[string]struct{}) float64 { return 1 }

// ProfileWeightedJaccard weighs each genre by its profile weight and boosts
// candidates whose tags hit the primary-genre keyword set.
type ProfileWeightedJaccard struct {
	Profiles *GenreProfiles
}

// Name implements GenreStrategy.
func (ProfileWeightedJaccard) Name() string { return "weighted_jaccard" }

// Bind implements GenreStrategy.
func (p ProfileWeightedJaccard) Bind(queryGenres string) GenreScorer {
	profiles := p.Profiles
	if profiles == nil {
		profiles = DefaultTVProfiles()
	}
	return &weightedScorer{
		profiles: profiles,
		query:    tokenSet(queryGenres),
		keywords: profiles.keywordSet(PrimaryGenre(queryGenres)),
	}
}

type weightedScorer struct {
	profiles *GenreProfiles
	query    map[string]struct{}
	keywords map[string]struct{}
}

func (s *weightedScorer) Similarity(candidate map[string]struct{}) float64 {
	return WeightedJaccard(s.query, candidate, s.profiles.Weight)
}

func (s *weightedScorer) Boost(candidateTags map[string]struct{}) float64 {
	small, large := s.keywords, candidateTags
	if len(large) < len(small) {
		small, large = large, small
	}
	for k := range small {
		if _, ok := large[k]; ok {
			return ContentBoost
		}
	}
	return 1
}
