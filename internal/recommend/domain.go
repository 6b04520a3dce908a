// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package recommend

import (
	"fmt"
	"strings"
)

// Domain names one catalog.
type Domain string

// Supported domains.
const (
	Anime Domain = "anime"
	Manga Domain = "manga"
	Movie Domain = "movie"
	TV    Domain = "tv"
)

// Field names one column of a serialized recommendation record.
type Field string

// Response fields.
const (
	FieldTitle         Field = "title"
	FieldGenres        Field = "genres"
	FieldGenre         Field = "genre"
	FieldAverageRating Field = "average_rating"
	FieldPopularity    Field = "popularity"
	FieldScore         Field = "score"
)

// Spec is the per-domain configuration of the single scoring engine.
// The TV entry differs from the other three in every policy slot; that
// asymmetry is intentional and kept explicit here rather than unified.
type Spec struct {
	Domain         Domain
	Genre          GenreStrategy
	Order          SignalOrder
	MatchPolicy    MatchPolicy
	Normalizer     Normalizer
	DefaultWeights Weights

	// Fields is the ordered record shape returned at the HTTP edge.
	Fields []Field

	// NotFoundFormat has a single %s verb for the requested title.
	NotFoundFormat string

	// Profiles is non-nil only for domains with a genre profile table.
	Profiles *GenreProfiles
}

// HasField reports whether f is part of the domain's record shape.
func (s Spec) HasField(f Field) bool {
	for _, x := range s.Fields {
		if x == f {
			return true
		}
	}
	return false
}

var (
	defaultContentWeights = Weights{Alpha: 0.2, Beta: 0.4, Gamma: 0.25, Delta: 0.15}
	defaultTVWeights      = Weights{Alpha: 0.4, Beta: 0.3, Gamma: 0.2, Delta: 0.1}

	tvProfiles = DefaultTVProfiles()

	specs = map[Domain]Spec{
		Anime: {
			Domain:         Anime,
			Genre:          PlainJaccard{},
			Order:          OrderGenreTagRatingPopularity,
			MatchPolicy:    MatchPolicyExact,
			Normalizer:     NewNormalizer(),
			DefaultWeights: defaultContentWeights,
			Fields:         []Field{FieldTitle, FieldGenres, FieldAverageRating, FieldScore},
			NotFoundFormat: "❌ '%s' not found in the dataset.",
		},
		Manga: {
			Domain:         Manga,
			Genre:          PlainJaccard{},
			Order:          OrderGenreTagRatingPopularity,
			MatchPolicy:    MatchPolicyExact,
			Normalizer:     NewNormalizer(),
			DefaultWeights: defaultContentWeights,
			Fields:         []Field{FieldTitle, FieldGenre, FieldAverageRating, FieldScore},
			NotFoundFormat: "❌ '%s' not found in the dataset.",
		},
		Movie: {
			Domain:         Movie,
			Genre:          PlainJaccard{},
			Order:          OrderGenreTagRatingPopularity,
			MatchPolicy:    MatchPolicyExact,
			Normalizer:     NewNormalizer(),
			DefaultWeights: defaultContentWeights,
			Fields:         []Field{FieldTitle, FieldGenres, FieldAverageRating, FieldPopularity, FieldScore},
			NotFoundFormat: "Movie titled '%s' not found in dataset.",
		},
		TV: {
			Domain:         TV,
			Genre:          ProfileWeightedJaccard{Profiles: tvProfiles},
			Order:          OrderGenrePopularityTagRating,
			MatchPolicy:    MatchPolicyExactThenSubstring,
			Normalizer:     NewNormalizer(tvStopWords...),
			DefaultWeights: defaultTVWeights,
			Fields:         []Field{FieldTitle, FieldGenres, FieldScore},
			NotFoundFormat: "TV Series titled '%s' not found in dataset.",
			Profiles:       tvProfiles,
		},
	}
)

// SpecFor returns the configuration of d.
func SpecFor(d Domain) (Spec, error) {
	s, ok := specs[d]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownDomain, d)
	}
	return s, nil
}

// ParseDomain maps a case-insensitive name to a Domain. The route aliases
// "movies", "series" and "anime"/"manga" are accepted.
func ParseDomain(s string) (Domain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "anime":
		return Anime, nil
	case "manga":
		return Manga, nil
	case "movie", "movies":
		return Movie, nil
	case "tv", "series":
		return TV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDomain, s)
	}
}

// Domains returns every supported domain in a fixed order.
func Domains() []Domain {
	return []Domain{Anime, Manga, Movie, TV}
}
