// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package catalog

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/tomtom215/unirex/internal/recommend"
)

// bundleNames are the release asset base names of each domain's bundle.
var bundleNames = map[recommend.Domain]string{
	recommend.Anime: "anime_recommender_bundle",
	recommend.Manga: "manga_recommender_bundle",
	recommend.Movie: "movie_recommender_bundle2",
	recommend.TV:    "tv_series_recommender_bundle",
}

// BundleFile returns the gzip bundle file name for d.
func BundleFile(d recommend.Domain) (string, error) {
	name, ok := bundleNames[d]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDomain, d)
	}
	return name + ".json.gz", nil
}

// bundleFiles lists the accepted file names for d, preferred first.
func bundleFiles(d recommend.Domain) ([]string, error) {
	gz, err := BundleFile(d)
	if err != nil {
		return nil, err
	}
	return []string{gz, bundleNames[d] + ".json"}, nil
}

// BundleItem is one item row as stored in a bundle.
// Manga data names the genre column "genre"; both keys are accepted.
type BundleItem struct {
	Title         string  `json:"title"`
	Genres        string  `json:"genres,omitempty"`
	Genre         string  `json:"genre,omitempty"`
	Tags          string  `json:"tags,omitempty"`
	CleanedTags   string  `json:"cleaned_tags,omitempty"`
	AverageRating float64 `json:"average_rating"`
	Popularity    float64 `json:"popularity"`
}

// Bundle is the on-disk form of one catalog.
type Bundle struct {
	Domain  string `json:"domain"`
	Version string `json:"version,omitempty"`

	Items []BundleItem `json:"items"`

	NormalizedRatings    []float64 `json:"normalized_ratings"`
	NormalizedPopularity []float64 `json:"normalized_popularity,omitempty"`

	// CombinedPopularity is the anime bundle's name for the popularity vector.
	CombinedPopularity []float64 `json:"combined_popularity,omitempty"`

	// Exactly one of TagSimilarity and TagVectors is set.
	TagSimilarity [][]float64    `json:"tag_similarity,omitempty"`
	TagVectors    []SparseVector `json:"tag_vectors,omitempty"`
}

var gzipMagic = []byte{0x1f, 0x8b}

// DecodeBundle parses raw bundle bytes, gzip-compressed or plain JSON.
func DecodeBundle(data []byte) (*Bundle, error) {
	var r io.Reader = bytes.NewReader(data)
	if bytes.HasPrefix(data, gzipMagic) {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: gzip header: %v", ErrMalformedBundle, err)
		}
		defer zr.Close()
		r = zr
	}

	var b Bundle
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBundle, err)
	}
	return &b, nil
}

// Catalog validates b against domain d and builds the scoring catalog.
// NewCatalog performs the cleaned-tags backfill.
func (b *Bundle) Catalog(d recommend.Domain) (*recommend.Catalog, error) {
	if b.Domain != "" {
		got, err := recommend.ParseDomain(b.Domain)
		if err != nil || got != d {
			return nil, fmt.Errorf("%w: bundle is for domain %q, want %q", ErrMalformedBundle, b.Domain, d)
		}
	}
	if len(b.Items) == 0 {
		return nil, fmt.Errorf("%w: no items", ErrMalformedBundle)
	}

	sim, err := b.similarity()
	if err != nil {
		return nil, err
	}

	popularity := b.NormalizedPopularity
	if popularity == nil {
		popularity = b.CombinedPopularity
	}

	items := make([]recommend.Item, len(b.Items))
	for i, bi := range b.Items {
		genres := bi.Genres
		if genres == "" {
			genres = bi.Genre
		}
		items[i] = recommend.Item{
			Title:         bi.Title,
			Genres:        genres,
			Tags:          bi.Tags,
			AverageRating: bi.AverageRating,
			Popularity:    bi.Popularity,
			CleanedTags:   bi.CleanedTags,
		}
	}

	c, err := recommend.NewCatalog(d, items, sim, b.NormalizedRatings, popularity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBundle, err)
	}
	return c, nil
}

func (b *Bundle) similarity() (recommend.TagSimilarity, error) {
	hasDense := b.TagSimilarity != nil
	hasSparse := b.TagVectors != nil
	switch {
	case hasDense && hasSparse:
		return nil, fmt.Errorf("%w: both tag_similarity and tag_vectors are set", ErrMalformedBundle)
	case hasDense:
		return NewDenseSimilarity(b.TagSimilarity)
	case hasSparse:
		return NewSparseCosine(b.TagVectors)
	default:
		return nil, fmt.Errorf("%w: neither tag_similarity nor tag_vectors is set", ErrMalformedBundle)
	}
}

// LoadCatalog decodes data and builds the catalog for d.
func LoadCatalog(data []byte, d recommend.Domain) (*recommend.Catalog, error) {
	b, err := DecodeBundle(data)
	if err != nil {
		return nil, err
	}
	return b.Catalog(d)
}
