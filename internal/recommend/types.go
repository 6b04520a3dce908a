// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package recommend

import (
	"fmt"
	"sync/atomic"
)

// catalogSeq hands out catalog identities for cache keys.
var catalogSeq atomic.Uint64

// Item represents one catalog row.
type Item struct {
	// Title is the display title. It is not required to be unique.
	Title string `json:"title"`

	// Genres is a whitespace-delimited set of genre tags.
	Genres string `json:"genres"`

	// Tags is free descriptive text.
	Tags string `json:"tags"`

	// AverageRating is the display rating carried by the source data.
	// Scoring uses the catalog's normalized rating vector instead.
	AverageRating float64 `json:"average_rating"`

	// Popularity is the display popularity carried by the source data.
	// Scoring uses the catalog's normalized popularity vector instead.
	Popularity float64 `json:"popularity"`

	// CleanedTags is Tags after the domain normalizer has run.
	// Derived once by NewCatalog.
	CleanedTags string `json:"cleaned_tags,omitempty"`
}

// TagSimilarity is an n×n cosine similarity over item tag vectors.
// Row(i) returns the similarity of item i to every item, itself included.
type TagSimilarity interface {
	// Len returns n.
	Len() int

	// Row returns row i. Callers must not modify the returned slice.
	Row(i int) []float64
}

// Catalog is the ordered item table of one domain together with the vectors
// that are joined to it by row index. It is immutable after NewCatalog.
type Catalog struct {
	id         uint64
	domain     Domain
	items      []Item
	similarity TagSimilarity
	ratings    []float64
	popularity []float64

	// titleKeys[i] is the lower-cased, trimmed title of items[i].
	titleKeys []string

	// genreTokens[i] is the lower-cased genre set of items[i].
	genreTokens []map[string]struct{}

	// tagTokens[i] is the token set of items[i].CleanedTags.
	tagTokens []map[string]struct{}
}

// NewCatalog validates that every per-row input has the same length and
// performs the one-time derived-column backfill (cleaned tags and title
// keys). The items slice is copied; the caller may reuse it afterwards.
func NewCatalog(domain Domain, items []Item, sim TagSimilarity, ratings, popularity []float64) (*Catalog, error) {
	spec, err := SpecFor(domain)
	if err != nil {
		return nil, err
	}

	n := len(items)
	if n == 0 {
		return nil, fmt.Errorf("%w: catalog %s has no items", ErrInvalidCatalog, domain)
	}
	if sim == nil {
		return nil, fmt.Errorf("%w: catalog %s has no tag similarity", ErrInvalidCatalog, domain)
	}
	if sim.Len() != n {
		return nil, fmt.Errorf("%w: tag similarity has %d rows, want %d", ErrInvalidCatalog, sim.Len(), n)
	}
	if len(ratings) != n {
		return nil, fmt.Errorf("%w: %d ratings, want %d", ErrInvalidCatalog, len(ratings), n)
	}
	if len(popularity) != n {
		return nil, fmt.Errorf("%w: %d popularity values, want %d", ErrInvalidCatalog, len(popularity), n)
	}

	c := &Catalog{
		id:          catalogSeq.Add(1),
		domain:      domain,
		items:       make([]Item, n),
		similarity:  sim,
		ratings:     ratings,
		popularity:  popularity,
		titleKeys:   make([]string, n),
		genreTokens: make([]map[string]struct{}, n),
		tagTokens:   make([]map[string]struct{}, n),
	}
	copy(c.items, items)

	for i := range c.items {
		if c.items[i].CleanedTags == "" {
			c.items[i].CleanedTags = spec.Normalizer.Normalize(c.items[i].Tags)
		}
		c.titleKeys[i] = titleKey(c.items[i].Title)
		c.genreTokens[i] = tokenSet(c.items[i].Genres)
		c.tagTokens[i] = tokenSet(c.items[i].CleanedTags)
	}

	return c, nil
}

// Domain returns the catalog's domain.
func (c *Catalog) Domain() Domain { return c.domain }

// Len returns the number of rows.
func (c *Catalog) Len() int { return len(c.items) }

// Item returns row i.
func (c *Catalog) Item(i int) Item { return c.items[i] }

// Recommendation is one ranked row of a result.
type Recommendation struct {
	// Index is the catalog row of the recommended item.
	Index int `json:"index"`

	// Item is the recommended item.
	Item Item `json:"item"`

	// Score is the combined weighted score.
	Score float64 `json:"score"`

	// Signals is the per-signal breakdown that produced Score.
	Signals Signals `json:"signals"`
}

// Signals holds the unweighted inputs of a score.
type Signals struct {
	Genre      float64 `json:"genre"`
	Tag        float64 `json:"tag"`
	Boost      float64 `json:"boost"`
	Rating     float64 `json:"rating"`
	Popularity float64 `json:"popularity"`
}

// MatchKind records how the query title was resolved.
type MatchKind int

const (
	// MatchExact means a catalog title equaled the query after lower+trim.
	MatchExact MatchKind = iota
	// MatchSubstring means the TV substring fallback was used.
	MatchSubstring
)

// String returns a human-readable name for the match kind.
func (m MatchKind) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchSubstring:
		return "substring"
	default:
		return "unknown"
	}
}

// Query is a single recommendation request against one catalog.
type Query struct {
	// Title is the user-supplied title.
	Title string

	// TopN is the number of rows to return. Zero or negative means
	// Config.Limits.DefaultTopN; values above Config.Limits.MaxTopN are
	// capped to it. At most n-1 rows exist for a catalog of n items.
	TopN int

	// Weights overrides the domain's default weights when non-nil.
	Weights *Weights
}

// Result is the successful outcome of a recommendation request.
// Failure is reported through the error return, never through Result.
type Result struct {
	// Domain is the catalog that was scored.
	Domain Domain `json:"domain"`

	// QueryIndex is the resolved catalog row of the query title.
	QueryIndex int `json:"query_index"`

	// Query is the resolved query item.
	Query Item `json:"query"`

	// Match records how the title was resolved.
	Match MatchKind `json:"match"`

	// Weights are the weights actually applied.
	Weights Weights `json:"weights"`

	// Items is the ranked list, best first.
	Items []Recommendation `json:"items"`

	// CacheHit is true when the result came from the engine cache.
	CacheHit bool `json:"cache_hit"`
}
