// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/unirex/internal/cache"
)

// Engine is the single parameterized scorer shared by every domain.
// It holds no catalog state; catalogs are passed per call.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	// cache memoizes ranked results; nil when disabled.
	cache *cache.LRU[*Result]
}

// NewEngine creates a scoring engine. A nil cfg uses DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[*Result](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	return e, nil
}

// Config returns the engine configuration. Callers must not modify it.
func (e *Engine) Config() *Config {
	return e.config
}

// PruneCache drops expired results and reports how many were removed and
// how many remain. It is a no-op when caching is disabled.
func (e *Engine) PruneCache() (removed, remaining int) {
	if e.cache == nil {
		return 0, 0
	}
	removed = e.cache.CleanupExpired()
	return removed, e.cache.Len()
}

// Recommend resolves q.Title in c and returns the top-N other rows ranked by
// the domain's score formula. The only failure for a well-formed call is a
// *NotFoundError; invalid weights or a nil catalog are caller errors.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, c *Catalog, q Query) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: nil catalog", ErrInvalidCatalog)
	}

	start := time.Now()

	spec, err := SpecFor(c.domain)
	if err != nil {
		return nil, err
	}

	weights := spec.DefaultWeights
	if q.Weights != nil {
		if err := q.Weights.Validate(); err != nil {
			return nil, err
		}
		weights = *q.Weights
	}
	topN := e.clampTopN(q.TopN)

	logger := e.logger.With().
		Str("domain", string(c.domain)).
		Str("title", q.Title).
		Logger()

	idx, match, err := resolveWith(c, q.Title, spec.MatchPolicy)
	if err != nil {
		logger.Debug().Msg("title not found")
		return nil, err
	}

	key := cacheKey(c, idx, match, topN, weights)
	if res, ok := e.getCached(key); ok {
		logger.Debug().Int("returned", len(res.Items)).Msg("cache hit")
		return res, nil
	}

	res := &Result{
		Domain:     c.domain,
		QueryIndex: idx,
		Query:      c.items[idx],
		Match:      match,
		Weights:    weights,
		Items:      rank(c, spec, idx, weights, topN),
	}
	e.storeCached(key, res)

	logger.Debug().
		Str("match", match.String()).
		Int("candidates", c.Len()-1).
		Int("returned", len(res.Items)).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")

	return res, nil
}

// clampTopN applies the default for non-positive values and caps at
// MaxTopN, so library callers asking for more get MaxTopN rows at most.
func (e *Engine) clampTopN(n int) int {
	if n <= 0 {
		n = e.config.Limits.DefaultTopN
	}
	if n > e.config.Limits.MaxTopN {
		n = e.config.Limits.MaxTopN
	}
	return n
}

// rank scores every row except the query, sorts descending with catalog
// order preserved among equal scores, and keeps the first topN.
func rank(c *Catalog, spec Spec, queryIdx int, w Weights, topN int) []Recommendation {
	scorer := spec.Genre.Bind(c.items[queryIdx].Genres)
	tagRow := c.similarity.Row(queryIdx)

	recs := make([]Recommendation, 0, c.Len()-1)
	for i := range c.items {
		if i == queryIdx {
			continue
		}

		sig := Signals{
			Genre:      scorer.Similarity(c.genreTokens[i]),
			Tag:        tagRow[i],
			Boost:      scorer.Boost(c.tagTokens[i]),
			Rating:     c.ratings[i],
			Popularity: c.popularity[i],
		}
		recs = append(recs, Recommendation{
			Index:   i,
			Score:   spec.Order.Combine(w, sig),
			Signals: sig,
		})
	}

	sort.SliceStable(recs, func(a, b int) bool {
		return recs[a].Score > recs[b].Score
	})

	if len(recs) > topN {
		recs = recs[:topN]
	}
	for i := range recs {
		recs[i].Item = c.items[recs[i].Index]
	}

	return recs
}

// cacheKey identifies a result by catalog instance, resolved row and the
// parameters that affect ranking.
func cacheKey(c *Catalog, idx int, match MatchKind, topN int, w Weights) string {
	return fmt.Sprintf("%s|%d|%d|%d|%d|%s", c.domain, c.id, idx, match, topN, w.String())
}

func (e *Engine) getCached(key string) (*Result, bool) {
	if e.cache == nil {
		return nil, false
	}
	res, ok := e.cache.Get(key)
	if !ok {
		return nil, false
	}
	return res.clone(true), true
}

func (e *Engine) storeCached(key string, res *Result) {
	if e.cache == nil {
		return
	}
	e.cache.Add(key, res.clone(false))
}

// clone returns a copy whose Items slice is not shared with r.
func (r *Result) clone(cacheHit bool) *Result {
	out := *r
	out.Items = make([]Recommendation, len(r.Items))
	copy(out.Items, r.Items)
	out.CacheHit = cacheHit
	return &out
}
