// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

// Package recommend implements the hybrid content-based scorer shared by the
// anime, manga, movie and TV catalogs.
//
// # Architecture
//
// A recommendation request flows through four stages:
//
//   - Title resolution: the query title is mapped to one catalog row
//   - Genre similarity: Jaccard (or weighted Jaccard for TV) against every row
//   - Signal combination: genre, tag, rating and popularity are combined
//     with caller-supplied weights
//   - Ranking: the query row is dropped, rows are stably sorted by score and
//     truncated to top-N
//
// The four catalogs differ only in configuration. Each Domain has a Spec that
// selects the genre strategy, the order in which the four weights apply to
// the signals, the title matching policy, the tag normalizer and the
// default weights. There is a single Engine for all of them.
//
// # Scoring
//
// Scores are a raw weighted sum, not a convex combination:
//
//	anime/manga/movie: α·genre + β·tag + γ·rating + δ·popularity
//	tv:                α·genre + β·popularity + γ·tag·boost + δ·rating
//
// Weights are never normalized, so absolute scores from different catalogs
// (or from different weight tuples) are not comparable. Only the ordering
// within one response is meaningful.
//
// # Usage
//
//	cat, err := recommend.NewCatalog(recommend.TV, items, sim, ratings, popularity)
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//
//	res, err := engine.Recommend(ctx, cat, recommend.Query{Title: "Breaking Bad"})
//	if errors.Is(err, recommend.ErrNotFound) {
//	    // 404 at the edge
//	}
//
// # Thread Safety
//
// A Catalog is immutable once NewCatalog returns; its derived columns are
// computed exactly once during construction. Engine.Recommend only reads the
// catalog, so any number of requests may score the same catalog concurrently.
package recommend
