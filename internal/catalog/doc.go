// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

// Package catalog owns the catalog bundles behind each recommendation domain.
//
// A bundle is one JSON document, optionally gzip-compressed, holding the item
// table, the normalized rating and popularity vectors, and either a dense
// tag-similarity matrix or sparse tag vectors from which cosine similarity is
// derived at load time. See Bundle for the field names.
//
// # Sources
//
// Bundles are fetched through the Source interface:
//
//   - FileSource reads <dir>/<bundle file>
//   - BadgerStore keeps previously downloaded bundle bytes in BadgerDB,
//     each entry guarded by a BLAKE2b-256 digest
//   - HTTPSource downloads <base_url>/<bundle file> through a circuit breaker
//     and keeps a copy in the bundle directory
//   - ChainSource tries sources in order (file, badger, http) and fills the
//     BadgerStore after a download
//
// # Registry
//
// Registry.Get is an idempotent load-or-get. The first request for a domain
// loads it while concurrent requests for the same domain wait; requests for
// other domains proceed. A successful load is kept for the life of the
// process. A failed load is not cached; retries are spaced by a token-bucket
// limiter and requests arriving in between fail fast with ErrDataUnavailable.
//
//	reg := catalog.NewRegistry(chain, catalog.RegistryConfig{RetryInterval: 10 * time.Second}, logger)
//	c, err := reg.Get(ctx, recommend.Anime)
//	if errors.Is(err, catalog.ErrDataUnavailable) {
//	    // 503
//	}
package catalog
