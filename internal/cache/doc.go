// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

/*
Package cache provides a thread-safe, generic LRU cache with TTL support.

The recommendation engine uses it to memoize ranked results keyed by domain,
resolved title, top-N and weights. Catalogs are immutable once loaded, so a
cached result stays correct until it expires or is evicted.

# Usage Example

	c := cache.NewLRU[*recommend.Result](10000, 5*time.Minute)
	c.Add(key, result)
	if r, ok := c.Get(key); ok {
	    // use r
	}

# Thread Safety

Every method takes the cache mutex. Get mutates recency order, so there is no
read-only fast path.
*/
package cache
