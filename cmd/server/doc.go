// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

/*
Package main is the entry point for the UNIREX server.

UNIREX serves content-based recommendations for four catalogs (anime, manga,
movies and TV series) behind one HTTP API. Each catalog is a precomputed
bundle of items plus a tag similarity table; the server ranks candidates by
combining genre, tag, rating and popularity signals with per-domain weights.

# Startup

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Catalog sources: local directory, optional BadgerDB bundle cache,
    optional release URL
 4. Catalog registry and scoring engine
 5. Chi router with CORS, rate limiting and Prometheus middleware
 6. Supervisor tree:

	RootSupervisor ("unirex")
	├── DataSupervisor ("data-layer")
	│   ├── CatalogWarmupService
	│   ├── BundleCacheGCService (with CATALOG_CACHE_PATH)
	│   └── ResultCachePruneService (with RECOMMEND_CACHE_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Catalogs that are not preloaded are loaded on the first request for their
domain.

# Configuration

	PORT=5000
	CATALOG_DIR=data
	CATALOG_BASE_URL=https://github.com/owner/repo/releases/download/v1.0.0
	CATALOG_PRELOAD=anime,manga,movie,tv
	CATALOG_CACHE_PATH=/var/lib/unirex/badger
	RECOMMEND_DEFAULT_TOP_N=10
	RATE_LIMIT_REQUESTS=100
	LOG_LEVEL=info
	LOG_FORMAT=json

See internal/config for the full list.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server stops accepting
connections and drains in-flight requests for SHUTDOWN_TIMEOUT, then the
bundle cache is closed. Services that fail to stop in time are logged.

# Usage

	CATALOG_DIR=./data LOG_FORMAT=console go run ./cmd/server
	curl 'localhost:5000/movies/recommend?title=Inception&top_n=5'
	curl 'localhost:5000/anime/recommend/Cowboy%20Bebop'
*/
package main
