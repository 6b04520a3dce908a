// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

// Package config loads UNIREX configuration with Koanf v2.
//
// Sources are layered: built-in defaults, then an optional YAML file
// (CONFIG_PATH, ./config.yaml or /etc/unirex/config.yaml), then environment
// variables. Only the variables listed in envMappings are read, so unrelated
// environment entries never leak into the configuration.
//
// Example config.yaml:
//
//	server:
//	  port: 5000
//	catalog:
//	  dir: /var/lib/unirex
//	  base_url: https://github.com/owner/repo/releases/download/v1.0.0
//	  preload: [anime, manga, movie, tv]
//	  cache_path: /var/lib/unirex/badger
//	  cache_gc_interval: 30m
//	recommend:
//	  default_top_n: 10
//	logging:
//	  level: info
//	  format: json
//
// Equivalent environment variables: HTTP_PORT, CATALOG_DIR, CATALOG_BASE_URL,
// CATALOG_PRELOAD (comma list), CATALOG_CACHE_PATH, RECOMMEND_DEFAULT_TOP_N,
// LOG_LEVEL, LOG_FORMAT.
package config
