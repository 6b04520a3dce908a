// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package config

import (
	"time"

	"github.com/tomtom215/unirex/internal/logging"
	"github.com/tomtom215/unirex/internal/recommend"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	RequestTimeout  time.Duration `koanf:"request_timeout"` // per-request handler deadline
}

// CatalogConfig controls where catalog bundles come from.
type CatalogConfig struct {
	Dir             string        `koanf:"dir"`
	BaseURL         string        `koanf:"base_url"` // empty disables remote fetch
	Preload         []string      `koanf:"preload"`
	DownloadTimeout time.Duration `koanf:"download_timeout"`
	CachePath       string        `koanf:"cache_path"` // BadgerDB directory; empty disables
	CacheGCInterval time.Duration `koanf:"cache_gc_interval"`
	MaxBundleBytes  int64         `koanf:"max_bundle_bytes"`
	RetryInterval   time.Duration `koanf:"retry_interval"`
}

// RecommendConfig holds scoring engine limits and result caching.
type RecommendConfig struct {
	DefaultTopN     int           `koanf:"default_top_n"`
	MaxTopN         int           `koanf:"max_top_n"`
	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}

// EngineConfig converts the recommend section into the engine's configuration.
func (c *Config) EngineConfig() *recommend.Config {
	return &recommend.Config{
		Limits: recommend.LimitsConfig{
			DefaultTopN: c.Recommend.DefaultTopN,
			MaxTopN:     c.Recommend.MaxTopN,
		},
		Cache: recommend.CacheConfig{
			Enabled:    c.Recommend.CacheEnabled,
			TTL:        c.Recommend.CacheTTL,
			MaxEntries: c.Recommend.CacheMaxEntries,
		},
	}
}

// LoggingOptions converts the logging section into logging.Config.
func (c *Config) LoggingOptions() logging.Config {
	out := logging.DefaultConfig()
	out.Level = c.Logging.Level
	out.Format = c.Logging.Format
	out.Caller = c.Logging.Caller
	return out
}

// PreloadDomains returns the parsed preload list. Validate has already
// rejected unknown names, so errors here are not expected.
func (c *Config) PreloadDomains() []recommend.Domain {
	out := make([]recommend.Domain, 0, len(c.Catalog.Preload))
	seen := make(map[recommend.Domain]bool, len(c.Catalog.Preload))
	for _, name := range c.Catalog.Preload {
		d, err := recommend.ParseDomain(name)
		if err != nil || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// HasWildcardCORS reports whether any configured origin is "*".
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
