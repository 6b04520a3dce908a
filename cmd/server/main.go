// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/unirex/internal/api"
	"github.com/tomtom215/unirex/internal/catalog"
	"github.com/tomtom215/unirex/internal/config"
	"github.com/tomtom215/unirex/internal/logging"
	"github.com/tomtom215/unirex/internal/recommend"
	"github.com/tomtom215/unirex/internal/supervisor"
	"github.com/tomtom215/unirex/internal/supervisor/services"
)

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		// Logging is not configured yet; the default logger still writes JSON.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LoggingOptions())

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("catalog_dir", cfg.Catalog.Dir).
		Bool("remote_fetch", cfg.Catalog.BaseURL != "").
		Bool("bundle_cache", cfg.Catalog.CachePath != "").
		Strs("preload", cfg.Catalog.Preload).
		Msg("Starting UNIREX")

	if cfg.HasWildcardCORS() {
		logging.Info().Msg("CORS allows every origin")
	}

	store, source := buildCatalogSource(cfg)
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing bundle cache")
			}
		}()
	}

	registry := catalog.NewRegistry(source, catalog.RegistryConfig{
		RetryInterval: cfg.Catalog.RetryInterval,
	}, logging.Logger())

	engine, err := recommend.NewEngine(cfg.EngineConfig(), logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create scoring engine")
	}

	preload := cfg.PreloadDomains()
	handler := api.NewHandler(registry, engine, preload)
	chiMiddleware := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(handler, chiMiddleware, cfg.Server.RequestTimeout)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	serviceLogger := logging.WithComponent("supervisor")
	tree.AddDataService(services.NewCatalogWarmupService(registry, preload, serviceLogger))
	if store != nil {
		tree.AddDataService(services.NewBundleCacheGCService(store, cfg.Catalog.CacheGCInterval, serviceLogger))
	}
	if cacheCfg := engine.Config().Cache; cacheCfg.Enabled {
		tree.AddDataService(services.NewResultCachePruneService(engine, cacheCfg.TTL, serviceLogger))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, serviceLogger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("UNIREX stopped")
}

// buildCatalogSource assembles the bundle source chain: the local directory,
// then the BadgerDB bundle cache, then the release URL. The store is nil when
// no cache path is configured. A cache that cannot be opened is logged and
// skipped so a locked or corrupt directory never blocks startup.
func buildCatalogSource(cfg *config.Config) (*catalog.BadgerStore, catalog.Source) {
	chain := &catalog.ChainSource{
		Sources: []catalog.Source{
			&catalog.FileSource{Dir: cfg.Catalog.Dir, MaxBytes: cfg.Catalog.MaxBundleBytes},
		},
		Logger: logging.WithComponent("catalog"),
	}

	var store *catalog.BadgerStore
	if cfg.Catalog.CachePath != "" {
		s, err := catalog.OpenBadgerStore(cfg.Catalog.CachePath)
		if err != nil {
			logging.Warn().Err(err).Str("path", cfg.Catalog.CachePath).Msg("Bundle cache disabled")
		} else {
			store = s
			chain.Sources = append(chain.Sources, store)
			chain.Cache = store
			if cached, err := store.Domains(); err == nil {
				logging.Info().Interface("domains", cached).Msg("Bundle cache contents")
			}
		}
	}

	if cfg.Catalog.BaseURL != "" {
		chain.Sources = append(chain.Sources, catalog.NewHTTPSource(catalog.HTTPSourceConfig{
			BaseURL:  cfg.Catalog.BaseURL,
			Dir:      cfg.Catalog.Dir,
			MaxBytes: cfg.Catalog.MaxBundleBytes,
			Timeout:  cfg.Catalog.DownloadTimeout,
		}))
	}

	logSources(chain.Logger, chain.Sources)
	return store, chain
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func logSources(logger zerolog.Logger, sources []catalog.Source) {
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.Name())
	}
	logger.Info().Strs("sources", names).Msg("Catalog sources configured")
}
