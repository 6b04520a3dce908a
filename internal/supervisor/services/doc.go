// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

/*
Package services adapts UNIREX components to suture.Service.

Every service implements

	Serve(ctx context.Context) error
	String() string

and returns once ctx is canceled. Returning an error before that asks suture
for a restart; returning suture.ErrDoNotRestart removes the service.

Services:

  - HTTPServerService (api layer): runs *http.Server, graceful Shutdown on
    cancellation.
  - CatalogWarmupService (data layer): preloads the configured domains and
    retries with suture backoff until all of them are resident.
  - BundleCacheGCService (data layer): periodic BadgerDB value log GC for
    the downloaded bundle cache. Only added when a cache path is configured.
  - ResultCachePruneService (data layer): sweeps expired recommendation
    results once per cache TTL and reports the cache size.

Wiring in cmd/server:

	tree.AddDataService(services.NewCatalogWarmupService(registry, cfg.PreloadDomains(), logger))
	if store != nil {
	    tree.AddDataService(services.NewBundleCacheGCService(store, cfg.Catalog.CacheGCInterval, logger))
	}
	if engine.Config().Cache.Enabled {
	    tree.AddDataService(services.NewResultCachePruneService(engine, engine.Config().Cache.TTL, logger))
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout, logger))
*/
package services
