// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

/*
Package supervisor runs UNIREX's long-lived services under suture v4.

# Tree

	RootSupervisor ("unirex")
	├── DataSupervisor ("data-layer")
	│   ├── CatalogWarmupService   (removes itself once preload succeeds)
	│   ├── BundleCacheGCService   (only with a bundle cache path)
	│   └── ResultCachePruneService (only with the result cache on)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A warmup stuck in backoff because the release host is down does not take
the HTTP server with it. Requests for domains that are not yet resident get
503 until a later attempt succeeds.

# Events

Supervisor events are logged through sutureslog, which writes to the slog
bridge in internal/logging, so they end up in the zerolog stream with the
rest of the process logs. Every restart also increments
supervisor_service_restarts_total{service}.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCatalogWarmupService(registry, domains, logger))
	tree.AddAPIService(services.NewHTTPServerService(srv, shutdownTimeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)
*/
package supervisor
