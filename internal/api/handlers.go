// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package api

import (
	"context"
	"time"

	"github.com/tomtom215/unirex/internal/recommend"
)

// CatalogProvider is the catalog registry as seen by the handlers.
// *catalog.Registry implements it.
type CatalogProvider interface {
	Get(ctx context.Context, d recommend.Domain) (*recommend.Catalog, error)
	Peek(d recommend.Domain) (*recommend.Catalog, bool)
	Loaded() []recommend.Domain
	Ready(ds []recommend.Domain) bool
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_recommend.go: the four recommendation routes
//   - handlers_domains.go: domain table and genre profiles
//   - handlers_health.go: banner, liveness and readiness
type Handler struct {
	catalogs  CatalogProvider
	engine    *recommend.Engine
	preload   []recommend.Domain
	startTime time.Time
}

// NewHandler creates a handler. preload lists the domains that must be
// resident before /health/ready reports ready.
//
// Example:
//
//	handler := api.NewHandler(registry, engine, cfg.PreloadDomains())
//	router := api.NewRouter(handler, chiMiddleware, cfg.Server.RequestTimeout)
//	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
func NewHandler(catalogs CatalogProvider, engine *recommend.Engine, preload []recommend.Domain) *Handler {
	return &Handler{
		catalogs:  catalogs,
		engine:    engine,
		preload:   preload,
		startTime: time.Now(),
	}
}
