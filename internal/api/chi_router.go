// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/unirex/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler        *Handler
	chiMiddleware  *ChiMiddleware
	requestTimeout time.Duration
}

// NewRouter creates a router. requestTimeout bounds each recommendation
// request, catalog load included; zero disables the bound.
func NewRouter(handler *Handler, chiMW *ChiMiddleware, requestTimeout time.Duration) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{
		handler:        handler,
		chiMiddleware:  chiMW,
		requestTimeout: requestTimeout,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.StripSlashes)  // "/movies/recommend/" and "/movies/recommend" are one route
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "Not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed.")
	})

	r.Get("/", router.handler.Home)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/health", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Recommendation Endpoints
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit("recommend"))
		r.Use(APISecurityHeaders())
		if router.requestTimeout > 0 {
			r.Use(chimiddleware.Timeout(router.requestTimeout))
		}

		r.Get("/movies/recommend", router.handler.RecommendMovies)
		r.Get("/recommend", router.handler.RecommendMovies) // legacy movie route
		r.Get("/manga/recommend", router.handler.RecommendManga)
		r.Get("/anime/recommend/{title}", router.handler.RecommendAnime)
		r.Get("/series/recommend/{title}", router.handler.RecommendSeries)
	})

	// ========================
	// Introspection Endpoints
	// ========================
	r.Route("/api/v1/domains", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit("domains"))
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Domains)
		r.Get("/{domain}/profiles", router.handler.Profiles)
	})

	return r
}
