// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/unirex/internal/recommend"
)

// CatalogPreloader loads catalogs ahead of the first request.
// *catalog.Registry implements it.
type CatalogPreloader interface {
	Preload(ctx context.Context, ds []recommend.Domain) error
}

// CatalogWarmupService loads the configured domains at startup.
//
// A failed attempt is returned to suture, which restarts the service with
// its usual backoff. Domains that loaded on an earlier attempt are already
// resident, so a retry only touches the ones still missing. Once every
// domain is resident the service removes itself from the tree.
type CatalogWarmupService struct {
	catalogs CatalogPreloader
	domains  []recommend.Domain
	logger   zerolog.Logger
	name     string
}

// NewCatalogWarmupService creates the warmup service for domains.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogWarmupService(catalogs CatalogPreloader, domains []recommend.Domain, logger zerolog.Logger) *CatalogWarmupService {
	return &CatalogWarmupService{
		catalogs: catalogs,
		domains:  domains,
		logger:   logger.With().Str("service", "catalog-warmup").Logger(),
		name:     "catalog-warmup",
	}
}

// Serve implements suture.Service.
func (s *CatalogWarmupService) Serve(ctx context.Context) error {
	if len(s.domains) == 0 {
		return suture.ErrDoNotRestart
	}

	start := time.Now()
	s.logger.Info().Interface("domains", s.domains).Msg("Preloading catalogs")

	if err := s.catalogs.Preload(ctx, s.domains); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn().Err(err).Msg("Catalog preload incomplete, will retry")
		return fmt.Errorf("catalog preload: %w", err)
	}

	s.logger.Info().
		Dur("duration", time.Since(start)).
		Int("domains", len(s.domains)).
		Msg("Catalogs preloaded")
	return suture.ErrDoNotRestart
}

// String identifies the service in suture events.
func (s *CatalogWarmupService) String() string {
	return s.name
}
