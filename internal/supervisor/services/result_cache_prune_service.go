// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/unirex/internal/metrics"
)

// CachePruner drops expired entries from an in-memory cache.
// *recommend.Engine implements it.
type CachePruner interface {
	PruneCache() (removed, remaining int)
}

// ResultCachePruneService sweeps expired recommendation results. Expired
// entries are otherwise only dropped when their key is requested again, so
// one-off queries would hold memory until evicted by capacity.
type ResultCachePruneService struct {
	pruner   CachePruner
	interval time.Duration
	logger   zerolog.Logger
}

// NewResultCachePruneService creates the prune service. Pass the cache TTL
// as interval; a non-positive value means five minutes.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewResultCachePruneService(pruner CachePruner, interval time.Duration, logger zerolog.Logger) *ResultCachePruneService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &ResultCachePruneService{
		pruner:   pruner,
		interval: interval,
		logger:   logger.With().Str("service", "result-cache-prune").Logger(),
	}
}

// Serve implements suture.Service.
func (s *ResultCachePruneService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			removed, remaining := s.pruner.PruneCache()
			metrics.RecommendCacheEntries.Set(float64(remaining))
			if removed > 0 {
				s.logger.Debug().Int("removed", removed).Int("remaining", remaining).Msg("Pruned expired results")
			}
		}
	}
}

func (s *ResultCachePruneService) String() string {
	return "result-cache-prune"
}
