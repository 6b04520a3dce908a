// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector reclaims space in a persistent store.
// *catalog.BadgerStore implements it.
type GarbageCollector interface {
	CollectGarbage() error
}

// BundleCacheGCService runs value log GC on the bundle cache every interval.
// Bundles are rewritten whenever a newer release is downloaded, so the
// value log grows without it.
type BundleCacheGCService struct {
	store    GarbageCollector
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewBundleCacheGCService creates the GC service. A non-positive interval
// means 30 minutes.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBundleCacheGCService(store GarbageCollector, interval time.Duration, logger zerolog.Logger) *BundleCacheGCService {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &BundleCacheGCService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "bundle-cache-gc").Logger(),
		name:     "bundle-cache-gc",
	}
}

// Serve implements suture.Service. GC errors are logged; they never stop
// the loop.
func (s *BundleCacheGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.store.CollectGarbage(); err != nil {
				s.logger.Warn().Err(err).Msg("Bundle cache GC failed")
				continue
			}
			s.logger.Debug().Dur("duration", time.Since(start)).Msg("Bundle cache GC complete")
		}
	}
}

// String identifies the service in suture events.
func (s *BundleCacheGCService) String() string {
	return s.name
}
