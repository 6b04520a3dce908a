// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/unirex/internal/metrics"
	"github.com/tomtom215/unirex/internal/recommend"
)

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	// RetryInterval is the minimum spacing between load attempts for a
	// domain whose last load failed. Zero retries on every request.
	RetryInterval time.Duration
}

// entry is the per-domain load state. sem serialises loads; catalog is
// published once and read without locking afterwards.
type entry struct {
	sem     chan struct{}
	catalog atomic.Pointer[recommend.Catalog]

	// Guarded by sem.
	lastErr error
	limiter *rate.Limiter
}

// Registry is the load-or-get owner of every resident catalog. A catalog is
// loaded at most once per process; a failed load is not cached, so a later
// request retries it once the domain's retry limiter allows.
type Registry struct {
	source Source
	config RegistryConfig
	logger zerolog.Logger
	now    func() time.Time

	mu      sync.Mutex
	entries map[recommend.Domain]*entry
}

// NewRegistry creates a registry that loads bundles from source.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRegistry(source Source, cfg RegistryConfig, logger zerolog.Logger) *Registry {
	return &Registry{
		source:  source,
		config:  cfg,
		logger:  logger.With().Str("component", "catalog").Logger(),
		now:     time.Now,
		entries: make(map[recommend.Domain]*entry),
	}
}

func (r *Registry) entry(d recommend.Domain) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[d]
	if !ok {
		limit := rate.Inf
		if r.config.RetryInterval > 0 {
			limit = rate.Every(r.config.RetryInterval)
		}
		e = &entry{
			sem:     make(chan struct{}, 1),
			limiter: rate.NewLimiter(limit, 1),
		}
		r.entries[d] = e
	}
	return e
}

// Get returns the catalog for d, loading it on first use. Concurrent callers
// for the same domain share one load. Errors wrap ErrUnknownDomain or
// ErrDataUnavailable, or are the context's error.
func (r *Registry) Get(ctx context.Context, d recommend.Domain) (*recommend.Catalog, error) {
	if _, err := recommend.SpecFor(d); err != nil {
		return nil, err
	}

	e := r.entry(d)
	if c := e.catalog.Load(); c != nil {
		return c, nil
	}

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-e.sem }()

	// Another caller may have finished the load while we waited.
	if c := e.catalog.Load(); c != nil {
		return c, nil
	}

	if e.lastErr != nil && !e.limiter.AllowN(r.now(), 1) {
		return nil, fmt.Errorf("%w: %s: %w", ErrDataUnavailable, d, e.lastErr)
	}

	c, err := r.load(ctx, d)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, ctxErr
		}
		// Spend the token so the next attempt waits a full interval.
		e.limiter.AllowN(r.now(), 1)
		e.lastErr = err
		return nil, fmt.Errorf("%w: %s: %w", ErrDataUnavailable, d, err)
	}

	e.lastErr = nil
	e.catalog.Store(c)
	return c, nil
}

func (r *Registry) load(ctx context.Context, d recommend.Domain) (*recommend.Catalog, error) {
	start := r.now()
	source := r.source.Name()

	blob, err := r.source.Fetch(ctx, d)
	if err == nil {
		source = blob.Source
		metrics.RecordBundleBytes(source, int64(len(blob.Data)))
	}

	var c *recommend.Catalog
	if err == nil {
		c, err = LoadCatalog(blob.Data, d)
	}

	elapsed := r.now().Sub(start)
	items := 0
	if c != nil {
		items = c.Len()
	}
	metrics.RecordCatalogLoad(string(d), source, items, elapsed, err)

	if err != nil {
		r.logger.Error().Err(err).Str("domain", string(d)).Dur("elapsed", elapsed).Msg("Catalog load failed")
		return nil, err
	}

	r.logger.Info().
		Str("domain", string(d)).
		Str("source", source).
		Int("items", c.Len()).
		Dur("elapsed", elapsed).
		Msg("Catalog loaded")
	return c, nil
}

// Peek returns the catalog for d if it is resident, without loading it.
func (r *Registry) Peek(d recommend.Domain) (*recommend.Catalog, bool) {
	r.mu.Lock()
	e, ok := r.entries[d]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}
	c := e.catalog.Load()
	return c, c != nil
}

// Loaded returns the resident domains in recommend.Domains order.
func (r *Registry) Loaded() []recommend.Domain {
	var out []recommend.Domain
	for _, d := range recommend.Domains() {
		if _, ok := r.Peek(d); ok {
			out = append(out, d)
		}
	}
	return out
}

// Ready reports whether every domain in ds is resident.
func (r *Registry) Ready(ds []recommend.Domain) bool {
	for _, d := range ds {
		if _, ok := r.Peek(d); !ok {
			return false
		}
	}
	return true
}

// Preload loads every domain in ds and returns the joined failures.
func (r *Registry) Preload(ctx context.Context, ds []recommend.Domain) error {
	var errs []error
	for _, d := range ds {
		if _, err := r.Get(ctx, d); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
