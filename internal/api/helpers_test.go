// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/unirex/internal/catalog"
	"github.com/tomtom215/unirex/internal/recommend"
)

// denseSim is an in-memory TagSimilarity.
type denseSim [][]float64

func (m denseSim) Len() int            { return len(m) }
func (m denseSim) Row(i int) []float64 { return m[i] }

// fakeCatalogs serves prebuilt catalogs. Domains listed in unavailable fail
// with catalog.ErrDataUnavailable; resident controls what Peek reports.
type fakeCatalogs struct {
	mu          sync.Mutex
	catalogs    map[recommend.Domain]*recommend.Catalog
	unavailable map[recommend.Domain]bool
	resident    map[recommend.Domain]bool
}

func (f *fakeCatalogs) Get(ctx context.Context, d recommend.Domain) (*recommend.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unavailable[d] {
		return nil, fmt.Errorf("%w: %s: bundle missing", catalog.ErrDataUnavailable, d)
	}
	c, ok := f.catalogs[d]
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalog.ErrDataUnavailable, d)
	}
	f.resident[d] = true
	return c, nil
}

func (f *fakeCatalogs) Peek(d recommend.Domain) (*recommend.Catalog, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.resident[d] {
		return nil, false
	}
	return f.catalogs[d], true
}

func (f *fakeCatalogs) Loaded() []recommend.Domain {
	var out []recommend.Domain
	for _, d := range recommend.Domains() {
		if _, ok := f.Peek(d); ok {
			out = append(out, d)
		}
	}
	return out
}

func (f *fakeCatalogs) Ready(ds []recommend.Domain) bool {
	for _, d := range ds {
		if _, ok := f.Peek(d); !ok {
			return false
		}
	}
	return true
}

func mustCatalog(t *testing.T, d recommend.Domain, items []recommend.Item, sim denseSim) *recommend.Catalog {
	t.Helper()
	n := len(items)
	ratings := make([]float64, n)
	popularity := make([]float64, n)
	for i := range items {
		ratings[i] = items[i].AverageRating / 10
		popularity[i] = float64(n-i) / float64(n)
	}
	c, err := recommend.NewCatalog(d, items, sim, ratings, popularity)
	if err != nil {
		t.Fatalf("NewCatalog(%s) error = %v", d, err)
	}
	return c
}

// newFakeCatalogs builds a three-item catalog for every domain.
func newFakeCatalogs(t *testing.T) *fakeCatalogs {
	t.Helper()
	sim := denseSim{
		{1, 0.6, 0.1},
		{0.6, 1, 0.2},
		{0.1, 0.2, 1},
	}
	return &fakeCatalogs{
		catalogs: map[recommend.Domain]*recommend.Catalog{
			recommend.Movie: mustCatalog(t, recommend.Movie, []recommend.Item{
				{Title: "Inception", Genres: "action sci-fi", Tags: "dream heist", AverageRating: 8.8, Popularity: 2000},
				{Title: "Interstellar", Genres: "sci-fi drama", Tags: "space time", AverageRating: 8.6, Popularity: 1800},
				{Title: "The Notebook", Genres: "romance drama", Tags: "love letters", AverageRating: 7.8, Popularity: 900},
			}, sim),
			recommend.Manga: mustCatalog(t, recommend.Manga, []recommend.Item{
				{Title: "Naruto", Genres: "action adventure", Tags: "ninja", AverageRating: 8.0, Popularity: 5000},
				{Title: "Bleach", Genres: "action", Tags: "soul reaper", AverageRating: 7.9, Popularity: 4000},
				{Title: "Nana", Genres: "romance", Tags: "music", AverageRating: 8.5, Popularity: 1000},
			}, sim),
			recommend.Anime: mustCatalog(t, recommend.Anime, []recommend.Item{
				{Title: "Fate/Zero", Genres: "action fantasy", Tags: "grail war", AverageRating: 8.3, Popularity: 3000},
				{Title: "Cowboy Bebop", Genres: "action sci-fi", Tags: "bounty space", AverageRating: 8.8, Popularity: 4000},
				{Title: "Clannad", Genres: "drama romance", Tags: "school family", AverageRating: 8.0, Popularity: 2000},
			}, sim),
			recommend.TV: mustCatalog(t, recommend.TV, []recommend.Item{
				{Title: "The Office", Genres: "comedy", Tags: "workplace mockumentary", AverageRating: 8.9, Popularity: 900},
				{Title: "Parks and Recreation", Genres: "comedy", Tags: "workplace sitcom", AverageRating: 8.6, Popularity: 700},
				{Title: "Breaking Bad", Genres: "drama crime", Tags: "intense story", AverageRating: 9.5, Popularity: 1200},
			}, sim),
		},
		unavailable: make(map[recommend.Domain]bool),
		resident:    make(map[recommend.Domain]bool),
	}
}

func newTestEngine(t *testing.T) *recommend.Engine {
	t.Helper()
	engine, err := recommend.NewEngine(recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

// newTestRouter returns the full handler stack with rate limiting disabled.
func newTestRouter(t *testing.T, catalogs *fakeCatalogs, preload ...recommend.Domain) http.Handler {
	t.Helper()
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	handler := NewHandler(catalogs, newTestEngine(t), preload)
	return NewRouter(handler, NewChiMiddleware(cfg), 0).SetupChi()
}

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
}
