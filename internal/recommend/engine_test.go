// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func newTestEngine(t testing.TB, cfg *Config) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func noCacheConfig() *Config {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	return cfg
}

func indices(recs []Recommendation) []int {
	out := make([]int, len(recs))
	for i, r := range recs {
		out[i] = r.Index
	}
	return out
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	t.Run("nil config uses defaults", func(t *testing.T) {
		e := newTestEngine(t, nil)
		if e.Config().Limits.DefaultTopN != 10 {
			t.Errorf("DefaultTopN = %d, want 10", e.Config().Limits.DefaultTopN)
		}
		if e.cache == nil {
			t.Error("cache should be enabled by default")
		}
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Limits.DefaultTopN = 0
		if _, err := NewEngine(cfg, zerolog.Nop()); err == nil {
			t.Error("expected error for invalid config")
		}
	})

	t.Run("cache disabled", func(t *testing.T) {
		e := newTestEngine(t, noCacheConfig())
		if e.cache != nil {
			t.Error("cache should be nil when disabled")
		}
	})
}

func TestEngine_Recommend_ExactMatch(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, noCacheConfig())
	c := animeFixture(t)

	res, err := e.Recommend(context.Background(), c, Query{Title: "naruto"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if res.QueryIndex != 0 || res.Query.Title != "Naruto" {
		t.Errorf("query resolved to %d (%q), want 0 (Naruto)", res.QueryIndex, res.Query.Title)
	}
	if res.Match != MatchExact {
		t.Errorf("Match = %v, want exact", res.Match)
	}
	if res.Weights != (Weights{0.2, 0.4, 0.25, 0.15}) {
		t.Errorf("Weights = %+v, want anime defaults", res.Weights)
	}

	want := []int{2, 4, 1, 3}
	got := indices(res.Items)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("ranking = %v, want %v", got, want)
	}

	// One Piece: 0.2·(2/3) + 0.4·0.5 + 0.25·0.95 + 0.15·1.0
	wantTop := 0.2*(2.0/3.0) + 0.4*0.5 + 0.25*0.95 + 0.15*1.0
	if !almostEqual(res.Items[0].Score, wantTop) {
		t.Errorf("top score = %f, want %f", res.Items[0].Score, wantTop)
	}
	if res.Items[0].Signals.Boost != 1 {
		t.Errorf("non-tv boost = %f, want 1", res.Items[0].Signals.Boost)
	}
	if res.Items[0].Item.Title != "One Piece" {
		t.Errorf("top item = %q, want One Piece", res.Items[0].Item.Title)
	}
}

func TestEngine_Recommend_TVFallbackAndBoost(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, noCacheConfig())
	c := tvFixture(t)

	res, err := e.Recommend(context.Background(), c, Query{Title: "Breaking Bad"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if res.QueryIndex != 0 || res.Match != MatchSubstring {
		t.Fatalf("resolved to %d via %v, want 0 via substring", res.QueryIndex, res.Match)
	}

	want := []int{1, 3, 2}
	if got := indices(res.Items); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("ranking = %v, want %v", got, want)
	}

	byIndex := make(map[int]Recommendation, len(res.Items))
	for _, r := range res.Items {
		byIndex[r.Index] = r
	}

	// Better Call Saul: same genres, "story" hits the drama keywords.
	bcs := byIndex[1]
	if !almostEqual(bcs.Signals.Genre, 1) || bcs.Signals.Boost != ContentBoost {
		t.Errorf("Better Call Saul signals = %+v, want genre 1 and boost %v", bcs.Signals, ContentBoost)
	}
	wantBCS := 0.4*1 + 0.3*0.8 + 0.2*0.6*ContentBoost + 0.1*0.9
	if !almostEqual(bcs.Score, wantBCS) {
		t.Errorf("Better Call Saul score = %f, want %f", bcs.Score, wantBCS)
	}

	// Ozark shares only drama: 1.3 / (1.3 + 1 + 1).
	if oz := byIndex[3]; !almostEqual(oz.Signals.Genre, 1.3/3.3) || oz.Signals.Boost != ContentBoost {
		t.Errorf("Ozark signals = %+v", oz.Signals)
	}

	if office := byIndex[2]; office.Signals.Genre != 0 || office.Signals.Boost != 1 {
		t.Errorf("The Office signals = %+v, want genre 0 and boost 1", office.Signals)
	}
}

func TestEngine_Recommend_NotFound(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	tests := []struct {
		name    string
		catalog *Catalog
		title   string
		message string
	}{
		{"anime", animeFixture(t), "Naru", "❌ 'Naru' not found in the dataset."},
		{"tv", tvFixture(t), "The Wire", "TV Series titled 'The Wire' not found in dataset."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Recommend(context.Background(), tt.catalog, Query{Title: tt.title})
			if res != nil {
				t.Errorf("Recommend() result = %+v, want nil", res)
			}
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("Recommend() error = %v, want ErrNotFound", err)
			}
			if err.Error() != tt.message {
				t.Errorf("message = %q, want %q", err.Error(), tt.message)
			}
		})
	}
}

func TestEngine_Recommend_ExcludesQueryAndBoundsLength(t *testing.T) {
	t.Parallel()

	cfg := noCacheConfig()
	cfg.Limits.DefaultTopN = 2
	cfg.Limits.MaxTopN = 3
	e := newTestEngine(t, cfg)

	catalogs := []*Catalog{animeFixture(t), tvFixture(t)}

	for _, c := range catalogs {
		for idx := 0; idx < c.Len(); idx++ {
			for _, topN := range []int{0, 1, 2, 3, 50} {
				name := fmt.Sprintf("%s/row%d/top%d", c.Domain(), idx, topN)
				t.Run(name, func(t *testing.T) {
					title := c.Item(idx).Title
					res, err := e.Recommend(context.Background(), c, Query{Title: title, TopN: topN})
					if err != nil {
						t.Fatalf("Recommend(%q) error = %v", title, err)
					}

					for _, r := range res.Items {
						if r.Index == res.QueryIndex {
							t.Errorf("query row %d present in its own results", r.Index)
						}
					}

					effective := e.clampTopN(topN)
					if want := min(effective, c.Len()-1); len(res.Items) != want {
						t.Errorf("len = %d, want %d", len(res.Items), want)
					}

					for i := 1; i < len(res.Items); i++ {
						if res.Items[i].Score > res.Items[i-1].Score {
							t.Errorf("scores increase at %d: %f > %f", i, res.Items[i].Score, res.Items[i-1].Score)
						}
					}
				})
			}
		}
	}
}

func TestEngine_Recommend_StableTies(t *testing.T) {
	t.Parallel()

	items := make([]Item, 6)
	for i := range items {
		items[i] = Item{Title: fmt.Sprintf("Item %d", i), Genres: "drama", Tags: "same"}
	}
	c := mustCatalog(t, Movie, items, identitySim(6), filled(6, 0.5), filled(6, 0.5))

	e := newTestEngine(t, noCacheConfig())
	res, err := e.Recommend(context.Background(), c, Query{Title: "item 2"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	want := []int{0, 1, 3, 4, 5}
	if got := indices(res.Items); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("tied ranking = %v, want catalog order %v", got, want)
	}
}

func TestEngine_Recommend_StableTiesWeightedGenres(t *testing.T) {
	t.Parallel()

	const genres = "comedy drama sci-fi fantasy action western"
	items := []Item{{Title: "Pilot", Genres: genres + " noir", Tags: "sitcom"}}
	for i := 1; i < 6; i++ {
		items = append(items, Item{Title: fmt.Sprintf("Spin-off %d", i), Genres: genres, Tags: "sitcom"})
	}
	c := mustCatalog(t, TV, items, identitySim(6), filled(6, 0.5), filled(6, 0.5))

	e := newTestEngine(t, noCacheConfig())
	want := fmt.Sprint([]int{1, 2, 3, 4, 5})
	for i := 0; i < 500; i++ {
		res, err := e.Recommend(context.Background(), c, Query{Title: "Pilot"})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if got := fmt.Sprint(indices(res.Items)); got != want {
			t.Fatalf("call %d: tied TV ranking = %s, want catalog order %s", i, got, want)
		}
	}
}

func TestEngine_Recommend_TopNCappedAtMax(t *testing.T) {
	t.Parallel()

	cfg := noCacheConfig()
	cfg.Limits.DefaultTopN = 2
	cfg.Limits.MaxTopN = 2
	e := newTestEngine(t, cfg)

	res, err := e.Recommend(context.Background(), animeFixture(t), Query{Title: "Naruto", TopN: 50})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(res.Items) != 2 {
		t.Errorf("len(Items) = %d, want MaxTopN 2", len(res.Items))
	}
}

func TestEngine_Recommend_HalvedWeightsPreserveOrder(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, noCacheConfig())

	for _, c := range []*Catalog{animeFixture(t), tvFixture(t)} {
		t.Run(string(c.Domain()), func(t *testing.T) {
			spec, _ := SpecFor(c.Domain())
			w := spec.DefaultWeights
			half := Weights{Alpha: w.Alpha / 2, Beta: w.Beta / 2, Gamma: w.Gamma / 2, Delta: w.Delta / 2}

			full, err := e.Recommend(context.Background(), c, Query{Title: c.Item(1).Title})
			if err != nil {
				t.Fatalf("Recommend(full) error = %v", err)
			}
			halved, err := e.Recommend(context.Background(), c, Query{Title: c.Item(1).Title, Weights: &half})
			if err != nil {
				t.Fatalf("Recommend(half) error = %v", err)
			}

			if fmt.Sprint(indices(full.Items)) != fmt.Sprint(indices(halved.Items)) {
				t.Fatalf("order changed: %v vs %v", indices(full.Items), indices(halved.Items))
			}
			for i := range full.Items {
				if !almostEqual(halved.Items[i].Score, full.Items[i].Score/2) {
					t.Errorf("row %d: halved score %f, want %f", i, halved.Items[i].Score, full.Items[i].Score/2)
				}
				if full.Items[i].Score != 0 && almostEqual(halved.Items[i].Score, full.Items[i].Score) {
					t.Errorf("row %d: score unchanged by halving", i)
				}
			}
		})
	}
}

func TestEngine_Recommend_CustomWeights(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, noCacheConfig())
	c := animeFixture(t)

	// Popularity only.
	w := Weights{Delta: 1}
	res, err := e.Recommend(context.Background(), c, Query{Title: "Naruto", Weights: &w})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	want := []int{2, 1, 3, 4}
	if got := indices(res.Items); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("popularity-only ranking = %v, want %v", got, want)
	}

	bad := Weights{Alpha: math.NaN()}
	if _, err := e.Recommend(context.Background(), c, Query{Title: "Naruto", Weights: &bad}); !errors.Is(err, ErrInvalidWeights) {
		t.Errorf("NaN weights error = %v, want ErrInvalidWeights", err)
	}
}

func TestEngine_Recommend_Cache(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig())
	c := animeFixture(t)
	ctx := context.Background()

	first, err := e.Recommend(ctx, c, Query{Title: "Naruto"})
	if err != nil {
		t.Fatalf("first Recommend() error = %v", err)
	}
	if first.CacheHit {
		t.Error("first call reported a cache hit")
	}

	// Mutating a returned result must not leak into the cache.
	first.Items[0].Score = -1

	second, err := e.Recommend(ctx, c, Query{Title: " NARUTO"})
	if err != nil {
		t.Fatalf("second Recommend() error = %v", err)
	}
	if !second.CacheHit {
		t.Error("second call should hit the cache")
	}
	if second.Items[0].Score == -1 {
		t.Error("cached result shares Items with a returned result")
	}

	other, err := e.Recommend(ctx, c, Query{Title: "Naruto", TopN: 2})
	if err != nil {
		t.Fatalf("Recommend(top 2) error = %v", err)
	}
	if other.CacheHit || len(other.Items) != 2 {
		t.Errorf("different top-N: CacheHit=%v len=%d", other.CacheHit, len(other.Items))
	}

	// A fresh catalog of the same domain never sees another catalog's entries.
	fresh := animeFixture(t)
	res, err := e.Recommend(ctx, fresh, Query{Title: "Naruto"})
	if err != nil {
		t.Fatalf("Recommend(fresh) error = %v", err)
	}
	if res.CacheHit {
		t.Error("new catalog instance hit a stale cache entry")
	}

	// Nothing has expired yet: one entry per distinct query above.
	if removed, remaining := e.PruneCache(); removed != 0 || remaining != 3 {
		t.Errorf("PruneCache() = (%d, %d), want (0, 3)", removed, remaining)
	}
}

func TestEngine_PruneCache_Disabled(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	e := newTestEngine(t, cfg)

	if removed, remaining := e.PruneCache(); removed != 0 || remaining != 0 {
		t.Errorf("PruneCache() = (%d, %d), want (0, 0)", removed, remaining)
	}
}

func TestEngine_Recommend_CallerErrors(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	if _, err := e.Recommend(context.Background(), nil, Query{Title: "x"}); !errors.Is(err, ErrInvalidCatalog) {
		t.Errorf("nil catalog error = %v, want ErrInvalidCatalog", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Recommend(ctx, animeFixture(t), Query{Title: "Naruto"}); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled context error = %v, want context.Canceled", err)
	}
}

func TestEngine_Recommend_Concurrent(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig())
	c := tvFixture(t)

	titles := []string{"Breaking Bad", "Ozark", "the office", "Better Call Saul", "missing"}

	var wg sync.WaitGroup
	errs := make(chan error, 200)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			title := titles[i%len(titles)]
			res, err := e.Recommend(context.Background(), c, Query{Title: title})
			if title == "missing" {
				if !errors.Is(err, ErrNotFound) {
					errs <- fmt.Errorf("%q: error = %v, want ErrNotFound", title, err)
				}
				return
			}
			if err != nil {
				errs <- fmt.Errorf("%q: %w", title, err)
				return
			}
			if len(res.Items) != c.Len()-1 {
				errs <- fmt.Errorf("%q: len = %d", title, len(res.Items))
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{"defaults valid", func(*Config) {}, false},
		{"zero default top-n", func(c *Config) { c.Limits.DefaultTopN = 0 }, true},
		{"max below default", func(c *Config) { c.Limits.MaxTopN = 5 }, true},
		{"zero ttl with cache", func(c *Config) { c.Cache.TTL = 0 }, true},
		{"zero entries with cache", func(c *Config) { c.Cache.MaxEntries = 0 }, true},
		{"zero ttl without cache", func(c *Config) { c.Cache.Enabled = false; c.Cache.TTL = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}
