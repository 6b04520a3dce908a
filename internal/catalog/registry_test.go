// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/unirex/internal/recommend"
)

func newTestRegistry(src Source, retry time.Duration) (*Registry, *fakeClock) {
	clock := newFakeClock()
	r := NewRegistry(src, RegistryConfig{RetryInterval: retry}, zerolog.Nop())
	r.now = clock.Now
	return r, clock
}

func TestRegistry_GetLoadsOnce(t *testing.T) {
	t.Parallel()

	src := newFakeSource("fake")
	src.set(recommend.Anime, encode(t, testBundle(recommend.Anime), true), nil)
	src.gate = make(chan struct{})
	reg, _ := newTestRegistry(src, 0)

	const callers = 16
	var wg sync.WaitGroup
	results := make([]*recommend.Catalog, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = reg.Get(context.Background(), recommend.Anime)
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	for i := range results {
		if errs[i] != nil {
			t.Fatalf("caller %d error = %v", i, errs[i])
		}
		if results[i] != results[0] {
			t.Fatalf("caller %d got a different catalog instance", i)
		}
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("source fetched %d times, want 1", got)
	}

	c, ok := reg.Peek(recommend.Anime)
	if !ok || c != results[0] {
		t.Error("Peek() does not return the resident catalog")
	}
}

func TestRegistry_OtherDomainsNotBlocked(t *testing.T) {
	t.Parallel()

	slow := newFakeSource("slow")
	slow.gate = make(chan struct{})
	defer close(slow.gate)

	fast := newFakeSource("fast")
	fast.set(recommend.Manga, encode(t, testBundle(recommend.Manga), false), nil)

	// Route anime to the blocked source and everything else to fast.
	src := &routeSource{routes: map[recommend.Domain]Source{recommend.Anime: slow}, fallback: fast}
	reg, _ := newTestRegistry(src, 0)

	go func() { _, _ = reg.Get(context.Background(), recommend.Anime) }()
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := reg.Get(ctx, recommend.Manga); err != nil {
		t.Fatalf("Get(manga) while anime loads error = %v", err)
	}
}

func TestRegistry_FailureNotCached(t *testing.T) {
	t.Parallel()

	src := newFakeSource("fake")
	reg, _ := newTestRegistry(src, 0)

	_, err := reg.Get(context.Background(), recommend.Movie)
	if !errors.Is(err, ErrDataUnavailable) || !errors.Is(err, ErrBundleNotFound) {
		t.Fatalf("Get() error = %v, want ErrDataUnavailable wrapping ErrBundleNotFound", err)
	}
	if _, ok := reg.Peek(recommend.Movie); ok {
		t.Fatal("failed load left a resident catalog")
	}

	src.set(recommend.Movie, encode(t, testBundle(recommend.Movie), true), nil)
	c, err := reg.Get(context.Background(), recommend.Movie)
	if err != nil {
		t.Fatalf("Get() after bundle appeared error = %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("catalog has %d items, want 3", c.Len())
	}
	if src.calls.Load() != 2 {
		t.Errorf("source fetched %d times, want 2", src.calls.Load())
	}
}

func TestRegistry_RetryPacing(t *testing.T) {
	t.Parallel()

	src := newFakeSource("fake")
	src.set(recommend.TV, []byte("not a bundle"), nil)
	reg, clock := newTestRegistry(src, 10*time.Second)
	ctx := context.Background()

	_, err := reg.Get(ctx, recommend.TV)
	if !errors.Is(err, ErrDataUnavailable) || !errors.Is(err, ErrMalformedBundle) {
		t.Fatalf("first Get() error = %v", err)
	}

	clock.Advance(3 * time.Second)
	_, err = reg.Get(ctx, recommend.TV)
	if !errors.Is(err, ErrDataUnavailable) || !errors.Is(err, ErrMalformedBundle) {
		t.Fatalf("paced Get() error = %v, want last failure", err)
	}
	if src.calls.Load() != 1 {
		t.Fatalf("source fetched %d times during pacing, want 1", src.calls.Load())
	}

	src.set(recommend.TV, encode(t, testBundle(recommend.TV), false), nil)
	clock.Advance(7 * time.Second)
	if _, err := reg.Get(ctx, recommend.TV); err != nil {
		t.Fatalf("Get() after interval error = %v", err)
	}
	if src.calls.Load() != 2 {
		t.Errorf("source fetched %d times, want 2", src.calls.Load())
	}
}

func TestRegistry_UnknownDomain(t *testing.T) {
	t.Parallel()

	src := newFakeSource("fake")
	reg, _ := newTestRegistry(src, 0)
	if _, err := reg.Get(context.Background(), "books"); !errors.Is(err, ErrUnknownDomain) {
		t.Errorf("Get() error = %v, want ErrUnknownDomain", err)
	}
	if src.calls.Load() != 0 {
		t.Error("source consulted for unknown domain")
	}
}

func TestRegistry_ContextCanceledWhileWaiting(t *testing.T) {
	t.Parallel()

	src := newFakeSource("fake")
	src.gate = make(chan struct{})
	defer close(src.gate)
	reg, _ := newTestRegistry(src, time.Hour)

	go func() { _, _ = reg.Get(context.Background(), recommend.Anime) }()
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := reg.Get(ctx, recommend.Anime); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Get() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestRegistry_CanceledLoadNotRecorded(t *testing.T) {
	t.Parallel()

	src := newFakeSource("fake")
	src.gate = make(chan struct{})
	reg, _ := newTestRegistry(src, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := reg.Get(ctx, recommend.Manga); !errors.Is(err, context.Canceled) {
		t.Fatalf("Get() error = %v, want context.Canceled", err)
	}

	// The canceled attempt must not start the retry interval.
	close(src.gate)
	src.set(recommend.Manga, encode(t, testBundle(recommend.Manga), true), nil)
	if _, err := reg.Get(context.Background(), recommend.Manga); err != nil {
		t.Errorf("Get() after canceled attempt error = %v", err)
	}
}

func TestRegistry_PreloadReadyLoaded(t *testing.T) {
	t.Parallel()

	src := newFakeSource("fake")
	src.set(recommend.Anime, encode(t, testBundle(recommend.Anime), true), nil)
	src.set(recommend.TV, encode(t, testBundle(recommend.TV), true), nil)
	reg, _ := newTestRegistry(src, 0)

	all := []recommend.Domain{recommend.TV, recommend.Anime}
	if reg.Ready(all) {
		t.Fatal("Ready() before Preload")
	}
	if !reg.Ready(nil) {
		t.Error("Ready(nil) = false, want true")
	}

	if err := reg.Preload(context.Background(), all); err != nil {
		t.Fatalf("Preload() error = %v", err)
	}
	if !reg.Ready(all) {
		t.Error("Ready() after Preload = false")
	}

	loaded := reg.Loaded()
	if len(loaded) != 2 || loaded[0] != recommend.Anime || loaded[1] != recommend.TV {
		t.Errorf("Loaded() = %v, want [anime tv]", loaded)
	}

	err := reg.Preload(context.Background(), []recommend.Domain{recommend.Movie, recommend.Anime})
	if !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("Preload() with missing bundle error = %v", err)
	}
}

// routeSource dispatches Fetch by domain.
type routeSource struct {
	routes   map[recommend.Domain]Source
	fallback Source
}

func (r *routeSource) Name() string { return "route" }

func (r *routeSource) Fetch(ctx context.Context, d recommend.Domain) (*Blob, error) {
	if src, ok := r.routes[d]; ok {
		return src.Fetch(ctx, d)
	}
	return r.fallback.Fetch(ctx, d)
}
