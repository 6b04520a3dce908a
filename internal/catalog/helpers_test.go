// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package catalog

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/unirex/internal/recommend"
)

// testBundle returns a small valid bundle for d with a dense similarity matrix.
func testBundle(d recommend.Domain) *Bundle {
	return &Bundle{
		Domain:  string(d),
		Version: "test",
		Items: []BundleItem{
			{Title: "Alpha", Genres: "action comedy", Tags: "space pirates", AverageRating: 8.1, Popularity: 1200},
			{Title: "Beta", Genres: "action", Tags: "space war", AverageRating: 7.4, Popularity: 800},
			{Title: "Gamma", Genres: "romance", Tags: "school life", AverageRating: 6.9, Popularity: 300},
		},
		NormalizedRatings:    []float64{0.9, 0.6, 0.4},
		NormalizedPopularity: []float64{1.0, 0.5, 0.1},
		TagSimilarity: [][]float64{
			{1, 0.5, 0},
			{0.5, 1, 0},
			{0, 0, 1},
		},
	}
}

// encode serialises b, gzip-compressed when compress is set.
func encode(t *testing.T, b *Bundle, compress bool) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := encodeBundle(&buf, b, compress); err != nil {
		t.Fatalf("encodeBundle() error = %v", err)
	}
	return buf.Bytes()
}

// openTestBadger opens an in-memory BadgerDB closed at test cleanup.
func openTestBadger(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeSource serves fixed blobs and counts calls. gate, when set, blocks
// each Fetch until it is closed.
type fakeSource struct {
	name  string
	mu    sync.Mutex
	blobs map[recommend.Domain][]byte
	errs  map[recommend.Domain]error
	gate  chan struct{}
	calls atomic.Int32
}

func newFakeSource(name string) *fakeSource {
	return &fakeSource{
		name:  name,
		blobs: make(map[recommend.Domain][]byte),
		errs:  make(map[recommend.Domain]error),
	}
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) set(d recommend.Domain, data []byte, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[d] = data
	f.errs[d] = err
}

func (f *fakeSource) Fetch(ctx context.Context, d recommend.Domain) (*Blob, error) {
	f.calls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[d]; err != nil {
		return nil, err
	}
	data, ok := f.blobs[d]
	if !ok {
		return nil, ErrBundleNotFound
	}
	return &Blob{Data: data, Source: f.name}, nil
}

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// encodeBundle writes b as JSON, gzip-compressed when compress is set.
func encodeBundle(w io.Writer, b *Bundle, compress bool) error {
	if !compress {
		return json.NewEncoder(w).Encode(b)
	}
	zw := gzip.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(b); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}
