// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package recommend

import (
	"math"
	"testing"
)

// matrixSim is a dense TagSimilarity for tests.
type matrixSim [][]float64

func (m matrixSim) Len() int            { return len(m) }
func (m matrixSim) Row(i int) []float64 { return m[i] }

// identitySim has 1 on the diagonal and 0 elsewhere.
func identitySim(n int) matrixSim {
	m := make(matrixSim, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}
	return m
}

func filled(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func mustCatalog(t testing.TB, d Domain, items []Item, sim TagSimilarity, ratings, popularity []float64) *Catalog {
	t.Helper()
	c, err := NewCatalog(d, items, sim, ratings, popularity)
	if err != nil {
		t.Fatalf("NewCatalog(%s) error = %v", d, err)
	}
	return c
}

// animeFixture is a small plain-Jaccard catalog. Row 4 repeats row 0's title
// with different casing to exercise first-row tie breaking.
func animeFixture(t testing.TB) *Catalog {
	t.Helper()
	items := []Item{
		{Title: "Naruto", Genres: "action adventure", Tags: "Ninja village, friendship!"},
		{Title: "Bleach", Genres: "action supernatural", Tags: "soul reaper swords"},
		{Title: "One Piece", Genres: "action adventure comedy", Tags: "pirates treasure friendship"},
		{Title: "Clannad", Genres: "drama romance", Tags: "school family"},
		{Title: " NARUTO ", Genres: "action", Tags: "ninja"},
	}
	sim := matrixSim{
		{1.0, 0.2, 0.5, 0.0, 0.9},
		{0.2, 1.0, 0.1, 0.0, 0.2},
		{0.5, 0.1, 1.0, 0.1, 0.4},
		{0.0, 0.0, 0.1, 1.0, 0.0},
		{0.9, 0.2, 0.4, 0.0, 1.0},
	}
	ratings := []float64{0.9, 0.8, 0.95, 0.85, 0.5}
	popularity := []float64{0.9, 0.7, 1.0, 0.4, 0.1}
	return mustCatalog(t, Anime, items, sim, ratings, popularity)
}

// tvFixture has no exact "Breaking Bad" row, only an extended cut.
func tvFixture(t testing.TB) *Catalog {
	t.Helper()
	items := []Item{
		{Title: "Breaking Bad Extended Cut", Genres: "Drama crime", Tags: "intense story about a chemistry teacher"},
		{Title: "Better Call Saul", Genres: "drama crime", Tags: "legal drama lawyer story"},
		{Title: "The Office", Genres: "comedy", Tags: "mockumentary workplace TV show"},
		{Title: "Ozark", Genres: "drama thriller", Tags: "intense money laundering series"},
	}
	sim := matrixSim{
		{1.0, 0.6, 0.1, 0.5},
		{0.6, 1.0, 0.1, 0.3},
		{0.1, 0.1, 1.0, 0.0},
		{0.5, 0.3, 0.0, 1.0},
	}
	ratings := []float64{0.95, 0.9, 0.85, 0.8}
	popularity := []float64{1.0, 0.8, 0.9, 0.7}
	return mustCatalog(t, TV, items, sim, ratings, popularity)
}
