// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package catalog

import (
	"fmt"
	"math"
	"sort"
)

// DenseSimilarity is a precomputed n×n similarity matrix stored row-major.
type DenseSimilarity struct {
	n    int
	data []float64
}

// NewDenseSimilarity copies rows into a DenseSimilarity. rows must be square
// and every value finite.
func NewDenseSimilarity(rows [][]float64) (*DenseSimilarity, error) {
	n := len(rows)
	data := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: tag_similarity row %d has %d columns, want %d", ErrMalformedBundle, i, len(row), n)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: tag_similarity[%d][%d] is not finite", ErrMalformedBundle, i, j)
			}
		}
		data = append(data, row...)
	}
	return &DenseSimilarity{n: n, data: data}, nil
}

// Len returns n.
func (d *DenseSimilarity) Len() int { return d.n }

// Row returns row i without copying.
func (d *DenseSimilarity) Row(i int) []float64 {
	start := i * d.n
	return d.data[start : start+d.n : start+d.n]
}

// SparseVector is one row of a sparse term-weight matrix.
type SparseVector struct {
	Indices []int     `json:"indices"`
	Values  []float64 `json:"values"`
}

type posting struct {
	row int
	val float64
}

// SparseCosine derives cosine similarity from sparse tag vectors. Rows are
// L2-normalised once at construction and an inverted index over terms makes
// Row(i) cost proportional to the postings touched by row i's terms.
// A zero vector has similarity 0 to every row, itself included.
type SparseCosine struct {
	n        int
	rows     []SparseVector
	postings map[int][]posting
}

// NewSparseCosine normalises vectors and builds the term index.
// Duplicate indices within a row are summed.
func NewSparseCosine(vectors []SparseVector) (*SparseCosine, error) {
	s := &SparseCosine{
		n:        len(vectors),
		rows:     make([]SparseVector, len(vectors)),
		postings: make(map[int][]posting),
	}

	for i, v := range vectors {
		if len(v.Indices) != len(v.Values) {
			return nil, fmt.Errorf("%w: tag_vectors[%d] has %d indices and %d values",
				ErrMalformedBundle, i, len(v.Indices), len(v.Values))
		}

		terms := make(map[int]float64, len(v.Indices))
		for k, idx := range v.Indices {
			val := v.Values[k]
			if idx < 0 {
				return nil, fmt.Errorf("%w: tag_vectors[%d] has negative index %d", ErrMalformedBundle, i, idx)
			}
			if math.IsNaN(val) || math.IsInf(val, 0) {
				return nil, fmt.Errorf("%w: tag_vectors[%d] has a non-finite value", ErrMalformedBundle, i)
			}
			terms[idx] += val
		}

		var norm float64
		for _, val := range terms {
			norm += val * val
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)

		row := SparseVector{
			Indices: make([]int, 0, len(terms)),
			Values:  make([]float64, 0, len(terms)),
		}
		for idx := range terms {
			row.Indices = append(row.Indices, idx)
		}
		sort.Ints(row.Indices)
		for _, idx := range row.Indices {
			val := terms[idx] / norm
			row.Values = append(row.Values, val)
			s.postings[idx] = append(s.postings[idx], posting{row: i, val: val})
		}
		s.rows[i] = row
	}

	return s, nil
}

// Len returns n.
func (s *SparseCosine) Len() int { return s.n }

// Row returns the cosine similarity of row i to every row.
// A new slice is allocated on every call.
func (s *SparseCosine) Row(i int) []float64 {
	out := make([]float64, s.n)
	row := s.rows[i]
	for k, idx := range row.Indices {
		val := row.Values[k]
		for _, p := range s.postings[idx] {
			out[p.row] += val * p.val
		}
	}
	return out
}
