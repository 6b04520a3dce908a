// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package recommend

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Weights is the coefficient 4-tuple of a score. Which signal each
// coefficient multiplies depends on the domain's SignalOrder.
// Weights are a raw linear combination and are never normalized, so absolute
// scores are not comparable across domains or weight settings.
type Weights struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
	Gamma float64 `json:"gamma"`
	Delta float64 `json:"delta"`
}

// Validate reports ErrInvalidWeights when any coefficient is NaN or infinite.
func (w Weights) Validate() error {
	for _, v := range [...]float64{w.Alpha, w.Beta, w.Gamma, w.Delta} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite coefficient %v", ErrInvalidWeights, v)
		}
	}
	return nil
}

// String formats w as "a,b,c,d", the form accepted by ParseWeights.
func (w Weights) String() string {
	parts := [...]string{
		strconv.FormatFloat(w.Alpha, 'g', -1, 64),
		strconv.FormatFloat(w.Beta, 'g', -1, 64),
		strconv.FormatFloat(w.Gamma, 'g', -1, 64),
		strconv.FormatFloat(w.Delta, 'g', -1, 64),
	}
	return strings.Join(parts[:], ",")
}

// ParseWeights parses "a,b,c,d". Any other arity, an unparsable number, or a
// non-finite value is ErrInvalidWeights.
func ParseWeights(s string) (Weights, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Weights{}, fmt.Errorf("%w: want 4 comma-separated values, got %d", ErrInvalidWeights, len(parts))
	}

	var vals [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Weights{}, fmt.Errorf("%w: value %d: %v", ErrInvalidWeights, i+1, err)
		}
		vals[i] = v
	}

	w := Weights{Alpha: vals[0], Beta: vals[1], Gamma: vals[2], Delta: vals[3]}
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// SignalOrder binds the four coefficients to the four signals.
type SignalOrder int

const (
	// OrderGenreTagRatingPopularity: α·genre + β·tag·boost + γ·rating + δ·popularity.
	OrderGenreTagRatingPopularity SignalOrder = iota

	// OrderGenrePopularityTagRating: α·genre + β·popularity + γ·tag·boost + δ·rating.
	OrderGenrePopularityTagRating
)

// String returns the signal names in coefficient order.
func (o SignalOrder) String() string {
	switch o {
	case OrderGenreTagRatingPopularity:
		return "genre,tag,rating,popularity"
	case OrderGenrePopularityTagRating:
		return "genre,popularity,tag,rating"
	default:
		return "unknown"
	}
}

// Combine applies w to the signals in this order.
func (o SignalOrder) Combine(w Weights, s Signals) float64 {
	tag := s.Tag * s.Boost
	if o == OrderGenrePopularityTagRating {
		return w.Alpha*s.Genre + w.Beta*s.Popularity + w.Gamma*tag + w.Delta*s.Rating
	}
	return w.Alpha*s.Genre + w.Beta*tag + w.Gamma*s.Rating + w.Delta*s.Popularity
}
