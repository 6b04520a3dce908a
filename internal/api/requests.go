// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/unirex/internal/recommend"
	"github.com/tomtom215/unirex/internal/validation"
)

// maxTitleLen bounds the title accepted from clients.
const maxTitleLen = 512

// RecommendParams are the optional query parameters shared by every
// recommendation route.
//
// TopN is a pointer so an explicit top_n=0 is rejected rather than
// treated as absent.
type RecommendParams struct {
	TopN    *int   `query:"top_n" validate:"omitempty,min=1"`
	Weights string `query:"weights" validate:"omitempty,weights"`
}

// recommendQuery is the parsed and validated form of a request.
type recommendQuery struct {
	title   string
	topN    int
	weights *recommend.Weights
}

// parseRecommendParams reads top_n and weights from the query string.
// maxTopN bounds top_n; zero leaves it unbounded.
func parseRecommendParams(r *http.Request, maxTopN int) (recommendQuery, error) {
	q := r.URL.Query()
	var params RecommendParams

	if raw := strings.TrimSpace(q.Get("top_n")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return recommendQuery{}, errors.New("top_n must be an integer")
		}
		params.TopN = &n
	}
	params.Weights = strings.TrimSpace(q.Get("weights"))

	if verr := validation.ValidateStruct(&params); verr != nil {
		return recommendQuery{}, verr
	}

	var out recommendQuery
	if params.TopN != nil {
		if maxTopN > 0 {
			if verr := validation.ValidateVar("top_n", *params.TopN, fmt.Sprintf("max=%d", maxTopN)); verr != nil {
				return recommendQuery{}, verr
			}
		}
		out.topN = *params.TopN
	}
	if params.Weights != "" {
		w, err := recommend.ParseWeights(params.Weights)
		if err != nil {
			return recommendQuery{}, err
		}
		out.weights = &w
	}
	return out, nil
}

// validateTitle bounds the title length.
func validateTitle(title string) error {
	if verr := validation.ValidateVar("title", title, fmt.Sprintf("max=%d", maxTitleLen)); verr != nil {
		return verr
	}
	return nil
}
