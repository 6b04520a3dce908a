// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

// Package validation validates request parameters with go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata and is safe for concurrent use. Error messages name fields by
// their `query` tag so a client sees "top_n must be at least 1" rather than
// a Go field name.
//
// Custom tags:
//
//	weights   four comma-separated finite numbers ("0.2,0.4,0.25,0.15")
//
// Example:
//
//	type params struct {
//	    TopN    *int   `query:"top_n" validate:"omitempty,min=1"`
//	    Weights string `query:"weights" validate:"omitempty,weights"`
//	}
//
//	if verr := validation.ValidateStruct(&p); verr != nil {
//	    // 400 with verr.Error()
//	}
//	if verr := validation.ValidateVar("top_n", *p.TopN, "max=100"); verr != nil {
//	    // 400
//	}
package validation
