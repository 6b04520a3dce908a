// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the query title is absent from the catalog.
	ErrNotFound = errors.New("title not found")

	// ErrUnknownDomain indicates a domain name outside the four catalogs.
	ErrUnknownDomain = errors.New("unknown domain")

	// ErrInvalidWeights indicates a weight tuple of the wrong arity or with
	// non-finite values.
	ErrInvalidWeights = errors.New("invalid weights")

	// ErrInvalidCatalog indicates per-row inputs of inconsistent length.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// NotFoundError carries the domain-specific message for a missing title.
// It unwraps to ErrNotFound.
type NotFoundError struct {
	Domain Domain
	Title  string
}

func (e *NotFoundError) Error() string {
	spec, err := SpecFor(e.Domain)
	if err != nil || spec.NotFoundFormat == "" {
		return fmt.Sprintf("'%s' not found in dataset.", e.Title)
	}
	return fmt.Sprintf(spec.NotFoundFormat, e.Title)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
