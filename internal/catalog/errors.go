// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package catalog

import (
	"errors"

	"github.com/tomtom215/unirex/internal/recommend"
)

var (
	// ErrDataUnavailable means a catalog could not be loaded. Requests for
	// the domain fail until a later load succeeds.
	ErrDataUnavailable = errors.New("catalog data unavailable")

	// ErrMalformedBundle means a bundle was read but its contents are inconsistent.
	ErrMalformedBundle = errors.New("malformed catalog bundle")

	// ErrBundleNotFound means a source has no bundle for the domain.
	// ChainSource moves on to the next source when it sees it.
	ErrBundleNotFound = errors.New("catalog bundle not found")

	// ErrBundleTooLarge means a bundle exceeded the configured size limit.
	ErrBundleTooLarge = errors.New("catalog bundle too large")

	// ErrUnknownDomain is recommend.ErrUnknownDomain, re-exported so callers
	// of this package need not import recommend to test for it.
	ErrUnknownDomain = recommend.ErrUnknownDomain
)
