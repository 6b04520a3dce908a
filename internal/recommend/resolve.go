// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package recommend

import (
	"strings"
)

// MatchPolicy selects how a query title is mapped to a catalog row.
type MatchPolicy int

const (
	// MatchPolicyExact accepts only a lower+trim exact title match.
	MatchPolicyExact MatchPolicy = iota

	// MatchPolicyExactThenSubstring falls back to the first catalog title
	// containing the query when no exact match exists.
	MatchPolicyExactThenSubstring
)

// String returns a human-readable policy name.
func (p MatchPolicy) String() string {
	switch p {
	case MatchPolicyExact:
		return "exact"
	case MatchPolicyExactThenSubstring:
		return "exact_then_substring"
	default:
		return "unknown"
	}
}

// Resolve maps title to exactly one row of c using the catalog domain's
// match policy. Ties are broken by catalog row order. A title that is empty
// after trimming never matches.
func Resolve(c *Catalog, title string) (int, MatchKind, error) {
	spec, err := SpecFor(c.domain)
	if err != nil {
		return 0, MatchExact, err
	}
	return resolveWith(c, title, spec.MatchPolicy)
}

func resolveWith(c *Catalog, title string, policy MatchPolicy) (int, MatchKind, error) {
	key := titleKey(title)
	if key == "" {
		return 0, MatchExact, &NotFoundError{Domain: c.domain, Title: title}
	}

	for i, k := range c.titleKeys {
		if k == key {
			return i, MatchExact, nil
		}
	}

	if policy == MatchPolicyExactThenSubstring {
		for i, k := range c.titleKeys {
			if strings.Contains(k, key) {
				return i, MatchSubstring, nil
			}
		}
	}

	return 0, MatchExact, &NotFoundError{Domain: c.domain, Title: title}
}
