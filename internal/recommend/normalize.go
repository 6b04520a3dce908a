// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package recommend

import (
	"regexp"
	"strings"
)

var nonTokenRegex = regexp.MustCompile(`[^a-z0-9\s]`)

// tvStopWords are dropped from TV tags; they describe the medium, not the content.
var tvStopWords = []string{"tv", "show", "series", "episode", "season", "film", "movie"}

// Normalizer canonicalizes free text into a space-separated token string.
// The zero value lower-cases, strips every character outside [a-z0-9] and
// whitespace, and collapses runs of whitespace.
type Normalizer struct {
	stopWords map[string]struct{}
}

// NewNormalizer returns a normalizer that also removes the given stop-words.
func NewNormalizer(stopWords ...string) Normalizer {
	if len(stopWords) == 0 {
		return Normalizer{}
	}
	sw := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		sw[strings.ToLower(w)] = struct{}{}
	}
	return Normalizer{stopWords: sw}
}

// Normalize returns the canonical token string for text.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func (n Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	cleaned := nonTokenRegex.ReplaceAllString(strings.ToLower(text), "")
	tokens := strings.Fields(cleaned)

	if len(n.stopWords) > 0 {
		kept := tokens[:0]
		for _, tok := range tokens {
			if _, stop := n.stopWords[tok]; !stop {
				kept = append(kept, tok)
			}
		}
		tokens = kept
	}

	return strings.Join(tokens, " ")
}

// StopWords returns the configured stop-words in no particular order.
func (n Normalizer) StopWords() []string {
	out := make([]string, 0, len(n.stopWords))
	for w := range n.stopWords {
		out = append(out, w)
	}
	return out
}

// titleKey is the form both sides of a title comparison are reduced to.
func titleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// tokenSet splits a whitespace-delimited string into a set of lower-cased tokens.
func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
