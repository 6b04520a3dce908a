// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package api

import (
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/unirex/internal/recommend"
)

// DomainInfo describes one domain's scoring configuration.
type DomainInfo struct {
	Domain         recommend.Domain  `json:"domain"`
	DefaultWeights recommend.Weights `json:"default_weights"`
	SignalOrder    string            `json:"signal_order"`
	MatchPolicy    string            `json:"match_policy"`
	GenreStrategy  string            `json:"genre_strategy"`
	Fields         []recommend.Field `json:"fields"`
	HasProfiles    bool              `json:"has_profiles"`
	TagStopWords   []string          `json:"tag_stop_words,omitempty"`
	Loaded         bool              `json:"loaded"`
	Items          int               `json:"items"`
}

// DomainsResponse is the body of GET /api/v1/domains.
type DomainsResponse struct {
	Domains []DomainInfo `json:"domains"`
}

// Domains handles GET /api/v1/domains. Item counts are only known for
// resident catalogs; listing domains never triggers a load.
func (h *Handler) Domains(w http.ResponseWriter, r *http.Request) {
	resp := DomainsResponse{Domains: make([]DomainInfo, 0, len(recommend.Domains()))}
	for _, d := range recommend.Domains() {
		spec, err := recommend.SpecFor(d)
		if err != nil {
			continue
		}
		info := DomainInfo{
			Domain:         d,
			DefaultWeights: spec.DefaultWeights,
			SignalOrder:    spec.Order.String(),
			MatchPolicy:    spec.MatchPolicy.String(),
			GenreStrategy:  spec.Genre.Name(),
			Fields:         spec.Fields,
			HasProfiles:    spec.Profiles != nil,
			TagStopWords:   spec.Normalizer.StopWords(),
		}
		slices.Sort(info.TagStopWords)
		if c, ok := h.catalogs.Peek(d); ok {
			info.Loaded = true
			info.Items = c.Len()
		}
		resp.Domains = append(resp.Domains, info)
	}
	respondJSON(w, http.StatusOK, &resp)
}

// ProfileInfo is one row of a genre profile table.
type ProfileInfo struct {
	Genre string `json:"genre"`
	recommend.GenreProfile
}

// ProfilesResponse is the body of GET /api/v1/domains/{domain}/profiles.
type ProfilesResponse struct {
	Domain   recommend.Domain `json:"domain"`
	Profiles []ProfileInfo    `json:"profiles"`
}

// Profiles handles GET /api/v1/domains/{domain}/profiles. Domains without a
// profile table answer 404.
func (h *Handler) Profiles(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "domain")
	d, err := recommend.ParseDomain(raw)
	if err != nil {
		if errors.Is(err, recommend.ErrUnknownDomain) {
			respondError(w, http.StatusNotFound, fmt.Sprintf("Unknown domain %q.", raw))
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	spec, err := recommend.SpecFor(d)
	if err != nil || spec.Profiles == nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Domain %q has no genre profiles.", d))
		return
	}

	// Named genres in sorted order, the fallback profile last.
	all := spec.Profiles.All()
	names := append(spec.Profiles.Names(), recommend.DefaultProfileName)

	resp := ProfilesResponse{Domain: d, Profiles: make([]ProfileInfo, 0, len(names))}
	for _, name := range names {
		resp.Profiles = append(resp.Profiles, ProfileInfo{Genre: name, GenreProfile: all[name]})
	}
	respondJSON(w, http.StatusOK, &resp)
}
