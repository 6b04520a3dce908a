// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/unirex/internal/catalog"
	"github.com/tomtom215/unirex/internal/logging"
	"github.com/tomtom215/unirex/internal/metrics"
	"github.com/tomtom215/unirex/internal/recommend"
)

// RecommendationRecord is one ranked row in a recommendation response.
// Which optional fields are present depends on the domain; a present field
// is always written, even when zero.
type RecommendationRecord struct {
	Title         string   `json:"title"`
	Genres        *string  `json:"genres,omitempty"`
	Genre         *string  `json:"genre,omitempty"`
	AverageRating *float64 `json:"average_rating,omitempty"`
	Popularity    *float64 `json:"popularity,omitempty"`
	Score         float64  `json:"score"`
}

// queryRoute describes a route that takes the title as ?title=.
type queryRoute struct {
	domain  recommend.Domain
	missing string
	example string
}

var (
	movieRoute = queryRoute{
		domain:  recommend.Movie,
		missing: "Please provide a movie title via the 'title' query parameter.",
		example: "/movies/recommend/?title=Inception",
	}
	mangaRoute = queryRoute{
		domain:  recommend.Manga,
		missing: "Please provide a manga title via the 'title' query parameter.",
		example: "/manga/recommend/?title=Naruto",
	}
)

// RecommendMovies handles GET /movies/recommend?title= and the legacy /recommend?title=.
func (h *Handler) RecommendMovies(w http.ResponseWriter, r *http.Request) {
	h.serveQueryRoute(w, r, movieRoute)
}

// RecommendManga handles GET /manga/recommend?title=.
func (h *Handler) RecommendManga(w http.ResponseWriter, r *http.Request) {
	h.serveQueryRoute(w, r, mangaRoute)
}

// RecommendAnime handles GET /anime/recommend/{title}.
func (h *Handler) RecommendAnime(w http.ResponseWriter, r *http.Request) {
	h.recommend(w, r, recommend.Anime, pathTitle(r))
}

// RecommendSeries handles GET /series/recommend/{title}.
func (h *Handler) RecommendSeries(w http.ResponseWriter, r *http.Request) {
	h.recommend(w, r, recommend.TV, pathTitle(r))
}

func (h *Handler) serveQueryRoute(w http.ResponseWriter, r *http.Request, route queryRoute) {
	title := r.URL.Query().Get("title")
	if strings.TrimSpace(title) == "" {
		respondMissingParam(w, route.missing, route.example)
		return
	}
	h.recommend(w, r, route.domain, title)
}

// pathTitle returns the {title} URL parameter, unescaped when the request
// path carried escapes chi left in place.
func pathTitle(r *http.Request) string {
	title := chi.URLParam(r, "title")
	if r.URL.RawPath == "" {
		return title
	}
	if unescaped, err := url.PathUnescape(title); err == nil {
		return unescaped
	}
	return title
}

func (h *Handler) recommend(w http.ResponseWriter, r *http.Request, d recommend.Domain, title string) {
	start := time.Now()
	ctx := r.Context()
	logger := logging.Ctx(ctx).With().
		Str("component", "api").
		Str("domain", string(d)).
		Str("title", logging.SanitizeValue(title)).
		Logger()

	if err := validateTitle(title); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	query, err := parseRecommendParams(r, h.engine.Config().Limits.MaxTopN)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	query.title = title

	spec, err := recommend.SpecFor(d)
	if err != nil {
		logger.Error().Err(err).Msg("Route bound to unknown domain")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	c, err := h.catalogs.Get(ctx, d)
	if err != nil {
		metrics.RecordRecommendation(string(d), metrics.OutcomeUnavailable, false, time.Since(start))
		if errors.Is(err, catalog.ErrDataUnavailable) || isContextError(err) {
			logger.Warn().Err(err).Msg("Catalog unavailable")
			respondError(w, http.StatusServiceUnavailable,
				fmt.Sprintf("The %s catalog is currently unavailable, please retry later.", d))
			return
		}
		logger.Error().Err(err).Msg("Catalog lookup failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	res, err := h.engine.Recommend(ctx, c, recommend.Query{
		Title:   query.title,
		TopN:    query.topN,
		Weights: query.weights,
	})
	if err != nil {
		var notFound *recommend.NotFoundError
		switch {
		case errors.As(err, &notFound):
			metrics.RecordRecommendation(string(d), metrics.OutcomeNotFound, false, time.Since(start))
			logger.Info().Msg("Title not found")
			respondError(w, http.StatusNotFound, notFound.Error())
		case errors.Is(err, recommend.ErrInvalidWeights):
			metrics.RecordRecommendation(string(d), metrics.OutcomeError, false, time.Since(start))
			respondError(w, http.StatusBadRequest, err.Error())
		case isContextError(err):
			metrics.RecordRecommendation(string(d), metrics.OutcomeUnavailable, false, time.Since(start))
			respondError(w, http.StatusServiceUnavailable, "Request timed out, please retry later.")
		default:
			metrics.RecordRecommendation(string(d), metrics.OutcomeError, false, time.Since(start))
			logger.Error().Err(err).Msg("Recommendation failed")
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	elapsed := time.Since(start)
	metrics.RecordRecommendation(string(d), metrics.OutcomeOK, res.CacheHit, elapsed)
	logger.Info().
		Str("match", res.Match.String()).
		Int("returned", len(res.Items)).
		Bool("cache_hit", res.CacheHit).
		Dur("latency", elapsed).
		Msg("Recommendation served")

	respondJSON(w, http.StatusOK, records(spec, res.Items))
}

// records projects ranked rows onto the domain's response fields.
func records(spec recommend.Spec, items []recommend.Recommendation) []RecommendationRecord {
	out := make([]RecommendationRecord, len(items))
	for i := range items {
		item := items[i].Item
		rec := RecommendationRecord{Title: item.Title, Score: items[i].Score}
		if spec.HasField(recommend.FieldGenres) {
			rec.Genres = &item.Genres
		}
		if spec.HasField(recommend.FieldGenre) {
			rec.Genre = &item.Genres
		}
		if spec.HasField(recommend.FieldAverageRating) {
			rec.AverageRating = &item.AverageRating
		}
		if spec.HasField(recommend.FieldPopularity) {
			rec.Popularity = &item.Popularity
		}
		out[i] = rec
	}
	return out
}

func isContextError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
