// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package api

import (
	"io"
	"net/http"
	"time"

	"github.com/tomtom215/unirex/internal/logging"
	"github.com/tomtom215/unirex/internal/recommend"
)

// banner is the plain-text body of GET /.
const banner = "Unified Recommendation API is running. " +
	"Use /movies/recommend/, /manga/recommend/, /anime/recommend/<title>, /series/recommend/<title>. " +
	"Legacy movie endpoint: /recommend/?title=MovieTitle"

// Home handles GET / with a plain-text route summary.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, banner); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write banner")
	}
}

// LivenessResponse is the body of GET /health/live.
type LivenessResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// HealthLive handles liveness probe requests.
// Returns 200 OK if the process is alive, regardless of catalog state.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &LivenessResponse{
		Status:        "alive",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}

// ReadinessResponse is the body of GET /health/ready.
type ReadinessResponse struct {
	Status  string             `json:"status"`
	Loaded  []recommend.Domain `json:"loaded"`
	Pending []recommend.Domain `json:"pending"`
}

// HealthReady handles readiness probe requests.
// Returns 200 once every preload domain is resident and 503 before that.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	resp := ReadinessResponse{
		Loaded:  append([]recommend.Domain{}, h.catalogs.Loaded()...),
		Pending: []recommend.Domain{},
	}
	for _, d := range h.preload {
		if _, ok := h.catalogs.Peek(d); !ok {
			resp.Pending = append(resp.Pending, d)
		}
	}

	status := http.StatusOK
	resp.Status = "ready"
	if !h.catalogs.Ready(h.preload) {
		status = http.StatusServiceUnavailable
		resp.Status = "not_ready"
	}
	respondJSON(w, status, &resp)
}
