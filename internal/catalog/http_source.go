// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/unirex/internal/logging"
	"github.com/tomtom215/unirex/internal/metrics"
	"github.com/tomtom215/unirex/internal/recommend"
)

const (
	// downloadBreakerName labels the download circuit breaker in metrics.
	downloadBreakerName = "catalog-download"

	maxErrorBodySize = 512
)

// HTTPSourceConfig configures an HTTPSource.
type HTTPSourceConfig struct {
	// BaseURL is the release download URL; the bundle file name is appended.
	BaseURL string

	// Dir receives a copy of each downloaded bundle. Empty disables the copy.
	Dir string

	// MaxBytes bounds a download. <= 0 means no limit.
	MaxBytes int64

	// Timeout bounds one download, headers and body included.
	Timeout time.Duration

	// Client overrides the HTTP client. Its Timeout is left untouched.
	Client *http.Client
}

// HTTPSource downloads bundles from a release URL through a circuit breaker.
// Downloads are written to Dir so later restarts find them with FileSource.
type HTTPSource struct {
	baseURL  string
	dir      string
	maxBytes int64
	client   *http.Client
	cb       *gobreaker.CircuitBreaker[[]byte]
}

// NewHTTPSource creates an HTTPSource.
//
// Circuit breaker configuration:
//   - Max 1 probe request in half-open state
//   - 5 minute measurement window
//   - 1 minute timeout before attempting recovery
//   - Opens after 3 consecutive failures
//
// A 404 is not a failure: the release exists but has no such asset.
func NewHTTPSource(cfg HTTPSourceConfig) *HTTPSource {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	metrics.CircuitBreakerState.WithLabelValues(downloadBreakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        downloadBreakerName,
		MaxRequests: 1,
		Interval:    5 * time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= 3
			if trip {
				logging.Warn().Uint32("failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening bundle download circuit")
			}
			return trip
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrBundleNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &HTTPSource{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		dir:      cfg.Dir,
		maxBytes: cfg.MaxBytes,
		client:   client,
		cb:       cb,
	}
}

// Name implements Source.
func (s *HTTPSource) Name() string { return "http" }

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context, d recommend.Domain) (*Blob, error) {
	name, err := BundleFile(d)
	if err != nil {
		return nil, err
	}

	data, err := s.cb.Execute(func() ([]byte, error) {
		return s.download(ctx, s.baseURL+"/"+name)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(downloadBreakerName, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(downloadBreakerName, "failure").Inc()
		}
		return nil, fmt.Errorf("download %s: %w", name, err)
	}
	metrics.CircuitBreakerRequests.WithLabelValues(downloadBreakerName, "success").Inc()

	if s.dir != "" {
		if err := writeFileAtomic(s.dir, name, data); err != nil {
			logging.Warn().Err(err).Str("file", name).Msg("Failed to keep downloaded bundle")
		}
	}
	return &Blob{Data: data, Source: s.Name()}, nil
}

func (s *HTTPSource) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrBundleNotFound, url)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	case s.maxBytes > 0 && resp.ContentLength > s.maxBytes:
		return nil, fmt.Errorf("%w: content length %d exceeds %d bytes", ErrBundleTooLarge, resp.ContentLength, s.maxBytes)
	}

	return readLimited(resp.Body, s.maxBytes)
}

// writeFileAtomic writes data to dir/name via a temporary file and rename,
// so a crash never leaves a truncated bundle behind.
func writeFileAtomic(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(dir, name))
}

// state returns the download circuit breaker state.
func (s *HTTPSource) state() gobreaker.State {
	return s.cb.State()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
