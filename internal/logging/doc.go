// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

// Package logging provides centralized zerolog-based structured logging for UNIREX.
//
// JSON output is the default; console output is available for development.
// Request handlers log through Ctx so the request and correlation IDs set by
// the RequestID middleware appear on every line.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Int("port", 5000).Msg("server starting")
//	logging.Ctx(ctx).Warn().Str("title", logging.SanitizeValue(title)).Msg("title not found")
//
// # slog Bridge
//
// The supervisor tree reports through sutureslog, which takes an *slog.Logger.
// NewSlogLogger returns one whose records are written by the global zerolog logger.
//
// # Sanitizing
//
// Titles arrive straight from query strings and URL paths. SanitizeValue
// escapes control characters and bounds the length before they are logged.
package logging
