// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

/*
Package api provides the HTTP layer of UNIREX.

It is the only place where core errors become HTTP status codes. Handlers
fetch the domain's catalog from the registry, run the scoring engine, and
project the ranked rows onto the domain's record shape.

Routes:

	GET /                               plain-text banner
	GET /movies/recommend?title=        movie recommendations (also /recommend?title=)
	GET /manga/recommend?title=         manga recommendations
	GET /anime/recommend/{title}        anime recommendations
	GET /series/recommend/{title}       TV series recommendations
	GET /api/v1/domains                 domain table
	GET /api/v1/domains/{domain}/profiles  genre profiles (tv only)
	GET /health/live                    liveness
	GET /health/ready                   readiness (preload domains resident)
	GET /metrics                        Prometheus

Trailing slashes are accepted on every route. The recommendation routes take
optional top_n (1..max_top_n) and weights ("a,b,c,d") query parameters.

Status codes:

  - 200: JSON array of records; fields depend on the domain
  - 400: {"error", "example"} when title is missing, {"error"} for bad parameters
  - 404: {"error"} with the domain's not-found message
  - 429: rate limit exceeded
  - 503: the catalog could not be loaded or the request timed out

Middleware (global): request ID, real IP, panic recovery, slash stripping,
CORS (go-chi/cors) and Prometheus request metrics. The recommendation and
domain routes add per-IP rate limiting (go-chi/httprate) and security
headers; recommendation routes are bounded by the configured request timeout.
*/
package api
