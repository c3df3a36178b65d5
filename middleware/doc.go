// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Middleware

  - WithLogging: structured request/completion logging via slog
  - WithAuth: resolves the X-Session-Token header through the session
    manager and attaches the Principal to the request context
  - CORS: cross-origin headers and preflight handling

Routes compose them inside-out:

	mux.HandleFunc("GET /albums",
		middleware.WithLogging(middleware.WithAuth(sessions, h.ListAlbums)))

Handlers behind WithAuth read the caller with:

	p, ok := middleware.PrincipalFrom(r.Context())

# Response Helpers

  - JSONResponse: encode a payload with status code
  - ErrorResponse: uniform models.ErrorResponse envelope
  - ParseJSONBody: decode and close the request body
*/
package middleware
