// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Request Logging

WithLogging wraps a handler with structured request/completion logs:

	mux.HandleFunc("POST /polls", middleware.WithLogging(h.CreatePoll))

# JSON Helpers

Consistent JSON encoding for responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
	middleware.ParseJSONBody(r, &req)

ErrorResponse produces the standard error shape:

	{"error": "Not Found", "message": "Poll not found"}

# CORS

CORS wraps the whole mux and reflects the request origin, allowing the
frontend dev server and production domains to call the API directly. The
WebSocket endpoint performs its own origin handling at upgrade time.
*/
package middleware
