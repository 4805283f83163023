// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"pollcast/middleware"
	"pollcast/store"
)

// writeDomainError maps the domain error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is an infrastructure failure and surfaces
// as a 500 for the caller to retry.
func writeDomainError(w http.ResponseWriter, err error, logMsg string) {
	var verr *store.ValidationError
	switch {
	case errors.Is(err, store.ErrPollNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
	case errors.Is(err, store.ErrInvalidOption):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid vote option")
	case errors.Is(err, store.ErrSelfLike):
		middleware.ErrorResponse(w, http.StatusBadRequest, "You cannot like yourself")
	case errors.As(err, &verr):
		middleware.ErrorResponse(w, http.StatusBadRequest, verr.Error())
	default:
		slog.Error(logMsg, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
