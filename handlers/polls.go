// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"pollcast/middleware"
	"pollcast/models"
	"pollcast/service"
	"pollcast/store"
)

type PollHandler struct {
	polls  *store.PollStore
	ledger *store.Ledger
	svc    *service.Service
}

func NewPollHandler(db *sql.DB, svc *service.Service) *PollHandler {
	return &PollHandler{
		polls:  store.NewPollStore(db),
		ledger: store.NewLedger(db),
		svc:    svc,
	}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	poll, err := h.svc.CreatePoll(req)
	if err != nil {
		writeDomainError(w, err, "failed to create poll")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.polls.List()
	if err != nil {
		writeDomainError(w, err, "failed to list polls")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollListResponse{Polls: polls})
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	poll, err := h.polls.Get(pollID)
	if err != nil {
		writeDomainError(w, err, "failed to query poll")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// DeletePoll handles DELETE /polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	if err := h.svc.DeletePoll(pollID); err != nil {
		writeDomainError(w, err, "failed to delete poll")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DeletePollResponse{
		Message: "Poll deleted successfully",
	})
}

// GetVoters handles GET /polls/{id}/voters
func (h *PollHandler) GetVoters(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	if _, err := h.polls.Get(pollID); err != nil {
		writeDomainError(w, err, "failed to query poll")
		return
	}

	voters, err := h.ledger.VotersFor(pollID)
	if err != nil {
		writeDomainError(w, err, "failed to query voters")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, voters)
}
