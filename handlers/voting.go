// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"pollcast/middleware"
	"pollcast/models"
	"pollcast/service"
)

type VotingHandler struct {
	svc *service.Service
}

func NewVotingHandler(db *sql.DB, svc *service.Service) *VotingHandler {
	return &VotingHandler{svc: svc}
}

// Vote handles POST /polls/{id}/vote
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// An empty voter_username is an anonymous vote; those always add a new
	// record and are never deduplicated.
	stats, err := h.svc.CastVote(pollID, req.Option, req.VoterUsername)
	if err != nil {
		writeDomainError(w, err, "failed to record vote")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		Success: true,
		Message: "Vote recorded successfully",
		Votes:   stats,
	})
}

// ResetVotes handles POST /polls/{id}/reset-votes
//
// No creator check happens here or in the service; the UI restricts the
// control to the poll's creator but the endpoint accepts any caller.
func (h *VotingHandler) ResetVotes(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	stats, err := h.svc.ResetVotes(pollID)
	if err != nil {
		writeDomainError(w, err, "failed to reset votes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResetVotesResponse{
		Message: "Votes reset successfully",
		Votes:   stats,
	})
}
