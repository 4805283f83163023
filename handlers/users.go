// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"net/http"

	"pollcast/middleware"
	"pollcast/models"
	"pollcast/service"
	"pollcast/store"
)

type UserHandler struct {
	polls  *store.PollStore
	ledger *store.Ledger
	svc    *service.Service
}

func NewUserHandler(db *sql.DB, svc *service.Service) *UserHandler {
	return &UserHandler{
		polls:  store.NewPollStore(db),
		ledger: store.NewLedger(db),
		svc:    svc,
	}
}

// LikeUser handles POST /users/like
//
// The like relation is a toggle, not a counter: liking an already-liked user
// removes the edge. The response carries the resulting state either way.
func (h *UserHandler) LikeUser(w http.ResponseWriter, r *http.Request) {
	var req models.UserLikeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	isLiked, count, err := h.svc.ToggleUserLike(req.LikerUsername, req.LikedUsername, req.PollID)
	if err != nil {
		writeDomainError(w, err, "failed to toggle like")
		return
	}

	message := fmt.Sprintf("You liked %s!", req.LikedUsername)
	if !isLiked {
		message = fmt.Sprintf("You unliked %s!", req.LikedUsername)
	}

	middleware.JSONResponse(w, http.StatusOK, models.UserLikeResponse{
		Success:    true,
		Message:    message,
		IsLiked:    isLiked,
		LikesCount: count,
	})
}

// UnlikeUser handles DELETE /users/like
//
// Removing an absent edge is a no-op, not an error: the response just
// reports the current state.
func (h *UserHandler) UnlikeUser(w http.ResponseWriter, r *http.Request) {
	var req models.UserLikeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	isLiked, count, err := h.svc.UnlikeUser(req.LikerUsername, req.LikedUsername, req.PollID)
	if err != nil {
		writeDomainError(w, err, "failed to remove like")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UserLikeResponse{
		Success:    true,
		Message:    fmt.Sprintf("You unliked %s!", req.LikedUsername),
		IsLiked:    isLiked,
		LikesCount: count,
	})
}

// GetProfile handles GET /users/{username}/profile
//
// The profile is a pure projection over current state, nothing is stored.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}

	likesReceived, err := h.ledger.LikesReceivedCount(username)
	if err != nil {
		writeDomainError(w, err, "failed to count likes")
		return
	}
	pollsCreated, err := h.polls.CountByCreator(username)
	if err != nil {
		writeDomainError(w, err, "failed to count polls")
		return
	}
	totalVotes, err := h.ledger.VotesCastCount(username)
	if err != nil {
		writeDomainError(w, err, "failed to count votes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UserProfileResponse{
		Username:      username,
		LikesReceived: likesReceived,
		PollsCreated:  pollsCreated,
		TotalVotes:    totalVotes,
	})
}

// GetLikes handles GET /users/{username}/likes
func (h *UserHandler) GetLikes(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}

	count, err := h.ledger.LikesReceivedCount(username)
	if err != nil {
		writeDomainError(w, err, "failed to count likes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UserLikesResponse{
		Username:   username,
		LikesCount: count,
	})
}

// GetLikesGiven handles GET /users/{username}/likes-given
func (h *UserHandler) GetLikesGiven(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}

	liked, err := h.ledger.LikedSet(username)
	if err != nil {
		writeDomainError(w, err, "failed to query liked users")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LikedUsersResponse{
		Username:   username,
		LikedUsers: liked,
	})
}
