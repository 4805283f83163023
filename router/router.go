// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pollcast/handlers"
	"pollcast/hub"
	"pollcast/middleware"
	"pollcast/service"
)

func NewRouter(db *sql.DB, svc *service.Service, h *hub.Hub, reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(db, svc)
	votingHandler := handlers.NewVotingHandler(db, svc)
	userHandler := handlers.NewUserHandler(db, svc)
	wsHandler := handlers.NewWSHandler(h)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll management
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls", middleware.WithLogging(pollHandler.ListPolls))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("DELETE /polls/{id}", middleware.WithLogging(pollHandler.DeletePoll))
	mux.HandleFunc("GET /polls/{id}/voters", middleware.WithLogging(pollHandler.GetVoters))

	// Voting operations
	mux.HandleFunc("POST /polls/{id}/vote", middleware.WithLogging(votingHandler.Vote))
	mux.HandleFunc("POST /polls/{id}/reset-votes", middleware.WithLogging(votingHandler.ResetVotes))

	// User likes and profiles
	mux.HandleFunc("POST /users/like", middleware.WithLogging(userHandler.LikeUser))
	mux.HandleFunc("DELETE /users/like", middleware.WithLogging(userHandler.UnlikeUser))
	mux.HandleFunc("GET /users/{username}/profile", middleware.WithLogging(userHandler.GetProfile))
	mux.HandleFunc("GET /users/{username}/likes", middleware.WithLogging(userHandler.GetLikes))
	mux.HandleFunc("GET /users/{username}/likes-given", middleware.WithLogging(userHandler.GetLikesGiven))

	// Live updates
	mux.HandleFunc("GET /ws", wsHandler.Connect)

	// Metrics
	if reg != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Pollcast API v1"})
	})

	return mux
}
