// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Pollcast API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, svc, h, reg)

# Endpoints

Health:

	GET /health

Poll management:

	POST   /polls              - Create poll
	GET    /polls              - List polls
	GET    /polls/{id}         - Get poll with tallies
	DELETE /polls/{id}         - Delete poll
	GET    /polls/{id}/voters  - Per-option voter lists

Voting:

	POST /polls/{id}/vote        - Cast or move a vote
	POST /polls/{id}/reset-votes - Zero tallies and clear vote records

User likes and profiles:

	POST   /users/like                   - Toggle a like edge
	DELETE /users/like                   - Remove a like edge if present
	GET    /users/{username}/profile     - Aggregate counts
	GET    /users/{username}/likes       - Likes received count
	GET    /users/{username}/likes-given - Users {username} likes

Live updates:

	GET /ws - WebSocket event stream

Observability:

	GET /metrics - Prometheus metrics (when a registry is supplied)

# Handler Initialization

The router creates handler instances with dependency injection:

	pollHandler := handlers.NewPollHandler(db, svc)
	votingHandler := handlers.NewVotingHandler(db, svc)
	userHandler := handlers.NewUserHandler(db, svc)
	wsHandler := handlers.NewWSHandler(h)

Mutating handlers go through the service; read-only handlers query the
stores directly. The WebSocket handler only needs the hub.
*/
package router
