// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the pollcast API.

# Handler Types

Each handler is a struct with its dependencies injected via constructor:

  - PollHandler: poll lifecycle and point-in-time reads
  - VotingHandler: vote casting and vote reset
  - UserHandler: like toggling and user profile reads
  - WSHandler: the live event stream

Mutating endpoints go through the Mutation Service; read endpoints query the
Poll Store and Attribution Ledger directly:

	pollHandler := handlers.NewPollHandler(db, svc)
	wsHandler := handlers.NewWSHandler(hubInstance)

# Poll Endpoints

	POST   /polls                   → CreatePoll
	GET    /polls                   → ListPolls
	GET    /polls/{id}              → GetPoll
	DELETE /polls/{id}              → DeletePoll
	GET    /polls/{id}/voters       → GetVoters
	POST   /polls/{id}/vote         → Vote
	POST   /polls/{id}/reset-votes  → ResetVotes

# User Endpoints

	POST   /users/like                     → LikeUser (toggle)
	DELETE /users/like                     → UnlikeUser
	GET    /users/{username}/profile       → GetProfile
	GET    /users/{username}/likes         → GetLikes
	GET    /users/{username}/likes-given   → GetLikesGiven

# Event Stream

	GET /ws → Connect

Observers receive one event per successful mutation, in emission order per
poll. Delivery is best-effort; clients re-fetch via the read endpoints after
a reconnect instead of assuming nothing was missed.

# Error Mapping

Domain errors map to HTTP statuses in one place (writeDomainError):
validation, invalid option, and self-like → 400; missing poll → 404;
anything else → 500.
*/
package handlers
