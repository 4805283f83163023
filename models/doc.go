// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, description, option1..option4, creator_username
  - VoteRequest: option (1-4), voter_username (empty = anonymous)
  - UserLikeRequest: liker_username, liked_username, poll_id (optional)

# Response Types

Types for JSON responses:

  - PollListResponse: polls
  - VoteResponse: success, message, votes
  - ResetVotesResponse: message, votes
  - DeletePollResponse: message
  - UserLikeResponse: success, message, is_liked, likes_count
  - UserProfileResponse: username, likes_received, polls_created, total_votes
  - UserLikesResponse: username, likes_count
  - LikedUsersResponse: username, liked_users
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Poll: poll definition plus its live tally vector
  - VoteStats: per-option vote counts (option1..option4)
  - VoterInfo: one attribution entry (username may be nil for anonymous)
  - PollVoters: voters grouped by option, ordered by vote time

# Constants

Option bounds and length limits:

	MinOptions = 2
	MaxOptions = 4
	MaxTitleLen = 200
	MaxDescriptionLen = 500
	MaxOptionLen = 100
*/
package models
