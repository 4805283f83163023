// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package event defines the domain events broadcast to live observers.

Every successful mutation produces exactly one event. The variants form a
closed set, each with a fixed, fully-typed payload:

  - VoteUpdate: vote cast or votes reset; carries the full tally vector
  - PollCreated: new poll, tallies included
  - PollDeleted: poll removed along with its vote and like records
  - LikeToggleUpdate: like edge flipped; carries resulting state and count

# Wire Format

Events are serialized into a common envelope:

	{"type": "vote_update", "poll_id": "...", "data": {"votes": {...}}}

Marshal produces the envelope bytes handed to the broadcast hub:

	msg, err := event.Marshal(event.VoteUpdate{Poll: id, Votes: stats})

Events carry full resulting state for their scope, never deltas, so an
observer can apply one without reconciling what it may have missed.
*/
package event
