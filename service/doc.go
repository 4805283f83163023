// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package service implements the Mutation Service, the single write path into
the Poll Store and the Attribution Ledger.

# Operations

	svc := service.New(db, polls, ledger, hub, registry)

	poll, err := svc.CreatePoll(req)                       // poll_created
	stats, err := svc.CastVote(pollID, 2, "alice")         // vote_update
	err = svc.DeletePoll(pollID)                           // poll_deleted
	stats, err = svc.ResetVotes(pollID)                    // vote_update (zero)
	liked, n, err := svc.ToggleUserLike("alice", "bob", "") // like_toggle_update

Every mutation either fully applies and publishes exactly one event to the
injected Publisher, or fully fails with no state change and no event.

# Atomicity and Ordering

Mutations against the same poll are serialized by a per-poll mutex: the
read-increment-write of a tally vector never interleaves, so concurrent
voters cannot lose updates. Different polls proceed in parallel. Within a
mutation, ledger and store writes share one SQL transaction - a moved
standing vote and its tally adjustments commit or roll back together.

Events for the same poll are published in the order the mutations were
applied (the per-poll lock is held across commit and publish). Publishing is
fire-and-forget: a slow observer cannot roll back or delay a committed
mutation.

# Authorization

None. Usernames are self-asserted strings. ResetVotes in particular performs
no creator check; the presentation layer hides the control from non-creators
but the server accepts any caller.
*/
package service
