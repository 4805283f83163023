// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store implements the Poll Store and the Attribution Ledger, the two
stateful components behind the Mutation Service.

# Poll Store

PollStore owns poll definitions and the authoritative tally vector:

	polls := store.NewPollStore(db)
	poll, err := polls.Create(req)          // validates, zero tally
	poll, err = polls.Get(id)               // ErrPollNotFound
	list, err := polls.List()               // newest first
	stats, err := polls.IncrementTally(tx, id, 2)

Tally invariants: counts never go negative, and a tally slot is live iff the
corresponding option label exists. IncrementTally rejects indexes without a
label with ErrInvalidOption.

# Attribution Ledger

Ledger records standing votes and like edges:

	ledger := store.NewLedger(db)
	outcome, err := ledger.RecordVote(tx, pollID, 2, "alice")
	voters, err := ledger.VotersFor(pollID)
	isLiked, err := ledger.ToggleLike(tx, "alice", "bob", "")

An identified voter holds at most one standing vote per poll; RecordVote
reports whether the record was new or moved off another option so the caller
can adjust tallies accordingly. Anonymous votes always append. Like edges are
toggleable and poll-independent; ToggleLike rejects liker == liked with
ErrSelfLike.

# Transactions

Methods that take *sql.Tx must run inside the Mutation Service's per-mutation
transaction: a moved standing vote and its tally adjustment commit or roll
back together. Read-only methods run directly against the pool.

# Errors

Sentinel errors for the domain taxonomy:

	ErrPollNotFound
	ErrInvalidOption
	ErrSelfLike

plus the typed *ValidationError for malformed create requests. All are
rejected before any state change.
*/
package store
