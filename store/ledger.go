// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pollcast/models"
)

// Ledger records vote attribution (which identity voted for what, and when)
// and like edges between users. Mutations run inside the Mutation Service's
// transaction so they commit or roll back together with the tally adjustment.
type Ledger struct {
	db *sql.DB
}

func NewLedger(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// VoteOutcome describes what RecordVote did to the voter's standing vote.
type VoteOutcome struct {
	// New is true when a fresh record was inserted (first identified vote,
	// or any anonymous vote).
	New bool
	// Moved is true when an identified voter's standing vote moved to a
	// different option. PrevOption holds the option it moved off.
	Moved      bool
	PrevOption int
}

// RecordVote applies the single-standing-vote rule. An identified voter's
// new vote supersedes their prior one: same option is a no-op, a different
// option moves the record. Anonymous votes (empty voter) always insert a new
// record and are never deduplicated.
func (l *Ledger) RecordVote(tx *sql.Tx, pollID string, option int, voter string) (VoteOutcome, error) {
	if voter == "" {
		if err := l.insertVote(tx, pollID, option, nil); err != nil {
			return VoteOutcome{}, err
		}
		return VoteOutcome{New: true}, nil
	}

	var recordID string
	var prevOption int
	err := tx.QueryRow(`
		SELECT id, option_index FROM vote
		WHERE poll_id = $1 AND voter_username = $2
	`, pollID, voter).Scan(&recordID, &prevOption)

	if err == sql.ErrNoRows {
		if err := l.insertVote(tx, pollID, option, &voter); err != nil {
			return VoteOutcome{}, err
		}
		return VoteOutcome{New: true}, nil
	}
	if err != nil {
		return VoteOutcome{}, fmt.Errorf("failed to query standing vote: %w", err)
	}

	if prevOption == option {
		// Standing vote already points at this option.
		return VoteOutcome{}, nil
	}

	// Move the standing vote: equivalent to removing the old record and
	// inserting a new one, so the voter keeps exactly one record.
	_, err = tx.Exec(`
		UPDATE vote
		SET option_index = $1, created_at = $2
		WHERE id = $3
	`, option, time.Now(), recordID)
	if err != nil {
		return VoteOutcome{}, fmt.Errorf("failed to move standing vote: %w", err)
	}
	return VoteOutcome{Moved: true, PrevOption: prevOption}, nil
}

func (l *Ledger) insertVote(tx *sql.Tx, pollID string, option int, voter *string) error {
	_, err := tx.Exec(`
		INSERT INTO vote (id, poll_id, option_index, voter_username, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), pollID, option, voter, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

// ClearVotes removes every vote record for a poll. Used by both reset-votes
// and poll deletion.
func (l *Ledger) ClearVotes(tx *sql.Tx, pollID string) error {
	if _, err := tx.Exec(`DELETE FROM vote WHERE poll_id = $1`, pollID); err != nil {
		return fmt.Errorf("failed to clear votes: %w", err)
	}
	return nil
}

// ClearPollContext drops the poll-id context from like edges that referenced
// a deleted poll. The edges themselves are poll-independent and survive.
func (l *Ledger) ClearPollContext(tx *sql.Tx, pollID string) error {
	if _, err := tx.Exec(`UPDATE user_like SET poll_id = NULL WHERE poll_id = $1`, pollID); err != nil {
		return fmt.Errorf("failed to clear like context: %w", err)
	}
	return nil
}

// VotersFor returns the poll's voters grouped by option, each list ordered by
// vote time ascending. Pure point-in-time read.
func (l *Ledger) VotersFor(pollID string) (models.PollVoters, error) {
	rows, err := l.db.Query(`
		SELECT option_index, voter_username, created_at
		FROM vote
		WHERE poll_id = $1
		ORDER BY created_at ASC
	`, pollID)
	if err != nil {
		return models.PollVoters{}, fmt.Errorf("failed to query voters: %w", err)
	}
	defer rows.Close()

	voters := models.PollVoters{
		PollID:        pollID,
		Option1Voters: []models.VoterInfo{},
		Option2Voters: []models.VoterInfo{},
		Option3Voters: []models.VoterInfo{},
		Option4Voters: []models.VoterInfo{},
	}
	for rows.Next() {
		var option int
		var info models.VoterInfo
		if err := rows.Scan(&option, &info.Username, &info.VotedAt); err != nil {
			return models.PollVoters{}, fmt.Errorf("failed to scan vote: %w", err)
		}
		switch option {
		case 1:
			voters.Option1Voters = append(voters.Option1Voters, info)
		case 2:
			voters.Option2Voters = append(voters.Option2Voters, info)
		case 3:
			voters.Option3Voters = append(voters.Option3Voters, info)
		case 4:
			voters.Option4Voters = append(voters.Option4Voters, info)
		}
	}
	return voters, rows.Err()
}

// ToggleLike flips the presence of the (liker, liked) edge and returns the
// resulting state. Returns ErrSelfLike when liker == liked, regardless of
// prior state. pollID is stored as informational context only.
func (l *Ledger) ToggleLike(tx *sql.Tx, liker, liked, pollID string) (bool, error) {
	if liker == "" {
		return false, &ValidationError{Field: "liker_username", Reason: "is required"}
	}
	if liked == "" {
		return false, &ValidationError{Field: "liked_username", Reason: "is required"}
	}
	if liker == liked {
		return false, ErrSelfLike
	}

	var exists bool
	err := tx.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM user_like
			WHERE liker_username = $1 AND liked_username = $2
		)
	`, liker, liked).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query like edge: %w", err)
	}

	if exists {
		if _, err := tx.Exec(`
			DELETE FROM user_like
			WHERE liker_username = $1 AND liked_username = $2
		`, liker, liked); err != nil {
			return false, fmt.Errorf("failed to remove like edge: %w", err)
		}
		return false, nil
	}

	if _, err := tx.Exec(`
		INSERT INTO user_like (liker_username, liked_username, poll_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, liker, liked, nullIfEmpty(pollID), time.Now()); err != nil {
		return false, fmt.Errorf("failed to insert like edge: %w", err)
	}
	return true, nil
}

// IsLiked reports whether liker currently likes liked.
func (l *Ledger) IsLiked(liker, liked string) (bool, error) {
	var exists bool
	err := l.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM user_like
			WHERE liker_username = $1 AND liked_username = $2
		)
	`, liker, liked).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query like edge: %w", err)
	}
	return exists, nil
}

// LikesReceivedCount returns how many users currently like the given user.
func (l *Ledger) LikesReceivedCount(username string) (int, error) {
	return l.count(`SELECT COUNT(*) FROM user_like WHERE liked_username = $1`, username)
}

// LikedSet returns every username the given user currently likes.
func (l *Ledger) LikedSet(username string) ([]string, error) {
	rows, err := l.db.Query(`
		SELECT liked_username FROM user_like
		WHERE liker_username = $1
		ORDER BY created_at ASC
	`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query liked set: %w", err)
	}
	defer rows.Close()

	liked := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan liked user: %w", err)
		}
		liked = append(liked, name)
	}
	return liked, rows.Err()
}

// VotesCastCount returns how many standing vote records carry the given
// voter identity, across all polls.
func (l *Ledger) VotesCastCount(username string) (int, error) {
	return l.count(`SELECT COUNT(*) FROM vote WHERE voter_username = $1`, username)
}

func (l *Ledger) count(query string, args ...any) (int, error) {
	var n int
	if err := l.db.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return n, nil
}
