// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"pollcast/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx, so reads can run inside
// or outside a mutation's transaction.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// PollStore owns poll definitions and the authoritative tally vectors. It is
// the single source of truth for poll state; tallies are mutated only through
// IncrementTally, DecrementTally, and ResetTallies.
type PollStore struct {
	db *sql.DB
}

func NewPollStore(db *sql.DB) *PollStore {
	return &PollStore{db: db}
}

const pollColumns = `id, title, description, option1, option2, option3, option4,
       creator_username, votes1, votes2, votes3, votes4, created_at, updated_at`

// Create validates the request and inserts a new poll with a zero tally
// vector. Returns a *ValidationError before any state change if a constraint
// is violated.
func (s *PollStore) Create(req models.CreatePollRequest) (models.Poll, error) {
	if err := validateCreate(req); err != nil {
		return models.Poll{}, err
	}

	now := time.Now()
	poll := models.Poll{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Description:     nullIfEmpty(req.Description),
		Option1:         req.Option1,
		Option2:         req.Option2,
		Option3:         nullIfEmpty(req.Option3),
		Option4:         nullIfEmpty(req.Option4),
		CreatorUsername: nullIfEmpty(req.CreatorUsername),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err := s.db.Exec(`
		INSERT INTO poll (id, title, description, option1, option2, option3, option4,
		                  creator_username, votes1, votes2, votes3, votes4, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, 0, 0, 0, $9, $10)
	`, poll.ID, poll.Title, poll.Description, poll.Option1, poll.Option2,
		poll.Option3, poll.Option4, poll.CreatorUsername, poll.CreatedAt, poll.UpdatedAt)

	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to insert poll: %w", err)
	}

	return poll, nil
}

func validateCreate(req models.CreatePollRequest) error {
	if n := utf8.RuneCountInString(req.Title); n < 1 || n > models.MaxTitleLen {
		return &ValidationError{Field: "title", Reason: fmt.Sprintf("must be 1-%d characters", models.MaxTitleLen)}
	}
	if utf8.RuneCountInString(req.Description) > models.MaxDescriptionLen {
		return &ValidationError{Field: "description", Reason: fmt.Sprintf("must be at most %d characters", models.MaxDescriptionLen)}
	}
	if req.Option1 == "" {
		return &ValidationError{Field: "option1", Reason: "is required"}
	}
	if req.Option2 == "" {
		return &ValidationError{Field: "option2", Reason: "is required"}
	}
	options := []struct {
		field string
		label string
	}{
		{"option1", req.Option1},
		{"option2", req.Option2},
		{"option3", req.Option3},
		{"option4", req.Option4},
	}
	for _, opt := range options {
		if utf8.RuneCountInString(opt.label) > models.MaxOptionLen {
			return &ValidationError{Field: opt.field, Reason: fmt.Sprintf("must be at most %d characters", models.MaxOptionLen)}
		}
	}
	return nil
}

// Get returns a poll by ID, or ErrPollNotFound.
func (s *PollStore) Get(id string) (models.Poll, error) {
	return s.get(s.db, id)
}

// GetTx is Get inside a mutation's transaction.
func (s *PollStore) GetTx(tx *sql.Tx, id string) (models.Poll, error) {
	return s.get(tx, id)
}

func (s *PollStore) get(q querier, id string) (models.Poll, error) {
	var poll models.Poll
	err := q.QueryRow(`
		SELECT `+pollColumns+`
		FROM poll
		WHERE id = $1
	`, id).Scan(
		&poll.ID, &poll.Title, &poll.Description, &poll.Option1, &poll.Option2,
		&poll.Option3, &poll.Option4, &poll.CreatorUsername,
		&poll.Votes.Option1, &poll.Votes.Option2, &poll.Votes.Option3, &poll.Votes.Option4,
		&poll.CreatedAt, &poll.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Poll{}, ErrPollNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}
	return poll, nil
}

// List returns all polls, newest first.
func (s *PollStore) List() ([]models.Poll, error) {
	rows, err := s.db.Query(`
		SELECT ` + pollColumns + `
		FROM poll
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		var poll models.Poll
		if err := rows.Scan(
			&poll.ID, &poll.Title, &poll.Description, &poll.Option1, &poll.Option2,
			&poll.Option3, &poll.Option4, &poll.CreatorUsername,
			&poll.Votes.Option1, &poll.Votes.Option2, &poll.Votes.Option3, &poll.Votes.Option4,
			&poll.CreatedAt, &poll.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, poll)
	}
	return polls, rows.Err()
}

// Delete removes the poll row, or returns ErrPollNotFound. Cascade removal of
// the poll's vote records and like context happens in the same transaction via
// the Ledger.
func (s *PollStore) Delete(tx *sql.Tx, id string) error {
	res, err := tx.Exec(`DELETE FROM poll WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrPollNotFound
	}
	return nil
}

// IncrementTally adds one to the tally slot for a configured option and
// returns the updated tally vector. Returns ErrInvalidOption if the poll has
// no label at that index.
func (s *PollStore) IncrementTally(tx *sql.Tx, id string, option int) (models.VoteStats, error) {
	return s.adjustTally(tx, id, option, +1)
}

// DecrementTally removes one from a tally slot. The caller uses this when a
// standing vote moves off an option; the slot never goes below zero.
func (s *PollStore) DecrementTally(tx *sql.Tx, id string, option int) (models.VoteStats, error) {
	return s.adjustTally(tx, id, option, -1)
}

func (s *PollStore) adjustTally(tx *sql.Tx, id string, option int, delta int) (models.VoteStats, error) {
	poll, err := s.get(tx, id)
	if err != nil {
		return models.VoteStats{}, err
	}
	if !poll.HasOption(option) {
		return models.VoteStats{}, ErrInvalidOption
	}
	if delta < 0 && poll.Votes.Count(option) == 0 {
		return models.VoteStats{}, fmt.Errorf("tally for option %d of poll %s already zero", option, id)
	}

	// option is validated to 1..4 above, so the column name is closed over
	// a fixed set.
	col := fmt.Sprintf("votes%d", option)
	_, err = tx.Exec(fmt.Sprintf(`
		UPDATE poll
		SET %s = %s + $1, updated_at = $2
		WHERE id = $3
	`, col, col), delta, time.Now(), id)
	if err != nil {
		return models.VoteStats{}, fmt.Errorf("failed to update tally: %w", err)
	}

	updated, err := s.get(tx, id)
	if err != nil {
		return models.VoteStats{}, err
	}
	return updated.Votes, nil
}

// ResetTallies zeroes every tally slot and returns the zero vector. Returns
// ErrPollNotFound if the poll does not exist.
func (s *PollStore) ResetTallies(tx *sql.Tx, id string) (models.VoteStats, error) {
	res, err := tx.Exec(`
		UPDATE poll
		SET votes1 = 0, votes2 = 0, votes3 = 0, votes4 = 0, updated_at = $1
		WHERE id = $2
	`, time.Now(), id)
	if err != nil {
		return models.VoteStats{}, fmt.Errorf("failed to reset tallies: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.VoteStats{}, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return models.VoteStats{}, ErrPollNotFound
	}
	return models.VoteStats{}, nil
}

// CountByCreator returns how many polls a user has created.
func (s *PollStore) CountByCreator(username string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM poll WHERE creator_username = $1
	`, username).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count polls: %w", err)
	}
	return count, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
