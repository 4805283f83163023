// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"database/sql"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"pollcast/event"
	"pollcast/models"
	"pollcast/store"
)

// Publisher receives one domain event per successful mutation. The broadcast
// hub implements it; tests substitute a recorder.
type Publisher interface {
	Publish(event.Event)
}

// Service is the only writer of the Poll Store and the Attribution Ledger.
// Every mutation is atomic across both (per-poll lock plus one SQL
// transaction) and emits exactly one domain event on success, none on
// failure.
type Service struct {
	db     *sql.DB
	polls  *store.PollStore
	ledger *store.Ledger
	pub    Publisher

	// pollMu serializes mutations per poll id; mutations on different polls
	// run in parallel. likeMu serializes like toggles, which are not scoped
	// to a poll.
	pollMu pollLocks
	likeMu sync.Mutex

	mutations *prometheus.CounterVec
}

func New(db *sql.DB, polls *store.PollStore, ledger *store.Ledger, pub Publisher, reg prometheus.Registerer) *Service {
	s := &Service{
		db:     db,
		polls:  polls,
		ledger: ledger,
		pub:    pub,
	}
	s.pollMu.locks = make(map[string]*sync.Mutex)
	s.mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pollcast_mutations_total",
			Help: "Number of successfully applied mutations by operation",
		},
		[]string{"op"},
	)
	if reg != nil {
		reg.MustRegister(s.mutations)
	}
	return s
}

// pollLocks hands out one mutex per poll id. Entries are kept for the
// process lifetime; a stale entry after poll deletion is harmless.
type pollLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *pollLocks) lock(pollID string) func() {
	l.mu.Lock()
	m, ok := l.locks[pollID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[pollID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// CreatePoll validates and stores a new poll, then emits poll_created.
func (s *Service) CreatePoll(req models.CreatePollRequest) (models.Poll, error) {
	poll, err := s.polls.Create(req)
	if err != nil {
		return models.Poll{}, err
	}

	s.mutations.WithLabelValues("create_poll").Inc()
	slog.Info("poll created", "poll_id", poll.ID, "creator", req.CreatorUsername)
	s.pub.Publish(event.PollCreated{Poll: poll})
	return poll, nil
}

// CastVote records a vote and returns the full post-mutation tally vector.
// An identified voter's prior standing vote on a different option is moved:
// old slot decremented, new slot incremented, net record count unchanged.
// Anonymous votes always add a record. Emits vote_update.
func (s *Service) CastVote(pollID string, option int, voter string) (models.VoteStats, error) {
	unlock := s.pollMu.lock(pollID)
	defer unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return models.VoteStats{}, err
	}
	defer tx.Rollback()

	poll, err := s.polls.GetTx(tx, pollID)
	if err != nil {
		return models.VoteStats{}, err
	}
	if !poll.HasOption(option) {
		return models.VoteStats{}, store.ErrInvalidOption
	}

	outcome, err := s.ledger.RecordVote(tx, pollID, option, voter)
	if err != nil {
		return models.VoteStats{}, err
	}

	stats := poll.Votes
	switch {
	case outcome.New:
		stats, err = s.polls.IncrementTally(tx, pollID, option)
	case outcome.Moved:
		if _, err = s.polls.DecrementTally(tx, pollID, outcome.PrevOption); err == nil {
			stats, err = s.polls.IncrementTally(tx, pollID, option)
		}
	}
	if err != nil {
		return models.VoteStats{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.VoteStats{}, err
	}

	s.mutations.WithLabelValues("cast_vote").Inc()
	slog.Info("vote recorded", "poll_id", pollID, "option", option,
		"voter", voter, "moved", outcome.Moved)
	s.pub.Publish(event.VoteUpdate{Poll: pollID, Votes: stats})
	return stats, nil
}

// DeletePoll removes the poll, cascades to its vote records, drops the
// poll-id context from like edges, and emits poll_deleted.
func (s *Service) DeletePoll(pollID string) error {
	unlock := s.pollMu.lock(pollID)
	defer unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.ledger.ClearVotes(tx, pollID); err != nil {
		return err
	}
	if err := s.ledger.ClearPollContext(tx, pollID); err != nil {
		return err
	}
	if err := s.polls.Delete(tx, pollID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.mutations.WithLabelValues("delete_poll").Inc()
	slog.Info("poll deleted", "poll_id", pollID)
	s.pub.Publish(event.PollDeleted{Poll: pollID})
	return nil
}

// ResetVotes zeroes the poll's tallies, clears all its vote records, and
// emits vote_update with the zero vector. The caller's identity is not
// checked against the poll's creator; the UI restricts the action, the
// server does not.
func (s *Service) ResetVotes(pollID string) (models.VoteStats, error) {
	unlock := s.pollMu.lock(pollID)
	defer unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return models.VoteStats{}, err
	}
	defer tx.Rollback()

	stats, err := s.polls.ResetTallies(tx, pollID)
	if err != nil {
		return models.VoteStats{}, err
	}
	if err := s.ledger.ClearVotes(tx, pollID); err != nil {
		return models.VoteStats{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.VoteStats{}, err
	}

	s.mutations.WithLabelValues("reset_votes").Inc()
	slog.Info("votes reset", "poll_id", pollID)
	s.pub.Publish(event.VoteUpdate{Poll: pollID, Votes: stats})
	return stats, nil
}

// ToggleUserLike flips the (liker, liked) edge and emits like_toggle_update
// with the resulting state and the liked user's new received count.
func (s *Service) ToggleUserLike(liker, liked, pollID string) (isLiked bool, likesCount int, err error) {
	s.likeMu.Lock()
	defer s.likeMu.Unlock()
	return s.toggleLikeLocked(liker, liked, pollID)
}

// UnlikeUser removes the (liker, liked) edge if present. A missing edge is a
// no-op: no state change and no event, just the current state.
func (s *Service) UnlikeUser(liker, liked, pollID string) (isLiked bool, likesCount int, err error) {
	s.likeMu.Lock()
	defer s.likeMu.Unlock()

	exists, err := s.ledger.IsLiked(liker, liked)
	if err != nil {
		return false, 0, err
	}
	if !exists {
		count, err := s.ledger.LikesReceivedCount(liked)
		if err != nil {
			return false, 0, err
		}
		return false, count, nil
	}
	return s.toggleLikeLocked(liker, liked, pollID)
}

func (s *Service) toggleLikeLocked(liker, liked, pollID string) (bool, int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback()

	isLiked, err := s.ledger.ToggleLike(tx, liker, liked, pollID)
	if err != nil {
		return false, 0, err
	}
	if err := tx.Commit(); err != nil {
		return false, 0, err
	}

	count, err := s.ledger.LikesReceivedCount(liked)
	if err != nil {
		return false, 0, err
	}

	s.mutations.WithLabelValues("toggle_like").Inc()
	slog.Info("like toggled", "liker", liker, "liked", liked, "is_liked", isLiked)
	s.pub.Publish(event.LikeToggleUpdate{
		Poll:          pollID,
		LikerUsername: liker,
		LikedUsername: liked,
		IsLiked:       isLiked,
		LikesCount:    count,
	})
	return isLiked, count, nil
}
