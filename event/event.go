// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package event

import (
	"encoding/json"

	"pollcast/models"
)

// Type tags a domain event on the wire.
type Type string

const (
	TypeVoteUpdate       Type = "vote_update"
	TypePollCreated      Type = "poll_created"
	TypePollDeleted      Type = "poll_deleted"
	TypeLikeToggleUpdate Type = "like_toggle_update"
)

// Event is a domain event broadcast after a successful mutation. The set of
// variants is closed: VoteUpdate, PollCreated, PollDeleted, and
// LikeToggleUpdate. Each event carries the full resulting state for its
// scope, so observers can apply it without reconciling prior state.
type Event interface {
	EventType() Type
	// PollID is the affected poll, or "" when the event has no poll context.
	PollID() string

	payload() any
}

// VoteUpdate carries the full post-mutation tally vector for a poll. Emitted
// on every vote and on vote reset (with a zero vector).
type VoteUpdate struct {
	Poll  string
	Votes models.VoteStats
}

func (e VoteUpdate) EventType() Type { return TypeVoteUpdate }
func (e VoteUpdate) PollID() string  { return e.Poll }
func (e VoteUpdate) payload() any {
	return struct {
		Votes models.VoteStats `json:"votes"`
	}{Votes: e.Votes}
}

// PollCreated carries the newly created poll, tallies included.
type PollCreated struct {
	Poll models.Poll
}

func (e PollCreated) EventType() Type { return TypePollCreated }
func (e PollCreated) PollID() string  { return e.Poll.ID }
func (e PollCreated) payload() any    { return e.Poll }

// PollDeleted announces that a poll and all its attribution records are gone.
type PollDeleted struct {
	Poll string
}

func (e PollDeleted) EventType() Type { return TypePollDeleted }
func (e PollDeleted) PollID() string  { return e.Poll }
func (e PollDeleted) payload() any {
	return struct {
		PollID string `json:"poll_id"`
	}{PollID: e.Poll}
}

// LikeToggleUpdate carries the resulting state of a like toggle: the edge's
// new presence and the liked user's new received count. Poll is the optional
// context the client supplied, informational only.
type LikeToggleUpdate struct {
	Poll          string
	LikerUsername string
	LikedUsername string
	IsLiked       bool
	LikesCount    int
}

func (e LikeToggleUpdate) EventType() Type { return TypeLikeToggleUpdate }
func (e LikeToggleUpdate) PollID() string  { return e.Poll }
func (e LikeToggleUpdate) payload() any {
	return struct {
		LikerUsername string `json:"liker_username"`
		LikedUsername string `json:"liked_username"`
		IsLiked       bool   `json:"is_liked"`
		LikesCount    int    `json:"likes_count"`
	}{
		LikerUsername: e.LikerUsername,
		LikedUsername: e.LikedUsername,
		IsLiked:       e.IsLiked,
		LikesCount:    e.LikesCount,
	}
}

// Envelope is the wire format shared by all event kinds.
type Envelope struct {
	Type   Type            `json:"type"`
	PollID string          `json:"poll_id"`
	Data   json.RawMessage `json:"data"`
}

// Marshal encodes an event into its wire envelope.
func Marshal(e Event) ([]byte, error) {
	data, err := json.Marshal(e.payload())
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{
		Type:   e.EventType(),
		PollID: e.PollID(),
		Data:   data,
	})
}
