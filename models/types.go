package models

import "time"

// Option index bounds for a poll
const (
	MinOptions = 2
	MaxOptions = 4
)

// Validation length limits
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 500
	MaxOptionLen      = 100
)

// Request types

type CreatePollRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Option1         string `json:"option1"`
	Option2         string `json:"option2"`
	Option3         string `json:"option3"`
	Option4         string `json:"option4"`
	CreatorUsername string `json:"creator_username"`
}

type VoteRequest struct {
	Option        int    `json:"option"` // 1, 2, 3, or 4
	VoterUsername string `json:"voter_username"`
}

type UserLikeRequest struct {
	LikerUsername string `json:"liker_username"`
	LikedUsername string `json:"liked_username"`
	PollID        string `json:"poll_id"` // optional context carried into the broadcast
}

// Response types

type PollListResponse struct {
	Polls []Poll `json:"polls"`
}

type VoteResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Votes   VoteStats `json:"votes"`
}

type ResetVotesResponse struct {
	Message string    `json:"message"`
	Votes   VoteStats `json:"votes"`
}

type DeletePollResponse struct {
	Message string `json:"message"`
}

type UserLikeResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	IsLiked    bool   `json:"is_liked"`
	LikesCount int    `json:"likes_count"`
}

type UserProfileResponse struct {
	Username      string `json:"username"`
	LikesReceived int    `json:"likes_received"`
	PollsCreated  int    `json:"polls_created"`
	TotalVotes    int    `json:"total_votes"`
}

type UserLikesResponse struct {
	Username   string `json:"username"`
	LikesCount int    `json:"likes_count"`
}

type LikedUsersResponse struct {
	Username   string   `json:"username"`
	LikedUsers []string `json:"liked_users"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

// VoteStats is the tally vector for a poll. Slots for absent options stay zero.
type VoteStats struct {
	Option1 int `json:"option1"`
	Option2 int `json:"option2"`
	Option3 int `json:"option3"`
	Option4 int `json:"option4"`
}

// Total is the sum of all four tally slots.
func (v VoteStats) Total() int {
	return v.Option1 + v.Option2 + v.Option3 + v.Option4
}

// Count returns the tally for a 1-based option index.
func (v VoteStats) Count(option int) int {
	switch option {
	case 1:
		return v.Option1
	case 2:
		return v.Option2
	case 3:
		return v.Option3
	case 4:
		return v.Option4
	}
	return 0
}

type Poll struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	Option1         string    `json:"option1"`
	Option2         string    `json:"option2"`
	Option3         *string   `json:"option3"`
	Option4         *string   `json:"option4"`
	CreatorUsername *string   `json:"creator_username"`
	Votes           VoteStats `json:"votes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// OptionLabel returns the label at a 1-based index, or "" if the slot is not
// configured.
func (p Poll) OptionLabel(option int) string {
	switch option {
	case 1:
		return p.Option1
	case 2:
		return p.Option2
	case 3:
		if p.Option3 != nil {
			return *p.Option3
		}
	case 4:
		if p.Option4 != nil {
			return *p.Option4
		}
	}
	return ""
}

// HasOption reports whether the poll has a configured option at the given
// 1-based index. A tally slot exists iff the corresponding label exists.
func (p Poll) HasOption(option int) bool {
	return option >= 1 && option <= MaxOptions && p.OptionLabel(option) != ""
}

// VoterInfo is one entry in a poll's attribution list. Username is nil for
// anonymous votes.
type VoterInfo struct {
	Username *string   `json:"username"`
	VotedAt  time.Time `json:"voted_at"`
}

// PollVoters groups a poll's voters by option, each list ordered by vote time
// ascending.
type PollVoters struct {
	PollID        string      `json:"poll_id"`
	Option1Voters []VoterInfo `json:"option1_voters"`
	Option2Voters []VoterInfo `json:"option2_voters"`
	Option3Voters []VoterInfo `json:"option3_voters"`
	Option4Voters []VoterInfo `json:"option4_voters"`
}
