package domain

import "time"

type VoteTarget string

const (
	VoteTargetIdea       VoteTarget = "idea"
	VoteTargetTeam       VoteTarget = "team"
	VoteTargetSuggestion VoteTarget = "suggestion"
)

type Vote struct {
	ID         uint       `json:"id"`
	UserID     uint       `json:"user_id"`
	TargetType VoteTarget `json:"target_type"`
	TargetID   uint       `json:"target_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

// VoteResult is the state after a vote toggle.
type VoteResult struct {
	TargetType VoteTarget `json:"target_type"`
	TargetID   uint       `json:"target_id"`
	Voted      bool       `json:"voted"`
	VoteCount  int        `json:"vote_count"`
}
