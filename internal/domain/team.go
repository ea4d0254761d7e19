package domain

import "time"

type TeamStatus string

const (
	TeamStatusOpen   TeamStatus = "open"
	TeamStatusFull   TeamStatus = "full"
	TeamStatusClosed TeamStatus = "closed"
)

func (s TeamStatus) Valid() bool {
	switch s {
	case TeamStatusOpen, TeamStatusFull, TeamStatusClosed:
		return true
	}

	return false
}

type Team struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	IdeaID      *uint           `json:"idea_id"`
	LeaderID    uint            `json:"leader_id"`
	InviteCode  string          `json:"invite_code,omitempty"`
	MemberCount int             `json:"member_count"`
	MaxMembers  int             `json:"max_members"`
	Status      TeamStatus      `json:"status"`
	VoteCount   int             `json:"vote_count"`
	HasVoted    bool            `json:"has_voted"`
	Members     []HackathonUser `json:"members,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TeamGuard is checked against the locked team row before a change is
// written. Returning an error aborts the change.
type TeamGuard func(team Team) error

type TeamUpdate struct {
	Name        *string
	Description *string
	IdeaID      *uint
	ClearIdea   bool
	MaxMembers  *int
	Status      *TeamStatus
}

// TeamLeaveResult tells the caller what happened to the team after a member left.
type TeamLeaveResult struct {
	Team      Team `json:"team"`
	Disbanded bool `json:"disbanded"`
	NewLeader uint `json:"new_leader,omitempty"`
}

// BanOutcome tells the caller which team, if any, a newly banned user was taken out of.
type BanOutcome struct {
	TeamID *uint
	Leave  TeamLeaveResult
}
