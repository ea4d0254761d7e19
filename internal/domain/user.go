package domain

import "time"

type Role string

const (
	RoleParticipant Role = "participant"
	RoleMentor      Role = "mentor"
	RoleJudge       Role = "judge"
	RoleAdmin       Role = "admin"
)

// SelfSelectableRoles are the roles a user may pick at signup.
var SelfSelectableRoles = []Role{RoleParticipant, RoleMentor, RoleJudge}

func (r Role) Valid() bool {
	switch r {
	case RoleParticipant, RoleMentor, RoleJudge, RoleAdmin:
		return true
	}

	return false
}

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email,omitempty"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HackathonUser is a user's profile inside the event.
type HackathonUser struct {
	ID        uint       `json:"id"`
	UserID    uint       `json:"user_id"`
	User      User       `json:"user"`
	Role      Role       `json:"role"`
	TeamID    *uint      `json:"team_id"`
	Bio       string     `json:"bio"`
	Skills    []string   `json:"skills"`
	Banned    bool       `json:"banned,omitempty"`
	JoinedAt  *time.Time `json:"joined_team_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Public is the view other participants get: no email, no moderation state.
func (h HackathonUser) Public() HackathonUser {
	h.User.Email = ""
	h.Banned = false

	return h
}

func PublicProfiles(profiles []HackathonUser) []HackathonUser {
	if profiles == nil {
		return nil
	}

	out := make([]HackathonUser, len(profiles))
	for i, p := range profiles {
		out[i] = p.Public()
	}

	return out
}

func (h HackathonUser) IsAdmin() bool {
	return h.Role == RoleAdmin
}

func (h HackathonUser) InTeam() bool {
	return h.TeamID != nil
}

// UserFilter narrows ListUsers. Zero values mean "any".
type UserFilter struct {
	Role        Role
	WithoutTeam bool
}

type ProfileUpdate struct {
	Name   *string
	Bio    *string
	Skills []string
}
