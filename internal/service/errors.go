package service

import (
	"context"
	"errors"

	"github.com/vietanh2810/hackathon-api/internal/config"
	"github.com/vietanh2810/hackathon-api/internal/domain"
	"github.com/vietanh2810/hackathon-api/internal/repository"
)

var (
	ErrUserEmailExists       = repository.ErrUserEmailExists
	ErrUserNotFound          = repository.ErrUserNotFound
	ErrIdeaNotFound          = repository.ErrIdeaNotFound
	ErrTeamNotFound          = repository.ErrTeamNotFound
	ErrTeamNameExists        = repository.ErrTeamNameExists
	ErrTeamFull              = repository.ErrTeamFull
	ErrTeamClosed            = repository.ErrTeamClosed
	ErrAlreadyInTeam         = repository.ErrAlreadyInTeam
	ErrNotTeamMember         = repository.ErrNotTeamMember
	ErrCapacityBelowMembers  = repository.ErrCapacityBelowMembers
	ErrInvalidTeamTransition = repository.ErrInvalidTeamTransition
	ErrSuggestionNotFound    = repository.ErrSuggestionNotFound
	ErrAlreadyVoted          = repository.ErrAlreadyVoted

	ErrWrongPassword    = errors.New("wrong password")
	ErrBanned           = errors.New("user is banned")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidRole      = errors.New("invalid role")
	ErrSelfVote         = errors.New("cannot vote for your own entry")
	ErrIdeaHidden       = errors.New("idea is hidden")
	ErrNotParticipant   = errors.New("only participants can create teams")
	ErrCannotDemoteSelf = errors.New("admins cannot change their own role")
	ErrCannotKickSelf   = errors.New("use leave to remove yourself from a team")
	ErrInvalidStatus    = errors.New("invalid status")
)

// Metrics receives domain counters. A nil *metrics.Domain satisfies it.
type Metrics interface {
	UserSignedUp(role string)
	VoteToggled(target string, voted bool)
	TeamMembershipChanged(action string)
}

type nopMetrics struct{}

func (nopMetrics) UserSignedUp(string)          {}
func (nopMetrics) VoteToggled(string, bool)     {}
func (nopMetrics) TeamMembershipChanged(string) {}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, domain.EventType, any) {}

func orNopMetrics(m Metrics) Metrics {
	if m == nil {
		return nopMetrics{}
	}

	return m
}

func orNopPublisher(p domain.EventPublisher) domain.EventPublisher {
	if p == nil {
		return nopPublisher{}
	}

	return p
}

// RulesProvider returns the current hackathon limits.
type RulesProvider interface {
	Current() config.HackathonConfig
}

// requireActive rejects banned users from any mutation.
func requireActive(actor domain.HackathonUser) error {
	if actor.Banned {
		return ErrBanned
	}

	return nil
}
