package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vietanh2810/hackathon-api/internal/domain"
)

type TeamRepository interface {
	Create(ctx context.Context, team domain.Team) (domain.Team, error)
	FindByID(ctx context.Context, id uint, withMembers bool) (domain.Team, error)
	List(ctx context.Context, status domain.TeamStatus) ([]domain.Team, error)
	Join(ctx context.Context, teamID, userID uint, inviteCode string) (domain.Team, error)
	RemoveMember(ctx context.Context, teamID, userID uint, guard domain.TeamGuard) (domain.TeamLeaveResult, error)
	Update(ctx context.Context, teamID uint, update domain.TeamUpdate, guard domain.TeamGuard) (domain.Team, error)
	SetInviteCode(ctx context.Context, teamID uint, code string, guard domain.TeamGuard) error
	Delete(ctx context.Context, teamID uint, guard domain.TeamGuard) error
	CountByStatus(ctx context.Context) (map[domain.TeamStatus]int64, error)
}

type IdeaFinder interface {
	FindByID(ctx context.Context, id uint) (domain.Idea, error)
}

type TeamService struct {
	repo    TeamRepository
	ideas   IdeaFinder
	votes   VoteRepository
	rules   RulesProvider
	events  domain.EventPublisher
	metrics Metrics
}

func NewTeamService(
	repo TeamRepository,
	ideas IdeaFinder,
	votes VoteRepository,
	rules RulesProvider,
	events domain.EventPublisher,
	metrics Metrics,
) *TeamService {
	return &TeamService{
		repo:    repo,
		ideas:   ideas,
		votes:   votes,
		rules:   rules,
		events:  orNopPublisher(events),
		metrics: orNopMetrics(metrics),
	}
}

// CreateTeam makes the caller leader and first member of a new team.
func (s *TeamService) CreateTeam(ctx context.Context, actor domain.HackathonUser, team domain.Team) (domain.Team, error) {
	if err := requireActive(actor); err != nil {
		return domain.Team{}, err
	}
	if actor.Role != domain.RoleParticipant {
		return domain.Team{}, ErrNotParticipant
	}
	if actor.InTeam() {
		return domain.Team{}, ErrAlreadyInTeam
	}
	if err := s.checkIdea(ctx, team.IdeaID); err != nil {
		return domain.Team{}, err
	}

	team.LeaderID = actor.UserID
	team.MaxMembers = s.rules.Current().ClampTeamSize(team.MaxMembers)
	team.InviteCode = uuid.NewString()
	team.Status = domain.TeamStatusOpen

	created, err := s.repo.Create(ctx, team)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.metrics.TeamMembershipChanged("create")
	s.events.Publish(ctx, domain.EventTeamCreated, publicTeam(created))
	s.events.Publish(ctx, domain.EventLeaderboardChanged, nil)

	return memberView(created), nil
}

func (s *TeamService) ListTeams(ctx context.Context, actor domain.HackathonUser, status domain.TeamStatus) ([]domain.Team, error) {
	teams, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}
	if len(teams) == 0 {
		return teams, nil
	}

	ids := make([]uint, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}

	voted, err := s.votes.VotedTargets(ctx, actor.UserID, domain.VoteTargetTeam, ids)
	if err != nil {
		return nil, fmt.Errorf("s.votes.VotedTargets -> %w", err)
	}
	for i := range teams {
		teams[i].HasVoted = voted[teams[i].ID]
		teams[i] = visibleTo(actor, teams[i])
	}

	return teams, nil
}

func (s *TeamService) GetTeam(ctx context.Context, actor domain.HackathonUser, id uint) (domain.Team, error) {
	team, err := s.repo.FindByID(ctx, id, true)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	voted, err := s.votes.VotedTargets(ctx, actor.UserID, domain.VoteTargetTeam, []uint{id})
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.votes.VotedTargets -> %w", err)
	}
	team.HasVoted = voted[id]

	return visibleTo(actor, team), nil
}

func (s *TeamService) JoinTeam(ctx context.Context, actor domain.HackathonUser, id uint, inviteCode string) (domain.Team, error) {
	if err := requireActive(actor); err != nil {
		return domain.Team{}, err
	}
	if actor.InTeam() {
		return domain.Team{}, ErrAlreadyInTeam
	}

	team, err := s.repo.Join(ctx, id, actor.UserID, inviteCode)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.Join -> %w", err)
	}

	s.metrics.TeamMembershipChanged("join")
	s.events.Publish(ctx, domain.EventTeamUpdated, publicTeam(team))

	return memberView(team), nil
}

func (s *TeamService) LeaveTeam(ctx context.Context, actor domain.HackathonUser, id uint) (domain.TeamLeaveResult, error) {
	result, err := s.repo.RemoveMember(ctx, id, actor.UserID, nil)
	if err != nil {
		return domain.TeamLeaveResult{}, fmt.Errorf("s.repo.RemoveMember -> %w", err)
	}

	s.metrics.TeamMembershipChanged("leave")
	s.publishLeave(ctx, id, result)

	result.Team = publicTeam(result.Team)

	return result, nil
}

func (s *TeamService) KickMember(ctx context.Context, actor domain.HackathonUser, id, userID uint) (domain.TeamLeaveResult, error) {
	if err := requireActive(actor); err != nil {
		return domain.TeamLeaveResult{}, err
	}

	if userID == actor.UserID {
		return domain.TeamLeaveResult{}, ErrCannotKickSelf
	}

	result, err := s.repo.RemoveMember(ctx, id, userID, leaderOrAdmin(actor))
	if err != nil {
		return domain.TeamLeaveResult{}, fmt.Errorf("s.repo.RemoveMember -> %w", err)
	}

	s.metrics.TeamMembershipChanged("kick")
	s.publishLeave(ctx, id, result)

	result.Team = visibleTo(actor, result.Team)

	return result, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, actor domain.HackathonUser, id uint, update domain.TeamUpdate) (domain.Team, error) {
	if err := requireActive(actor); err != nil {
		return domain.Team{}, err
	}

	// full is derived from the counters and cannot be requested.
	if update.Status != nil && *update.Status != domain.TeamStatusOpen && *update.Status != domain.TeamStatusClosed {
		return domain.Team{}, ErrInvalidTeamTransition
	}
	if update.MaxMembers != nil {
		clamped := s.rules.Current().ClampTeamSize(*update.MaxMembers)
		update.MaxMembers = &clamped
	}
	if !update.ClearIdea {
		if err := s.checkIdea(ctx, update.IdeaID); err != nil {
			return domain.Team{}, err
		}
	}

	updated, err := s.repo.Update(ctx, id, update, leaderOnly(actor))
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.events.Publish(ctx, domain.EventTeamUpdated, publicTeam(updated))
	if update.Name != nil {
		s.events.Publish(ctx, domain.EventLeaderboardChanged, nil)
	}

	return memberView(updated), nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, actor domain.HackathonUser, id uint) error {
	if err := requireActive(actor); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, leaderOrAdmin(actor)); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	s.events.Publish(ctx, domain.EventTeamDeleted, domain.Deleted{ID: id})
	s.events.Publish(ctx, domain.EventLeaderboardChanged, nil)

	return nil
}

func (s *TeamService) RegenerateInviteCode(ctx context.Context, actor domain.HackathonUser, id uint) (string, error) {
	if err := requireActive(actor); err != nil {
		return "", err
	}

	code := uuid.NewString()
	if err := s.repo.SetInviteCode(ctx, id, code, leaderOnly(actor)); err != nil {
		return "", fmt.Errorf("s.repo.SetInviteCode -> %w", err)
	}

	return code, nil
}

func (s *TeamService) ToggleVote(ctx context.Context, actor domain.HackathonUser, id uint) (domain.VoteResult, error) {
	if err := requireActive(actor); err != nil {
		return domain.VoteResult{}, err
	}
	if actor.TeamID != nil && *actor.TeamID == id {
		return domain.VoteResult{}, ErrSelfVote
	}

	result, err := s.votes.Toggle(ctx, actor.UserID, domain.VoteTargetTeam, id)
	if err != nil {
		return domain.VoteResult{}, fmt.Errorf("s.votes.Toggle -> %w", err)
	}

	s.metrics.VoteToggled(string(domain.VoteTargetTeam), result.Voted)
	s.events.Publish(ctx, domain.EventTeamVoted, result)
	s.events.Publish(ctx, domain.EventLeaderboardChanged, nil)

	return result, nil
}

func (s *TeamService) checkIdea(ctx context.Context, ideaID *uint) error {
	if ideaID == nil {
		return nil
	}

	idea, err := s.ideas.FindByID(ctx, *ideaID)
	if err != nil {
		return fmt.Errorf("s.ideas.FindByID -> %w", err)
	}
	if idea.Hidden {
		return ErrIdeaNotFound
	}

	return nil
}

func (s *TeamService) publishLeave(ctx context.Context, id uint, result domain.TeamLeaveResult) {
	if result.Disbanded {
		s.events.Publish(ctx, domain.EventTeamDeleted, domain.Deleted{ID: id})
		s.events.Publish(ctx, domain.EventLeaderboardChanged, nil)
		return
	}

	s.events.Publish(ctx, domain.EventTeamUpdated, publicTeam(result.Team))
}

// leaderOnly and leaderOrAdmin are evaluated on the locked team row, so a
// leader handover racing with the request is seen.
func leaderOnly(actor domain.HackathonUser) domain.TeamGuard {
	return func(team domain.Team) error {
		if team.LeaderID != actor.UserID {
			return ErrPermissionDenied
		}

		return nil
	}
}

func leaderOrAdmin(actor domain.HackathonUser) domain.TeamGuard {
	return func(team domain.Team) error {
		if team.LeaderID != actor.UserID && !actor.IsAdmin() {
			return ErrPermissionDenied
		}

		return nil
	}
}

// visibleTo keeps member emails for admins only and the invite code for
// members and admins.
func visibleTo(actor domain.HackathonUser, team domain.Team) domain.Team {
	if actor.IsAdmin() {
		return team
	}
	if actor.TeamID != nil && *actor.TeamID == team.ID {
		return memberView(team)
	}

	return publicTeam(team)
}

func memberView(team domain.Team) domain.Team {
	team.Members = domain.PublicProfiles(team.Members)

	return team
}

func publicTeam(team domain.Team) domain.Team {
	team = memberView(team)
	team.InviteCode = ""

	return team
}
