package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/hackathon-api/internal/domain"
)

type AdminUserRepository interface {
	FindProfileByUserID(ctx context.Context, userID uint) (domain.HackathonUser, error)
	ListProfiles(ctx context.Context, filter domain.UserFilter) ([]domain.HackathonUser, error)
	SetRole(ctx context.Context, userID uint, role domain.Role) error
	SetBanned(ctx context.Context, userID uint, banned bool) (domain.BanOutcome, error)
	CountByRole(ctx context.Context) (map[domain.Role]int64, int64, error)
}

type AdminService struct {
	users       AdminUserRepository
	ideas       IdeaRepository
	teams       TeamRepository
	suggestions SuggestionRepository
	votes       VoteRepository
	events      domain.EventPublisher
}

func NewAdminService(
	users AdminUserRepository,
	ideas IdeaRepository,
	teams TeamRepository,
	suggestions SuggestionRepository,
	votes VoteRepository,
	events domain.EventPublisher,
) *AdminService {
	return &AdminService{
		users:       users,
		ideas:       ideas,
		teams:       teams,
		suggestions: suggestions,
		votes:       votes,
		events:      orNopPublisher(events),
	}
}

func requireAdmin(actor domain.HackathonUser) error {
	if !actor.IsAdmin() || actor.Banned {
		return ErrPermissionDenied
	}

	return nil
}

func (s *AdminService) ListUsers(ctx context.Context, actor domain.HackathonUser, filter domain.UserFilter) ([]domain.HackathonUser, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	profiles, err := s.users.ListProfiles(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.users.ListProfiles -> %w", err)
	}

	return profiles, nil
}

func (s *AdminService) SetRole(ctx context.Context, actor domain.HackathonUser, userID uint, role domain.Role) (domain.HackathonUser, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.HackathonUser{}, err
	}
	if !role.Valid() {
		return domain.HackathonUser{}, ErrInvalidRole
	}
	if userID == actor.UserID && role != domain.RoleAdmin {
		return domain.HackathonUser{}, ErrCannotDemoteSelf
	}

	if err := s.users.SetRole(ctx, userID, role); err != nil {
		return domain.HackathonUser{}, fmt.Errorf("s.users.SetRole -> %w", err)
	}

	return s.publishUser(ctx, userID)
}

// SetBanned bans or unbans a user. A banned user is taken out of its team in
// the same transaction; team events go out only once that has committed.
func (s *AdminService) SetBanned(ctx context.Context, actor domain.HackathonUser, userID uint, banned bool) (domain.HackathonUser, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.HackathonUser{}, err
	}
	if userID == actor.UserID {
		return domain.HackathonUser{}, ErrPermissionDenied
	}

	outcome, err := s.users.SetBanned(ctx, userID, banned)
	if err != nil {
		return domain.HackathonUser{}, fmt.Errorf("s.users.SetBanned -> %w", err)
	}

	if outcome.TeamID != nil {
		if outcome.Leave.Disbanded {
			s.events.Publish(ctx, domain.EventTeamDeleted, domain.Deleted{ID: *outcome.TeamID})
			s.events.Publish(ctx, domain.EventLeaderboardChanged, nil)
		} else {
			s.events.Publish(ctx, domain.EventTeamUpdated, publicTeam(outcome.Leave.Team))
		}
	}

	return s.publishUser(ctx, userID)
}

func (s *AdminService) HideIdea(ctx context.Context, actor domain.HackathonUser, id uint, hidden bool) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	if err := s.ideas.SetHidden(ctx, id, hidden); err != nil {
		return fmt.Errorf("s.ideas.SetHidden -> %w", err)
	}

	idea, err := s.ideas.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.ideas.FindByID -> %w", err)
	}

	s.events.Publish(ctx, domain.EventIdeaUpdated, idea)
	s.events.Publish(ctx, domain.EventLeaderboardChanged, nil)

	return nil
}

func (s *AdminService) DeleteTeam(ctx context.Context, actor domain.HackathonUser, id uint) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	if err := s.teams.Delete(ctx, id, nil); err != nil {
		return fmt.Errorf("s.teams.Delete -> %w", err)
	}

	s.events.Publish(ctx, domain.EventTeamDeleted, domain.Deleted{ID: id})
	s.events.Publish(ctx, domain.EventLeaderboardChanged, nil)

	return nil
}

func (s *AdminService) DeleteSuggestion(ctx context.Context, actor domain.HackathonUser, id uint) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	if err := s.suggestions.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.suggestions.Delete -> %w", err)
	}

	s.events.Publish(ctx, domain.EventSuggestionDeleted, domain.Deleted{ID: id})

	return nil
}

func (s *AdminService) Stats(ctx context.Context, actor domain.HackathonUser) (domain.Stats, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.Stats{}, err
	}

	byRole, banned, err := s.users.CountByRole(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("s.users.CountByRole -> %w", err)
	}

	ideas, hidden, err := s.ideas.Count(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("s.ideas.Count -> %w", err)
	}

	byStatus, err := s.teams.CountByStatus(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("s.teams.CountByStatus -> %w", err)
	}

	suggestions, err := s.suggestions.Count(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("s.suggestions.Count -> %w", err)
	}

	votes, err := s.votes.CountByTarget(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("s.votes.CountByTarget -> %w", err)
	}

	stats := domain.Stats{
		UsersByRole:   byRole,
		BannedUsers:   banned,
		Ideas:         ideas,
		HiddenIdeas:   hidden,
		TeamsByStatus: byStatus,
		Suggestions:   suggestions,
		Votes:         votes,
	}
	for _, n := range byRole {
		stats.Users += n
	}
	for _, n := range byStatus {
		stats.Teams += n
	}

	return stats, nil
}

func (s *AdminService) publishUser(ctx context.Context, userID uint) (domain.HackathonUser, error) {
	profile, err := s.users.FindProfileByUserID(ctx, userID)
	if err != nil {
		return domain.HackathonUser{}, fmt.Errorf("s.users.FindProfileByUserID -> %w", err)
	}

	s.events.Publish(ctx, domain.EventUserUpdated, profile.Public())

	return profile, nil
}
