package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/hackathon-api/internal/domain"
	"github.com/vietanh2810/hackathon-api/internal/repository/dao"
)

var (
	ErrTeamNotFound          = dao.ErrTeamNotFound
	ErrTeamNameExists        = dao.ErrTeamNameExists
	ErrTeamFull              = dao.ErrTeamFull
	ErrTeamClosed            = dao.ErrTeamClosed
	ErrAlreadyInTeam         = dao.ErrAlreadyInTeam
	ErrNotTeamMember         = dao.ErrNotTeamMember
	ErrCapacityBelowMembers  = dao.ErrCapacityBelowMembers
	ErrInvalidTeamTransition = dao.ErrInvalidTeamTransition
)

type TeamDAO interface {
	Insert(ctx context.Context, team dao.Team) (dao.Team, error)
	FindByID(ctx context.Context, id uint, withMembers bool) (dao.Team, error)
	List(ctx context.Context, status string) ([]dao.Team, error)
	Join(ctx context.Context, teamID, userID uint, inviteCode string) (dao.Team, error)
	RemoveMember(ctx context.Context, teamID, userID uint, check dao.TeamCheck) (dao.LeaveOutcome, error)
	Update(ctx context.Context, teamID uint, changes dao.TeamChanges, check dao.TeamCheck) (dao.Team, error)
	SetInviteCode(ctx context.Context, teamID uint, code string, check dao.TeamCheck) error
	Delete(ctx context.Context, teamID uint, check dao.TeamCheck) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type TeamRepository struct {
	dao TeamDAO
}

func NewTeamRepository(dao TeamDAO) *TeamRepository {
	return &TeamRepository{
		dao: dao,
	}
}

func (r *TeamRepository) Create(ctx context.Context, team domain.Team) (domain.Team, error) {
	created, err := r.dao.Insert(ctx, dao.Team{
		Name:        team.Name,
		Description: team.Description,
		IdeaID:      team.IdeaID,
		LeaderID:    team.LeaderID,
		InviteCode:  team.InviteCode,
		MaxMembers:  team.MaxMembers,
		Status:      string(team.Status),
	})
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return teamDaoToDomain(created), nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id uint, withMembers bool) (domain.Team, error) {
	found, err := r.dao.FindByID(ctx, id, withMembers)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return teamDaoToDomain(found), nil
}

func (r *TeamRepository) List(ctx context.Context, status domain.TeamStatus) ([]domain.Team, error) {
	found, err := r.dao.List(ctx, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	teams := make([]domain.Team, len(found))
	for i, t := range found {
		teams[i] = teamDaoToDomain(t)
	}

	return teams, nil
}

func (r *TeamRepository) Join(ctx context.Context, teamID, userID uint, inviteCode string) (domain.Team, error) {
	joined, err := r.dao.Join(ctx, teamID, userID, inviteCode)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.Join -> %w", err)
	}

	return teamDaoToDomain(joined), nil
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID uint, guard domain.TeamGuard) (domain.TeamLeaveResult, error) {
	outcome, err := r.dao.RemoveMember(ctx, teamID, userID, teamCheck(guard))
	if err != nil {
		return domain.TeamLeaveResult{}, fmt.Errorf("r.dao.RemoveMember -> %w", err)
	}

	return leaveDaoToDomain(outcome), nil
}

func (r *TeamRepository) Update(ctx context.Context, teamID uint, update domain.TeamUpdate, guard domain.TeamGuard) (domain.Team, error) {
	changes := dao.TeamChanges{
		Name:        update.Name,
		Description: update.Description,
		IdeaID:      update.IdeaID,
		ClearIdea:   update.ClearIdea,
		MaxMembers:  update.MaxMembers,
	}
	if update.Status != nil {
		status := string(*update.Status)
		changes.Status = &status
	}

	updated, err := r.dao.Update(ctx, teamID, changes, teamCheck(guard))
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return teamDaoToDomain(updated), nil
}

func (r *TeamRepository) SetInviteCode(ctx context.Context, teamID uint, code string, guard domain.TeamGuard) error {
	if err := r.dao.SetInviteCode(ctx, teamID, code, teamCheck(guard)); err != nil {
		return fmt.Errorf("r.dao.SetInviteCode -> %w", err)
	}

	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID uint, guard domain.TeamGuard) error {
	if err := r.dao.Delete(ctx, teamID, teamCheck(guard)); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *TeamRepository) CountByStatus(ctx context.Context) (map[domain.TeamStatus]int64, error) {
	counts, err := r.dao.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	byStatus := make(map[domain.TeamStatus]int64, len(counts))
	for status, n := range counts {
		byStatus[domain.TeamStatus(status)] = n
	}

	return byStatus, nil
}

func teamDaoToDomain(t dao.Team) domain.Team {
	team := domain.Team{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		IdeaID:      t.IdeaID,
		LeaderID:    t.LeaderID,
		InviteCode:  t.InviteCode,
		MemberCount: t.MemberCount,
		MaxMembers:  t.MaxMembers,
		Status:      domain.TeamStatus(t.Status),
		VoteCount:   t.VoteCount,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if len(t.Members) > 0 {
		team.Members = profilesDaoToDomain(t.Members)
	}

	return team
}

func leaveDaoToDomain(o dao.LeaveOutcome) domain.TeamLeaveResult {
	return domain.TeamLeaveResult{
		Team:      teamDaoToDomain(o.Team),
		Disbanded: o.Disbanded,
		NewLeader: o.NewLeader,
	}
}

// teamCheck adapts a domain guard to the dao row type.
func teamCheck(guard domain.TeamGuard) dao.TeamCheck {
	if guard == nil {
		return nil
	}

	return func(t dao.Team) error {
		return guard(teamDaoToDomain(t))
	}
}
