package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/hackathon-api/internal/domain"
	"github.com/vietanh2810/hackathon-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User, profile dao.HackathonUser) (dao.HackathonUser, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindProfileByUserID(ctx context.Context, userID uint) (dao.HackathonUser, error)
	FindProfileByEmail(ctx context.Context, email string) (dao.HackathonUser, error)
	ListProfiles(ctx context.Context, filter dao.ProfileFilter) ([]dao.HackathonUser, error)
	UpdateProfile(ctx context.Context, userID uint, changes dao.ProfileChanges) (dao.HackathonUser, error)
	SetRole(ctx context.Context, userID uint, role string) error
	SetBanned(ctx context.Context, userID uint, banned bool) (dao.BanOutcome, error)
	CountByRole(ctx context.Context) (map[string]int64, int64, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, profile domain.HackathonUser) (domain.HackathonUser, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Email:    profile.User.Email,
		Password: profile.User.Password,
		Name:     profile.User.Name,
	}, dao.HackathonUser{
		Role:   string(profile.Role),
		Bio:    profile.Bio,
		Skills: profile.Skills,
	})
	if err != nil {
		return domain.HackathonUser{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return profileDaoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return userDaoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return userDaoToDomain(found), nil
}

func (r *UserRepository) FindProfileByUserID(ctx context.Context, userID uint) (domain.HackathonUser, error) {
	found, err := r.dao.FindProfileByUserID(ctx, userID)
	if err != nil {
		return domain.HackathonUser{}, fmt.Errorf("r.dao.FindProfileByUserID -> %w", err)
	}

	return profileDaoToDomain(found), nil
}

func (r *UserRepository) FindProfileByEmail(ctx context.Context, email string) (domain.HackathonUser, error) {
	found, err := r.dao.FindProfileByEmail(ctx, email)
	if err != nil {
		return domain.HackathonUser{}, fmt.Errorf("r.dao.FindProfileByEmail -> %w", err)
	}

	return profileDaoToDomain(found), nil
}

func (r *UserRepository) ListProfiles(ctx context.Context, filter domain.UserFilter) ([]domain.HackathonUser, error) {
	found, err := r.dao.ListProfiles(ctx, dao.ProfileFilter{
		Role:        string(filter.Role),
		WithoutTeam: filter.WithoutTeam,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListProfiles -> %w", err)
	}

	return profilesDaoToDomain(found), nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, userID uint, update domain.ProfileUpdate) (domain.HackathonUser, error) {
	updated, err := r.dao.UpdateProfile(ctx, userID, dao.ProfileChanges{
		Name:   update.Name,
		Bio:    update.Bio,
		Skills: update.Skills,
	})
	if err != nil {
		return domain.HackathonUser{}, fmt.Errorf("r.dao.UpdateProfile -> %w", err)
	}

	return profileDaoToDomain(updated), nil
}

func (r *UserRepository) SetRole(ctx context.Context, userID uint, role domain.Role) error {
	if err := r.dao.SetRole(ctx, userID, string(role)); err != nil {
		return fmt.Errorf("r.dao.SetRole -> %w", err)
	}

	return nil
}

func (r *UserRepository) SetBanned(ctx context.Context, userID uint, banned bool) (domain.BanOutcome, error) {
	outcome, err := r.dao.SetBanned(ctx, userID, banned)
	if err != nil {
		return domain.BanOutcome{}, fmt.Errorf("r.dao.SetBanned -> %w", err)
	}

	return domain.BanOutcome{
		TeamID: outcome.TeamID,
		Leave:  leaveDaoToDomain(outcome.Leave),
	}, nil
}

func (r *UserRepository) CountByRole(ctx context.Context) (map[domain.Role]int64, int64, error) {
	counts, banned, err := r.dao.CountByRole(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.CountByRole -> %w", err)
	}

	byRole := make(map[domain.Role]int64, len(counts))
	for role, n := range counts {
		byRole[domain.Role(role)] = n
	}

	return byRole, banned, nil
}

func userDaoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func profileDaoToDomain(p dao.HackathonUser) domain.HackathonUser {
	profile := domain.HackathonUser{
		ID:        p.ID,
		UserID:    p.UserID,
		User:      userDaoToDomain(p.User),
		Role:      domain.Role(p.Role),
		TeamID:    p.TeamID,
		Bio:       p.Bio,
		Skills:    []string(p.Skills),
		Banned:    p.Banned,
		JoinedAt:  p.TeamJoinedAt,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if profile.Skills == nil {
		profile.Skills = []string{}
	}

	return profile
}

func profilesDaoToDomain(profiles []dao.HackathonUser) []domain.HackathonUser {
	result := make([]domain.HackathonUser, len(profiles))
	for i, p := range profiles {
		result[i] = profileDaoToDomain(p)
	}

	return result
}
