package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/vietanh2810/hackathon-api/internal/domain"
	"github.com/vietanh2810/hackathon-api/internal/repository"
)

type AuthUserRepository interface {
	Create(ctx context.Context, profile domain.HackathonUser) (domain.HackathonUser, error)
	FindProfileByEmail(ctx context.Context, email string) (domain.HackathonUser, error)
}

type AuthService struct {
	repo    AuthUserRepository
	metrics Metrics
}

func NewAuthService(repo AuthUserRepository, metrics Metrics) *AuthService {
	return &AuthService{
		repo:    repo,
		metrics: orNopMetrics(metrics),
	}
}

// Signup creates the user and its hackathon profile. Only self-selectable
// roles are accepted here; admin is granted afterwards.
func (s *AuthService) Signup(ctx context.Context, profile domain.HackathonUser) (domain.HackathonUser, error) {
	if !isSelfSelectable(profile.Role) {
		return domain.HackathonUser{}, ErrInvalidRole
	}

	hash, err := hashPassword(profile.User.Password)
	if err != nil {
		return domain.HackathonUser{}, err
	}
	profile.User.Password = hash

	created, err := s.repo.Create(ctx, profile)
	if err != nil {
		return domain.HackathonUser{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.metrics.UserSignedUp(string(created.Role))

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.HackathonUser, error) {
	profile, err := s.repo.FindProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.HackathonUser{}, ErrUserNotFound
		}

		return domain.HackathonUser{}, fmt.Errorf("s.repo.FindProfileByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(profile.User.Password), []byte(password)); err != nil {
		return domain.HackathonUser{}, ErrWrongPassword
	}

	if profile.Banned {
		return domain.HackathonUser{}, ErrBanned
	}

	return profile, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

func isSelfSelectable(role domain.Role) bool {
	for _, r := range domain.SelfSelectableRoles {
		if r == role {
			return true
		}
	}

	return false
}
