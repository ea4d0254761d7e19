package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/hackathon-api/internal/domain"
)

type UserRepository interface {
	FindProfileByUserID(ctx context.Context, userID uint) (domain.HackathonUser, error)
	ListProfiles(ctx context.Context, filter domain.UserFilter) ([]domain.HackathonUser, error)
	UpdateProfile(ctx context.Context, userID uint, update domain.ProfileUpdate) (domain.HackathonUser, error)
}

type UserService struct {
	repo   UserRepository
	events domain.EventPublisher
}

func NewUserService(repo UserRepository, events domain.EventPublisher) *UserService {
	return &UserService{
		repo:   repo,
		events: orNopPublisher(events),
	}
}

// GetProfile returns the user together with its hackathon profile.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (domain.HackathonUser, error) {
	profile, err := s.repo.FindProfileByUserID(ctx, userID)
	if err != nil {
		return domain.HackathonUser{}, fmt.Errorf("s.repo.FindProfileByUserID -> %w", err)
	}

	return profile, nil
}

// GetUser returns another user's profile. Email and ban state are only shown
// to the user itself and to admins.
func (s *UserService) GetUser(ctx context.Context, actor domain.HackathonUser, userID uint) (domain.HackathonUser, error) {
	profile, err := s.repo.FindProfileByUserID(ctx, userID)
	if err != nil {
		return domain.HackathonUser{}, fmt.Errorf("s.repo.FindProfileByUserID -> %w", err)
	}
	if actor.IsAdmin() || actor.UserID == userID {
		return profile, nil
	}

	return profile.Public(), nil
}

func (s *UserService) ListUsers(ctx context.Context, actor domain.HackathonUser, filter domain.UserFilter) ([]domain.HackathonUser, error) {
	profiles, err := s.repo.ListProfiles(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListProfiles -> %w", err)
	}
	if actor.IsAdmin() {
		return profiles, nil
	}

	return domain.PublicProfiles(profiles), nil
}

func (s *UserService) UpdateMe(ctx context.Context, actor domain.HackathonUser, update domain.ProfileUpdate) (domain.HackathonUser, error) {
	if err := requireActive(actor); err != nil {
		return domain.HackathonUser{}, err
	}

	updated, err := s.repo.UpdateProfile(ctx, actor.UserID, update)
	if err != nil {
		return domain.HackathonUser{}, fmt.Errorf("s.repo.UpdateProfile -> %w", err)
	}

	s.events.Publish(ctx, domain.EventUserUpdated, updated.Public())

	return updated, nil
}
