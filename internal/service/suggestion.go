package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/hackathon-api/internal/domain"
)

type SuggestionRepository interface {
	Create(ctx context.Context, s domain.Suggestion) (domain.Suggestion, error)
	FindByID(ctx context.Context, id uint) (domain.Suggestion, error)
	List(ctx context.Context, status domain.SuggestionStatus) ([]domain.Suggestion, error)
	SetStatus(ctx context.Context, id uint, status domain.SuggestionStatus) (domain.Suggestion, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type SuggestionService struct {
	repo    SuggestionRepository
	votes   VoteRepository
	events  domain.EventPublisher
	metrics Metrics
}

func NewSuggestionService(repo SuggestionRepository, votes VoteRepository, events domain.EventPublisher, metrics Metrics) *SuggestionService {
	return &SuggestionService{
		repo:    repo,
		votes:   votes,
		events:  orNopPublisher(events),
		metrics: orNopMetrics(metrics),
	}
}

func (s *SuggestionService) CreateSuggestion(ctx context.Context, actor domain.HackathonUser, suggestion domain.Suggestion) (domain.Suggestion, error) {
	if err := requireActive(actor); err != nil {
		return domain.Suggestion{}, err
	}

	suggestion.AuthorID = actor.UserID
	suggestion.Status = domain.SuggestionOpen
	if suggestion.Category == "" {
		suggestion.Category = "general"
	}

	created, err := s.repo.Create(ctx, suggestion)
	if err != nil {
		return domain.Suggestion{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.events.Publish(ctx, domain.EventSuggestionCreated, created)

	return created, nil
}

func (s *SuggestionService) ListSuggestions(ctx context.Context, actor domain.HackathonUser, status domain.SuggestionStatus) ([]domain.Suggestion, error) {
	suggestions, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}
	if len(suggestions) == 0 {
		return suggestions, nil
	}

	ids := make([]uint, len(suggestions))
	for i, sg := range suggestions {
		ids[i] = sg.ID
	}

	voted, err := s.votes.VotedTargets(ctx, actor.UserID, domain.VoteTargetSuggestion, ids)
	if err != nil {
		return nil, fmt.Errorf("s.votes.VotedTargets -> %w", err)
	}
	for i := range suggestions {
		suggestions[i].HasVoted = voted[suggestions[i].ID]
	}

	return suggestions, nil
}

func (s *SuggestionService) ToggleVote(ctx context.Context, actor domain.HackathonUser, id uint) (domain.VoteResult, error) {
	if err := requireActive(actor); err != nil {
		return domain.VoteResult{}, err
	}

	result, err := s.votes.Toggle(ctx, actor.UserID, domain.VoteTargetSuggestion, id)
	if err != nil {
		return domain.VoteResult{}, fmt.Errorf("s.votes.Toggle -> %w", err)
	}

	s.metrics.VoteToggled(string(domain.VoteTargetSuggestion), result.Voted)
	s.events.Publish(ctx, domain.EventSuggestionVoted, result)

	return result, nil
}

func (s *SuggestionService) DeleteSuggestion(ctx context.Context, actor domain.HackathonUser, id uint) error {
	if err := requireActive(actor); err != nil {
		return err
	}

	suggestion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if suggestion.AuthorID != actor.UserID && !actor.IsAdmin() {
		return ErrPermissionDenied
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	s.events.Publish(ctx, domain.EventSuggestionDeleted, domain.Deleted{ID: id})

	return nil
}

func (s *SuggestionService) SetStatus(ctx context.Context, actor domain.HackathonUser, id uint, status domain.SuggestionStatus) (domain.Suggestion, error) {
	if !actor.IsAdmin() || actor.Banned {
		return domain.Suggestion{}, ErrPermissionDenied
	}
	if !status.Valid() {
		return domain.Suggestion{}, ErrInvalidStatus
	}

	updated, err := s.repo.SetStatus(ctx, id, status)
	if err != nil {
		return domain.Suggestion{}, fmt.Errorf("s.repo.SetStatus -> %w", err)
	}

	s.events.Publish(ctx, domain.EventSuggestionUpdated, updated)

	return updated, nil
}
