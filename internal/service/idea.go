package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/hackathon-api/internal/domain"
)

type IdeaRepository interface {
	Create(ctx context.Context, idea domain.Idea) (domain.Idea, error)
	FindByID(ctx context.Context, id uint) (domain.Idea, error)
	List(ctx context.Context, query domain.IdeaQuery) ([]domain.Idea, error)
	Update(ctx context.Context, id uint, update domain.IdeaUpdate) (domain.Idea, error)
	SetHidden(ctx context.Context, id uint, hidden bool) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, int64, error)
}

type VoteRepository interface {
	Toggle(ctx context.Context, userID uint, target domain.VoteTarget, targetID uint) (domain.VoteResult, error)
	VotedTargets(ctx context.Context, userID uint, target domain.VoteTarget, targetIDs []uint) (map[uint]bool, error)
	CountByTarget(ctx context.Context) (map[domain.VoteTarget]int64, error)
}

type IdeaService struct {
	repo    IdeaRepository
	votes   VoteRepository
	rules   RulesProvider
	events  domain.EventPublisher
	metrics Metrics
}

func NewIdeaService(repo IdeaRepository, votes VoteRepository, rules RulesProvider, events domain.EventPublisher, metrics Metrics) *IdeaService {
	return &IdeaService{
		repo:    repo,
		votes:   votes,
		rules:   rules,
		events:  orNopPublisher(events),
		metrics: orNopMetrics(metrics),
	}
}

func (s *IdeaService) CreateIdea(ctx context.Context, actor domain.HackathonUser, idea domain.Idea) (domain.Idea, error) {
	if err := requireActive(actor); err != nil {
		return domain.Idea{}, err
	}

	idea.AuthorID = actor.UserID
	created, err := s.repo.Create(ctx, idea)
	if err != nil {
		return domain.Idea{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.events.Publish(ctx, domain.EventIdeaCreated, created)

	return created, nil
}

// ListIdeas hides moderated ideas from everyone but admins and marks the
// ideas the caller voted for.
func (s *IdeaService) ListIdeas(ctx context.Context, actor domain.HackathonUser, query domain.IdeaQuery) ([]domain.Idea, error) {
	query.IncludeHidden = actor.IsAdmin()

	ideas, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}
	if len(ideas) == 0 {
		return ideas, nil
	}

	ids := make([]uint, len(ideas))
	for i, idea := range ideas {
		ids[i] = idea.ID
	}

	voted, err := s.votes.VotedTargets(ctx, actor.UserID, domain.VoteTargetIdea, ids)
	if err != nil {
		return nil, fmt.Errorf("s.votes.VotedTargets -> %w", err)
	}
	for i := range ideas {
		ideas[i].HasVoted = voted[ideas[i].ID]
	}

	return ideas, nil
}

func (s *IdeaService) GetIdea(ctx context.Context, actor domain.HackathonUser, id uint) (domain.Idea, error) {
	idea, err := s.visibleIdea(ctx, actor, id)
	if err != nil {
		return domain.Idea{}, err
	}

	voted, err := s.votes.VotedTargets(ctx, actor.UserID, domain.VoteTargetIdea, []uint{id})
	if err != nil {
		return domain.Idea{}, fmt.Errorf("s.votes.VotedTargets -> %w", err)
	}
	idea.HasVoted = voted[id]

	return idea, nil
}

func (s *IdeaService) UpdateIdea(ctx context.Context, actor domain.HackathonUser, id uint, update domain.IdeaUpdate) (domain.Idea, error) {
	if err := requireActive(actor); err != nil {
		return domain.Idea{}, err
	}

	idea, err := s.visibleIdea(ctx, actor, id)
	if err != nil {
		return domain.Idea{}, err
	}
	if idea.AuthorID != actor.UserID {
		return domain.Idea{}, ErrPermissionDenied
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.Idea{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.events.Publish(ctx, domain.EventIdeaUpdated, updated)

	return updated, nil
}

func (s *IdeaService) DeleteIdea(ctx context.Context, actor domain.HackathonUser, id uint) error {
	if err := requireActive(actor); err != nil {
		return err
	}

	idea, err := s.visibleIdea(ctx, actor, id)
	if err != nil {
		return err
	}
	if idea.AuthorID != actor.UserID && !actor.IsAdmin() {
		return ErrPermissionDenied
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	s.events.Publish(ctx, domain.EventIdeaDeleted, domain.Deleted{ID: id})
	s.events.Publish(ctx, domain.EventLeaderboardChanged, nil)

	return nil
}

func (s *IdeaService) ToggleVote(ctx context.Context, actor domain.HackathonUser, id uint) (domain.VoteResult, error) {
	if err := requireActive(actor); err != nil {
		return domain.VoteResult{}, err
	}

	idea, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.VoteResult{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if idea.Hidden {
		return domain.VoteResult{}, ErrIdeaHidden
	}
	if idea.AuthorID == actor.UserID && !s.rules.Current().AllowSelfVote {
		return domain.VoteResult{}, ErrSelfVote
	}

	result, err := s.votes.Toggle(ctx, actor.UserID, domain.VoteTargetIdea, id)
	if err != nil {
		return domain.VoteResult{}, fmt.Errorf("s.votes.Toggle -> %w", err)
	}

	s.metrics.VoteToggled(string(domain.VoteTargetIdea), result.Voted)
	s.events.Publish(ctx, domain.EventIdeaVoted, result)
	s.events.Publish(ctx, domain.EventLeaderboardChanged, nil)

	return result, nil
}

// visibleIdea loads the idea and treats hidden ideas as missing for anyone
// other than admins and the author.
func (s *IdeaService) visibleIdea(ctx context.Context, actor domain.HackathonUser, id uint) (domain.Idea, error) {
	idea, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Idea{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if idea.Hidden && !actor.IsAdmin() && idea.AuthorID != actor.UserID {
		return domain.Idea{}, ErrIdeaNotFound
	}

	return idea, nil
}
