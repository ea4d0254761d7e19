package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/hackathon-api/internal/domain"
	"github.com/vietanh2810/hackathon-api/internal/repository/dao"
)

var ErrIdeaNotFound = dao.ErrIdeaNotFound

type IdeaDAO interface {
	Insert(ctx context.Context, idea dao.Idea) (dao.Idea, error)
	FindByID(ctx context.Context, id uint) (dao.Idea, error)
	List(ctx context.Context, query dao.IdeaQuery) ([]dao.Idea, error)
	Update(ctx context.Context, id uint, changes dao.IdeaChanges) (dao.Idea, error)
	SetHidden(ctx context.Context, id uint, hidden bool) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, int64, error)
}

type IdeaRepository struct {
	dao IdeaDAO
}

func NewIdeaRepository(dao IdeaDAO) *IdeaRepository {
	return &IdeaRepository{
		dao: dao,
	}
}

func (r *IdeaRepository) Create(ctx context.Context, idea domain.Idea) (domain.Idea, error) {
	created, err := r.dao.Insert(ctx, dao.Idea{
		AuthorID:    idea.AuthorID,
		Title:       idea.Title,
		Description: idea.Description,
		Tags:        idea.Tags,
	})
	if err != nil {
		return domain.Idea{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return ideaDaoToDomain(created), nil
}

func (r *IdeaRepository) FindByID(ctx context.Context, id uint) (domain.Idea, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Idea{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return ideaDaoToDomain(found), nil
}

func (r *IdeaRepository) List(ctx context.Context, query domain.IdeaQuery) ([]domain.Idea, error) {
	found, err := r.dao.List(ctx, dao.IdeaQuery{
		OrderByVotes:  query.Sort != domain.IdeaSortRecent,
		Search:        query.Search,
		IncludeHidden: query.IncludeHidden,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	ideas := make([]domain.Idea, len(found))
	for i, idea := range found {
		ideas[i] = ideaDaoToDomain(idea)
	}

	return ideas, nil
}

func (r *IdeaRepository) Update(ctx context.Context, id uint, update domain.IdeaUpdate) (domain.Idea, error) {
	updated, err := r.dao.Update(ctx, id, dao.IdeaChanges{
		Title:       update.Title,
		Description: update.Description,
		Tags:        update.Tags,
	})
	if err != nil {
		return domain.Idea{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return ideaDaoToDomain(updated), nil
}

func (r *IdeaRepository) SetHidden(ctx context.Context, id uint, hidden bool) error {
	if err := r.dao.SetHidden(ctx, id, hidden); err != nil {
		return fmt.Errorf("r.dao.SetHidden -> %w", err)
	}

	return nil
}

func (r *IdeaRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *IdeaRepository) Count(ctx context.Context) (int64, int64, error) {
	total, hidden, err := r.dao.Count(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return total, hidden, nil
}

func ideaDaoToDomain(i dao.Idea) domain.Idea {
	idea := domain.Idea{
		ID:          i.ID,
		AuthorID:    i.AuthorID,
		AuthorName:  i.Author.Name,
		Title:       i.Title,
		Description: i.Description,
		Tags:        []string(i.Tags),
		VoteCount:   i.VoteCount,
		Hidden:      i.Hidden,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
	if idea.Tags == nil {
		idea.Tags = []string{}
	}

	return idea
}
