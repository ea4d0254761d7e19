package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/hackathon-api/internal/domain"
	"github.com/vietanh2810/hackathon-api/internal/repository/dao"
)

var ErrSuggestionNotFound = dao.ErrSuggestionNotFound

type SuggestionDAO interface {
	Insert(ctx context.Context, suggestion dao.Suggestion) (dao.Suggestion, error)
	FindByID(ctx context.Context, id uint) (dao.Suggestion, error)
	List(ctx context.Context, status string) ([]dao.Suggestion, error)
	SetStatus(ctx context.Context, id uint, status string) (dao.Suggestion, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type SuggestionRepository struct {
	dao SuggestionDAO
}

func NewSuggestionRepository(dao SuggestionDAO) *SuggestionRepository {
	return &SuggestionRepository{
		dao: dao,
	}
}

func (r *SuggestionRepository) Create(ctx context.Context, s domain.Suggestion) (domain.Suggestion, error) {
	created, err := r.dao.Insert(ctx, dao.Suggestion{
		AuthorID: s.AuthorID,
		Title:    s.Title,
		Body:     s.Body,
		Category: s.Category,
		Status:   string(s.Status),
	})
	if err != nil {
		return domain.Suggestion{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return suggestionDaoToDomain(created), nil
}

func (r *SuggestionRepository) FindByID(ctx context.Context, id uint) (domain.Suggestion, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Suggestion{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return suggestionDaoToDomain(found), nil
}

func (r *SuggestionRepository) List(ctx context.Context, status domain.SuggestionStatus) ([]domain.Suggestion, error) {
	found, err := r.dao.List(ctx, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	suggestions := make([]domain.Suggestion, len(found))
	for i, s := range found {
		suggestions[i] = suggestionDaoToDomain(s)
	}

	return suggestions, nil
}

func (r *SuggestionRepository) SetStatus(ctx context.Context, id uint, status domain.SuggestionStatus) (domain.Suggestion, error) {
	updated, err := r.dao.SetStatus(ctx, id, string(status))
	if err != nil {
		return domain.Suggestion{}, fmt.Errorf("r.dao.SetStatus -> %w", err)
	}

	return suggestionDaoToDomain(updated), nil
}

func (r *SuggestionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *SuggestionRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return total, nil
}

func suggestionDaoToDomain(s dao.Suggestion) domain.Suggestion {
	return domain.Suggestion{
		ID:        s.ID,
		AuthorID:  s.AuthorID,
		Title:     s.Title,
		Body:      s.Body,
		Category:  s.Category,
		Status:    domain.SuggestionStatus(s.Status),
		VoteCount: s.VoteCount,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
