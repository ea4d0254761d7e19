package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/hackathon-api/internal/domain"
	"github.com/vietanh2810/hackathon-api/internal/repository/dao"
)

var ErrAlreadyVoted = dao.ErrAlreadyVoted

type VoteDAO interface {
	Toggle(ctx context.Context, userID uint, targetType string, targetID uint) (bool, int, error)
	VotedTargets(ctx context.Context, userID uint, targetType string, targetIDs []uint) (map[uint]bool, error)
	CountByTarget(ctx context.Context) (map[string]int64, error)
}

type VoteRepository struct {
	dao VoteDAO
}

func NewVoteRepository(dao VoteDAO) *VoteRepository {
	return &VoteRepository{
		dao: dao,
	}
}

func (r *VoteRepository) Toggle(ctx context.Context, userID uint, target domain.VoteTarget, targetID uint) (domain.VoteResult, error) {
	voted, count, err := r.dao.Toggle(ctx, userID, string(target), targetID)
	if err != nil {
		return domain.VoteResult{}, fmt.Errorf("r.dao.Toggle -> %w", err)
	}

	return domain.VoteResult{
		TargetType: target,
		TargetID:   targetID,
		Voted:      voted,
		VoteCount:  count,
	}, nil
}

func (r *VoteRepository) VotedTargets(ctx context.Context, userID uint, target domain.VoteTarget, targetIDs []uint) (map[uint]bool, error) {
	voted, err := r.dao.VotedTargets(ctx, userID, string(target), targetIDs)
	if err != nil {
		return nil, fmt.Errorf("r.dao.VotedTargets -> %w", err)
	}

	return voted, nil
}

func (r *VoteRepository) CountByTarget(ctx context.Context) (map[domain.VoteTarget]int64, error) {
	counts, err := r.dao.CountByTarget(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountByTarget -> %w", err)
	}

	byTarget := make(map[domain.VoteTarget]int64, len(counts))
	for target, n := range counts {
		byTarget[domain.VoteTarget(target)] = n
	}

	return byTarget, nil
}
