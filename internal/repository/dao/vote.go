package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAlreadyVoted      = errors.New("vote already recorded")
	ErrUnknownVoteTarget = errors.New("unknown vote target")
)

const (
	VoteTargetIdea       = "idea"
	VoteTargetTeam       = "team"
	VoteTargetSuggestion = "suggestion"
)

// Vote is the join row between a user and the idea, team or suggestion they voted for.
type Vote struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"not null;uniqueIndex:idx_votes_user_target"`
	TargetType string `gorm:"size:16;not null;uniqueIndex:idx_votes_user_target;index:idx_votes_target"`
	TargetID   uint   `gorm:"not null;uniqueIndex:idx_votes_user_target;index:idx_votes_target"`
	CreatedAt  time.Time
}

type voteTarget struct {
	table    string
	notFound error
}

var voteTargets = map[string]voteTarget{
	VoteTargetIdea:       {table: "ideas", notFound: ErrIdeaNotFound},
	VoteTargetTeam:       {table: "teams", notFound: ErrTeamNotFound},
	VoteTargetSuggestion: {table: "suggestions", notFound: ErrSuggestionNotFound},
}

type counterRow struct {
	VoteCount int
}

type VoteDAO struct {
	db *gorm.DB
}

func NewVoteDAO(db *gorm.DB) *VoteDAO {
	return &VoteDAO{
		db: db,
	}
}

// Toggle removes the user's vote on the target if there is one and records
// it otherwise, keeping the target's vote_count in step. The target row is
// locked for the duration of the transaction.
func (d *VoteDAO) Toggle(ctx context.Context, userID uint, targetType string, targetID uint) (bool, int, error) {
	target, ok := voteTargets[targetType]
	if !ok {
		return false, 0, fmt.Errorf("%w: %s", ErrUnknownVoteTarget, targetType)
	}

	var (
		voted bool
		count int
	)

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row counterRow
		err := tx.Table(target.table).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("vote_count").
			Where("id = ?", targetID).
			Take(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return target.notFound
			}
			return err
		}

		var existing Vote
		result := tx.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
			Limit(1).
			Find(&existing)
		if result.Error != nil {
			return result.Error
		}

		delta := 1
		if result.RowsAffected > 0 {
			if err = tx.Delete(&existing).Error; err != nil {
				return err
			}
			delta = -1
		} else {
			vote := Vote{UserID: userID, TargetType: targetType, TargetID: targetID}
			if err = tx.Create(&vote).Error; err != nil {
				if isUniqueViolation(err, "idx_votes_user_target") {
					return ErrAlreadyVoted
				}
				return err
			}
			voted = true
		}

		err = tx.Table(target.table).
			Where("id = ?", targetID).
			Update("vote_count", gorm.Expr("vote_count + ?", delta)).Error
		if err != nil {
			return err
		}

		count = row.VoteCount + delta

		return nil
	})
	if err != nil {
		return false, 0, err
	}

	return voted, count, nil
}

// VotedTargets returns the subset of targetIDs the user has voted for.
func (d *VoteDAO) VotedTargets(ctx context.Context, userID uint, targetType string, targetIDs []uint) (map[uint]bool, error) {
	voted := make(map[uint]bool, len(targetIDs))
	if len(targetIDs) == 0 {
		return voted, nil
	}

	var ids []uint
	err := d.db.WithContext(ctx).Model(&Vote{}).
		Where("user_id = ? AND target_type = ? AND target_id IN ?", userID, targetType, targetIDs).
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		voted[id] = true
	}

	return voted, nil
}

func (d *VoteDAO) CountByTarget(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		TargetType string
		Total      int64
	}

	err := d.db.WithContext(ctx).Model(&Vote{}).
		Select("target_type, COUNT(*) AS total").
		Group("target_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.TargetType] = r.Total
	}

	return counts, nil
}

// deleteVotesFor is called inside the transaction that deletes a target.
func deleteVotesFor(tx *gorm.DB, targetType string, targetID uint) error {
	return tx.Where("target_type = ? AND target_id = ?", targetType, targetID).Delete(&Vote{}).Error
}
