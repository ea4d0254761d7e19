package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSuggestionNotFound = errors.New("suggestion not found")

type Suggestion struct {
	ID        uint   `gorm:"primaryKey"`
	AuthorID  uint   `gorm:"not null;index"`
	Author    User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Title     string `gorm:"size:120;not null"`
	Body      string `gorm:"type:text;not null"`
	Category  string `gorm:"size:32;not null;default:'general'"`
	Status    string `gorm:"size:16;not null;default:'open';index"`
	VoteCount int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SuggestionDAO struct {
	db *gorm.DB
}

func NewSuggestionDAO(db *gorm.DB) *SuggestionDAO {
	return &SuggestionDAO{
		db: db,
	}
}

func (d *SuggestionDAO) Insert(ctx context.Context, suggestion Suggestion) (Suggestion, error) {
	if err := d.db.WithContext(ctx).Omit("Author").Create(&suggestion).Error; err != nil {
		return Suggestion{}, err
	}

	return suggestion, nil
}

func (d *SuggestionDAO) FindByID(ctx context.Context, id uint) (Suggestion, error) {
	var suggestion Suggestion

	result := d.db.WithContext(ctx).First(&suggestion, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Suggestion{}, ErrSuggestionNotFound
		}

		return Suggestion{}, result.Error
	}

	return suggestion, nil
}

func (d *SuggestionDAO) List(ctx context.Context, status string) ([]Suggestion, error) {
	var suggestions []Suggestion

	q := d.db.WithContext(ctx).Order("vote_count DESC").Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	if err := q.Find(&suggestions).Error; err != nil {
		return nil, err
	}

	return suggestions, nil
}

func (d *SuggestionDAO) SetStatus(ctx context.Context, id uint, status string) (Suggestion, error) {
	result := d.db.WithContext(ctx).Model(&Suggestion{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return Suggestion{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Suggestion{}, ErrSuggestionNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *SuggestionDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteVotesFor(tx, VoteTargetSuggestion, id); err != nil {
			return err
		}

		result := tx.Delete(&Suggestion{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSuggestionNotFound
		}

		return nil
	})
}

func (d *SuggestionDAO) Count(ctx context.Context) (int64, error) {
	var total int64
	err := d.db.WithContext(ctx).Model(&Suggestion{}).Count(&total).Error

	return total, err
}
