package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrIdeaNotFound = errors.New("idea not found")

type Idea struct {
	ID          uint   `gorm:"primaryKey"`
	AuthorID    uint   `gorm:"not null;index"`
	Author      User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Title       string `gorm:"size:120;not null"`
	Description string `gorm:"type:text;not null"`
	Tags        datatypes.JSONSlice[string]
	VoteCount   int  `gorm:"not null;default:0"`
	Hidden      bool `gorm:"not null;default:false;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type IdeaQuery struct {
	OrderByVotes  bool
	Search        string
	IncludeHidden bool
}

type IdeaChanges struct {
	Title       *string
	Description *string
	Tags        []string
}

type IdeaDAO struct {
	db *gorm.DB
}

func NewIdeaDAO(db *gorm.DB) *IdeaDAO {
	return &IdeaDAO{
		db: db,
	}
}

func (d *IdeaDAO) Insert(ctx context.Context, idea Idea) (Idea, error) {
	if err := d.db.WithContext(ctx).Omit("Author").Create(&idea).Error; err != nil {
		return Idea{}, err
	}

	return d.FindByID(ctx, idea.ID)
}

func (d *IdeaDAO) FindByID(ctx context.Context, id uint) (Idea, error) {
	var idea Idea

	result := d.db.WithContext(ctx).Preload("Author").First(&idea, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Idea{}, ErrIdeaNotFound
		}

		return Idea{}, result.Error
	}

	return idea, nil
}

func (d *IdeaDAO) List(ctx context.Context, query IdeaQuery) ([]Idea, error) {
	var ideas []Idea

	q := d.db.WithContext(ctx).Preload("Author")
	if !query.IncludeHidden {
		q = q.Where("hidden = ?", false)
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if query.OrderByVotes {
		q = q.Order("vote_count DESC").Order("created_at ASC")
	} else {
		q = q.Order("created_at DESC")
	}

	if err := q.Find(&ideas).Error; err != nil {
		return nil, err
	}

	return ideas, nil
}

func (d *IdeaDAO) Update(ctx context.Context, id uint, changes IdeaChanges) (Idea, error) {
	updates := map[string]any{}
	if changes.Title != nil {
		updates["title"] = *changes.Title
	}
	if changes.Description != nil {
		updates["description"] = *changes.Description
	}
	if changes.Tags != nil {
		updates["tags"] = datatypes.JSONSlice[string](changes.Tags)
	}

	if len(updates) > 0 {
		result := d.db.WithContext(ctx).Model(&Idea{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return Idea{}, result.Error
		}
		if result.RowsAffected == 0 {
			return Idea{}, ErrIdeaNotFound
		}
	}

	return d.FindByID(ctx, id)
}

func (d *IdeaDAO) SetHidden(ctx context.Context, id uint, hidden bool) error {
	result := d.db.WithContext(ctx).Model(&Idea{}).Where("id = ?", id).Update("hidden", hidden)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrIdeaNotFound
	}

	return nil
}

// Delete removes the idea with its votes and detaches any team working on it.
func (d *IdeaDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteVotesFor(tx, VoteTargetIdea, id); err != nil {
			return err
		}

		if err := tx.Model(&Team{}).Where("idea_id = ?", id).Update("idea_id", nil).Error; err != nil {
			return err
		}

		result := tx.Delete(&Idea{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrIdeaNotFound
		}

		return nil
	})
}

func (d *IdeaDAO) Count(ctx context.Context) (total int64, hidden int64, err error) {
	db := d.db.WithContext(ctx)
	if err = db.Model(&Idea{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = db.Model(&Idea{}).Where("hidden = ?", true).Count(&hidden).Error; err != nil {
		return 0, 0, err
	}

	return total, hidden, nil
}
