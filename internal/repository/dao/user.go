package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`
	Name     string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type HackathonUser struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"uniqueIndex;not null"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Role         string `gorm:"size:16;not null;index"`
	TeamID       *uint  `gorm:"index"`
	TeamJoinedAt *time.Time
	Bio          string `gorm:"type:text"`
	Skills       datatypes.JSONSlice[string]
	Banned       bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ProfileFilter struct {
	Role        string
	WithoutTeam bool
}

type ProfileChanges struct {
	Name   *string
	Bio    *string
	Skills []string
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

// Insert creates the user and its hackathon profile in one transaction.
func (d *UserDAO) Insert(ctx context.Context, user User, profile HackathonUser) (HackathonUser, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if isUniqueViolation(err, "uni_users_email") {
				return ErrUserEmailExists
			}
			return err
		}

		profile.UserID = user.ID
		if err := tx.Omit("User").Create(&profile).Error; err != nil {
			return err
		}
		profile.User = user

		return nil
	})
	if err != nil {
		return HackathonUser{}, err
	}

	return profile, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindProfileByUserID(ctx context.Context, userID uint) (HackathonUser, error) {
	var profile HackathonUser

	result := d.db.WithContext(ctx).Preload("User").First(&profile, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return HackathonUser{}, ErrUserNotFound
		}

		return HackathonUser{}, result.Error
	}

	return profile, nil
}

func (d *UserDAO) FindProfileByEmail(ctx context.Context, email string) (HackathonUser, error) {
	user, err := d.FindByEmail(ctx, email)
	if err != nil {
		return HackathonUser{}, err
	}

	return d.FindProfileByUserID(ctx, user.ID)
}

func (d *UserDAO) ListProfiles(ctx context.Context, filter ProfileFilter) ([]HackathonUser, error) {
	var profiles []HackathonUser

	q := d.db.WithContext(ctx).Preload("User").Order("id ASC")
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.WithoutTeam {
		q = q.Where("team_id IS NULL")
	}

	if err := q.Find(&profiles).Error; err != nil {
		return nil, err
	}

	return profiles, nil
}

func (d *UserDAO) UpdateProfile(ctx context.Context, userID uint, changes ProfileChanges) (HackathonUser, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile HackathonUser
		if err := tx.First(&profile, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if changes.Name != nil {
			if err := tx.Model(&User{}).Where("id = ?", userID).Update("name", *changes.Name).Error; err != nil {
				return err
			}
		}

		updates := map[string]any{}
		if changes.Bio != nil {
			updates["bio"] = *changes.Bio
		}
		if changes.Skills != nil {
			updates["skills"] = datatypes.JSONSlice[string](changes.Skills)
		}
		if len(updates) == 0 {
			return nil
		}

		return tx.Model(&profile).Updates(updates).Error
	})
	if err != nil {
		return HackathonUser{}, err
	}

	return d.FindProfileByUserID(ctx, userID)
}

func (d *UserDAO) SetRole(ctx context.Context, userID uint, role string) error {
	result := d.db.WithContext(ctx).Model(&HackathonUser{}).Where("user_id = ?", userID).Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// BanOutcome reports the team a banned user was taken out of, if any.
type BanOutcome struct {
	TeamID *uint
	Leave  LeaveOutcome
}

// SetBanned flips the banned flag. Banning also removes the user from its
// team in the same transaction. Locks are taken team first, then profile,
// like Join and RemoveMember.
func (d *UserDAO) SetBanned(ctx context.Context, userID uint, banned bool) (BanOutcome, error) {
	for attempt := 0; attempt < banRetries; attempt++ {
		outcome, err := d.setBanned(ctx, userID, banned)
		if !errors.Is(err, errMembershipMoved) {
			return outcome, err
		}
	}

	return BanOutcome{}, errMembershipMoved
}

const banRetries = 3

// errMembershipMoved means the user joined or left a team between the
// unlocked read and the locks; the ban is retried from scratch.
var errMembershipMoved = errors.New("team membership changed during ban")

func (d *UserDAO) setBanned(ctx context.Context, userID uint, banned bool) (BanOutcome, error) {
	var outcome BanOutcome

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seen HackathonUser
		if err := tx.Select("id", "team_id").First(&seen, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var team Team
		if banned && seen.TeamID != nil {
			locked, err := lockTeam(tx, *seen.TeamID)
			if err != nil {
				if errors.Is(err, ErrTeamNotFound) {
					return errMembershipMoved
				}
				return err
			}
			team = locked
		}

		profile, err := lockProfile(tx, userID)
		if err != nil {
			return err
		}

		if banned {
			if !sameTeam(profile.TeamID, seen.TeamID) {
				return errMembershipMoved
			}
			if profile.TeamID != nil {
				leave, err := removeLocked(tx, team, profile)
				if err != nil {
					return err
				}
				teamID := team.ID
				outcome = BanOutcome{TeamID: &teamID, Leave: leave}
			}
		}

		return tx.Model(&HackathonUser{}).Where("id = ?", profile.ID).Update("banned", banned).Error
	})
	if err != nil {
		return BanOutcome{}, err
	}

	return outcome, nil
}

func sameTeam(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return *a == *b
}

func (d *UserDAO) CountByRole(ctx context.Context) (map[string]int64, int64, error) {
	var rows []struct {
		Role  string
		Total int64
	}

	db := d.db.WithContext(ctx)
	err := db.Model(&HackathonUser{}).
		Select("role, COUNT(*) AS total").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Role] = r.Total
	}

	var banned int64
	if err = db.Model(&HackathonUser{}).Where("banned = ?", true).Count(&banned).Error; err != nil {
		return nil, 0, err
	}

	return counts, banned, nil
}
