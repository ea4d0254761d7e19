package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrTeamNotFound          = errors.New("team not found")
	ErrTeamNameExists        = errors.New("team name already taken")
	ErrTeamFull              = errors.New("team is full")
	ErrTeamClosed            = errors.New("team is closed")
	ErrAlreadyInTeam         = errors.New("user already belongs to a team")
	ErrNotTeamMember         = errors.New("user is not a member of this team")
	ErrCapacityBelowMembers  = errors.New("max members cannot be lower than the current member count")
	ErrInvalidTeamTransition = errors.New("invalid team status")
)

const (
	TeamStatusOpen   = "open"
	TeamStatusFull   = "full"
	TeamStatusClosed = "closed"
)

type Team struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:80;uniqueIndex:idx_teams_name;not null"`
	Description string `gorm:"type:text"`
	IdeaID      *uint  `gorm:"index"`
	Idea        *Idea  `gorm:"foreignKey:IdeaID;constraint:OnDelete:SET NULL"`
	LeaderID    uint   `gorm:"not null;index"`
	InviteCode  string `gorm:"size:36;uniqueIndex;not null"`
	MemberCount int    `gorm:"not null;default:0"`
	MaxMembers  int    `gorm:"not null"`
	Status      string `gorm:"size:16;not null;default:'open';index"`
	VoteCount   int    `gorm:"not null;default:0"`

	Members []HackathonUser `gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// deriveStatus recomputes open/full after a membership or capacity change.
// A closed team stays closed.
func (t *Team) deriveStatus() {
	if t.Status == TeamStatusClosed {
		return
	}
	if t.MemberCount >= t.MaxMembers {
		t.Status = TeamStatusFull
		return
	}
	t.Status = TeamStatusOpen
}

type TeamChanges struct {
	Name        *string
	Description *string
	IdeaID      *uint
	ClearIdea   bool
	MaxMembers  *int
	Status      *string
}

// TeamCheck runs against the locked team row inside the transaction. A nil
// check allows the change.
type TeamCheck func(team Team) error

func (c TeamCheck) run(team Team) error {
	if c == nil {
		return nil
	}

	return c(team)
}

type LeaveOutcome struct {
	Team      Team
	Disbanded bool
	NewLeader uint
}

type TeamDAO struct {
	db *gorm.DB
}

func NewTeamDAO(db *gorm.DB) *TeamDAO {
	return &TeamDAO{
		db: db,
	}
}

func lockProfile(tx *gorm.DB, userID uint) (HackathonUser, error) {
	var profile HackathonUser
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HackathonUser{}, ErrUserNotFound
		}
		return HackathonUser{}, err
	}

	return profile, nil
}

func lockTeam(tx *gorm.DB, teamID uint) (Team, error) {
	var team Team
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&team, teamID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Team{}, ErrTeamNotFound
		}
		return Team{}, err
	}

	return team, nil
}

func setMembership(tx *gorm.DB, profileID uint, teamID *uint) error {
	var joinedAt *time.Time
	if teamID != nil {
		now := time.Now()
		joinedAt = &now
	}

	return tx.Model(&HackathonUser{}).Where("id = ?", profileID).Updates(map[string]any{
		"team_id":        teamID,
		"team_joined_at": joinedAt,
	}).Error
}

func saveCounters(tx *gorm.DB, team *Team) error {
	return tx.Model(team).Updates(map[string]any{
		"member_count": team.MemberCount,
		"status":       team.Status,
		"leader_id":    team.LeaderID,
	}).Error
}

// Insert creates the team with the leader as its first member.
func (d *TeamDAO) Insert(ctx context.Context, team Team) (Team, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		leader, err := lockProfile(tx, team.LeaderID)
		if err != nil {
			return err
		}
		if leader.TeamID != nil {
			return ErrAlreadyInTeam
		}

		team.MemberCount = 1
		if team.Status == "" {
			team.Status = TeamStatusOpen
		}
		team.deriveStatus()

		if err = tx.Omit("Members", "Idea").Create(&team).Error; err != nil {
			if isUniqueViolation(err, "idx_teams_name") {
				return ErrTeamNameExists
			}
			return err
		}

		return setMembership(tx, leader.ID, &team.ID)
	})
	if err != nil {
		return Team{}, err
	}

	return d.FindByID(ctx, team.ID, true)
}

func (d *TeamDAO) FindByID(ctx context.Context, id uint, withMembers bool) (Team, error) {
	var team Team

	q := d.db.WithContext(ctx)
	if withMembers {
		q = q.Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("team_joined_at ASC").Order("id ASC")
		}).Preload("Members.User")
	}

	result := q.First(&team, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Team{}, ErrTeamNotFound
		}

		return Team{}, result.Error
	}

	return team, nil
}

func (d *TeamDAO) List(ctx context.Context, status string) ([]Team, error) {
	var teams []Team

	q := d.db.WithContext(ctx).Order("created_at ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	if err := q.Find(&teams).Error; err != nil {
		return nil, err
	}

	return teams, nil
}

// Join adds the user to the team. Open teams accept anyone while capacity
// remains; closed teams only accept the matching invite code.
func (d *TeamDAO) Join(ctx context.Context, teamID, userID uint, inviteCode string) (Team, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team, err := lockTeam(tx, teamID)
		if err != nil {
			return err
		}

		profile, err := lockProfile(tx, userID)
		if err != nil {
			return err
		}
		if profile.TeamID != nil {
			return ErrAlreadyInTeam
		}

		if team.Status == TeamStatusClosed && (inviteCode == "" || inviteCode != team.InviteCode) {
			return ErrTeamClosed
		}
		if team.MemberCount >= team.MaxMembers {
			return ErrTeamFull
		}

		if err = setMembership(tx, profile.ID, &team.ID); err != nil {
			return err
		}

		team.MemberCount++
		team.deriveStatus()

		return saveCounters(tx, &team)
	})
	if err != nil {
		return Team{}, err
	}

	return d.FindByID(ctx, teamID, true)
}

// RemoveMember takes the user out of the team. The leader role passes to the
// longest-standing remaining member; removing the last member disbands the team.
func (d *TeamDAO) RemoveMember(ctx context.Context, teamID, userID uint, check TeamCheck) (LeaveOutcome, error) {
	var outcome LeaveOutcome

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team, err := lockTeam(tx, teamID)
		if err != nil {
			return err
		}
		if err = check.run(team); err != nil {
			return err
		}

		profile, err := lockProfile(tx, userID)
		if err != nil {
			return err
		}

		outcome, err = removeLocked(tx, team, profile)

		return err
	})
	if err != nil {
		return LeaveOutcome{}, err
	}

	return outcome, nil
}

// removeLocked expects both the team and the profile rows to be locked by tx.
func removeLocked(tx *gorm.DB, team Team, profile HackathonUser) (LeaveOutcome, error) {
	if profile.TeamID == nil || *profile.TeamID != team.ID {
		return LeaveOutcome{}, ErrNotTeamMember
	}

	if err := setMembership(tx, profile.ID, nil); err != nil {
		return LeaveOutcome{}, err
	}

	team.MemberCount--
	if team.MemberCount <= 0 {
		if err := deleteVotesFor(tx, VoteTargetTeam, team.ID); err != nil {
			return LeaveOutcome{}, err
		}
		if err := tx.Delete(&Team{}, team.ID).Error; err != nil {
			return LeaveOutcome{}, err
		}
		team.MemberCount = 0

		return LeaveOutcome{Team: team, Disbanded: true}, nil
	}

	var outcome LeaveOutcome
	if team.LeaderID == profile.UserID {
		var successor HackathonUser
		err := tx.Where("team_id = ?", team.ID).
			Order("team_joined_at ASC").
			Order("id ASC").
			First(&successor).Error
		if err != nil {
			return LeaveOutcome{}, err
		}
		team.LeaderID = successor.UserID
		outcome.NewLeader = successor.UserID
	}

	team.deriveStatus()
	if err := saveCounters(tx, &team); err != nil {
		return LeaveOutcome{}, err
	}
	outcome.Team = team

	return outcome, nil
}

func (d *TeamDAO) Update(ctx context.Context, teamID uint, changes TeamChanges, check TeamCheck) (Team, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team, err := lockTeam(tx, teamID)
		if err != nil {
			return err
		}
		if err = check.run(team); err != nil {
			return err
		}

		updates := map[string]any{}
		if changes.Name != nil {
			updates["name"] = *changes.Name
		}
		if changes.Description != nil {
			updates["description"] = *changes.Description
		}
		if changes.ClearIdea {
			updates["idea_id"] = nil
		} else if changes.IdeaID != nil {
			updates["idea_id"] = *changes.IdeaID
		}
		if changes.MaxMembers != nil {
			if *changes.MaxMembers < team.MemberCount {
				return ErrCapacityBelowMembers
			}
			team.MaxMembers = *changes.MaxMembers
			updates["max_members"] = team.MaxMembers
		}
		if changes.Status != nil {
			switch *changes.Status {
			case TeamStatusClosed:
				team.Status = TeamStatusClosed
			case TeamStatusOpen:
				// Reopening recomputes full/open from the counters.
				team.Status = TeamStatusOpen
			default:
				return ErrInvalidTeamTransition
			}
		}
		team.deriveStatus()
		updates["status"] = team.Status

		if err = tx.Model(&team).Updates(updates).Error; err != nil {
			if isUniqueViolation(err, "idx_teams_name") {
				return ErrTeamNameExists
			}
			return err
		}

		return nil
	})
	if err != nil {
		return Team{}, err
	}

	return d.FindByID(ctx, teamID, true)
}

func (d *TeamDAO) SetInviteCode(ctx context.Context, teamID uint, code string, check TeamCheck) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team, err := lockTeam(tx, teamID)
		if err != nil {
			return err
		}
		if err = check.run(team); err != nil {
			return err
		}

		return tx.Model(&team).Update("invite_code", code).Error
	})
}

// Delete clears every member's team reference before dropping the team and its votes.
func (d *TeamDAO) Delete(ctx context.Context, teamID uint, check TeamCheck) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team, err := lockTeam(tx, teamID)
		if err != nil {
			return err
		}
		if err = check.run(team); err != nil {
			return err
		}

		err = tx.Model(&HackathonUser{}).Where("team_id = ?", team.ID).Updates(map[string]any{
			"team_id":        nil,
			"team_joined_at": nil,
		}).Error
		if err != nil {
			return err
		}

		if err = deleteVotesFor(tx, VoteTargetTeam, team.ID); err != nil {
			return err
		}

		return tx.Delete(&Team{}, team.ID).Error
	})
}

func (d *TeamDAO) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}

	err := d.db.WithContext(ctx).Model(&Team{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}

	return counts, nil
}
