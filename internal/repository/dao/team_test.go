package dao

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeam_DeriveStatus(t *testing.T) {
	tests := []struct {
		name string
		team Team
		want string
	}{
		{name: "room left", team: Team{MemberCount: 2, MaxMembers: 4, Status: TeamStatusFull}, want: TeamStatusOpen},
		{name: "at capacity", team: Team{MemberCount: 4, MaxMembers: 4, Status: TeamStatusOpen}, want: TeamStatusFull},
		{name: "over capacity", team: Team{MemberCount: 5, MaxMembers: 4, Status: TeamStatusOpen}, want: TeamStatusFull},
		{name: "closed stays closed", team: Team{MemberCount: 4, MaxMembers: 4, Status: TeamStatusClosed}, want: TeamStatusClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.team.deriveStatus()
			assert.Equal(t, tt.want, tt.team.Status)
		})
	}
}

func TestTeamCheck_Run(t *testing.T) {
	var nilCheck TeamCheck
	assert.NoError(t, nilCheck.run(Team{ID: 1}))

	denied := errors.New("denied")
	check := TeamCheck(func(team Team) error {
		if team.LeaderID != 7 {
			return denied
		}
		return nil
	})
	assert.NoError(t, check.run(Team{LeaderID: 7}))
	assert.ErrorIs(t, check.run(Team{LeaderID: 8}), denied)
}

func TestSameTeam(t *testing.T) {
	one, alsoOne, two := uint(1), uint(1), uint(2)

	assert.True(t, sameTeam(nil, nil))
	assert.True(t, sameTeam(&one, &alsoOne))
	assert.False(t, sameTeam(&one, &two))
	assert.False(t, sameTeam(&one, nil))
	assert.False(t, sameTeam(nil, &two))
}
