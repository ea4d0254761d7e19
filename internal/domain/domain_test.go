package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankEntries(t *testing.T) {
	entries := []LeaderboardEntry{
		{ID: 1, Name: "bravo", VoteCount: 3},
		{ID: 2, Name: "Alpha", VoteCount: 3},
		{ID: 3, Name: "charlie", VoteCount: 1},
		{ID: 4, Name: "delta", VoteCount: 5},
	}

	got := RankEntries(entries, 0)

	ids := make([]uint, len(got))
	ranks := make([]int, len(got))
	for i, e := range got {
		ids[i] = e.ID
		ranks[i] = e.Rank
	}
	assert.Equal(t, []uint{4, 2, 1, 3}, ids)
	assert.Equal(t, []int{1, 2, 2, 4}, ranks)

	// input untouched
	assert.Equal(t, 0, entries[0].Rank)
}

func TestRankEntries_Limit(t *testing.T) {
	entries := []LeaderboardEntry{
		{ID: 1, Name: "a", VoteCount: 1},
		{ID: 2, Name: "b", VoteCount: 2},
		{ID: 3, Name: "c", VoteCount: 3},
	}

	got := RankEntries(entries, 2)
	assert.Len(t, got, 2)
	assert.Equal(t, uint(3), got[0].ID)

	assert.Empty(t, RankEntries(nil, 3))
}

func TestValidators(t *testing.T) {
	assert.True(t, TeamStatusOpen.Valid())
	assert.False(t, TeamStatus("archived").Valid())
	assert.True(t, RoleJudge.Valid())
	assert.False(t, Role("owner").Valid())
}

func TestHackathonUser_Public(t *testing.T) {
	joined := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	profile := HackathonUser{
		UserID:   42,
		User:     User{ID: 42, Email: "grace@example.com", Name: "Grace"},
		Role:     RoleParticipant,
		Banned:   true,
		JoinedAt: &joined,
	}

	public := profile.Public()
	assert.Empty(t, public.User.Email)
	assert.False(t, public.Banned)
	assert.Equal(t, "Grace", public.User.Name)
	assert.Equal(t, "grace@example.com", profile.User.Email, "original untouched")

	body, err := json.Marshal(public)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "email")
	assert.NotContains(t, string(body), "banned")
	assert.Contains(t, string(body), `"joined_team_at":"2024-05-01T09:00:00Z"`)

	assert.Nil(t, PublicProfiles(nil))
	assert.Empty(t, PublicProfiles([]HackathonUser{profile})[0].User.Email)
}

func TestHackathonUser_NoTeamOmitsJoinedAt(t *testing.T) {
	body, err := json.Marshal(HackathonUser{UserID: 1})
	require.NoError(t, err)
	assert.NotContains(t, string(body), "joined_team_at")
}
