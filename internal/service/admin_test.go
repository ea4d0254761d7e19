package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/hackathon-api/internal/domain"
)

type adminFixture struct {
	svc         *AdminService
	users       *fakeUserRepo
	ideas       *fakeIdeaRepo
	teams       *fakeTeamRepo
	suggestions *fakeSuggestionRepo
	votes       *fakeVoteRepo
	events      *recordingPublisher
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		users:       &fakeUserRepo{},
		ideas:       newFakeIdeaRepo(),
		teams:       newFakeTeamRepo(),
		suggestions: newFakeSuggestionRepo(),
		votes:       newFakeVoteRepo(),
		events:      &recordingPublisher{},
	}
	f.svc = NewAdminService(f.users, f.ideas, f.teams, f.suggestions, f.votes, f.events)

	return f
}

func TestAdminService_RequiresAdmin(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()
	bannedAdmin := admin(1)
	bannedAdmin.Banned = true

	for _, actor := range []domain.HackathonUser{participant(1), bannedAdmin} {
		_, err := f.svc.ListUsers(ctx, actor, domain.UserFilter{})
		assert.ErrorIs(t, err, ErrPermissionDenied)
		_, err = f.svc.SetRole(ctx, actor, 2, domain.RoleJudge)
		assert.ErrorIs(t, err, ErrPermissionDenied)
		_, err = f.svc.SetBanned(ctx, actor, 2, true)
		assert.ErrorIs(t, err, ErrPermissionDenied)
		assert.ErrorIs(t, f.svc.HideIdea(ctx, actor, 1, true), ErrPermissionDenied)
		assert.ErrorIs(t, f.svc.DeleteTeam(ctx, actor, 1), ErrPermissionDenied)
		assert.ErrorIs(t, f.svc.DeleteSuggestion(ctx, actor, 1), ErrPermissionDenied)
		_, err = f.svc.Stats(ctx, actor)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	}
}

func TestAdminService_SetRole(t *testing.T) {
	f := newAdminFixture()
	var setTo domain.Role
	f.users.setRoleFn = func(_ context.Context, _ uint, role domain.Role) error {
		setTo = role
		return nil
	}
	f.users.findProfileByUserIDFn = func(_ context.Context, userID uint) (domain.HackathonUser, error) {
		return domain.HackathonUser{UserID: userID, Role: setTo}, nil
	}
	ctx := context.Background()

	_, err := f.svc.SetRole(ctx, admin(1), 2, "wizard")
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = f.svc.SetRole(ctx, admin(1), 1, domain.RoleParticipant)
	assert.ErrorIs(t, err, ErrCannotDemoteSelf)

	profile, err := f.svc.SetRole(ctx, admin(1), 2, domain.RoleJudge)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleJudge, profile.Role)
	assert.Equal(t, []domain.EventType{domain.EventUserUpdated}, f.events.types())
}

func TestAdminService_SetBanned_RemovesFromTeam(t *testing.T) {
	f := newAdminFixture()

	var banned bool
	f.users.setBannedFn = func(_ context.Context, _ uint, b bool) (domain.BanOutcome, error) {
		banned = b
		members := []domain.HackathonUser{{UserID: 3, User: domain.User{Email: "grace@example.com"}}}
		return domain.BanOutcome{
			TeamID: uintPtr(7),
			Leave:  domain.TeamLeaveResult{Team: domain.Team{ID: 7, MemberCount: 2, InviteCode: "secret", Members: members}},
		}, nil
	}
	f.users.findProfileByUserIDFn = func(_ context.Context, userID uint) (domain.HackathonUser, error) {
		p := participant(userID)
		p.User.Email = "ada@example.com"
		p.Banned = banned
		return p, nil
	}

	profile, err := f.svc.SetBanned(context.Background(), admin(1), 2, true)
	require.NoError(t, err)
	assert.True(t, profile.Banned)
	assert.Equal(t, "ada@example.com", profile.User.Email)
	require.Equal(t, []domain.EventType{domain.EventTeamUpdated, domain.EventUserUpdated}, f.events.types())

	team, ok := f.events.events[0].Payload.(domain.Team)
	require.True(t, ok)
	assert.Empty(t, team.InviteCode)
	assert.Empty(t, team.Members[0].User.Email)

	user, ok := f.events.events[1].Payload.(domain.HackathonUser)
	require.True(t, ok)
	assert.Empty(t, user.User.Email)
	assert.False(t, user.Banned)
}

func TestAdminService_SetBanned_DisbandsTeam(t *testing.T) {
	f := newAdminFixture()
	f.users.setBannedFn = func(context.Context, uint, bool) (domain.BanOutcome, error) {
		return domain.BanOutcome{TeamID: uintPtr(7), Leave: domain.TeamLeaveResult{Disbanded: true}}, nil
	}

	_, err := f.svc.SetBanned(context.Background(), admin(1), 2, true)
	require.NoError(t, err)
	assert.Equal(t, []domain.EventType{
		domain.EventTeamDeleted,
		domain.EventLeaderboardChanged,
		domain.EventUserUpdated,
	}, f.events.types())
}

func TestAdminService_SetBanned_FailurePublishesNothing(t *testing.T) {
	f := newAdminFixture()
	f.users.setBannedFn = func(context.Context, uint, bool) (domain.BanOutcome, error) {
		return domain.BanOutcome{}, ErrUserNotFound
	}

	_, err := f.svc.SetBanned(context.Background(), admin(1), 2, true)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, f.events.types())
}

func TestAdminService_SetBanned_Self(t *testing.T) {
	f := newAdminFixture()

	_, err := f.svc.SetBanned(context.Background(), admin(1), 1, true)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestAdminService_HideIdea(t *testing.T) {
	f := newAdminFixture()
	f.ideas.ideas[1] = domain.Idea{ID: 1}

	require.NoError(t, f.svc.HideIdea(context.Background(), admin(9), 1, true))
	assert.True(t, f.ideas.ideas[1].Hidden)
	assert.Equal(t, []domain.EventType{domain.EventIdeaUpdated, domain.EventLeaderboardChanged}, f.events.types())

	assert.ErrorIs(t, f.svc.HideIdea(context.Background(), admin(9), 2, true), ErrIdeaNotFound)
}

func TestAdminService_Stats(t *testing.T) {
	f := newAdminFixture()
	f.users.countByRoleFn = func(context.Context) (map[domain.Role]int64, int64, error) {
		return map[domain.Role]int64{domain.RoleParticipant: 4, domain.RoleAdmin: 1}, 1, nil
	}
	f.ideas.ideas[1] = domain.Idea{ID: 1}
	f.ideas.ideas[2] = domain.Idea{ID: 2, Hidden: true}
	f.teams.teams[1] = domain.Team{ID: 1, Status: domain.TeamStatusOpen}
	f.teams.teams[2] = domain.Team{ID: 2, Status: domain.TeamStatusFull}
	f.suggestions.suggestions[1] = domain.Suggestion{ID: 1}
	f.votes.voted[domain.VoteTargetIdea] = map[uint]bool{1: true}

	stats, err := f.svc.Stats(context.Background(), admin(9))
	require.NoError(t, err)

	assert.Equal(t, int64(5), stats.Users)
	assert.Equal(t, int64(1), stats.BannedUsers)
	assert.Equal(t, int64(2), stats.Ideas)
	assert.Equal(t, int64(1), stats.HiddenIdeas)
	assert.Equal(t, int64(2), stats.Teams)
	assert.Equal(t, int64(1), stats.TeamsByStatus[domain.TeamStatusFull])
	assert.Equal(t, int64(1), stats.Suggestions)
	assert.Equal(t, int64(1), stats.Votes[domain.VoteTargetIdea])
}
