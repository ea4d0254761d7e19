package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/hackathon-api/internal/domain"
)

func newTeamService(teams *fakeTeamRepo, ideas *fakeIdeaRepo, votes *fakeVoteRepo) (*TeamService, *recordingPublisher, *recordingMetrics) {
	events := &recordingPublisher{}
	m := &recordingMetrics{}

	return NewTeamService(teams, ideas, votes, defaultRules, events, m), events, m
}

func TestTeamService_CreateTeam(t *testing.T) {
	teams := newFakeTeamRepo()
	svc, events, m := newTeamService(teams, newFakeIdeaRepo(domain.Idea{ID: 4}), newFakeVoteRepo())

	team, err := svc.CreateTeam(context.Background(), participant(1), domain.Team{
		Name:       "Wheels",
		IdeaID:     uintPtr(4),
		MaxMembers: 50,
		Status:     domain.TeamStatusClosed,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(1), team.LeaderID)
	assert.Equal(t, 5, team.MaxMembers)
	assert.Equal(t, domain.TeamStatusOpen, team.Status)
	assert.NotEmpty(t, team.InviteCode)
	assert.Equal(t, []string{"create"}, m.membership)

	require.Len(t, events.events, 2)
	assert.Equal(t, domain.EventTeamCreated, events.events[0].Type)
	published, ok := events.events[0].Payload.(domain.Team)
	require.True(t, ok)
	assert.Empty(t, published.InviteCode)
}

func TestTeamService_CreateTeam_Rejections(t *testing.T) {
	ideas := newFakeIdeaRepo(domain.Idea{ID: 4, Hidden: true})

	banned := participant(1)
	banned.Banned = true
	inTeam := participant(2)
	inTeam.TeamID = uintPtr(7)
	mentor := participant(3)
	mentor.Role = domain.RoleMentor

	tests := []struct {
		name    string
		actor   domain.HackathonUser
		team    domain.Team
		wantErr error
	}{
		{name: "banned", actor: banned, wantErr: ErrBanned},
		{name: "already in team", actor: inTeam, wantErr: ErrAlreadyInTeam},
		{name: "not a participant", actor: mentor, wantErr: ErrNotParticipant},
		{name: "hidden idea", actor: participant(4), team: domain.Team{IdeaID: uintPtr(4)}, wantErr: ErrIdeaNotFound},
		{name: "missing idea", actor: participant(4), team: domain.Team{IdeaID: uintPtr(5)}, wantErr: ErrIdeaNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTeamService(newFakeTeamRepo(), ideas, newFakeVoteRepo())

			_, err := svc.CreateTeam(context.Background(), tt.actor, tt.team)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTeamService_ListTeams_HidesInviteCodes(t *testing.T) {
	teams := newFakeTeamRepo(
		domain.Team{ID: 1, InviteCode: "one", Status: domain.TeamStatusOpen},
		domain.Team{ID: 2, InviteCode: "two", Status: domain.TeamStatusOpen},
	)
	votes := newFakeVoteRepo()
	votes.voted[domain.VoteTargetTeam] = map[uint]bool{2: true}
	svc, _, _ := newTeamService(teams, newFakeIdeaRepo(), votes)

	member := participant(1)
	member.TeamID = uintPtr(1)

	list, err := svc.ListTeams(context.Background(), member, "")
	require.NoError(t, err)
	require.Len(t, list, 2)

	byID := map[uint]domain.Team{}
	for _, team := range list {
		byID[team.ID] = team
	}
	assert.Equal(t, "one", byID[1].InviteCode)
	assert.Empty(t, byID[2].InviteCode)
	assert.True(t, byID[2].HasVoted)

	team, err := svc.GetTeam(context.Background(), admin(9), 2)
	require.NoError(t, err)
	assert.Equal(t, "two", team.InviteCode)
}

func TestTeamService_JoinTeam(t *testing.T) {
	teams := newFakeTeamRepo(domain.Team{ID: 1, MemberCount: 1, InviteCode: "code"})
	var gotCode string
	teams.joinFn = func(_ context.Context, teamID, _ uint, inviteCode string) (domain.Team, error) {
		gotCode = inviteCode
		return domain.Team{ID: teamID, MemberCount: 2, InviteCode: "code"}, nil
	}
	svc, events, m := newTeamService(teams, newFakeIdeaRepo(), newFakeVoteRepo())

	team, err := svc.JoinTeam(context.Background(), participant(2), 1, "code")
	require.NoError(t, err)
	assert.Equal(t, 2, team.MemberCount)
	assert.Equal(t, "code", gotCode)
	assert.Equal(t, []string{"join"}, m.membership)
	assert.Equal(t, []domain.EventType{domain.EventTeamUpdated}, events.types())

	inTeam := participant(3)
	inTeam.TeamID = uintPtr(1)
	_, err = svc.JoinTeam(context.Background(), inTeam, 1, "code")
	assert.ErrorIs(t, err, ErrAlreadyInTeam)
}

func TestTeamService_JoinTeam_PropagatesFull(t *testing.T) {
	teams := newFakeTeamRepo()
	teams.joinFn = func(context.Context, uint, uint, string) (domain.Team, error) {
		return domain.Team{}, ErrTeamFull
	}
	svc, _, _ := newTeamService(teams, newFakeIdeaRepo(), newFakeVoteRepo())

	_, err := svc.JoinTeam(context.Background(), participant(2), 1, "")
	assert.ErrorIs(t, err, ErrTeamFull)
}

func TestTeamService_LeaveTeam_Disbanded(t *testing.T) {
	teams := newFakeTeamRepo(domain.Team{ID: 1, LeaderID: 1, MemberCount: 1})
	teams.removeFn = func(context.Context, uint, uint) (domain.TeamLeaveResult, error) {
		return domain.TeamLeaveResult{Disbanded: true}, nil
	}
	svc, events, _ := newTeamService(teams, newFakeIdeaRepo(), newFakeVoteRepo())

	result, err := svc.LeaveTeam(context.Background(), participant(1), 1)
	require.NoError(t, err)
	assert.True(t, result.Disbanded)
	assert.Equal(t, []domain.EventType{domain.EventTeamDeleted, domain.EventLeaderboardChanged}, events.types())
}

func TestTeamService_KickMember(t *testing.T) {
	teams := newFakeTeamRepo(domain.Team{ID: 1, LeaderID: 1, MemberCount: 3})
	svc, events, m := newTeamService(teams, newFakeIdeaRepo(), newFakeVoteRepo())
	ctx := context.Background()

	_, err := svc.KickMember(ctx, participant(2), 1, 3)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.KickMember(ctx, participant(1), 1, 1)
	assert.ErrorIs(t, err, ErrCannotKickSelf)

	result, err := svc.KickMember(ctx, participant(1), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Team.MemberCount)
	assert.Equal(t, []string{"kick"}, m.membership)
	assert.Equal(t, []domain.EventType{domain.EventTeamUpdated}, events.types())

	_, err = svc.KickMember(ctx, admin(9), 1, 2)
	assert.NoError(t, err)
}

func TestTeamService_UpdateTeam(t *testing.T) {
	teams := newFakeTeamRepo(domain.Team{ID: 1, LeaderID: 1, MemberCount: 2, MaxMembers: 4, Status: domain.TeamStatusOpen})
	svc, events, _ := newTeamService(teams, newFakeIdeaRepo(), newFakeVoteRepo())
	ctx := context.Background()

	full := domain.TeamStatusFull
	_, err := svc.UpdateTeam(ctx, participant(1), 1, domain.TeamUpdate{Status: &full})
	assert.ErrorIs(t, err, ErrInvalidTeamTransition)

	_, err = svc.UpdateTeam(ctx, participant(2), 1, domain.TeamUpdate{})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.UpdateTeam(ctx, participant(1), 1, domain.TeamUpdate{IdeaID: uintPtr(77)})
	assert.ErrorIs(t, err, ErrIdeaNotFound)

	name := "Renamed"
	size := 99
	closed := domain.TeamStatusClosed
	team, err := svc.UpdateTeam(ctx, participant(1), 1, domain.TeamUpdate{Name: &name, MaxMembers: &size, Status: &closed})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", team.Name)
	assert.Equal(t, 5, team.MaxMembers)
	assert.Equal(t, domain.TeamStatusClosed, team.Status)
	assert.Equal(t, []domain.EventType{domain.EventTeamUpdated, domain.EventLeaderboardChanged}, events.types())
}

func TestTeamService_DeleteTeam(t *testing.T) {
	teams := newFakeTeamRepo(domain.Team{ID: 1, LeaderID: 1}, domain.Team{ID: 2, LeaderID: 2})
	svc, _, _ := newTeamService(teams, newFakeIdeaRepo(), newFakeVoteRepo())
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeleteTeam(ctx, participant(2), 1), ErrPermissionDenied)
	require.NoError(t, svc.DeleteTeam(ctx, participant(1), 1))
	require.NoError(t, svc.DeleteTeam(ctx, admin(9), 2))
	assert.Equal(t, []uint{1, 2}, teams.deleted)
}

func TestTeamService_RegenerateInviteCode(t *testing.T) {
	teams := newFakeTeamRepo(domain.Team{ID: 1, LeaderID: 1, InviteCode: "old"})
	svc, _, _ := newTeamService(teams, newFakeIdeaRepo(), newFakeVoteRepo())

	_, err := svc.RegenerateInviteCode(context.Background(), participant(2), 1)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	code, err := svc.RegenerateInviteCode(context.Background(), participant(1), 1)
	require.NoError(t, err)
	assert.NotEqual(t, "old", code)
	assert.Equal(t, code, teams.inviteCodes[1])
}

func TestTeamService_ToggleVote(t *testing.T) {
	svc, _, m := newTeamService(newFakeTeamRepo(), newFakeIdeaRepo(), newFakeVoteRepo())

	member := participant(1)
	member.TeamID = uintPtr(3)

	_, err := svc.ToggleVote(context.Background(), member, 3)
	assert.ErrorIs(t, err, ErrSelfVote)

	result, err := svc.ToggleVote(context.Background(), member, 4)
	require.NoError(t, err)
	assert.True(t, result.Voted)
	assert.Equal(t, []string{"+team"}, m.votes)
}

func TestTeamService_GetTeam_MemberEmails(t *testing.T) {
	members := []domain.HackathonUser{
		{UserID: 1, TeamID: uintPtr(1), User: domain.User{Email: "ada@example.com"}},
		{UserID: 2, TeamID: uintPtr(1), User: domain.User{Email: "grace@example.com"}, Banned: true},
	}
	teams := newFakeTeamRepo(domain.Team{ID: 1, LeaderID: 1, InviteCode: "code", Members: members})
	svc, _, _ := newTeamService(teams, newFakeIdeaRepo(), newFakeVoteRepo())
	ctx := context.Background()

	member := participant(1)
	member.TeamID = uintPtr(1)

	tests := []struct {
		name      string
		actor     domain.HackathonUser
		wantEmail bool
		wantCode  bool
	}{
		{name: "outsider", actor: participant(5)},
		{name: "member", actor: member, wantCode: true},
		{name: "admin", actor: admin(9), wantEmail: true, wantCode: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			team, err := svc.GetTeam(ctx, tt.actor, 1)
			require.NoError(t, err)
			require.Len(t, team.Members, 2)

			assert.Equal(t, tt.wantCode, team.InviteCode != "")
			for _, m := range team.Members {
				assert.Equal(t, tt.wantEmail, m.User.Email != "")
			}
			assert.Equal(t, tt.wantEmail, team.Members[1].Banned)
		})
	}

	assert.Equal(t, "ada@example.com", teams.teams[1].Members[0].User.Email)
}

func TestTeamService_JoinTeam_EventHasNoEmails(t *testing.T) {
	teams := newFakeTeamRepo()
	teams.joinFn = func(_ context.Context, teamID, userID uint, _ string) (domain.Team, error) {
		return domain.Team{ID: teamID, InviteCode: "code", Members: []domain.HackathonUser{
			{UserID: userID, User: domain.User{Email: "grace@example.com"}},
		}}, nil
	}
	svc, events, _ := newTeamService(teams, newFakeIdeaRepo(), newFakeVoteRepo())

	_, err := svc.JoinTeam(context.Background(), participant(2), 1, "code")
	require.NoError(t, err)
	require.Len(t, events.events, 1)

	payload, err := json.Marshal(events.events[0].Payload)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "grace@example.com")
	assert.NotContains(t, string(payload), `"email"`)
	assert.NotContains(t, string(payload), `"invite_code":"code"`)
}

func TestTeamService_LeaderChecksSeeStoredLeader(t *testing.T) {
	// user 1 created the team but leadership has since moved to user 2.
	teams := newFakeTeamRepo(domain.Team{ID: 1, LeaderID: 2, MemberCount: 3, Name: "Wheels"})
	svc, events, _ := newTeamService(teams, newFakeIdeaRepo(), newFakeVoteRepo())
	ctx := context.Background()

	former := participant(1)
	former.TeamID = uintPtr(1)

	name := "Hijacked"
	_, err := svc.UpdateTeam(ctx, former, 1, domain.TeamUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.KickMember(ctx, former, 1, 2)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.RegenerateInviteCode(ctx, former, 1)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	assert.ErrorIs(t, svc.DeleteTeam(ctx, former, 1), ErrPermissionDenied)

	assert.Equal(t, "Wheels", teams.teams[1].Name)
	assert.Empty(t, teams.updates)
	assert.Empty(t, teams.inviteCodes)
	assert.Empty(t, teams.deleted)
	assert.Empty(t, events.types())
}

func TestTeamService_MissingTeam(t *testing.T) {
	svc, _, _ := newTeamService(newFakeTeamRepo(), newFakeIdeaRepo(), newFakeVoteRepo())

	_, err := svc.RegenerateInviteCode(context.Background(), participant(1), 9)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}
