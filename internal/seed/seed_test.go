package seed

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/hackathon-api/internal/domain"
	"github.com/vietanh2810/hackathon-api/internal/service"
)

const fixturesYAML = `
users:
  - email: ada@example.com
    password: secret123
    name: Ada
    role: participant
    skills: [go, sql]
  - email: root@example.com
    password: secret123
    name: Root
    role: admin
  - email: bob@example.com
    password: secret123
    name: Bob
ideas:
  - author: ada@example.com
    title: Carpool finder
    description: Match commuters
    tags: [mobility]
teams:
  - name: Wheels
    leader: ada@example.com
    idea: Carpool finder
    max_members: 3
    members: [bob@example.com]
suggestions:
  - author: bob@example.com
    title: More coffee
    body: Please
`

type fakeStore struct {
	nextID   uint
	profiles map[string]domain.HackathonUser
	roles    map[uint]domain.Role
	joins    []string
	teams    []domain.Team
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles: map[string]domain.HackathonUser{},
		roles:    map[uint]domain.Role{},
	}
}

func (f *fakeStore) Signup(_ context.Context, p domain.HackathonUser) (domain.HackathonUser, error) {
	if _, ok := f.profiles[p.User.Email]; ok {
		return domain.HackathonUser{}, fmt.Errorf("s.repo.Create -> %w", service.ErrUserEmailExists)
	}
	f.nextID++
	p.UserID = f.nextID
	f.profiles[p.User.Email] = p

	return p, nil
}

func (f *fakeStore) FindProfileByEmail(_ context.Context, email string) (domain.HackathonUser, error) {
	p, ok := f.profiles[email]
	if !ok {
		return domain.HackathonUser{}, service.ErrUserNotFound
	}

	return p, nil
}

func (f *fakeStore) SetRole(_ context.Context, userID uint, role domain.Role) error {
	f.roles[userID] = role
	return nil
}

func (f *fakeStore) CreateIdea(_ context.Context, actor domain.HackathonUser, idea domain.Idea) (domain.Idea, error) {
	idea.ID = 40
	idea.AuthorID = actor.UserID

	return idea, nil
}

func (f *fakeStore) CreateTeam(_ context.Context, actor domain.HackathonUser, team domain.Team) (domain.Team, error) {
	team.ID = 9
	team.LeaderID = actor.UserID
	team.InviteCode = "code"
	f.teams = append(f.teams, team)

	return team, nil
}

func (f *fakeStore) JoinTeam(_ context.Context, actor domain.HackathonUser, id uint, inviteCode string) (domain.Team, error) {
	f.joins = append(f.joins, fmt.Sprintf("%s:%d:%s", actor.User.Email, id, inviteCode))
	return domain.Team{ID: id}, nil
}

func (f *fakeStore) CreateSuggestion(_ context.Context, actor domain.HackathonUser, s domain.Suggestion) (domain.Suggestion, error) {
	s.AuthorID = actor.UserID
	return s, nil
}

func newTestSeeder(f *fakeStore) *Seeder {
	return NewSeeder(f, f, f, f, f)
}

func TestParse(t *testing.T) {
	f, err := Parse([]byte(fixturesYAML))
	require.NoError(t, err)

	require.Len(t, f.Users, 3)
	assert.Equal(t, []string{"go", "sql"}, f.Users[0].Skills)
	require.Len(t, f.Teams, 1)
	assert.Equal(t, 3, f.Teams[0].MaxMembers)
	assert.Equal(t, []string{"bob@example.com"}, f.Teams[0].Members)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("users: ["))
	assert.Error(t, err)
}

func TestSeeder_Apply(t *testing.T) {
	fixtures, err := Parse([]byte(fixturesYAML))
	require.NoError(t, err)

	store := newFakeStore()
	sum, err := newTestSeeder(store).Apply(context.Background(), fixtures)
	require.NoError(t, err)

	assert.Equal(t, Summary{Users: 3, Ideas: 1, Teams: 1, Suggestions: 1}, sum)

	// Admins sign up as participants and are promoted afterwards.
	root := store.profiles["root@example.com"]
	assert.Equal(t, domain.RoleParticipant, root.Role)
	assert.Equal(t, domain.RoleAdmin, store.roles[root.UserID])
	// Missing role defaults to participant.
	assert.Equal(t, domain.RoleParticipant, store.profiles["bob@example.com"].Role)

	require.Len(t, store.teams, 1)
	require.NotNil(t, store.teams[0].IdeaID)
	assert.Equal(t, uint(40), *store.teams[0].IdeaID)
	assert.Equal(t, []string{"bob@example.com:9:code"}, store.joins)
}

func TestSeeder_Apply_ReusesExistingUsers(t *testing.T) {
	fixtures, err := Parse([]byte(fixturesYAML))
	require.NoError(t, err)

	store := newFakeStore()
	_, err = store.Signup(context.Background(), domain.HackathonUser{
		User: domain.User{Email: "ada@example.com"},
		Role: domain.RoleParticipant,
	})
	require.NoError(t, err)

	sum, err := newTestSeeder(store).Apply(context.Background(), fixtures)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Users)
}

func TestSeeder_Apply_UnknownReference(t *testing.T) {
	fixtures := Fixtures{
		Ideas: []IdeaFixture{{Author: "ghost@example.com", Title: "Nope"}},
	}

	_, err := newTestSeeder(newFakeStore()).Apply(context.Background(), fixtures)
	assert.ErrorIs(t, err, ErrUnknownReference)
}
