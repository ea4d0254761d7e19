package service

import (
	"context"
	"sync"

	"github.com/vietanh2810/hackathon-api/internal/config"
	"github.com/vietanh2810/hackathon-api/internal/domain"
)

type publishedEvent struct {
	Type    domain.EventType
	Payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, eventType domain.EventType, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Payload: payload})
}

func (p *recordingPublisher) types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]domain.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}

	return out
}

type recordingMetrics struct {
	signups    []string
	votes      []string
	membership []string
}

func (m *recordingMetrics) UserSignedUp(role string) { m.signups = append(m.signups, role) }
func (m *recordingMetrics) VoteToggled(target string, voted bool) {
	if voted {
		m.votes = append(m.votes, "+"+target)
		return
	}
	m.votes = append(m.votes, "-"+target)
}
func (m *recordingMetrics) TeamMembershipChanged(action string) {
	m.membership = append(m.membership, action)
}

type staticRules config.HackathonConfig

func (r staticRules) Current() config.HackathonConfig { return config.HackathonConfig(r) }

var defaultRules = staticRules{
	Name:           "Test Hack",
	MinTeamSize:    2,
	MaxTeamSize:    5,
	LeaderboardTop: 3,
}

func participant(userID uint) domain.HackathonUser {
	return domain.HackathonUser{ID: userID + 100, UserID: userID, Role: domain.RoleParticipant}
}

func admin(userID uint) domain.HackathonUser {
	return domain.HackathonUser{ID: userID + 100, UserID: userID, Role: domain.RoleAdmin}
}

func uintPtr(v uint) *uint { return &v }

// --- users ---

type fakeUserRepo struct {
	createFn              func(ctx context.Context, profile domain.HackathonUser) (domain.HackathonUser, error)
	findProfileByEmailFn  func(ctx context.Context, email string) (domain.HackathonUser, error)
	findProfileByUserIDFn func(ctx context.Context, userID uint) (domain.HackathonUser, error)
	listProfilesFn        func(ctx context.Context, filter domain.UserFilter) ([]domain.HackathonUser, error)
	updateProfileFn       func(ctx context.Context, userID uint, update domain.ProfileUpdate) (domain.HackathonUser, error)
	setRoleFn             func(ctx context.Context, userID uint, role domain.Role) error
	setBannedFn           func(ctx context.Context, userID uint, banned bool) (domain.BanOutcome, error)
	countByRoleFn         func(ctx context.Context) (map[domain.Role]int64, int64, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, profile domain.HackathonUser) (domain.HackathonUser, error) {
	return f.createFn(ctx, profile)
}

func (f *fakeUserRepo) FindProfileByEmail(ctx context.Context, email string) (domain.HackathonUser, error) {
	return f.findProfileByEmailFn(ctx, email)
}

func (f *fakeUserRepo) FindProfileByUserID(ctx context.Context, userID uint) (domain.HackathonUser, error) {
	if f.findProfileByUserIDFn == nil {
		return domain.HackathonUser{UserID: userID, Role: domain.RoleParticipant}, nil
	}
	return f.findProfileByUserIDFn(ctx, userID)
}

func (f *fakeUserRepo) ListProfiles(ctx context.Context, filter domain.UserFilter) ([]domain.HackathonUser, error) {
	return f.listProfilesFn(ctx, filter)
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, userID uint, update domain.ProfileUpdate) (domain.HackathonUser, error) {
	return f.updateProfileFn(ctx, userID, update)
}

func (f *fakeUserRepo) SetRole(ctx context.Context, userID uint, role domain.Role) error {
	if f.setRoleFn == nil {
		return nil
	}
	return f.setRoleFn(ctx, userID, role)
}

func (f *fakeUserRepo) SetBanned(ctx context.Context, userID uint, banned bool) (domain.BanOutcome, error) {
	if f.setBannedFn == nil {
		return domain.BanOutcome{}, nil
	}
	return f.setBannedFn(ctx, userID, banned)
}

func (f *fakeUserRepo) CountByRole(ctx context.Context) (map[domain.Role]int64, int64, error) {
	return f.countByRoleFn(ctx)
}

// --- ideas ---

type fakeIdeaRepo struct {
	ideas map[uint]domain.Idea

	listFn   func(ctx context.Context, query domain.IdeaQuery) ([]domain.Idea, error)
	deleted  []uint
	hidden   map[uint]bool
	lastList domain.IdeaQuery
}

func newFakeIdeaRepo(ideas ...domain.Idea) *fakeIdeaRepo {
	f := &fakeIdeaRepo{ideas: map[uint]domain.Idea{}, hidden: map[uint]bool{}}
	for _, i := range ideas {
		f.ideas[i.ID] = i
	}

	return f
}

func (f *fakeIdeaRepo) Create(_ context.Context, idea domain.Idea) (domain.Idea, error) {
	idea.ID = uint(len(f.ideas) + 1)
	f.ideas[idea.ID] = idea

	return idea, nil
}

func (f *fakeIdeaRepo) FindByID(_ context.Context, id uint) (domain.Idea, error) {
	idea, ok := f.ideas[id]
	if !ok {
		return domain.Idea{}, ErrIdeaNotFound
	}

	return idea, nil
}

func (f *fakeIdeaRepo) List(ctx context.Context, query domain.IdeaQuery) ([]domain.Idea, error) {
	f.lastList = query
	if f.listFn != nil {
		return f.listFn(ctx, query)
	}

	var out []domain.Idea
	for _, idea := range f.ideas {
		if idea.Hidden && !query.IncludeHidden {
			continue
		}
		out = append(out, idea)
	}

	return out, nil
}

func (f *fakeIdeaRepo) Update(_ context.Context, id uint, update domain.IdeaUpdate) (domain.Idea, error) {
	idea, ok := f.ideas[id]
	if !ok {
		return domain.Idea{}, ErrIdeaNotFound
	}
	if update.Title != nil {
		idea.Title = *update.Title
	}
	f.ideas[id] = idea

	return idea, nil
}

func (f *fakeIdeaRepo) SetHidden(_ context.Context, id uint, hidden bool) error {
	idea, ok := f.ideas[id]
	if !ok {
		return ErrIdeaNotFound
	}
	idea.Hidden = hidden
	f.ideas[id] = idea
	f.hidden[id] = hidden

	return nil
}

func (f *fakeIdeaRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.ideas[id]; !ok {
		return ErrIdeaNotFound
	}
	delete(f.ideas, id)
	f.deleted = append(f.deleted, id)

	return nil
}

func (f *fakeIdeaRepo) Count(context.Context) (int64, int64, error) {
	var hidden int64
	for _, idea := range f.ideas {
		if idea.Hidden {
			hidden++
		}
	}

	return int64(len(f.ideas)), hidden, nil
}

// --- votes ---

type fakeVoteRepo struct {
	voted  map[domain.VoteTarget]map[uint]bool
	toggle []uint
	err    error
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{voted: map[domain.VoteTarget]map[uint]bool{}}
}

func (f *fakeVoteRepo) Toggle(_ context.Context, _ uint, target domain.VoteTarget, targetID uint) (domain.VoteResult, error) {
	if f.err != nil {
		return domain.VoteResult{}, f.err
	}
	if f.voted[target] == nil {
		f.voted[target] = map[uint]bool{}
	}
	f.voted[target][targetID] = !f.voted[target][targetID]
	f.toggle = append(f.toggle, targetID)

	count := 0
	if f.voted[target][targetID] {
		count = 1
	}

	return domain.VoteResult{TargetType: target, TargetID: targetID, Voted: f.voted[target][targetID], VoteCount: count}, nil
}

func (f *fakeVoteRepo) VotedTargets(_ context.Context, _ uint, target domain.VoteTarget, ids []uint) (map[uint]bool, error) {
	out := map[uint]bool{}
	for _, id := range ids {
		if f.voted[target][id] {
			out[id] = true
		}
	}

	return out, nil
}

func (f *fakeVoteRepo) CountByTarget(context.Context) (map[domain.VoteTarget]int64, error) {
	out := map[domain.VoteTarget]int64{}
	for target, ids := range f.voted {
		for _, v := range ids {
			if v {
				out[target]++
			}
		}
	}

	return out, nil
}

// --- teams ---

type fakeTeamRepo struct {
	teams map[uint]domain.Team

	created     []domain.Team
	joinFn      func(ctx context.Context, teamID, userID uint, inviteCode string) (domain.Team, error)
	removeFn    func(ctx context.Context, teamID, userID uint) (domain.TeamLeaveResult, error)
	updates     []domain.TeamUpdate
	inviteCodes map[uint]string
	deleted     []uint
}

func newFakeTeamRepo(teams ...domain.Team) *fakeTeamRepo {
	f := &fakeTeamRepo{teams: map[uint]domain.Team{}, inviteCodes: map[uint]string{}}
	for _, t := range teams {
		f.teams[t.ID] = t
	}

	return f
}

func (f *fakeTeamRepo) Create(_ context.Context, team domain.Team) (domain.Team, error) {
	team.ID = uint(len(f.teams) + 1)
	team.MemberCount = 1
	f.teams[team.ID] = team
	f.created = append(f.created, team)

	return team, nil
}

func (f *fakeTeamRepo) FindByID(_ context.Context, id uint, _ bool) (domain.Team, error) {
	team, ok := f.teams[id]
	if !ok {
		return domain.Team{}, ErrTeamNotFound
	}

	return team, nil
}

func (f *fakeTeamRepo) List(_ context.Context, status domain.TeamStatus) ([]domain.Team, error) {
	var out []domain.Team
	for _, t := range f.teams {
		if status != "" && t.Status != status {
			continue
		}
		out = append(out, t)
	}

	return out, nil
}

func (f *fakeTeamRepo) Join(ctx context.Context, teamID, userID uint, inviteCode string) (domain.Team, error) {
	if f.joinFn != nil {
		return f.joinFn(ctx, teamID, userID, inviteCode)
	}

	team, ok := f.teams[teamID]
	if !ok {
		return domain.Team{}, ErrTeamNotFound
	}
	team.MemberCount++
	f.teams[teamID] = team

	return team, nil
}

// guarded mirrors the DAO: the guard sees the stored row and a rejection
// leaves it untouched.
func (f *fakeTeamRepo) guarded(teamID uint, guard domain.TeamGuard) (domain.Team, error) {
	team, ok := f.teams[teamID]
	if !ok {
		return domain.Team{}, ErrTeamNotFound
	}
	if guard != nil {
		if err := guard(team); err != nil {
			return domain.Team{}, err
		}
	}

	return team, nil
}

func (f *fakeTeamRepo) RemoveMember(ctx context.Context, teamID, userID uint, guard domain.TeamGuard) (domain.TeamLeaveResult, error) {
	if f.removeFn != nil {
		if _, ok := f.teams[teamID]; ok {
			if _, err := f.guarded(teamID, guard); err != nil {
				return domain.TeamLeaveResult{}, err
			}
		}
		return f.removeFn(ctx, teamID, userID)
	}

	team, err := f.guarded(teamID, guard)
	if err != nil {
		return domain.TeamLeaveResult{}, err
	}
	team.MemberCount--

	return domain.TeamLeaveResult{Team: team}, nil
}

func (f *fakeTeamRepo) Update(_ context.Context, teamID uint, update domain.TeamUpdate, guard domain.TeamGuard) (domain.Team, error) {
	team, err := f.guarded(teamID, guard)
	if err != nil {
		return domain.Team{}, err
	}
	f.updates = append(f.updates, update)
	if update.Name != nil {
		team.Name = *update.Name
	}
	if update.MaxMembers != nil {
		team.MaxMembers = *update.MaxMembers
	}
	if update.Status != nil {
		team.Status = *update.Status
	}
	f.teams[teamID] = team

	return team, nil
}

func (f *fakeTeamRepo) SetInviteCode(_ context.Context, teamID uint, code string, guard domain.TeamGuard) error {
	if _, err := f.guarded(teamID, guard); err != nil {
		return err
	}
	f.inviteCodes[teamID] = code
	return nil
}

func (f *fakeTeamRepo) Delete(_ context.Context, teamID uint, guard domain.TeamGuard) error {
	if _, err := f.guarded(teamID, guard); err != nil {
		return err
	}
	delete(f.teams, teamID)
	f.deleted = append(f.deleted, teamID)

	return nil
}

func (f *fakeTeamRepo) CountByStatus(context.Context) (map[domain.TeamStatus]int64, error) {
	out := map[domain.TeamStatus]int64{}
	for _, t := range f.teams {
		out[t.Status]++
	}

	return out, nil
}

// --- suggestions ---

type fakeSuggestionRepo struct {
	suggestions map[uint]domain.Suggestion
	deleted     []uint
}

func newFakeSuggestionRepo(suggestions ...domain.Suggestion) *fakeSuggestionRepo {
	f := &fakeSuggestionRepo{suggestions: map[uint]domain.Suggestion{}}
	for _, s := range suggestions {
		f.suggestions[s.ID] = s
	}

	return f
}

func (f *fakeSuggestionRepo) Create(_ context.Context, s domain.Suggestion) (domain.Suggestion, error) {
	s.ID = uint(len(f.suggestions) + 1)
	f.suggestions[s.ID] = s

	return s, nil
}

func (f *fakeSuggestionRepo) FindByID(_ context.Context, id uint) (domain.Suggestion, error) {
	s, ok := f.suggestions[id]
	if !ok {
		return domain.Suggestion{}, ErrSuggestionNotFound
	}

	return s, nil
}

func (f *fakeSuggestionRepo) List(_ context.Context, status domain.SuggestionStatus) ([]domain.Suggestion, error) {
	var out []domain.Suggestion
	for _, s := range f.suggestions {
		if status != "" && s.Status != status {
			continue
		}
		out = append(out, s)
	}

	return out, nil
}

func (f *fakeSuggestionRepo) SetStatus(_ context.Context, id uint, status domain.SuggestionStatus) (domain.Suggestion, error) {
	s, ok := f.suggestions[id]
	if !ok {
		return domain.Suggestion{}, ErrSuggestionNotFound
	}
	s.Status = status
	f.suggestions[id] = s

	return s, nil
}

func (f *fakeSuggestionRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.suggestions[id]; !ok {
		return ErrSuggestionNotFound
	}
	delete(f.suggestions, id)
	f.deleted = append(f.deleted, id)

	return nil
}

func (f *fakeSuggestionRepo) Count(context.Context) (int64, error) {
	return int64(len(f.suggestions)), nil
}
