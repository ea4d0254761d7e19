// Package seed loads demo data from a YAML fixtures file through the regular
// services, so every invariant enforced by the API also holds for seeded rows.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/vietanh2810/hackathon-api/internal/domain"
	"github.com/vietanh2810/hackathon-api/internal/service"
)

type Fixtures struct {
	Users       []UserFixture       `yaml:"users"`
	Ideas       []IdeaFixture       `yaml:"ideas"`
	Teams       []TeamFixture       `yaml:"teams"`
	Suggestions []SuggestionFixture `yaml:"suggestions"`
}

type UserFixture struct {
	Email    string   `yaml:"email"`
	Password string   `yaml:"password"`
	Name     string   `yaml:"name"`
	Role     string   `yaml:"role"`
	Bio      string   `yaml:"bio"`
	Skills   []string `yaml:"skills"`
}

type IdeaFixture struct {
	Author      string   `yaml:"author"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
}

type TeamFixture struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Leader      string   `yaml:"leader"`
	Idea        string   `yaml:"idea"`
	MaxMembers  int      `yaml:"max_members"`
	Members     []string `yaml:"members"`
}

type SuggestionFixture struct {
	Author   string `yaml:"author"`
	Title    string `yaml:"title"`
	Body     string `yaml:"body"`
	Category string `yaml:"category"`
}

var ErrUnknownReference = errors.New("fixture references an unknown user or idea")

func LoadFile(path string) (Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("os.ReadFile -> %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixtures{}, fmt.Errorf("yaml.Unmarshal -> %w", err)
	}

	return f, nil
}

type Accounts interface {
	Signup(ctx context.Context, profile domain.HackathonUser) (domain.HackathonUser, error)
}

type Profiles interface {
	FindProfileByEmail(ctx context.Context, email string) (domain.HackathonUser, error)
	SetRole(ctx context.Context, userID uint, role domain.Role) error
}

type Ideas interface {
	CreateIdea(ctx context.Context, actor domain.HackathonUser, idea domain.Idea) (domain.Idea, error)
}

type Teams interface {
	CreateTeam(ctx context.Context, actor domain.HackathonUser, team domain.Team) (domain.Team, error)
	JoinTeam(ctx context.Context, actor domain.HackathonUser, id uint, inviteCode string) (domain.Team, error)
}

type Suggestions interface {
	CreateSuggestion(ctx context.Context, actor domain.HackathonUser, suggestion domain.Suggestion) (domain.Suggestion, error)
}

type Seeder struct {
	accounts    Accounts
	profiles    Profiles
	ideas       Ideas
	teams       Teams
	suggestions Suggestions
}

func NewSeeder(accounts Accounts, profiles Profiles, ideas Ideas, teams Teams, suggestions Suggestions) *Seeder {
	return &Seeder{
		accounts:    accounts,
		profiles:    profiles,
		ideas:       ideas,
		teams:       teams,
		suggestions: suggestions,
	}
}

type Summary struct {
	Users       int
	Ideas       int
	Teams       int
	Suggestions int
}

// Apply inserts the fixtures in dependency order. Users that already exist are
// reused; everything else is created unconditionally.
func (s *Seeder) Apply(ctx context.Context, f Fixtures) (Summary, error) {
	var sum Summary

	users := make(map[string]domain.HackathonUser, len(f.Users))
	for _, u := range f.Users {
		profile, created, err := s.ensureUser(ctx, u)
		if err != nil {
			return sum, fmt.Errorf("user %s -> %w", u.Email, err)
		}
		users[u.Email] = profile
		if created {
			sum.Users++
		}
	}

	ideas := make(map[string]uint, len(f.Ideas))
	for _, i := range f.Ideas {
		author, ok := users[i.Author]
		if !ok {
			return sum, fmt.Errorf("idea %q author %s -> %w", i.Title, i.Author, ErrUnknownReference)
		}

		idea, err := s.ideas.CreateIdea(ctx, author, domain.Idea{
			Title:       i.Title,
			Description: i.Description,
			Tags:        i.Tags,
		})
		if err != nil {
			return sum, fmt.Errorf("s.ideas.CreateIdea %q -> %w", i.Title, err)
		}
		ideas[i.Title] = idea.ID
		sum.Ideas++
	}

	for _, t := range f.Teams {
		if err := s.createTeam(ctx, t, users, ideas); err != nil {
			return sum, fmt.Errorf("team %q -> %w", t.Name, err)
		}
		sum.Teams++
	}

	for _, sg := range f.Suggestions {
		author, ok := users[sg.Author]
		if !ok {
			return sum, fmt.Errorf("suggestion %q author %s -> %w", sg.Title, sg.Author, ErrUnknownReference)
		}

		if _, err := s.suggestions.CreateSuggestion(ctx, author, domain.Suggestion{
			Title:    sg.Title,
			Body:     sg.Body,
			Category: sg.Category,
		}); err != nil {
			return sum, fmt.Errorf("s.suggestions.CreateSuggestion %q -> %w", sg.Title, err)
		}
		sum.Suggestions++
	}

	return sum, nil
}

// ensureUser signs the user up, then promotes it when the fixture asks for a
// role that cannot be picked at signup.
func (s *Seeder) ensureUser(ctx context.Context, u UserFixture) (domain.HackathonUser, bool, error) {
	role := domain.Role(u.Role)
	if role == "" {
		role = domain.RoleParticipant
	}

	signupRole := role
	if role == domain.RoleAdmin {
		signupRole = domain.RoleParticipant
	}

	profile, err := s.accounts.Signup(ctx, domain.HackathonUser{
		User: domain.User{
			Email:    u.Email,
			Password: u.Password,
			Name:     u.Name,
		},
		Role:   signupRole,
		Bio:    u.Bio,
		Skills: u.Skills,
	})
	created := err == nil
	if err != nil {
		if !errors.Is(err, service.ErrUserEmailExists) {
			return domain.HackathonUser{}, false, fmt.Errorf("s.accounts.Signup -> %w", err)
		}

		zap.L().Info("seed user already exists", zap.String("email", u.Email))
		if profile, err = s.profiles.FindProfileByEmail(ctx, u.Email); err != nil {
			return domain.HackathonUser{}, false, fmt.Errorf("s.profiles.FindProfileByEmail -> %w", err)
		}
	}

	if profile.Role != role {
		if err = s.profiles.SetRole(ctx, profile.UserID, role); err != nil {
			return domain.HackathonUser{}, false, fmt.Errorf("s.profiles.SetRole -> %w", err)
		}
		profile.Role = role
	}

	return profile, created, nil
}

func (s *Seeder) createTeam(ctx context.Context, t TeamFixture, users map[string]domain.HackathonUser, ideas map[string]uint) error {
	leader, ok := users[t.Leader]
	if !ok {
		return fmt.Errorf("leader %s -> %w", t.Leader, ErrUnknownReference)
	}

	team := domain.Team{
		Name:        t.Name,
		Description: t.Description,
		MaxMembers:  t.MaxMembers,
	}
	if t.Idea != "" {
		id, ok := ideas[t.Idea]
		if !ok {
			return fmt.Errorf("idea %q -> %w", t.Idea, ErrUnknownReference)
		}
		team.IdeaID = &id
	}

	created, err := s.teams.CreateTeam(ctx, leader, team)
	if err != nil {
		return fmt.Errorf("s.teams.CreateTeam -> %w", err)
	}

	for _, email := range t.Members {
		member, ok := users[email]
		if !ok {
			return fmt.Errorf("member %s -> %w", email, ErrUnknownReference)
		}

		if _, err = s.teams.JoinTeam(ctx, member, created.ID, created.InviteCode); err != nil {
			return fmt.Errorf("s.teams.JoinTeam %s -> %w", email, err)
		}
	}

	return nil
}
