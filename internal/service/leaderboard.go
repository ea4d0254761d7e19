package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vietanh2810/hackathon-api/internal/domain"
)

type TeamLister interface {
	List(ctx context.Context, status domain.TeamStatus) ([]domain.Team, error)
}

type IdeaLister interface {
	List(ctx context.Context, query domain.IdeaQuery) ([]domain.Idea, error)
}

type LeaderboardService struct {
	teams TeamLister
	ideas IdeaLister
	rules RulesProvider
}

func NewLeaderboardService(teams TeamLister, ideas IdeaLister, rules RulesProvider) *LeaderboardService {
	return &LeaderboardService{
		teams: teams,
		ideas: ideas,
		rules: rules,
	}
}

// GetLeaderboard ranks teams and visible ideas by votes. A limit <= 0 falls
// back to the configured leaderboard size.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, limit int) (domain.Leaderboard, error) {
	rules := s.rules.Current()
	if limit <= 0 {
		limit = rules.LeaderboardTop
	}

	teams, err := s.teams.List(ctx, "")
	if err != nil {
		return domain.Leaderboard{}, fmt.Errorf("s.teams.List -> %w", err)
	}

	ideas, err := s.ideas.List(ctx, domain.IdeaQuery{Sort: domain.IdeaSortVotes})
	if err != nil {
		return domain.Leaderboard{}, fmt.Errorf("s.ideas.List -> %w", err)
	}

	teamEntries := make([]domain.LeaderboardEntry, len(teams))
	for i, t := range teams {
		teamEntries[i] = domain.LeaderboardEntry{
			ID:        t.ID,
			Name:      t.Name,
			VoteCount: t.VoteCount,
			Members:   t.MemberCount,
		}
	}

	ideaEntries := make([]domain.LeaderboardEntry, len(ideas))
	for i, idea := range ideas {
		ideaEntries[i] = domain.LeaderboardEntry{
			ID:        idea.ID,
			Name:      idea.Title,
			VoteCount: idea.VoteCount,
		}
	}

	return domain.Leaderboard{
		Hackathon:   rules.Name,
		Teams:       domain.RankEntries(teamEntries, limit),
		Ideas:       domain.RankEntries(ideaEntries, limit),
		GeneratedAt: time.Now().UTC(),
	}, nil
}
