package domain

import (
	"sort"
	"strings"
	"time"
)

type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	VoteCount int    `json:"vote_count"`
	Members   int    `json:"members,omitempty"`
}

type Leaderboard struct {
	Hackathon   string             `json:"hackathon"`
	Teams       []LeaderboardEntry `json:"teams"`
	Ideas       []LeaderboardEntry `json:"ideas"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// RankEntries sorts by vote count desc then name asc and assigns standard
// competition ranks: equal vote counts share a rank and the next rank skips
// (1, 1, 3). The result is cut to limit entries when limit > 0.
func RankEntries(entries []LeaderboardEntry, limit int) []LeaderboardEntry {
	ranked := make([]LeaderboardEntry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].VoteCount != ranked[j].VoteCount {
			return ranked[i].VoteCount > ranked[j].VoteCount
		}
		return strings.ToLower(ranked[i].Name) < strings.ToLower(ranked[j].Name)
	})

	for i := range ranked {
		if i > 0 && ranked[i].VoteCount == ranked[i-1].VoteCount {
			ranked[i].Rank = ranked[i-1].Rank
			continue
		}
		ranked[i].Rank = i + 1
	}

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}
