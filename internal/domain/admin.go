package domain

type Stats struct {
	Users         int64                `json:"users"`
	UsersByRole   map[Role]int64       `json:"users_by_role"`
	BannedUsers   int64                `json:"banned_users"`
	Ideas         int64                `json:"ideas"`
	HiddenIdeas   int64                `json:"hidden_ideas"`
	Teams         int64                `json:"teams"`
	TeamsByStatus map[TeamStatus]int64 `json:"teams_by_status"`
	Suggestions   int64                `json:"suggestions"`
	Votes         map[VoteTarget]int64 `json:"votes"`
}
