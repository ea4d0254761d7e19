package domain

import "time"

type IdeaSort string

const (
	IdeaSortVotes  IdeaSort = "votes"
	IdeaSortRecent IdeaSort = "recent"
)

type Idea struct {
	ID          uint      `json:"id"`
	AuthorID    uint      `json:"author_id"`
	AuthorName  string    `json:"author_name,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	VoteCount   int       `json:"vote_count"`
	Hidden      bool      `json:"hidden"`
	HasVoted    bool      `json:"has_voted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type IdeaQuery struct {
	Sort          IdeaSort
	Search        string
	IncludeHidden bool
}

type IdeaUpdate struct {
	Title       *string
	Description *string
	Tags        []string
}
