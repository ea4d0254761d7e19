package domain

import "time"

type SuggestionStatus string

const (
	SuggestionOpen     SuggestionStatus = "open"
	SuggestionPlanned  SuggestionStatus = "planned"
	SuggestionDone     SuggestionStatus = "done"
	SuggestionRejected SuggestionStatus = "rejected"
)

func (s SuggestionStatus) Valid() bool {
	switch s {
	case SuggestionOpen, SuggestionPlanned, SuggestionDone, SuggestionRejected:
		return true
	}

	return false
}

type Suggestion struct {
	ID        uint             `json:"id"`
	AuthorID  uint             `json:"author_id"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	Category  string           `json:"category"`
	Status    SuggestionStatus `json:"status"`
	VoteCount int              `json:"vote_count"`
	HasVoted  bool             `json:"has_voted"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
