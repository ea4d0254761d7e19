package domain

import (
	"context"
	"time"
)

type EventType string

const (
	EventIdeaCreated        EventType = "idea.created"
	EventIdeaUpdated        EventType = "idea.updated"
	EventIdeaDeleted        EventType = "idea.deleted"
	EventIdeaVoted          EventType = "idea.voted"
	EventTeamCreated        EventType = "team.created"
	EventTeamUpdated        EventType = "team.updated"
	EventTeamDeleted        EventType = "team.deleted"
	EventTeamVoted          EventType = "team.voted"
	EventSuggestionCreated  EventType = "suggestion.created"
	EventSuggestionUpdated  EventType = "suggestion.updated"
	EventSuggestionDeleted  EventType = "suggestion.deleted"
	EventSuggestionVoted    EventType = "suggestion.voted"
	EventUserUpdated        EventType = "user.updated"
	EventLeaderboardChanged EventType = "leaderboard.changed"
)

// Event is pushed to live subscribers after a mutation commits.
type Event struct {
	ID      string    `json:"id"`
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

// EventPublisher delivers events to subscribers. Publishing is best effort;
// a failure never rolls back the mutation that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, eventType EventType, payload any)
}

// Deleted is the payload of the *.deleted events.
type Deleted struct {
	ID uint `json:"id"`
}
