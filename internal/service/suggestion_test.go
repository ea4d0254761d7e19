package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/hackathon-api/internal/domain"
)

func TestSuggestionService_CreateSuggestion_Defaults(t *testing.T) {
	events := &recordingPublisher{}
	svc := NewSuggestionService(newFakeSuggestionRepo(), newFakeVoteRepo(), events, nil)

	created, err := svc.CreateSuggestion(context.Background(), participant(1), domain.Suggestion{
		Title:  "More coffee",
		Status: domain.SuggestionDone,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SuggestionOpen, created.Status)
	assert.Equal(t, "general", created.Category)
	assert.Equal(t, uint(1), created.AuthorID)
	assert.Equal(t, []domain.EventType{domain.EventSuggestionCreated}, events.types())
}

func TestSuggestionService_ListSuggestions(t *testing.T) {
	repo := newFakeSuggestionRepo(
		domain.Suggestion{ID: 1, Status: domain.SuggestionOpen},
		domain.Suggestion{ID: 2, Status: domain.SuggestionDone},
	)
	votes := newFakeVoteRepo()
	votes.voted[domain.VoteTargetSuggestion] = map[uint]bool{1: true}
	svc := NewSuggestionService(repo, votes, nil, nil)

	list, err := svc.ListSuggestions(context.Background(), participant(1), domain.SuggestionOpen)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].HasVoted)
}

func TestSuggestionService_ToggleVote(t *testing.T) {
	m := &recordingMetrics{}
	svc := NewSuggestionService(newFakeSuggestionRepo(), newFakeVoteRepo(), nil, m)

	result, err := svc.ToggleVote(context.Background(), participant(1), 5)
	require.NoError(t, err)
	assert.True(t, result.Voted)
	assert.Equal(t, domain.VoteTargetSuggestion, result.TargetType)
	assert.Equal(t, []string{"+suggestion"}, m.votes)
}

func TestSuggestionService_DeleteSuggestion(t *testing.T) {
	repo := newFakeSuggestionRepo(domain.Suggestion{ID: 1, AuthorID: 2}, domain.Suggestion{ID: 2, AuthorID: 2})
	svc := NewSuggestionService(repo, newFakeVoteRepo(), nil, nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeleteSuggestion(ctx, participant(1), 1), ErrPermissionDenied)
	require.NoError(t, svc.DeleteSuggestion(ctx, participant(2), 1))
	require.NoError(t, svc.DeleteSuggestion(ctx, admin(9), 2))
	assert.ErrorIs(t, svc.DeleteSuggestion(ctx, admin(9), 3), ErrSuggestionNotFound)
}

func TestSuggestionService_SetStatus(t *testing.T) {
	repo := newFakeSuggestionRepo(domain.Suggestion{ID: 1, Status: domain.SuggestionOpen})
	svc := NewSuggestionService(repo, newFakeVoteRepo(), nil, nil)
	ctx := context.Background()

	_, err := svc.SetStatus(ctx, participant(1), 1, domain.SuggestionPlanned)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.SetStatus(ctx, admin(9), 1, "maybe")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	updated, err := svc.SetStatus(ctx, admin(9), 1, domain.SuggestionPlanned)
	require.NoError(t, err)
	assert.Equal(t, domain.SuggestionPlanned, updated.Status)
}
