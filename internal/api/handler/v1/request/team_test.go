package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateTeamRequest_Validate(t *testing.T) {
	full := "full"
	closed := "closed"
	negative := -1
	blank := ""

	assert.NoError(t, (&UpdateTeamRequest{}).Validate())
	assert.NoError(t, (&UpdateTeamRequest{Status: &closed}).Validate())
	assert.Error(t, (&UpdateTeamRequest{Status: &full}).Validate())
	assert.Error(t, (&UpdateTeamRequest{MaxMembers: &negative}).Validate())
	assert.Error(t, (&UpdateTeamRequest{Name: &blank}).Validate())
}

func TestCreateIdeaRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CreateIdeaRequest{Title: "Smart bins", Description: "IoT", Tags: []string{"iot"}}).Validate())
	assert.Error(t, (&CreateIdeaRequest{Title: "x", Description: "IoT"}).Validate())
	assert.Error(t, (&CreateIdeaRequest{Title: "Smart bins", Description: "IoT", Tags: []string{" "}}).Validate())
}

func TestSetSuggestionStatusRequest_Validate(t *testing.T) {
	assert.NoError(t, (&SetSuggestionStatusRequest{Status: "planned"}).Validate())
	assert.Error(t, (&SetSuggestionStatusRequest{Status: "archived"}).Validate())
}
