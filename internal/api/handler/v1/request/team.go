package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IdeaID      *uint  `json:"idea_id"`
	MaxMembers  int    `json:"max_members"`
}

func (req *CreateTeamRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 80)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.MaxMembers, validation.Min(0)),
	)
}

type JoinTeamRequest struct {
	InviteCode string `json:"invite_code"`
}

func (req *JoinTeamRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.InviteCode, validation.Length(0, 36)),
	)
}

type UpdateTeamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IdeaID      *uint   `json:"idea_id"`
	ClearIdea   bool    `json:"clear_idea"`
	MaxMembers  *int    `json:"max_members"`
	Status      *string `json:"status"`
}

func (req *UpdateTeamRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(2, 80)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.MaxMembers, validation.Min(1)),
		validation.Field(&req.Status, validation.In("open", "closed")),
	)
}
