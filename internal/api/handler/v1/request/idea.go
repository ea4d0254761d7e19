package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateIdeaRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

func (req *CreateIdeaRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(3, 120)),
		validation.Field(&req.Description, validation.Required, validation.Length(1, 5000)),
		validation.Field(&req.Tags, validation.By(labels(10, 30))),
	)
}

type UpdateIdeaRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
}

func (req *UpdateIdeaRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.NilOrNotEmpty, validation.Length(3, 120)),
		validation.Field(&req.Description, validation.NilOrNotEmpty, validation.Length(1, 5000)),
		validation.Field(&req.Tags, validation.By(labels(10, 30))),
	)
}
