package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateSuggestionRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category"`
}

func (req *CreateSuggestionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(3, 120)),
		validation.Field(&req.Body, validation.Length(0, 5000)),
		validation.Field(&req.Category, validation.Length(0, 40)),
	)
}

type SetSuggestionStatusRequest struct {
	Status string `json:"status"`
}

func (req *SetSuggestionStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("open", "planned", "done", "rejected")),
	)
}
