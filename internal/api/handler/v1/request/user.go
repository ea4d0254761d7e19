package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type UpdateMeRequest struct {
	Name   *string  `json:"name"`
	Bio    *string  `json:"bio"`
	Skills []string `json:"skills"`
}

func (req *UpdateMeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 80)),
		validation.Field(&req.Bio, validation.Length(0, 500)),
		validation.Field(&req.Skills, validation.By(labels(20, 40))),
	)
}
