package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SetRoleRequest struct {
	Role string `json:"role"`
}

func (req *SetRoleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Role, validation.Required, validation.In("participant", "mentor", "judge", "admin")),
	)
}

type SetBannedRequest struct {
	Banned bool `json:"banned"`
}

type HideIdeaRequest struct {
	Hidden bool `json:"hidden"`
}
