package response

import "github.com/vietanh2810/hackathon-api/internal/domain"

type LoginResponse struct {
	Token string               `json:"token"`
	User  domain.HackathonUser `json:"user"`
}

type InviteCodeResponse struct {
	InviteCode string `json:"invite_code"`
}
