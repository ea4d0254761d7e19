package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/hackathon-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/hackathon-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/hackathon-api/internal/config"
	"github.com/vietanh2810/hackathon-api/internal/domain"
	"github.com/vietanh2810/hackathon-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/hackathon-api/internal/service"
)

type AuthService interface {
	Signup(ctx context.Context, profile domain.HackathonUser) (domain.HackathonUser, error)
	Login(ctx context.Context, email, password string) (domain.HackathonUser, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleSignup godoc
// @Summary      Signup a new user
// @Description  Creates the account and its hackathon profile. Role is one of participant, mentor or judge.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.SignupRequest true "request body"
// @Success      201      {object}   domain.HackathonUser
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/signup [post]
func (h *AuthHandler) HandleSignup(ctx *gin.Context) {
	var req request.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	profile, err := h.svc.Signup(ctx.Request.Context(), domain.HackathonUser{
		User: domain.User{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
		},
		Role:   domain.Role(req.Role),
		Bio:    req.Bio,
		Skills: req.Skills,
	})
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleSignup -> h.svc.Signup", "email", req.Email, err))
		return
	}

	ctx.JSON(http.StatusCreated, profile)
}

// HandleLogin godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	profile, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		response.RenderErr(ctx, serviceErr("v1.HandleLogin -> h.svc.Login", "email", req.Email, err))

		return
	}

	ttl := time.Duration(h.conf.JWTTTLHours) * time.Hour
	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), profile.UserID, ctx.Request.UserAgent(), ttl)
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken() -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token: token,
		User:  profile,
	})
}
