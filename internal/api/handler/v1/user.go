package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/hackathon-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/hackathon-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/hackathon-api/internal/domain"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uint) (domain.HackathonUser, error)
	GetUser(ctx context.Context, actor domain.HackathonUser, userID uint) (domain.HackathonUser, error)
	ListUsers(ctx context.Context, actor domain.HackathonUser, filter domain.UserFilter) ([]domain.HackathonUser, error)
	UpdateMe(ctx context.Context, actor domain.HackathonUser, update domain.ProfileUpdate) (domain.HackathonUser, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetMe godoc
// @Summary      Get the current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  domain.HackathonUser
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/me [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetMe(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, actor)
}

// HandleGetUser godoc
// @Summary      Get a user's public profile
// @Tags         users
// @Produce      json
// @Param        userID  path      int  true  "user ID"
// @Success      200     {object}  domain.HackathonUser
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /users/{userID} [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	userID, respErr := parseIDParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	profile, err := h.svc.GetUser(ctx.Request.Context(), actor, userID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleGetUser -> h.svc.GetUser", "userID", userID, err))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// HandleListUsers godoc
// @Summary      List users
// @Description  Filter by role, or by users without a team to find teammates.
// @Tags         users
// @Produce      json
// @Param        role          query     string  false  "role"
// @Param        without_team  query     bool    false  "only users without a team"
// @Success      200           {array}   domain.HackathonUser
// @Failure      400           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /users [get]
// @Security     BearerAuth
func (h *UserHandler) HandleListUsers(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	filter, respErr := userFilterFromQuery(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	profiles, err := h.svc.ListUsers(ctx.Request.Context(), actor, filter)
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleListUsers -> h.svc.ListUsers", "role", filter.Role, err))
		return
	}

	ctx.JSON(http.StatusOK, profiles)
}

// HandleUpdateMe godoc
// @Summary      Update the current user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      request.UpdateMeRequest  true  "request body"
// @Success      200      {object}  domain.HackathonUser
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/me [patch]
// @Security     BearerAuth
func (h *UserHandler) HandleUpdateMe(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateMeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.UpdateMe(ctx.Request.Context(), actor, domain.ProfileUpdate{
		Name:   req.Name,
		Bio:    req.Bio,
		Skills: req.Skills,
	})
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleUpdateMe -> h.svc.UpdateMe", "userID", actor.UserID, err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func userFilterFromQuery(ctx *gin.Context) (domain.UserFilter, *response.Err) {
	filter := domain.UserFilter{
		Role:        domain.Role(ctx.Query("role")),
		WithoutTeam: ctx.Query("without_team") == "true",
	}
	if filter.Role != "" && !filter.Role.Valid() {
		return domain.UserFilter{}, response.ErrBadRequest(errInvalidRoleFilter)
	}

	return filter, nil
}
