package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/hackathon-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/hackathon-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/hackathon-api/internal/domain"
)

type AdminService interface {
	ListUsers(ctx context.Context, actor domain.HackathonUser, filter domain.UserFilter) ([]domain.HackathonUser, error)
	SetRole(ctx context.Context, actor domain.HackathonUser, userID uint, role domain.Role) (domain.HackathonUser, error)
	SetBanned(ctx context.Context, actor domain.HackathonUser, userID uint, banned bool) (domain.HackathonUser, error)
	HideIdea(ctx context.Context, actor domain.HackathonUser, id uint, hidden bool) error
	DeleteTeam(ctx context.Context, actor domain.HackathonUser, id uint) error
	DeleteSuggestion(ctx context.Context, actor domain.HackathonUser, id uint) error
	Stats(ctx context.Context, actor domain.HackathonUser) (domain.Stats, error)
}

type AdminHandler struct {
	svc  AdminService
	uSvc ProfileGetter
}

func NewAdminHandler(svc AdminService, uSvc ProfileGetter) *AdminHandler {
	return &AdminHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListUsers godoc
// @Summary      List users (admin)
// @Tags         admin
// @Produce      json
// @Param        role          query     string  false  "role"
// @Param        without_team  query     bool    false  "only users without a team"
// @Success      200           {array}   domain.HackathonUser
// @Failure      400           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /admin/users [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleListUsers(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
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
		response.RenderErr(ctx, serviceErr("v1.AdminHandler.HandleListUsers -> h.svc.ListUsers", "role", filter.Role, err))
		return
	}

	ctx.JSON(http.StatusOK, profiles)
}

// HandleSetRole godoc
// @Summary      Change a user's role
// @Description  Admins cannot demote themselves.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        userID   path      int                     true  "user ID"
// @Param        request  body      request.SetRoleRequest  true  "request body"
// @Success      200      {object}  domain.HackathonUser
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/users/{userID}/role [put]
// @Security     BearerAuth
func (h *AdminHandler) HandleSetRole(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	userID, respErr := parseIDParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SetRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	profile, err := h.svc.SetRole(ctx.Request.Context(), actor, userID, domain.Role(req.Role))
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleSetRole -> h.svc.SetRole", "userID", userID, err))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// HandleSetBanned godoc
// @Summary      Ban or unban a user
// @Description  Banning also removes the user from their team.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        userID   path      int                       true  "user ID"
// @Param        request  body      request.SetBannedRequest  true  "request body"
// @Success      200      {object}  domain.HackathonUser
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/users/{userID}/ban [put]
// @Security     BearerAuth
func (h *AdminHandler) HandleSetBanned(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	userID, respErr := parseIDParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SetBannedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	profile, err := h.svc.SetBanned(ctx.Request.Context(), actor, userID, req.Banned)
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleSetBanned -> h.svc.SetBanned", "userID", userID, err))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// HandleHideIdea godoc
// @Summary      Hide or unhide an idea
// @Tags         admin
// @Accept       json
// @Param        ideaID   path  int                      true  "idea ID"
// @Param        request  body  request.HideIdeaRequest  true  "request body"
// @Success      204
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/ideas/{ideaID}/hidden [put]
// @Security     BearerAuth
func (h *AdminHandler) HandleHideIdea(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ideaID, respErr := parseIDParam(ctx, "ideaID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.HideIdeaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.HideIdea(ctx.Request.Context(), actor, ideaID, req.Hidden); err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleHideIdea -> h.svc.HideIdea", "ideaID", ideaID, err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeleteTeam godoc
// @Summary      Delete a team (admin)
// @Tags         admin
// @Param        teamID  path  int  true  "team ID"
// @Success      204
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /admin/teams/{teamID} [delete]
// @Security     BearerAuth
func (h *AdminHandler) HandleDeleteTeam(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	teamID, respErr := parseIDParam(ctx, "teamID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteTeam(ctx.Request.Context(), actor, teamID); err != nil {
		response.RenderErr(ctx, serviceErr("v1.AdminHandler.HandleDeleteTeam -> h.svc.DeleteTeam", "teamID", teamID, err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeleteSuggestion godoc
// @Summary      Delete a suggestion (admin)
// @Tags         admin
// @Param        suggestionID  path  int  true  "suggestion ID"
// @Success      204
// @Failure      400           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /admin/suggestions/{suggestionID} [delete]
// @Security     BearerAuth
func (h *AdminHandler) HandleDeleteSuggestion(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	suggestionID, respErr := parseIDParam(ctx, "suggestionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteSuggestion(ctx.Request.Context(), actor, suggestionID); err != nil {
		response.RenderErr(ctx, serviceErr("v1.AdminHandler.HandleDeleteSuggestion -> h.svc.DeleteSuggestion", "suggestionID", suggestionID, err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleStats godoc
// @Summary      Event statistics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.Stats
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/stats [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleStats(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	stats, err := h.svc.Stats(ctx.Request.Context(), actor)
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleStats -> h.svc.Stats", "userID", actor.UserID, err))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
