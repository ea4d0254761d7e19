package v1

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/hackathon-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/hackathon-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/hackathon-api/internal/domain"
)

type TeamService interface {
	CreateTeam(ctx context.Context, actor domain.HackathonUser, team domain.Team) (domain.Team, error)
	ListTeams(ctx context.Context, actor domain.HackathonUser, status domain.TeamStatus) ([]domain.Team, error)
	GetTeam(ctx context.Context, actor domain.HackathonUser, id uint) (domain.Team, error)
	JoinTeam(ctx context.Context, actor domain.HackathonUser, id uint, inviteCode string) (domain.Team, error)
	LeaveTeam(ctx context.Context, actor domain.HackathonUser, id uint) (domain.TeamLeaveResult, error)
	KickMember(ctx context.Context, actor domain.HackathonUser, id, userID uint) (domain.TeamLeaveResult, error)
	UpdateTeam(ctx context.Context, actor domain.HackathonUser, id uint, update domain.TeamUpdate) (domain.Team, error)
	DeleteTeam(ctx context.Context, actor domain.HackathonUser, id uint) error
	RegenerateInviteCode(ctx context.Context, actor domain.HackathonUser, id uint) (string, error)
	ToggleVote(ctx context.Context, actor domain.HackathonUser, id uint) (domain.VoteResult, error)
}

type TeamHandler struct {
	svc  TeamService
	uSvc ProfileGetter
}

func NewTeamHandler(svc TeamService, uSvc ProfileGetter) *TeamHandler {
	return &TeamHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateTeam godoc
// @Summary      Create a team
// @Description  The caller becomes leader and first member. Participants only.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateTeamRequest  true  "request body"
// @Success      201      {object}  domain.Team
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /teams [post]
// @Security     BearerAuth
func (h *TeamHandler) HandleCreateTeam(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	team, err := h.svc.CreateTeam(ctx.Request.Context(), actor, domain.Team{
		Name:        req.Name,
		Description: req.Description,
		IdeaID:      req.IdeaID,
		MaxMembers:  req.MaxMembers,
	})
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleCreateTeam -> h.svc.CreateTeam", "ideaID", derefID(req.IdeaID), err))
		return
	}

	ctx.JSON(http.StatusCreated, team)
}

// HandleListTeams godoc
// @Summary      List teams
// @Tags         teams
// @Produce      json
// @Param        status  query     string  false  "open, full or closed"
// @Success      200     {array}   domain.Team
// @Failure      400     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /teams [get]
// @Security     BearerAuth
func (h *TeamHandler) HandleListTeams(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	status := domain.TeamStatus(ctx.Query("status"))
	if status != "" && !status.Valid() {
		response.RenderErr(ctx, response.ErrBadRequest(errInvalidStatusFilter))
		return
	}

	teams, err := h.svc.ListTeams(ctx.Request.Context(), actor, status)
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleListTeams -> h.svc.ListTeams", "status", status, err))
		return
	}

	ctx.JSON(http.StatusOK, teams)
}

// HandleGetTeam godoc
// @Summary      Get a team with its members
// @Tags         teams
// @Produce      json
// @Param        teamID  path      int  true  "team ID"
// @Success      200     {object}  domain.Team
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /teams/{teamID} [get]
// @Security     BearerAuth
func (h *TeamHandler) HandleGetTeam(ctx *gin.Context) {
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

	team, err := h.svc.GetTeam(ctx.Request.Context(), actor, teamID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleGetTeam -> h.svc.GetTeam", "teamID", teamID, err))
		return
	}

	ctx.JSON(http.StatusOK, team)
}

// HandleJoinTeam godoc
// @Summary      Join a team
// @Description  Closed teams can only be joined with their invite code.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        teamID   path      int                      true   "team ID"
// @Param        request  body      request.JoinTeamRequest  false  "request body"
// @Success      200      {object}  domain.Team
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /teams/{teamID}/join [post]
// @Security     BearerAuth
func (h *TeamHandler) HandleJoinTeam(ctx *gin.Context) {
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

	// The body is optional for open teams.
	var req request.JoinTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	team, err := h.svc.JoinTeam(ctx.Request.Context(), actor, teamID, req.InviteCode)
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleJoinTeam -> h.svc.JoinTeam", "teamID", teamID, err))
		return
	}

	ctx.JSON(http.StatusOK, team)
}

// HandleLeaveTeam godoc
// @Summary      Leave a team
// @Description  Leadership passes to the longest-standing member. The last member leaving disbands the team.
// @Tags         teams
// @Produce      json
// @Param        teamID  path      int  true  "team ID"
// @Success      200     {object}  domain.TeamLeaveResult
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /teams/{teamID}/leave [post]
// @Security     BearerAuth
func (h *TeamHandler) HandleLeaveTeam(ctx *gin.Context) {
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

	result, err := h.svc.LeaveTeam(ctx.Request.Context(), actor, teamID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleLeaveTeam -> h.svc.LeaveTeam", "teamID", teamID, err))
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleKickMember godoc
// @Summary      Remove a member from a team
// @Tags         teams
// @Produce      json
// @Param        teamID  path      int  true  "team ID"
// @Param        userID  path      int  true  "user ID"
// @Success      200     {object}  domain.TeamLeaveResult
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /teams/{teamID}/members/{userID} [delete]
// @Security     BearerAuth
func (h *TeamHandler) HandleKickMember(ctx *gin.Context) {
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

	userID, respErr := parseIDParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	result, err := h.svc.KickMember(ctx.Request.Context(), actor, teamID, userID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleKickMember -> h.svc.KickMember", "teamID", teamID, err))
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleUpdateTeam godoc
// @Summary      Update a team
// @Description  Leader only. Status can be set to open or closed; full is derived from the member count.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        teamID   path      int                        true  "team ID"
// @Param        request  body      request.UpdateTeamRequest  true  "request body"
// @Success      200      {object}  domain.Team
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /teams/{teamID} [patch]
// @Security     BearerAuth
func (h *TeamHandler) HandleUpdateTeam(ctx *gin.Context) {
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

	var req request.UpdateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	update := domain.TeamUpdate{
		Name:        req.Name,
		Description: req.Description,
		IdeaID:      req.IdeaID,
		ClearIdea:   req.ClearIdea,
		MaxMembers:  req.MaxMembers,
	}
	if req.Status != nil {
		status := domain.TeamStatus(*req.Status)
		update.Status = &status
	}

	team, err := h.svc.UpdateTeam(ctx.Request.Context(), actor, teamID, update)
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleUpdateTeam -> h.svc.UpdateTeam", "teamID", teamID, err))
		return
	}

	ctx.JSON(http.StatusOK, team)
}

// HandleDeleteTeam godoc
// @Summary      Delete a team
// @Description  Leader or admin. Every member's team reference is cleared.
// @Tags         teams
// @Param        teamID  path  int  true  "team ID"
// @Success      204
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /teams/{teamID} [delete]
// @Security     BearerAuth
func (h *TeamHandler) HandleDeleteTeam(ctx *gin.Context) {
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
		response.RenderErr(ctx, serviceErr("v1.HandleDeleteTeam -> h.svc.DeleteTeam", "teamID", teamID, err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleRegenerateInviteCode godoc
// @Summary      Regenerate the invite code
// @Tags         teams
// @Produce      json
// @Param        teamID  path      int  true  "team ID"
// @Success      200     {object}  response.InviteCodeResponse
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /teams/{teamID}/invite-code [post]
// @Security     BearerAuth
func (h *TeamHandler) HandleRegenerateInviteCode(ctx *gin.Context) {
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

	code, err := h.svc.RegenerateInviteCode(ctx.Request.Context(), actor, teamID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleRegenerateInviteCode -> h.svc.RegenerateInviteCode", "teamID", teamID, err))
		return
	}

	ctx.JSON(http.StatusOK, response.InviteCodeResponse{InviteCode: code})
}

// HandleToggleTeamVote godoc
// @Summary      Vote or unvote a team
// @Description  Members cannot vote for their own team.
// @Tags         teams
// @Produce      json
// @Param        teamID  path      int  true  "team ID"
// @Success      200     {object}  domain.VoteResult
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /teams/{teamID}/vote [post]
// @Security     BearerAuth
func (h *TeamHandler) HandleToggleTeamVote(ctx *gin.Context) {
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

	result, err := h.svc.ToggleVote(ctx.Request.Context(), actor, teamID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleToggleTeamVote -> h.svc.ToggleVote", "teamID", teamID, err))
		return
	}

	ctx.JSON(http.StatusOK, result)
}
