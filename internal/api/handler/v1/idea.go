package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/hackathon-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/hackathon-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/hackathon-api/internal/domain"
)

type IdeaService interface {
	CreateIdea(ctx context.Context, actor domain.HackathonUser, idea domain.Idea) (domain.Idea, error)
	ListIdeas(ctx context.Context, actor domain.HackathonUser, query domain.IdeaQuery) ([]domain.Idea, error)
	GetIdea(ctx context.Context, actor domain.HackathonUser, id uint) (domain.Idea, error)
	UpdateIdea(ctx context.Context, actor domain.HackathonUser, id uint, update domain.IdeaUpdate) (domain.Idea, error)
	DeleteIdea(ctx context.Context, actor domain.HackathonUser, id uint) error
	ToggleVote(ctx context.Context, actor domain.HackathonUser, id uint) (domain.VoteResult, error)
}

type IdeaHandler struct {
	svc  IdeaService
	uSvc ProfileGetter
}

func NewIdeaHandler(svc IdeaService, uSvc ProfileGetter) *IdeaHandler {
	return &IdeaHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateIdea godoc
// @Summary      Submit an idea
// @Tags         ideas
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateIdeaRequest  true  "request body"
// @Success      201      {object}  domain.Idea
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /ideas [post]
// @Security     BearerAuth
func (h *IdeaHandler) HandleCreateIdea(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateIdeaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	idea, err := h.svc.CreateIdea(ctx.Request.Context(), actor, domain.Idea{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleCreateIdea -> h.svc.CreateIdea", "userID", actor.UserID, err))
		return
	}

	ctx.JSON(http.StatusCreated, idea)
}

// HandleListIdeas godoc
// @Summary      List ideas
// @Tags         ideas
// @Produce      json
// @Param        sort  query     string  false  "votes (default) or recent"
// @Param        q     query     string  false  "search in title and description"
// @Success      200   {array}   domain.Idea
// @Failure      400   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /ideas [get]
// @Security     BearerAuth
func (h *IdeaHandler) HandleListIdeas(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	sort := domain.IdeaSort(ctx.DefaultQuery("sort", string(domain.IdeaSortVotes)))
	if sort != domain.IdeaSortVotes && sort != domain.IdeaSortRecent {
		response.RenderErr(ctx, response.ErrBadRequest(errInvalidSort))
		return
	}

	ideas, err := h.svc.ListIdeas(ctx.Request.Context(), actor, domain.IdeaQuery{
		Sort:   sort,
		Search: ctx.Query("q"),
	})
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleListIdeas -> h.svc.ListIdeas", "sort", sort, err))
		return
	}

	ctx.JSON(http.StatusOK, ideas)
}

// HandleGetIdea godoc
// @Summary      Get an idea
// @Tags         ideas
// @Produce      json
// @Param        ideaID  path      int  true  "idea ID"
// @Success      200     {object}  domain.Idea
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /ideas/{ideaID} [get]
// @Security     BearerAuth
func (h *IdeaHandler) HandleGetIdea(ctx *gin.Context) {
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

	idea, err := h.svc.GetIdea(ctx.Request.Context(), actor, ideaID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleGetIdea -> h.svc.GetIdea", "ideaID", ideaID, err))
		return
	}

	ctx.JSON(http.StatusOK, idea)
}

// HandleUpdateIdea godoc
// @Summary      Update an idea
// @Description  Only the author can edit an idea.
// @Tags         ideas
// @Accept       json
// @Produce      json
// @Param        ideaID   path      int                        true  "idea ID"
// @Param        request  body      request.UpdateIdeaRequest  true  "request body"
// @Success      200      {object}  domain.Idea
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /ideas/{ideaID} [patch]
// @Security     BearerAuth
func (h *IdeaHandler) HandleUpdateIdea(ctx *gin.Context) {
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

	var req request.UpdateIdeaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	idea, err := h.svc.UpdateIdea(ctx.Request.Context(), actor, ideaID, domain.IdeaUpdate{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleUpdateIdea -> h.svc.UpdateIdea", "ideaID", ideaID, err))
		return
	}

	ctx.JSON(http.StatusOK, idea)
}

// HandleDeleteIdea godoc
// @Summary      Delete an idea
// @Description  Author or admin. Votes are removed and teams working on it are detached.
// @Tags         ideas
// @Param        ideaID  path  int  true  "idea ID"
// @Success      204
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /ideas/{ideaID} [delete]
// @Security     BearerAuth
func (h *IdeaHandler) HandleDeleteIdea(ctx *gin.Context) {
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

	if err := h.svc.DeleteIdea(ctx.Request.Context(), actor, ideaID); err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleDeleteIdea -> h.svc.DeleteIdea", "ideaID", ideaID, err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleToggleIdeaVote godoc
// @Summary      Vote or unvote an idea
// @Tags         ideas
// @Produce      json
// @Param        ideaID  path      int  true  "idea ID"
// @Success      200     {object}  domain.VoteResult
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /ideas/{ideaID}/vote [post]
// @Security     BearerAuth
func (h *IdeaHandler) HandleToggleIdeaVote(ctx *gin.Context) {
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

	result, err := h.svc.ToggleVote(ctx.Request.Context(), actor, ideaID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleToggleIdeaVote -> h.svc.ToggleVote", "ideaID", ideaID, err))
		return
	}

	ctx.JSON(http.StatusOK, result)
}
