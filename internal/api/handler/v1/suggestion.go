package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/hackathon-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/hackathon-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/hackathon-api/internal/domain"
)

type SuggestionService interface {
	CreateSuggestion(ctx context.Context, actor domain.HackathonUser, suggestion domain.Suggestion) (domain.Suggestion, error)
	ListSuggestions(ctx context.Context, actor domain.HackathonUser, status domain.SuggestionStatus) ([]domain.Suggestion, error)
	ToggleVote(ctx context.Context, actor domain.HackathonUser, id uint) (domain.VoteResult, error)
	DeleteSuggestion(ctx context.Context, actor domain.HackathonUser, id uint) error
	SetStatus(ctx context.Context, actor domain.HackathonUser, id uint, status domain.SuggestionStatus) (domain.Suggestion, error)
}

type SuggestionHandler struct {
	svc  SuggestionService
	uSvc ProfileGetter
}

func NewSuggestionHandler(svc SuggestionService, uSvc ProfileGetter) *SuggestionHandler {
	return &SuggestionHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateSuggestion godoc
// @Summary      Send a suggestion
// @Tags         suggestions
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateSuggestionRequest  true  "request body"
// @Success      201      {object}  domain.Suggestion
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /suggestions [post]
// @Security     BearerAuth
func (h *SuggestionHandler) HandleCreateSuggestion(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateSuggestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	suggestion, err := h.svc.CreateSuggestion(ctx.Request.Context(), actor, domain.Suggestion{
		Title:    req.Title,
		Body:     req.Body,
		Category: req.Category,
	})
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleCreateSuggestion -> h.svc.CreateSuggestion", "userID", actor.UserID, err))
		return
	}

	ctx.JSON(http.StatusCreated, suggestion)
}

// HandleListSuggestions godoc
// @Summary      List suggestions
// @Tags         suggestions
// @Produce      json
// @Param        status  query     string  false  "open, planned, done or rejected"
// @Success      200     {array}   domain.Suggestion
// @Failure      400     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /suggestions [get]
// @Security     BearerAuth
func (h *SuggestionHandler) HandleListSuggestions(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	status := domain.SuggestionStatus(ctx.Query("status"))
	if status != "" && !status.Valid() {
		response.RenderErr(ctx, response.ErrBadRequest(errInvalidStatusFilter))
		return
	}

	suggestions, err := h.svc.ListSuggestions(ctx.Request.Context(), actor, status)
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleListSuggestions -> h.svc.ListSuggestions", "status", status, err))
		return
	}

	ctx.JSON(http.StatusOK, suggestions)
}

// HandleToggleSuggestionVote godoc
// @Summary      Vote or unvote a suggestion
// @Tags         suggestions
// @Produce      json
// @Param        suggestionID  path      int  true  "suggestion ID"
// @Success      200           {object}  domain.VoteResult
// @Failure      400           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /suggestions/{suggestionID}/vote [post]
// @Security     BearerAuth
func (h *SuggestionHandler) HandleToggleSuggestionVote(ctx *gin.Context) {
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

	result, err := h.svc.ToggleVote(ctx.Request.Context(), actor, suggestionID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleToggleSuggestionVote -> h.svc.ToggleVote", "suggestionID", suggestionID, err))
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleDeleteSuggestion godoc
// @Summary      Delete a suggestion
// @Description  Author or admin.
// @Tags         suggestions
// @Param        suggestionID  path  int  true  "suggestion ID"
// @Success      204
// @Failure      400           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /suggestions/{suggestionID} [delete]
// @Security     BearerAuth
func (h *SuggestionHandler) HandleDeleteSuggestion(ctx *gin.Context) {
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
		response.RenderErr(ctx, serviceErr("v1.HandleDeleteSuggestion -> h.svc.DeleteSuggestion", "suggestionID", suggestionID, err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleSetSuggestionStatus godoc
// @Summary      Set a suggestion's status
// @Description  Admin only.
// @Tags         suggestions
// @Accept       json
// @Produce      json
// @Param        suggestionID  path      int                                 true  "suggestion ID"
// @Param        request       body      request.SetSuggestionStatusRequest  true  "request body"
// @Success      200           {object}  domain.Suggestion
// @Failure      400           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /suggestions/{suggestionID}/status [put]
// @Security     BearerAuth
func (h *SuggestionHandler) HandleSetSuggestionStatus(ctx *gin.Context) {
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

	var req request.SetSuggestionStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	suggestion, err := h.svc.SetStatus(ctx.Request.Context(), actor, suggestionID, domain.SuggestionStatus(req.Status))
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleSetSuggestionStatus -> h.svc.SetStatus", "suggestionID", suggestionID, err))
		return
	}

	ctx.JSON(http.StatusOK, suggestion)
}
