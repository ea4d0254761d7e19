package v1

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/hackathon-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/hackathon-api/internal/domain"
)

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, limit int) (domain.Leaderboard, error)
}

type LeaderboardHandler struct {
	svc LeaderboardService
}

func NewLeaderboardHandler(svc LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		svc: svc,
	}
}

// HandleGetLeaderboard godoc
// @Summary      Get the leaderboard
// @Description  Teams and ideas ranked by votes. Ties share a rank (1, 1, 3).
// @Tags         leaderboard
// @Produce      json
// @Param        limit  query     int  false  "number of entries per list"
// @Success      200    {object}  domain.Leaderboard
// @Failure      400    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /leaderboard [get]
// @Security     BearerAuth
func (h *LeaderboardHandler) HandleGetLeaderboard(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.RenderErr(ctx, response.ErrBadRequest(errInvalidLimit))
			return
		}
		limit = n
	}

	board, err := h.svc.GetLeaderboard(ctx.Request.Context(), limit)
	if err != nil {
		response.RenderErr(ctx, serviceErr("v1.HandleGetLeaderboard -> h.svc.GetLeaderboard", "limit", limit, err))
		return
	}

	ctx.JSON(http.StatusOK, board)
}
