package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vietanh2810/hackathon-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/hackathon-api/internal/service"
)

// LiveHub accepts upgraded connections and keeps them subscribed to events.
type LiveHub interface {
	Serve(conn *websocket.Conn, userID uint)
}

type LiveHandler struct {
	hub      LiveHub
	uSvc     ProfileGetter
	upgrader websocket.Upgrader
}

// NewLiveHandler checks the Origin header against allowedOrigins. An empty list
// accepts any origin.
func NewLiveHandler(hub LiveHub, uSvc ProfileGetter, allowedOrigins []string) *LiveHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return &LiveHandler{
		hub:  hub,
		uSvc: uSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if len(allowed) == 0 || origin == "" {
					return true
				}
				_, ok := allowed[origin]

				return ok
			},
		},
	}
}

// HandleLive godoc
// @Summary      Subscribe to live events
// @Description  Upgrades to a WebSocket that receives every idea, team, suggestion and leaderboard event as JSON. Browsers may pass the token as the token query parameter.
// @Tags         live
// @Param        token  query     string  false  "JWT, when the Authorization header cannot be set"
// @Success      101    {string}  string  "Switching Protocols"
// @Failure      401    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Router       /live [get]
// @Security     BearerAuth
func (h *LiveHandler) HandleLive(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if actor.Banned {
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrBanned))
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// Upgrade has already written the error response.
		zap.L().Debug("websocket upgrade failed", zap.Uint("user_id", actor.UserID), zap.Error(err))
		return
	}

	h.hub.Serve(conn, actor.UserID)
}
