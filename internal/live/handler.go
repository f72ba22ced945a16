package live

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"clubhub/internal/shared/config"
	"clubhub/internal/shared/middleware"
	"clubhub/internal/shared/utils/response"
	"clubhub/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the frontend origin; auth is enforced by
	// the JWT middleware before the upgrade.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub *Hub
	log *logger.Logger
}

func NewHandler(hub *Hub, log *logger.Logger) *Handler {
	return &Handler{hub: hub, log: log}
}

// Serve upgrades an authenticated request and attaches the client to the hub.
func (h *Handler) Serve(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "user_id", userID, "error", err)
		return
	}

	client := NewClient(h.hub, conn, userID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

type Router struct {
	handler *Handler
	config  *config.Config
}

func NewRouter(handler *Handler, cfg *config.Config) *Router {
	return &Router{handler: handler, config: cfg}
}

func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	ws := rg.Group("/ws")
	ws.Use(middleware.JWTAuthWithConfig(r.config))
	{
		ws.GET("", r.handler.Serve)
	}
}
