package socket

import (
	"net/http"

	"Moodgraph/pkg/log"
	"Moodgraph/pkg/snowflake"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler WebSocket 接入层
type Handler struct {
	Hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{Hub: hub}
}

func (h *Handler) RegisterRouter(r gin.IRouter) {
	r.GET("/ws", h.HandleWS)
}

func (h *Handler) HandleWS(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.L.Error("websocket upgrade error", zap.Error(err))
		return
	}

	client := NewClient(snowflake.GenSessionID(), conn, h.Hub)
	h.Hub.Register(client)

	log.L.Info("session connected", zap.Int64("session_id", client.ID()))

	client.Serve()

	log.L.Info("session disconnected", zap.Int64("session_id", client.ID()))
}
