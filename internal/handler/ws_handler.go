package handler

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/vybhavgg-ship-it/InstaCordChat/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			// Non-browser clients send no Origin
			return true
		}
		if strings.Contains(origin, "localhost") || strings.Contains(origin, "127.0.0.1") {
			return true
		}
		for _, allowed := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
			if origin == strings.TrimSpace(allowed) {
				return true
			}
		}
		return false
	},
}

type WSHandler struct {
	sessions *realtime.SessionManager
	resolver realtime.SessionResolver
}

func NewWSHandler(sessions *realtime.SessionManager, resolver realtime.SessionResolver) *WSHandler {
	return &WSHandler{sessions: sessions, resolver: resolver}
}

func (h *WSHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/ws", h.HandleWebSocket)
}

// HandleWebSocket resolves the transport session identity, upgrades the
// connection and hands it to the session manager. The session stays
// unauthenticated until the client's auth frame arrives.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	identity := h.resolver.Resolve(c.Request)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("WebSocket upgrade failed", "error", err)
		return
	}

	go h.sessions.Serve(conn, identity)
}
