package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"renthub/internal/realtime"
	"renthub/internal/service"
	apperrors "renthub/pkg/errors"
	"renthub/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	hub         *realtime.Hub
	router      *realtime.Router
	authService service.AuthService
	log         logger.Logger
}

func NewWebSocketHandler(hub *realtime.Hub, router *realtime.Router, authService service.AuthService, log logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		router:      router,
		authService: authService,
		log:         log,
	}
}

// Handle runs the connection handshake. The token is verified before the
// protocol upgrade, so a rejected client gets a plain 401 and no socket ever
// reaches the hub half-registered.
func (h *WebSocketHandler) Handle(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrAuthenticationRequired.Error()})
		return
	}

	user, err := h.authService.ValidateToken(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("Failed to upgrade connection", "error", err, "user_id", user.ID)
		return
	}

	client := realtime.NewClient(h.hub, conn, user.Profile(), h.router, h.log)
	h.hub.Register(client)

	h.log.Info("WebSocket connected", "user_id", user.ID, "conn_id", client.ID())

	go client.WritePump()
	go client.ReadPump()
}
