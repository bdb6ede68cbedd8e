// internal/handlers/websocket/websocket_handler.go
package websocket

import (
	"net/http"

	"github.com/gryphathie/KombuchaApp/internal/pkg/response"
	"github.com/gryphathie/KombuchaApp/internal/service/auth"
	ws "github.com/gryphathie/KombuchaApp/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The console runs on a separate origin; CORS is enforced on the
		// REST surface, the token gates this one.
		return true
	},
}

type WebSocketHandler struct {
	hub         *ws.Hub
	authService *auth.AuthService
	logger      *zap.Logger
}

func NewWebSocketHandler(hub *ws.Hub, authService *auth.AuthService, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		authService: authService,
		logger:      logger,
	}
}

// HandleConnection authenticates via ?token= and upgrades to a websocket.
// Browsers cannot set headers on the upgrade request, hence the query param.
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	raw := c.Query("token")
	if raw == "" {
		response.Error(c, http.StatusUnauthorized, "missing authentication token", nil)
		return
	}

	if _, err := h.authService.ValidateToken(raw); err != nil {
		h.logger.Warn("websocket authentication failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		response.Error(c, http.StatusUnauthorized, "authentication failed", err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	ws.NewClient(h.hub, conn).Start()
}
