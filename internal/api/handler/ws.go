package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studymatch/backend/internal/auth"
	"studymatch/backend/internal/chathub"
	"studymatch/backend/internal/models"
)

// ServeWebSocket authenticates the handshake with the same bearer token as
// the HTTP layer and upgrades the connection. Browser WebSocket clients
// cannot set headers, so the token is also accepted as a query parameter.
// Invalid or missing tokens are rejected before the upgrade.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		token = c.Query("token")
	}
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied"})
		return
	}

	userID, err := auth.UserIDFromToken(token, h.jwtSecret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote its own response.
		return
	}

	client := &chathub.WebSocketClient{
		UserID: userID,
		Conn:   conn,
		Hub:    h.Hub,
		Router: h.Router,
		Send:   make(chan models.ServerEvent, 256),
	}
	h.Hub.RegisterCh <- client
	client.Run()
}
