package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"studymatch/backend/internal/auth"
)

// ContextUserID is the gin context key holding the authenticated user ID.
const ContextUserID = "userID"

// RequireAuth validates the bearer token and stores the user ID in the
// request context. The same secret backs the WebSocket handshake, so one
// token works for both surfaces.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied"})
			return
		}
		userID, err := auth.UserIDFromToken(token, h.jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
