package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"studymatch/backend/internal/chathub"
	"studymatch/backend/internal/config"
	"studymatch/backend/internal/storage"
)

// Handler carries the dependencies of every HTTP endpoint.
type Handler struct {
	Hub    *chathub.ManagerService
	Router *chathub.EventRouter
	Store  storage.Storage

	jwtSecret     []byte
	tokenValidity time.Duration
	upgrader      websocket.Upgrader
}

// NewHandler wires the handler against the hub, router and storage.
func NewHandler(hub *chathub.ManagerService, router *chathub.EventRouter, store storage.Storage, cfg *config.Config) *Handler {
	allowed := cfg.AllowedOrigin
	return &Handler{
		Hub:           hub,
		Router:        router,
		Store:         store,
		jwtSecret:     []byte(cfg.JWTSecret),
		tokenValidity: cfg.TokenValidity,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowed == "*" || origin == "" || origin == allowed
			},
		},
	}
}

// internalError logs the failure under a trace ID and replies with a
// generic 500 body; internal detail never reaches the client.
func internalError(c *gin.Context, err error) {
	traceID := uuid.New().String()
	log.Printf("ERROR: %s %s failed (trace %s): %v", c.Request.Method, c.Request.URL.Path, traceID, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
