package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"studymatch/backend/internal/api/handler"
	"studymatch/backend/internal/chathub"
	"studymatch/backend/internal/config"
	"studymatch/backend/internal/metrics"
	"studymatch/backend/internal/models"
	"studymatch/backend/internal/storage"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the storage layer relies on.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Match{},
		&models.Pass{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting StudyMatch backend...")

	cfg := config.Load()
	db, rdb := setupDependencies(cfg)
	store := storage.NewService(db, rdb)

	hub := chathub.NewManagerService(store)
	router := chathub.NewEventRouter(hub, store, 64)

	go hub.Run()
	hub.StartPubSubListener()

	r := gin.Default()
	h := handler.NewHandler(hub, router, store, cfg)

	api := r.Group("/api")
	{
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)

		authed := api.Group("", h.RequireAuth())
		{
			authed.GET("/profile", h.GetProfile)
			authed.PUT("/profile", h.UpdateProfile)

			authed.POST("/matches", h.CreateMatch)
			authed.GET("/matches", h.ListMatches)
			authed.PUT("/matches/:id/accept", h.AcceptMatch)
			authed.PUT("/matches/:id/reject", h.RejectMatch)

			authed.GET("/discovery", h.Discover)
			authed.POST("/discovery/pass", h.Pass)

			authed.GET("/messages/conversations", h.ListConversations)
			authed.GET("/messages/conversations/:otherUserId", h.GetConversation)
			authed.PUT("/messages/conversations/:otherUserId/read", h.MarkConversationRead)
			authed.DELETE("/messages/conversations/:otherUserId", h.DeleteConversation)
		}
	}

	r.GET("/ws", h.ServeWebSocket)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/health", func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			status["status"] = "degraded"
			status["postgres"] = "down"
		}
		if rdb.Ping(c.Request.Context()).Err() != nil {
			status["status"] = "degraded"
			status["redis"] = "down"
		}
		c.JSON(http.StatusOK, status)
	})

	server := &http.Server{
		Addr:           cfg.Addr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("Listening on %s", cfg.Addr)
	log.Fatal(server.ListenAndServe())
}
