// Package config loads runtime settings from the environment, with an
// optional .env overlay for local development.
package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting for the backend.
type Config struct {
	Addr          string        // HTTP listen address
	DatabaseDSN   string        // PostgreSQL DSN
	RedisAddr     string        // Redis host:port
	RedisPassword string
	JWTSecret     string        // HMAC secret shared by HTTP auth and the WS handshake
	TokenValidity time.Duration // bearer token lifetime
	AllowedOrigin string        // origin allowed to open WebSocket connections; "*" in dev
}

// Load reads .env if present, then the environment, falling back to
// development defaults. The defaults are not suitable for production.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file, using environment only")
	}

	cfg := &Config{
		Addr:          getenv("ADDR", ":8080"),
		DatabaseDSN:   getenv("DATABASE_DSN", "host=localhost user=user password=password dbname=studymatch port=5432 sslmode=disable"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     getenv("JWT_SECRET", "dev-only-secret"),
		AllowedOrigin: getenv("ALLOWED_ORIGIN", "*"),
		TokenValidity: 72 * time.Hour,
	}

	if raw := os.Getenv("TOKEN_VALIDITY"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			log.Printf("config: invalid TOKEN_VALIDITY %q, keeping default: %v", raw, err)
		} else {
			cfg.TokenValidity = d
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
