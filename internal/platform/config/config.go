package config

import (
	"log/slog"
	"os"
	"strings"
)

// StoreKind selects the persistence backend for person records.
type StoreKind string

const (
	StoreMemory   StoreKind = "memory"
	StorePostgres StoreKind = "postgres"
	StoreRedis    StoreKind = "redis"
)

// Server captures process level configuration.
type Server struct {
	Addr        string
	Store       StoreKind
	DatabaseURL string
	RedisURL    string
	LogLevel    slog.Level
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("PERSONS_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	store := StoreKind(strings.ToLower(os.Getenv("PERSONS_STORE")))
	switch store {
	case StoreMemory, StorePostgres, StoreRedis:
	default:
		store = StoreMemory
	}

	return Server{
		Addr:        addr,
		Store:       store,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		LogLevel:    parseLevel(os.Getenv("LOG_LEVEL")),
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
