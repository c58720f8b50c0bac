package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration. Everything is injected from
// here; packages never read the environment themselves.
type Server struct {
	Addr          string
	DatabaseURL   string
	RedisURL      string
	CacheTTL      time.Duration
	AllowedOrigin string
	AuditBuffer   int
}

// FromEnv builds a Server config from environment variables so main stays
// lean. An empty DatabaseURL selects the in-memory store; an empty
// RedisURL disables the read cache.
func FromEnv() Server {
	addr := os.Getenv("JOBTRACK_ADDR")
	if addr == "" {
		addr = ":4003"
	}

	origin := os.Getenv("APP_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}

	auditBuffer := 64
	if raw := os.Getenv("JOBTRACK_AUDIT_BUFFER"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			auditBuffer = n
		}
	}

	return Server{
		Addr:          addr,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		CacheTTL:      5 * time.Minute,
		AllowedOrigin: origin,
		AuditBuffer:   auditBuffer,
	}
}
