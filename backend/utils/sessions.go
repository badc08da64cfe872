package utils

import (
	"strconv"
	"strings"
	"time"

	"learnhub/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	pgstorage "github.com/gofiber/storage/postgres/v3"
	redisstorage "github.com/gofiber/storage/redis/v3"
	"github.com/google/uuid"
)

// SessionTTL is the fixed cookie/session lifetime.
const SessionTTL = 24 * time.Hour

// NewSessionStore wraps storage in a cookie-keyed server-side session store.
// A nil storage falls back to fiber's in-process memory storage, which the
// tests rely on.
func NewSessionStore(storage fiber.Storage) *session.Store {
	return session.New(session.Config{
		Expiration:     SessionTTL,
		KeyLookup:      "cookie:sid",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		KeyGenerator:   uuid.NewString,
		Storage:        storage,
	})
}

// NewSessionStorage picks the backing store for sessions: Redis when
// configured, otherwise a table in the application database (sessions
// survive restarts either way, like the original deployment).
func NewSessionStorage(cfg *config.Config) fiber.Storage {
	if cfg.RedisAddr != "" {
		host, port := splitHostPort(cfg.RedisAddr, 6379)
		return redisstorage.New(redisstorage.Config{
			Host: host,
			Port: port,
		})
	}
	return pgstorage.New(pgstorage.Config{
		ConnectionURI: cfg.URI(),
		Table:         "sessions",
		GCInterval:    10 * time.Minute,
	})
}

func splitHostPort(addr string, defaultPort int) (string, int) {
	host, portStr, found := strings.Cut(addr, ":")
	if !found {
		return addr, defaultPort
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return host, defaultPort
	}
	return host, port
}
