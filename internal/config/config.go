package config

import (
	"os"
	"time"
)

// Config is loaded once at startup and passed by value; nothing
// mutates it afterwards. Rotating JWT_SECRET invalidates every
// previously issued token on the next restart.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
}

func Load() Config {
	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	return Config{
		Addr:        addr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   envString("JWT_SECRET", "secret_key_change_me"),
		TokenTTL:    envDuration("TOKEN_TTL", 24*time.Hour),
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
