package config

import (
	"os"
	"strconv"
)

type Config struct {
	Env              string
	HTTPPort         string
	DatabaseURL      string // empty means no archive database
	JWTSecret        string
	JWTIssuer        string
	AuthUser         string // service account accepted by /auth/login outside dev
	AuthPasswordHash string // bcrypt hash of the service account password
	RateRPS          int
	WorkerCount      int
}

func Load() Config {
	return Config{
		Env:              get("APP_ENV", "dev"),
		HTTPPort:         get("HTTP_PORT", "8080"),
		DatabaseURL:      get("DATABASE_URL", ""),
		JWTSecret:        get("JWT_SECRET", "changeme-secret"),
		JWTIssuer:        get("JWT_ISSUER", "point-ledger"),
		AuthUser:         get("AUTH_USER", ""),
		AuthPasswordHash: get("AUTH_PASSWORD_HASH", ""),
		RateRPS:          getInt("RATE_RPS", 100),
		WorkerCount:      getInt("WORKER_COUNT", 4),
	}
}

func get(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
