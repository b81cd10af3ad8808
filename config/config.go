package config

import (
	"os"
	"strconv"
	"time"

	"yamdb/internal/logging"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string
	SECRET_KEY string

	CORS_ORIGIN string
	GIN_MODE    string
	LOG_LEVEL   string

	SMTP_HOST     string
	SMTP_PORT     int
	SMTP_USERNAME string
	SMTP_PASSWORD string
	SMTP_FROM     string

	ACCESS_TOKEN_TTL      time.Duration
	REFRESH_TOKEN_TTL     time.Duration
	CONFIRMATION_CODE_TTL time.Duration

	AUTH_RATE_LIMIT float64
	AUTH_RATE_BURST int
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		logging.L.Info("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = getEnv("DB_URL", "")
	JWT_SECRET = mustEnv("JWT_SECRET")
	SECRET_KEY = getEnv("SECRET_KEY", JWT_SECRET)

	CORS_ORIGIN = getEnv("CORS_ORIGIN", "*")
	GIN_MODE = getEnv("GIN_MODE", "debug")
	LOG_LEVEL = getEnv("LOG_LEVEL", "info")

	SMTP_HOST = getEnv("SMTP_HOST", "")
	SMTP_PORT = getInt("SMTP_PORT", 587)
	SMTP_USERNAME = getEnv("SMTP_USERNAME", "")
	SMTP_PASSWORD = getEnv("SMTP_PASSWORD", "")
	SMTP_FROM = getEnv("SMTP_FROM", "yamdb <noreply@yamdb.local>")

	ACCESS_TOKEN_TTL = getDuration("ACCESS_TOKEN_TTL", 24*time.Hour)
	REFRESH_TOKEN_TTL = getDuration("REFRESH_TOKEN_TTL", 30*24*time.Hour)
	CONFIRMATION_CODE_TTL = getDuration("CONFIRMATION_CODE_TTL", 72*time.Hour)

	AUTH_RATE_LIMIT = getFloat("AUTH_RATE_LIMIT", 1)
	AUTH_RATE_BURST = getInt("AUTH_RATE_BURST", 5)
}

// RequireDB fails fast for commands that cannot run without a database.
func RequireDB() string {
	if DB_URL == "" {
		logging.L.Fatal("Missing required environment variable", "key", "DB_URL")
	}
	return DB_URL
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		logging.L.Fatal("Missing required environment variable", "key", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logging.L.Warn("Invalid integer, using fallback", "key", key, "value", v, "fallback", fallback)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logging.L.Warn("Invalid number, using fallback", "key", key, "value", v, "fallback", fallback)
		return fallback
	}
	return f
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logging.L.Warn("Invalid duration, using fallback", "key", key, "value", v, "fallback", fallback)
		return fallback
	}
	return d
}
