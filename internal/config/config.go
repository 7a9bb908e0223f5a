package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	devSessionSecret = "dev-session-secret-change-in-production"
	devHistorySecret = "dev-history-secret-change-in-production"
)

var ErrInsecureSecrets = errors.New("SESSION_SECRET and HISTORY_SECRET must be set in production environment")

// Config holds the API server settings.
type Config struct {
	Port           string
	Env            string
	DatabaseDSN    string
	SessionSecret  string
	SessionExpiry  time.Duration
	HistorySecret  string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads the server configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/passgen?parseTime=true"),
		SessionSecret:  getEnv("SESSION_SECRET", devSessionSecret),
		SessionExpiry:  getDuration("SESSION_EXPIRY", 24*time.Hour),
		HistorySecret:  getEnv("HISTORY_SECRET", devHistorySecret),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 10),
	}

	if cfg.Env == "production" && (cfg.SessionSecret == devSessionSecret || cfg.HistorySecret == devHistorySecret) {
		return Config{}, ErrInsecureSecrets
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("ignoring invalid duration", "key", key, "value", v)
		return fallback
	}
	return d
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		slog.Warn("ignoring invalid number", "key", key, "value", v)
		return fallback
	}
	return f
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		slog.Warn("ignoring invalid integer", "key", key, "value", v)
		return fallback
	}
	return n
}
