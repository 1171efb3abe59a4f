package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	APIBaseURL      string
	SessionSecret   string
	SessionTTL      time.Duration
	HealthCron      string
	UpstreamTimeout time.Duration
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		APIBaseURL:      getEnv("API_BASE_URL", "https://egspgoi-spms.onrender.com/api/v1"),
		SessionSecret:   getEnv("SESSION_SECRET", ""),
		SessionTTL:      time.Duration(getEnvInt("SESSION_TTL_HOURS", 12)) * time.Hour,
		HealthCron:      getEnv("HEALTH_CRON", "@every 5m"),
		UpstreamTimeout: time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
