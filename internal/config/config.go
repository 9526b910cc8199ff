package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	DBPath               string
	LogLevel             string
	SessionSize          int
	DefaultNewPerDay     int
	DefaultReviewsPerDay int
	RollupHourUTC        int
	RollupWorkerCount    int
	RollupQueueSize      int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:laurel.db"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		SessionSize:          envIntOr("SESSION_SIZE", 20),
		DefaultNewPerDay:     envIntOr("DEFAULT_NEW_PER_DAY", 10),
		DefaultReviewsPerDay: envIntOr("DEFAULT_REVIEWS_PER_DAY", 100),
		RollupHourUTC:        envIntOr("ROLLUP_HOUR_UTC", 3),
		RollupWorkerCount:    envIntOr("ROLLUP_WORKER_COUNT", 2),
		RollupQueueSize:      envIntOr("ROLLUP_QUEUE_SIZE", 64),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
