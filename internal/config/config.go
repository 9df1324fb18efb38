package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port               string
	DBConn             string
	UseMemoryStore     bool
	LogLevel           string
	AllowedOrigins     []string
	AlertSweepSchedule string
}

// NewConfig loads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		DBConn:             getEnv("DB_CONN", "host=localhost port=5432 user=cardwise password=cardwise dbname=cardwise sslmode=disable"),
		UseMemoryStore:     getEnvBool("USE_MEMORY_STORE", false),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		AllowedOrigins:     []string{getEnv("ALLOWED_ORIGIN", "http://localhost:3000")},
		AlertSweepSchedule: getEnv("ALERT_SWEEP_SCHEDULE", "0 * * * *"),
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultVal
	}
	return parsed
}
