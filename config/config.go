package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config for the CLI and anything else embedding the engine. All
// values come from the environment, with an optional .env file.
type Config struct {
	API     APIConfig
	Logging LoggingConfig
}

type APIConfig struct {
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	MaxAttempts int
	BatchSize   int
	MaxInFlight int
}

type LoggingConfig struct {
	Level  string
	Pretty bool
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present; real environment
// variables win over it.
func Load() (*Config, error) {
	// Ignore the error: a missing .env file just means plain env.
	_ = godotenv.Load()

	return &Config{
		API: APIConfig{
			BaseURL:     getEnv("TRANSIT_API_URL", ""),
			APIKey:      getEnv("TRANSIT_API_KEY", ""),
			Timeout:     getDurationEnv("TRANSIT_API_TIMEOUT", 15*time.Second),
			MaxAttempts: getIntEnv("TRANSIT_API_MAX_ATTEMPTS", 3),
			BatchSize:   getIntEnv("TRANSIT_API_BATCH_SIZE", 80),
			MaxInFlight: getIntEnv("TRANSIT_API_MAX_IN_FLIGHT", 4),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getBoolEnv("LOG_PRETTY", true),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
