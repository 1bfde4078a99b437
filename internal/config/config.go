package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	HTTPTimeout     time.Duration `json:"http_timeout"`

	// Remote document store (JSONBin-style bin)
	BinID          string        `json:"bin_id"`
	BinAPIKey      string        `json:"bin_api_key"`
	BinBaseURL     string        `json:"bin_base_url"`
	BinTimeout     time.Duration `json:"bin_timeout"`
	ConfigEndpoint string        `json:"config_endpoint"`

	// Redis configuration
	RedisURL    string        `json:"redis_url"`
	RedisPrefix string        `json:"redis_prefix"`
	CacheTTL    time.Duration `json:"cache_ttl"`

	// Content
	QuizDataPath string `json:"quiz_data_path"`
	StaticPath   string `json:"static_path"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`

	// Security
	AdminAPIKey string `json:"admin_api_key"`
}

// Load loads configuration from environment variables and validates it
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{
		// Server configuration
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),

		// Remote document store
		BinID:          getEnv("JSONBIN_BIN_ID", ""),
		BinAPIKey:      getEnv("JSONBIN_API_KEY", ""),
		BinBaseURL:     getEnv("JSONBIN_BASE_URL", "https://api.jsonbin.io/v3/b"),
		BinTimeout:     getEnvAsDuration("JSONBIN_TIMEOUT", 15*time.Second),
		ConfigEndpoint: getEnv("CONFIG_ENDPOINT", ""),

		// Redis configuration
		RedisURL:    getEnv("REDIS_URL", ""),
		RedisPrefix: getEnv("REDIS_PREFIX", "learnhub:"),
		CacheTTL:    getEnvAsDuration("CACHE_TTL", 5*time.Minute),

		// Content
		QuizDataPath: getEnv("QUIZ_DATA_PATH", "./data/quiz.json"),
		StaticPath:   getEnv("STATIC_PATH", "./web/static"),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		// Security
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
	}

	return cfg
}

// BinConfigured reports whether the remote store credentials are present.
// Without them, reads come back empty and writes are local-only no-ops.
func (c *Config) BinConfigured() bool {
	return c.BinID != "" && c.BinAPIKey != ""
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
