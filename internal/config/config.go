package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Groq    GroqConfig
	Catalog CatalogConfig
	Logging LoggingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// GroqConfig holds configuration for the completion service
// (Groq or any OpenAI-compatible endpoint)
type GroqConfig struct {
	APIKey           string
	APIBase          string
	Model            string
	IntentMaxTokens  int
	ReplyTemperature float64
	Timeout          int
	Enabled          bool
}

// CatalogConfig holds configuration for the product catalog service
type CatalogConfig struct {
	BaseURL    string
	Timeout    int
	ListLimit  int
	MatchLimit int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
		},
		Groq: GroqConfig{
			APIKey: getEnv("GROQ_API_KEY", ""),
			// Groq serves its OpenAI-compatible routes under /openai/v1
			APIBase:          getEnv("GROQ_API_URL", "https://api.groq.com/openai/v1"),
			Model:            getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
			IntentMaxTokens:  getEnvAsInt("GROQ_INTENT_MAX_TOKENS", 300),
			ReplyTemperature: getEnvAsFloat("GROQ_REPLY_TEMPERATURE", 0.5),
			Timeout:          getEnvAsInt("GROQ_TIMEOUT", 10),
			Enabled:          getEnv("GROQ_API_KEY", "") != "",
		},
		Catalog: CatalogConfig{
			BaseURL:    getEnv("DUMMYJSON_BASE_URL", "https://dummyjson.com"),
			Timeout:    getEnvAsInt("CATALOG_TIMEOUT", 10),
			ListLimit:  getEnvAsInt("CATALOG_LIST_LIMIT", 100),
			MatchLimit: getEnvAsInt("CATALOG_MATCH_LIMIT", 5),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}
