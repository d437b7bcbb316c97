package config

import (
	"errors"
	"os"
	"time"
)

type Config struct {
	ServerPort       string
	DatabaseURL      string
	RedisURL         string
	RemoteBaseURL    string
	RemoteToken      string
	JWTSecret        string
	JWTExpiry        time.Duration
	RetentionWindow  time.Duration
	EvictionInterval time.Duration
	LogLevel         string
	LogFormat        string
}

func LoadConfig() (*Config, error) {
	jwtExpiry, err := time.ParseDuration(getEnv("JWT_EXPIRY", "24h"))
	if err != nil {
		return nil, errors.New("invalid JWT_EXPIRY format")
	}
	retention, err := time.ParseDuration(getEnv("RETENTION_WINDOW", "168h"))
	if err != nil {
		return nil, errors.New("invalid RETENTION_WINDOW format")
	}
	evictionInterval, err := time.ParseDuration(getEnv("EVICTION_INTERVAL", "1h"))
	if err != nil {
		return nil, errors.New("invalid EVICTION_INTERVAL format")
	}

	cfg := &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		RemoteBaseURL:    os.Getenv("REMOTE_BASE_URL"),
		RemoteToken:      os.Getenv("REMOTE_TOKEN"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTExpiry:        jwtExpiry,
		RetentionWindow:  retention,
		EvictionInterval: evictionInterval,
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}

	// Validate required fields
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	if cfg.RemoteBaseURL == "" {
		return nil, errors.New("REMOTE_BASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// Helper: get env with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
