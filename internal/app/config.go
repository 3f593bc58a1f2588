package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	PrivateKey string        // Required: base64-encoded JSON JWK used to sign access tokens
	Issuer     string        // Required: issuer claim for access tokens
	SessionTTL time.Duration // Required: session lifetime reported as expires_in

	SDKKey    string // Required: meeting SDK app key
	SDKSecret string // Required: meeting SDK shared secret

	StoreDriver  string // Optional: store driver (memory, sqlite) (default: memory)
	DatabaseFile string // Optional: path to SQLite database file (default: ./classmeet.db)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads configuration from the environment. Missing secrets are a
// startup error, never a silent default.
func LoadConfig() (Config, error) {
	cfg := Config{
		PrivateKey:          os.Getenv("AUTH_PRIVATE_KEY"),
		Issuer:              os.Getenv("AUTH_TOKEN_ISSUER"),
		SDKKey:              os.Getenv("SDK_KEY"),
		SDKSecret:           os.Getenv("SDK_SECRET"),
		StoreDriver:         getEnvOrDefault("STORE_DRIVER", "memory"),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "classmeet.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	var missing []string
	if cfg.PrivateKey == "" {
		missing = append(missing, "AUTH_PRIVATE_KEY")
	}
	if cfg.Issuer == "" {
		missing = append(missing, "AUTH_TOKEN_ISSUER")
	}
	if cfg.SDKKey == "" {
		missing = append(missing, "SDK_KEY")
	}
	if cfg.SDKSecret == "" {
		missing = append(missing, "SDK_SECRET")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %v", missing)
	}

	expiresIn := os.Getenv("TOKEN_EXPIRES_IN")
	if expiresIn == "" {
		return Config{}, errors.New("missing required environment variable: TOKEN_EXPIRES_IN")
	}
	seconds, err := strconv.ParseInt(expiresIn, 10, 64)
	if err != nil || seconds <= 0 {
		return Config{}, fmt.Errorf("TOKEN_EXPIRES_IN must be a positive number of seconds, got %q", expiresIn)
	}
	cfg.SessionTTL = time.Duration(seconds) * time.Second

	if cfg.StoreDriver != "memory" && cfg.StoreDriver != "sqlite" {
		return Config{}, fmt.Errorf("STORE_DRIVER must be memory or sqlite, got %q", cfg.StoreDriver)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
