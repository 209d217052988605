package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultPageSize is used when DEFAULT_PAGE_SIZE is unset or invalid.
const DefaultPageSize = 25

// Config holds the settings the server needs after the environment is loaded.
type Config struct {
	Port            string
	DatabaseURL     string
	DefaultPageSize int
	MaxPageSize     int
	FrontendURL     string
	AdminURL        string
	RedisURL        string // empty keeps the login rate limit in memory
}

// LoadEnv reads .env from the working directory. A missing file is fine; in
// production the variables are set directly.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// ValidateEnv checks that critical environment variables are set.
// Returns an error if any critical variable is missing.
func ValidateEnv() error {
	var missing []string

	if os.Getenv("JWT_SECRET") == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if os.Getenv("DATABASE_URL") == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("critical environment variables not set: %v", missing)
	}

	if os.Getenv("ADMIN_URL") == "" {
		log.Println("WARNING: ADMIN_URL not set - CORS may not work correctly")
	}
	if os.Getenv("DEFAULT_PAGE_SIZE") == "" {
		log.Printf("WARNING: DEFAULT_PAGE_SIZE not set - using %d", DefaultPageSize)
	}

	return nil
}

// Load reads the current environment into a Config.
func Load() *Config {
	cfg := &Config{
		Port:            GetEnv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DefaultPageSize: GetEnvInt("DEFAULT_PAGE_SIZE", DefaultPageSize),
		MaxPageSize:     GetEnvInt("MAX_PAGE_SIZE", 500),
		FrontendURL:     os.Getenv("FRONTEND_URL"),
		AdminURL:        os.Getenv("ADMIN_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		cfg.MaxPageSize = cfg.DefaultPageSize
	}
	return cfg
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt returns the positive integer stored in key, or defaultValue.
func GetEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("WARNING: %s=%q is not a positive integer - using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
