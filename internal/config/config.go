package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort           string
	DatabaseDriver     string
	DatabaseURL        string
	MaxOpenConns       int
	EnforceForeignKeys bool
	LogLevel           string
	ShutdownTimeout    time.Duration
}

// Load reads an optional .env file and the environment. Defaults reproduce
// the fixed port and database file the service has always used.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	maxOpenConns, err := getEnvAsInt("DATABASE_MAX_OPEN_CONNS", 1)
	if err != nil {
		return Config{}, fmt.Errorf("invalid DATABASE_MAX_OPEN_CONNS: %w", err)
	}
	enforceFK, err := getEnvAsBool("ENFORCE_FOREIGN_KEYS", false)
	if err != nil {
		return Config{}, fmt.Errorf("invalid ENFORCE_FOREIGN_KEYS: %w", err)
	}
	shutdownTimeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	return Config{
		HTTPPort:           getEnv("HTTP_PORT", "3000"),
		DatabaseDriver:     getEnv("DATABASE_DRIVER", "sqlite3"),
		DatabaseURL:        getEnv("DATABASE_URL", "database.db"),
		MaxOpenConns:       maxOpenConns,
		EnforceForeignKeys: enforceFK,
		LogLevel:           getEnv("LOG_LEVEL", "INFO"),
		ShutdownTimeout:    shutdownTimeout,
	}, nil
}

func (c Config) Debug() bool {
	return c.LogLevel == "DEBUG"
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(valueStr)
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}
	return strconv.ParseBool(valueStr)
}
