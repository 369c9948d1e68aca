package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port            string
	DBDriver        string
	DatabaseURL     string
	SQLitePath      string
	LogLevel        string
	GinMode         string
	CORSAllowOrigin string
	ShutdownTimeout time.Duration
	// ReorderSinglePhase runs both column reorder passes inside one commit.
	ReorderSinglePhase bool
}

// Load reads envFiles (default ".env") when present, then the environment.
func Load(envFiles ...string) *Config {
	// Load .env file if it exists
	_ = godotenv.Load(envFiles...)

	shutdownTimeout := 10 * time.Second
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			shutdownTimeout = parsed
		}
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		DBDriver:           getEnv("DB_DRIVER", DriverSQLite),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		SQLitePath:         getEnv("SQLITE_PATH", "taskdeck.db"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		GinMode:            getEnv("GIN_MODE", "release"),
		CORSAllowOrigin:    getEnv("CORS_ALLOW_ORIGIN", ""),
		ShutdownTimeout:    shutdownTimeout,
		ReorderSinglePhase: getEnvBool("REORDER_SINGLE_PHASE", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
