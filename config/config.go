// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvPort             = "CAPNOW_PORT"
	EnvDBPath           = "CAPNOW_DB_PATH"
	EnvSnapshotFile     = "CAPNOW_SNAPSHOT_FILE"
	EnvProgressSource   = "CAPNOW_PROGRESS_SOURCE"
	EnvProgressSchedule = "CAPNOW_PROGRESS_SCHEDULE"
	EnvLogLevel         = "CAPNOW_LOG_LEVEL"
	EnvDevMode          = "CAPNOW_DEV_MODE"
)

// Default values used when the environment does not set them.
const (
	DefaultPort             = 8080
	DefaultDBPath           = "leads.db"
	DefaultProgressSchedule = "@every 60s"
)

// Config holds application configuration
type Config struct {
	Port             int
	DBPath           string // SQLite file storing captured leads
	SnapshotFile     string // JSON snapshot displayed on the dashboard, empty for the preview snapshot
	ProgressSource   string // URL or file of the progress document, empty to disable polling
	ProgressSchedule string // cron schedule of the progress polling
	LogLevel         string
	DevMode          bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnvAsInt(EnvPort, DefaultPort),
		DBPath:           getEnv(EnvDBPath, DefaultDBPath),
		SnapshotFile:     getEnv(EnvSnapshotFile, ""),
		ProgressSource:   getEnv(EnvProgressSource, ""),
		ProgressSchedule: getEnv(EnvProgressSchedule, DefaultProgressSchedule),
		LogLevel:         getEnv(EnvLogLevel, "info"),
		DevMode:          getEnvAsBool(EnvDevMode, false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("a leads database path is required")
	}
	if c.ProgressSource != "" && strings.TrimSpace(c.ProgressSchedule) == "" {
		return fmt.Errorf("a progress schedule is required to poll %q", c.ProgressSource)
	}
	return nil
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
