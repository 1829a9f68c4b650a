package config

import (
	"os"
	"strconv"

	"ppi/internal/errors"
)

// DefaultMaxUploadBytes matches the upload limit of the web front end (50 MiB).
const DefaultMaxUploadBytes int64 = 50 << 20

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// StorageConfig holds upload storage settings
type StorageConfig struct {
	UploadDir      string
	MaxUploadBytes int64
}

// DatabaseConfig holds the optional upload catalog connection.
// An empty URL disables the catalog.
type DatabaseConfig struct {
	URL string
}

// Enabled reports whether a catalog database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    *loadServerConfig(),
		Storage:   *loadStorageConfig(),
		Database:  *loadDatabaseConfig(),
		Profiling: *loadProfilingConfig(),
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "4000"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadStorageConfig() *StorageConfig {
	return &StorageConfig{
		UploadDir:      getEnvOrDefault("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes: getEnvInt64OrDefault("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
	}
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URL: getEnvOrDefault("DATABASE_URL", ""),
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

// Validate rejects values the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port <= 0 || port > 65535 {
		return errors.ConfigInvalid("server port must be between 1 and 65535")
	}
	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	if c.Storage.UploadDir == "" {
		return errors.ConfigInvalid("upload directory is required")
	}
	if c.Storage.MaxUploadBytes <= 0 {
		return errors.ConfigInvalid("upload limit must be positive")
	}
	if c.Profiling.Enabled && c.Profiling.Port == c.Server.Port {
		return errors.ConfigInvalid("profiling port must differ from server port")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
