package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Object store configuration
	Store StoreConfig

	// Admin authentication configuration
	Auth AuthConfig

	// Site configuration used by the share/preview endpoint
	Site SiteConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// StoreConfig holds object store settings
type StoreConfig struct {
	Bucket    string
	KeyPrefix string
}

// AuthConfig holds admin token settings.
// An empty Secret disables every authenticated endpoint (fail closed).
type AuthConfig struct {
	Secret string
}

// SiteConfig holds settings for rendered share pages
type SiteConfig struct {
	BaseURL      string
	Name         string
	Description  string
	DefaultImage string
	ViewerPage   string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Store: StoreConfig{
			Bucket:    getEnv("GCS_BUCKET", ""),
			KeyPrefix: getEnv("STORE_KEY_PREFIX", "posts"),
		},
		Auth: AuthConfig{
			Secret: getEnv("ADMIN_JWT_SECRET", ""),
		},
		Site: SiteConfig{
			BaseURL:      getEnv("SITE_BASE_URL", ""),
			Name:         getEnv("SITE_NAME", "Photo Album"),
			Description:  getEnv("SITE_DESCRIPTION", "Open to browse the full photo album."),
			DefaultImage: getEnv("DEFAULT_SHARE_IMAGE", "/logo.png"),
			ViewerPage:   getEnv("VIEWER_PAGE", "/post.html"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Store.Bucket == "" {
		return fmt.Errorf("GCS_BUCKET is required")
	}
	if c.Store.KeyPrefix == "" {
		return fmt.Errorf("STORE_KEY_PREFIX must not be empty")
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
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
