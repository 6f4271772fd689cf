package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// BackendConfig is the resolved Databricks backend identity. It is built once
// at startup and read concurrently by every request handler; nothing mutates
// it after ResolveBackend returns.
type BackendConfig struct {
	// Host is the Databricks workspace host without scheme or trailing slash.
	Host string
	// Token is an optional personal access token for local development. The
	// proxy never attaches it to upstream calls; production credentials come
	// from the platform's forwarded-access-token header.
	Token string
}

// Config holds application configuration
type Config struct {
	Port           string
	StaticDir      string
	Backend        BackendConfig
	GenieSpaceID   string
	SQLWarehouseID string
	ClientID       string
	Environment    string
	EnableMetrics  bool
	MetricsPort    string
	ProxyTimeout   time.Duration
}

// LoadConfig loads configuration from environment variables. It never fails:
// a missing backend host leaves Backend.Host empty and the proxy reports the
// problem per-request while static assets keep being served.
func LoadConfig() *Config {
	return &Config{
		Port:           GetEnvOrDefault("PORT", "8080"),
		StaticDir:      GetEnvOrDefault("STATIC_DIR", "dist"),
		Backend:        ResolveBackend(SDKResolver{}, EnvResolver{}),
		GenieSpaceID:   os.Getenv("GENIE_SPACE_ID"),
		SQLWarehouseID: os.Getenv("SQL_WAREHOUSE_ID"),
		ClientID:       os.Getenv("DATABRICKS_CLIENT_ID"),
		Environment:    GetEnvOrDefault("APP_ENV", "development"),
		EnableMetrics:  GetEnvAsBool("ENABLE_METRICS", false),
		MetricsPort:    GetEnvOrDefault("METRICS_PORT", "9090"),
		ProxyTimeout:   time.Duration(GetEnvAsInt("PROXY_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

// IsOBO reports whether the surrounding platform performs on-behalf-of
// credential exchange. A non-empty client id is the platform's signal for it.
func (c *Config) IsOBO() bool {
	return c.ClientID != ""
}

// GetEnvOrDefault returns environment variable value or default
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvAsBool parses environment variable as boolean
func GetEnvAsBool(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		value = strings.ToLower(value)
		if value == "true" || value == "1" || value == "yes" {
			return true
		}
		if value == "false" || value == "0" || value == "no" {
			return false
		}
	}
	return defaultValue
}

// GetEnvAsInt parses environment variable as integer
func GetEnvAsInt(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
