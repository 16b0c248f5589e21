package application

import (
	"os"
	"strings"
)

// RuntimeConfig holds all runtime configuration from CLI flags, environment variables, and .env file
type RuntimeConfig struct {
	// API Configuration
	APIKey  string
	APIPort string

	// Development Mode
	DevMode bool

	// Logging Configuration
	LogLevel  string
	LogFormat string
	LogOutput string
	// LogMute lists message prefixes dropped by the log handler
	LogMute []string

	// Database Configuration
	DBDriver string
	DBDSN    string

	// Config file path, optional
	ConfigPath string
}

// Flags carries the raw CLI flag values. Empty strings mean unset.
type Flags struct {
	APIKey     string
	Port       string
	LogLevel   string
	LogFormat  string
	LogOutput  string
	LogMute    string
	DBDriver   string
	DBDSN      string
	ConfigPath string
	DevMode    bool
}

// LoadRuntimeConfig loads configuration with precedence: CLI flags > env vars > .env file > defaults
func LoadRuntimeConfig(flags Flags) *RuntimeConfig {
	cfg := &RuntimeConfig{
		APIKey:     getValue(flags.APIKey, "ZBXSTATS_API_KEY", ""),
		APIPort:    getValue(flags.Port, "ZBXSTATS_API_PORT", "8080"),
		DevMode:    flags.DevMode || getBoolEnv("ZBXSTATS_DEV_MODE", false),
		LogLevel:   getValue(flags.LogLevel, "ZBXSTATS_LOG_LEVEL", "INFO"),
		LogFormat:  getValue(flags.LogFormat, "ZBXSTATS_LOG_FORMAT", "text"),
		LogOutput:  getValue(flags.LogOutput, "ZBXSTATS_LOG_OUTPUT", "stdout"),
		LogMute:    splitList(getValue(flags.LogMute, "ZBXSTATS_LOG_MUTE", "JSON-RPC Server Endpoint")),
		DBDriver:   getValue(flags.DBDriver, "ZBXSTATS_DB_DRIVER", "sqlite"),
		DBDSN:      getValue(flags.DBDSN, "ZBXSTATS_DB_DSN", "zabbix.db"),
		ConfigPath: getValue(flags.ConfigPath, "ZBXSTATS_CONFIG", ""),
	}

	return cfg
}

// getValue returns the first non-empty value from CLI flag, env var, or default
func getValue(cliValue, envKey, defaultValue string) string {
	if cliValue != "" {
		return cliValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolEnv gets a boolean environment variable
func getBoolEnv(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "true" || value == "1" || value == "yes" {
		return true
	}
	if value == "false" || value == "0" || value == "no" {
		return false
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks that required configuration is present
func (c *RuntimeConfig) Validate() error {
	if c.APIKey == "" {
		return &ConfigError{Field: "api-key", Message: "API key is required (set ZBXSTATS_API_KEY or use --api-key flag)"}
	}
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return &ConfigError{Field: "db-driver", Message: "database driver must be sqlite or postgres"}
	}
	if c.DBDSN == "" {
		return &ConfigError{Field: "db-dsn", Message: "database DSN is required"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
