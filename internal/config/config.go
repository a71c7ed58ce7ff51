// Package config provides configuration loading and validation for the server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the server configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags or environment variables.
type Config struct {
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Similarity service
	SimilarityServiceURL     string `json:"similarity_service_url,omitempty"`     // Base URL of the embedding service; empty disables blending
	SimilarityTimeoutSeconds int    `json:"similarity_timeout_seconds,omitempty"` // Per-request timeout

	// Logging
	LogJSON bool `json:"log_json,omitempty"` // JSON log encoding instead of console
	Debug   bool `json:"debug,omitempty"`    // Enable debug-level logging
}

// DefaultConfig returns the baseline values applied by MergeWithDefaults.
func DefaultConfig() Config {
	return Config{
		Port:                     8080,
		SimilarityTimeoutSeconds: 8,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are checked later, after flags and environment variables
// have been merged in.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in 0-65535")
	}
	if c.SimilarityTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'similarity_timeout_seconds' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. CLI flags and environment variables always win over both.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SimilarityServiceURL == "" {
		result.SimilarityServiceURL = defaults.SimilarityServiceURL
	}
	if result.SimilarityTimeoutSeconds == 0 {
		result.SimilarityTimeoutSeconds = defaults.SimilarityTimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
