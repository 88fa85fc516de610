// Package config provides centralized configuration management for the Gong MCP server.
package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Config holds the complete configuration for the application
type Config struct {
	// Gong API configuration
	Gong struct {
		BaseURL string
		// Default credentials for local/dev mode. Per-request Authorization
		// headers always take precedence.
		AccessKey      string
		AccessSecret   string
		RequestTimeout time.Duration
	}

	// HTTP server configuration
	Server struct {
		ListenAddr              string
		ReadTimeout             time.Duration
		WriteTimeout            time.Duration
		IdleTimeout             time.Duration
		GracefulShutdownTimeout time.Duration
		AllowedOrigins          []string
	}

	LogLevel string
}

var (
	once   sync.Once
	config *Config
)

// Load initializes and loads the configuration from environment variables
func Load() *Config {
	once.Do(func() {
		v := viper.New()

		// Set default values
		v.SetDefault("GONG_BASE_URL", "https://api.gong.io/v2")
		v.SetDefault("GONG_REQUEST_TIMEOUT", 30*time.Second)
		v.SetDefault("GONG_MCP_LISTEN_ADDR", "127.0.0.1:8080")
		v.SetDefault("GONG_MCP_READ_TIMEOUT", 30*time.Second)
		v.SetDefault("GONG_MCP_WRITE_TIMEOUT", 30*time.Second)
		v.SetDefault("GONG_MCP_IDLE_TIMEOUT", 120*time.Second)
		v.SetDefault("GONG_MCP_GRACEFUL_SHUTDOWN", 10*time.Second)
		v.SetDefault("GONG_MCP_ALLOWED_ORIGINS", []string{"*"})
		v.SetDefault("GONG_MCP_LOG_LEVEL", "info")

		// Load from environment variables
		v.AutomaticEnv()

		config = &Config{}

		config.Gong.BaseURL = v.GetString("GONG_BASE_URL")
		config.Gong.AccessKey = v.GetString("GONG_ACCESS_KEY")
		config.Gong.AccessSecret = v.GetString("GONG_ACCESS_SECRET")
		config.Gong.RequestTimeout = v.GetDuration("GONG_REQUEST_TIMEOUT")

		config.Server.ListenAddr = v.GetString("GONG_MCP_LISTEN_ADDR")
		config.Server.ReadTimeout = v.GetDuration("GONG_MCP_READ_TIMEOUT")
		config.Server.WriteTimeout = v.GetDuration("GONG_MCP_WRITE_TIMEOUT")
		config.Server.IdleTimeout = v.GetDuration("GONG_MCP_IDLE_TIMEOUT")
		config.Server.GracefulShutdownTimeout = v.GetDuration("GONG_MCP_GRACEFUL_SHUTDOWN")
		config.Server.AllowedOrigins = v.GetStringSlice("GONG_MCP_ALLOWED_ORIGINS")

		config.LogLevel = v.GetString("GONG_MCP_LOG_LEVEL")
	})

	return config
}

// HasDefaultCredentials reports whether env-provided Gong credentials are
// available as a fallback for requests without an Authorization header.
func (c *Config) HasDefaultCredentials() bool {
	return c.Gong.AccessKey != "" && c.Gong.AccessSecret != ""
}

// Validate checks if all required configuration values are set
func (c *Config) Validate() error {
	var errors []string

	if c.Gong.BaseURL == "" {
		errors = append(errors, "GONG_BASE_URL must not be empty")
	}

	if c.Server.ListenAddr == "" {
		errors = append(errors, "GONG_MCP_LISTEN_ADDR must not be empty")
	}

	// Default credentials are optional: without them every request must carry
	// its own Authorization header.
	if (c.Gong.AccessKey == "") != (c.Gong.AccessSecret == "") {
		errors = append(errors, "GONG_ACCESS_KEY and GONG_ACCESS_SECRET must be set together")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %v", errors)
	}

	return nil
}
