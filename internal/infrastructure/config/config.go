// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	engine, err := allocator.NewAllocator(cfg.EngineConfig())
//	port := cfg.Server.Port
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/eshaffer321/giftpool/internal/domain/allocator"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration
type Config struct {
	Allocator     AllocatorConfig     `yaml:"allocator"`
	Server        ServerConfig        `yaml:"server"`
	Tracing       TracingConfig       `yaml:"tracing"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// AllocatorConfig holds the fee rates applied on top of gift prices
type AllocatorConfig struct {
	PlatformFeeRate    float64 `yaml:"platform_fee_rate"`
	ProcessingFeeRate  float64 `yaml:"processing_fee_rate"`
	ExchangeBufferRate float64 `yaml:"exchange_buffer_rate"`
}

// ServerConfig holds HTTP adapter settings
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// TracingConfig holds OpenTelemetry settings
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"` // Jaeger collector, e.g. http://localhost:14268/api/traces
	ServiceName string `yaml:"service_name"`
	Environment string `yaml:"environment"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // maven, text or json
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Allocator: AllocatorConfig{
			PlatformFeeRate:    0.05,
			ProcessingFeeRate:  0.03,
			ExchangeBufferRate: 0.05,
		},
		Server: ServerConfig{
			Port:           8085,
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Tracing: TracingConfig{
			Endpoint:    "http://localhost:14268/api/traces",
			ServiceName: "giftpool",
			Environment: "development",
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  "info",
				Format: "maven",
			},
		},
	}
}

// Load reads and parses the config file. Keys missing from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${GIFTPOOL_PORT})
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	def := Default()
	return &Config{
		Allocator: AllocatorConfig{
			PlatformFeeRate:    getEnvFloat("GIFTPOOL_PLATFORM_FEE_RATE", def.Allocator.PlatformFeeRate),
			ProcessingFeeRate:  getEnvFloat("GIFTPOOL_PROCESSING_FEE_RATE", def.Allocator.ProcessingFeeRate),
			ExchangeBufferRate: getEnvFloat("GIFTPOOL_EXCHANGE_BUFFER_RATE", def.Allocator.ExchangeBufferRate),
		},
		Server: ServerConfig{
			Port:           getEnvInt("GIFTPOOL_PORT", def.Server.Port),
			AllowedOrigins: getEnvList("GIFTPOOL_ALLOWED_ORIGINS", def.Server.AllowedOrigins),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvBool("GIFTPOOL_TRACING_ENABLED", false),
			Endpoint:    getEnv("GIFTPOOL_TRACING_ENDPOINT", def.Tracing.Endpoint),
			ServiceName: def.Tracing.ServiceName,
			Environment: getEnv("GIFTPOOL_ENVIRONMENT", def.Tracing.Environment),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", def.Observability.Logging.Level),
				Format: getEnv("LOG_FORMAT", def.Observability.Logging.Format),
			},
		},
	}
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() *Config {
	return LoadOrEnv_WithPath("config.yaml")
}

// LoadOrEnv_WithPath tries to load from specified path, falls back to environment variables
func LoadOrEnv_WithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

// EngineConfig converts the configured rates into the allocator's config
func (c *Config) EngineConfig() allocator.Config {
	return allocator.Config{
		PlatformFeeRate:    decimal.NewFromFloat(c.Allocator.PlatformFeeRate),
		ProcessingFeeRate:  decimal.NewFromFloat(c.Allocator.ProcessingFeeRate),
		ExchangeBufferRate: decimal.NewFromFloat(c.Allocator.ExchangeBufferRate),
	}
}

// Addr returns the listen address for the HTTP adapter
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		var result float64
		if _, err := fmt.Sscanf(val, "%g", &result); err == nil {
			return result
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty entries
func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
