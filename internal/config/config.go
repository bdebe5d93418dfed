// Package config provides configuration management for the import worker.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingNatsURL           = errors.New("nats.url is required")
	ErrMissingNatsSubject       = errors.New("nats.subject is required")
	ErrMissingDatabaseDSN       = errors.New("database.dsn is required")
	ErrMissingBackendEndpoint   = errors.New("backend.endpoint is required")
	ErrInvalidThreshold         = errors.New("processing.price_change_threshold must be non-negative")
	ErrInvalidMaxAttempts       = errors.New("fetch.retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("fetch.retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("fetch.retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("fetch.retry.timeout_sec must be at least 1")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Defaults applied by applyDefaults when the file omits a value.
const (
	DefaultNatsSubject          = "orderguide.import"
	DefaultNatsQueue            = "orderguide-workers"
	DefaultPriceChangeThreshold = 0.25
	DefaultMetricsAddr          = ":9102"
)

// Config represents the complete worker configuration.
type Config struct {
	Nats       NatsConfig       `yaml:"nats"`
	Database   DatabaseConfig   `yaml:"database"`
	Backend    BackendConfig    `yaml:"backend"`
	Processing ProcessingConfig `yaml:"processing"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// NatsConfig contains the job-queue connection settings.
type NatsConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
	Queue   string `yaml:"queue"`
}

// DatabaseConfig contains the account/catalog database settings.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// BackendConfig contains the document submission API settings.
type BackendConfig struct {
	Endpoint   string `yaml:"endpoint"`
	APIKey     string `yaml:"api_key"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// ProcessingConfig contains file-processing knobs.
type ProcessingConfig struct {
	PriceChangeThreshold float64 `yaml:"price_change_threshold"`
}

// FetchConfig contains file-download settings.
type FetchConfig struct {
	Retry RetryPolicy `yaml:"retry"`
}

// RetryPolicy defines retry behavior for file downloads.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// MetricsConfig defines the Prometheus exposition endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// LoadConfig loads configuration from YAML file.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Nats.Subject == "" {
		c.Nats.Subject = DefaultNatsSubject
	}

	if c.Nats.Queue == "" {
		c.Nats.Queue = DefaultNatsQueue
	}

	if c.Processing.PriceChangeThreshold == 0 {
		c.Processing.PriceChangeThreshold = DefaultPriceChangeThreshold
	}

	if c.Backend.TimeoutSec == 0 {
		c.Backend.TimeoutSec = 30
	}

	if c.Fetch.Retry.MaxAttempts == 0 {
		c.Fetch.Retry.MaxAttempts = 3
	}

	if c.Fetch.Retry.InitialDelayMs == 0 {
		c.Fetch.Retry.InitialDelayMs = 500
	}

	if c.Fetch.Retry.MaxDelayMs == 0 {
		c.Fetch.Retry.MaxDelayMs = 10000
	}

	if c.Fetch.Retry.BackoffMultiplier == 0 {
		c.Fetch.Retry.BackoffMultiplier = 2.0
	}

	if c.Fetch.Retry.TimeoutSec == 0 {
		c.Fetch.Retry.TimeoutSec = 60
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Metrics.Addr == "" {
		c.Metrics.Addr = DefaultMetricsAddr
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Nats.URL == "" {
		return ErrMissingNatsURL
	}

	if c.Nats.Subject == "" {
		return ErrMissingNatsSubject
	}

	if c.Database.DSN == "" {
		return ErrMissingDatabaseDSN
	}

	if c.Backend.Endpoint == "" {
		return ErrMissingBackendEndpoint
	}

	if c.Processing.PriceChangeThreshold < 0 {
		return ErrInvalidThreshold
	}

	if c.Fetch.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Fetch.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Fetch.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Fetch.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the per-attempt timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// GetBackendTimeout returns the document submission timeout.
func (c *Config) GetBackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Nats: %s, Subject: %s, Backend: %s}",
		c.Nats.URL,
		c.Nats.Subject,
		c.Backend.Endpoint,
	)
}
