package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sii-nl/buscador/internal/core/search"
	"github.com/sii-nl/buscador/internal/shell/api"
	"github.com/sii-nl/buscador/internal/shell/dataset"
	"github.com/sii-nl/buscador/internal/shell/logsink"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	Search   SearchConfig   `mapstructure:"search"`
	Response ResponseConfig `mapstructure:"response"`
	Messages MessagesConfig `mapstructure:"messages"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatasetConfig locates the beneficiary table.
type DatasetConfig struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"` // auto, json, xlsx or sqlite
	Sheet  string `mapstructure:"sheet"`
}

// SearchConfig holds pagination limits.
type SearchConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size"`
	MaxPageSize     int `mapstructure:"max_page_size"` // 0 disables the cap
}

// ResponseConfig selects the success response shape.
type ResponseConfig struct {
	Mode string `mapstructure:"mode"` // list or single
}

// MessagesConfig selects the message catalog.
type MessagesConfig struct {
	Locale string `mapstructure:"locale"`
	File   string `mapstructure:"file"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Stdout     bool   `mapstructure:"stdout"`
}

// MetricsConfig holds the Prometheus endpoint configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads configuration from file and environment. A .env file in
// the working directory, if present, is loaded into the environment first.
func LoadConfig(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("dataset.path", "./data_good.json")
	v.SetDefault("dataset.format", "auto")
	v.SetDefault("dataset.sheet", "")
	v.SetDefault("search.default_page_size", search.DefaultPageSize)
	v.SetDefault("search.max_page_size", 0)
	v.SetDefault("response.mode", string(api.ModeList))
	v.SetDefault("messages.locale", search.LocaleES)
	v.SetDefault("messages.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "app.log")
	v.SetDefault("log.max_size_mb", logsink.DefaultMaxSizeMB)
	v.SetDefault("log.max_backups", logsink.DefaultMaxBackups)
	v.SetDefault("log.max_age_days", 0)
	v.SetDefault("log.stdout", true)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// Only a file that exists but cannot be parsed is an error
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix("BUSCADOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that viper cannot.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Dataset.Path == "" {
		errs = append(errs, errors.New("dataset.path is required"))
	}
	if _, err := dataset.ParseFormat(c.Dataset.Format); err != nil {
		errs = append(errs, fmt.Errorf("dataset.format: %w", err))
	}
	if c.Search.DefaultPageSize < 1 {
		errs = append(errs, fmt.Errorf("search.default_page_size must be positive, got %d", c.Search.DefaultPageSize))
	}
	if c.Search.MaxPageSize < 0 {
		errs = append(errs, fmt.Errorf("search.max_page_size must not be negative, got %d", c.Search.MaxPageSize))
	}
	if c.Search.MaxPageSize > 0 && c.Search.DefaultPageSize > c.Search.MaxPageSize {
		errs = append(errs, fmt.Errorf("search.default_page_size %d exceeds search.max_page_size %d",
			c.Search.DefaultPageSize, c.Search.MaxPageSize))
	}
	if _, err := api.ParseResponseMode(c.Response.Mode); err != nil {
		errs = append(errs, fmt.Errorf("response.mode: %w", err))
	}
	if _, ok := search.MessagesFor(c.Messages.Locale); !ok {
		errs = append(errs, fmt.Errorf("messages.locale: unknown locale %q", c.Messages.Locale))
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics.path must start with /, got %q", c.Metrics.Path))
	}

	return errors.Join(errs...)
}

// LogSinkConfig converts the log section for logsink.New.
func (c LogConfig) LogSinkConfig() logsink.Config {
	return logsink.Config{
		Level:      c.Level,
		Format:     c.Format,
		File:       c.File,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Stdout:     c.Stdout,
	}
}
