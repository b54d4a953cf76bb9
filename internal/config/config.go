// ABOUTME: trainerlog configuration loaded from a JSON file, .env, and environment.
// ABOUTME: Resolves the session store location and opens it for callers.

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/harperreed/trainerlog/internal/storage"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultLogLevel     = "info"
	defaultHTTPAddr     = ":8080"
	defaultQueryTimeout = 5 * time.Second
)

// Config stores trainerlog configuration. Environment variables override
// values from the config file.
type Config struct {
	// DBPath is the session store location. Supports ~ expansion.
	// Defaults to ~/.local/share/trainerlog/sessions.db.
	DBPath string `json:"db_path,omitempty" env:"TRAINERLOG_DB_PATH"`

	LogLevel string `json:"log_level,omitempty" env:"TRAINERLOG_LOG_LEVEL"`

	// LogFile enables rotating file logs in addition to stderr.
	LogFile string `json:"log_file,omitempty" env:"TRAINERLOG_LOG_FILE"`

	HTTPAddr string `json:"http_addr,omitempty" env:"TRAINERLOG_HTTP_ADDR"`

	// QueryTimeout bounds a single report read, e.g. "5s".
	QueryTimeout string `json:"query_timeout,omitempty" env:"TRAINERLOG_QUERY_TIMEOUT"`

	AllowedOrigins []string `json:"allowed_origins,omitempty" env:"TRAINERLOG_ALLOWED_ORIGINS" envSeparator:","`
}

// GetDBPath returns the configured database path with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDBPath() string {
	if c.DBPath == "" {
		return storage.DefaultDBPath()
	}
	return ExpandPath(c.DBPath)
}

// GetLogLevel returns the configured log level, defaulting to "info".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return defaultLogLevel
	}
	return strings.ToLower(c.LogLevel)
}

// GetLogFile returns the log file path with ~ expanded, or "" when file logging is off.
func (c *Config) GetLogFile() string {
	return ExpandPath(c.LogFile)
}

// GetHTTPAddr returns the HTTP listen address, defaulting to ":8080".
func (c *Config) GetHTTPAddr() string {
	if c.HTTPAddr == "" {
		return defaultHTTPAddr
	}
	return c.HTTPAddr
}

// GetQueryTimeout returns the per-read timeout, defaulting to 5s.
func (c *Config) GetQueryTimeout() (time.Duration, error) {
	if c.QueryTimeout == "" {
		return defaultQueryTimeout, nil
	}
	d, err := time.ParseDuration(c.QueryTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid query_timeout %q: %w", c.QueryTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid query_timeout %q: must be positive", c.QueryTimeout)
	}
	return d, nil
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.GetLogLevel()); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	if _, err := c.GetQueryTimeout(); err != nil {
		return err
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenReader opens the session store read-only. Reports and exports only
// ever read; ingestion belongs to another process.
func (c *Config) OpenReader(ctx context.Context, log logrus.FieldLogger) (*storage.DB, error) {
	return storage.OpenReadOnly(ctx, c.GetDBPath(), storage.WithLogger(log))
}

// OpenStore opens the session store read-write, creating it if needed.
func (c *Config) OpenStore(log logrus.FieldLogger) (*storage.DB, error) {
	return storage.Open(c.GetDBPath(), storage.WithLogger(log))
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "trainerlog", "config.json")
}

// Load reads config from disk, then applies .env and environment overrides.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	data, err := os.ReadFile(GetConfigPath())
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
