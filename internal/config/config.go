// Package config provides configuration management for scope.
//
// Values are resolved in this order, later sources winning:
//  1. Built-in defaults (Default)
//  2. YAML config file (LoadFrom)
//  3. Legacy environment variables (DATABASE_URL, JWT_SECRET, CORS_ORIGIN, PORT)
//  4. SCOPE_* environment variables
//  5. Command line flags
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	scopeerrors "github.com/randalmurphal/scope/internal/errors"
)

// ConfigFileName is the config file looked up in the search paths.
const ConfigFileName = "scope.yaml"

// Config represents the scope configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig defines HTTP server settings.
type ServerConfig struct {
	// Host is the server bind address (default: "0.0.0.0")
	Host string `yaml:"host"`

	// Port is the server port (default: 3001)
	Port int `yaml:"port"`

	// CORSOrigin is sent as Access-Control-Allow-Origin (default: "*")
	CORSOrigin string `yaml:"cors_origin"`

	// AdminEndpoints registers /api/init-db and /api/reset-db.
	// These are unauthenticated; keep them off outside development.
	AdminEndpoints bool `yaml:"admin_endpoints"`

	// ShutdownTimeout bounds how long in-flight requests may drain.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DatabaseConfig defines database connection settings.
type DatabaseConfig struct {
	// Driver is the database type: "sqlite" or "postgres"
	Driver string `yaml:"driver"`

	// URL is a full connection string. When set it wins over the
	// per-driver settings, and a postgres:// URL selects the postgres driver.
	URL string `yaml:"url"`

	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig defines SQLite-specific settings.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// PostgresConfig defines PostgreSQL-specific settings.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"` // Use env SCOPE_DB_PASSWORD
	SSLMode  string `yaml:"ssl_mode"`
	PoolMax  int    `yaml:"pool_max"`
}

// AuthConfig defines token settings.
type AuthConfig struct {
	// JWTSecret signs and verifies bearer tokens. Required; there is no default.
	JWTSecret string `yaml:"jwt_secret"`

	// TokenTTL is the lifetime of issued tokens (default: 24h)
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// LogConfig defines logging settings.
type LogConfig struct {
	// Level: debug, info, warn, error (default: info)
	Level string `yaml:"level"`

	// Format: text, json, or auto (text on a terminal, json otherwise)
	Format string `yaml:"format"`

	// File, when set, receives logs through a size-rotated writer
	// instead of stderr.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3001,
			CORSOrigin:      "*",
			AdminEndpoints:  false,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			SQLite: SQLiteConfig{
				Path: "data/scope.db",
			},
			Postgres: PostgresConfig{
				Host:     "localhost",
				Port:     5432,
				Database: "scope",
				User:     "scope",
				SSLMode:  "disable",
				PoolMax:  10,
			},
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "auto",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}

// LoadFrom loads the config from a specific path on top of the defaults.
// An empty path or a missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Load loads the config file at path and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg, err := LoadFrom(path)
	if err != nil {
		return nil, err
	}
	ApplyEnvVars(cfg)
	return cfg, nil
}

// SaveTo writes the config as YAML.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// EffectiveDriver returns the driver actually used, taking a postgres URL into account.
func (d DatabaseConfig) EffectiveDriver() string {
	if isPostgresURL(d.URL) {
		return "postgres"
	}
	return strings.ToLower(d.Driver)
}

// DSN returns the connection string for the effective driver.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	if d.EffectiveDriver() == "postgres" {
		p := d.Postgres
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(p.User, p.Password),
			Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
			Path:     "/" + p.Database,
			RawQuery: "sslmode=" + url.QueryEscape(p.SSLMode),
		}
		return u.String()
	}
	return d.SQLite.Path
}

func isPostgresURL(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

var (
	validDrivers    = map[string]bool{"sqlite": true, "sqlite3": true, "postgres": true, "postgresql": true, "pg": true}
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"text": true, "json": true, "auto": true}
)

// Validate checks the configuration for values the server cannot start with.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return scopeerrors.ErrConfigMissing("auth.jwt_secret")
	}
	if c.Auth.TokenTTL <= 0 {
		return scopeerrors.ErrConfigInvalid("auth.token_ttl", "must be a positive duration")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return scopeerrors.ErrConfigInvalid("server.port", fmt.Sprintf("%d is out of range 1-65535", c.Server.Port))
	}
	if c.Server.ShutdownTimeout < 0 {
		return scopeerrors.ErrConfigInvalid("server.shutdown_timeout", "must not be negative")
	}
	if !validDrivers[c.Database.EffectiveDriver()] {
		return scopeerrors.ErrConfigInvalid("database.driver", fmt.Sprintf("unknown driver %q (use sqlite or postgres)", c.Database.Driver))
	}
	if c.Database.DSN() == "" {
		return scopeerrors.ErrConfigMissing("database.url")
	}
	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return scopeerrors.ErrConfigInvalid("log.level", fmt.Sprintf("unknown level %q", c.Log.Level))
	}
	if !validLogFormats[strings.ToLower(c.Log.Format)] {
		return scopeerrors.ErrConfigInvalid("log.format", fmt.Sprintf("unknown format %q", c.Log.Format))
	}
	return nil
}
