package config

import (
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// EnvVarMapping defines the mapping between environment variables and config paths.
var EnvVarMapping = map[string]string{
	"SCOPE_HOST":             "server.host",
	"SCOPE_PORT":             "server.port",
	"SCOPE_CORS_ORIGIN":      "server.cors_origin",
	"SCOPE_ADMIN_ENDPOINTS":  "server.admin_endpoints",
	"SCOPE_SHUTDOWN_TIMEOUT": "server.shutdown_timeout",
	// Database settings
	"SCOPE_DB_DRIVER":   "database.driver",
	"SCOPE_DB_URL":      "database.url",
	"SCOPE_DB_PATH":     "database.sqlite.path",
	"SCOPE_DB_HOST":     "database.postgres.host",
	"SCOPE_DB_PORT":     "database.postgres.port",
	"SCOPE_DB_NAME":     "database.postgres.database",
	"SCOPE_DB_USER":     "database.postgres.user",
	"SCOPE_DB_PASSWORD": "database.postgres.password",
	"SCOPE_DB_SSL_MODE": "database.postgres.ssl_mode",
	"SCOPE_DB_POOL_MAX": "database.postgres.pool_max",
	// Auth settings
	"SCOPE_JWT_SECRET": "auth.jwt_secret",
	"SCOPE_TOKEN_TTL":  "auth.token_ttl",
	// Log settings
	"SCOPE_LOG_LEVEL":  "log.level",
	"SCOPE_LOG_FORMAT": "log.format",
	"SCOPE_LOG_FILE":   "log.file",
}

// LegacyEnvVarMapping keeps deployments configured with the unprefixed
// variable names working. SCOPE_* variables take precedence.
var LegacyEnvVarMapping = map[string]string{
	"PORT":         "server.port",
	"CORS_ORIGIN":  "server.cors_origin",
	"DATABASE_URL": "database.url",
	"JWT_SECRET":   "auth.jwt_secret",
}

// ApplyEnvVars applies environment variable overrides to cfg.
// Returns the sorted list of config paths that were overridden.
func ApplyEnvVars(cfg *Config) []string {
	seen := make(map[string]bool)
	for _, mapping := range []map[string]string{LegacyEnvVarMapping, EnvVarMapping} {
		for envVar, configPath := range mapping {
			value := os.Getenv(envVar)
			if value == "" {
				continue
			}
			if applyEnvVar(cfg, configPath, value) {
				seen[configPath] = true
			}
		}
	}

	overridden := make([]string, 0, len(seen))
	for path := range seen {
		overridden = append(overridden, path)
	}
	sort.Strings(overridden)
	return overridden
}

// applyEnvVar applies a single environment variable to the config.
// Returns true if the value was applied.
func applyEnvVar(cfg *Config, path string, value string) bool {
	switch path {
	case "server.host":
		cfg.Server.Host = value
	case "server.port":
		v, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		cfg.Server.Port = v
	case "server.cors_origin":
		cfg.Server.CORSOrigin = value
	case "server.admin_endpoints":
		cfg.Server.AdminEndpoints = parseBool(value)
	case "server.shutdown_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return false
		}
		cfg.Server.ShutdownTimeout = d
	// Database settings
	case "database.driver":
		cfg.Database.Driver = value
	case "database.url":
		cfg.Database.URL = value
	case "database.sqlite.path":
		cfg.Database.SQLite.Path = value
	case "database.postgres.host":
		cfg.Database.Postgres.Host = value
	case "database.postgres.port":
		v, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		cfg.Database.Postgres.Port = v
	case "database.postgres.database":
		cfg.Database.Postgres.Database = value
	case "database.postgres.user":
		cfg.Database.Postgres.User = value
	case "database.postgres.password":
		cfg.Database.Postgres.Password = value
	case "database.postgres.ssl_mode":
		cfg.Database.Postgres.SSLMode = value
	case "database.postgres.pool_max":
		v, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		cfg.Database.Postgres.PoolMax = v
	// Auth settings
	case "auth.jwt_secret":
		cfg.Auth.JWTSecret = value
	case "auth.token_ttl":
		d, err := time.ParseDuration(value)
		if err != nil {
			return false
		}
		cfg.Auth.TokenTTL = d
	// Log settings
	case "log.level":
		cfg.Log.Level = value
	case "log.format":
		cfg.Log.Format = value
	case "log.file":
		cfg.Log.File = value
	default:
		return false
	}
	return true
}

// parseBool parses a boolean string (case-insensitive).
func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
