// Package config provides centralized configuration management for the dashboard.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Table    TableConfig
	Database DatabaseConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// DataConfig controls where the order, shipment and checklist fixtures come from.
type DataConfig struct {
	// FixtureDir overrides the embedded fixtures with CSV files from disk.
	// The directory must contain bestellungen.csv, sendungen.csv and checklisten.csv.
	FixtureDir string `env:"FIXTURE_DIR"`

	// Watch reloads the dashboard when a file in FixtureDir changes (default: false)
	Watch bool `env:"FIXTURE_WATCH" default:"false"`

	// WatchDebounce collapses bursts of file events into one reload (default: 500ms)
	WatchDebounce time.Duration `env:"FIXTURE_WATCH_DEBOUNCE" default:"500ms"`
}

// TableConfig holds table engine defaults.
type TableConfig struct {
	// PageSize is the initial rows per page for every table (default: 50)
	PageSize int `env:"TABLE_PAGE_SIZE" default:"50"`

	// ViewsFile is an optional YAML file with per-table view presets
	ViewsFile string `env:"TABLE_VIEWS_FILE"`
}

// DatabaseConfig holds the optional audit database connection.
// The dashboard keeps all records in memory; a database is only used
// to persist the audit trail of bulk actions when URL is set.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (optional)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// MinConns is the minimum number of connections to keep open (default: 1)
	MinConns int `env:"DB_MIN_CONNS" default:"1"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`

	// AuditRetention is how long audit entries are kept (default: 2160h = 90 days)
	AuditRetention time.Duration `env:"AUDIT_RETENTION" default:"2160h"`

	// AuditPurgeInterval is how often expired audit entries are deleted (default: 24h)
	AuditPurgeInterval time.Duration `env:"AUDIT_PURGE_INTERVAL" default:"24h"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 300)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"300"`

	// ActionLimit is requests per minute for bulk action and reload endpoints (default: 30)
	ActionLimit int `env:"RATE_LIMIT_ACTIONS" default:"30"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// RequireAPIKey enforces X-API-Key on /api routes (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted API keys
	APIKeys []string `env:"API_KEYS"`

	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// AuditEnabled reports whether an audit database is configured.
func (c *DatabaseConfig) AuditEnabled() bool {
	return c.URL != ""
}
