package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nerrad567/knx-ga-studio/internal/knx"
)

// Config is the root configuration structure for the studio.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Convention ConventionConfig `yaml:"convention"`
	API        APIConfig        `yaml:"api"`
	Sessions   SessionsConfig   `yaml:"sessions"`
	Database   DatabaseConfig   `yaml:"database"`
	MQTT       MQTTConfig       `yaml:"mqtt"`
	InfluxDB   InfluxDBConfig   `yaml:"influxdb"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ConventionConfig describes the gateway wiring convention used to name
// group addresses. See naming.Convention for the meaning of each field.
type ConventionConfig struct {
	DeviceID          int            `yaml:"device_id"`
	BlockSize         int            `yaml:"block_size"`
	LightsPerModule   int            `yaml:"lights_per_module"`
	GroupsPerModule   int            `yaml:"groups_per_module"`
	MaxModulesPerMain int            `yaml:"max_modules_per_main"`
	MinMain           int            `yaml:"min_main"`
	MaxMain           int            `yaml:"max_main"`
	LightLabel        string         `yaml:"light_label"`
	GroupLabel        string         `yaml:"group_label"`
	Functions         []knx.Function `yaml:"functions"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Host        string           `yaml:"host"`
	Port        int              `yaml:"port"`
	Timeouts    APITimeoutConfig `yaml:"timeouts"`
	CORS        CORSConfig       `yaml:"cors"`
	Auth        AuthConfig       `yaml:"auth"`
	MaxUploadMB int              `yaml:"max_upload_mb"`
}

// AuthConfig controls bearer-token authentication of the /api routes.
// Tokens are HS256 JWTs signed with Secret (see "gastudio token").
type AuthConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Secret          string `yaml:"secret"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
}

// MinAuthSecretLength is the shortest accepted token signing secret.
const MinAuthSecretLength = 32

// APITimeoutConfig contains HTTP timeout settings.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// SessionsConfig controls where uploaded documents are kept between the
// parse and export requests, and for how long.
type SessionsConfig struct {
	// Backend is "memory" or "sqlite".
	Backend                string `yaml:"backend"`
	TTLMinutes             int    `yaml:"ttl_minutes"`
	CleanupIntervalSeconds int    `yaml:"cleanup_interval_seconds"`

	// CacheSize bounds the number of resolved batches kept in memory.
	CacheSize int `yaml:"cache_size"`
}

// Session backends.
const (
	SessionBackendMemory = "memory"
	SessionBackendSQLite = "sqlite"
)

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// InfluxDBConfig contains InfluxDB connection settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// An empty path skips step 2, so the studio runs without a config file.
//
// Environment variables follow the pattern: GASTUDIO_SECTION_KEY
// For example: GASTUDIO_API_PORT, GASTUDIO_SESSIONS_BACKEND
//
// Parameters:
//   - path: Path to the YAML configuration file, or ""
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in configuration without reading a file or
// the environment.
func Default() *Config {
	return defaultConfig()
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Convention: ConventionConfig{
			DeviceID:          9,
			BlockSize:         80,
			LightsPerModule:   64,
			GroupsPerModule:   16,
			MaxModulesPerMain: 2,
			MinMain:           0,
			MaxMain:           knx.MaxMain,
			LightLabel:        "灯",
			GroupLabel:        "组",
			Functions:         knx.DefaultFunctions(),
		},
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 8765,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 60,
				Idle:  120,
			},
			Auth: AuthConfig{
				TokenTTLMinutes: 720,
			},
			MaxUploadMB: 50,
		},
		Sessions: SessionsConfig{
			Backend:                SessionBackendMemory,
			TTLMinutes:             120,
			CleanupIntervalSeconds: 60,
			CacheSize:              32,
		},
		Database: DatabaseConfig{
			Path:        "./data/gastudio.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "gastudio",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
				MaxAttempts:  0,
			},
		},
		InfluxDB: InfluxDBConfig{
			URL:           "http://localhost:8086",
			Org:           "gastudio",
			Bucket:        "gastudio",
			BatchSize:     100,
			FlushInterval: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: GASTUDIO_SECTION_KEY
func applyEnvOverrides(cfg *Config) error {
	var errs []string

	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s=%q is not an integer", key, v))
				return
			}
			*dst = n
		}
	}
	setBool := func(key string, dst *bool) {
		if v := os.Getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s=%q is not a boolean", key, v))
				return
			}
			*dst = b
		}
	}

	// Convention
	setInt("GASTUDIO_CONVENTION_DEVICE_ID", &cfg.Convention.DeviceID)
	setInt("GASTUDIO_CONVENTION_MAX_MODULES_PER_MAIN", &cfg.Convention.MaxModulesPerMain)

	// API
	setString("GASTUDIO_API_HOST", &cfg.API.Host)
	setInt("GASTUDIO_API_PORT", &cfg.API.Port)
	setBool("GASTUDIO_AUTH_ENABLED", &cfg.API.Auth.Enabled)
	setString("GASTUDIO_AUTH_SECRET", &cfg.API.Auth.Secret)

	// Sessions
	setString("GASTUDIO_SESSIONS_BACKEND", &cfg.Sessions.Backend)
	setInt("GASTUDIO_SESSIONS_TTL_MINUTES", &cfg.Sessions.TTLMinutes)

	// Database
	setString("GASTUDIO_DATABASE_PATH", &cfg.Database.Path)

	// MQTT
	setBool("GASTUDIO_MQTT_ENABLED", &cfg.MQTT.Enabled)
	setString("GASTUDIO_MQTT_HOST", &cfg.MQTT.Broker.Host)
	setString("GASTUDIO_MQTT_USERNAME", &cfg.MQTT.Auth.Username)
	setString("GASTUDIO_MQTT_PASSWORD", &cfg.MQTT.Auth.Password)

	// InfluxDB
	setBool("GASTUDIO_INFLUXDB_ENABLED", &cfg.InfluxDB.Enabled)
	setString("GASTUDIO_INFLUXDB_URL", &cfg.InfluxDB.URL)
	setString("GASTUDIO_INFLUXDB_TOKEN", &cfg.InfluxDB.Token)

	// Logging
	setString("GASTUDIO_LOG_LEVEL", &cfg.Logging.Level)

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// Convention validation
	if _, err := c.Convention.Build(); err != nil {
		errs = append(errs, "convention: "+err.Error())
	}

	// API validation
	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}
	if c.API.MaxUploadMB < 1 {
		errs = append(errs, "api.max_upload_mb must be positive")
	}
	if err := c.API.CheckAuth(); err != nil {
		errs = append(errs, err.Error())
	}

	// Sessions validation
	switch c.Sessions.Backend {
	case SessionBackendMemory:
	case SessionBackendSQLite:
		if c.Database.Path == "" {
			errs = append(errs, "database.path is required for the sqlite session backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("sessions.backend must be %q or %q", SessionBackendMemory, SessionBackendSQLite))
	}
	if c.Sessions.TTLMinutes < 1 {
		errs = append(errs, "sessions.ttl_minutes must be positive")
	}
	if c.Sessions.CleanupIntervalSeconds < 1 {
		errs = append(errs, "sessions.cleanup_interval_seconds must be positive")
	}
	if c.Sessions.CacheSize < 0 {
		errs = append(errs, "sessions.cache_size must not be negative")
	}

	// MQTT validation
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Enabled && c.MQTT.Broker.Host == "" {
		errs = append(errs, "mqtt.broker.host is required when mqtt is enabled")
	}

	// InfluxDB validation
	if c.InfluxDB.Enabled && (c.InfluxDB.URL == "" || c.InfluxDB.Bucket == "") {
		errs = append(errs, "influxdb.url and influxdb.bucket are required when influxdb is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// CheckAuth rejects an unusable auth section and any bind beyond the
// loopback interface without authentication.
func (c APIConfig) CheckAuth() error {
	if c.Auth.Enabled {
		if len(c.Auth.Secret) < MinAuthSecretLength {
			return fmt.Errorf("api.auth.secret must be at least %d characters (set GASTUDIO_AUTH_SECRET)", MinAuthSecretLength)
		}
		if c.Auth.TokenTTLMinutes < 1 {
			return fmt.Errorf("api.auth.token_ttl_minutes must be positive")
		}
		return nil
	}
	if !IsLoopbackHost(c.Host) {
		return fmt.Errorf("api.auth.enabled is required when api.host %q is not a loopback address", c.Host)
	}
	return nil
}

// IsLoopbackHost reports whether host only accepts local connections.
// An empty host binds every interface.
func IsLoopbackHost(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(strings.Trim(host, "[]"))
	return ip != nil && ip.IsLoopback()
}

// TokenTTL returns the lifetime of issued API tokens.
func (c AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// ReadTimeout returns the API read timeout as a Duration.
func (c APIConfig) ReadTimeout() time.Duration {
	return time.Duration(c.Timeouts.Read) * time.Second
}

// WriteTimeout returns the API write timeout as a Duration.
func (c APIConfig) WriteTimeout() time.Duration {
	return time.Duration(c.Timeouts.Write) * time.Second
}

// IdleTimeout returns the API idle timeout as a Duration.
func (c APIConfig) IdleTimeout() time.Duration {
	return time.Duration(c.Timeouts.Idle) * time.Second
}

// MaxUploadBytes returns the request body limit for uploads.
func (c APIConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// GetSessionTTL returns how long an uploaded document is kept.
func (c *Config) GetSessionTTL() time.Duration {
	return time.Duration(c.Sessions.TTLMinutes) * time.Minute
}

// GetCleanupInterval returns how often expired sessions are removed.
func (c *Config) GetCleanupInterval() time.Duration {
	return time.Duration(c.Sessions.CleanupIntervalSeconds) * time.Second
}
