// Package config provides configuration management for Cookbook.
//
// This package handles loading configuration from multiple sources:
//   - YAML configuration files
//   - Environment variables (with CB_ prefix)
//   - .env files
//   - Default values
//
// # Configuration Sources Priority
//
// Configuration is loaded in the following order (later sources override earlier ones):
//  1. Default values (hardcoded)
//  2. Configuration files (./configs/config.yaml, ~/.cookbook/config.yaml, /etc/cookbook/config.yaml)
//  3. .env files
//  4. Environment variables (CB_ prefix)
//
// # Usage Example
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Server: %s:%d\n", cfg.Server.Host, cfg.Server.Port)
//
// # Environment Variables
//
// Environment variables override all other configuration sources.
// Use CB_ prefix and underscores for nested keys:
//   - CB_SERVER_PORT=8000
//   - CB_MONGO_URI=mongodb://localhost:27017
//   - CB_SQL_DRIVER=postgres
//   - CB_TASKS_BACKEND=sql
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration structure for Cookbook.
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig `mapstructure:"server"`

	// Mongo contains document store connection settings
	Mongo MongoConfig `mapstructure:"mongo"`

	// SQL contains the relational store used by the blog
	SQL SQLConfig `mapstructure:"sql"`

	// Tasks selects where tasks are stored
	Tasks TasksConfig `mapstructure:"tasks"`

	// Redis contains the optional event mirror settings
	Redis RedisConfig `mapstructure:"redis"`

	// Uploads contains file upload settings
	Uploads UploadsConfig `mapstructure:"uploads"`

	// Plot contains chart rendering settings
	Plot PlotConfig `mapstructure:"plot"`

	// Logging contains logging settings
	Logging LoggingConfig `mapstructure:"logging"`

	// Security contains security and rate limiting settings
	Security SecurityConfig `mapstructure:"security"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Host is the server bind address (default: 0.0.0.0)
	Host string `mapstructure:"host"`

	// Port is the server listen port (default: 8000)
	Port int `mapstructure:"port"`

	// ReadTimeout is the maximum duration for reading requests
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// WriteTimeout is the maximum duration for writing responses
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// ShutdownTimeout is the maximum duration for graceful shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// Debug exposes internal error details in API responses
	Debug bool `mapstructure:"debug"`

	// TLSEnabled enables HTTPS
	TLSEnabled bool `mapstructure:"tls_enabled"`

	// TLSCert is the path to the TLS certificate file
	TLSCert string `mapstructure:"tls_cert"`

	// TLSKey is the path to the TLS private key file
	TLSKey string `mapstructure:"tls_key"`
}

// MongoConfig contains MongoDB connection settings.
type MongoConfig struct {
	// URI is the MongoDB connection string
	URI string `mapstructure:"uri"`

	// Database is the database name to use
	Database string `mapstructure:"database"`

	// Timeout bounds connect and ping operations
	Timeout time.Duration `mapstructure:"timeout"`

	// MaxPoolSize is the maximum number of pooled connections
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
}

// SQLConfig contains relational database settings.
type SQLConfig struct {
	// Driver is either "postgres" or "sqlite"
	Driver string `mapstructure:"driver"`

	// DSN is the driver-specific data source name
	DSN string `mapstructure:"dsn"`

	// MaxOpenConns limits open connections (0 means driver default)
	MaxOpenConns int `mapstructure:"max_open_conns"`
}

// Task store backends.
const (
	TasksBackendMongo = "mongo"
	TasksBackendSQL   = "sql"
)

// TasksConfig selects the task store. The sql backend shares the blog database.
type TasksConfig struct {
	Backend string `mapstructure:"backend"`
}

// RedisConfig contains settings for mirroring events to Redis pub/sub.
// The mirror is disabled when Addr is empty.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// UploadsConfig contains file upload settings.
type UploadsConfig struct {
	// Dir is where uploaded files are written
	Dir string `mapstructure:"dir"`

	// BaseURL prefixes public upload URLs (e.g. http://localhost:8000)
	BaseURL string `mapstructure:"base_url"`

	// MaxSize is the maximum accepted upload size in bytes
	MaxSize int64 `mapstructure:"max_size"`
}

// PlotConfig contains chart rendering settings.
type PlotConfig struct {
	Width   float64 `mapstructure:"width"`
	Height  float64 `mapstructure:"height"`
	Samples int     `mapstructure:"samples"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error)
	Level string `mapstructure:"level"`

	// Format is the log format (text, json, logfmt)
	Format string `mapstructure:"format"`

	// Output is stdout, stderr or a file path
	Output string `mapstructure:"output"`

	// MaxSize is the size in megabytes at which a log file is rotated
	MaxSize int `mapstructure:"max_size"`

	// MaxBackups is the number of rotated files kept (0 keeps all)
	MaxBackups int `mapstructure:"max_backups"`

	// MaxAge is the number of days rotated files are kept (0 keeps all)
	MaxAge int `mapstructure:"max_age"`
}

// SecurityConfig contains security and rate limiting settings.
type SecurityConfig struct {
	// RateLimit is the maximum requests per second per client
	RateLimit int `mapstructure:"rate_limit"`

	// AllowedOrigins are the CORS allowed origins
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// AuthEnabled enables JWT authentication on protected routes
	AuthEnabled bool `mapstructure:"auth_enabled"`

	// JWTSecret is the secret key for signing JWT tokens
	JWTSecret string `mapstructure:"jwt_secret"`

	// JWTExpiration is the JWT token expiration duration (default: 30m)
	JWTExpiration time.Duration `mapstructure:"jwt_expiration"`

	// BootstrapAdminUsername is created on startup when no users exist
	BootstrapAdminUsername string `mapstructure:"bootstrap_admin_username"`

	// BootstrapAdminPassword enables the bootstrap admin when non-empty
	BootstrapAdminPassword string `mapstructure:"bootstrap_admin_password"`
}

var cfg *Config

// Load reads configuration from a file and environment variables.
// If cfgFile is empty, it searches for config.yaml in standard locations.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (CB_ prefix)
//  2. .env file
//  3. Configuration file
//  4. Default values
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.cookbook")
		v.AddConfigPath("/etc/cookbook")
	}

	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" {
			// An explicit but missing file falls back to defaults
			if !isFileNotFoundError(err) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		} else {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.MergeInConfig() // Ignore error if .env file doesn't exist

	v.SetEnvPrefix("CB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.debug", false)
	v.SetDefault("server.tls_enabled", false)

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "cookbook")
	v.SetDefault("mongo.timeout", "10s")
	v.SetDefault("mongo.max_pool_size", 50)

	v.SetDefault("sql.driver", "sqlite")
	v.SetDefault("sql.dsn", "file:cookbook.db?_pragma=busy_timeout(5000)")
	v.SetDefault("sql.max_open_conns", 0)

	v.SetDefault("tasks.backend", TasksBackendMongo)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.channel", "cookbook:events")

	v.SetDefault("uploads.dir", "uploads")
	v.SetDefault("uploads.base_url", "http://localhost:8000")
	v.SetDefault("uploads.max_size", 10<<20)

	v.SetDefault("plot.width", 6.4)
	v.SetDefault("plot.height", 4.8)
	v.SetDefault("plot.samples", 100)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)

	v.SetDefault("security.rate_limit", 100)
	v.SetDefault("security.allowed_origins", []string{"*"})
	v.SetDefault("security.auth_enabled", true)
	v.SetDefault("security.jwt_secret", "change-me-in-production")
	v.SetDefault("security.jwt_expiration", "30m")
	v.SetDefault("security.bootstrap_admin_username", "admin")
	v.SetDefault("security.bootstrap_admin_password", "")
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	if cfg.Mongo.URI == "" {
		return fmt.Errorf("mongo uri is required")
	}

	if cfg.Mongo.Database == "" {
		return fmt.Errorf("mongo database is required")
	}

	switch cfg.SQL.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported sql driver: %q", cfg.SQL.Driver)
	}

	switch cfg.Tasks.Backend {
	case TasksBackendMongo, TasksBackendSQL:
	default:
		return fmt.Errorf("unsupported tasks backend: %q", cfg.Tasks.Backend)
	}

	if cfg.Uploads.Dir == "" {
		return fmt.Errorf("uploads dir is required")
	}

	if cfg.Security.AuthEnabled && cfg.Security.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required when auth is enabled")
	}

	return nil
}

// Get returns the most recently loaded configuration.
func Get() *Config {
	return cfg
}

// isFileNotFoundError checks if an error is a file not found error.
func isFileNotFoundError(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return errors.Is(pathErr, os.ErrNotExist)
	}
	return false
}
