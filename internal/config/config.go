// Package config manages the application configuration.
//
// It starts from built-in defaults, applies an optional local
// override file (dotenv format), then the process environment,
// and validates that the required values are present so the
// application fails fast on bad or missing configuration.
//
// Responsibilities:
//   - Provide the built-in defaults (localhost/crm/password/crm).
//   - Load the override file when it exists.
//   - Map CRM_* env vars into a structured Go config (structs).
//   - Validate required values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	koanf reads the environment and unmarshals it into Config.

	- Env vars are read using the prefix CRM_
	- The prefix is dropped and the key lowercased
	- The first "_" separates the section from the field:
	  CRM_DATABASE_HOST        -> database.host        -> Config.Database.Host
	  CRM_SERVER_READ_TIMEOUT  -> server.read_timeout  -> Config.Server.ReadTimeout
*/

const (
	// EnvPrefix is the prefix every configuration env var carries.
	EnvPrefix = "CRM_"

	// DefaultOverrideFile is the local override read when no path is given.
	DefaultOverrideFile = ".env.local"

	// OverrideFileEnv names the env var that points at another override file.
	OverrideFileEnv = "CRM_CONFIG_FILE"
)

// Config is the root configuration object for the application.
//
// It is built once at process start and passed by pointer to the
// components that need it.
type Config struct {
	Primary  Primary            `koanf:"primary" validate:"required"`
	Server   ServerConfig       `koanf:"server" validate:"required"`
	Database DatabaseConfig     `koanf:"database" validate:"required"`
	Users    UsersConfig        `koanf:"users"`
	Logging  LoggingConfig      `koanf:"logging" validate:"required"`
	NewRelic NewRelicConfig     `koanf:"newrelic"`
	Health   HealthChecksConfig `koanf:"health"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
type ServerConfig struct {
	Port               string        `koanf:"port" validate:"required"`
	Endpoint           string        `koanf:"endpoint" validate:"required,startswith=/"`
	ReadTimeout        time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout       time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout        time.Duration `koanf:"idle_timeout" validate:"required"`
	RequestTimeout     time.Duration `koanf:"request_timeout" validate:"required"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout" validate:"required"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins" validate:"required,min=1"`
}

// DatabaseConfig contains MySQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
	PingTimeout     time.Duration `koanf:"ping_timeout" validate:"required"`
}

// UsersConfig tunes the users resource.
//
// ReportMissing switches update/delete of an unknown id from a silent
// no-op to a 404 response.
type UsersConfig struct {
	ReportMissing bool `koanf:"report_missing"`
}

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level" validate:"required,oneof=debug info warn error"`

	// Format is "json" or "console".
	Format string `koanf:"format" validate:"required,oneof=json console"`

	// SlowQueryThreshold marks statements that take longer as slow in the SQL log.
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// IsLocal reports whether the service runs in the local environment.
func (c *Config) IsLocal() bool {
	return c.Primary.Env == "local"
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "local"},
		Server: ServerConfig{
			Port:               "8080",
			Endpoint:           "/api/users",
			ReadTimeout:        10 * time.Second,
			WriteTimeout:       10 * time.Second,
			IdleTimeout:        60 * time.Second,
			RequestTimeout:     10 * time.Second,
			ShutdownTimeout:    15 * time.Second,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            3306,
			User:            "crm",
			Password:        "password",
			Name:            "crm",
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: 5 * time.Minute,
			ConnMaxIdleTime: time.Minute,
			PingTimeout:     10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:              "info",
			Format:             "json",
			SlowQueryThreshold: 200 * time.Millisecond,
		},
		NewRelic: DefaultNewRelicConfig(),
		Health:   DefaultHealthChecksConfig(),
	}
}

// Load builds the configuration.
//
// overrideFile is a dotenv file whose values take precedence over the
// defaults; an empty path means CRM_CONFIG_FILE or DefaultOverrideFile.
// A missing override file is not an error. Values already present in
// the process environment win over the file.
func Load(overrideFile string) (*Config, error) {
	if err := loadOverrideFile(overrideFile); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Unmarshal on top of the defaults: keys missing from the
	// environment keep their built-in value.
	mainConfig := Default()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.ValidateObservability(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// envKey maps CRM_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if key == "config_file" {
		return ""
	}
	return strings.Replace(key, "_", ".", 1)
}

// loadOverrideFile loads the dotenv override into the process env.
// godotenv.Load never overwrites variables that are already set.
func loadOverrideFile(path string) error {
	if path == "" {
		path = DefaultOverrideFile
		if v, ok := os.LookupEnv(OverrideFileEnv); ok && v != "" {
			path = v
		}
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("could not read override file %s: %w", path, err)
	}

	return nil
}
