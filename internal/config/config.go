// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file,
// if one exists), loads them into structured Go types, and validates
// that required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide defaults for optional values (port, timeouts, observability).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: triggers godotenv's autoload feature.
	// If a `.env` file exists, it gets loaded into the process env
	// before any variable is read below.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Keys are resolved in three layers, later layers win:

	1. defaults (confmap provider)
	2. the bare variables MONGO_URI and PORT
	3. variables prefixed with COURSES_

	For prefixed variables the prefix is removed, the rest is lowercased and
	a double underscore becomes the "." nesting delimiter:

	  COURSES_SERVER__PORT            -> server.port
	  COURSES_DATABASE__URI           -> database.uri
	  COURSES_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level
*/

const (
	// EnvPrefix is the prefix of every application-specific variable.
	EnvPrefix = "COURSES_"

	// ServiceName tags logs and APM data.
	ServiceName = "courses"
)

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required,numeric"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains the document store connection parameters.
type DatabaseConfig struct {
	// URI is a MongoDB connection string (mongodb:// or mongodb+srv://).
	URI string `koanf:"uri" validate:"required,startswith=mongodb"`

	// Name overrides the database named in the URI path.
	Name string `koanf:"name"`

	// ConnectTimeout bounds the startup ping, in seconds.
	ConnectTimeout int `koanf:"connect_timeout" validate:"min=1"`

	// AllowDegradedStart keeps the process running when the startup ping
	// fails. The failure is logged and requests reach the store lazily.
	AllowDegradedStart bool `koanf:"allow_degraded_start"`
}

// defaults are loaded before any environment variable.
var defaults = map[string]any{
	"primary.env":                   "development",
	"server.port":                   "3000",
	"server.read_timeout":           30,
	"server.write_timeout":          30,
	"server.idle_timeout":           60,
	"server.cors_allowed_origins":   []string{"*"},
	"database.connect_timeout":      10,
	"database.allow_degraded_start": false,
}

// legacyKeys maps the bare variables understood by earlier deployments.
var legacyKeys = map[string]string{
	"MONGO_URI": "database.uri",
	"PORT":      "server.port",
}

// Load reads configuration from the environment, unmarshals it into Config,
// validates it, applies observability defaults and returns the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("could not load config defaults: %w", err)
	}

	// An empty key tells the env provider to skip the variable.
	err := k.Load(env.Provider("", ".", func(s string) string {
		return legacyKeys[s]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load legacy env variables: %w", err)
	}

	err = k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		key = strings.ReplaceAll(key, "__", ".")

		// Lists are comma separated.
		if key == "server.cors_allowed_origins" {
			return key, splitList(value)
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Observability is optional as a whole; partially configured blocks
	// are completed field by field.
	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	} else {
		mainConfig.Observability.fillDefaults()
	}

	// Service name and environment are not user-configurable.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
