package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Load reads configuration from environment variables, applies defaults
// for unset values and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// fieldParser converts an environment value into a field's type.
type fieldParser func(value string) (any, error)

// parsers covers every field type used by Config.
var parsers = map[reflect.Type]fieldParser{
	reflect.TypeFor[string](): func(v string) (any, error) { return v, nil },
	reflect.TypeFor[int]():    func(v string) (any, error) { return cast.ToIntE(v) },
	reflect.TypeFor[int64]():  func(v string) (any, error) { return cast.ToInt64E(v) },
	reflect.TypeFor[time.Duration](): func(v string) (any, error) {
		return time.ParseDuration(v)
	},
	reflect.TypeFor[[]string](): func(v string) (any, error) {
		return splitList(v), nil
	},
}

// loadStruct populates tagged fields from the environment, recursing into
// nested sections.
//
//	env      primary variable name
//	envAlt   fallback variable name
//	default  value used when neither is set
//	required "true" makes a missing value an error
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := range t.NumField() {
		field := t.Field(i)
		fieldVal := v.Field(i)
		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}

		value := lookupEnv(envName, field.Tag.Get("envAlt"))
		if value == "" {
			if field.Tag.Get("required") == "true" {
				return fmt.Errorf("required environment variable %s is not set", envName)
			}
			value = field.Tag.Get("default")
		}
		if value == "" {
			continue
		}

		parse, ok := parsers[field.Type]
		if !ok {
			return fmt.Errorf("%s: unsupported field type %s", envName, field.Type)
		}
		parsed, err := parse(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
		fieldVal.Set(reflect.ValueOf(parsed))
	}

	return nil
}

func lookupEnv(name, alt string) string {
	if value := os.Getenv(name); value != "" || alt == "" {
		return value
	}
	return os.Getenv(alt)
}

// splitList splits a comma-separated value, dropping empty items.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.WriteTimeout < 0 {
		errs = append(errs, "SERVER_WRITE_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "SERVER_REQUEST_TIMEOUT must be positive")
	}

	// Columns validation
	if c.Columns.MaxHeaders <= 0 {
		errs = append(errs, "COLUMNS_MAX_HEADERS must be positive")
	}
	if c.Columns.MaxBodyBytes <= 0 {
		errs = append(errs, "COLUMNS_MAX_BODY_BYTES must be positive")
	}
	validFormats := map[string]bool{"table": true, "space": true, "tab": true}
	if !validFormats[strings.ToLower(c.Columns.DefaultFormat)] {
		errs = append(errs, fmt.Sprintf("COLUMNS_DEFAULT_FORMAT (%q) must be one of: table, space, tab", c.Columns.DefaultFormat))
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validLogFormats := map[string]bool{"text": true, "json": true}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a compact representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	fmt.Fprintf(&b, "Server: {Host: %q, Port: %d}, ", c.Server.Host, c.Server.Port)
	fmt.Fprintf(&b, "Columns: {ConfigPath: %q, MaxHeaders: %d, DefaultFormat: %q}, ",
		c.Columns.ConfigPath, c.Columns.MaxHeaders, c.Columns.DefaultFormat)
	fmt.Fprintf(&b, "Logging: {Level: %q, Format: %q}", c.Logging.Level, c.Logging.Format)
	b.WriteString("}")
	return b.String()
}
