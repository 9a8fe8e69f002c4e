package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Columns.MaxHeaders != 1024 {
		t.Errorf("Columns.MaxHeaders = %d, want %d", cfg.Columns.MaxHeaders, 1024)
	}
	if cfg.Columns.MaxBodyBytes != 1048576 {
		t.Errorf("Columns.MaxBodyBytes = %d, want %d", cfg.Columns.MaxBodyBytes, 1048576)
	}
	if cfg.Columns.DefaultFormat != "table" {
		t.Errorf("Columns.DefaultFormat = %q, want %q", cfg.Columns.DefaultFormat, "table")
	}
	if cfg.Columns.ConfigPath != "" {
		t.Errorf("Columns.ConfigPath = %q, want empty", cfg.Columns.ConfigPath)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("COLUMNS_MAX_HEADERS", "64")
	t.Setenv("COLUMNS_DEFAULT_FORMAT", "tab")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Columns.MaxHeaders != 64 {
		t.Errorf("Columns.MaxHeaders = %d, want %d", cfg.Columns.MaxHeaders, 64)
	}
	if cfg.Columns.DefaultFormat != "tab" {
		t.Errorf("Columns.DefaultFormat = %q, want %q", cfg.Columns.DefaultFormat, "tab")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	t.Setenv("COLUMN_CONFIG", "/etc/columns.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Columns.ConfigPath != "/etc/columns.yaml" {
		t.Errorf("Columns.ConfigPath = %q, want %q", cfg.Columns.ConfigPath, "/etc/columns.yaml")
	}
}

func TestLoad_Duration(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "45s")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "1m30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Server.RequestTimeout != 90*time.Second {
		t.Errorf("Server.RequestTimeout = %v, want %v", cfg.Server.RequestTimeout, 90*time.Second)
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
	}{
		{"bad integer", "SERVER_PORT", "eighty"},
		{"bad duration", "SERVER_IDLE_TIMEOUT", "soon"},
		{"bad int64", "COLUMNS_MAX_BODY_BYTES", "1MB"},
		{"out of range port", "SERVER_PORT", "70000"},
		{"unknown format", "COLUMNS_DEFAULT_FORMAT", "csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() with %s=%q expected error", tt.env, tt.value)
			}
			if !strings.Contains(err.Error(), tt.env) {
				t.Errorf("error should mention %s: %v", tt.env, err)
			}
		})
	}
}

func TestLoad_TrustedProxies(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.0/12 , 192.168.0.0/16")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	if !reflect.DeepEqual(cfg.Server.TrustedProxies, expected) {
		t.Errorf("TrustedProxies = %q, want %q", cfg.Server.TrustedProxies, expected)
	}
}

func TestLoadStruct_CommaSeparatedSlice(t *testing.T) {
	t.Setenv("TEST_HEADERS", "First Name, Zip , ,Age")

	var target struct {
		Headers  []string `env:"TEST_HEADERS"`
		Optional string   `env:"TEST_UNSET_OPTIONAL"`
	}
	if err := loadStruct(reflect.ValueOf(&target).Elem()); err != nil {
		t.Fatalf("loadStruct() error = %v", err)
	}

	expected := []string{"First Name", "Zip", "Age"}
	if !reflect.DeepEqual(target.Headers, expected) {
		t.Errorf("Headers = %q, want %q", target.Headers, expected)
	}
}

func TestLoadStruct_MissingRequired(t *testing.T) {
	var target struct {
		Path string `env:"TEST_REQUIRED_PATH" required:"true"`
	}
	err := loadStruct(reflect.ValueOf(&target).Elem())
	if err == nil {
		t.Fatal("loadStruct() expected error for missing required variable")
	}
	if !strings.Contains(err.Error(), "TEST_REQUIRED_PATH") {
		t.Errorf("error should mention TEST_REQUIRED_PATH: %v", err)
	}
}

func TestLoadStruct_UnsupportedType(t *testing.T) {
	t.Setenv("TEST_VERBOSE", "true")

	var target struct {
		Verbose bool `env:"TEST_VERBOSE"`
	}
	err := loadStruct(reflect.ValueOf(&target).Elem())
	if err == nil || !strings.Contains(err.Error(), "unsupported field type") {
		t.Errorf("loadStruct() error = %v, want unsupported field type", err)
	}
}

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080, ShutdownTimeout: time.Second, RequestTimeout: time.Second},
		Columns: ColumnsConfig{MaxHeaders: 10, MaxBodyBytes: 1024, DefaultFormat: "table"},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"invalid port", func(c *Config) { c.Server.Port = 99999 }, "SERVER_PORT"},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "SERVER_SHUTDOWN_TIMEOUT"},
		{"zero max headers", func(c *Config) { c.Columns.MaxHeaders = 0 }, "COLUMNS_MAX_HEADERS"},
		{"zero body limit", func(c *Config) { c.Columns.MaxBodyBytes = 0 }, "COLUMNS_MAX_BODY_BYTES"},
		{"format is case insensitive", func(c *Config) { c.Columns.DefaultFormat = "SPACE" }, ""},
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"invalid log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error mentioning %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %s: %v", tt.wantErr, err)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
		{"::1", 443, "[::1]:443"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestConfigString(t *testing.T) {
	cfg := validConfig()
	cfg.Columns.ConfigPath = "columns.yaml"

	str := cfg.String()
	for _, want := range []string{"Port: 8080", `ConfigPath: "columns.yaml"`, `Level: "info"`} {
		if !strings.Contains(str, want) {
			t.Errorf("String() = %s, missing %s", str, want)
		}
	}
}
