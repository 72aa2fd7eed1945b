package config

import (
	"os"
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Verify defaults
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if !cfg.Countries.Enabled {
		t.Error("Countries.Enabled = false, want true")
	}
	if cfg.Countries.URL != "https://restcountries.com/v3.1/all?fields=name" {
		t.Errorf("Countries.URL = %q", cfg.Countries.URL)
	}
	if cfg.Upload.MaxImageSize != 5242880 {
		t.Errorf("Upload.MaxImageSize = %d, want %d", cfg.Upload.MaxImageSize, 5242880)
	}
	if cfg.Upload.MaxConcurrent != 5 {
		t.Errorf("Upload.MaxConcurrent = %d, want 5", cfg.Upload.MaxConcurrent)
	}
	if cfg.Upload.MaxWait != 10*time.Second {
		t.Errorf("Upload.MaxWait = %v, want 10s", cfg.Upload.MaxWait)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("Session.TTL = %v, want %v", cfg.Session.TTL, 30*time.Minute)
	}
	if cfg.Session.CookieName != "profiles_session" {
		t.Errorf("Session.CookieName = %q, want %q", cfg.Session.CookieName, "profiles_session")
	}
	if cfg.Rate.RequestsPerMinute != 300 {
		t.Errorf("Rate.RequestsPerMinute = %d, want %d", cfg.Rate.RequestsPerMinute, 300)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SESSION_COOKIE_NAME", "sid")
	t.Setenv("COUNTRIES_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Session.CookieName != "sid" {
		t.Errorf("Session.CookieName = %q, want %q", cfg.Session.CookieName, "sid")
	}
	if cfg.Countries.Enabled {
		t.Error("Countries.Enabled = true, want false")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	// COUNTRY_API_URL works as fallback
	t.Setenv("COUNTRY_API_URL", "http://localhost:9999/countries")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Countries.URL != "http://localhost:9999/countries" {
		t.Errorf("Countries.URL = %q, want %q", cfg.Countries.URL, "http://localhost:9999/countries")
	}
}

func TestLoad_PrimaryWinsOverAlt(t *testing.T) {
	t.Setenv("COUNTRIES_URL", "http://primary/list")
	t.Setenv("COUNTRY_API_URL", "http://alt/list")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Countries.URL != "http://primary/list" {
		t.Errorf("Countries.URL = %q, want %q", cfg.Countries.URL, "http://primary/list")
	}
}

func TestLoadStruct_MissingRequired(t *testing.T) {
	os.Unsetenv("PROFILES_TEST_REQUIRED")

	var target struct {
		Value string `env:"PROFILES_TEST_REQUIRED" required:"true"`
	}
	err := loadStruct(reflect.ValueOf(&target).Elem())
	if err == nil {
		t.Fatal("loadStruct() expected error for missing required field")
	}
	if !contains(err.Error(), "PROFILES_TEST_REQUIRED") {
		t.Errorf("error %q should name the variable", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
	}{
		{"bad integer", "SERVER_PORT", "eighty"},
		{"bad duration", "SESSION_TTL", "forever"},
		{"bad boolean", "RATE_LIMIT_ENABLED", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.val)

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() expected error for %s=%q", tt.env, tt.val)
			}
			if !contains(err.Error(), tt.env) {
				t.Errorf("error %q should name %s", err, tt.env)
			}
		})
	}
}

func TestLoad_Duration(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "30s")
	t.Setenv("SESSION_SWEEP_INTERVAL", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 30*time.Second)
	}
	if cfg.Session.SweepInterval != 5*time.Minute {
		t.Errorf("Session.SweepInterval = %v, want %v", cfg.Session.SweepInterval, 5*time.Minute)
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.0/12, ,192.168.0.0/16")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	if len(cfg.Security.TrustedProxies) != len(expected) {
		t.Fatalf("TrustedProxies length = %d, want %d", len(cfg.Security.TrustedProxies), len(expected))
	}
	for i, v := range expected {
		if cfg.Security.TrustedProxies[i] != v {
			t.Errorf("TrustedProxies[%d] = %q, want %q", i, cfg.Security.TrustedProxies[i], v)
		}
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ShutdownTimeout: 15 * time.Second,
			RequestTimeout:  30 * time.Second,
		},
		Countries: CountriesConfig{
			Enabled: true,
			URL:     "https://restcountries.com/v3.1/all?fields=name",
			Timeout: 10 * time.Second,
		},
		Upload: UploadConfig{MaxImageSize: 1 << 20, MaxConcurrent: 5, MaxWait: 10 * time.Second},
		Session: SessionConfig{
			TTL:           30 * time.Minute,
			SweepInterval: time.Minute,
			CookieName:    "profiles_session",
		},
		Rate:    RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 10},
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
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "SERVER_PORT"},
		{"relative country url", func(c *Config) { c.Countries.URL = "/countries" }, "COUNTRIES_URL"},
		{"country url ignored when disabled", func(c *Config) {
			c.Countries.Enabled = false
			c.Countries.URL = ""
		}, ""},
		{"zero image size", func(c *Config) { c.Upload.MaxImageSize = 0 }, "UPLOAD_MAX_IMAGE_SIZE"},
		{"zero concurrent uploads", func(c *Config) { c.Upload.MaxConcurrent = 0 }, "UPLOAD_MAX_CONCURRENT"},
		{"zero upload wait", func(c *Config) { c.Upload.MaxWait = 0 }, "UPLOAD_MAX_WAIT"},
		{"zero session ttl", func(c *Config) { c.Session.TTL = 0 }, "SESSION_TTL"},
		{"empty cookie name", func(c *Config) { c.Session.CookieName = "" }, "SESSION_COOKIE_NAME"},
		{"zero rate when enabled", func(c *Config) { c.Rate.RequestsPerMinute = 0 }, "RATE_LIMIT_REQUESTS_PER_MINUTE"},
		{"zero rate when disabled", func(c *Config) {
			c.Rate.Enabled = false
			c.Rate.RequestsPerMinute = 0
		}, ""},
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
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error mentioning %s", tt.wantErr)
			}
			if !contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	if !contains(err.Error(), "SERVER_PORT") || !contains(err.Error(), "LOG_LEVEL") {
		t.Errorf("Validate() error = %v, want both failures listed", err)
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"localhost", 3000, "localhost:3000"},
		{"::1", 8080, "[::1]:8080"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() = %q, want %q", got, tt.want)
		}
	}
}

func TestConfigString(t *testing.T) {
	s := validConfig().String()

	for _, want := range []string{"Port: 8080", "restcountries.com", "profiles_session"} {
		if !contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 || findSubstring(s, substr))
}

func findSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
