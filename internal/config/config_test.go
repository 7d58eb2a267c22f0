package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Addr, DefaultAddr)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("Storage.Driver = %q, want memory", cfg.Storage.Driver)
	}
	if cfg.Data.Source != SourceFile || cfg.Data.Dir != DefaultDataDir {
		t.Errorf("Data = %+v", cfg.Data)
	}
	if cfg.Ads.AdSenseClient != DefaultAdSenseClient {
		t.Errorf("Ads.AdSenseClient = %q", cfg.Ads.AdSenseClient)
	}
	if cfg.Cart.MaxQuantity != 0 {
		t.Errorf("Cart.MaxQuantity = %d, want unlimited", cfg.Cart.MaxQuantity)
	}
	if !cfg.WebSocket {
		t.Error("WebSocket should default to on")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Missing file falls back to the defaults
	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load without file: %v", err)
	}
	if cfg.Path() != "" || cfg.Addr != DefaultAddr {
		t.Errorf("defaults expected, got path=%q addr=%q", cfg.Path(), cfg.Addr)
	}

	configPath := filepath.Join(tmpDir, ConfigFileName)
	configJSON := `{
  "addr": ":9090",
  "storage": {
    "driver": "bolt"
  },
  "data": {
    "dir": "site/data",
    "fetchTimeout": "2s"
  },
  "log": {
    "level": "debug",
    "format": "json"
  },
  "cart": {
    "maxQuantity": 10
  }
}
`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err = Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Addr)
	}
	if cfg.Storage.Path != "electa.db" {
		t.Errorf("Storage.Path = %q, want the bolt default", cfg.Storage.Path)
	}
	if cfg.FetchTimeout() != 2*time.Second {
		t.Errorf("FetchTimeout() = %v, want 2s", cfg.FetchTimeout())
	}
	if cfg.CacheTTL() != time.Minute {
		t.Errorf("CacheTTL() = %v, want the 1m default", cfg.CacheTTL())
	}
	if cfg.Cart.MaxQuantity != 10 {
		t.Errorf("Cart.MaxQuantity = %d, want 10", cfg.Cart.MaxQuantity)
	}
	if got := cfg.DataDir(); got != filepath.Join(tmpDir, "site/data") {
		t.Errorf("DataDir() = %q", got)
	}
	if level, err := cfg.LogLevel(); err != nil || level != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, %v", level, err)
	}
	if cfg.Contribute.Recipient != DefaultContributeRecipient {
		t.Errorf("Contribute.Recipient = %q", cfg.Contribute.Recipient)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), ConfigFileName))
	if err == nil || !strings.Contains(err.Error(), "E401") {
		t.Errorf("Expected E401 error, got: %v", err)
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	// Write invalid JSON
	if err := os.WriteFile(configPath, []byte("not valid json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "E401") {
		t.Errorf("Expected E401 error, got: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(`{"addr": ":9090", "storage": {"driver": "bolt"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ELECTA_ADDR", ":7070")
	t.Setenv("ELECTA_STORAGE_DRIVER", "redis")
	t.Setenv("ELECTA_REDIS_ADDR", "localhost:6379")
	t.Setenv("ELECTA_CART_MAX_QUANTITY", "3")
	t.Setenv("ELECTA_COOKIE_SECURE", "true")
	t.Setenv("ELECTA_TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.1")
	t.Setenv("ELECTA_WEBSOCKET", "false")

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("Addr = %q, want the env value", cfg.Addr)
	}
	if cfg.Storage.Driver != "redis" || cfg.Storage.RedisAddr != "localhost:6379" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if cfg.Cart.MaxQuantity != 3 {
		t.Errorf("Cart.MaxQuantity = %d, want 3", cfg.Cart.MaxQuantity)
	}
	if !cfg.Cookie.Secure {
		t.Error("Cookie.Secure should be set from the environment")
	}
	if diff := cmp.Diff([]string{"10.0.0.0/8", "192.168.1.1"}, cfg.Cookie.TrustedProxies); diff != "" {
		t.Errorf("TrustedProxies (-want +got):\n%s", diff)
	}
	if cfg.WebSocket {
		t.Error("WebSocket should be switched off from the environment")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_EnvWithoutFile(t *testing.T) {
	t.Setenv("ELECTA_DATA_SOURCE", "http")
	t.Setenv("ELECTA_DATA_BASE_URL", "https://data.electa.test/")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Data.Source != SourceHTTP || cfg.Data.BaseURL != "https://data.electa.test/" {
		t.Errorf("Data = %+v", cfg.Data)
	}
}

func TestLoad_BadEnvValue(t *testing.T) {
	t.Setenv("ELECTA_CART_MAX_QUANTITY", "lots")

	_, err := Load(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "E401") {
		t.Errorf("Expected E401 error, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		code   string
	}{
		{"unknown driver", func(c *Config) { c.Storage.Driver = "postgres" }, "E403"},
		{"sqlite without path", func(c *Config) { c.Storage.Driver = "sqlite" }, "E401"},
		{"redis without addr", func(c *Config) { c.Storage.Driver = "redis" }, "E401"},
		{"unknown source", func(c *Config) { c.Data.Source = "ftp" }, "E404"},
		{"http without base url", func(c *Config) { c.Data.Source = SourceHTTP }, "E401"},
		{"s3 without bucket", func(c *Config) { c.Data.Source = SourceS3 }, "E401"},
		{"bad timeout", func(c *Config) { c.Data.FetchTimeout = "soon" }, "E402"},
		{"negative ttl", func(c *Config) { c.Storage.RedisTTL = "-1h" }, "E402"},
		{"negative cache size", func(c *Config) { c.Data.CacheSize = -1 }, "E402"},
		{"negative max quantity", func(c *Config) { c.Cart.MaxQuantity = -2 }, "E402"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "E402"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "E402"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate should fail")
			}
			if !strings.Contains(err.Error(), tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestValidate_Accepts(t *testing.T) {
	cfg := New()
	cfg.Storage.Driver = "sqlite"
	cfg.Storage.Path = "file:electa.sqlite"
	cfg.Data.Source = SourceS3
	cfg.Data.S3Bucket = "electa-data"
	cfg.Log.Format = "JSON"
	cfg.Log.Level = "WARN"

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestDataDir_Absolute(t *testing.T) {
	cfg := New()
	cfg.configPath = "/srv/electa/electa.json"
	cfg.Data.Dir = "/var/lib/electa"
	if got := cfg.DataDir(); got != "/var/lib/electa" {
		t.Errorf("DataDir() = %q", got)
	}

	cfg.Data.Dir = "data"
	if got := cfg.DataDir(); got != filepath.Join("/srv/electa", "data") {
		t.Errorf("DataDir() = %q", got)
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()
	if Exists(tmpDir) {
		t.Error("Exists should be false")
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if !Exists(tmpDir) {
		t.Error("Exists should be true")
	}
}
