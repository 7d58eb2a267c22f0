package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/electa-dev/electa/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "electa.json"

	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	// DefaultDataDir is the default directory of the JSON data files.
	DefaultDataDir = "data"

	// DefaultAdSenseClient is the AdSense publisher id of the site.
	DefaultAdSenseClient = "ca-pub-8906392448287945"

	// DefaultContributeRecipient receives contribution emails.
	DefaultContributeRecipient = "electa.kyv@gmail.com"
)

// Data source kinds.
const (
	SourceFile = "file"
	SourceHTTP = "http"
	SourceS3   = "s3"
)

// Config represents the complete electa.json configuration.
type Config struct {
	// Addr is the listen address of the server.
	Addr string `json:"addr,omitempty" env:"ELECTA_ADDR"`

	// WebSocket lets the client send actions over /ws instead of one
	// POST per action.
	WebSocket bool `json:"websocket" env:"ELECTA_WEBSOCKET"`

	// Storage selects the visitor storage backend.
	Storage StorageConfig `json:"storage,omitempty"`

	// Data configures where candidates, shop and articles are read from.
	Data DataConfig `json:"data,omitempty"`

	// Log configures the structured logger.
	Log LogConfig `json:"log,omitempty"`

	// Cart configures the shopping cart.
	Cart CartConfig `json:"cart,omitempty"`

	// Ads configures the scripts loaded once a visitor consents.
	Ads AdsConfig `json:"ads,omitempty"`

	// Contribute configures the contribution form.
	Contribute ContributeConfig `json:"contribute,omitempty"`

	// Cookie configures the visitor cookie.
	Cookie CookieConfig `json:"cookie,omitempty"`

	// Telemetry configures trace export.
	Telemetry TelemetryConfig `json:"telemetry,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// StorageConfig selects the visitor storage backend.
type StorageConfig struct {
	// Driver is one of memory, bolt, sqlite or redis.
	Driver string `json:"driver,omitempty" env:"ELECTA_STORAGE_DRIVER"`

	// Path is the bbolt file or the SQLite DSN.
	Path string `json:"path,omitempty" env:"ELECTA_STORAGE_PATH"`

	// RedisAddr is the host:port of the Redis server.
	RedisAddr string `json:"redisAddr,omitempty" env:"ELECTA_REDIS_ADDR"`

	// RedisPassword is the optional Redis password.
	RedisPassword string `json:"redisPassword,omitempty" env:"ELECTA_REDIS_PASSWORD"`

	// RedisDB selects the Redis database.
	RedisDB int `json:"redisDB,omitempty" env:"ELECTA_REDIS_DB"`

	// RedisTTL expires idle visitor scopes (e.g., "720h"). Empty keeps
	// them forever.
	RedisTTL string `json:"redisTTL,omitempty" env:"ELECTA_REDIS_TTL"`
}

// DataConfig configures the catalogue source.
type DataConfig struct {
	// Source is one of file, http or s3.
	Source string `json:"source,omitempty" env:"ELECTA_DATA_SOURCE"`

	// Dir is the directory read by the file source.
	Dir string `json:"dir,omitempty" env:"ELECTA_DATA_DIR"`

	// BaseURL is the URL prefix read by the http source.
	BaseURL string `json:"baseURL,omitempty" env:"ELECTA_DATA_BASE_URL"`

	// S3Bucket, S3Prefix, S3Region and S3Endpoint configure the s3 source.
	S3Bucket   string `json:"s3Bucket,omitempty" env:"ELECTA_S3_BUCKET"`
	S3Prefix   string `json:"s3Prefix,omitempty" env:"ELECTA_S3_PREFIX"`
	S3Region   string `json:"s3Region,omitempty" env:"ELECTA_S3_REGION"`
	S3Endpoint string `json:"s3Endpoint,omitempty" env:"ELECTA_S3_ENDPOINT"`

	// CacheSize is the number of files kept in memory (0 disables the cache).
	CacheSize int `json:"cacheSize,omitempty" env:"ELECTA_DATA_CACHE_SIZE"`

	// CacheTTL is how long a cached file is served (e.g., "1m").
	CacheTTL string `json:"cacheTTL,omitempty" env:"ELECTA_DATA_CACHE_TTL"`

	// FetchTimeout bounds a single data file fetch (e.g., "5s").
	FetchTimeout string `json:"fetchTimeout,omitempty" env:"ELECTA_FETCH_TIMEOUT"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level,omitempty" env:"ELECTA_LOG_LEVEL"`

	// Format is text or json.
	Format string `json:"format,omitempty" env:"ELECTA_LOG_FORMAT"`
}

// CartConfig configures the shopping cart.
type CartConfig struct {
	// MaxQuantity caps the quantity of one line. 0 means unlimited.
	MaxQuantity int `json:"maxQuantity,omitempty" env:"ELECTA_CART_MAX_QUANTITY"`
}

// AdsConfig configures consent-gated scripts.
type AdsConfig struct {
	// AdSenseClient is the AdSense publisher id. Empty disables ads.
	AdSenseClient string `json:"adsenseClient,omitempty" env:"ELECTA_ADSENSE_CLIENT"`

	// AnalyticsID is the Google Analytics measurement id. Empty disables
	// analytics.
	AnalyticsID string `json:"analyticsID,omitempty" env:"ELECTA_ANALYTICS_ID"`
}

// ContributeConfig configures the contribution form.
type ContributeConfig struct {
	// Recipient is the address contributions are mailed to.
	Recipient string `json:"recipient,omitempty" env:"ELECTA_CONTRIBUTE_RECIPIENT"`
}

// CookieConfig configures the visitor cookie.
type CookieConfig struct {
	// Secure marks the visitor cookie Secure. Plain-HTTP requests then
	// get no cookie.
	Secure bool `json:"secure,omitempty" env:"ELECTA_COOKIE_SECURE"`

	// TrustedProxies lists proxy IPs or CIDRs whose forwarded protocol
	// headers are believed.
	TrustedProxies []string `json:"trustedProxies,omitempty" env:"ELECTA_TRUSTED_PROXIES" envSeparator:","`
}

// TelemetryConfig configures trace export.
type TelemetryConfig struct {
	// OTLPEndpoint is the OTLP/HTTP traces URL. Empty disables tracing.
	OTLPEndpoint string `json:"otlpEndpoint,omitempty" env:"ELECTA_OTEL_ENDPOINT"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Addr:      DefaultAddr,
		WebSocket: true,
		Storage: StorageConfig{
			Driver: "memory",
		},
		Data: DataConfig{
			Source:       SourceFile,
			Dir:          DefaultDataDir,
			CacheSize:    16,
			CacheTTL:     "1m",
			FetchTimeout: "5s",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Ads: AdsConfig{
			AdSenseClient: DefaultAdSenseClient,
		},
		Contribute: ContributeConfig{
			Recipient: DefaultContributeRecipient,
		},
	}
}

// Load reads electa.json from dir. A missing file yields the defaults.
// Environment overrides are applied in both cases.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := New()
		if err := cfg.applyEnv(); err != nil {
			return nil, err
		}
		cfg.applyDefaults()
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E401").
				WithDetail("No " + ConfigFileName + " found at " + path).
				WithSuggestion("Run 'electa check' without --config to use the defaults")
		}
		return nil, errors.New("E401").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E401").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

// applyEnv overrides fields from ELECTA_* environment variables.
func (c *Config) applyEnv() error {
	if err := env.Parse(c); err != nil {
		return errors.New("E401").WithDetail("environment: " + err.Error())
	}
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}

	// Storage
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Storage.Driver == "bolt" && c.Storage.Path == "" {
		c.Storage.Path = "electa.db"
	}

	// Data
	if c.Data.Source == "" {
		c.Data.Source = SourceFile
	}
	if c.Data.Dir == "" {
		c.Data.Dir = DefaultDataDir
	}
	if c.Data.FetchTimeout == "" {
		c.Data.FetchTimeout = "5s"
	}
	if c.Data.CacheTTL == "" {
		c.Data.CacheTTL = "1m"
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	// Contribute
	if c.Contribute.Recipient == "" {
		c.Contribute.Recipient = DefaultContributeRecipient
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory", "bolt", "sqlite", "redis":
	default:
		return errors.New("E403").WithDetail(fmt.Sprintf("storage.driver is %q", c.Storage.Driver))
	}
	if c.Storage.Driver == "sqlite" && c.Storage.Path == "" {
		return errors.New("E401").WithDetail("storage.path is required for the sqlite driver")
	}
	if c.Storage.Driver == "redis" && c.Storage.RedisAddr == "" {
		return errors.New("E401").WithDetail("storage.redisAddr is required for the redis driver")
	}

	switch c.Data.Source {
	case SourceFile:
	case SourceHTTP:
		if c.Data.BaseURL == "" {
			return errors.New("E401").WithDetail("data.baseURL is required for the http source")
		}
	case SourceS3:
		if c.Data.S3Bucket == "" {
			return errors.New("E401").WithDetail("data.s3Bucket is required for the s3 source")
		}
	default:
		return errors.New("E404").WithDetail(fmt.Sprintf("data.source is %q", c.Data.Source))
	}

	for name, value := range map[string]string{
		"storage.redisTTL":  c.Storage.RedisTTL,
		"data.cacheTTL":     c.Data.CacheTTL,
		"data.fetchTimeout": c.Data.FetchTimeout,
	} {
		if _, err := parseDuration(value); err != nil {
			return errors.New("E402").WithDetail(fmt.Sprintf("%s: %v", name, err))
		}
	}

	if c.Data.CacheSize < 0 {
		return errors.New("E402").WithDetail("data.cacheSize must not be negative")
	}
	if c.Cart.MaxQuantity < 0 {
		return errors.New("E402").WithDetail("cart.maxQuantity must not be negative")
	}
	if _, err := c.LogLevel(); err != nil {
		return errors.New("E402").WithDetail(err.Error())
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		return errors.New("E402").WithDetail(fmt.Sprintf("log.format is %q, want text or json", c.Log.Format))
	}
	return nil
}

// parseDuration parses a duration string; empty means zero.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration %q is negative", s)
	}
	return d, nil
}

// RedisTTL returns the parsed storage.redisTTL.
func (c *Config) RedisTTL() time.Duration {
	d, _ := parseDuration(c.Storage.RedisTTL)
	return d
}

// CacheTTL returns the parsed data.cacheTTL.
func (c *Config) CacheTTL() time.Duration {
	d, _ := parseDuration(c.Data.CacheTTL)
	return d
}

// FetchTimeout returns the parsed data.fetchTimeout.
func (c *Config) FetchTimeout() time.Duration {
	d, _ := parseDuration(c.Data.FetchTimeout)
	return d
}

// LogLevel returns the slog level named by log.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// DataDir returns the data directory, resolved against the config file's
// directory when relative.
func (c *Config) DataDir() string {
	if filepath.IsAbs(c.Data.Dir) || c.Dir() == "" {
		return c.Data.Dir
	}
	return filepath.Join(c.Dir(), c.Data.Dir)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
