package server

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/electa-dev/electa/pkg/catalog"
	"github.com/electa-dev/electa/pkg/contribute"
	"github.com/electa-dev/electa/pkg/middleware"
	"github.com/electa-dev/electa/pkg/render"
	"github.com/electa-dev/electa/pkg/storage"
)

// Script sources injected once the visitor consents.
const (
	AdSenseScriptURL   = "https://pagead2.googlesyndication.com/pagead/js/adsbygoogle.js?client="
	AnalyticsScriptURL = "https://www.googletagmanager.com/gtag/js?id="
)

// Config holds the server configuration.
type Config struct {
	// Address is the address to listen on.
	// Default: ":8080".
	Address string

	// Storage holds every visitor's persisted sets. Required.
	Storage storage.Backend

	// Catalog loads candidates, products and articles. Required.
	Catalog *catalog.Loader

	// Mailer builds the contribution mailto links.
	// Default: a mailer for contribute.DefaultRecipient.
	Mailer *contribute.Mailer

	// Renderer renders pages and patches.
	// Default: a compact renderer.
	Renderer *render.Renderer

	// Metrics records requests, actions and consent decisions.
	// If nil, metrics are disabled.
	Metrics *middleware.Metrics

	// Gatherer is served on /metrics. Ignored without Metrics.
	// Default: prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// Tracer traces requests and actions.
	// If nil, tracing is disabled.
	Tracer *middleware.Tracer

	// StaticDir is served under /data/ for candidate images.
	// Empty disables the route.
	StaticDir string

	// AdSenseClient is the AdSense publisher id loaded after advertising
	// consent. Empty disables ads.
	AdSenseClient string

	// AnalyticsID is the analytics measurement id loaded after analytics
	// consent. Empty disables analytics.
	AnalyticsID string

	// MaxCartQuantity caps the quantity of one cart line. 0 means no cap.
	MaxCartQuantity int

	// EnableWebSocket advertises /ws to the client. The HTTP action
	// endpoint is always available.
	EnableWebSocket bool

	// CheckOrigin validates the origin of websocket upgrades.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// SecureCookies marks the visitor cookie Secure. Requests that are
	// not served over TLS (directly or through a trusted proxy) then get
	// no cookie.
	SecureCookies bool

	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-Proto and
	// Forwarded headers are believed.
	TrustedProxies []string

	// MaxActionBytes limits the body of one action message.
	// Default: 16KB.
	MaxActionBytes int64

	// SocketIdleTimeout closes websocket connections that send nothing.
	// Default: 5 minutes.
	SocketIdleTimeout time.Duration

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 15 seconds.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout bounds reading request headers.
	// Default: 5 seconds.
	ReadHeaderTimeout time.Duration

	// Logger is the server logger.
	// Default: slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults. Storage and
// Catalog still need to be set.
func DefaultConfig() *Config {
	return &Config{
		Address:           ":8080",
		CheckOrigin:       SameOriginCheck,
		MaxActionBytes:    16 * 1024,
		SocketIdleTimeout: 5 * time.Minute,
		ShutdownTimeout:   15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = d.CheckOrigin
	}
	if c.MaxActionBytes <= 0 {
		c.MaxActionBytes = d.MaxActionBytes
	}
	if c.SocketIdleTimeout <= 0 {
		c.SocketIdleTimeout = d.SocketIdleTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if c.Mailer == nil {
		c.Mailer = contribute.NewMailer(contribute.DefaultRecipient)
	}
	if c.Renderer == nil {
		c.Renderer = render.NewRenderer(render.RendererConfig{})
	}
	if c.Gatherer == nil {
		c.Gatherer = prometheus.DefaultGatherer
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// SameOriginCheck accepts websocket upgrades whose Origin host matches the
// request host. Requests without an Origin header are accepted.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return r.Host != "" && u.Host == r.Host
}
