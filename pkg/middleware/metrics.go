package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/electa-dev/electa/pkg/consent"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "electa").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request and action duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "electa",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus metrics of the site.
//
// Metrics collected:
//   - electa_http_requests_total: requests by route, method and status
//   - electa_http_request_duration_seconds: request duration by route
//   - electa_actions_total: actions by kind and outcome
//   - electa_action_duration_seconds: action dispatch duration by kind
//   - electa_consent_decisions_total: consent decisions by decision
//   - electa_patches_sent_total: fragments returned to clients
//   - electa_websocket_connections: open action sockets
//   - electa_websocket_errors_total: socket errors by type
type Metrics struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	actionsTotal     *prometheus.CounterVec
	actionDuration   *prometheus.HistogramVec
	consentDecisions *prometheus.CounterVec
	patchesSent      prometheus.Counter
	wsConnections    prometheus.Gauge
	wsErrors         *prometheus.CounterVec
}

// NewMetrics registers the metrics with the configured registry.
//
//	reg := prometheus.NewRegistry()
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r.Use(m.Handler)
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests served",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "method", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route", "method"}),

		actionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "actions_total",
			Help:        "Total number of visitor actions handled",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "outcome"}),

		actionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "action_duration_seconds",
			Help:        "Action dispatch duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		consentDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "consent_decisions_total",
			Help:        "Total cookie consent decisions by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"decision"}),

		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_sent_total",
			Help:        "Total number of fragments returned to clients",
			ConstLabels: config.ConstLabels,
		}),

		wsConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_connections",
			Help:        "Number of open action WebSockets",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// Handler records request count and duration. Routes are labelled by
// their chi pattern to keep label cardinality bounded.
func (m *Metrics) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := routePattern(r)
		m.requestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
	})
}

// routePattern returns the matched chi pattern, or "unmatched".
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// ObserveAction implements action.Observer.
func (m *Metrics) ObserveAction(kind, outcome string, elapsed time.Duration) {
	m.actionsTotal.WithLabelValues(kind, outcome).Inc()
	m.actionDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// Consent decision labels.
const (
	DecisionAll       = "all"
	DecisionNecessary = "necessary"
	DecisionCustom    = "custom"
	DecisionRevoked   = "revoked"
)

// ConsentDecision classifies a consent event.
func ConsentDecision(ev consent.Event) string {
	p := ev.Preferences
	switch {
	case ev.Revoked:
		return DecisionRevoked
	case p.Analytics && p.Advertising:
		return DecisionAll
	case !p.Analytics && !p.Advertising:
		return DecisionNecessary
	default:
		return DecisionCustom
	}
}

// ConsentListener returns a bus listener that counts decisions.
//
//	bus.Subscribe(metrics.ConsentListener())
func (m *Metrics) ConsentListener() consent.Listener {
	return func(_ context.Context, ev consent.Event) {
		m.consentDecisions.WithLabelValues(ConsentDecision(ev)).Inc()
	}
}

// RecordPatches records the number of fragments sent.
func (m *Metrics) RecordPatches(count int) {
	m.patchesSent.Add(float64(count))
}

// RecordWebSocketOpen records an opened action socket.
func (m *Metrics) RecordWebSocketOpen() {
	m.wsConnections.Inc()
}

// RecordWebSocketClose records a closed action socket.
func (m *Metrics) RecordWebSocketClose() {
	m.wsConnections.Dec()
}

// RecordWebSocketError records a socket error by category.
func (m *Metrics) RecordWebSocketError(err error) {
	m.wsErrors.WithLabelValues(categorizeError(err)).Inc()
}

// categorizeError returns a category for the error type.
// This prevents high-cardinality labels from error messages.
func categorizeError(err error) string {
	if err == nil {
		return "unknown"
	}
	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "timeout"):
		return "timeout"
	case strings.Contains(errStr, "close"):
		return "closed"
	case strings.Contains(errStr, "json"), strings.Contains(errStr, "invalid character"):
		return "decode"
	case strings.Contains(errStr, "too large"), strings.Contains(errStr, "read limit"):
		return "too_large"
	default:
		return "internal"
	}
}
