package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/electa-dev/electa/pkg/consent"
)

func newTestMetrics(t *testing.T) (*Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewMetrics(WithRegistry(reg)), reg
}

func TestMetricsHandler_LabelsByRoutePattern(t *testing.T) {
	m, _ := newTestMetrics(t)

	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/electorates/{electorate}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/article", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	for _, path := range []string{"/electorates/clark", "/electorates/bass", "/article?id=x"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/electorates/{electorate}", "GET", "200")); got != 2 {
		t.Errorf("requests_total(electorate, 200) = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/article", "GET", "404")); got != 1 {
		t.Errorf("requests_total(article, 404) = %v, want 1", got)
	}
}

func TestMetricsHandler_ImplicitOK(t *testing.T) {
	m, _ := newTestMetrics(t)

	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/healthz", "GET", "200")); got != 1 {
		t.Errorf("requests_total = %v, want 1", got)
	}
}

func TestMetrics_Registration(t *testing.T) {
	m, reg := newTestMetrics(t)
	m.ObserveAction("SaveVote", "ok", 3*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "electa_actions_total" {
			found = true
		}
	}
	if !found {
		t.Error("electa_actions_total not registered")
	}
}

func TestMetrics_ObserveAction(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.ObserveAction("AddToCart", "ok", time.Millisecond)
	m.ObserveAction("AddToCart", "ok", time.Millisecond)
	m.ObserveAction("Unknown", "ignored", 0)

	if got := testutil.ToFloat64(m.actionsTotal.WithLabelValues("AddToCart", "ok")); got != 2 {
		t.Errorf("actions_total(AddToCart, ok) = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.actionsTotal.WithLabelValues("Unknown", "ignored")); got != 1 {
		t.Errorf("actions_total(Unknown, ignored) = %v, want 1", got)
	}
}

func TestConsentDecision(t *testing.T) {
	tests := []struct {
		name string
		ev   consent.Event
		want string
	}{
		{"accept all", consent.Event{Preferences: consent.Preferences{Necessary: true, Analytics: true, Advertising: true}}, DecisionAll},
		{"reject all", consent.Event{Preferences: consent.Preferences{Necessary: true}}, DecisionNecessary},
		{"custom", consent.Event{Preferences: consent.Preferences{Necessary: true, Advertising: true}}, DecisionCustom},
		{"revoked", consent.Event{Preferences: consent.Defaults(), Revoked: true}, DecisionRevoked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConsentDecision(tt.ev); got != tt.want {
				t.Errorf("ConsentDecision() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMetrics_ConsentListener(t *testing.T) {
	m, _ := newTestMetrics(t)
	bus := consent.NewBus()
	bus.Subscribe(m.ConsentListener())

	ctx := context.Background()
	bus.Publish(ctx, consent.Event{Preferences: consent.Preferences{Necessary: true, Analytics: true, Advertising: true}})
	bus.Publish(ctx, consent.Event{Preferences: consent.Defaults(), Revoked: true})
	bus.Publish(ctx, consent.Event{Preferences: consent.Preferences{Necessary: true, Analytics: true, Advertising: true}})

	if got := testutil.ToFloat64(m.consentDecisions.WithLabelValues(DecisionAll)); got != 2 {
		t.Errorf("consent_decisions_total(all) = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.consentDecisions.WithLabelValues(DecisionRevoked)); got != 1 {
		t.Errorf("consent_decisions_total(revoked) = %v, want 1", got)
	}
}

func TestMetrics_WebSocketAndPatches(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordWebSocketOpen()
	m.RecordWebSocketOpen()
	m.RecordWebSocketClose()
	if got := testutil.ToFloat64(m.wsConnections); got != 1 {
		t.Errorf("websocket_connections = %v, want 1", got)
	}

	m.RecordPatches(3)
	m.RecordPatches(2)
	if got := testutil.ToFloat64(m.patchesSent); got != 5 {
		t.Errorf("patches_sent_total = %v, want 5", got)
	}

	m.RecordWebSocketError(errors.New("i/o timeout"))
	if got := testutil.ToFloat64(m.wsErrors.WithLabelValues("timeout")); got != 1 {
		t.Errorf("websocket_errors_total(timeout) = %v, want 1", got)
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "unknown"},
		{errors.New("read tcp: i/o Timeout"), "timeout"},
		{errors.New("websocket: close 1006 (abnormal closure)"), "closed"},
		{errors.New("invalid character 'x' looking for beginning of value"), "decode"},
		{errors.New("websocket: read limit exceeded"), "too_large"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		if got := categorizeError(tt.err); got != tt.want {
			t.Errorf("categorizeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
