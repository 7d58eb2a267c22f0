package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingTracer(opts ...OTelOption) (*Tracer, *tracetest.SpanRecorder) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	return NewTracer(append(opts, WithTracerProvider(tp))...), rec
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracerHandler_NamesSpanByRoute(t *testing.T) {
	tracer, rec := newRecordingTracer()

	r := chi.NewRouter()
	r.Use(tracer.Handler)
	r.Get("/electorates/{electorate}", func(w http.ResponseWriter, r *http.Request) {
		if !SpanFromRequest(r).SpanContext().IsValid() {
			t.Error("handler should see the request span")
		}
		w.WriteHeader(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/electorates/clark", nil))

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	span := spans[0]
	if span.Name() != "GET /electorates/{electorate}" {
		t.Errorf("Name() = %q", span.Name())
	}
	if v, ok := attrValue(span.Attributes(), "http.status_code"); !ok || v.AsInt64() != 200 {
		t.Errorf("http.status_code = %v", v)
	}
	if span.Status().Code != codes.Ok {
		t.Errorf("Status = %v, want Ok", span.Status())
	}
}

func TestTracerHandler_ServerErrorMarksSpan(t *testing.T) {
	tracer, rec := newRecordingTracer(WithAttributeExtractor(func(*http.Request) []attribute.KeyValue {
		return []attribute.KeyValue{attribute.String("test.attr", "ok")}
	}))

	r := chi.NewRouter()
	r.Use(tracer.Handler)
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	span := rec.Ended()[0]
	if span.Status().Code != codes.Error {
		t.Errorf("Status = %v, want Error", span.Status())
	}
	if v, ok := attrValue(span.Attributes(), "test.attr"); !ok || v.AsString() != "ok" {
		t.Error("extracted attribute missing")
	}
}

func TestTracerHandler_Filter(t *testing.T) {
	tracer, rec := newRecordingTracer(WithRequestFilter(func(r *http.Request) bool {
		return r.URL.Path != "/healthz"
	}))

	h := tracer.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if n := len(rec.Ended()); n != 0 {
		t.Errorf("filtered request produced %d spans", n)
	}
}

func TestTracer_StartAction(t *testing.T) {
	tracer, rec := newRecordingTracer()

	_, end := tracer.StartAction(context.Background(), "save-vote")
	end(2, nil)
	_, end = tracer.StartAction(context.Background(), "add-to-cart")
	end(0, errors.New("render failed"))

	spans := rec.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, want 2", len(spans))
	}
	if spans[0].Name() != "electa.action save-vote" {
		t.Errorf("Name() = %q", spans[0].Name())
	}
	if v, ok := attrValue(spans[0].Attributes(), "electa.patch_count"); !ok || v.AsInt64() != 2 {
		t.Errorf("electa.patch_count = %v", v)
	}
	if spans[1].Status().Code != codes.Error {
		t.Errorf("failed action status = %v", spans[1].Status())
	}
}

func TestSetupTracing_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), "electa", "")
	if err != nil {
		t.Fatalf("SetupTracing() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}
