// Package middleware provides the observability middleware of the Electa
// server.
//
// This package includes:
//   - Prometheus metrics for requests, actions and consent decisions
//   - OpenTelemetry tracing for requests and action dispatch
//   - OTLP tracer provider setup
//
// # Prometheus Metrics
//
// Metrics are registered on a caller-supplied registry so tests and
// multiple servers never collide:
//
//	reg := prometheus.NewRegistry()
//	metrics := middleware.NewMetrics(middleware.WithRegistry(reg))
//
//	r := chi.NewRouter()
//	r.Use(metrics.Handler)
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// Metrics also implements action.Observer, and ConsentListener subscribes
// it to a consent bus.
//
// # OpenTelemetry
//
// The tracer uses the global tracer provider unless one is passed:
//
//	shutdown, err := middleware.SetupTracing(ctx, "electa", endpoint)
//	defer shutdown(ctx)
//
//	tracer := middleware.NewTracer(
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	)
//	r.Use(tracer.Handler)
//
// Request spans are named after the matched chi route pattern. The request
// context carries the span, so storage and catalogue calls made with it
// join the trace.
package middleware
