package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/electa-dev/electa/pkg/render"
)

// Server serves the Electa site: rendered pages, the action endpoint and
// its websocket twin.
type Server struct {
	config         Config
	router         chi.Router
	renderer       *render.Renderer
	upgrader       websocket.Upgrader
	trustedProxies *proxyMatcher
	logger         *slog.Logger

	mu         sync.Mutex
	httpServer *http.Server
}

// New creates a Server. Unset fields of config take the values of
// DefaultConfig.
func New(config Config) (*Server, error) {
	if config.Storage == nil {
		return nil, ErrMissingStorage
	}
	if config.Catalog == nil {
		return nil, ErrMissingCatalog
	}
	config = config.withDefaults()

	logger := config.Logger.With("component", "server")
	s := &Server{
		config:         config,
		renderer:       config.Renderer,
		trustedProxies: newProxyMatcher(config.TrustedProxies, logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
		logger: logger,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	if s.config.Tracer != nil {
		r.Use(s.config.Tracer.Handler)
	}
	if s.config.Metrics != nil {
		r.Use(s.config.Metrics.Handler)
	}
	r.Use(s.requestLogger)

	r.Get("/", s.handleHome)
	r.Get("/electorates", s.handleElectorates)
	r.Get("/electorates/{electorate}", s.handleElectorate)
	r.Get("/profile", s.handleProfile)
	r.Get("/votes", s.handleVotes)
	r.Get("/shop", s.handleShop)
	r.Get("/cart", s.handleCart)
	r.Get("/blog", s.handleBlog)
	r.Get("/article", s.handleArticle)
	r.Get("/contribute", s.handleContributeForm)
	r.Post("/contribute", s.handleContributeSubmit)

	r.Post("/actions", s.handleAction)
	r.Get("/ws", s.handleWebSocket)

	r.Get(ClientScriptPath, s.serveClientScript)
	r.Head(ClientScriptPath, s.serveClientScript)
	r.Get(StyleSheetPath, s.serveStyleSheet)
	r.Head(StyleSheetPath, s.serveStyleSheet)
	if s.config.StaticDir != "" {
		r.Handle("/data/*", http.StripPrefix("/data/", http.FileServer(http.Dir(s.config.StaticDir))))
	}

	if s.config.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.NotFound(s.handleNotFound)
	return r
}

// requestLogger logs every request at debug level and server errors at
// error level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := slog.LevelDebug
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.logger.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on the configured address and blocks until ctx is done,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.WithoutCancel(ctx))
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}

// Config returns the server configuration with defaults applied.
func (s *Server) Config() Config {
	return s.config
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}
