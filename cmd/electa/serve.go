package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/electa-dev/electa/internal/config"
	"github.com/electa-dev/electa/pkg/contribute"
	"github.com/electa-dev/electa/pkg/middleware"
	"github.com/electa-dev/electa/pkg/server"
	"github.com/electa-dev/electa/pkg/storage"
)

type serveOptions struct {
	addr    string
	dataDir string
	driver  string
	noWS    bool
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Electa web server",
		Long: `Run the Electa web server.

Configuration is read from electa.json (or --config) and ELECTA_*
environment variables. Flags override both.`,
		Example: `  electa serve
  electa serve --addr :3000 --data-dir ./data
  electa serve --storage bolt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "Listen address (overrides config)")
	cmd.Flags().StringVarP(&opts.dataDir, "data-dir", "d", "", "Directory of candidates.json, shop.json and articles.json")
	cmd.Flags().StringVar(&opts.driver, "storage", "", "Storage driver: memory, bolt, sqlite or redis")
	cmd.Flags().BoolVar(&opts.noWS, "no-websocket", false, "Send actions over HTTP only")

	return cmd
}

// applyOverrides copies non-empty flags onto cfg.
func (o serveOptions) applyOverrides(cfg *config.Config) {
	if o.addr != "" {
		cfg.Addr = o.addr
	}
	if o.dataDir != "" {
		cfg.Data.Source = config.SourceFile
		cfg.Data.Dir = o.dataDir
	}
	if o.driver != "" {
		cfg.Storage.Driver = o.driver
		if o.driver == storage.DriverBolt && cfg.Storage.Path == "" {
			cfg.Storage.Path = "electa.db"
		}
	}
	if o.noWS {
		cfg.WebSocket = false
	}
}

func runServe(cmd *cobra.Command, opts serveOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := middleware.SetupTracing(ctx, "electa", cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("trace flush failed", "error", err)
		}
	}()

	backend, err := storage.Open(ctx, storageOptions(cfg))
	if err != nil {
		return err
	}
	defer backend.Close()

	loader, err := newLoader(cfg, logger)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(middleware.WithRegistry(reg))
	tracer := middleware.NewTracer(middleware.WithRequestFilter(func(r *http.Request) bool {
		return r.URL.Path != "/healthz" && r.URL.Path != "/metrics"
	}))

	var staticDir string
	if cfg.Data.Source == config.SourceFile {
		staticDir = cfg.DataDir()
	}

	srv, err := server.New(server.Config{
		Address:         cfg.Addr,
		Storage:         backend,
		Catalog:         loader,
		Mailer:          contribute.NewMailer(cfg.Contribute.Recipient),
		Metrics:         metrics,
		Gatherer:        reg,
		Tracer:          tracer,
		StaticDir:       staticDir,
		AdSenseClient:   cfg.Ads.AdSenseClient,
		AnalyticsID:     cfg.Ads.AnalyticsID,
		MaxCartQuantity: cfg.Cart.MaxQuantity,
		EnableWebSocket: cfg.WebSocket,
		SecureCookies:   cfg.Cookie.Secure,
		TrustedProxies:  cfg.Cookie.TrustedProxies,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	printBanner()
	success("Listening on %s", cfg.Addr)
	info("Storage: %s", cfg.Storage.Driver)
	info("Data:    %s", describeSource(cfg))
	if cfg.Telemetry.OTLPEndpoint != "" {
		info("Traces:  %s", cfg.Telemetry.OTLPEndpoint)
	}

	if err := srv.Run(ctx); err != nil {
		return err
	}
	success("Server stopped")
	return nil
}

func describeSource(cfg *config.Config) string {
	switch cfg.Data.Source {
	case config.SourceHTTP:
		return cfg.Data.BaseURL
	case config.SourceS3:
		return "s3://" + cfg.Data.S3Bucket + "/" + cfg.Data.S3Prefix
	default:
		return cfg.DataDir()
	}
}
