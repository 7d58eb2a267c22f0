package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/electa-dev/electa/internal/config"
	"github.com/electa-dev/electa/internal/errors"
	"github.com/electa-dev/electa/pkg/catalog"
	"github.com/electa-dev/electa/pkg/storage"
)

// printError prints coded errors in their long form.
func printError(err error) {
	var ee *errors.ElectaError
	if stderrors.As(err, &ee) {
		fmt.Fprint(os.Stderr, ee.Format())
		return
	}
	fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
}

// loadConfig reads --config when given, otherwise electa.json in the
// working directory, falling back to the defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.LoadFile(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Load(wd)
}

// newLogger builds the slog logger described by cfg.Log.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, errors.New("E402").WithDetail(err.Error())
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}

func storageOptions(cfg *config.Config) storage.Options {
	return storage.Options{
		Driver:        cfg.Storage.Driver,
		Path:          cfg.Storage.Path,
		RedisAddr:     cfg.Storage.RedisAddr,
		RedisPassword: cfg.Storage.RedisPassword,
		RedisDB:       cfg.Storage.RedisDB,
		RedisTTL:      cfg.RedisTTL(),
	}
}

// newSource builds the catalogue source, cached when cfg asks for it.
func newSource(cfg *config.Config) (catalog.Source, error) {
	var src catalog.Source
	switch cfg.Data.Source {
	case config.SourceHTTP:
		httpSrc, err := catalog.NewHTTPSource(cfg.Data.BaseURL,
			catalog.WithHTTPClient(&http.Client{Timeout: cfg.FetchTimeout()}))
		if err != nil {
			return nil, errors.New("E404").Wrap(err)
		}
		src = httpSrc
	case config.SourceS3:
		client := catalog.NewS3Client(cfg.Data.S3Region, cfg.Data.S3Endpoint)
		src = catalog.NewS3Source(client, cfg.Data.S3Bucket, cfg.Data.S3Prefix)
	default:
		src = catalog.NewFileSource(cfg.DataDir())
	}

	if cfg.Data.CacheSize <= 0 {
		return src, nil
	}
	cached, err := catalog.NewCachedSource(src, cfg.Data.CacheSize, cfg.CacheTTL())
	if err != nil {
		return nil, err
	}
	return cached, nil
}

func newLoader(cfg *config.Config, logger *slog.Logger) (*catalog.Loader, error) {
	src, err := newSource(cfg)
	if err != nil {
		return nil, err
	}
	return catalog.NewLoader(src,
		catalog.WithTimeout(cfg.FetchTimeout()),
		catalog.WithLogger(logger),
	), nil
}
