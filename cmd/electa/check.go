package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate configuration and data files",
		Long: `Load electa.json, validate it, and fetch every data file from the
configured source.

Use this before deploying new candidates, shop or article data. Any
error is reported with its code and a suggestion.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd)
		},
	}
}

func runCheck(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Path() != "" {
		success("Configuration %s", cfg.Path())
	} else {
		success("Configuration (defaults)")
	}

	loader, err := newLoader(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dir, err := loader.FetchDirectory(ctx)
	if err != nil {
		return err
	}
	candidates := 0
	for _, list := range dir.Candidates {
		candidates += len(list)
	}
	success("Candidates: %d in %d electorates", candidates, len(dir.Electorates()))
	if msg := dir.Metadata.Message(); msg != "" {
		info("%s", msg)
	}

	products, err := loader.FetchShop(ctx)
	if err != nil {
		return err
	}
	success("Shop: %d products", len(products))

	articles, err := loader.FetchArticles(ctx)
	if err != nil {
		return err
	}
	success("Blog: %d articles", len(articles))
	if len(articles) == 0 {
		warn("The blog page will show no articles")
	}
	return nil
}
