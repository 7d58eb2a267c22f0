package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/electa-dev/electa/internal/config"
	"github.com/electa-dev/electa/pkg/catalog"
)

func TestIDCommand(t *testing.T) {
	cmd := idCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"Warringah", "Jane", "Smith"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := catalog.CandidateID("Warringah", "Jane Smith")
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("id = %q, want %q", got, want)
	}
}

func TestIDCommandRequiresName(t *testing.T) {
	cmd := idCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"Warringah"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an argument error")
	}
}

func TestServeOverrides(t *testing.T) {
	cfg := config.New()
	cfg.Data.Source = config.SourceHTTP
	serveOptions{addr: ":3000", dataDir: "site", driver: "bolt", noWS: true}.applyOverrides(cfg)

	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.Data.Source != config.SourceFile || cfg.Data.Dir != "site" {
		t.Errorf("Data = %+v", cfg.Data)
	}
	if cfg.Storage.Driver != "bolt" || cfg.Storage.Path != "electa.db" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if cfg.WebSocket {
		t.Error("WebSocket should be disabled")
	}
}

func TestNewLogger(t *testing.T) {
	cfg := config.New()
	cfg.Log.Level = "warn"
	cfg.Log.Format = "json"

	var buf bytes.Buffer
	logger, err := newLogger(cfg, &buf)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("info record written at warn level: %s", got)
	}
	if !strings.Contains(got, `"msg":"shown"`) {
		t.Errorf("want a JSON record, got %s", got)
	}

	cfg.Log.Level = "loud"
	if _, err := newLogger(cfg, &buf); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestNewLoaderReadsFileSource(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		catalog.CandidatesFile: `{"metadata":{},"candidates":{"Warringah":[{"name":"Jane Smith","party":"Greens"}]}}`,
		catalog.ShopFile:       `[{"id":"cap","title":"Cap","price":20}]`,
		catalog.ArticlesFile:   `{"articles":[]}`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := config.New()
	cfg.Data.Dir = dir
	loader, err := newLoader(cfg, slog.Default())
	if err != nil {
		t.Fatalf("newLoader: %v", err)
	}
	d, err := loader.FetchDirectory(context.Background())
	if err != nil {
		t.Fatalf("FetchDirectory: %v", err)
	}
	if got := d.Electorates(); len(got) != 1 || got[0] != "Warringah" {
		t.Errorf("Electorates = %v", got)
	}
	products, err := loader.FetchShop(context.Background())
	if err != nil || len(products) != 1 {
		t.Errorf("FetchShop = %v, %v", products, err)
	}
}
