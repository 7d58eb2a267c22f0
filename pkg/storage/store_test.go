package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-redis/redis/v8"
)

// backendFactories returns one constructor per backend that can run
// without external services.
func backendFactories(t *testing.T) map[string]func(t *testing.T) Backend {
	t.Helper()
	return map[string]func(t *testing.T) Backend{
		"memory": func(t *testing.T) Backend {
			return NewMemoryBackend()
		},
		"bolt": func(t *testing.T) Backend {
			b, err := OpenBolt(filepath.Join(t.TempDir(), "local.db"))
			if err != nil {
				t.Fatalf("OpenBolt() error: %v", err)
			}
			return b
		},
		"sqlite": func(t *testing.T) Backend {
			b, err := Open(context.Background(), Options{Driver: DriverSQLite, Path: ":memory:"})
			if err != nil {
				t.Fatalf("Open(sqlite) error: %v", err)
			}
			return b
		},
	}
}

func TestBackendContract(t *testing.T) {
	for name, factory := range backendFactories(t) {
		t.Run(name, func(t *testing.T) {
			b := factory(t)
			t.Cleanup(func() { _ = b.Close() })
			runContract(t, b)
		})
	}
}

func TestRedisBackendContract(t *testing.T) {
	addr := os.Getenv("ELECTA_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("ELECTA_TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	b := NewRedisBackend(client, WithRedisPrefix("electa:test:"+t.Name()+":"))
	runContract(t, b)
}

func runContract(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := b.Get(ctx, "v1", "myVotes"); err != nil || ok {
		t.Fatalf("Get() on empty backend = ok:%v err:%v, want missing", ok, err)
	}

	if err := b.Set(ctx, "v1", "myVotes", `[{"name":"A"}]`); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, ok, err := b.Get(ctx, "v1", "myVotes")
	if err != nil || !ok {
		t.Fatalf("Get() after Set = ok:%v err:%v", ok, err)
	}
	if got != `[{"name":"A"}]` {
		t.Errorf("Get() = %q", got)
	}

	// Overwrite replaces the whole value.
	if err := b.Set(ctx, "v1", "myVotes", `[]`); err != nil {
		t.Fatalf("Set() overwrite error: %v", err)
	}
	if got, _, _ := b.Get(ctx, "v1", "myVotes"); got != `[]` {
		t.Errorf("Get() after overwrite = %q, want []", got)
	}

	// Scopes are isolated.
	if _, ok, _ := b.Get(ctx, "v2", "myVotes"); ok {
		t.Error("scope v2 should not see scope v1 values")
	}

	if err := b.Delete(ctx, "v1", "myVotes"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok, _ := b.Get(ctx, "v1", "myVotes"); ok {
		t.Error("Get() after Delete should report missing")
	}

	// Deleting a missing key is not an error.
	if err := b.Delete(ctx, "nobody", "shopCart"); err != nil {
		t.Errorf("Delete() of missing key error: %v", err)
	}
}

func TestScope(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	a := Scope(backend, "a")
	b := Scope(backend, "b")

	if err := a.SetItem(ctx, "shopCart", "x"); err != nil {
		t.Fatalf("SetItem() error: %v", err)
	}
	if _, ok, _ := b.GetItem(ctx, "shopCart"); ok {
		t.Error("scope b saw scope a's item")
	}
	if v, ok, _ := a.GetItem(ctx, "shopCart"); !ok || v != "x" {
		t.Errorf("GetItem() = %q, %v", v, ok)
	}
	if err := a.RemoveItem(ctx, "shopCart"); err != nil {
		t.Fatalf("RemoveItem() error: %v", err)
	}
	if backend.Scopes() != 0 {
		t.Errorf("Scopes() = %d, want 0 after removing the only item", backend.Scopes())
	}
}

func TestClosedBackendsFail(t *testing.T) {
	ctx := context.Background()
	for name, factory := range backendFactories(t) {
		t.Run(name, func(t *testing.T) {
			b := factory(t)
			if err := b.Close(); err != nil {
				t.Fatalf("Close() error: %v", err)
			}
			if err := b.Set(ctx, "s", "k", "v"); err == nil {
				t.Fatal("Set() expected error after Close, got nil")
			}
			if _, _, err := b.Get(ctx, "s", "k"); err == nil {
				t.Fatal("Get() expected error after Close, got nil")
			}
		})
	}
}

func TestMemoryClosedReturnsErrClosed(t *testing.T) {
	b := NewMemoryBackend()
	_ = b.Close()
	if err := b.Set(context.Background(), "s", "k", "v"); !errors.Is(err, ErrClosed) {
		t.Errorf("Set() error = %v, want ErrClosed", err)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), Options{Driver: "etcd"}); err == nil {
		t.Fatal("Open() with unknown driver should fail")
	}
}

func TestBoltPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.db")
	ctx := context.Background()

	b, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt() error: %v", err)
	}
	if err := b.Set(ctx, "visitor", "shopCart", `[{"id":"tote-bag"}]`); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	b, err = OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt() reopen error: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })

	got, ok, err := b.Get(ctx, "visitor", "shopCart")
	if err != nil || !ok || got != `[{"id":"tote-bag"}]` {
		t.Errorf("Get() after reopen = %q, %v, %v", got, ok, err)
	}
}
