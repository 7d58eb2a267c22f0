package storage

import (
	"context"
	"errors"
)

// ErrClosed is returned when operations are attempted on a closed backend.
var ErrClosed = errors.New("storage: backend is closed")

// Backend persists string values addressed by (scope, key).
// A scope is one visitor; keys are the fixed item names used by the stores.
// Implementations must be safe for concurrent use.
type Backend interface {
	// Get returns the value stored under key in scope.
	// Returns ("", false, nil) if the key doesn't exist.
	Get(ctx context.Context, scope, key string) (string, bool, error)

	// Set replaces the value stored under key in scope in a single write.
	Set(ctx context.Context, scope, key, value string) error

	// Delete removes key from scope.
	// Should not return an error if the key doesn't exist.
	Delete(ctx context.Context, scope, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// Storage is one visitor's view of a Backend. It mirrors the browser
// localStorage API: string keys, string values, last write wins.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// Scope binds a backend to one visitor scope.
func Scope(b Backend, scope string) Storage {
	return &scoped{backend: b, scope: scope}
}

type scoped struct {
	backend Backend
	scope   string
}

func (s *scoped) GetItem(ctx context.Context, key string) (string, bool, error) {
	return s.backend.Get(ctx, s.scope, key)
}

func (s *scoped) SetItem(ctx context.Context, key, value string) error {
	return s.backend.Set(ctx, s.scope, key, value)
}

func (s *scoped) RemoveItem(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, s.scope, key)
}
