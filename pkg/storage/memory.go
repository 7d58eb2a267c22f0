package storage

import (
	"context"
	"sync"
)

// MemoryBackend is an in-memory backend.
// Values are lost on restart; it is the default for development and tests.
type MemoryBackend struct {
	mu     sync.RWMutex
	scopes map[string]map[string]string
	closed bool
}

// NewMemoryBackend creates a new in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		scopes: make(map[string]map[string]string),
	}
}

// Get returns the value stored under key in scope.
func (m *MemoryBackend) Get(ctx context.Context, scope, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", false, ErrClosed
	}

	items, ok := m.scopes[scope]
	if !ok {
		return "", false, nil
	}
	value, ok := items[key]
	return value, ok, nil
}

// Set stores value under key in scope.
func (m *MemoryBackend) Set(ctx context.Context, scope, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	items, ok := m.scopes[scope]
	if !ok {
		items = make(map[string]string)
		m.scopes[scope] = items
	}
	items[key] = value
	return nil
}

// Delete removes key from scope.
func (m *MemoryBackend) Delete(ctx context.Context, scope, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if items, ok := m.scopes[scope]; ok {
		delete(items, key)
		if len(items) == 0 {
			delete(m.scopes, scope)
		}
	}
	return nil
}

// Close marks the backend as closed. Subsequent calls fail with ErrClosed.
func (m *MemoryBackend) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Scopes returns the number of scopes holding at least one value.
func (m *MemoryBackend) Scopes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.scopes)
}
