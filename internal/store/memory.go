package store

import (
	"context"
	"maps"
	"sync"
)

// Memory is an in-memory Backend, the modern form of the first iteration's
// process-wide page dictionary. It backs tests and scratch deployments that
// do not need durability.
type Memory[T any] struct {
	mu      sync.Mutex
	entries map[string]T
}

// NewMemory creates an empty in-memory backend.
func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{entries: make(map[string]T)}
}

func (m *Memory[T]) LoadAll(ctx context.Context) (map[string]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.entries), nil
}

func (m *Memory[T]) Append(ctx context.Context, key string, value T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}
