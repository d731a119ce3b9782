// Package memory implements an in-memory persistence gateway for development
// and testing.
package memory

import (
	"context"
	"sync"

	"bodytrack/internal/domain"
)

// Gateway implements key-value persistence in process memory.
type Gateway struct {
	mu     sync.Mutex
	values map[string][]byte
}

// New creates a new in-memory gateway.
func New() *Gateway {
	return &Gateway{
		values: make(map[string][]byte),
	}
}

// Ensure the interface is met.
var _ domain.Gateway = (*Gateway)(nil)

// Load returns the stored value for key, or nil, nil when absent.
func (g *Gateway) Load(ctx context.Context, key string) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	v, ok := g.values[key]
	if !ok {
		return nil, nil
	}
	// we return a copy so callers cannot mutate stored state
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Save stores a copy of value under key.
func (g *Gateway) Save(ctx context.Context, key string, value []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	g.values[key] = cp
	return nil
}

// Remove deletes the value for key, if any.
func (g *Gateway) Remove(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.values, key)
	return nil
}
