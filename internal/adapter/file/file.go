// Package file implements the persistence gateway on local JSON files, one
// per key. This is the default medium for a single-machine dashboard.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"bodytrack/internal/domain"
)

// Gateway stores each key as <dir>/<key>.json.
type Gateway struct {
	dir string
}

// New ensures dir exists and returns a gateway over it.
func New(dir string) (*Gateway, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Gateway{dir: dir}, nil
}

var _ domain.Gateway = (*Gateway)(nil)

func (g *Gateway) path(key string) string {
	return filepath.Join(g.dir, key+".json")
}

// Load reads the file for key. A missing file means the key is absent.
func (g *Gateway) Load(ctx context.Context, key string) ([]byte, error) {
	raw, err := os.ReadFile(g.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return raw, nil
}

// Save writes the value through a temp file and rename so a crash mid-write
// never leaves a truncated state file behind.
func (g *Gateway) Save(ctx context.Context, key string, value []byte) error {
	tmp := g.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, g.path(key)); err != nil {
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

// Remove deletes the file for key; a missing file is not an error.
func (g *Gateway) Remove(ctx context.Context, key string) error {
	if err := os.Remove(g.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
