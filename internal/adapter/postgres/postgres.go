// Package postgres implements the persistence gateway on a single key-value
// table, keeping the durable medium as dumb as the contract requires.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bodytrack/internal/domain"

	_ "github.com/lib/pq"
)

// Gateway wraps a *sql.DB and implements the domain persistence port.
type Gateway struct {
	sql *sql.DB
}

// Ensure the interface is met.
var _ domain.Gateway = (*Gateway)(nil)

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*Gateway, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	g := &Gateway{sql: s}
	if err := g.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return g, nil
}

// Close releases the underlying connection pool.
func (g *Gateway) Close() error {
	return g.sql.Close()
}

func (g *Gateway) migrate(ctx context.Context) error {
	_, err := g.sql.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS dashboard_state (
		key TEXT PRIMARY KEY,
		value JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);`)
	return err
}

// Load returns the stored JSON value for key, or nil, nil when absent.
func (g *Gateway) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := g.sql.QueryRowContext(ctx,
		"SELECT value FROM dashboard_state WHERE key=$1;", key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}

// Save upserts the JSON value for key.
func (g *Gateway) Save(ctx context.Context, key string, value []byte) error {
	_, err := g.sql.ExecContext(ctx,
		`INSERT INTO dashboard_state(key, value, updated_at) VALUES($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=EXCLUDED.updated_at;`,
		key, value, time.Now().UTC(),
	)
	return err
}

// Remove deletes the row for key, if any.
func (g *Gateway) Remove(ctx context.Context, key string) error {
	_, err := g.sql.ExecContext(ctx, "DELETE FROM dashboard_state WHERE key=$1;", key)
	return err
}
