// Package redis implements the persistence gateway on a Redis instance.
package redis

import (
	"context"
	"errors"
	"time"

	"bodytrack/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Gateway stores each logical key under a fixed prefix, unexpiring.
type Gateway struct {
	client *redis.Client
	prefix string
}

// Ensure the interface is met.
var _ domain.Gateway = (*Gateway)(nil)

// New connects to Redis and pings it before handing the gateway out.
func New(addr, password string, db int) (*Gateway, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &Gateway{client: client, prefix: "bodytrack:"}, nil
}

// Close releases the client's connections.
func (g *Gateway) Close() error {
	return g.client.Close()
}

// Load returns the stored value for key, or nil, nil when absent.
func (g *Gateway) Load(ctx context.Context, key string) ([]byte, error) {
	value, err := g.client.Get(ctx, g.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}

// Save stores the value under key with no expiry; dashboard state lives
// until an explicit reset.
func (g *Gateway) Save(ctx context.Context, key string, value []byte) error {
	return g.client.Set(ctx, g.prefix+key, value, 0).Err()
}

// Remove deletes the value for key, if any.
func (g *Gateway) Remove(ctx context.Context, key string) error {
	return g.client.Del(ctx, g.prefix+key).Err()
}
