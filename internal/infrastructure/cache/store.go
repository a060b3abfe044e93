// Package cache provides short-lived byte caches backed by Redis or process memory.
package cache

import (
	"context"
	"time"
)

// Store is a key/value cache with per-entry expiry.
// A TTL of zero means the entry never expires.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
