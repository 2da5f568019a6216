// Package core defines the ports shared by the sort services and the data layer.
package core

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// The core defines it and the data layer provides the Redis implementation.
type CacheRepository interface {
	// Set stores a value with the given TTL. A zero TTL never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get returns nil when the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete returns true if the key existed.
	Delete(ctx context.Context, key string) (bool, error)

	// Health checks the cache connection.
	Health(ctx context.Context) error
}
