// Package cache provides byte-oriented caching for computed layouts and
// rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP service
//   - [NullCache]: never stores anything, for --no-cache
//
// # Keys
//
// Keys are built by a [Keyer] from a content hash of the input and the
// options that influence the output, so a cache entry is valid exactly as
// long as its inputs are unchanged. Wrap a keyer with [NewScopedKeyer] to
// give a tenant or environment its own namespace.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
//
// Get reports a miss as (nil, false, nil); an error means the backend itself
// failed. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry lifetimes. Layouts are pure functions of their inputs, so these only
// bound disk and memory use.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
