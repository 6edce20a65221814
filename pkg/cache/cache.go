// Package cache stores raw bytes across process runs.
//
// The welcome-screen renderer uses it for downloaded background images, so
// repeated renders for the same venue do not refetch the same photo. Decoded
// images are never stored here; see package assets for the in-process cache.
//
// Three implementations are provided:
//
//   - [FileCache]: one JSON file per entry under a local directory (CLI default).
//   - [RedisCache]: a shared Redis instance for several renderer processes.
//   - [NullCache]: stores nothing, for --no-cache and tests.
//
// [WithPrefix] namespaces keys when several applications share one backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the entry for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
