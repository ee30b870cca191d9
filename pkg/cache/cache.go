// Package cache provides pluggable byte-oriented caching for registry
// lookups and other repeatable fetches.
//
// # Overview
//
// Three backends implement the [Cache] interface:
//
//   - [FileCache] stores entries as JSON files under a directory, suitable
//     for CLI runs that should survive process restarts.
//   - [RedisCache] stores entries in a Redis server, suitable for shared
//     or long-running deployments.
//   - [NullCache] stores nothing and always misses, used when caching is
//     disabled.
//
// Backends store opaque []byte values; callers are responsible for
// serialization. Keys are free-form strings. Use [NewScoped] to prefix
// keys per data source so different callers sharing one backend cannot
// collide.
//
// # Expiration
//
// Every Set carries a TTL. A TTL of zero means the entry never expires.
// Expired entries are detected on read and reported as misses; the
// file backend also removes them lazily at that point.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long cached registry responses stay fresh unless a
// caller chooses otherwise.
const DefaultTTL = 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiration.
//
// Get reports a miss as (nil, false, nil); errors are reserved for
// backend failures, not absent keys. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get retrieves the value stored under key.
	// The second return value reports whether a fresh entry was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero keeps the entry forever.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the entry for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
