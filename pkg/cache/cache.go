// Package cache provides byte-oriented caching backends.
//
// Three implementations share the [Cache] interface:
//
//   - [FileCache]: one JSON file per entry, used by the CLI (~/.cache/gitlevel/)
//   - [RedisCache]: shared cache for the card server
//   - [NullCache]: never stores anything (--no-cache, tests)
//
// Keys are built by a [Keyer] so that every component derives them the same
// way; [ScopedKeyer] prefixes keys when several deployments share one Redis.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. The bool reports a hit; a miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default lifetimes per kind of cached value.
const (
	// TTLHTTP covers GitHub listings and language maps.
	TTLHTTP = 24 * time.Hour

	// TTLArtifact covers analyses and rendered cards.
	TTLArtifact = 30 * time.Minute
)
