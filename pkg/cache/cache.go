// Package cache provides byte-level response caching for the VirusTotal client.
//
// Caching is off by default: every export hits the API exactly as often as
// the graph requires. When enabled, URL lookups (one request per URL node)
// and graph bodies are cached so re-exporting the same graph does not burn
// API quota.
//
// Backends:
//   - [NullCache]: no-op, the default
//   - [FileCache]: per-user cache directory for CLI use
//   - [RedisCache]: shared cache for teams exporting from one quota
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys.
type Cache interface {
	// Get returns the cached payload for key. hit is false on a miss or an
	// expired entry.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
