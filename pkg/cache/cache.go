// Package cache stores parsed records and rendered artifacts between runs.
//
// The CLI re-renders the same boring logs over and over while a log is being
// edited or a report assembled. Parsing a spreadsheet and rasterizing a PDF
// are the slow steps, so both are cached by content:
//
//   - Records are keyed by the hash of the source file.
//   - Artifacts are keyed by the hash of the normalized record plus every
//     option that changes the output (format, config, scale, ...).
//
// Editing the source or changing any option therefore misses the cache
// without explicit invalidation.
//
// # Backends
//
// [FileCache] keeps entries as files under a directory and is what the CLI
// uses. [NullCache] never stores anything and backs --no-cache.
package cache

import (
	"context"
	"time"
)

// TTLs for cached entries. Keys are content hashes, so the TTL only bounds
// disk usage.
const (
	TTLRecord   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is reported as ok == false with
	// a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
