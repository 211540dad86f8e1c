// Package cache stores generated S7 sources keyed by the hash of their
// definition.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under a local directory (CLI default)
//   - [RedisCache]: a shared Redis or Valkey instance (API servers)
//   - [NullCache]: stores nothing (--no-cache)
//
// Keys are built by a [Keyer] so that callers never assemble key strings by
// hand; [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the data stored under key. A missing or expired entry is
	// reported as hit == false with a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl <= 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLSource is the default lifetime of a cached source.
// Sources are a pure function of the definition, so entries only expire to
// bound disk usage.
const TTLSource = 7 * 24 * time.Hour

// SourceKeyOpts holds the generator settings that affect the rendered source
// beyond the definition itself.
type SourceKeyOpts struct {
	Version string `json:"version"`
}

// Keyer builds cache keys.
type Keyer interface {
	// SourceKey returns the key for the source generated from the definition
	// with the given content hash.
	SourceKey(defHash string, opts SourceKeyOpts) string
}

// DefaultKeyer builds unprefixed keys of the form "source:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SourceKey implements [Keyer].
func (DefaultKeyer) SourceKey(defHash string, opts SourceKeyOpts) string {
	return hashKey("source", defHash, opts)
}
