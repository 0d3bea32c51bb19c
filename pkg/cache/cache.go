// Package cache provides pluggable byte caches for rendered codes.
//
// Rendering the same content twice always produces the same bytes, which
// makes rendered output a natural cache payload: the HTTP service caches
// finished ANSI text and PNG images, the CLI caches nothing by default.
//
// Three backends implement the same small interface: FileCache for local
// disk, RedisCache for the shared server deployment, and NullCache to
// disable caching entirely. Keys are derived from every render input via a
// Keyer so that any change to content, error-correction level, quiet zone
// or output format lands on a different entry.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero on Set stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// RenderKeyOpts captures every input besides the content that changes
// rendered bytes. Two renders with equal content and equal opts are
// byte-for-byte identical, so they may share a cache entry.
type RenderKeyOpts struct {
	Level     string // error-correction level name
	QuietZone int    // quiet-zone thickness in pixels
	Format    string // output format: "ansi" or "png"
	Size      int    // PNG edge length in pixels; zero for text output
}

// Keyer derives cache keys from render inputs.
type Keyer interface {
	RenderKey(content string, opts RenderKeyOpts) string
}

// DefaultKeyer hashes the full render input into a fixed-length key, so
// arbitrarily long content still yields short keys safe for any backend.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// RenderKey generates a key of the form render:<sha256>.
func (k *DefaultKeyer) RenderKey(content string, opts RenderKeyOpts) string {
	return hashKey("render", content, opts.Level, opts.QuietZone, opts.Format, opts.Size)
}
