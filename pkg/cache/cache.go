// Package cache stores rendered planner artifacts.
//
// Rendering a full-year planner means hundreds of SVG pages and a PDF
// conversion. The pipeline caches every rendered page and every exported
// artifact under a key derived from the hash of the configuration, so
// unchanged pages are not rendered twice.
//
// # Backends
//
//   - [FileCache]: JSON entries under the XDG cache directory (CLI default)
//   - [RedisCache]: shared cache for preview servers running side by side
//   - [NullCache]: caching disabled
//
// [Open] picks a backend from a short spec string:
//
//	c, err := cache.Open(ctx, "")                       // file cache in DefaultDir()
//	c, err := cache.Open(ctx, "none")                   // disabled
//	c, err := cache.Open(ctx, "redis://localhost:6379") // Redis
package cache

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Entry lifetimes.
const (
	TTLPage     = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// DirName is the application directory below the XDG cache home.
const DirName = "planbook"

// DefaultDir returns the file cache directory, $XDG_CACHE_HOME/planbook.
func DefaultDir() string {
	return filepath.Join(xdg.CacheHome, DirName)
}

// Open creates a cache from a spec: "" or "file" for a [FileCache] in
// [DefaultDir], "file:<dir>" for a file cache elsewhere, "none" to disable
// caching, or a redis:// or rediss:// URL.
func Open(ctx context.Context, spec string) (Cache, error) {
	switch {
	case spec == "" || spec == "file":
		return NewFileCache(DefaultDir())
	case strings.HasPrefix(spec, "file:"):
		return NewFileCache(strings.TrimPrefix(spec, "file:"))
	case spec == "none" || spec == "off":
		return NewNullCache(), nil
	case strings.HasPrefix(spec, "redis://") || strings.HasPrefix(spec, "rediss://"):
		return NewRedisCacheFromURL(ctx, spec)
	}
	return nil, errUnknownSpec(spec)
}
