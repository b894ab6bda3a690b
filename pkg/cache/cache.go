// Package cache stores parsed record sets so repeated runs over the same
// input skip the GEDCOM reader.
//
// Entries are keyed by a hash of the input bytes, so an edited file misses
// the cache by construction. [FileCache] keeps one JSON file per entry under
// the user cache directory, [BadgerCache] keeps them in an embedded BadgerDB,
// and [NullCache] disables caching.
package cache

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// TTLRecords bounds how long a parsed record set is kept. Keys already
// change with the input, so the TTL only keeps the directory from growing
// without limit.
const TTLRecords = 30 * 24 * time.Hour

// keyVersion changes whenever the cached encoding changes.
const keyVersion = "v1"

// Cache is a byte-oriented key/value store.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// RecordsKey returns the cache key for a record set read by reader (e.g.
// "gedcom") from content.
func RecordsKey(reader string, content []byte) string {
	return hashKey("records", keyVersion, reader, Hash(content))
}

// Backend names accepted by [Open].
const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

// Backends lists the persistent backends in the order they are cleared.
var Backends = []string{BackendFile, BackendBadger}

// BackendDir returns the directory backend keeps its data in under root.
// Each backend has its own subdirectory so they can share one cache root.
func BackendDir(root, backend string) string {
	if backend == BackendFile {
		return filepath.Join(root, "records")
	}
	return filepath.Join(root, backend)
}

// Open returns the cache for backend under root. An empty backend selects
// the file cache.
func Open(backend, root string, logger *log.Logger) (Cache, error) {
	switch backend {
	case "", BackendFile:
		return NewFileCache(BackendDir(root, BackendFile))
	case BackendBadger:
		return NewBadgerCache(BackendDir(root, BackendBadger), logger)
	}
	return nil, fmt.Errorf("unknown cache backend %q", backend)
}

// Clearer is implemented by caches that can drop all their entries.
type Clearer interface {
	Clear() (int, error)
}
