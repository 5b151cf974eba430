package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [Cache.Get] when a cached entry exists but has
// exceeded its TTL. The stale data stays on disk; callers should refetch and
// overwrite it with [Cache.Set].
var ErrExpired = errors.New("cache entry expired")

// Cache is a file-based cache for JSON-marshalable HTTP responses.
//
// Each entry is one JSON file whose name is the SHA-256 of the cache key, so
// arbitrary keys (URLs, package coordinates) are safe. Entries expire by file
// modification time; a TTL of 0 disables expiry. A Cache is not goroutine
// safe, matching the single-writer discipline of the batch pipelines.
type Cache struct {
	dir    string
	ttl    time.Duration
	prefix string
}

// NewCache creates a Cache storing entries in dir with the given TTL.
// An empty dir selects ~/.cache/pluginhub/. The directory is created if
// missing.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".cache", "pluginhub")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl, prefix: ""}, nil
}

// Dir returns the cache directory path.
func (c *Cache) Dir() string { return c.dir }

// Get retrieves the value stored under key into v. It returns (true, nil) on
// a fresh hit, (false, nil) on a miss, and (false, ErrExpired) when the entry
// exists but is older than the TTL.
func (c *Cache) Get(key string, v any) (bool, error) {
	path := c.keyPath(c.prefix + key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return false, ErrExpired
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}

// Set stores v under key, overwriting any existing entry and refreshing its
// TTL.
func (c *Cache) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(c.keyPath(c.prefix+key), data, 0o644)
}

// Namespace returns a view of the cache that prefixes every key, keeping the
// services (github:, npm:, osv:, ...) from colliding. The returned Cache
// shares the directory and TTL of its parent.
func (c *Cache) Namespace(prefix string) *Cache {
	return &Cache{
		dir:    c.dir,
		ttl:    c.ttl,
		prefix: c.prefix + prefix,
	}
}

func (c *Cache) keyPath(key string) string {
	h := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:]))
}
