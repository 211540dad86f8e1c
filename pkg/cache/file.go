package cache

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/s7db/pkg/errors"
)

// FileCache stores each entry as a JSON file below dir, sharded by the first
// two hex characters of the hashed key.
type FileCache struct {
	dir string
}

// NewFileCache creates a file cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCache, err, "create cache directory %s", dir)
	}
	return &FileCache{dir: dir}, nil
}

type cacheEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Dir returns the cache root directory.
func (c *FileCache) Dir() string { return c.dir }

// Get reads the entry for key. Corrupt and expired entries are removed and
// reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeCache, err, "read cache entry")
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set writes the entry for key, replacing any previous one.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := cacheEntry{Data: data}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCache, err, "encode cache entry")
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeCache, err, "create cache directory")
	}
	// Each writer gets its own sibling file; the rename publishes it whole.
	f, err := os.CreateTemp(filepath.Dir(path), "*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeCache, err, "create cache entry")
	}
	tmp := f.Name()
	if _, err := f.Write(raw); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeCache, err, "write cache entry")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeCache, err, "write cache entry")
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeCache, err, "write cache entry")
	}
	return nil
}

// Delete removes the entry for key.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeCache, err, "delete cache entry")
	}
	return nil
}

// Clear removes every entry and returns how many were deleted.
// The root directory itself is kept.
func (c *FileCache) Clear() (int, error) {
	var n int
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".json") {
			n++
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return 0, errors.Wrap(errors.ErrCodeCache, err, "scan cache directory")
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil && !os.IsNotExist(err) {
		return 0, errors.Wrap(errors.ErrCodeCache, err, "read cache directory")
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(c.dir, e.Name())); err != nil {
			return 0, errors.Wrap(errors.ErrCodeCache, err, "clear cache")
		}
	}
	return n, nil
}

// Close does nothing.
func (c *FileCache) Close() error { return nil }

func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, hash[:2], hash[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
