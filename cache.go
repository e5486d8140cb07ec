package md2html

import (
	"crypto/md5" // #nosec G501 -- change-detection keying, not a security boundary
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultCacheDir is used when no cache directory is given.
const DefaultCacheDir = ".md2html_cache"

// cacheFileName is the index file inside the cache directory.
const cacheFileName = "cache.json"

// cacheEntry records one rendered file: the source content hash, where
// the output went, and when.
type cacheEntry struct {
	Hash          string    `json:"hash"`
	OutputPath    string    `json:"output_path"`
	LastProcessed time.Time `json:"last_processed"`
}

// Cache skips re-rendering unchanged files by comparing MD5 content
// hashes. The index persists as a JSON file. Safe for concurrent use
// by parallel renders of different files.
type Cache struct {
	dir  string
	file string

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// OpenCache opens (or creates) a cache rooted at dir. An empty dir uses
// DefaultCacheDir. A missing or corrupt index starts empty rather than
// failing.
func OpenCache(dir string) (*Cache, error) {
	if dir == "" {
		dir = DefaultCacheDir
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheLoad, err)
	}

	c := &Cache{
		dir:     dir,
		file:    filepath.Join(dir, cacheFileName),
		entries: make(map[string]cacheEntry),
	}

	data, err := os.ReadFile(c.file) // #nosec G304 -- path is derived from the caller's cache dir
	if err == nil {
		// Corrupt index data is discarded, not fatal.
		_ = json.Unmarshal(data, &c.entries)
	}
	return c, nil
}

// IsStale reports whether path needs re-rendering: unknown to the
// cache, unreadable, or changed since the recorded hash.
func (c *Cache) IsStale(path string) bool {
	key, err := cacheKey(path)
	if err != nil {
		return true
	}

	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return true
	}

	hash, err := hashFile(path)
	if err != nil {
		return true
	}
	return hash != entry.Hash
}

// CachedOutput returns the recorded output path for a source file, if
// the output still exists on disk.
func (c *Cache) CachedOutput(path string) (string, bool) {
	key, err := cacheKey(path)
	if err != nil {
		return "", false
	}

	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if !ok || entry.OutputPath == "" {
		return "", false
	}

	if _, err := os.Stat(entry.OutputPath); err != nil {
		return "", false
	}
	return entry.OutputPath, true
}

// Update records a successful render of path to outputPath.
func (c *Cache) Update(path, outputPath string) error {
	key, err := cacheKey(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheSave, err)
	}
	hash, err := hashFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheSave, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{
		Hash:          hash,
		OutputPath:    outputPath,
		LastProcessed: time.Now(),
	}
	return c.saveLocked()
}

// Remove drops a single file from the cache.
func (c *Cache) Remove(path string) error {
	key, err := cacheKey(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheSave, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		return nil
	}
	delete(c.entries, key)
	return c.saveLocked()
}

// Clear drops all cached data.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
	return c.saveLocked()
}

// saveLocked persists the index. Callers must hold c.mu.
func (c *Cache) saveLocked() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheSave, err)
	}
	if err := os.WriteFile(c.file, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheSave, err)
	}
	return nil
}

// cacheKey keys entries by absolute source path.
func cacheKey(path string) (string, error) {
	return filepath.Abs(path)
}

// hashFile computes the MD5 hex digest of a file's content.
func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- hashing the caller's own source file
	if err != nil {
		return "", err
	}
	sum := md5.Sum(data) // #nosec G401 -- change-detection keying, not a security boundary
	return hex.EncodeToString(sum[:]), nil
}
