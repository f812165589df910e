package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/dshills/qprimes/internal/quadratic"
)

// schemaVersion is mixed into every key so stale layouts are never read back.
const schemaVersion = "v1"

// Entry represents a cached search result.
type Entry struct {
	Key       string           `json:"key"`
	Bound     int              `json:"bound"`
	Result    quadratic.Result `json:"result"`
	CreatedAt time.Time        `json:"createdAt"`
	TTL       int              `json:"ttl"`
}

// Cache provides file-based caching of finished searches.
type Cache struct {
	dir        string
	ttlSeconds int
	enabled    bool
}

// New creates a new Cache. If dir is empty, uses the default cache directory.
// A ttlSeconds of zero means entries never expire.
func New(enabled bool, dir string, ttlSeconds int) (*Cache, error) {
	if !enabled {
		return &Cache{enabled: false}, nil
	}
	if dir == "" {
		d, err := defaultCacheDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Cache{
		dir:        dir,
		ttlSeconds: ttlSeconds,
		enabled:    true,
	}, nil
}

// Get retrieves the cached result for bound. Returns false on miss.
func (c *Cache) Get(bound int) (quadratic.Result, bool) {
	if !c.enabled {
		return quadratic.Result{}, false
	}
	path := c.entryPath(bound)
	data, err := os.ReadFile(path)
	if err != nil {
		return quadratic.Result{}, false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return quadratic.Result{}, false
	}
	if entry.Bound != bound {
		return quadratic.Result{}, false
	}
	if c.expired(entry) {
		os.Remove(path)
		return quadratic.Result{}, false
	}
	return entry.Result, true
}

// Put stores the result of a search over bound.
func (c *Cache) Put(bound int, result quadratic.Result) error {
	if !c.enabled {
		return nil
	}
	entry := Entry{
		Key:       BuildCacheKey(bound),
		Bound:     bound,
		Result:    result,
		CreatedAt: time.Now(),
		TTL:       c.ttlSeconds,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}
	return os.WriteFile(c.entryPath(bound), data, 0o644)
}

// Clear removes all cache entries and returns how many were removed.
func (c *Cache) Clear() (int, error) {
	if !c.enabled || c.dir == "" {
		return 0, nil
	}
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading cache directory: %w", err)
	}
	var removed int
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".json" {
			if err := os.Remove(filepath.Join(c.dir, e.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}

// Stats returns cache statistics.
type Stats struct {
	Dir        string `json:"dir"`
	Entries    int    `json:"entries"`
	TotalBytes int64  `json:"totalBytes"`
	Expired    int    `json:"expired"`
}

// GetStats returns information about the cache.
func (c *Cache) GetStats() (Stats, error) {
	stats := Stats{Dir: c.dir}
	if !c.enabled || c.dir == "" {
		return stats, nil
	}
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, fmt.Errorf("reading cache directory: %w", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		stats.Entries++
		stats.TotalBytes += info.Size()

		data, err := os.ReadFile(filepath.Join(c.dir, e.Name()))
		if err != nil {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			continue
		}
		if c.expired(entry) {
			stats.Expired++
		}
	}
	return stats, nil
}

// Dir returns the cache directory path.
func (c *Cache) Dir() string {
	return c.dir
}

// Enabled returns whether caching is enabled.
func (c *Cache) Enabled() bool {
	return c.enabled
}

// HashKey creates a SHA-256 hash of the given key material.
func HashKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", h)
}

// BuildCacheKey creates a cache key for a search over bound.
func BuildCacheKey(bound int) string {
	return HashKey(fmt.Sprintf("%s:search:%d", schemaVersion, bound))
}

func (c *Cache) expired(e Entry) bool {
	return c.ttlSeconds > 0 && time.Since(e.CreatedAt) > time.Duration(c.ttlSeconds)*time.Second
}

func (c *Cache) entryPath(bound int) string {
	return filepath.Join(c.dir, BuildCacheKey(bound)+".json")
}

func defaultCacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "qprimes"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "qprimes"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "qprimes", "cache"), nil
		}
		return filepath.Join(home, "AppData", "Local", "qprimes", "cache"), nil
	default:
		return filepath.Join(home, ".cache", "qprimes"), nil
	}
}
