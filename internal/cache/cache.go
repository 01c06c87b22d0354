package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"
)

// Entry records a URL that answered a probe successfully.
type Entry struct {
	URL       string    `json:"url"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Cache stores probe results on disk. A disabled Cache never hits and
// silently drops writes.
type Cache struct {
	dir        string
	ttlSeconds int
	enabled    bool
	now        func() time.Time
}

// New creates a new Cache. If dir is empty, uses the default cache directory.
func New(enabled bool, dir string, ttlSeconds int) (*Cache, error) {
	if !enabled {
		return &Cache{enabled: false, now: time.Now}, nil
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
		now:        time.Now,
	}, nil
}

// Available reports whether url was recorded as available and the record has
// not expired.
func (c *Cache) Available(url string) bool {
	if !c.enabled {
		return false
	}
	entry, err := c.read(c.entryPath(url))
	if err != nil || entry.URL != url {
		return false
	}
	return !c.expired(entry)
}

// MarkAvailable records that url answered a probe.
func (c *Cache) MarkAvailable(url string) error {
	if !c.enabled {
		return nil
	}
	data, err := json.Marshal(Entry{URL: url, CheckedAt: c.now()})
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}
	return os.WriteFile(c.entryPath(url), data, 0o644)
}

// Clear removes all cache entries.
func (c *Cache) Clear() error {
	if !c.enabled || c.dir == "" {
		return nil
	}
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading cache directory: %w", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", e.Name(), err)
		}
	}
	return nil
}

// Record is a stored probe result as listed by [Cache.Records].
type Record struct {
	URL       string    `json:"url"`
	CheckedAt time.Time `json:"checkedAt"`
	Expired   bool      `json:"expired"`
}

// Records lists every readable probe record, sorted by URL. Unreadable files
// are skipped.
func (c *Cache) Records() ([]Record, error) {
	if !c.enabled || c.dir == "" {
		return nil, nil
	}
	files, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading cache directory: %w", err)
	}
	var records []Record
	for _, f := range files {
		if filepath.Ext(f.Name()) != ".json" {
			continue
		}
		entry, err := c.read(filepath.Join(c.dir, f.Name()))
		if err != nil || entry.URL == "" {
			continue
		}
		records = append(records, Record{URL: entry.URL, CheckedAt: entry.CheckedAt, Expired: c.expired(entry)})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].URL < records[j].URL })
	return records, nil
}

// Prune removes expired records and returns how many were removed.
func (c *Cache) Prune() (int, error) {
	records, err := c.Records()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, r := range records {
		if !r.Expired {
			continue
		}
		if err := os.Remove(c.entryPath(r.URL)); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("removing record for %s: %w", r.URL, err)
		}
		removed++
	}
	return removed, nil
}

// Summary counts the recorded source archives.
type Summary struct {
	Dir      string        `json:"dir"`
	Recorded int           `json:"recorded"`
	Expired  int           `json:"expired"`
	TTL      time.Duration `json:"ttl"`
}

// Summarize counts the records in the cache.
func (c *Cache) Summarize() (Summary, error) {
	sum := Summary{Dir: c.dir, TTL: time.Duration(c.ttlSeconds) * time.Second}
	records, err := c.Records()
	if err != nil {
		return sum, err
	}
	sum.Recorded = len(records)
	for _, r := range records {
		if r.Expired {
			sum.Expired++
		}
	}
	return sum, nil
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

func (c *Cache) read(path string) (Entry, error) {
	var entry Entry
	data, err := os.ReadFile(path)
	if err != nil {
		return entry, err
	}
	err = json.Unmarshal(data, &entry)
	return entry, err
}

func (c *Cache) expired(e Entry) bool {
	return c.ttlSeconds > 0 && c.now().Sub(e.CheckedAt) > time.Duration(c.ttlSeconds)*time.Second
}

func (c *Cache) entryPath(url string) string {
	return filepath.Join(c.dir, HashKey(url)+".json")
}

func defaultCacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "dashreview"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "dashreview"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "dashreview", "cache"), nil
		}
		return filepath.Join(home, "AppData", "Local", "dashreview", "cache"), nil
	default:
		return filepath.Join(home, ".cache", "dashreview"), nil
	}
}
