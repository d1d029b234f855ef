// Package cache persists reasoning-service classification replies between
// runs, keyed by stage and prompt hash.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/aimy-go/internal/ports"
)

type entry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// FileCache stores replies as JSON blobs, one file per key, with TTL expiry
// and oldest-first eviction past maxEntries.
type FileCache struct {
	dir        string
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
}

var _ ports.CacheStore = (*FileCache)(nil)

// New returns a cache rooted at dir. maxEntries <= 0 disables eviction.
func New(dir string, maxEntries int, ttl time.Duration) *FileCache {
	return &FileCache{dir: dir, maxEntries: maxEntries, ttl: ttl}
}

// Get retrieves a cached reply. Expired entries are removed on read.
func (c *FileCache) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, nil
	}
	path := c.pathFor(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return "", false, err
	}
	if c.ttl > 0 && time.Since(e.CreatedAt) > c.ttl {
		_ = os.Remove(path)
		return "", false, nil
	}
	return e.Value, true, nil
}

// Set stores a reply.
func (c *FileCache) Set(key, value string) error {
	if key == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(entry{Key: key, Value: value, CreatedAt: time.Now()})
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.pathFor(key), data, 0o644); err != nil {
		return err
	}
	return c.evictIfNeeded()
}

// Clear removes all cached entries.
func (c *FileCache) Clear() error {
	return os.RemoveAll(c.dir)
}

var keySanitizer = strings.NewReplacer(":", "_", "/", "_")

func (c *FileCache) pathFor(key string) string {
	return filepath.Join(c.dir, keySanitizer.Replace(key)+".json")
}

func (c *FileCache) evictIfNeeded() error {
	if c.maxEntries <= 0 {
		return nil
	}
	files, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(files) <= c.maxEntries {
		return nil
	}
	type fileInfo struct {
		name string
		mod  time.Time
	}
	var infos []fileInfo
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		infos = append(infos, fileInfo{name: f.Name(), mod: info.ModTime()})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].mod.Before(infos[j].mod) })
	for len(infos) > c.maxEntries {
		old := infos[0]
		_ = os.Remove(filepath.Join(c.dir, old.name))
		infos = infos[1:]
	}
	return nil
}
