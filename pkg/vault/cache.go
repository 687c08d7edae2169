package vault

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/gantt/pkg/item"
)

// Cache is a diskv-backed parse cache: the items extracted from a document,
// keyed by its vault path and stamped with the modification time that
// produced them. Rescans skip re-parsing documents whose mtime is unchanged.
type Cache struct {
	d *diskv.Diskv
}

// OpenCache creates the cache rooted at basePath. The directory is created
// lazily on first write.
func OpenCache(basePath string) *Cache {
	return &Cache{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

type cacheRecord struct {
	ModTime time.Time   `json:"modTime"`
	Items   []item.Item `json:"items"`
}

func cacheKey(path string) string {
	return base64.URLEncoding.EncodeToString([]byte(path))
}

// Get returns the cached items for a document if the cached entry was built
// from the same modification time. A stale or missing entry reports false.
func (c *Cache) Get(path string, modTime time.Time) ([]item.Item, bool) {
	data, err := c.d.Read(cacheKey(path))
	if err != nil {
		return nil, false
	}
	var rec cacheRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false
	}
	if !rec.ModTime.Equal(modTime) {
		return nil, false
	}
	return rec.Items, true
}

// Put records the items parsed from a document at the given modification
// time. Cache write failures are returned but safe to ignore; the cache is
// a pure accelerator.
func (c *Cache) Put(path string, modTime time.Time, items []item.Item) error {
	data, err := json.Marshal(cacheRecord{ModTime: modTime, Items: items})
	if err != nil {
		return err
	}
	return c.d.Write(cacheKey(path), data)
}

// Invalidate drops the cached entry for a document.
func (c *Cache) Invalidate(path string) {
	_ = c.d.Erase(cacheKey(path))
}
