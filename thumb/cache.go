package thumb

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// memCache is a bounded LRU of finished thumbnails. A nil *memCache
// caches nothing.
type memCache struct {
	mu    sync.Mutex
	limit int
	order *list.List
	items map[string]*list.Element
}

type memEntry struct {
	key string
	img image.Image
}

func newMemCache(limit int) *memCache {
	if limit <= 0 {
		return nil
	}
	return &memCache{limit: limit, order: list.New(), items: make(map[string]*list.Element)}
}

func (c *memCache) get(key string) (image.Image, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*memEntry).img, true
}

func (c *memCache) put(key string, img image.Image) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		el.Value.(*memEntry).img = img
		c.order.MoveToFront(el)
		return
	}
	c.items[key] = c.order.PushFront(&memEntry{key: key, img: img})
	for c.order.Len() > c.limit {
		last := c.order.Back()
		c.order.Remove(last)
		delete(c.items, last.Value.(*memEntry).key)
	}
}

func (c *memCache) len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// diskCache stores finished thumbnails as PNG files. An empty dir
// disables it.
type diskCache struct {
	dir string
}

func (c diskCache) path(key string) string {
	return filepath.Join(c.dir, key[:2], key+".png")
}

func (c diskCache) get(key string) (image.Image, error) {
	if c.dir == "" {
		return nil, os.ErrNotExist
	}
	f, err := os.Open(c.path(key))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode cached thumbnail: %w", err)
	}
	return img, nil
}

func (c diskCache) put(key string, img image.Image) error {
	if c.dir == "" {
		return nil
	}
	p := c.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".thumb-*")
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cache file: %w", err)
	}
	return os.Rename(tmp.Name(), p)
}

// cacheKey identifies a thumbnail of uri at a given size.
func cacheKey(uri string, w, h, r int) string {
	sum := sha256.Sum256([]byte(uri + "\x00" + strconv.Itoa(w) + "x" + strconv.Itoa(h) + "r" + strconv.Itoa(r)))
	return hex.EncodeToString(sum[:])
}
