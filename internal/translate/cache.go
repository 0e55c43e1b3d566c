package translate

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Cache stores completed translations keyed by (text, source, target) so
// repeated phrases do not hit the external service again.
type Cache interface {
	// Get returns the cached translation and whether it was present.
	Get(ctx context.Context, text, sourceLang, targetLang string) (string, bool, error)
	// Set stores a translation.
	Set(ctx context.Context, text, sourceLang, targetLang, translated string) error
}

type memoryEntry struct {
	key       string
	value     string
	expiresAt time.Time
}

// MemoryCache is a bounded in-process cache with TTL expiry. The oldest
// entry is evicted once the bound is reached.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front = oldest
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

// NewMemoryCache creates a cache holding at most maxSize entries for ttl.
func NewMemoryCache(maxSize int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

func cacheKey(text, sourceLang, targetLang string) string {
	return sourceLang + ":" + targetLang + ":" + text
}

// Get returns the cached translation if present and not expired.
func (c *MemoryCache) Get(_ context.Context, text, sourceLang, targetLang string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[cacheKey(text, sourceLang, targetLang)]
	if !ok {
		return "", false, nil
	}
	entry := elem.Value.(*memoryEntry)
	if c.now().After(entry.expiresAt) {
		c.order.Remove(elem)
		delete(c.entries, entry.key)
		return "", false, nil
	}
	return entry.value, true, nil
}

// Set stores a translation, evicting the oldest entry when full.
func (c *MemoryCache) Set(_ context.Context, text, sourceLang, targetLang, translated string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(text, sourceLang, targetLang)
	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.value = translated
		entry.expiresAt = c.now().Add(c.ttl)
		c.order.MoveToBack(elem)
		return nil
	}

	for c.maxSize > 0 && c.order.Len() >= c.maxSize {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*memoryEntry).key)
	}

	c.entries[key] = c.order.PushBack(&memoryEntry{
		key:       key,
		value:     translated,
		expiresAt: c.now().Add(c.ttl),
	})
	return nil
}
