package tts

import (
	"container/list"
	"sync"
)

type audioKey struct {
	text     string
	language string
}

// AudioCache is a bounded FIFO cache of synthesized clips keyed by
// (text, language), so a phrase spoken repeatedly is synthesized once.
// Owned by the handler layer, never by the relay.
type AudioCache struct {
	mu      sync.Mutex
	entries map[audioKey][]byte
	order   *list.List // front = oldest
	maxSize int
}

// NewAudioCache creates a cache holding at most maxSize clips.
func NewAudioCache(maxSize int) *AudioCache {
	return &AudioCache{
		entries: make(map[audioKey][]byte),
		order:   list.New(),
		maxSize: maxSize,
	}
}

// Get returns the cached clip and whether it was present.
func (c *AudioCache) Get(text, language string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	audio, ok := c.entries[audioKey{text, language}]
	return audio, ok
}

// Put stores a clip, evicting the oldest entry once the bound is reached.
func (c *AudioCache) Put(text, language string, audio []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := audioKey{text, language}
	if _, ok := c.entries[key]; ok {
		c.entries[key] = audio
		return
	}

	for c.maxSize > 0 && c.order.Len() >= c.maxSize {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(audioKey))
	}

	c.entries[key] = audio
	c.order.PushBack(key)
}

// Len returns the number of cached clips.
func (c *AudioCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
