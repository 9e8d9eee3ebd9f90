// internal/cache/cache.go
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Cache stores raw fetched markup keyed by URL. Parsed documents are
// exclusively owned by their extractor, so only the pre-parse bytes are
// shared here; every hit is re-parsed into a fresh Document.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, body []byte, ttl time.Duration)
	Delete(key string)
	Clear()
}

type entry struct {
	key       string
	body      []byte
	expiresAt time.Time
}

// MemoryCache is an in-memory byte cache with LRU eviction bounded by
// total payload size.
type MemoryCache struct {
	store   map[string]*list.Element
	lruList *list.List
	mu      sync.Mutex
	maxSize int64
	size    int64
}

// NewMemoryCache creates a cache holding at most maxSizeBytes of page
// bodies.
func NewMemoryCache(maxSizeBytes int64) *MemoryCache {
	if maxSizeBytes <= 0 {
		maxSizeBytes = 64 * 1024 * 1024
	}
	return &MemoryCache{
		store:   make(map[string]*list.Element),
		lruList: list.New(),
		maxSize: maxSizeBytes,
	}
}

// Get returns the cached body for key, expiring stale entries on read.
func (mc *MemoryCache) Get(key string) ([]byte, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	element, exists := mc.store[key]
	if !exists {
		return nil, false
	}

	e := element.Value.(*entry)
	if time.Now().After(e.expiresAt) {
		mc.removeElement(element)
		return nil, false
	}

	mc.lruList.MoveToFront(element)
	log.Debug().Str("key", key).Msg("Cache hit")
	return e.body, true
}

// Set stores body under key for ttl, evicting least-recently-used
// entries until the payload budget holds.
func (mc *MemoryCache) Set(key string, body []byte, ttl time.Duration) {
	if int64(len(body)) > mc.maxSize {
		return
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	if element, exists := mc.store[key]; exists {
		mc.removeElement(element)
	}

	mc.size += int64(len(body))
	for mc.size > mc.maxSize {
		oldest := mc.lruList.Back()
		if oldest == nil {
			break
		}
		mc.removeElement(oldest)
	}

	element := mc.lruList.PushFront(&entry{
		key:       key,
		body:      body,
		expiresAt: time.Now().Add(ttl),
	})
	mc.store[key] = element
}

// Delete removes the entry for key if present.
func (mc *MemoryCache) Delete(key string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if element, exists := mc.store[key]; exists {
		mc.removeElement(element)
	}
}

// Clear drops every entry.
func (mc *MemoryCache) Clear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.store = make(map[string]*list.Element)
	mc.lruList = list.New()
	mc.size = 0
}

// removeElement must be called with the lock held.
func (mc *MemoryCache) removeElement(element *list.Element) {
	e := element.Value.(*entry)
	mc.lruList.Remove(element)
	delete(mc.store, e.key)
	mc.size -= int64(len(e.body))
}
