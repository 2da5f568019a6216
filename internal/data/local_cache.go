package data

import (
	"container/list"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/target/sortparam/internal/core"
)

var _ core.CacheRepository = (*LocalCache)(nil)

// LocalCache is a small in-memory LRU with per-entry TTL implementing core.CacheRepository.
// It stands in for Redis when the memory cache backend is selected.
// Concurrency: methods are safe for concurrent use.
type LocalCache struct {
	mu    sync.Mutex
	cap   int
	ll    *list.List               // front = most-recently used
	items map[string]*list.Element // key -> element
	now   func() time.Time
}

type localEntry struct {
	key    string
	value  []byte
	expiry time.Time // zero means no expiry
}

// LocalCacheConfig groups constructor options.
type LocalCacheConfig struct {
	Capacity int
	Now      func() time.Time
}

// NewLocalCache creates a new LocalCache.
func NewLocalCache(cfg LocalCacheConfig) *LocalCache {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = 1024
	}
	nowFn := cfg.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	return &LocalCache{
		cap:   capacity,
		ll:    list.New(),
		items: make(map[string]*list.Element, capacity),
		now:   nowFn,
	}
}

// Get returns the value for key, or nil when missing or expired.
func (c *LocalCache) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	el, found := c.items[key]
	if !found {
		return nil, nil
	}
	ent, _ := el.Value.(*localEntry)
	if !ent.expiry.IsZero() && c.now().After(ent.expiry) {
		c.removeElement(el)
		return nil, nil
	}
	c.ll.MoveToFront(el)
	return ent.value, nil
}

// Set inserts or updates a value. ttl <= 0 means no expiration.
func (c *LocalCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var exp time.Time
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}

	if el, found := c.items[key]; found {
		ent, _ := el.Value.(*localEntry)
		ent.value = value
		ent.expiry = exp
		c.ll.MoveToFront(el)
		return nil
	}

	c.items[key] = c.ll.PushFront(&localEntry{key: key, value: value, expiry: exp})
	for c.ll.Len() > c.cap {
		c.removeElement(c.ll.Back())
	}
	return nil
}

// Delete removes a key and reports whether it was present.
func (c *LocalCache) Delete(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if ok {
		c.removeElement(el)
	}
	return ok, nil
}

// Health always succeeds.
func (c *LocalCache) Health(context.Context) error { return nil }

// Len returns the current number of entries, expired ones included.
func (c *LocalCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// caller must hold c.mu.
func (c *LocalCache) removeElement(el *list.Element) {
	c.ll.Remove(el)
	if ent, ok := el.Value.(*localEntry); ok {
		delete(c.items, ent.key)
	}
}
