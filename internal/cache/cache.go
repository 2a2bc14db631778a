// Package cache provides the bounded, fixed-TTL in-memory cache for fully
// formed search response envelopes.
package cache

import (
	"sync"
	"time"

	"github.com/couchcryptid/top-places-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

// Cache policy constants. Not runtime-configurable.
const (
	DefaultMaxEntries = 500
	DefaultTTL        = 10 * time.Minute
)

// ResponseCache maps normalized query keys to response envelopes. Entries
// expire after a fixed TTL; when capacity is exceeded the least recently used
// entry is evicted. Safe for concurrent use. Entries are never mutated in
// place: a refresh stores a new value under the same key.
type ResponseCache struct {
	maxEntries int
	ttl        time.Duration
	clock      clockwork.Clock

	mu      sync.Mutex
	entries map[string]*entry
	head    *entry // most recently used
	tail    *entry // least recently used
}

type entry struct {
	key       string
	value     *domain.SearchResponse
	expiresAt time.Time
	prev      *entry
	next      *entry
}

// New creates a ResponseCache. A nil clock selects the real clock; tests pass
// a clockwork fake to control expiry deterministically.
func New(maxEntries int, ttl time.Duration, clock clockwork.Clock) *ResponseCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ResponseCache{
		maxEntries: maxEntries,
		ttl:        ttl,
		clock:      clock,
		entries:    make(map[string]*entry),
	}
}

// Get returns the cached response for key, if present and unexpired. Expired
// entries are dropped and reported as misses.
func (c *ResponseCache) Get(key string) (*domain.SearchResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.clock.Now().Before(e.expiresAt) {
		c.removeEntry(e)
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

// Set stores value under key with a fresh TTL, evicting the least recently
// used entry if the cache is over capacity.
func (c *ResponseCache) Set(key string, value *domain.SearchResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.clock.Now().Add(c.ttl)

	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value, expiresAt: expiresAt}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

// Len reports the current occupancy, counting only unexpired entries.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	n := 0
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			n++
		}
	}
	return n
}

func (c *ResponseCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.addToFront(e)
}

func (c *ResponseCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *ResponseCache) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *ResponseCache) removeEntry(e *entry) {
	delete(c.entries, e.key)
	c.unlink(e)
}

func (c *ResponseCache) evictTail() {
	if c.tail == nil {
		return
	}
	c.removeEntry(c.tail)
}
