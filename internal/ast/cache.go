package ast

import (
	"sync"
	"time"

	"github.com/repopack/repopack/internal/pkg/hash"
)

// DefaultCacheTTL bounds how stale a cached tree may be.
const DefaultCacheTTL = 5 * time.Minute

type cacheEntry struct {
	root       *Node
	contentLen int
	contentSHA string
	storedAt   time.Time
}

// Cache holds parsed trees keyed by path and a fast content hash.
// The key hash is non-cryptographic, so entries also record the content
// length and SHA256; a hit is only trusted when both match, otherwise
// it is treated as a miss and the caller re-parses.
//
// Eviction is lazy: expired entries are swept on every Set. Not
// size-bounded; a cache lives only as long as its owning processor.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates a cache with the given TTL. ttl <= 0 uses the default.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached tree for path/content, if fresh and verified.
func (c *Cache) Get(path string, content []byte) (*Node, bool) {
	key := hash.CacheKey(path, content)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	// Re-verify content identity; a key collision only costs a re-parse.
	if entry.contentLen != len(content) || entry.contentSHA != hash.SHA256(content) {
		return nil, false
	}
	return entry.root, true
}

// Set stores a parsed tree and sweeps expired entries.
func (c *Cache) Set(path string, content []byte, root *Node) {
	key := hash.CacheKey(path, content)

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.Sub(e.storedAt) > c.ttl {
			delete(c.entries, k)
		}
	}

	c.entries[key] = cacheEntry{
		root:       root,
		contentLen: len(content),
		contentSHA: hash.SHA256(content),
		storedAt:   now,
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
