package workspace

import (
	"crypto/sha256"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnana997/designc/pkg/compiler"
)

// defaultCacheSize bounds how many compiled documents stay resident.
const defaultCacheSize = 256

type cacheEntry struct {
	sum [sha256.Size]byte
	out *compiler.Output
}

// CompileCache memoizes compile output per document path, keyed by a
// content hash so a stale entry is never served after an edit. Safe
// for concurrent use.
type CompileCache struct {
	entries *lru.Cache[string, cacheEntry]

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCompileCache creates a cache holding up to size entries
// (0 uses the default).
func NewCompileCache(size int) (*CompileCache, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &CompileCache{entries: entries}, nil
}

// Get returns the cached output for path if the document content is
// unchanged since it was stored.
func (c *CompileCache) Get(path string, content []byte) (*compiler.Output, bool) {
	entry, ok := c.entries.Get(path)
	if !ok || entry.sum != sha256.Sum256(content) {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return entry.out, true
}

// Put stores the compile output for path against its content hash.
func (c *CompileCache) Put(path string, content []byte, out *compiler.Output) {
	c.entries.Add(path, cacheEntry{sum: sha256.Sum256(content), out: out})
}

// Invalidate drops the entry for path, if any.
func (c *CompileCache) Invalidate(path string) {
	c.entries.Remove(path)
}

// Purge drops every entry. Used when the theme changes, since every
// document's token names may shift.
func (c *CompileCache) Purge() {
	c.entries.Purge()
}

// Len returns the number of cached entries.
func (c *CompileCache) Len() int {
	return c.entries.Len()
}

// Stats returns hit/miss counters.
func (c *CompileCache) Stats() CacheStats {
	return CacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.entries.Len(),
	}
}

// CacheStats contains compile cache counters.
type CacheStats struct {
	Hits    int64
	Misses  int64
	Entries int
}
