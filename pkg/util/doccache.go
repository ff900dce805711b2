// DocCache provides fast repeated access to design document files
// using memory-mapped reads.
//
// Batch compiles and the watch loop read the same documents over and
// over; mapping them once avoids re-reading multi-megabyte JSON trees
// from disk on every recompile. Only accessed pages are loaded into
// RAM, and mmap failures fall back to os.ReadFile transparently.
package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// DocCache is a lazy, thread-safe cache of mapped document files.
// Reads take a shared lock; loads and Close take an exclusive one.
type DocCache struct {
	maxFiles int
	logger   *slog.Logger

	mu       sync.RWMutex
	mapped   map[string]mmap.MMap
	files    map[string]*os.File
	fallback map[string][]byte

	statsMu sync.Mutex
	stats   DocCacheStats
}

// DocCacheStats tracks cache behavior for observability.
type DocCacheStats struct {
	Hits         int64
	Misses       int64
	MmapFailures int64
	FilesCached  int
}

// NewDocCache builds an empty cache. maxFiles bounds the number of
// cached documents (0 means unlimited); the bound exists to keep file
// descriptors in check on huge workspaces.
func NewDocCache(maxFiles int, logger *slog.Logger) *DocCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocCache{
		maxFiles: maxFiles,
		logger:   logger,
		mapped:   make(map[string]mmap.MMap),
		files:    make(map[string]*os.File),
		fallback: make(map[string][]byte),
	}
}

// Get returns the document bytes, mapping the file on first access.
// The returned slice is valid until Invalidate or Close; callers must
// not hold it across either.
func (dc *DocCache) Get(path string) ([]byte, error) {
	dc.mu.RLock()
	if data, ok := dc.mapped[path]; ok {
		dc.mu.RUnlock()
		dc.recordHit()
		return data, nil
	}
	if data, ok := dc.fallback[path]; ok {
		dc.mu.RUnlock()
		dc.recordHit()
		return data, nil
	}
	dc.mu.RUnlock()

	dc.mu.Lock()
	defer dc.mu.Unlock()

	// Another goroutine may have loaded it while we waited.
	if data, ok := dc.mapped[path]; ok {
		dc.recordHit()
		return data, nil
	}
	if data, ok := dc.fallback[path]; ok {
		dc.recordHit()
		return data, nil
	}

	if dc.maxFiles > 0 && len(dc.mapped)+len(dc.fallback) >= dc.maxFiles {
		return nil, fmt.Errorf("document cache limit reached: %d files", dc.maxFiles)
	}
	dc.recordMiss()
	return dc.loadLocked(path)
}

func (dc *DocCache) loadLocked(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document %q: %w", path, err)
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat document %q: %w", path, err)
	}

	// Zero-byte files cannot be mapped.
	if stat.Size() == 0 {
		f.Close()
		dc.fallback[path] = []byte{}
		return []byte{}, nil
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		dc.logger.Warn("mmap failed, reading document into memory",
			"path", path, "size", stat.Size(), "error", err)
		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("mmap and read both failed for %q: %w", path, readErr)
		}
		dc.recordMmapFailure()
		dc.fallback[path] = raw
		return raw, nil
	}

	dc.mapped[path] = data
	dc.files[path] = f
	return data, nil
}

// Invalidate drops a document from the cache, unmapping it if mapped.
// Called by the watcher when a document changes on disk.
func (dc *DocCache) Invalidate(path string) {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	if data, ok := dc.mapped[path]; ok {
		if err := data.Unmap(); err != nil {
			dc.logger.Warn("failed to unmap document", "path", path, "error", err)
		}
		delete(dc.mapped, path)
	}
	if f, ok := dc.files[path]; ok {
		f.Close()
		delete(dc.files, path)
	}
	delete(dc.fallback, path)
}

// Size returns the number of cached documents.
func (dc *DocCache) Size() int {
	dc.mu.RLock()
	defer dc.mu.RUnlock()
	return len(dc.mapped) + len(dc.fallback)
}

// Stats returns a snapshot of cache metrics.
func (dc *DocCache) Stats() DocCacheStats {
	dc.mu.RLock()
	cached := len(dc.mapped) + len(dc.fallback)
	dc.mu.RUnlock()

	dc.statsMu.Lock()
	defer dc.statsMu.Unlock()
	s := dc.stats
	s.FilesCached = cached
	return s
}

// Close unmaps every document and releases file descriptors. The
// cache is reusable afterwards but starts cold.
func (dc *DocCache) Close() error {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	var errs []error
	for path, data := range dc.mapped {
		if err := data.Unmap(); err != nil {
			errs = append(errs, fmt.Errorf("unmap %q: %w", path, err))
		}
	}
	for _, f := range dc.files {
		f.Close()
	}
	dc.mapped = make(map[string]mmap.MMap)
	dc.files = make(map[string]*os.File)
	dc.fallback = make(map[string][]byte)

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}
	return nil
}

func (dc *DocCache) recordHit() {
	dc.statsMu.Lock()
	dc.stats.Hits++
	dc.statsMu.Unlock()
}

func (dc *DocCache) recordMiss() {
	dc.statsMu.Lock()
	dc.stats.Misses++
	dc.statsMu.Unlock()
}

func (dc *DocCache) recordMmapFailure() {
	dc.statsMu.Lock()
	dc.stats.MmapFailures++
	dc.statsMu.Unlock()
}
