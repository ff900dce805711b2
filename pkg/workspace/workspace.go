// Package workspace compiles design documents in bulk: discovery of
// *.design.json files, content-hash caching of compile output, a
// worker pool for batch runs, and a watcher that recompiles on change.
package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gnana997/designc/pkg/compiler"
	"github.com/gnana997/designc/pkg/node"
	"github.com/gnana997/designc/pkg/parser"
	"github.com/gnana997/designc/pkg/theme"
	"github.com/gnana997/designc/pkg/util"
)

// Options configures a Workspace.
type Options struct {
	// ThemePath points at an explicit theme file. Empty enables
	// auto-discovery under the workspace root.
	ThemePath string

	// Scan overrides document discovery patterns.
	Scan ScanConfig

	// Exporter overrides the asset exporter passed to the compiler.
	Exporter compiler.Exporter

	// CacheSize bounds the compile cache (0 uses the default).
	CacheSize int

	Logger *slog.Logger
}

// Workspace ties document discovery, the document byte cache, the
// compile cache, and theme loading together over one root directory.
type Workspace struct {
	root   string
	scan   ScanConfig
	logger *slog.Logger

	docs  *util.DocCache
	cache *CompileCache

	exporter compiler.Exporter

	themeMu   sync.RWMutex
	themePath string
	themeMap  map[string]string

	parsers *parser.ParserManager
}

// New opens a workspace rooted at rootDir and loads its theme, if any.
func New(rootDir string, opts Options) (*Workspace, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cache, err := NewCompileCache(opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create compile cache: %w", err)
	}

	ws := &Workspace{
		root:     rootDir,
		scan:     opts.Scan,
		logger:   logger,
		docs:     util.NewDocCache(0, logger),
		cache:    cache,
		exporter: opts.Exporter,
		parsers:  parser.NewParserManager(logger),
	}

	ws.themePath = opts.ThemePath
	if ws.themePath == "" {
		ws.themePath = theme.Discover(rootDir)
	}
	if err := ws.ReloadTheme(); err != nil {
		ws.Close()
		return nil, err
	}

	return ws, nil
}

// Root returns the workspace root directory.
func (ws *Workspace) Root() string {
	return ws.root
}

// ThemePath returns the active theme file, or "" when none was found.
func (ws *Workspace) ThemePath() string {
	ws.themeMu.RLock()
	defer ws.themeMu.RUnlock()
	return ws.themePath
}

// Theme returns a copy of the active hex -> token name mapping.
func (ws *Workspace) Theme() map[string]string {
	ws.themeMu.RLock()
	defer ws.themeMu.RUnlock()

	out := make(map[string]string, len(ws.themeMap))
	for k, v := range ws.themeMap {
		out[k] = v
	}
	return out
}

// ReloadTheme re-reads the theme file and purges the compile cache,
// since every document's color names may have shifted.
func (ws *Workspace) ReloadTheme() error {
	ws.themeMu.Lock()
	defer ws.themeMu.Unlock()

	if ws.themePath == "" {
		ws.themeMap = nil
		return nil
	}

	colors, err := theme.Load(ws.themePath, ws.parsers, ws.logger)
	if err != nil {
		return fmt.Errorf("load theme: %w", err)
	}
	ws.themeMap = colors
	ws.cache.Purge()

	ws.logger.Info("theme loaded", "path", ws.themePath, "colors", len(colors))
	return nil
}

// Documents returns the sorted absolute paths of all design documents
// under the workspace root.
func (ws *Workspace) Documents() ([]string, error) {
	return DiscoverDocuments(ws.root, ws.scan)
}

// CompileFile compiles a single document, serving from the compile
// cache when the content is unchanged.
func (ws *Workspace) CompileFile(ctx context.Context, path string) (*compiler.Output, error) {
	content, err := ws.docs.Get(path)
	if err != nil {
		return nil, err
	}

	if out, ok := ws.cache.Get(path, content); ok {
		return out, nil
	}

	doc, _, err := node.LoadFromBytes(content)
	if err != nil {
		return nil, fmt.Errorf("load document %q: %w", path, err)
	}

	out, err := compiler.Compile(ctx, doc, compiler.Options{
		Theme:    ws.Theme(),
		Exporter: ws.exporter,
		Logger:   ws.logger,
	})
	if err != nil {
		return nil, err
	}

	ws.cache.Put(path, content, out)
	return out, nil
}

// CompileAll compiles every document in the workspace using a worker
// pool. Returns outputs keyed by path plus per-document failures; the
// error is reserved for discovery problems.
func (ws *Workspace) CompileAll(ctx context.Context, numWorkers int) (map[string]*compiler.Output, []CompileError, error) {
	paths, err := ws.Documents()
	if err != nil {
		return nil, nil, err
	}

	pool := NewPool(ctx, numWorkers, ws.CompileFile, ws.logger)
	pool.Start()
	defer pool.Stop()

	go func() {
		for i, path := range paths {
			if err := pool.Submit(CompileJob{Path: path, JobID: i}); err != nil {
				return
			}
		}
		pool.FinishSubmitting()
	}()

	outputs := make(map[string]*compiler.Output, len(paths))
	var failures []CompileError

	for range paths {
		select {
		case res := <-pool.Results():
			outputs[res.Path] = res.Output
		case cerr := <-pool.Errors():
			failures = append(failures, cerr)
		case <-ctx.Done():
			return outputs, failures, ctx.Err()
		}
	}

	return outputs, failures, nil
}

// Invalidate drops cached state for a document after an on-disk change.
func (ws *Workspace) Invalidate(path string) {
	ws.docs.Invalidate(path)
	ws.cache.Invalidate(path)
}

// CacheStats returns compile cache counters.
func (ws *Workspace) CacheStats() CacheStats {
	return ws.cache.Stats()
}

// Close releases the document cache and parser pools.
func (ws *Workspace) Close() error {
	err := ws.docs.Close()
	if cerr := ws.parsers.Close(); err == nil {
		err = cerr
	}
	return err
}
