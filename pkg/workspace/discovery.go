package workspace

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ScanConfig controls document discovery.
type ScanConfig struct {
	// Include lists glob patterns for design documents. Empty means
	// the default **/*.design.json pattern.
	Include []string

	// Exclude lists glob patterns to skip. Matched directories are
	// pruned from the walk entirely.
	Exclude []string
}

// DefaultScanConfig returns the standard discovery configuration.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Include: []string{"**/*.design.json"},
		Exclude: []string{
			"**/node_modules/**",
			"**/.git/**",
			"**/dist/**",
			"**/build/**",
		},
	}
}

// DiscoverDocuments walks rootDir applying include/exclude globs from
// cfg. Returns a sorted slice of absolute file paths so batch output
// order is deterministic.
func DiscoverDocuments(rootDir string, cfg ScanConfig) ([]string, error) {
	if len(cfg.Include) == 0 {
		cfg.Include = DefaultScanConfig().Include
	}

	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}
	for _, pattern := range cfg.Include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	var files []string

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Continue walking on errors.
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		for _, pattern := range cfg.Exclude {
			matched, _ := doublestar.PathMatch(pattern, relPath)
			if matched {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}

		for _, pattern := range cfg.Include {
			if m, _ := doublestar.PathMatch(pattern, relPath); m {
				files = append(files, path)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
