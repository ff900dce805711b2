package theme

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// discoverPatterns lists theme file locations in priority order. An
// explicit .designc theme beats a tailwind config, and JSON beats YAML
// within the .designc directory.
var discoverPatterns = []string{
	".designc/theme.json",
	".designc/theme.{yaml,yml}",
	"tailwind.config.{js,ts,cjs,mjs}",
}

// Discover searches rootDir for a theme file and returns its path, or
// "" when the project has none. Only the workspace root is searched;
// nested tailwind configs belong to nested projects.
func Discover(rootDir string) string {
	entries, err := os.ReadDir(rootDir)
	if err != nil {
		return ""
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && e.Name() == ".designc" {
			sub, err := os.ReadDir(filepath.Join(rootDir, ".designc"))
			if err == nil {
				for _, s := range sub {
					if !s.IsDir() {
						names = append(names, filepath.Join(".designc", s.Name()))
					}
				}
			}
			continue
		}
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}

	for _, pattern := range discoverPatterns {
		for _, name := range names {
			ok, err := doublestar.Match(pattern, filepath.ToSlash(name))
			if err == nil && ok {
				return filepath.Join(rootDir, name)
			}
		}
	}
	return ""
}
