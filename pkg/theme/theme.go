// Package theme loads user color themes from config files. A theme
// maps canonical hex values to the token names the user already uses,
// so the compiler emits --color-brand-500 instead of an invented name.
//
// Three formats are supported:
//   - JSON (.designc/theme.json): flat name -> hex, or {"colors": {...}}
//     with arbitrary nesting
//   - YAML (theme.yaml / theme.yml): same shape as JSON
//   - JS/TS tailwind configs, read with tree-sitter so require()/export
//     wrappers and helper calls do not matter
package theme

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gnana997/designc/pkg/parser"
)

// Load reads a theme file and returns hex -> token name. The parser
// manager is only used for JS/TS configs and may be shared with other
// loaders.
func Load(path string, pm *parser.ParserManager, logger *slog.Logger) (map[string]string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadStructured(data, path, json.Unmarshal)
	case ".yaml", ".yml":
		return loadStructured(data, path, yaml.Unmarshal)
	case ".js", ".cjs", ".mjs", ".ts", ".mts", ".cts":
		ex := NewExtractor(pm, logger)
		defer ex.Close()
		return ex.ExtractColors(data, path)
	default:
		return nil, fmt.Errorf("unsupported theme format: %s", path)
	}
}

// loadStructured handles the JSON/YAML shapes. A top-level "colors"
// map takes precedence over the root object, so tailwind-like files
// and flat files both work.
func loadStructured(data []byte, path string, unmarshal func([]byte, any) error) (map[string]string, error) {
	var root map[string]any
	if err := unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse theme %q: %w", path, err)
	}

	src := root
	if nested, ok := root["colors"].(map[string]any); ok {
		src = nested
	}

	colors := make(map[string]string)
	flattenColors(src, nil, colors)
	return colors, nil
}

// flattenColors walks a nested name -> hex map, joining nested keys
// with "-" and inverting to hex -> name. Keys are visited in sorted
// order so the first-definition-wins rule is deterministic.
func flattenColors(m map[string]any, prefix []string, out map[string]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		name := prefix
		if k != "DEFAULT" {
			name = append(append([]string{}, prefix...), k)
		}

		switch v := m[k].(type) {
		case string:
			hex, ok := normalizeHex(v)
			if !ok || len(name) == 0 {
				continue
			}
			token := strings.Join(name, "-")
			if _, seen := out[hex]; !seen {
				out[hex] = token
			}
		case map[string]any:
			flattenColors(v, name, out)
		}
	}
}
