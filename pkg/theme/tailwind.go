package theme

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/designc/pkg/geom"
	"github.com/gnana997/designc/pkg/parser"
)

// colorPairQuery matches object pairs whose value is a string literal.
// Hex filtering and scoping under a "colors" key happen in Go, where we
// can climb the ancestor chain to build the full token name.
const colorPairQuery = `
(pair
  key: [(property_identifier) (string) (number)] @color.key
  value: (string (string_fragment) @color.value))
`

// Extractor pulls color definitions out of tailwind-style JS/TS config
// files. Queries are compiled lazily per language and cached.
type Extractor struct {
	pm     *parser.ParserManager
	logger *slog.Logger

	mutex sync.Mutex
	cache map[parser.Language]*ts.Query
}

// NewExtractor creates an extractor backed by the given parser manager.
func NewExtractor(pm *parser.ParserManager, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		pm:     pm,
		logger: logger,
		cache:  make(map[parser.Language]*ts.Query),
	}
}

// Close releases compiled queries. The owning parser manager is not
// closed.
func (e *Extractor) Close() {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	for lang, q := range e.cache {
		if q != nil {
			q.Close()
		}
		delete(e.cache, lang)
	}
}

// ExtractColors parses a JS/TS config file and returns hex -> token
// name for every string color found under a "colors" object. Nested
// keys are joined with "-" (colors.brand.500 becomes brand-500) and a
// DEFAULT key is dropped, matching tailwind's naming. The first
// definition of a hex value in document order wins.
func (e *Extractor) ExtractColors(source []byte, path string) (map[string]string, error) {
	lang := parser.DetectLanguage(path)
	if lang == parser.LanguageUnknown {
		return nil, fmt.Errorf("unsupported config file: %s", path)
	}

	tree, err := e.pm.ParseFile(source, path)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}
	defer tree.Close()

	query, err := e.getQuery(lang)
	if err != nil {
		return nil, err
	}

	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	iter := cursor.Matches(query, tree.RootNode(), source)
	captureNames := query.CaptureNames()

	colors := make(map[string]string)
	for {
		match := iter.Next()
		if match == nil {
			break
		}

		var valueNode *ts.Node
		for i := range match.Captures {
			capture := &match.Captures[i]
			if int(capture.Index) < len(captureNames) && captureNames[capture.Index] == "color.value" {
				valueNode = &capture.Node
			}
		}
		if valueNode == nil {
			continue
		}

		hex, ok := normalizeHex(valueNode.Utf8Text(source))
		if !ok {
			continue
		}

		name, ok := tokenNameFor(valueNode, source)
		if !ok {
			continue
		}

		if _, seen := colors[hex]; !seen {
			colors[hex] = name
		}
	}

	e.logger.Debug("extracted theme colors",
		"path", path,
		"count", len(colors))

	return colors, nil
}

func (e *Extractor) getQuery(lang parser.Language) (*ts.Query, error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if q, ok := e.cache[lang]; ok {
		return q, nil
	}

	langPtr, err := e.pm.GetLanguagePointer(lang, false)
	if err != nil {
		return nil, err
	}

	query, qerr := ts.NewQuery(ts.NewLanguage(langPtr), colorPairQuery)
	if qerr != nil {
		return nil, fmt.Errorf("failed to compile color query for %s: %s", lang, qerr.Message)
	}

	e.cache[lang] = query
	return query, nil
}

// tokenNameFor climbs from a string value node through enclosing pairs,
// collecting key names until it passes a "colors" key. Returns false
// when the value is not nested under a colors object at all.
func tokenNameFor(valueNode *ts.Node, source []byte) (string, bool) {
	var segments []string
	underColors := false

	for n := valueNode.Parent(); n != nil; n = n.Parent() {
		if n.Kind() != "pair" {
			continue
		}
		keyNode := n.ChildByFieldName("key")
		if keyNode == nil {
			continue
		}
		key := pairKeyText(keyNode, source)
		if key == "colors" {
			underColors = true
			break
		}
		if key == "DEFAULT" {
			continue
		}
		segments = append(segments, key)
	}

	if !underColors || len(segments) == 0 {
		return "", false
	}

	// Segments were collected innermost first.
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, "-"), true
}

// pairKeyText returns the key text with string quotes stripped.
func pairKeyText(keyNode *ts.Node, source []byte) string {
	text := keyNode.Utf8Text(source)
	if keyNode.Kind() == "string" {
		text = strings.Trim(text, `"'`)
	}
	return text
}

// normalizeHex validates a color string and canonicalizes it to
// lowercase six-digit form, matching the hex form documents use.
func normalizeHex(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return "", false
	}
	c, err := geom.ParseHex(s)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}
