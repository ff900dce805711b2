// Package semantic maps design nodes to output tags. Detection runs in
// a fixed precedence: text nodes by font-size thresholds, then named
// rules against the layer name, then structural heuristics, then the
// generic container fallback.
package semantic

import (
	"math"
	"regexp"
	"strings"

	"github.com/gnana997/designc/pkg/node"
)

// Classification is the derived markup decision for one node. Computed
// fresh per node per compile; never persisted.
type Classification struct {
	Tag          string
	ExtraClasses []string
	SelfClosing  bool
	Attrs        [][2]string // ordered; map iteration would break determinism
	WrapChildren string      // wrapper tag for each child ("li"), or ""
}

// nameRule is one layer-name pattern with its resulting classification.
type nameRule struct {
	pattern *regexp.Regexp
	build   func() Classification
}

// Name rules are tested in order; first match wins.
var nameRules = []nameRule{
	{regexp.MustCompile(`button|btn|cta`), func() Classification {
		return Classification{Tag: "button"}
	}},
	{regexp.MustCompile(`link|anchor`), func() Classification {
		return Classification{Tag: "a", Attrs: [][2]string{{"href", "#"}}}
	}},
	{regexp.MustCompile(`navbar|nav\b|\bnav`), func() Classification {
		return Classification{Tag: "nav"}
	}},
	{regexp.MustCompile(`header`), func() Classification {
		return Classification{Tag: "header"}
	}},
	{regexp.MustCompile(`footer`), func() Classification {
		return Classification{Tag: "footer"}
	}},
	{regexp.MustCompile(`sidebar|aside`), func() Classification {
		return Classification{Tag: "aside"}
	}},
	{regexp.MustCompile(`checkbox`), func() Classification {
		return Classification{Tag: "input", SelfClosing: true, Attrs: [][2]string{{"type", "checkbox"}}}
	}},
	{regexp.MustCompile(`radio`), func() Classification {
		return Classification{Tag: "input", SelfClosing: true, Attrs: [][2]string{{"type", "radio"}}}
	}},
	{regexp.MustCompile(`input|textfield|text field`), func() Classification {
		return Classification{Tag: "input", SelfClosing: true, Attrs: [][2]string{{"type", "text"}}}
	}},
	{regexp.MustCompile(`divider|separator`), func() Classification {
		return Classification{Tag: "hr", SelfClosing: true}
	}},
	{regexp.MustCompile(`badge|tag|chip`), func() Classification {
		return Classification{Tag: "span"}
	}},
}

// Structural heuristic constants. Calibrated against real documents;
// treat as fixed, not derived.
const (
	buttonMaxWidth  = 300.0
	buttonMaxHeight = 60.0
	listMinChildren = 3
	listHeightTol   = 0.3
	hrThinPx        = 3.0
	hrLongPx        = 30.0
)

// Detect classifies a node. isRoot selects the generic fallback tag
// (section at the tree root, div elsewhere).
func Detect(n *node.Node, isRoot bool) Classification {
	// 1. Text nodes always map by size; layer names never override.
	if n.Kind == node.KindText {
		return Classification{Tag: headingTag(n)}
	}

	// 2. Named rules.
	name := strings.ToLower(n.Name)
	for _, r := range nameRules {
		if r.pattern.MatchString(name) {
			return r.build()
		}
	}

	// 3. Structural heuristics.
	if c, ok := detectStructural(n); ok {
		return c
	}

	// 4. Generic container.
	if isRoot {
		return Classification{Tag: "section"}
	}
	return Classification{Tag: "div"}
}

// headingTag buckets a text node's font size into heading levels.
func headingTag(n *node.Node) string {
	size := 16.0
	if n.Type != nil && n.Type.FontSizePx != nil {
		size = *n.Type.FontSizePx
	}
	switch {
	case size >= 32:
		return "h1"
	case size >= 24:
		return "h2"
	case size >= 20:
		return "h3"
	case size >= 18:
		return "h4"
	default:
		return "p"
	}
}

func detectStructural(n *node.Node) (Classification, bool) {
	if isThinSeparator(n) {
		return Classification{Tag: "hr", SelfClosing: true}, true
	}
	if looksLikeButton(n) {
		return Classification{Tag: "button"}, true
	}
	if looksLikeList(n) {
		return Classification{Tag: "ul", WrapChildren: "li"}, true
	}
	return Classification{}, false
}

// isThinSeparator matches rectangles rendered as rules: one dimension
// under 3px, the other over 30px.
func isThinSeparator(n *node.Node) bool {
	if n.Kind != node.KindRectangle {
		return false
	}
	return (n.Width < hrThinPx && n.Height > hrLongPx) ||
		(n.Height < hrThinPx && n.Width > hrLongPx)
}

// looksLikeButton matches small frames holding a label: 1-2 children,
// at least one text, only text/vector children, and a solid background.
func looksLikeButton(n *node.Node) bool {
	if n.Kind != node.KindContainer {
		return false
	}
	if n.Width >= buttonMaxWidth || n.Height > buttonMaxHeight {
		return false
	}
	children := n.VisibleChildren()
	if len(children) < 1 || len(children) > 2 {
		return false
	}
	hasText := false
	for _, c := range children {
		switch c.Kind {
		case node.KindText:
			hasText = true
		case node.KindVector:
			// icon next to the label is fine
		default:
			return false
		}
	}
	if !hasText {
		return false
	}
	if _, ok := n.SolidFillColor(); !ok {
		return false
	}
	return true
}

// looksLikeList matches auto-layout containers of three or more
// same-kind children with near-uniform heights (within 30% of the
// mean).
func looksLikeList(n *node.Node) bool {
	if n.Kind != node.KindContainer || !n.IsAutoLayout() {
		return false
	}
	children := n.VisibleChildren()
	if len(children) < listMinChildren {
		return false
	}
	kind := children[0].Kind
	total := 0.0
	for _, c := range children {
		if c.Kind != kind {
			return false
		}
		total += c.Height
	}
	mean := total / float64(len(children))
	if mean <= 0 {
		return false
	}
	for _, c := range children {
		if math.Abs(c.Height-mean) > listHeightTol*mean {
			return false
		}
	}
	return true
}
