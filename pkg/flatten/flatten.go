// Package flatten decides which subtrees collapse into a single
// exported asset instead of compiling to markup. The rules guard two
// opposite failure modes: flattening a genuine layout grid that merely
// contains decorative vectors, and failing to flatten a compound icon
// assembled from several paths.
package flatten

import (
	"regexp"

	"github.com/gnana997/designc/pkg/node"
)

var iconNamePattern = regexp.MustCompile(`(?i)icon|logo|glyph|symbol|illustration|mark`)

// Calibrated bounds for the large-container exclusion.
const (
	largeWidthPx     = 100.0
	largeMinChildren = 2
)

// ShouldCollapse reports whether the node's subtree should be exported
// as one image rather than compiled.
func ShouldCollapse(n *node.Node) bool {
	if n == nil {
		return false
	}
	children := n.VisibleChildren()
	if len(children) == 0 {
		// Leaf vectors are exported by the compiler directly; nothing
		// to collapse here.
		return false
	}

	// All-vector children always collapse, except large auto-layout
	// containers, which are almost certainly icon grids laid out on
	// purpose.
	if allVectors(children) {
		if n.Width > largeWidthPx && len(children) > largeMinChildren && n.IsAutoLayout() {
			return false
		}
		return true
	}

	// Named icons collapse when their children are vector-ish: plain
	// vectors or containers holding only vectors.
	if iconNamePattern.MatchString(n.Name) && allVectorish(children) {
		return true
	}

	// Ungrouped compound icons: a mix of vectors and one level of
	// vector-only containers.
	return hasVector(children) && allVectorish(children)
}

func allVectors(children []*node.Node) bool {
	for _, c := range children {
		if !c.IsVectorLike() {
			return false
		}
	}
	return true
}

// allVectorish accepts vectors and containers/groups whose own visible
// children are all vectors (one level only).
func allVectorish(children []*node.Node) bool {
	for _, c := range children {
		if c.IsVectorLike() {
			continue
		}
		if c.Kind == node.KindContainer || c.Kind == node.KindGroup {
			inner := c.VisibleChildren()
			if len(inner) > 0 && allVectors(inner) {
				continue
			}
		}
		return false
	}
	return true
}

func hasVector(children []*node.Node) bool {
	for _, c := range children {
		if c.IsVectorLike() {
			return true
		}
	}
	return false
}
