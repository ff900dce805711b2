package node

import "github.com/gnana997/designc/pkg/geom"

// IsVisible reports node visibility, defaulting to true.
func (n *Node) IsVisible() bool {
	return n.Visible == nil || *n.Visible
}

// OpacityValue returns the node opacity, defaulting to 1.
func (n *Node) OpacityValue() float64 {
	if n.Opacity == nil {
		return 1
	}
	return *n.Opacity
}

// Rect returns the node's bounding box in parent coordinates.
func (n *Node) Rect() geom.Rect {
	return geom.Rect{X: n.X, Y: n.Y, W: n.Width, H: n.Height}
}

// HasFills reports whether the node carries the fill capability with
// at least one visible paint.
func (n *Node) HasFills() bool {
	for _, p := range n.Fills {
		if p.IsVisible() {
			return true
		}
	}
	return false
}

// HasStrokes reports whether the node carries at least one visible stroke.
func (n *Node) HasStrokes() bool {
	for _, p := range n.Strokes {
		if p.IsVisible() {
			return true
		}
	}
	return false
}

// HasEffects reports whether the node carries at least one visible effect.
func (n *Node) HasEffects() bool {
	for _, e := range n.Effects {
		if e.IsVisible() {
			return true
		}
	}
	return false
}

// FirstVisibleFill returns the first visible fill paint, if any.
func (n *Node) FirstVisibleFill() (Paint, bool) {
	for _, p := range n.Fills {
		if p.IsVisible() {
			return p, true
		}
	}
	return Paint{}, false
}

// FirstVisibleStroke returns the first visible stroke paint, if any.
func (n *Node) FirstVisibleStroke() (Paint, bool) {
	for _, p := range n.Strokes {
		if p.IsVisible() {
			return p, true
		}
	}
	return Paint{}, false
}

// SolidFillColor returns the first visible solid fill's color.
func (n *Node) SolidFillColor() (string, bool) {
	for _, p := range n.Fills {
		if p.IsVisible() && p.Type == PaintSolid && p.Color != "" {
			return p.Color, true
		}
	}
	return "", false
}

// IsAutoLayout reports whether the node declares a flex-like direction.
func (n *Node) IsAutoLayout() bool {
	return n.Layout != nil && n.Layout.Mode != LayoutNone && n.Layout.Mode != ""
}

// IsVectorLike reports whether the node renders as vector artwork.
func (n *Node) IsVectorLike() bool {
	return n.Kind == KindVector
}

// VisibleChildren returns children with visibility on, preserving order.
func (n *Node) VisibleChildren() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.IsVisible() {
			out = append(out, c)
		}
	}
	return out
}

// Walk visits the subtree pre-order, children in document order.
// Returning false from fn prunes the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Count returns the number of nodes in the subtree, n included.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(*Node) bool {
		total++
		return true
	})
	return total
}

// UniformRadius returns the effective uniform corner radius. Per-corner
// values collapse to their maximum; absent corners return 0.
func (n *Node) UniformRadius() float64 {
	if n.Corners == nil {
		return 0
	}
	if n.Corners.Uniform != nil {
		return *n.Corners.Uniform
	}
	max := 0.0
	for _, v := range []*float64{n.Corners.TopLeft, n.Corners.TopRight, n.Corners.BottomRight, n.Corners.BottomLeft} {
		if v != nil && *v > max {
			max = *v
		}
	}
	return max
}
