package geom

// Rect is an axis-aligned bounding box in parent coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether two boxes intersect on both axes using the
// open-interval test: boxes that merely share an edge do not overlap.
// Layout inference counts these pairs to detect freeform stacking.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Right returns r.X + r.W.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns r.Y + r.H.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Area returns the box area; zero or negative extents yield 0.
func (r Rect) Area() float64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}
