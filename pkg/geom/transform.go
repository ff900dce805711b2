package geom

import "math"

// Affine is a 2x3 row-major affine transform:
//
//	| A C Tx |
//	| B D Ty |
//
// matching the relative-transform matrices design hosts attach to
// gradient paints.
type Affine struct {
	A, C, Tx float64
	B, D, Ty float64
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Det returns the determinant A*D - B*C.
func (m Affine) Det() float64 {
	return m.A*m.D - m.B*m.C
}

// Invert returns the inverse transform. The bool is false for a
// (near-)zero determinant, in which case the identity is returned so
// callers can fall back to default gradient geometry.
func (m Affine) Invert() (Affine, bool) {
	det := m.Det()
	if math.Abs(det) < 1e-9 {
		return Identity(), false
	}
	inv := 1 / det
	return Affine{
		A:  m.D * inv,
		C:  -m.C * inv,
		B:  -m.B * inv,
		D:  m.A * inv,
		Tx: (m.C*m.Ty - m.D*m.Tx) * inv,
		Ty: (m.B*m.Tx - m.A*m.Ty) * inv,
	}, true
}

// Apply transforms the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.Tx, m.B*x + m.D*y + m.Ty
}

// Vec2 is a point in normalized gradient space.
type Vec2 struct {
	X, Y float64
}

// GradientKind discriminates resolved gradient geometry.
type GradientKind string

const (
	GradientLinear GradientKind = "linear"
	GradientRadial GradientKind = "radial"
)

// Gradient is resolved gradient geometry: an angle for linear
// gradients, center and percentage radii for radial ones.
type Gradient struct {
	Kind     GradientKind
	AngleDeg float64

	CenterX, CenterY float64 // fractions of the bounding box, 0..1
	RadiusX, RadiusY float64 // fractions of the bounding box, 0..1
}

// LinearFromHandles resolves a linear gradient from its first two
// control handles (start and end of the gradient axis). This is the
// exact path; hosts that expose handles should always be preferred
// over the matrix fallback.
func LinearFromHandles(handles []Vec2) Gradient {
	if len(handles) < 2 {
		return Gradient{Kind: GradientLinear, AngleDeg: 180}
	}
	dx := handles[1].X - handles[0].X
	dy := handles[1].Y - handles[0].Y
	if dx == 0 && dy == 0 {
		return Gradient{Kind: GradientLinear, AngleDeg: 180}
	}
	// CSS angles measure clockwise from the positive y-up axis.
	angle := math.Atan2(dx, -dy) * 180 / math.Pi
	return Gradient{Kind: GradientLinear, AngleDeg: normalizeAngle(angle)}
}

// LinearFromMatrix resolves a linear gradient from the paint's affine
// transform by inverting it and measuring the image of the unit
// gradient axis. A degenerate matrix yields the default 180° gradient.
func LinearFromMatrix(m Affine) Gradient {
	inv, ok := m.Invert()
	if !ok {
		return Gradient{Kind: GradientLinear, AngleDeg: 180}
	}
	x0, y0 := inv.Apply(0, 0.5)
	x1, y1 := inv.Apply(1, 0.5)
	return LinearFromHandles([]Vec2{{X: x0, Y: y0}, {X: x1, Y: y1}})
}

// RadialFromHandles resolves a radial gradient from its handles:
// center, radius-x endpoint, radius-y endpoint.
func RadialFromHandles(handles []Vec2) Gradient {
	g := Gradient{Kind: GradientRadial, CenterX: 0.5, CenterY: 0.5, RadiusX: 1, RadiusY: 1}
	if len(handles) < 2 {
		return g
	}
	g.CenterX = handles[0].X
	g.CenterY = handles[0].Y
	g.RadiusX = dist(handles[0], handles[1])
	if len(handles) >= 3 {
		g.RadiusY = dist(handles[0], handles[2])
	} else {
		g.RadiusY = g.RadiusX
	}
	if g.RadiusX == 0 {
		g.RadiusX = 1
	}
	if g.RadiusY == 0 {
		g.RadiusY = 1
	}
	return g
}

// RadialFromMatrix resolves a radial gradient from the paint transform.
// Degenerate matrices yield the 50% center / 100% radius default.
func RadialFromMatrix(m Affine) Gradient {
	inv, ok := m.Invert()
	if !ok {
		return Gradient{Kind: GradientRadial, CenterX: 0.5, CenterY: 0.5, RadiusX: 1, RadiusY: 1}
	}
	cx, cy := inv.Apply(0.5, 0.5)
	rxX, rxY := inv.Apply(1, 0.5)
	ryX, ryY := inv.Apply(0.5, 1)
	return RadialFromHandles([]Vec2{
		{X: cx, Y: cy},
		{X: rxX, Y: rxY},
		{X: ryX, Y: ryY},
	})
}

func dist(a, b Vec2) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return math.Round(deg*100) / 100
}
