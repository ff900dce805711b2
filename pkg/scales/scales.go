// Package scales holds the immutable canonical reference scales that
// raw design values are snapped onto: type sizes, leading ratios,
// radii, shadow elevations, spacing steps, duration steps, and the
// default named color palette. The tables are ordered; snapping and
// tie-breaking depend on that order.
package scales

// Point is one named reference value on a scale.
type Point struct {
	Name  string
	Value float64
}

// Scale is an ordered list of reference points. Never mutated.
type Scale []Point

// Names returns the scale's names in order.
func (s Scale) Names() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Name
	}
	return out
}

// FontSizes is the type scale in rem (16px root).
var FontSizes = Scale{
	{Name: "xs", Value: 0.75},
	{Name: "sm", Value: 0.875},
	{Name: "base", Value: 1},
	{Name: "lg", Value: 1.125},
	{Name: "xl", Value: 1.25},
	{Name: "2xl", Value: 1.5},
	{Name: "3xl", Value: 1.875},
	{Name: "4xl", Value: 2.25},
	{Name: "5xl", Value: 3},
	{Name: "6xl", Value: 3.75},
	{Name: "7xl", Value: 4.5},
	{Name: "8xl", Value: 6},
	{Name: "9xl", Value: 8},
}

// Leadings is the line-height ratio scale. Unlike the other scales,
// leading names may be reused across distinct raw values in one run.
var Leadings = Scale{
	{Name: "none", Value: 1},
	{Name: "tight", Value: 1.25},
	{Name: "snug", Value: 1.375},
	{Name: "normal", Value: 1.5},
	{Name: "relaxed", Value: 1.625},
	{Name: "loose", Value: 2},
}

// Radii is the corner-radius scale in px. RadiusFullName is the pill
// point every radius at or above PillRadiusPx maps to, regardless of
// numeric distance.
var Radii = Scale{
	{Name: "xs", Value: 2},
	{Name: "sm", Value: 4},
	{Name: "md", Value: 6},
	{Name: "lg", Value: 8},
	{Name: "xl", Value: 12},
	{Name: "2xl", Value: 16},
	{Name: "3xl", Value: 24},
}

const (
	// RadiusFullName is the canonical pill radius name.
	RadiusFullName = "full"

	// PillRadiusPx is the threshold at which a radius is treated as a
	// pill shape. Calibrated constant; do not derive.
	PillRadiusPx = 100
)

// Elevations names drop-shadow strength by blur radius in px.
var Elevations = Scale{
	{Name: "sm", Value: 2},
	{Name: "md", Value: 6},
	{Name: "lg", Value: 15},
	{Name: "xl", Value: 25},
	{Name: "2xl", Value: 50},
}

// Spacings is the spacing step scale in px, used when gaps and padding
// snap onto named steps.
var Spacings = Scale{
	{Name: "xs", Value: 4},
	{Name: "sm", Value: 8},
	{Name: "md", Value: 12},
	{Name: "lg", Value: 16},
	{Name: "xl", Value: 24},
	{Name: "2xl", Value: 32},
	{Name: "3xl", Value: 48},
	{Name: "4xl", Value: 64},
}

// Durations is the animation timing scale in milliseconds.
var Durations = Scale{
	{Name: "instant", Value: 75},
	{Name: "fast", Value: 150},
	{Name: "normal", Value: 300},
	{Name: "slow", Value: 500},
	{Name: "slower", Value: 700},
	{Name: "slowest", Value: 1000},
}

// ShadeRamp is the fixed shade-step ramp for generated hue-family
// palettes, light to dark.
var ShadeRamp = []int{50, 100, 200, 300, 400, 500, 600, 700, 800, 900}

// DefaultPalette maps well-known hex values to stable token names.
// Checked after the caller-supplied theme map and before auto-generated
// hue-family names.
var DefaultPalette = map[string]string{
	"#ffffff": "white",
	"#000000": "black",
	"#f8fafc": "slate-50",
	"#f1f5f9": "slate-100",
	"#e2e8f0": "slate-200",
	"#cbd5e1": "slate-300",
	"#94a3b8": "slate-400",
	"#64748b": "slate-500",
	"#475569": "slate-600",
	"#334155": "slate-700",
	"#1e293b": "slate-800",
	"#0f172a": "slate-900",
	"#ef4444": "red-500",
	"#dc2626": "red-600",
	"#f97316": "orange-500",
	"#f59e0b": "amber-500",
	"#eab308": "yellow-500",
	"#22c55e": "green-500",
	"#16a34a": "green-600",
	"#10b981": "emerald-500",
	"#14b8a6": "teal-500",
	"#06b6d4": "cyan-500",
	"#0ea5e9": "sky-500",
	"#3b82f6": "blue-500",
	"#2563eb": "blue-600",
	"#6366f1": "indigo-500",
	"#8b5cf6": "violet-500",
	"#a855f7": "purple-500",
	"#d946ef": "fuchsia-500",
	"#ec4899": "pink-500",
	"#f43f5e": "rose-500",
}
