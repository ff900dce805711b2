// Package snap maps raw numeric design values onto the nearest points
// of the canonical scales, with per-run name exclusion so one name
// never labels two distinct raw values.
package snap

import (
	"math"

	"github.com/gnana997/designc/pkg/scales"
)

// Used tracks scale names already assigned in the current run.
type Used map[string]bool

// Nearest returns the name of the scale point closest by absolute
// distance to value, skipping names present in used; the winner is
// registered in used. When every name is taken the closest point wins
// outright, ties broken by lowest scale index. Empty scales and
// non-finite values never panic: the first entry (or "") is returned.
func Nearest(value float64, scale scales.Scale, used Used) string {
	if len(scale) == 0 {
		return ""
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		name := scale[0].Name
		if used != nil {
			used[name] = true
		}
		return name
	}

	best := pick(value, scale, used)
	if best == "" {
		// Scale exhausted; fall back to distance over the full scale.
		best = pick(value, scale, nil)
	}
	if used != nil {
		used[best] = true
	}
	return best
}

// pick returns the closest point not present in skip, or "" when every
// point is skipped. Equal distances resolve to the lower index because
// strict less-than never replaces an earlier winner.
func pick(value float64, scale scales.Scale, skip Used) string {
	best := ""
	bestDist := math.Inf(1)
	for _, p := range scale {
		if skip != nil && skip[p.Name] {
			continue
		}
		d := math.Abs(p.Value - value)
		if d < bestDist {
			bestDist = d
			best = p.Name
		}
	}
	return best
}

// Shared is the non-exclusive variant used for leading: the nearest
// name regardless of prior use, never registered anywhere.
func Shared(value float64, scale scales.Scale) string {
	if len(scale) == 0 {
		return ""
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return scale[0].Name
	}
	return pick(value, scale, nil)
}

// FontSize snaps a rem value onto the type scale with exclusion.
func FontSize(rem float64, used Used) string {
	return Nearest(rem, scales.FontSizes, used)
}

// Leading snaps a line-height ratio onto the leading scale. Leading
// names are reusable across values.
func Leading(ratio float64) string {
	return Shared(ratio, scales.Leadings)
}

// Radius snaps a px radius onto the radius scale. Radii at or above
// the pill threshold always map to the "full" point regardless of
// numeric distance.
func Radius(px float64, used Used) string {
	if px >= scales.PillRadiusPx {
		if used != nil {
			used[scales.RadiusFullName] = true
		}
		return scales.RadiusFullName
	}
	return Nearest(px, scales.Radii, used)
}

// Duration snaps a millisecond duration onto the timing scale.
func Duration(ms float64, used Used) string {
	return Nearest(ms, scales.Durations, used)
}

// Spacing snaps a px gap or padding onto the spacing scale.
func Spacing(px float64, used Used) string {
	return Nearest(px, scales.Spacings, used)
}

// FindGCD returns the greatest common divisor of the set, used to
// derive a base spacing unit from observed gaps. Zero values are
// ignored; an empty or all-zero set yields 0.
func FindGCD(values []int) int {
	g := 0
	for _, v := range values {
		if v < 0 {
			v = -v
		}
		g = gcd(g, v)
	}
	return g
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
