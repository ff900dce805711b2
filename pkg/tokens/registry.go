// Package tokens turns scanned raw values into a stable, deduplicated
// token set and renders it as a theme CSS block. The Registry is the
// per-run memo table: one raw value always maps to one name, and a
// name is never handed to two different raw values in the same
// category within one run.
package tokens

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gnana997/designc/pkg/classify"
	"github.com/gnana997/designc/pkg/geom"
	"github.com/gnana997/designc/pkg/scales"
	"github.com/gnana997/designc/pkg/snap"
)

// Registry memoizes raw-value to token-name assignments for one run.
// Construct a fresh instance per compile; reuse across runs breaks
// idempotence.
type Registry struct {
	theme map[string]string // caller-supplied hex -> name overrides

	colors     map[string]string
	familySeen map[string]int

	fontSizes map[int]string
	spacings  map[int]string
	radii     map[int]string
	durations map[int]string
	shadows   map[string]string
	gradients map[string]string

	usedFont     snap.Used
	usedSpacing  snap.Used
	usedRadius   snap.Used
	usedDuration snap.Used
	usedShadow   snap.Used

	takenFont     map[string]bool
	takenSpacing  map[string]bool
	takenRadius   map[string]bool
	takenDuration map[string]bool
	takenShadow   map[string]bool

	gradientSeq int
}

// NewRegistry builds an empty registry. theme maps hex values to names
// that take precedence over the default palette; nil is fine.
func NewRegistry(theme map[string]string) *Registry {
	norm := make(map[string]string, len(theme))
	for hex, name := range theme {
		norm[strings.ToLower(hex)] = name
	}
	return &Registry{
		theme:      norm,
		colors:     make(map[string]string),
		familySeen: make(map[string]int),

		fontSizes: make(map[int]string),
		spacings:  make(map[int]string),
		radii:     make(map[int]string),
		durations: make(map[int]string),
		shadows:   make(map[string]string),
		gradients: make(map[string]string),

		usedFont:     snap.Used{},
		usedSpacing:  snap.Used{},
		usedRadius:   snap.Used{},
		usedDuration: snap.Used{},
		usedShadow:   snap.Used{},

		takenFont:     make(map[string]bool),
		takenSpacing:  make(map[string]bool),
		takenRadius:   make(map[string]bool),
		takenDuration: make(map[string]bool),
		takenShadow:   make(map[string]bool),
	}
}

// Prime pre-binds classified role and palette names so subsequent
// ColorName lookups return them. Call once, before the compile walk.
func (r *Registry) Prime(res classify.Result) {
	for _, a := range res.Roles {
		if _, ok := r.colors[a.Hex]; !ok {
			r.colors[a.Hex] = string(a.Role)
		}
	}
	for _, fam := range res.Palette {
		for _, sh := range fam.Shades {
			if _, ok := r.colors[sh.Hex]; !ok {
				r.colors[sh.Hex] = fmt.Sprintf("%s-%d", fam.Name, sh.Step)
			}
		}
	}
}

// ColorName returns the stable token name for a hex color. Lookup
// order: prior assignment, caller theme map, default palette, then an
// auto-generated hue-family name whose shade step starts at 500 and
// climbs by 100 per additional family member.
func (r *Registry) ColorName(hex string) string {
	c, err := geom.ParseHex(hex)
	if err != nil {
		// Unparseable input degrades to itself; never an error.
		return strings.ToLower(hex)
	}
	key := c.Hex()
	if name, ok := r.colors[key]; ok {
		return name
	}
	if name, ok := r.theme[key]; ok {
		r.colors[key] = name
		return name
	}
	if name, ok := scales.DefaultPalette[key]; ok {
		r.colors[key] = name
		return name
	}
	fam := classify.FamilyName(c)
	step := 500 + 100*r.familySeen[fam]
	r.familySeen[fam]++
	name := fmt.Sprintf("%s-%d", fam, step)
	r.colors[key] = name
	return name
}

// FontSizeName snaps a px font size onto the type scale.
func (r *Registry) FontSizeName(px float64) string {
	key := roundKey(px)
	if name, ok := r.fontSizes[key]; ok {
		return name
	}
	name := snap.FontSize(px/16, r.usedFont)
	name = disambiguate(name, px, r.takenFont)
	r.fontSizes[key] = name
	return name
}

// SpacingName snaps a px gap or padding onto the spacing scale.
func (r *Registry) SpacingName(px float64) string {
	key := roundKey(px)
	if name, ok := r.spacings[key]; ok {
		return name
	}
	name := snap.Spacing(px, r.usedSpacing)
	name = disambiguate(name, px, r.takenSpacing)
	r.spacings[key] = name
	return name
}

// RadiusName snaps a px radius onto the radius scale. Pill radii all
// share the "full" name; it is exempt from collision disambiguation.
func (r *Registry) RadiusName(px float64) string {
	key := roundKey(px)
	if name, ok := r.radii[key]; ok {
		return name
	}
	name := snap.Radius(px, r.usedRadius)
	if name != scales.RadiusFullName {
		name = disambiguate(name, px, r.takenRadius)
	}
	r.radii[key] = name
	return name
}

// DurationName snaps a millisecond duration onto the timing scale.
func (r *Registry) DurationName(ms float64) string {
	key := roundKey(ms)
	if name, ok := r.durations[key]; ok {
		return name
	}
	name := snap.Duration(ms, r.usedDuration)
	name = disambiguate(name, ms, r.takenDuration)
	r.durations[key] = name
	return name
}

// ShadowName names a drop shadow by its blur radius on the elevation
// scale, keyed by the full rendered shadow value.
func (r *Registry) ShadowName(css string, blur float64) string {
	if name, ok := r.shadows[css]; ok {
		return name
	}
	name := snap.Nearest(blur, scales.Elevations, r.usedShadow)
	name = disambiguate(name, blur, r.takenShadow)
	r.shadows[css] = name
	return name
}

// LeadingName snaps a line-height ratio. Leading names are shared, not
// exclusive, so no registry state is involved.
func (r *Registry) LeadingName(ratio float64) string {
	return snap.Leading(ratio)
}

// GradientName returns the generated name for a gradient, keyed by its
// rendered CSS value so identical gradients across the tree collapse
// to one entry.
func (r *Registry) GradientName(css string) string {
	if name, ok := r.gradients[css]; ok {
		return name
	}
	r.gradientSeq++
	name := fmt.Sprintf("gradient-%d", r.gradientSeq)
	r.gradients[css] = name
	return name
}

// disambiguate appends the literal value when the snapped name is
// already bound to a different raw value (scale exhaustion).
func disambiguate(name string, value float64, taken map[string]bool) string {
	if taken[name] {
		name = fmt.Sprintf("%s-%spx", name, TrimFloat(value))
	}
	taken[name] = true
	return name
}

func roundKey(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}

// TrimFloat renders a float rounded to two decimals with trailing
// zeros removed, for stable CSS output.
func TrimFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
