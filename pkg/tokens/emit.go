package tokens

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gnana997/designc/pkg/classify"
	"github.com/gnana997/designc/pkg/scales"
)

// easingValues maps scanned easing keywords to CSS timing functions.
var easingValues = map[string]string{
	"linear":      "linear",
	"ease":        "ease",
	"ease-in":     "cubic-bezier(0.4, 0, 1, 1)",
	"ease-out":    "cubic-bezier(0, 0, 0.2, 1)",
	"ease-in-out": "cubic-bezier(0.4, 0, 0.2, 1)",
}

// Emit renders the token set as a theme CSS block: one custom property
// per line, grouped by category under comment headers. Output is
// byte-stable for a given set and registry state.
func Emit(set *Set, reg *Registry, res classify.Result) string {
	var b strings.Builder
	b.WriteString("@theme {\n")

	var groups [][]string
	if g := colorLines(res); len(g) > 0 {
		groups = append(groups, append([]string{"/* Colors */"}, g...))
	}
	if g := typographyLines(set, reg); len(g) > 0 {
		groups = append(groups, append([]string{"/* Typography */"}, g...))
	}
	if g := spacingLines(set, reg); len(g) > 0 {
		groups = append(groups, append([]string{"/* Spacing */"}, g...))
	}
	if g := radiusLines(set, reg); len(g) > 0 {
		groups = append(groups, append([]string{"/* Radius */"}, g...))
	}
	if g := shadowLines(set, reg); len(g) > 0 {
		groups = append(groups, append([]string{"/* Shadows */"}, g...))
	}
	if g := gradientLines(set, reg); len(g) > 0 {
		groups = append(groups, append([]string{"/* Gradients */"}, g...))
	}
	if g := motionLines(set, reg); len(g) > 0 {
		groups = append(groups, append([]string{"/* Motion */"}, g...))
	}

	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, line := range g {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString("}\n")
	return b.String()
}

func colorLines(res classify.Result) []string {
	var out []string
	for _, a := range res.Roles {
		out = append(out, fmt.Sprintf("--color-%s: %s;", a.Role, a.Hex))
	}
	for _, fam := range res.Palette {
		for _, sh := range fam.Shades {
			out = append(out, fmt.Sprintf("--color-%s-%d: %s;", fam.Name, sh.Step, sh.Hex))
		}
	}
	return out
}

func typographyLines(set *Set, reg *Registry) []string {
	var out []string
	seenSize := map[string]bool{}
	weights := map[int]bool{}
	var leadings []string
	seenLeading := map[string]bool{}

	for _, t := range set.Typography {
		name := reg.FontSizeName(float64(t.SizePx))
		if !seenSize[name] {
			seenSize[name] = true
			out = append(out, fmt.Sprintf("--text-%s: %srem;", name, TrimFloat(float64(t.SizePx)/16)))
		}
		weights[t.Weight] = true
		if t.LineHeightPx > 0 && t.SizePx > 0 {
			lname := reg.LeadingName(t.LineHeightPx / float64(t.SizePx))
			if !seenLeading[lname] {
				seenLeading[lname] = true
				leadings = append(leadings, fmt.Sprintf("--leading-%s: %s;", lname, TrimFloat(leadingValue(lname))))
			}
		}
	}

	ws := make([]int, 0, len(weights))
	for w := range weights {
		ws = append(ws, w)
	}
	sort.Ints(ws)
	for _, w := range ws {
		out = append(out, fmt.Sprintf("--font-weight-%d: %d;", w, w))
	}
	sort.Strings(leadings)
	return append(out, leadings...)
}

// leadingValue looks a leading name back up to its canonical ratio.
func leadingValue(name string) float64 {
	for _, p := range scales.Leadings {
		if p.Name == name {
			return p.Value
		}
	}
	return 1.5
}

func spacingLines(set *Set, reg *Registry) []string {
	var out []string
	for _, px := range set.SpacingPx {
		name := reg.SpacingName(float64(px))
		out = append(out, fmt.Sprintf("--space-%s: %dpx;", name, px))
	}
	return out
}

func radiusLines(set *Set, reg *Registry) []string {
	var out []string
	seen := map[string]bool{}
	for _, px := range set.RadiusPx {
		name := reg.RadiusName(float64(px))
		if seen[name] {
			continue // multiple pill radii share "full"
		}
		seen[name] = true
		value := fmt.Sprintf("%dpx", px)
		if name == scales.RadiusFullName {
			value = "9999px"
		}
		out = append(out, fmt.Sprintf("--radius-%s: %s;", name, value))
	}
	return out
}

func shadowLines(set *Set, reg *Registry) []string {
	var out []string
	for _, sh := range set.Shadows {
		out = append(out, fmt.Sprintf("--shadow-%s: %s;", reg.ShadowName(sh.CSS, sh.Blur), sh.CSS))
	}
	return out
}

func gradientLines(set *Set, reg *Registry) []string {
	var out []string
	for _, g := range set.Gradients {
		out = append(out, fmt.Sprintf("--%s: %s;", reg.GradientName(g.CSS), g.CSS))
	}
	return out
}

func motionLines(set *Set, reg *Registry) []string {
	var out []string
	for _, ms := range set.Durations {
		out = append(out, fmt.Sprintf("--duration-%s: %dms;", reg.DurationName(float64(ms)), ms))
	}
	for _, e := range set.Easings {
		if v, ok := easingValues[e]; ok {
			out = append(out, fmt.Sprintf("--ease-%s: %s;", e, v))
		}
	}
	return out
}
