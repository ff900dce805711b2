// Package classify assigns semantic roles (background, primary,
// border, ...) to a scanned color population and groups the leftovers
// into hue-family palettes with shade steps.
package classify

import (
	"sort"

	"github.com/gnana997/designc/pkg/geom"
	"github.com/gnana997/designc/pkg/scales"
)

// ColorUsage is one observed color with its usage count and the paint
// roles it appeared in.
type ColorUsage struct {
	Hex   string
	Count int

	Fill   bool
	Stroke bool
	Text   bool
}

// Role is a semantic color slot.
type Role string

const (
	RoleBackground      Role = "background"
	RoleForeground      Role = "foreground"
	RolePrimary         Role = "primary"
	RoleBorder          Role = "border"
	RoleMuted           Role = "muted"
	RoleMutedForeground Role = "muted-foreground"
	RoleSecondary       Role = "secondary"
	RoleDestructive     Role = "destructive"
	RoleAccent          Role = "accent"
)

// Assignment binds a role to a hex value.
type Assignment struct {
	Role Role
	Hex  string
}

// Shade is one palette entry within a hue family.
type Shade struct {
	Step int
	Hex  string
}

// Family is a generated hue-family palette, shades light to dark.
type Family struct {
	Name   string
	Shades []Shade
}

// Result is the classifier output: ordered role assignments plus the
// residual palette. Every input hex appears exactly once across the
// two.
type Result struct {
	Roles   []Assignment
	Palette []Family
}

type candidate struct {
	ColorUsage
	color geom.Color
	h     float64
	s     float64
	l     float64
}

// Colors runs the fixed role-rule sequence over the population and
// groups whatever is left by hue family. Rules run in a fixed order,
// each consumes at most one color, and an assigned hex is never
// reconsidered. The input order does not matter: candidates are
// pre-sorted by usage count (descending) with hex as the
// determinism tie-break.
func Colors(population []ColorUsage) Result {
	cands := make([]candidate, 0, len(population))
	for _, cu := range population {
		c, err := geom.ParseHex(cu.Hex)
		if err != nil {
			continue
		}
		h, s, l := c.HSL()
		cu.Hex = c.Hex()
		cands = append(cands, candidate{ColorUsage: cu, color: c, h: h, s: s, l: l})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Count != cands[j].Count {
			return cands[i].Count > cands[j].Count
		}
		return cands[i].Hex < cands[j].Hex
	})

	assigned := make(map[string]bool)
	var roles []Assignment
	take := func(role Role, pick func() (string, bool)) {
		if hex, ok := pick(); ok {
			assigned[hex] = true
			roles = append(roles, Assignment{Role: role, Hex: hex})
		}
	}

	// The rule order is the contract; later rules only see what
	// earlier ones left behind.
	take(RoleBackground, func() (string, bool) {
		return maxBy(cands, assigned, func(c candidate) (float64, bool) {
			return c.l, c.Fill
		})
	})
	take(RoleForeground, func() (string, bool) {
		return maxBy(cands, assigned, func(c candidate) (float64, bool) {
			return -c.l, c.Text
		})
	})
	take(RolePrimary, func() (string, bool) {
		return firstWhere(cands, assigned, func(c candidate) bool {
			return c.s > 0.3
		})
	})
	take(RoleBorder, func() (string, bool) {
		return firstWhere(cands, assigned, func(c candidate) bool {
			return c.Stroke
		})
	})
	take(RoleMuted, func() (string, bool) {
		return firstWhere(cands, assigned, func(c candidate) bool {
			return c.Fill && c.l > 0.85 && c.s < 0.15
		})
	})
	take(RoleMutedForeground, func() (string, bool) {
		return firstWhere(cands, assigned, func(c candidate) bool {
			return c.Text && c.l > 0.4
		})
	})
	take(RoleSecondary, func() (string, bool) {
		return firstWhere(cands, assigned, func(c candidate) bool {
			return c.s > 0.25
		})
	})
	take(RoleDestructive, func() (string, bool) {
		return firstWhere(cands, assigned, func(c candidate) bool {
			return inRedBand(c.h) && c.s > 0.3
		})
	})
	take(RoleAccent, func() (string, bool) {
		return firstWhere(cands, assigned, func(c candidate) bool {
			return c.s > 0.2
		})
	})

	return Result{Roles: roles, Palette: buildPalette(cands, assigned)}
}

// firstWhere returns the highest-usage unassigned candidate matching
// the predicate (candidates are already usage-sorted).
func firstWhere(cands []candidate, assigned map[string]bool, pred func(candidate) bool) (string, bool) {
	for _, c := range cands {
		if assigned[c.Hex] {
			continue
		}
		if pred(c) {
			return c.Hex, true
		}
	}
	return "", false
}

// maxBy returns the unassigned eligible candidate with the greatest
// key. Usage order breaks key ties.
func maxBy(cands []candidate, assigned map[string]bool, key func(candidate) (float64, bool)) (string, bool) {
	best := ""
	bestKey := 0.0
	for _, c := range cands {
		if assigned[c.Hex] {
			continue
		}
		k, eligible := key(c)
		if !eligible {
			continue
		}
		if best == "" || k > bestKey {
			best = c.Hex
			bestKey = k
		}
	}
	return best, best != ""
}

func inRedBand(hue float64) bool {
	return hue < 15 || hue >= 345
}

// FamilyName classifies a color into a fixed hue-family name:
// gray/white/black for low saturation, otherwise a hue band.
func FamilyName(c geom.Color) string {
	h, s, l := c.HSL()
	if s < 0.12 {
		switch {
		case l > 0.95:
			return "white"
		case l < 0.08:
			return "black"
		default:
			return "gray"
		}
	}
	switch {
	case h < 15 || h >= 345:
		return "red"
	case h < 45:
		return "orange"
	case h < 70:
		return "yellow"
	case h < 160:
		return "green"
	case h < 200:
		return "teal"
	case h < 260:
		return "blue"
	case h < 300:
		return "purple"
	default:
		return "pink"
	}
}

// buildPalette groups unassigned candidates by family, sorts each
// family by descending luminance, and labels members with an evenly
// spaced subset of the shade ramp.
func buildPalette(cands []candidate, assigned map[string]bool) []Family {
	groups := make(map[string][]candidate)
	for _, c := range cands {
		if assigned[c.Hex] {
			continue
		}
		name := FamilyName(c.color)
		groups[name] = append(groups[name], c)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []Family
	for _, name := range names {
		members := groups[name]
		sort.SliceStable(members, func(i, j int) bool {
			if members[i].l != members[j].l {
				return members[i].l > members[j].l
			}
			return members[i].Hex < members[j].Hex
		})
		fam := Family{Name: name}
		steps := SpreadShadeSteps(len(members))
		for i, m := range members {
			fam.Shades = append(fam.Shades, Shade{Step: steps[i], Hex: m.Hex})
		}
		out = append(out, fam)
	}
	return out
}

// SpreadShadeSteps returns n distinct shade steps drawn evenly from
// the fixed ramp. A single member sits at 500; more members than ramp
// steps walk the whole ramp and then keep extending the dark end in
// 100 increments, so no two members share a step.
func SpreadShadeSteps(n int) []int {
	ramp := scales.ShadeRamp
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []int{500}
	}
	steps := make([]int, n)
	if n > len(ramp) {
		copy(steps, ramp)
		for i := len(ramp); i < n; i++ {
			steps[i] = ramp[len(ramp)-1] + 100*(i-len(ramp)+1)
		}
		return steps
	}
	// For n <= len(ramp) the floor argument advances by at least one
	// ramp index per member, so every step is distinct.
	for i := 0; i < n; i++ {
		steps[i] = ramp[i*(len(ramp)-1)/(n-1)]
	}
	return steps
}
