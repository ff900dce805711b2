package tokens

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gnana997/designc/pkg/classify"
	"github.com/gnana997/designc/pkg/geom"
	"github.com/gnana997/designc/pkg/node"
)

// Typography is one observed text style, deduplicated structurally.
type Typography struct {
	SizePx        int
	Weight        int // 400 when the node carries no weight
	LineHeightPx  float64
	LetterSpacing float64
	Family        string
}

// ShadowToken is one observed drop or inner shadow, pre-rendered to
// its CSS value for deduplication.
type ShadowToken struct {
	Kind node.EffectType
	Blur float64
	CSS  string
}

// GradientToken is one observed gradient with resolved geometry,
// pre-rendered to its CSS value for deduplication.
type GradientToken struct {
	Geometry geom.Gradient
	Stops    []node.GradientStop
	CSS      string
}

// Set is everything one scan pulled from a tree, deduplicated within
// the scan and ordered deterministically.
type Set struct {
	Colors     []classify.ColorUsage
	Typography []Typography
	SpacingPx  []int
	RadiusPx   []int
	Shadows    []ShadowToken
	Gradients  []GradientToken
	Durations  []int
	Easings    []string
}

// Scan walks the visible tree once and collects every raw token.
// Invisible nodes, paints, and effects contribute nothing.
func Scan(root *node.Node) *Set {
	s := &Set{}
	colors := map[string]*classify.ColorUsage{}
	typo := map[Typography]bool{}
	spacing := map[int]bool{}
	radius := map[int]bool{}
	shadows := map[string]bool{}
	gradients := map[string]bool{}
	durations := map[int]bool{}
	easings := map[string]bool{}

	root.Walk(func(n *node.Node) bool {
		if !n.IsVisible() {
			return false
		}

		isText := n.Kind == node.KindText
		for _, p := range n.Fills {
			if !p.IsVisible() {
				continue
			}
			switch p.Type {
			case node.PaintSolid:
				recordColor(colors, p.Color, !isText, false, isText)
			case node.PaintGradientLinear, node.PaintGradientRadial:
				if g, ok := ResolveGradient(p); ok {
					css := GradientCSS(g, p.Stops)
					if !gradients[css] {
						gradients[css] = true
						s.Gradients = append(s.Gradients, GradientToken{Geometry: g, Stops: p.Stops, CSS: css})
					}
				}
			}
		}
		for _, p := range n.Strokes {
			if p.IsVisible() && p.Type == node.PaintSolid {
				recordColor(colors, p.Color, false, true, false)
			}
		}

		if isText && n.Type != nil {
			t := Typography{SizePx: 16, Weight: 400, Family: n.Type.FontFamily}
			if n.Type.FontSizePx != nil {
				t.SizePx = roundKey(*n.Type.FontSizePx)
			}
			if n.Type.FontWeight != nil {
				t.Weight = *n.Type.FontWeight
			}
			if n.Type.LineHeightPx != nil {
				t.LineHeightPx = *n.Type.LineHeightPx
			}
			if n.Type.LetterSpacing != nil {
				t.LetterSpacing = *n.Type.LetterSpacing
			}
			typo[t] = true
		}

		if n.Layout != nil {
			for _, px := range []float64{n.Layout.Gap, n.Layout.PaddingTop, n.Layout.PaddingRight, n.Layout.PaddingBottom, n.Layout.PaddingLeft} {
				if px > 0 {
					spacing[roundKey(px)] = true
				}
			}
		}

		if r := n.UniformRadius(); r > 0 {
			radius[roundKey(r)] = true
		}

		for _, e := range n.Effects {
			if !e.IsVisible() {
				continue
			}
			if e.Type == node.EffectDropShadow || e.Type == node.EffectInnerShadow {
				css := ShadowCSS(e)
				if !shadows[css] {
					shadows[css] = true
					s.Shadows = append(s.Shadows, ShadowToken{Kind: e.Type, Blur: e.Blur, CSS: css})
				}
			}
		}

		if n.Transition != nil && n.Transition.DurationMs > 0 {
			durations[roundKey(n.Transition.DurationMs)] = true
			if n.Transition.Easing != "" {
				easings[n.Transition.Easing] = true
			}
		}
		return true
	})

	for _, u := range colors {
		s.Colors = append(s.Colors, *u)
	}
	sort.Slice(s.Colors, func(i, j int) bool {
		if s.Colors[i].Count != s.Colors[j].Count {
			return s.Colors[i].Count > s.Colors[j].Count
		}
		return s.Colors[i].Hex < s.Colors[j].Hex
	})

	for t := range typo {
		s.Typography = append(s.Typography, t)
	}
	sort.Slice(s.Typography, func(i, j int) bool {
		a, b := s.Typography[i], s.Typography[j]
		if a.SizePx != b.SizePx {
			return a.SizePx < b.SizePx
		}
		if a.Weight != b.Weight {
			return a.Weight < b.Weight
		}
		if a.LineHeightPx != b.LineHeightPx {
			return a.LineHeightPx < b.LineHeightPx
		}
		return a.Family < b.Family
	})

	s.SpacingPx = sortedKeys(spacing)
	s.RadiusPx = sortedKeys(radius)
	s.Durations = sortedKeys(durations)
	for e := range easings {
		s.Easings = append(s.Easings, e)
	}
	sort.Strings(s.Easings)
	return s
}

func recordColor(colors map[string]*classify.ColorUsage, hex string, fill, stroke, text bool) {
	c, err := geom.ParseHex(hex)
	if err != nil {
		return
	}
	key := c.Hex()
	u, ok := colors[key]
	if !ok {
		u = &classify.ColorUsage{Hex: key}
		colors[key] = u
	}
	u.Count++
	u.Fill = u.Fill || fill
	u.Stroke = u.Stroke || stroke
	u.Text = u.Text || text
}

func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// ResolveGradient derives renderable gradient geometry from a paint,
// preferring explicit handles over the matrix fallback.
func ResolveGradient(p node.Paint) (geom.Gradient, bool) {
	if len(p.Stops) < 2 {
		return geom.Gradient{}, false
	}
	switch p.Type {
	case node.PaintGradientLinear:
		if len(p.Handles) >= 2 {
			return geom.LinearFromHandles(p.Handles), true
		}
		if p.Transform != nil {
			return geom.LinearFromMatrix(*p.Transform), true
		}
		return geom.Gradient{Kind: geom.GradientLinear, AngleDeg: 180}, true
	case node.PaintGradientRadial:
		if len(p.Handles) >= 2 {
			return geom.RadialFromHandles(p.Handles), true
		}
		if p.Transform != nil {
			return geom.RadialFromMatrix(*p.Transform), true
		}
		return geom.Gradient{Kind: geom.GradientRadial, CenterX: 0.5, CenterY: 0.5, RadiusX: 1, RadiusY: 1}, true
	}
	return geom.Gradient{}, false
}

// GradientCSS renders resolved gradient geometry and stops as a CSS
// gradient function value.
func GradientCSS(g geom.Gradient, stops []node.GradientStop) string {
	parts := make([]string, 0, len(stops))
	for _, st := range stops {
		hex := st.Color
		if c, err := geom.ParseHex(hex); err == nil {
			hex = c.Hex()
		}
		parts = append(parts, fmt.Sprintf("%s %s%%", hex, TrimFloat(st.Position*100)))
	}
	stopList := strings.Join(parts, ", ")
	if g.Kind == geom.GradientRadial {
		return fmt.Sprintf("radial-gradient(ellipse %s%% %s%% at %s%% %s%%, %s)",
			TrimFloat(g.RadiusX*100), TrimFloat(g.RadiusY*100),
			TrimFloat(g.CenterX*100), TrimFloat(g.CenterY*100), stopList)
	}
	return fmt.Sprintf("linear-gradient(%sdeg, %s)", TrimFloat(g.AngleDeg), stopList)
}

// ShadowCSS renders an effect as a CSS box-shadow value. Inner shadows
// carry the inset keyword.
func ShadowCSS(e node.Effect) string {
	color := e.Color
	if c, err := geom.ParseHex(color); err == nil {
		color = c.Hex()
	}
	if color == "" {
		color = "rgb(0 0 0 / 0.1)"
	}
	v := fmt.Sprintf("%spx %spx %spx %spx %s",
		TrimFloat(e.OffsetX), TrimFloat(e.OffsetY), TrimFloat(e.Blur), TrimFloat(e.Spread), color)
	if e.Type == node.EffectInnerShadow {
		return "inset " + v
	}
	return v
}
