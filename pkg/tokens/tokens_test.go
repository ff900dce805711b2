package tokens

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/designc/pkg/classify"
	"github.com/gnana997/designc/pkg/geom"
	"github.com/gnana997/designc/pkg/node"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

// --- registry ---

func TestColorName_Idempotent(t *testing.T) {
	r := NewRegistry(nil)
	first := r.ColorName("#336699")
	second := r.ColorName("#336699")
	assert.Equal(t, first, second)
	assert.Equal(t, first, r.ColorName("#336699"))
}

func TestColorName_LookupOrder(t *testing.T) {
	r := NewRegistry(map[string]string{"#ABCDEF": "brand"})

	// Theme map wins, case-insensitively.
	assert.Equal(t, "brand", r.ColorName("#abcdef"))
	// Default palette next.
	assert.Equal(t, "blue-500", r.ColorName("#3b82f6"))
	assert.Equal(t, "white", r.ColorName("#ffffff"))
}

func TestColorName_AutoFamilySteps(t *testing.T) {
	r := NewRegistry(nil)
	// Distinct unlisted blues climb the shade steps from 500.
	assert.Equal(t, "blue-500", r.ColorName("#336699"))
	assert.Equal(t, "blue-600", r.ColorName("#224477"))
	assert.Equal(t, "blue-700", r.ColorName("#112244"))
	// A different family starts over at 500.
	assert.Equal(t, "green-500", r.ColorName("#228844"))
}

func TestColorName_InvalidHexDegrades(t *testing.T) {
	r := NewRegistry(nil)
	assert.Equal(t, "not-a-color", r.ColorName("Not-A-Color"))
}

func TestRegistry_Prime(t *testing.T) {
	r := NewRegistry(nil)
	r.Prime(classify.Result{
		Roles: []classify.Assignment{{Role: classify.RoleBackground, Hex: "#ffffff"}},
		Palette: []classify.Family{
			{Name: "blue", Shades: []classify.Shade{{Step: 500, Hex: "#336699"}}},
		},
	})
	assert.Equal(t, "background", r.ColorName("#ffffff"))
	assert.Equal(t, "blue-500", r.ColorName("#336699"))
}

func TestPrime_OverfullFamilyNamesStayUnique(t *testing.T) {
	// Twelve grays overflow the ten-step ramp; each must still get its
	// own palette name and a single declaration in the emitted block.
	var pop []classify.ColorUsage
	for i := 0; i < 12; i++ {
		pop = append(pop, classify.ColorUsage{
			Hex:    fmt.Sprintf("#%02x%02x%02x", 0xa0+i, 0xa0+i, 0xa0+i),
			Count:  1,
			Stroke: true,
		})
	}
	res := classify.Colors(pop)

	r := NewRegistry(nil)
	r.Prime(res)

	names := map[string]string{}
	for _, fam := range res.Palette {
		for _, sh := range fam.Shades {
			name := r.ColorName(sh.Hex)
			prev, clash := names[name]
			require.False(t, clash, "name %s bound to both %s and %s", name, prev, sh.Hex)
			names[name] = sh.Hex
		}
	}

	css := Emit(&Set{}, r, res)
	for name := range names {
		assert.Equal(t, 1, strings.Count(css, "--color-"+name+":"), "declarations for %s", name)
	}
}

func TestFontSizeName_SnapAndMemo(t *testing.T) {
	r := NewRegistry(nil)
	assert.Equal(t, "base", r.FontSizeName(16))
	assert.Equal(t, "base", r.FontSizeName(16))
	assert.Equal(t, "sm", r.FontSizeName(14))
}

func TestFontSizeName_ExhaustionAppendsLiteral(t *testing.T) {
	r := NewRegistry(nil)
	// 13 sizes claim every name on the type scale.
	for _, px := range []float64{12, 14, 16, 18, 20, 24, 30, 36, 48, 60, 72, 96, 128} {
		r.FontSizeName(px)
	}
	got := r.FontSizeName(200)
	assert.True(t, strings.HasSuffix(got, "-200px"), "got %q", got)
}

func TestRadiusName_PillSharesFull(t *testing.T) {
	r := NewRegistry(nil)
	assert.Equal(t, "full", r.RadiusName(9999))
	assert.Equal(t, "full", r.RadiusName(500))
	assert.Equal(t, "md", r.RadiusName(6))
}

func TestGradientName_CollapsesIdentical(t *testing.T) {
	r := NewRegistry(nil)
	css := "linear-gradient(90deg, #ff0000 0%, #0000ff 100%)"
	assert.Equal(t, "gradient-1", r.GradientName(css))
	assert.Equal(t, "gradient-1", r.GradientName(css))
	assert.Equal(t, "gradient-2", r.GradientName("linear-gradient(180deg, #ff0000 0%, #0000ff 100%)"))
}

// --- scan ---

func scanTree() *node.Node {
	return &node.Node{
		ID: "root", Kind: node.KindContainer, Name: "Screen", Width: 800, Height: 600,
		Fills:  []node.Paint{{Type: node.PaintSolid, Color: "#ffffff"}},
		Layout: &node.AutoLayout{Mode: node.LayoutColumn, Gap: 16, PaddingTop: 24, PaddingLeft: 24},
		Children: []*node.Node{
			{
				ID: "card", Kind: node.KindContainer, Width: 320, Height: 200,
				Fills:   []node.Paint{{Type: node.PaintSolid, Color: "#f1f5f9"}},
				Strokes: []node.Paint{{Type: node.PaintSolid, Color: "#e2e8f0"}},
				Corners: &node.Corners{Uniform: fptr(8)},
				Effects: []node.Effect{
					{Type: node.EffectDropShadow, OffsetY: 4, Blur: 6, Spread: -1, Color: "#0f172a"},
				},
				Transition: &node.Transition{DurationMs: 150, Easing: "ease-out"},
				Children: []*node.Node{
					{
						ID: "title", Kind: node.KindText, Characters: "Title",
						Type: &node.TypeStyle{FontSizePx: fptr(24), FontWeight: iptr(600), LineHeightPx: fptr(32)},
						Fills: []node.Paint{{Type: node.PaintSolid, Color: "#0f172a"}},
					},
					{
						ID: "body", Kind: node.KindText, Characters: "Body",
						Type:  &node.TypeStyle{FontSizePx: fptr(16)},
						Fills: []node.Paint{{Type: node.PaintSolid, Color: "#334155"}},
					},
				},
			},
			{
				ID: "hero", Kind: node.KindRectangle, Width: 800, Height: 240,
				Fills: []node.Paint{{
					Type:    node.PaintGradientLinear,
					Stops:   []node.GradientStop{{Position: 0, Color: "#ff0000"}, {Position: 1, Color: "#0000ff"}},
					Handles: []geom.Vec2{{X: 0, Y: 0.5}, {X: 1, Y: 0.5}},
				}},
			},
		},
	}
}

func TestScan_CollectsEverything(t *testing.T) {
	set := Scan(scanTree())

	hexes := map[string]classify.ColorUsage{}
	for _, c := range set.Colors {
		hexes[c.Hex] = c
	}
	require.Contains(t, hexes, "#ffffff")
	require.Contains(t, hexes, "#0f172a")
	assert.True(t, hexes["#ffffff"].Fill)
	assert.True(t, hexes["#e2e8f0"].Stroke)
	assert.True(t, hexes["#0f172a"].Text)
	// #0f172a appears as both a text fill and a shadow color source; the
	// shadow does not count as a paint usage.
	assert.Equal(t, 1, hexes["#0f172a"].Count)

	assert.Equal(t, []int{16, 24}, set.SpacingPx)
	assert.Equal(t, []int{8}, set.RadiusPx)
	assert.Equal(t, []int{150}, set.Durations)
	assert.Equal(t, []string{"ease-out"}, set.Easings)

	require.Len(t, set.Typography, 2)
	assert.Equal(t, Typography{SizePx: 16, Weight: 400}, set.Typography[0])
	assert.Equal(t, Typography{SizePx: 24, Weight: 600, LineHeightPx: 32}, set.Typography[1])

	require.Len(t, set.Shadows, 1)
	assert.Equal(t, "0px 4px 6px -1px #0f172a", set.Shadows[0].CSS)

	require.Len(t, set.Gradients, 1)
	assert.Equal(t, "linear-gradient(90deg, #ff0000 0%, #0000ff 100%)", set.Gradients[0].CSS)
}

func TestScan_InvisibleSubtreeIgnored(t *testing.T) {
	hidden := false
	root := &node.Node{
		ID: "root", Kind: node.KindContainer,
		Children: []*node.Node{
			{
				ID: "gone", Kind: node.KindContainer, Visible: &hidden,
				Fills: []node.Paint{{Type: node.PaintSolid, Color: "#123456"}},
			},
		},
	}
	assert.Empty(t, Scan(root).Colors)
}

// --- emission ---

func TestEmit_SpacingScenario(t *testing.T) {
	set := &Set{SpacingPx: []int{4, 8, 12, 16}}
	css := Emit(set, NewRegistry(nil), classify.Result{})

	idx := func(s string) int { return strings.Index(css, s) }
	require.Contains(t, css, "--space-xs: 4px;")
	require.Contains(t, css, "--space-sm: 8px;")
	require.Contains(t, css, "--space-md: 12px;")
	require.Contains(t, css, "--space-lg: 16px;")
	assert.Less(t, idx("--space-xs"), idx("--space-sm"))
	assert.Less(t, idx("--space-sm"), idx("--space-md"))
	assert.Less(t, idx("--space-md"), idx("--space-lg"))
}

func TestEmit_FontWithoutWeightOrLeading(t *testing.T) {
	set := &Set{Typography: []Typography{{SizePx: 16, Weight: 400}}}
	css := Emit(set, NewRegistry(nil), classify.Result{})

	assert.Contains(t, css, "--text-base: 1rem;")
	assert.Contains(t, css, "--font-weight-400: 400;")
	assert.NotContains(t, css, "--leading-")
}

func TestEmit_LeadingWhenPresent(t *testing.T) {
	set := &Set{Typography: []Typography{{SizePx: 16, Weight: 400, LineHeightPx: 24}}}
	css := Emit(set, NewRegistry(nil), classify.Result{})
	assert.Contains(t, css, "--leading-normal: 1.5;")
}

func TestEmit_RadiusFull(t *testing.T) {
	set := &Set{RadiusPx: []int{6, 9999}}
	css := Emit(set, NewRegistry(nil), classify.Result{})
	assert.Contains(t, css, "--radius-md: 6px;")
	assert.Contains(t, css, "--radius-full: 9999px;")
}

func TestEmit_BlockShape(t *testing.T) {
	set := &Set{SpacingPx: []int{8}}
	css := Emit(set, NewRegistry(nil), classify.Result{})
	assert.True(t, strings.HasPrefix(css, "@theme {\n"))
	assert.True(t, strings.HasSuffix(css, "}\n"))
	assert.Contains(t, css, "  /* Spacing */\n")
}

func TestEmit_Deterministic(t *testing.T) {
	run := func() string {
		set := Scan(scanTree())
		res := classify.Colors(set.Colors)
		reg := NewRegistry(nil)
		reg.Prime(res)
		return Emit(set, reg, res)
	}
	assert.Equal(t, run(), run())
}

// --- helpers ---

func TestTrimFloat(t *testing.T) {
	assert.Equal(t, "90", TrimFloat(90))
	assert.Equal(t, "10.67", TrimFloat(10.666666))
	assert.Equal(t, "-1", TrimFloat(-1))
	assert.Equal(t, "0", TrimFloat(0))
}

func TestShadowCSS_Inset(t *testing.T) {
	css := ShadowCSS(node.Effect{Type: node.EffectInnerShadow, OffsetY: 2, Blur: 4, Color: "#000000"})
	assert.Equal(t, "inset 0px 2px 4px 0px #000000", css)
}

func TestGradientCSS_Radial(t *testing.T) {
	g := geom.Gradient{Kind: geom.GradientRadial, CenterX: 0.5, CenterY: 0.5, RadiusX: 1, RadiusY: 0.5}
	css := GradientCSS(g, []node.GradientStop{{Position: 0, Color: "#ffffff"}, {Position: 1, Color: "#000000"}})
	assert.Equal(t, "radial-gradient(ellipse 100% 50% at 50% 50%, #ffffff 0%, #000000 100%)", css)
}
