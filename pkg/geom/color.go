// Package geom provides the small geometry and color-space helpers the
// compilation engine is built on: hex/RGB conversion, HSL components,
// affine inversion for gradient transforms, and bounding-box tests.
package geom

import (
	"fmt"
	"math"
	"strings"
)

// Color is an opaque RGB color. Alpha is carried separately by paints;
// token hex values are always 6-digit.
type Color struct {
	R, G, B uint8
}

// ParseHex parses "#rrggbb", "rrggbb", "#rgb" or "rgb" (case-insensitive).
// Returns an error for any other form.
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "#")
	switch len(h) {
	case 3:
		r, okR := hexDigit(h[0])
		g, okG := hexDigit(h[1])
		b, okB := hexDigit(h[2])
		if !okR || !okG || !okB {
			return Color{}, fmt.Errorf("invalid hex color %q", s)
		}
		return Color{R: r * 17, G: g * 17, B: b * 17}, nil
	case 6:
		var c Color
		for i, dst := range []*uint8{&c.R, &c.G, &c.B} {
			hi, okHi := hexDigit(h[i*2])
			lo, okLo := hexDigit(h[i*2+1])
			if !okHi || !okLo {
				return Color{}, fmt.Errorf("invalid hex color %q", s)
			}
			*dst = hi<<4 | lo
		}
		return c, nil
	default:
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
}

// MustParseHex is ParseHex for static palette tables; panics on bad input.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	default:
		return 0, false
	}
}

// Hex returns the canonical lower-case 6-digit "#rrggbb" form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// FromFloat converts normalized [0,1] channel values, clamping out-of-range input.
func FromFloat(r, g, b float64) Color {
	return Color{R: clamp8(r), G: clamp8(g), B: clamp8(b)}
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// HSL returns hue in degrees [0,360), and saturation/lightness in [0,1].
func (c Color) HSL() (h, s, l float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2

	d := max - min
	if d == 0 {
		return 0, 0, l
	}

	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60
	return h, s, l
}

// Hue returns the HSL hue in degrees.
func (c Color) Hue() float64 {
	h, _, _ := c.HSL()
	return h
}

// Saturation returns the HSL saturation in [0,1].
func (c Color) Saturation() float64 {
	_, s, _ := c.HSL()
	return s
}

// Luminance returns the HSL lightness in [0,1]. Role classification uses
// this perceptually-rough measure rather than WCAG relative luminance;
// the thresholds in the classifier are calibrated against it.
func (c Color) Luminance() float64 {
	_, _, l := c.HSL()
	return l
}
