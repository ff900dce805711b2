// Package node defines the read-only design node tree the engine
// consumes. Nodes are discriminated by Kind and expose optional
// capabilities (fills, effects, typography, auto-layout) as explicit
// nullable fields with safe accessors, so callers never probe for
// field presence dynamically.
package node

import "github.com/gnana997/designc/pkg/geom"

// Kind discriminates node variants.
type Kind string

const (
	KindContainer Kind = "container"
	KindText      Kind = "text"
	KindVector    Kind = "vector"
	KindRectangle Kind = "rectangle"
	KindGroup     Kind = "group"
)

// KnownKinds lists every supported kind.
var KnownKinds = []Kind{KindContainer, KindText, KindVector, KindRectangle, KindGroup}

// PaintType discriminates paint variants.
type PaintType string

const (
	PaintSolid          PaintType = "solid"
	PaintGradientLinear PaintType = "gradient_linear"
	PaintGradientRadial PaintType = "gradient_radial"
	PaintImage          PaintType = "image"
)

// GradientStop is one color stop, position in [0,1].
type GradientStop struct {
	Position float64 `json:"position"`
	Color    string  `json:"color"`
}

// Paint is a fill or stroke layer.
type Paint struct {
	Type    PaintType `json:"type"`
	Visible *bool     `json:"visible,omitempty"` // nil = visible
	Opacity *float64  `json:"opacity,omitempty"` // nil = 1

	// Solid paints.
	Color string `json:"color,omitempty"`

	// Gradient paints. Handles are exact when present; Transform is
	// the matrix fallback requiring inversion.
	Stops     []GradientStop `json:"stops,omitempty"`
	Handles   []geom.Vec2    `json:"handles,omitempty"`
	Transform *geom.Affine   `json:"transform,omitempty"`

	// Image paints.
	ScaleMode string `json:"scale_mode,omitempty"` // fill, fit, tile, crop
	ImageRef  string `json:"image_ref,omitempty"`
}

// IsVisible reports paint visibility, defaulting to true.
func (p Paint) IsVisible() bool {
	return p.Visible == nil || *p.Visible
}

// EffectType discriminates effect variants.
type EffectType string

const (
	EffectDropShadow     EffectType = "drop_shadow"
	EffectInnerShadow    EffectType = "inner_shadow"
	EffectLayerBlur      EffectType = "layer_blur"
	EffectBackgroundBlur EffectType = "background_blur"
)

// Effect is a visual effect attached to a node.
type Effect struct {
	Type    EffectType `json:"type"`
	Visible *bool      `json:"visible,omitempty"`

	OffsetX float64 `json:"offset_x,omitempty"`
	OffsetY float64 `json:"offset_y,omitempty"`
	Blur    float64 `json:"blur,omitempty"`
	Spread  float64 `json:"spread,omitempty"`
	Color   string  `json:"color,omitempty"`
}

// IsVisible reports effect visibility, defaulting to true.
func (e Effect) IsVisible() bool {
	return e.Visible == nil || *e.Visible
}

// TypeStyle carries typography for text nodes. Nil pointer fields mean
// the value is absent or mixed across runs of text; consumers apply
// defaults (weight 400, no leading token) rather than erroring.
type TypeStyle struct {
	FontSizePx    *float64 `json:"font_size_px,omitempty"`
	FontFamily    string   `json:"font_family,omitempty"`
	FontStyle     string   `json:"font_style,omitempty"`
	FontWeight    *int     `json:"font_weight,omitempty"`
	LineHeightPx  *float64 `json:"line_height_px,omitempty"`
	LetterSpacing *float64 `json:"letter_spacing,omitempty"`
	Decoration    string   `json:"decoration,omitempty"` // underline, strikethrough
	Case          string   `json:"case,omitempty"`       // upper, lower, title
	Align         string   `json:"align,omitempty"`      // left, center, right, justify
}

// LayoutMode is the declared auto-layout direction.
type LayoutMode string

const (
	LayoutNone   LayoutMode = "none"
	LayoutRow    LayoutMode = "row"
	LayoutColumn LayoutMode = "column"
	LayoutGrid   LayoutMode = "grid"
	LayoutWrap   LayoutMode = "wrap"
)

// AutoLayout carries flex-like container metadata.
type AutoLayout struct {
	Mode          LayoutMode `json:"mode"`
	Gap           float64    `json:"gap,omitempty"`
	PaddingTop    float64    `json:"padding_top,omitempty"`
	PaddingRight  float64    `json:"padding_right,omitempty"`
	PaddingBottom float64    `json:"padding_bottom,omitempty"`
	PaddingLeft   float64    `json:"padding_left,omitempty"`
	AlignItems    string     `json:"align_items,omitempty"`   // start, center, end, stretch
	JustifyItems  string     `json:"justify_items,omitempty"` // start, center, end, between
}

// Sizing is per-child sizing inside an auto-layout parent.
type Sizing struct {
	Horizontal   string  `json:"horizontal,omitempty"` // fixed, fill, hug
	Vertical     string  `json:"vertical,omitempty"`
	Grow         float64 `json:"grow,omitempty"`
	StretchCross bool    `json:"stretch_cross,omitempty"`
}

// Corners is a corner radius, uniform or per-corner.
type Corners struct {
	Uniform     *float64 `json:"uniform,omitempty"`
	TopLeft     *float64 `json:"top_left,omitempty"`
	TopRight    *float64 `json:"top_right,omitempty"`
	BottomRight *float64 `json:"bottom_right,omitempty"`
	BottomLeft  *float64 `json:"bottom_left,omitempty"`
}

// Transition is prototype animation timing attached to a node.
type Transition struct {
	DurationMs float64 `json:"duration_ms"`
	Easing     string  `json:"easing,omitempty"` // ease, ease-in, ease-out, ease-in-out, linear
}

// Node is one design node. Owned by the host document; the engine
// never mutates it after load.
type Node struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind Kind   `json:"kind"`

	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation,omitempty"`

	Visible      *bool    `json:"visible,omitempty"`
	Opacity      *float64 `json:"opacity,omitempty"`
	BlendMode    string   `json:"blend_mode,omitempty"`
	ClipsContent bool     `json:"clips_content,omitempty"`

	Fills        []Paint  `json:"fills,omitempty"`
	Strokes      []Paint  `json:"strokes,omitempty"`
	StrokeWeight *float64 `json:"stroke_weight,omitempty"`

	Effects []Effect `json:"effects,omitempty"`

	Characters string     `json:"characters,omitempty"`
	Type       *TypeStyle `json:"type_style,omitempty"`

	Layout  *AutoLayout `json:"layout,omitempty"`
	Sizing  *Sizing     `json:"sizing,omitempty"`
	Corners *Corners    `json:"corners,omitempty"`

	Transition *Transition `json:"transition,omitempty"`

	MinWidth  *float64 `json:"min_width,omitempty"`
	MaxWidth  *float64 `json:"max_width,omitempty"`
	MinHeight *float64 `json:"min_height,omitempty"`
	MaxHeight *float64 `json:"max_height,omitempty"`

	// Export holds embedded export payloads keyed by format ("svg",
	// "png"), base64-encoded. Optional; absent payloads make the
	// default exporter fail per node.
	Export map[string]string `json:"export,omitempty"`

	Children []*Node `json:"children,omitempty"`
}
