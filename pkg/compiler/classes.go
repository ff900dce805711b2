package compiler

import (
	"fmt"

	"github.com/gnana997/designc/pkg/layout"
	"github.com/gnana997/designc/pkg/node"
	"github.com/gnana997/designc/pkg/tokens"
)

// parentCtx is the layout context a parent hands to each child frame.
type parentCtx struct {
	autoLayout  bool
	overlapping bool    // children render with absolute offsets
	wrapClass   string  // per-child width class inside a wrap container
	parentArea  float64 // parent bounding-box area, for image coverage
	isRoot      bool
}

var weightClasses = map[int]string{
	100: "font-thin",
	200: "font-extralight",
	300: "font-light",
	500: "font-medium",
	600: "font-semibold",
	700: "font-bold",
	800: "font-extrabold",
	900: "font-black",
}

var easingClasses = map[string]string{
	"linear":      "ease-linear",
	"ease-in":     "ease-in",
	"ease-out":    "ease-out",
	"ease-in-out": "ease-in-out",
}

func px(v float64) string {
	return "[" + tokens.TrimFloat(v) + "px]"
}

// containerClasses builds the class list for a container, rectangle,
// or group node. direction is the inferred arrangement for containers
// without declared auto-layout.
func (r *run) containerClasses(n *node.Node, pc parentCtx, direction layout.Direction) []string {
	var cls []string

	cls = append(cls, r.layoutClasses(n, direction)...)
	cls = append(cls, r.fillClasses(n, false)...)
	cls = append(cls, r.strokeClasses(n)...)
	cls = append(cls, r.commonClasses(n, pc)...)
	return cls
}

func (r *run) layoutClasses(n *node.Node, direction layout.Direction) []string {
	var cls []string
	if n.IsAutoLayout() {
		l := n.Layout
		switch l.Mode {
		case node.LayoutRow:
			cls = append(cls, "flex")
		case node.LayoutColumn:
			cls = append(cls, "flex", "flex-col")
		case node.LayoutWrap:
			cls = append(cls, "flex", "flex-wrap")
		case node.LayoutGrid:
			cls = append(cls, "grid")
		}
		if l.Gap > 0 {
			cls = append(cls, "gap-"+r.reg.SpacingName(l.Gap))
		}
		cls = append(cls, r.paddingClasses(l)...)
		switch l.AlignItems {
		case "start":
			cls = append(cls, "items-start")
		case "center":
			cls = append(cls, "items-center")
		case "end":
			cls = append(cls, "items-end")
		case "stretch":
			cls = append(cls, "items-stretch")
		}
		switch l.JustifyItems {
		case "start":
			cls = append(cls, "justify-start")
		case "center":
			cls = append(cls, "justify-center")
		case "end":
			cls = append(cls, "justify-end")
		case "between":
			cls = append(cls, "justify-between")
		}
		return cls
	}

	if len(n.VisibleChildren()) >= 2 {
		switch direction {
		case layout.DirectionRow:
			cls = append(cls, "flex")
		case layout.DirectionColumn:
			cls = append(cls, "flex", "flex-col")
		case layout.DirectionOverlapping:
			cls = append(cls, "relative")
		}
	}
	return cls
}

// paddingClasses collapses equal sides to p/px/py shorthands.
func (r *run) paddingClasses(l *node.AutoLayout) []string {
	t, rt, b, lf := l.PaddingTop, l.PaddingRight, l.PaddingBottom, l.PaddingLeft
	if t == 0 && rt == 0 && b == 0 && lf == 0 {
		return nil
	}
	if t == rt && rt == b && b == lf {
		return []string{"p-" + r.reg.SpacingName(t)}
	}
	if t == b && rt == lf {
		var cls []string
		if rt > 0 {
			cls = append(cls, "px-"+r.reg.SpacingName(rt))
		}
		if t > 0 {
			cls = append(cls, "py-"+r.reg.SpacingName(t))
		}
		return cls
	}
	var cls []string
	if t > 0 {
		cls = append(cls, "pt-"+r.reg.SpacingName(t))
	}
	if rt > 0 {
		cls = append(cls, "pr-"+r.reg.SpacingName(rt))
	}
	if b > 0 {
		cls = append(cls, "pb-"+r.reg.SpacingName(b))
	}
	if lf > 0 {
		cls = append(cls, "pl-"+r.reg.SpacingName(lf))
	}
	return cls
}

// fillClasses renders the first visible fill. asText selects text-
// over bg- prefixes. Image fills are handled by the compiler itself.
func (r *run) fillClasses(n *node.Node, asText bool) []string {
	p, ok := n.FirstVisibleFill()
	if !ok {
		return nil
	}
	switch p.Type {
	case node.PaintSolid:
		name := r.reg.ColorName(p.Color)
		if asText {
			return []string{"text-" + name}
		}
		return []string{"bg-" + name}
	case node.PaintGradientLinear, node.PaintGradientRadial:
		if g, ok := tokens.ResolveGradient(p); ok {
			name := r.reg.GradientName(tokens.GradientCSS(g, p.Stops))
			return []string{fmt.Sprintf("bg-[var(--%s)]", name)}
		}
	}
	return nil
}

func (r *run) strokeClasses(n *node.Node) []string {
	p, ok := n.FirstVisibleStroke()
	if !ok || p.Type != node.PaintSolid {
		return nil
	}
	cls := []string{"border"}
	if n.StrokeWeight != nil && *n.StrokeWeight > 1 {
		w := *n.StrokeWeight
		if w == 2 || w == 4 || w == 8 {
			cls = append(cls, fmt.Sprintf("border-%d", int(w)))
		} else {
			cls = append(cls, "border-"+px(w))
		}
	}
	cls = append(cls, "border-"+r.reg.ColorName(p.Color))
	return cls
}

// commonClasses covers the concerns shared by every node kind: corner
// radius, effects, opacity, rotation, blend mode, clipping, size
// constraints, auto-layout child sizing, wrap width, absolute
// offsets, and transitions.
func (r *run) commonClasses(n *node.Node, pc parentCtx) []string {
	var cls []string

	if rad := n.UniformRadius(); rad > 0 {
		cls = append(cls, "rounded-"+r.reg.RadiusName(rad))
	}

	for _, e := range n.Effects {
		if !e.IsVisible() {
			continue
		}
		switch e.Type {
		case node.EffectDropShadow, node.EffectInnerShadow:
			css := tokens.ShadowCSS(e)
			cls = append(cls, "shadow-"+r.reg.ShadowName(css, e.Blur))
		case node.EffectLayerBlur:
			cls = append(cls, "blur-"+px(e.Blur))
		case node.EffectBackgroundBlur:
			cls = append(cls, "backdrop-blur-"+px(e.Blur))
		}
	}

	if o := n.OpacityValue(); o < 1 {
		cls = append(cls, fmt.Sprintf("opacity-%d", int(o*100+0.5)))
	}
	if n.Rotation != 0 {
		cls = append(cls, fmt.Sprintf("rotate-[%sdeg]", tokens.TrimFloat(n.Rotation)))
	}
	if n.BlendMode != "" && n.BlendMode != "normal" {
		cls = append(cls, "mix-blend-"+n.BlendMode)
	}
	if n.ClipsContent {
		cls = append(cls, "overflow-hidden")
	}

	if n.MinWidth != nil {
		cls = append(cls, "min-w-"+px(*n.MinWidth))
	}
	if n.MaxWidth != nil {
		cls = append(cls, "max-w-"+px(*n.MaxWidth))
	}
	if n.MinHeight != nil {
		cls = append(cls, "min-h-"+px(*n.MinHeight))
	}
	if n.MaxHeight != nil {
		cls = append(cls, "max-h-"+px(*n.MaxHeight))
	}

	if pc.autoLayout && n.Sizing != nil {
		if n.Sizing.Horizontal == "fill" {
			cls = append(cls, "w-full")
		}
		if n.Sizing.Vertical == "fill" {
			cls = append(cls, "h-full")
		}
		if n.Sizing.Grow > 0 {
			cls = append(cls, "grow")
		}
		if n.Sizing.StretchCross {
			cls = append(cls, "self-stretch")
		}
	}

	if pc.wrapClass != "" {
		cls = append(cls, pc.wrapClass)
	}
	if pc.overlapping {
		cls = append(cls,
			"absolute",
			"left-"+px(n.X),
			"top-"+px(n.Y),
			"w-"+px(n.Width),
			"h-"+px(n.Height),
		)
	}

	if n.Transition != nil && n.Transition.DurationMs > 0 {
		cls = append(cls, "transition", "duration-"+r.reg.DurationName(n.Transition.DurationMs))
		if ec, ok := easingClasses[n.Transition.Easing]; ok {
			cls = append(cls, ec)
		}
	}
	return cls
}

// textClasses builds the class list for a text node.
func (r *run) textClasses(n *node.Node, pc parentCtx) []string {
	var cls []string

	if n.Type != nil {
		t := n.Type
		size := 16.0
		if t.FontSizePx != nil {
			size = *t.FontSizePx
		}
		cls = append(cls, "text-"+r.reg.FontSizeName(size))
		if t.FontWeight != nil {
			if wc, ok := weightClasses[*t.FontWeight]; ok {
				cls = append(cls, wc)
			}
		}
		if t.LineHeightPx != nil && size > 0 {
			cls = append(cls, "leading-"+r.reg.LeadingName(*t.LineHeightPx/size))
		}
		if t.LetterSpacing != nil && *t.LetterSpacing != 0 {
			cls = append(cls, "tracking-"+px(*t.LetterSpacing))
		}
		switch t.Align {
		case "center":
			cls = append(cls, "text-center")
		case "right":
			cls = append(cls, "text-right")
		case "justify":
			cls = append(cls, "text-justify")
		}
		switch t.Case {
		case "upper":
			cls = append(cls, "uppercase")
		case "lower":
			cls = append(cls, "lowercase")
		case "title":
			cls = append(cls, "capitalize")
		}
		switch t.Decoration {
		case "underline":
			cls = append(cls, "underline")
		case "strikethrough":
			cls = append(cls, "line-through")
		}
	}

	cls = append(cls, r.fillClasses(n, true)...)
	cls = append(cls, r.commonClasses(n, pc)...)
	return cls
}
