// Package compiler walks a design tree and emits semantic markup with
// utility-class annotations, a theme CSS block, and an asset map. One
// Compile call is one run: all per-run state lives in an explicit run
// context, so identical input always produces byte-identical output.
package compiler

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/gnana997/designc/pkg/classify"
	"github.com/gnana997/designc/pkg/flatten"
	"github.com/gnana997/designc/pkg/geom"
	"github.com/gnana997/designc/pkg/layout"
	"github.com/gnana997/designc/pkg/node"
	"github.com/gnana997/designc/pkg/semantic"
	"github.com/gnana997/designc/pkg/tokens"
)

// Output is everything one compile run produces for the sink.
type Output struct {
	Markup string
	CSS    string
	Assets map[int]Asset
	Tokens *tokens.Set
	Roles  classify.Result
}

// Compile scans the document for tokens, walks the tree to markup,
// and renders the theme CSS block.
func Compile(ctx context.Context, doc *node.Document, opts Options) (*Output, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("compile: document has no root node")
	}
	set := tokens.Scan(doc.Root)
	r := newRun(set, opts)

	markup := r.compileTree(ctx, doc.Root)
	css := tokens.Emit(set, r.reg, r.colors)

	r.log.Info("compiled document",
		"document", doc.Name,
		"nodes", doc.Root.Count(),
		"assets", len(r.assets))

	return &Output{
		Markup: markup,
		CSS:    css,
		Assets: r.assets,
		Tokens: set,
		Roles:  r.colors,
	}, nil
}

// frame is one work-stack entry: either a node to emit under a parent
// context, or a pre-rendered literal line (closing tags, li wrappers).
type frame struct {
	n       *node.Node
	pc      parentCtx
	depth   int
	literal string
}

// compileTree drives the walk with an explicit stack instead of
// recursion, bounding call depth and keeping asset ids strictly in
// document order. Exports are awaited sequentially; parallelizing
// them would break id and filename stability.
func (r *run) compileTree(ctx context.Context, root *node.Node) string {
	var b strings.Builder
	stack := []frame{{n: root, pc: parentCtx{isRoot: true}}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.n == nil {
			b.WriteString(f.literal)
			continue
		}
		stack = r.emitNode(ctx, &b, stack, f)
	}
	return b.String()
}

func (r *run) emitNode(ctx context.Context, b *strings.Builder, stack []frame, f frame) []frame {
	n := f.n
	if !n.IsVisible() {
		return stack
	}
	indent := strings.Repeat("  ", f.depth)

	// Collapsed subtrees and vector leaves become a single SVG asset.
	if n.IsVectorLike() || flatten.ShouldCollapse(n) {
		b.WriteString(indent)
		b.WriteString(r.vectorAssetLine(ctx, n, f.pc))
		b.WriteString("\n")
		return stack
	}

	if n.Kind == node.KindText {
		b.WriteString(indent)
		b.WriteString(r.textLine(n, f.pc))
		b.WriteString("\n")
		return stack
	}

	if img, ok := n.FirstVisibleFill(); ok && img.Type == node.PaintImage && len(n.VisibleChildren()) == 0 {
		b.WriteString(indent)
		b.WriteString(r.imageLine(ctx, n, img, f.pc))
		b.WriteString("\n")
		return stack
	}

	return r.emitContainer(ctx, b, stack, f, indent)
}

func (r *run) emitContainer(_ context.Context, b *strings.Builder, stack []frame, f frame, indent string) []frame {
	n := f.n
	children := n.VisibleChildren()

	direction := layout.DirectionColumn
	if !n.IsAutoLayout() && len(children) >= 2 {
		rects := make([]geom.Rect, len(children))
		for i, c := range children {
			rects[i] = c.Rect()
		}
		direction = layout.InferFromChildren(rects)
	}

	c := semantic.Detect(n, f.pc.isRoot)
	cls := append(r.containerClasses(n, f.pc, direction), c.ExtraClasses...)

	if c.SelfClosing {
		b.WriteString(indent)
		b.WriteString(openTag(c.Tag, c.Attrs, cls, true))
		b.WriteString("\n")
		return stack
	}
	if len(children) == 0 {
		b.WriteString(indent)
		b.WriteString(openTag(c.Tag, c.Attrs, cls, false))
		b.WriteString("</" + c.Tag + ">\n")
		return stack
	}

	b.WriteString(indent)
	b.WriteString(openTag(c.Tag, c.Attrs, cls, false))
	b.WriteString("\n")

	childPC := parentCtx{
		autoLayout:  n.IsAutoLayout(),
		overlapping: !n.IsAutoLayout() && direction == layout.DirectionOverlapping,
		parentArea:  n.Width * n.Height,
	}
	if n.IsAutoLayout() && n.Layout.Mode == node.LayoutWrap {
		inner := n.Width - n.Layout.PaddingLeft - n.Layout.PaddingRight
		cols := layout.WrapColumns(inner, n.Layout.Gap, children[0].Width)
		childPC.wrapClass = layout.WrapWidthClass(cols, n.Layout.Gap)
	}

	// Stack discipline: push the closing tag, then children in reverse
	// with their wrappers, so pops replay document order.
	stack = append(stack, frame{literal: indent + "</" + c.Tag + ">\n"})
	childDepth := f.depth + 1
	if c.WrapChildren != "" {
		wrapIndent := strings.Repeat("  ", childDepth)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack,
				frame{literal: wrapIndent + "</" + c.WrapChildren + ">\n"},
				frame{n: children[i], pc: childPC, depth: childDepth + 1},
				frame{literal: wrapIndent + "<" + c.WrapChildren + ">\n"},
			)
		}
		return stack
	}
	for i := len(children) - 1; i >= 0; i-- {
		stack = append(stack, frame{n: children[i], pc: childPC, depth: childDepth})
	}
	return stack
}

// vectorAssetLine exports a vector or collapsed subtree as SVG and
// renders the img reference, degrading to a comment on failure.
func (r *run) vectorAssetLine(ctx context.Context, n *node.Node, pc parentCtx) string {
	out := r.export(ctx, n, "svg", 1)
	if !out.OK {
		return fmt.Sprintf("<!-- export failed: %s -->", html.EscapeString(n.Name))
	}
	a := r.addAsset(n.Name, "svg", out.Bytes)

	cls := []string{}
	if !pc.overlapping {
		cls = append(cls, "w-"+px(n.Width), "h-"+px(n.Height))
	}
	cls = append(cls, r.commonClasses(n, pc)...)
	attrs := [][2]string{
		{"src", placeholder(a.ID)},
		{"alt", n.Name},
	}
	return openTag("img", attrs, cls, true)
}

func (r *run) textLine(n *node.Node, pc parentCtx) string {
	c := semantic.Detect(n, false)
	cls := append(r.textClasses(n, pc), c.ExtraClasses...)
	return openTag(c.Tag, c.Attrs, cls, false) +
		html.EscapeString(n.Characters) +
		"</" + c.Tag + ">"
}

var contentImagePattern = regexp.MustCompile(`(?i)photo|picture|image|img|avatar|thumbnail|profile`)

// imageLine renders an image-filled leaf as either a content <img> or
// a decorative background container, scored on name keywords, paint
// scale mode, size, and area coverage relative to the parent.
func (r *run) imageLine(ctx context.Context, n *node.Node, p node.Paint, pc parentCtx) string {
	out := r.export(ctx, n, "png", 2)
	if !out.OK {
		return fmt.Sprintf("<!-- export failed: %s -->", html.EscapeString(n.Name))
	}
	a := r.addAsset(n.Name, "png", out.Bytes)

	if r.isContentImage(n, p, pc) {
		cls := []string{}
		if !pc.overlapping {
			cls = append(cls, "w-"+px(n.Width), "h-"+px(n.Height))
		}
		cls = append(cls, "object-cover")
		cls = append(cls, r.commonClasses(n, pc)...)
		return openTag("img", [][2]string{{"src", placeholder(a.ID)}, {"alt", n.Name}}, cls, true)
	}

	cls := []string{
		fmt.Sprintf("bg-[url('%s')]", placeholder(a.ID)),
		"bg-cover",
		"bg-center",
	}
	if !pc.overlapping {
		cls = append(cls, "w-"+px(n.Width), "h-"+px(n.Height))
	}
	cls = append(cls, r.commonClasses(n, pc)...)
	return openTag("div", nil, cls, false) + "</div>"
}

func (r *run) isContentImage(n *node.Node, p node.Paint, pc parentCtx) bool {
	content, decorative := 0, 0
	if contentImagePattern.MatchString(n.Name) {
		content += 2
	}
	if p.ScaleMode == "tile" {
		decorative += 2
	}
	if p.ScaleMode == "fill" {
		decorative++
	}
	if n.Width < 64 && n.Height < 64 {
		content++
	}
	if pc.parentArea > 0 && n.Width*n.Height/pc.parentArea > 0.6 {
		decorative++
	}
	return content >= decorative
}

// openTag renders an opening tag with ordered attributes and the
// space-joined class list. selfClose appends the XML-style slash.
func openTag(tag string, attrs [][2]string, classes []string, selfClose bool) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(tag)
	for _, a := range attrs {
		b.WriteString(" " + a[0] + `="` + html.EscapeString(a[1]) + `"`)
	}
	if len(classes) > 0 {
		b.WriteString(` class="`)
		b.WriteString(strings.Join(classes, " "))
		b.WriteString(`"`)
	}
	if selfClose {
		b.WriteString(" />")
	} else {
		b.WriteString(">")
	}
	return b.String()
}
