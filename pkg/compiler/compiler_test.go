package compiler

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/designc/pkg/node"
)

func fptr(v float64) *float64 { return &v }

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func textNode(chars string, size float64) *node.Node {
	return &node.Node{
		ID: "t-" + chars, Kind: node.KindText, Characters: chars,
		Type: &node.TypeStyle{FontSizePx: fptr(size)},
	}
}

func compile(t *testing.T, root *node.Node) *Output {
	t.Helper()
	out, err := Compile(context.Background(), &node.Document{Name: "doc", Root: root}, Options{})
	require.NoError(t, err)
	return out
}

// --- structure ---

func TestCompile_BasicStructure(t *testing.T) {
	root := &node.Node{
		ID: "root", Kind: node.KindContainer, Name: "Screen", Width: 800, Height: 600,
		Fills:  []node.Paint{{Type: node.PaintSolid, Color: "#ffffff"}},
		Layout: &node.AutoLayout{Mode: node.LayoutColumn, Gap: 16},
		Children: []*node.Node{
			textNode("Hello World", 32),
			{
				ID: "btn", Kind: node.KindContainer, Name: "Primary Button", Width: 140, Height: 44,
				Fills:    []node.Paint{{Type: node.PaintSolid, Color: "#3b82f6"}},
				Children: []*node.Node{textNode("Go", 14)},
			},
		},
	}
	out := compile(t, root)

	want := `<section class="flex flex-col gap-lg bg-background">
  <h1 class="text-3xl">Hello World</h1>
  <button class="bg-primary">
    <p class="text-sm">Go</p>
  </button>
</section>
`
	assert.Equal(t, want, out.Markup)

	assert.Contains(t, out.CSS, "--color-background: #ffffff;")
	assert.Contains(t, out.CSS, "--color-primary: #3b82f6;")
	assert.Contains(t, out.CSS, "--space-lg: 16px;")
	assert.Contains(t, out.CSS, "--text-3xl: 2rem;")
	assert.Contains(t, out.CSS, "--text-sm: 0.875rem;")
}

func TestCompile_NilDocument(t *testing.T) {
	_, err := Compile(context.Background(), nil, Options{})
	assert.Error(t, err)
	_, err = Compile(context.Background(), &node.Document{Name: "empty"}, Options{})
	assert.Error(t, err)
}

func TestCompile_TextContentEscaped(t *testing.T) {
	root := &node.Node{
		ID: "root", Kind: node.KindContainer, Name: "Screen",
		Children: []*node.Node{textNode("a < b & c", 16)},
	}
	out := compile(t, root)
	assert.Contains(t, out.Markup, ">a &lt; b &amp; c</p>")
}

// --- assets ---

func TestCompile_VectorAsset(t *testing.T) {
	root := &node.Node{
		ID: "root", Kind: node.KindContainer, Name: "Screen",
		Children: []*node.Node{
			{
				ID: "v1", Kind: node.KindVector, Name: "Icon Star", Width: 16, Height: 16,
				Export: map[string]string{"svg": b64("<svg/>")},
			},
		},
	}
	out := compile(t, root)

	assert.Contains(t, out.Markup, `<img src="{{asset:1}}" alt="Icon Star" class="w-[16px] h-[16px]" />`)
	require.Len(t, out.Assets, 1)
	a := out.Assets[1]
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, []byte("<svg/>"), a.Bytes)
	assert.Equal(t, "image/svg+xml", a.MIME)
	assert.Equal(t, "icon-star.svg", a.FileName)
}

func TestCompile_AssetIDsFollowDocumentOrder(t *testing.T) {
	vec := func(id string) *node.Node {
		return &node.Node{
			ID: id, Kind: node.KindVector, Name: "Icon", Width: 16, Height: 16,
			Export: map[string]string{"svg": b64("<svg/>")},
		}
	}
	root := &node.Node{
		ID: "root", Kind: node.KindContainer, Name: "Screen",
		Layout:   &node.AutoLayout{Mode: node.LayoutRow},
		Children: []*node.Node{vec("a"), vec("b")},
	}
	out := compile(t, root)

	require.Len(t, out.Assets, 2)
	assert.Equal(t, "icon.svg", out.Assets[1].FileName)
	assert.Equal(t, "icon-2.svg", out.Assets[2].FileName)
	first := out.Markup
	assert.Less(t,
		indexOf(first, "{{asset:1}}"), indexOf(first, "{{asset:2}}"))
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

type failingExporter struct{}

func (failingExporter) Export(context.Context, *node.Node, string, float64) ([]byte, error) {
	return nil, errors.New("host unavailable")
}

func TestCompile_ExportFailureDegradesToComment(t *testing.T) {
	root := &node.Node{
		ID: "root", Kind: node.KindContainer, Name: "Screen",
		Children: []*node.Node{
			{ID: "v1", Kind: node.KindVector, Name: "Broken", Width: 16, Height: 16},
			textNode("still here", 16),
		},
	}
	out, err := Compile(context.Background(), &node.Document{Name: "doc", Root: root},
		Options{Exporter: failingExporter{}})
	require.NoError(t, err)

	assert.Contains(t, out.Markup, "<!-- export failed: Broken -->")
	assert.Contains(t, out.Markup, ">still here</p>")
	assert.Empty(t, out.Assets)
}

// --- collapsed subtrees ---

func TestCompile_CompositeCollapses(t *testing.T) {
	root := &node.Node{
		ID: "root", Kind: node.KindContainer, Name: "Screen",
		Children: []*node.Node{
			{
				ID: "logo", Kind: node.KindContainer, Name: "Logo", Width: 40, Height: 40,
				Export: map[string]string{"svg": b64("<svg/>")},
				Children: []*node.Node{
					{ID: "p1", Kind: node.KindVector, Width: 20, Height: 20},
					{ID: "p2", Kind: node.KindVector, Width: 20, Height: 20},
				},
			},
		},
	}
	out := compile(t, root)

	assert.Contains(t, out.Markup, `<img src="{{asset:1}}" alt="Logo"`)
	assert.NotContains(t, out.Markup, "p1")
	require.Len(t, out.Assets, 1)
}

// --- overlap positioning ---

func TestCompile_OverlappingChildrenAbsolute(t *testing.T) {
	rect := func(id string, x, y float64) *node.Node {
		return &node.Node{
			ID: id, Kind: node.KindRectangle, Name: "Layer " + id,
			X: x, Y: y, Width: 100, Height: 100,
			Fills: []node.Paint{{Type: node.PaintSolid, Color: "#123456"}},
		}
	}
	root := &node.Node{
		ID: "root", Kind: node.KindContainer, Name: "Stack", Width: 200, Height: 200,
		Children: []*node.Node{rect("a", 0, 0), rect("b", 20, 30), rect("c", 40, 60)},
	}
	out := compile(t, root)

	assert.Contains(t, out.Markup, `<section class="relative">`)
	assert.Contains(t, out.Markup, "absolute left-[20px] top-[30px] w-[100px] h-[100px]")
	assert.Contains(t, out.Markup, "absolute left-[40px] top-[60px] w-[100px] h-[100px]")
}

// --- lists and wrap ---

func TestCompile_ListWrapsChildrenInLi(t *testing.T) {
	item := func(id string) *node.Node {
		return &node.Node{ID: id, Kind: node.KindContainer, Width: 200, Height: 40}
	}
	root := &node.Node{
		ID: "root", Kind: node.KindContainer, Name: "Frame 9", Width: 240, Height: 160,
		Layout:   &node.AutoLayout{Mode: node.LayoutColumn},
		Children: []*node.Node{item("a"), item("b"), item("c")},
	}
	out := compile(t, root)

	want := `<ul class="flex flex-col">
  <li>
    <div></div>
  </li>
  <li>
    <div></div>
  </li>
  <li>
    <div></div>
  </li>
</ul>
`
	assert.Equal(t, want, out.Markup)
}

func TestCompile_WrapChildrenGetWidthClass(t *testing.T) {
	item := func(id string) *node.Node {
		return &node.Node{ID: id, Kind: node.KindContainer, Width: 180, Height: 120}
	}
	root := &node.Node{
		ID: "root", Kind: node.KindContainer, Name: "Gallery Grid", Width: 600, Height: 300,
		Layout:   &node.AutoLayout{Mode: node.LayoutWrap, Gap: 16},
		Children: []*node.Node{item("a"), item("b"), item("c"), item("d")},
	}
	out := compile(t, root)

	assert.Contains(t, out.Markup, `<div class="w-[calc(33.333%-10.67px)]"></div>`)
	assert.Contains(t, out.Markup, "flex flex-wrap gap-lg")
}

// --- image leaves ---

func TestCompile_ContentImage(t *testing.T) {
	root := &node.Node{
		ID: "root", Kind: node.KindContainer, Name: "Screen", Width: 800, Height: 600,
		Children: []*node.Node{
			{
				ID: "img1", Kind: node.KindRectangle, Name: "Profile Photo",
				Width: 48, Height: 48,
				Fills:  []node.Paint{{Type: node.PaintImage, ScaleMode: "fill", ImageRef: "ref"}},
				Export: map[string]string{"png": b64("png-bytes")},
			},
		},
	}
	out := compile(t, root)

	assert.Contains(t, out.Markup, `<img src="{{asset:1}}" alt="Profile Photo" class="w-[48px] h-[48px] object-cover" />`)
	assert.Equal(t, "image/png", out.Assets[1].MIME)
	assert.Equal(t, "profile-photo.png", out.Assets[1].FileName)
}

func TestCompile_DecorativeImageBecomesBackground(t *testing.T) {
	root := &node.Node{
		ID: "root", Kind: node.KindContainer, Name: "Hero Section", Width: 100, Height: 100,
		Children: []*node.Node{
			{
				ID: "bg1", Kind: node.KindRectangle, Name: "Frame 7",
				Width: 90, Height: 90,
				Fills:  []node.Paint{{Type: node.PaintImage, ScaleMode: "fill", ImageRef: "ref"}},
				Export: map[string]string{"png": b64("png-bytes")},
			},
		},
	}
	out := compile(t, root)
	assert.Contains(t, out.Markup, `bg-[url('{{asset:1}}')] bg-cover bg-center`)
	assert.NotContains(t, out.Markup, "<img")
}

// --- determinism ---

func TestCompile_Idempotent(t *testing.T) {
	build := func() *node.Node {
		return &node.Node{
			ID: "root", Kind: node.KindContainer, Name: "Screen", Width: 800, Height: 600,
			Fills:  []node.Paint{{Type: node.PaintSolid, Color: "#ffffff"}},
			Layout: &node.AutoLayout{Mode: node.LayoutColumn, Gap: 16, PaddingTop: 24, PaddingRight: 24, PaddingBottom: 24, PaddingLeft: 24},
			Children: []*node.Node{
				textNode("Title", 32),
				textNode("Body", 16),
				{
					ID: "v1", Kind: node.KindVector, Name: "Icon", Width: 16, Height: 16,
					Export: map[string]string{"svg": b64("<svg/>")},
				},
			},
		}
	}
	a := compile(t, build())
	b := compile(t, build())

	assert.Equal(t, a.Markup, b.Markup)
	assert.Equal(t, a.CSS, b.CSS)
	require.Len(t, b.Assets, 1)
	assert.Equal(t, a.Assets[1].FileName, b.Assets[1].FileName)
}
