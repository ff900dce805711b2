package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func fptr(v float64) *float64 { return &v }
func bptr(v bool) *bool       { return &v }

func minimalDoc() *Document {
	return &Document{
		Name:    "test",
		Version: "1.0",
		Root: &Node{
			ID:   "1",
			Name: "Page",
			Kind: KindContainer,
			X:    0, Y: 0, Width: 800, Height: 600,
			Children: []*Node{
				{
					ID: "2", Name: "Title", Kind: KindText,
					Width: 200, Height: 32,
					Characters: "Hello",
					Type:       &TypeStyle{FontSizePx: fptr(24)},
				},
				{
					ID: "3", Name: "Card", Kind: KindRectangle,
					Width: 120, Height: 80,
					Fills: []Paint{{Type: PaintSolid, Color: "#ffffff"}},
				},
			},
		},
	}
}

// --- Validate ---

func TestValidate_Minimal(t *testing.T) {
	assert.Empty(t, minimalDoc().Validate())
}

func TestValidate_MissingRoot(t *testing.T) {
	d := &Document{Name: "x"}
	errs := d.Validate()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "root is required")
}

func TestValidate_DuplicateID(t *testing.T) {
	d := minimalDoc()
	d.Root.Children[1].ID = "2"
	errs := d.Validate()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "duplicate id")
}

func TestValidate_UnknownKind(t *testing.T) {
	d := minimalDoc()
	d.Root.Children[0].Kind = "sticker"
	errs := d.Validate()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "unknown kind")
}

func TestValidate_TextWithoutStyle(t *testing.T) {
	d := minimalDoc()
	d.Root.Children[0].Type = nil
	errs := d.Validate()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "type_style is required")
}

func TestValidate_BadPaint(t *testing.T) {
	d := minimalDoc()
	d.Root.Children[1].Fills = []Paint{{Type: PaintSolid}}
	errs := d.Validate()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "solid paint requires color")
}

func TestValidate_GradientStops(t *testing.T) {
	d := minimalDoc()
	d.Root.Children[1].Fills = []Paint{{
		Type:  PaintGradientLinear,
		Stops: []GradientStop{{Position: 0, Color: "#fff"}},
	}}
	errs := d.Validate()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "at least 2 stops")
}

// --- BuildIndex / load ---

func TestBuildIndex(t *testing.T) {
	d := minimalDoc()
	idx := d.BuildIndex()
	assert.Len(t, idx.NodeByID, 3)
	assert.Nil(t, idx.ParentByID["1"])
	assert.Equal(t, "1", idx.ParentByID["2"].ID)
}

func TestLoadFromBytes_Valid(t *testing.T) {
	data := []byte(`{
		"name": "demo", "version": "1",
		"root": {
			"id": "r", "name": "Root", "kind": "container",
			"width": 100, "height": 100,
			"children": [
				{"id": "t", "name": "Text", "kind": "text", "width": 50, "height": 20,
				 "characters": "hi", "type_style": {"font_size_px": 16}}
			]
		}
	}`)
	doc, idx, err := LoadFromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, "demo", doc.Name)
	assert.Equal(t, KindText, idx.NodeByID["t"].Kind)
}

func TestLoadFromBytes_Invalid(t *testing.T) {
	_, _, err := LoadFromBytes([]byte(`{"name": "x"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

// --- accessors ---

func TestVisibility_Defaults(t *testing.T) {
	n := &Node{}
	assert.True(t, n.IsVisible())
	assert.Equal(t, 1.0, n.OpacityValue())

	n.Visible = bptr(false)
	n.Opacity = fptr(0.5)
	assert.False(t, n.IsVisible())
	assert.Equal(t, 0.5, n.OpacityValue())
}

func TestVisibleChildren_FiltersHidden(t *testing.T) {
	n := &Node{Children: []*Node{
		{ID: "a"},
		{ID: "b", Visible: bptr(false)},
		{ID: "c"},
	}}
	vis := n.VisibleChildren()
	require.Len(t, vis, 2)
	assert.Equal(t, "a", vis[0].ID)
	assert.Equal(t, "c", vis[1].ID)
}

func TestUniformRadius(t *testing.T) {
	assert.Equal(t, 0.0, (&Node{}).UniformRadius())
	assert.Equal(t, 8.0, (&Node{Corners: &Corners{Uniform: fptr(8)}}).UniformRadius())
	assert.Equal(t, 12.0, (&Node{Corners: &Corners{TopLeft: fptr(4), BottomRight: fptr(12)}}).UniformRadius())
}

func TestWalk_Prunes(t *testing.T) {
	d := minimalDoc()
	var visited []string
	d.Root.Walk(func(n *Node) bool {
		visited = append(visited, n.ID)
		return n.Kind != KindContainer || n.ID == "1"
	})
	assert.Equal(t, []string{"1", "2", "3"}, visited)
	assert.Equal(t, 3, d.Root.Count())
}
