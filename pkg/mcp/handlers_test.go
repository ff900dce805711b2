package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/designc/pkg/workspace"
)

// --- helpers ---

const sampleDoc = `{
	"name": "Sample",
	"version": "1",
	"root": {
		"id": "root", "name": "Page", "kind": "container",
		"x": 0, "y": 0, "width": 400, "height": 300,
		"fills": [{"type": "solid", "color": "#ffffff"}],
		"layout": {"mode": "column", "gap": 16},
		"children": [
			{
				"id": "t1", "name": "Title", "kind": "text",
				"x": 16, "y": 16, "width": 200, "height": 32,
				"characters": "Hello",
				"type_style": {"font_size_px": 24},
				"fills": [{"type": "solid", "color": "#111827"}]
			}
		]
	}
}`

func testServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".designc"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".designc", "theme.json"), []byte(`{"ink": "#111827"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "home.design.json"), []byte(sampleDoc), 0644))

	ws, err := workspace.New(dir, workspace.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })

	return NewServer(ws, nil)
}

func makeRequest(toolName string, args map[string]any) mcpgo.CallToolRequest {
	var arguments any
	if args != nil {
		arguments = args
	}
	return mcpgo.CallToolRequest{
		Params: mcpgo.CallToolParams{
			Name:      toolName,
			Arguments: arguments,
		},
	}
}

func resultText(t *testing.T, result *mcpgo.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcpgo.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return textContent.Text
}

// --- compile_design ---

func TestHandleCompileDesign(t *testing.T) {
	s := testServer(t)

	result, err := s.handleCompileDesign(context.Background(), makeRequest("compile_design", map[string]any{
		"path": "home.design.json",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
	assert.Contains(t, resp["markup"], "Hello")
	assert.Contains(t, resp["css"], "@theme {")
}

func TestHandleCompileDesign_MissingPath(t *testing.T) {
	s := testServer(t)

	result, err := s.handleCompileDesign(context.Background(), makeRequest("compile_design", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleCompileDesign_UnknownDocument(t *testing.T) {
	s := testServer(t)

	result, err := s.handleCompileDesign(context.Background(), makeRequest("compile_design", map[string]any{
		"path": "missing.design.json",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

// --- extract_tokens ---

func TestHandleExtractTokens(t *testing.T) {
	s := testServer(t)

	result, err := s.handleExtractTokens(context.Background(), makeRequest("extract_tokens", map[string]any{
		"path": "home.design.json",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	css := resultText(t, result)
	assert.Contains(t, css, "@theme {")
	assert.Contains(t, css, "--text-")
}

// --- list_documents ---

func TestHandleListDocuments(t *testing.T) {
	s := testServer(t)

	result, err := s.handleListDocuments(context.Background(), makeRequest("list_documents", nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var resp struct {
		Documents []string `json:"documents"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
	assert.Equal(t, []string{"home.design.json"}, resp.Documents)
}

// --- get_theme_colors ---

func TestHandleGetThemeColors(t *testing.T) {
	s := testServer(t)

	result, err := s.handleGetThemeColors(context.Background(), makeRequest("get_theme_colors", nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var resp struct {
		ThemePath string `json:"theme_path"`
		Colors    []struct {
			Hex  string `json:"hex"`
			Name string `json:"name"`
		} `json:"colors"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
	assert.NotEmpty(t, resp.ThemePath)
	require.Len(t, resp.Colors, 1)
	assert.Equal(t, "#111827", resp.Colors[0].Hex)
	assert.Equal(t, "ink", resp.Colors[0].Name)
}
