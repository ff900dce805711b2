package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sort"

	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/designc/pkg/compiler"
)

type assetInfo struct {
	ID        int    `json:"id"`
	FileName  string `json:"file_name"`
	MIME      string `json:"mime"`
	SizeBytes int    `json:"size_bytes"`
}

type roleInfo struct {
	Role string `json:"role"`
	Hex  string `json:"hex"`
}

type compileResponse struct {
	Markup string      `json:"markup"`
	CSS    string      `json:"css"`
	Assets []assetInfo `json:"assets"`
	Roles  []roleInfo  `json:"roles"`
}

type themeColor struct {
	Hex  string `json:"hex"`
	Name string `json:"name"`
}

type themeResponse struct {
	ThemePath string       `json:"theme_path"`
	Colors    []themeColor `json:"colors"`
}

// resolve turns a tool-supplied path into an absolute one rooted at
// the workspace.
func (s *Server) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.ws.Root(), path)
}

func (s *Server) handleCompileDesign(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcpgo.NewToolResultError("path is required"), nil
	}

	out, err := s.ws.CompileFile(ctx, s.resolve(path))
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}

	return jsonResult(compileResponse{
		Markup: out.Markup,
		CSS:    out.CSS,
		Assets: assetManifest(out),
		Roles:  roleList(out),
	})
}

func (s *Server) handleExtractTokens(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcpgo.NewToolResultError("path is required"), nil
	}

	out, err := s.ws.CompileFile(ctx, s.resolve(path))
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}

	return mcpgo.NewToolResultText(out.CSS), nil
}

func (s *Server) handleListDocuments(_ context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	paths, err := s.ws.Documents()
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}

	rel := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(s.ws.Root(), p)
		if err != nil {
			r = p
		}
		rel = append(rel, filepath.ToSlash(r))
	}

	return jsonResult(map[string]any{"documents": rel})
}

func (s *Server) handleGetThemeColors(_ context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	colors := s.ws.Theme()

	entries := make([]themeColor, 0, len(colors))
	for hex, name := range colors {
		entries = append(entries, themeColor{Hex: hex, Name: name})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Hex < entries[j].Hex })

	return jsonResult(themeResponse{
		ThemePath: s.ws.ThemePath(),
		Colors:    entries,
	})
}

func assetManifest(out *compiler.Output) []assetInfo {
	ids := make([]int, 0, len(out.Assets))
	for id := range out.Assets {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	infos := make([]assetInfo, 0, len(ids))
	for _, id := range ids {
		a := out.Assets[id]
		infos = append(infos, assetInfo{
			ID:        a.ID,
			FileName:  a.FileName,
			MIME:      a.MIME,
			SizeBytes: len(a.Bytes),
		})
	}
	return infos
}

func roleList(out *compiler.Output) []roleInfo {
	roles := make([]roleInfo, 0, len(out.Roles.Roles))
	for _, a := range out.Roles.Roles {
		roles = append(roles, roleInfo{Role: string(a.Role), Hex: a.Hex})
	}
	return roles
}

func jsonResult(v any) (*mcpgo.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcpgo.NewToolResultText(string(b)), nil
}
