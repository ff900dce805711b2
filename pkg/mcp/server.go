// Package mcp exposes the design compiler over the Model Context
// Protocol, so coding agents can compile documents and query tokens
// without shelling out to the CLI.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/designc/pkg/mcplog"
	"github.com/gnana997/designc/pkg/workspace"
)

const serverVersion = "0.1.0"

// Server exposes workspace compilation tools over MCP stdio.
type Server struct {
	mcpServer *server.MCPServer
	ws        *workspace.Workspace
	logger    *mcplog.Logger // nil disables tool-call logging
}

// NewServer creates an MCP server backed by the given workspace. The
// mcplog logger is optional; nil disables the JSONL call log.
func NewServer(ws *workspace.Workspace, logger *mcplog.Logger) *Server {
	s := &Server{ws: ws, logger: logger}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("designc", serverVersion, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: compileDesignTool(), Handler: s.handleCompileDesign},
		server.ServerTool{Tool: extractTokensTool(), Handler: s.handleExtractTokens},
		server.ServerTool{Tool: listDocumentsTool(), Handler: s.handleListDocuments},
		server.ServerTool{Tool: getThemeColorsTool(), Handler: s.handleGetThemeColors},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout. Blocks until the
// client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
