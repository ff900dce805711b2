package mcp

import (
	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

func compileDesignTool() mcpgo.Tool {
	return mcpgo.NewTool("compile_design",
		mcpgo.WithDescription("Compile a design document into semantic markup, a theme CSS block, and an asset manifest"),
		mcpgo.WithString("path",
			mcpgo.Required(),
			mcpgo.Description("Path to the .design.json document, absolute or relative to the workspace root"),
		),
	)
}

func extractTokensTool() mcpgo.Tool {
	return mcpgo.NewTool("extract_tokens",
		mcpgo.WithDescription("Extract only the design tokens of a document as an @theme CSS block"),
		mcpgo.WithString("path",
			mcpgo.Required(),
			mcpgo.Description("Path to the .design.json document, absolute or relative to the workspace root"),
		),
	)
}

func listDocumentsTool() mcpgo.Tool {
	return mcpgo.NewTool("list_documents",
		mcpgo.WithDescription("List every design document discovered under the workspace root"),
	)
}

func getThemeColorsTool() mcpgo.Tool {
	return mcpgo.NewTool("get_theme_colors",
		mcpgo.WithDescription("Return the active theme file and its hex-to-token color mapping"),
	)
}
