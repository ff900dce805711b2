package main

import (
	"github.com/spf13/cobra"

	"github.com/gnana997/designc/pkg/mcp"
	"github.com/gnana997/designc/pkg/mcplog"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var mcpLog string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the workspace over the Model Context Protocol on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, logger, err := flags.openWorkspace()
			if err != nil {
				return err
			}
			defer ws.Close()

			callLog, err := mcplog.NewLogger(resolveMCPLog(flags.root, mcpLog))
			if err != nil {
				return err
			}
			if callLog != nil {
				defer callLog.Close()
			}

			logger.Info("starting MCP server", "root", ws.Root())
			return mcp.NewServer(ws, callLog).ServeStdio()
		},
	}

	cmd.Flags().StringVar(&mcpLog, "mcp-log", "", "Append a JSONL log of tool calls to this file")

	return cmd
}
