package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTokensCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens <document>",
		Short: "Print a document's design tokens as an @theme CSS block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, _, err := flags.openWorkspace()
			if err != nil {
				return err
			}
			defer ws.Close()

			out, err := ws.CompileFile(cmd.Context(), resolveDocPath(flags.root, args[0]))
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), out.CSS)
			return nil
		},
	}

	return cmd
}
