package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCompileCmd(flags *rootFlags) *cobra.Command {
	var outDir string
	var withCSS bool

	cmd := &cobra.Command{
		Use:   "compile <document>",
		Short: "Compile a single design document to markup and tokens",
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

			if outDir != "" {
				return writeOutput(outDir, docBase(args[0]), out)
			}

			fmt.Fprint(cmd.OutOrStdout(), out.Markup)
			if withCSS {
				fmt.Fprintln(cmd.OutOrStdout())
				fmt.Fprint(cmd.OutOrStdout(), out.CSS)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Write markup, CSS, and assets to this directory instead of stdout")
	cmd.Flags().BoolVar(&withCSS, "css", false, "Also print the @theme CSS block")

	return cmd
}
