package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newBuildCmd(flags *rootFlags) *cobra.Command {
	var outDir string
	var workers int

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile every design document in the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, logger, err := flags.openWorkspace()
			if err != nil {
				return err
			}
			defer ws.Close()

			outputs, failures, err := ws.CompileAll(cmd.Context(), workers)
			if err != nil {
				return err
			}

			paths := make([]string, 0, len(outputs))
			for p := range outputs {
				paths = append(paths, p)
			}
			sort.Strings(paths)

			dir := resolveOutDir(flags.root, outDir)
			for _, p := range paths {
				if err := writeOutput(dir, docBase(p), outputs[p]); err != nil {
					return err
				}
				logger.Info("wrote document", "document", p)
			}

			for _, f := range failures {
				logger.Error("compile failed", "document", f.Path, "error", f.Err)
			}
			if len(failures) > 0 {
				return fmt.Errorf("%d of %d documents failed to compile", len(failures), len(outputs)+len(failures))
			}

			logger.Info("build complete", "documents", len(outputs), "out_dir", dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Output directory (default: <root>/dist)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Worker count (0 = auto-detect from CPU count)")

	return cmd
}
