package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gnana997/designc/pkg/workspace"
)

func newWatchCmd(flags *rootFlags) *cobra.Command {
	var outDir string
	var workers int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompile documents as they change on disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, logger, err := flags.openWorkspace()
			if err != nil {
				return err
			}
			defer ws.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			dir := resolveOutDir(flags.root, outDir)

			// Full build first so the output directory starts complete.
			outputs, failures, err := ws.CompileAll(ctx, workers)
			if err != nil {
				return err
			}
			for p, out := range outputs {
				if err := writeOutput(dir, docBase(p), out); err != nil {
					return err
				}
			}
			for _, f := range failures {
				logger.Error("compile failed", "document", f.Path, "error", f.Err)
			}

			w, err := workspace.NewWatcher(ws, workspace.WatchOptions{}, func(e workspace.Event) {
				switch e.Kind {
				case workspace.EventCompiled:
					if err := writeOutput(dir, docBase(e.Path), e.Output); err != nil {
						logger.Error("write failed", "document", e.Path, "error", err)
						return
					}
					logger.Info("recompiled", "document", e.Path)
				case workspace.EventThemeReloaded:
					logger.Info("theme reloaded", "theme", e.Path)
				case workspace.EventError:
					logger.Error("recompile failed", "document", e.Path, "error", e.Err)
				}
			}, logger)
			if err != nil {
				return err
			}
			if err := w.Start(); err != nil {
				return err
			}
			defer w.Stop()

			logger.Info("watching for changes", "root", ws.Root(), "out_dir", dir)
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Output directory (default: <root>/dist)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Worker count for the initial build")

	return cmd
}
