package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gnana997/designc/pkg/util"
	"github.com/gnana997/designc/pkg/workspace"
)

type rootFlags struct {
	verbose   bool
	logFormat string
	root      string
	theme     string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "designc",
		Short:         "designc compiles design documents into semantic markup and design tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "text", "Log format: text or json")
	cmd.PersistentFlags().StringVar(&flags.root, "root", ".", "Workspace root directory")
	cmd.PersistentFlags().StringVar(&flags.theme, "theme", "", "Theme file (default: auto-discover)")

	cmd.AddCommand(newCompileCmd(flags))
	cmd.AddCommand(newTokensCmd(flags))
	cmd.AddCommand(newBuildCmd(flags))
	cmd.AddCommand(newWatchCmd(flags))
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// logger builds the process logger from the persistent flags. Logs go
// to stderr so stdout stays clean for compiled output.
func (f *rootFlags) logger() *slog.Logger {
	cfg := util.DefaultLoggerConfig()
	if f.verbose {
		cfg.Level = util.LevelDebug
	}
	if f.logFormat == "json" {
		cfg.Format = util.FormatJSON
	}
	return util.NewLogger(cfg)
}

// openWorkspace opens the workspace named by the persistent flags,
// applying the flag -> project config -> auto-discovery chain for the
// theme path.
func (f *rootFlags) openWorkspace() (*workspace.Workspace, *slog.Logger, error) {
	logger := f.logger()

	ws, err := workspace.New(f.root, workspace.Options{
		ThemePath: resolveThemePath(f.root, f.theme),
		Logger:    logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return ws, logger, nil
}
