package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/neophoriac/SimpleDraggable/pkg/buildinfo"
)

// Execute runs the simpledraggable CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (demo, offset,
// serve), configures logging based on the --verbose flag, and executes the
// command tree. The given context is canceled when the process receives an
// interrupt, which lets long-running commands such as serve shut down cleanly.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "simpledraggable",
		Short:        "SimpleDraggable repositions screen elements and syncs their offsets",
		Long:         `SimpleDraggable is a drag-to-reposition engine with persistent, cross-view offset synchronization. The CLI ships a terminal playground, offset management commands, and an HTTP sync service.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newDemoCmd())
	root.AddCommand(newOffsetCmd())
	root.AddCommand(newServeCmd())

	return root.ExecuteContext(ctx)
}
