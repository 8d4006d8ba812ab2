package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/buildinfo"
)

// Execute runs the generate-osv-config CLI and returns an error if any
// command fails. This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (generate,
// chains, cache), configures logging based on the --verbose flag, and
// executes the command tree.
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
		Use:          "generate-osv-config",
		Short:        "generate-osv-config builds osv-scanner ignore lists interactively",
		Long:         `generate-osv-config scans a JavaScript project with osv-scanner, explains each finding with the dependency chain that pulls it in, and interactively builds the osv-scanner.toml ignore list.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newChainsCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
