package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/railmap/cmd/railmap/cmd/build"
	"github.com/agentstation/railmap/cmd/railmap/cmd/resolve"
	"github.com/agentstation/railmap/cmd/railmap/cmd/tokenize"
	"github.com/agentstation/railmap/cmd/railmap/cmd/validate"
	"github.com/agentstation/railmap/cmd/railmap/cmd/version"
	"github.com/agentstation/railmap/internal/cmd/output"
)

// Execute runs the railmap CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	if a.out != nil {
		rootCmd.SetOut(a.out)
	}
	if a.errOut != nil {
		rootCmd.SetErr(a.errOut)
	}
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "railmap",
		Short:   "Static transit map bundle builder",
		Version: a.version,
		Long: `Railmap builds the station and route GeoJSON for a transit map.

It loads every station source listed in a project file, resolves each
line's stops against those stations by token matching, and writes
features.json, routes.json, lines.json and manifest.json. A build fails
without writing anything if any stop cannot be found.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "diagnostics", Title: "Diagnostic Commands:"})

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.railmap.yaml)")
	flags.StringVarP(&a.config.Project, "project", "p", a.config.Project, "project file (default is ./railmap.yaml)")
	flags.BoolVarP(&a.config.Verbose, "verbose", "v", a.config.Verbose, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&a.config.Quiet, "quiet", "q", a.config.Quiet, "minimal output (shortcut for --log-level=warn)")
	flags.BoolVar(&a.config.NoColor, "no-color", a.config.NoColor, "disable colored output")
	flags.StringVarP(&a.config.Format, "format", "o", a.config.Format, "output format: table, json, yaml")
	flags.StringVar(&a.config.LogLevel, "log-level", a.config.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("railmap {{.Version}}\n")

	a.registerCommands(rootCmd)
	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	if _, err := output.ParseFormat(format); err != nil {
		return err
	}
	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)

	// Keep an injected logger; otherwise rebuild from the final config.
	if !a.customLogger {
		logger := NewLogger(a.config)
		a.logger = &logger
	}
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(build.NewCommand(a))
	rootCmd.AddCommand(validate.NewCommand(a))

	rootCmd.AddCommand(resolve.NewCommand(a))
	rootCmd.AddCommand(tokenize.NewCommand(a))

	rootCmd.AddCommand(version.NewCommand(a))
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
