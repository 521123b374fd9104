// Package build provides the build command.
package build

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/railmap"
	"github.com/agentstation/railmap/cmd/application"
	"github.com/agentstation/railmap/internal/cmd/output"
	"github.com/agentstation/railmap/internal/cmd/table"
)

// Flags holds the build command flags.
type Flags struct {
	Lines  []string
	Out    string
	SQLite string
}

// NewCommand creates the build command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "build",
		GroupID: "core",
		Short:   "Build the map bundle for a project",
		Long: `Build loads every station source, resolves every stop of every line
and writes the bundle.

If any stop cannot be resolved, every missing stop is listed and nothing
is written.`,
		Example: `  railmap build
  railmap build -p bayarea/railmap.yaml --out public/data
  railmap build --lines 'BART*' --sqlite railmap.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, flags)
		},
	}

	cmd.Flags().StringSliceVarP(&flags.Lines, "lines", "l", nil, "only build lines matching these glob or regex patterns")
	cmd.Flags().StringVar(&flags.Out, "out", "", "output directory (overrides the project)")
	cmd.Flags().StringVar(&flags.SQLite, "sqlite", "", "also export the bundle to this SQLite file")

	return cmd
}

func (f *Flags) options() []railmap.Option {
	var opts []railmap.Option
	if len(f.Lines) > 0 {
		opts = append(opts, railmap.WithLineFilter(f.Lines...))
	}
	if f.Out != "" {
		opts = append(opts, railmap.WithOutputDir(f.Out))
	}
	if f.SQLite != "" {
		opts = append(opts, railmap.WithSQLite(f.SQLite))
	}
	return opts
}

func run(cmd *cobra.Command, app application.Application, flags *Flags) error {
	p, err := app.Pipeline(flags.options()...)
	if err != nil {
		return err
	}

	report, err := p.Run(cmd.Context())
	format := output.Format(app.OutputFormat())

	if report != nil && len(report.Missing) > 0 {
		if perr := output.Print(cmd.ErrOrStderr(), format, table.MissingToTableData(report.Missing), report.Missing); perr != nil {
			return perr
		}
	}
	if err != nil {
		return err
	}

	if format != output.FormatTable && format != "" {
		return output.NewFormatter(format).Format(cmd.OutOrStdout(), report)
	}

	w := cmd.OutOrStdout()
	if err := output.Print(w, format, table.SourcesToTableData(report.Sources), nil); err != nil {
		return err
	}
	summary := table.SummaryRows(
		"Run", report.RunID,
		"Output", report.OutputDir,
		"Stations", report.Manifest.Stations,
		"Lines", report.Manifest.Lines,
		"Routes", report.Manifest.Routes,
	)
	if err := output.Print(w, format, summary, nil); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, report.Result.Summary())
	return err
}
