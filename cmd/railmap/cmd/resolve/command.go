// Package resolve provides the resolve command, which shows how names and
// line stops match against the station catalog.
package resolve

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/railmap"
	"github.com/agentstation/railmap/cmd/application"
	"github.com/agentstation/railmap/internal/cmd/output"
	"github.com/agentstation/railmap/internal/cmd/table"
	"github.com/agentstation/railmap/pkg/assembler"
	"github.com/agentstation/railmap/pkg/errors"
	"github.com/agentstation/railmap/pkg/stations"
)

// Flags holds the resolve command flags.
type Flags struct {
	Agencies []string
	Lines    []string
	Limit    int
}

// Query is the ranked candidate list for one name.
type Query struct {
	Query      string               `json:"query" yaml:"query"`
	Agencies   []string             `json:"agencies,omitempty" yaml:"agencies,omitempty"`
	Candidates []stations.Candidate `json:"candidates" yaml:"candidates"`
}

// NewCommand creates the resolve command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "resolve [name...]",
		GroupID: "diagnostics",
		Short:   "Show which stations a name or a line's stops resolve to",
		Long: `Resolve loads the project's station sources and shows how names match.

With names, it lists the ranked candidates for each name; the first one is
what a line stop with that name would use. Without names, it resolves every
stop of the project's lines (or those selected with --lines) and marks the
ones that would fail a build.`,
		Example: `  railmap resolve "Powell St"
  railmap resolve Millbrae --agency Caltrain
  railmap resolve --lines 'BART*'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return runQueries(cmd, app, flags, args)
			}
			return runLines(cmd, app, flags)
		},
	}

	cmd.Flags().StringSliceVarP(&flags.Agencies, "agency", "a", nil, "preferred agencies for name queries")
	cmd.Flags().StringSliceVarP(&flags.Lines, "lines", "l", nil, "only resolve lines matching these patterns")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "n", 5, "maximum candidates per name (0 for all)")

	return cmd
}

func runQueries(cmd *cobra.Command, app application.Application, flags *Flags, names []string) error {
	p, err := app.Pipeline()
	if err != nil {
		return err
	}
	catalog, _, err := p.Catalog(cmd.Context())
	if err != nil {
		return err
	}

	queries := make([]Query, 0, len(names))
	for _, name := range names {
		candidates := catalog.Candidates(name, flags.Agencies)
		if flags.Limit > 0 && len(candidates) > flags.Limit {
			candidates = candidates[:flags.Limit]
		}
		queries = append(queries, Query{Query: name, Agencies: flags.Agencies, Candidates: candidates})
	}

	format := output.Format(app.OutputFormat())
	if format != output.FormatTable && format != "" {
		return output.NewFormatter(format).Format(cmd.OutOrStdout(), queries)
	}

	w := cmd.OutOrStdout()
	for _, q := range queries {
		fmt.Fprintln(w, q.Query)
		if len(q.Candidates) == 0 {
			fmt.Fprintln(w, "  no station found")
			continue
		}
		if err := output.Print(w, format, table.CandidatesToTableData(q.Candidates), nil); err != nil {
			return err
		}
	}
	return nil
}

func runLines(cmd *cobra.Command, app application.Application, flags *Flags) error {
	var opts []railmap.Option
	if len(flags.Lines) > 0 {
		opts = append(opts, railmap.WithLineFilter(flags.Lines...))
	}
	p, err := app.Pipeline(opts...)
	if err != nil {
		return err
	}
	lineTable, err := p.Lines()
	if err != nil {
		return err
	}
	catalog, _, err := p.Catalog(cmd.Context())
	if err != nil {
		return err
	}

	var (
		rows    []table.StopResolution
		missing int
	)
	for _, def := range lineTable.Lines {
		for _, stop := range def.Stops {
			row := table.StopResolution{Line: def.ID, Stop: stop.Name, Match: stop.MatchName()}
			if rec, ok := assembler.Resolve(catalog, stop, def.Agencies); ok {
				row.Station = rec.Name
				row.Agency = rec.Agency
				row.Position = rec.Coordinate.String()
			} else {
				missing++
			}
			rows = append(rows, row)
		}
	}

	if err := output.Print(cmd.OutOrStdout(), output.Format(app.OutputFormat()), table.StopsToTableData(rows), rows); err != nil {
		return err
	}
	if missing > 0 {
		return fmt.Errorf("%w: %d of %d stops", errors.ErrUnresolved, missing, len(rows))
	}
	return nil
}
