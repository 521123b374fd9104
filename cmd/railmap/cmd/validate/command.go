// Package validate provides the validate command.
package validate

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/railmap/cmd/application"
	"github.com/agentstation/railmap/internal/cmd/output"
	"github.com/agentstation/railmap/internal/cmd/table"
	"github.com/agentstation/railmap/pkg/lines"
)

// Summary describes a valid project.
type Summary struct {
	Project string             `json:"project" yaml:"project"`
	Sources []string           `json:"sources" yaml:"sources"`
	Lines   []lines.Definition `json:"lines" yaml:"lines"`
	Stops   int                `json:"stops" yaml:"stops"`
}

// NewCommand creates the validate command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "validate",
		GroupID: "core",
		Short:   "Check the project file and line table without loading data",
		Long: `Validate parses the project file and its line table and checks them:
source settings, unique line ids, non-empty stop lists, hex colors and
segment station names. No station source is read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.Pipeline()
			if err != nil {
				return err
			}
			lineTable, err := p.Lines()
			if err != nil {
				return err
			}
			srcs, err := p.Project().BuildSources()
			if err != nil {
				return err
			}

			summary := Summary{Project: app.ProjectPath(), Lines: lineTable.Lines, Stops: lineTable.StopCount()}
			for _, id := range srcs.IDs() {
				summary.Sources = append(summary.Sources, string(id))
			}

			if err := output.Print(cmd.OutOrStdout(), output.Format(app.OutputFormat()), table.LinesToTableData(lineTable), summary); err != nil {
				return err
			}
			app.Logger().Info().
				Int("sources", len(summary.Sources)).
				Int("lines", len(summary.Lines)).
				Int("stops", summary.Stops).
				Msg("Project is valid")
			return nil
		},
	}
}
