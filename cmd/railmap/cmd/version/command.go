// Package version provides the version command.
package version

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/railmap/cmd/application"
	"github.com/agentstation/railmap/internal/cmd/output"
	"github.com/agentstation/railmap/internal/cmd/table"
)

// Info is the build information printed by the version command.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	BuiltBy   string `json:"built_by" yaml:"built_by"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// NewCommand creates the version command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := Info{
				Version:   app.Version(),
				Commit:    app.Commit(),
				Date:      app.Date(),
				BuiltBy:   app.BuiltBy(),
				GoVersion: runtime.Version(),
			}
			rows := table.SummaryRows(
				"Version", info.Version,
				"Commit", info.Commit,
				"Date", info.Date,
				"Built By", info.BuiltBy,
				"Go", info.GoVersion,
			)
			return output.Print(cmd.OutOrStdout(), output.Format(app.OutputFormat()), rows, info)
		},
	}
}
