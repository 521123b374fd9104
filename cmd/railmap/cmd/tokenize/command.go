// Package tokenize provides the tokenize command.
package tokenize

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/railmap/cmd/application"
	"github.com/agentstation/railmap/internal/cmd/output"
	"github.com/agentstation/railmap/internal/cmd/table"
)

// NewCommand creates the tokenize command. It needs no project file.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "tokenize <name>...",
		GroupID: "diagnostics",
		Short:   "Print the tokens a station name is matched by",
		Example: `  railmap tokenize "12th St/Oakland City Center" "King St & 4th St"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([]table.TokenRow, 0, len(args))
			for _, name := range args {
				rows = append(rows, table.NewTokenRow(name))
			}
			return output.Print(cmd.OutOrStdout(), output.Format(app.OutputFormat()), table.TokensToTableData(rows), rows)
		},
	}
}
