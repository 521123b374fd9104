// Package application provides the application interface for railmap commands.
//
// Commands accept this interface rather than the concrete App type so they
// can be tested against a stub:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            p, err := app.Pipeline()
//	            if err != nil {
//	                return err
//	            }
//	            _, err = p.Run(cmd.Context())
//	            return err
//	        },
//	    }
//	}
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/railmap"
)

// Application provides what commands need from the CLI container.
type Application interface {
	// Pipeline opens the configured project. Options are applied after the
	// ones derived from configuration, so they win.
	Pipeline(opts ...railmap.Option) (*railmap.Pipeline, error)

	// ProjectPath returns the project file the pipeline opens.
	ProjectPath() string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
