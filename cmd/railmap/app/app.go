// Package app provides the application context and dependency management
// for the railmap CLI. It centralizes configuration, logging and the
// project pipeline so commands only depend on application.Application.
package app

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/railmap"
	"github.com/agentstation/railmap/pkg/errors"
)

// App represents the railmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config       *Config
	logger       *zerolog.Logger
	customLogger bool

	// out and errOut replace stdout and stderr when set.
	out    io.Writer
	errOut io.Writer
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration from the environment, which
// can be replaced using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// ProjectPath returns the project file to open.
func (a *App) ProjectPath() string {
	return a.config.ProjectPath()
}

// Pipeline opens the configured project with options derived from the
// configuration, followed by opts.
func (a *App) Pipeline(opts ...railmap.Option) (*railmap.Pipeline, error) {
	all := a.pipelineOptions()
	all = append(all, opts...)

	p, err := railmap.Open(a.ProjectPath(), all...)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// pipelineOptions constructs pipeline options from the app configuration.
func (a *App) pipelineOptions() []railmap.Option {
	opts := []railmap.Option{railmap.WithLogger(*a.logger)}

	if a.config.OutputDir != "" {
		opts = append(opts, railmap.WithOutputDir(a.config.OutputDir))
	}
	if a.config.SQLite != "" {
		opts = append(opts, railmap.WithSQLite(a.config.SQLite))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		a.customLogger = true
		return nil
	}
}

// WithOutput redirects command output and errors, mostly for tests.
func WithOutput(out, errOut io.Writer) Option {
	return func(a *App) error {
		a.out = out
		a.errOut = errOut
		return nil
	}
}
