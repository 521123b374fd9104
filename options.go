package railmap

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/railmap/internal/matcher"
)

// Option is a function that configures a Pipeline.
type Option func(*config) error

// config holds the settings options can change.
type config struct {
	logger    *zerolog.Logger
	filter    *matcher.Filter
	outputDir string
	sqlite    string
	runID     string
}

// WithLogger configures the logger used for the run.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = &logger
		return nil
	}
}

// WithLineFilter restricts the run to line ids matching any of patterns.
// Patterns are globs or regular expressions; see the matcher package.
func WithLineFilter(patterns ...string) Option {
	return func(c *config) error {
		f, err := matcher.NewFilter(patterns...)
		if err != nil {
			return err
		}
		c.filter = f
		return nil
	}
}

// WithOutputDir overrides the project's output directory.
func WithOutputDir(dir string) Option {
	return func(c *config) error {
		c.outputDir = dir
		return nil
	}
}

// WithSQLite overrides the project's SQLite export path.
func WithSQLite(path string) Option {
	return func(c *config) error {
		c.sqlite = path
		return nil
	}
}

// WithRunID sets the run id attached to every log line. A random id is used
// otherwise.
func WithRunID(id string) Option {
	return func(c *config) error {
		c.runID = id
		return nil
	}
}
