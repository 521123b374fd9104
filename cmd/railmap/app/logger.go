package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/railmap/pkg/logging"
)

var validLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// NewLogger creates a configured logger based on the application configuration.
// Log level precedence (highest to lowest):
//  1. --log-level flag or LOG_LEVEL
//  2. -q/--quiet flag (shortcut for warn)
//  3. -v/--verbose flag (shortcut for debug)
//  4. Default (info)
func NewLogger(config *Config) zerolog.Logger {
	level := determineLogLevel(config)

	return logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor || os.Getenv("NO_COLOR") != "",
		AddCaller: level == "trace",
	})
}

func determineLogLevel(config *Config) string {
	if config.LogLevel != "" {
		if validLevels[config.LogLevel] {
			return config.LogLevel
		}
		fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", config.LogLevel, "info")
		return "info"
	}

	if config.Verbose && config.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "warn"
	}
	if config.Quiet {
		return "warn"
	}
	if config.Verbose {
		return "debug"
	}
	return "info"
}
