// Package application provides a stub of the CLI application interface for
// command tests.
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/railmap"
)

// Mock implements application.Application. Each method can be customized
// by setting the corresponding function field; nil fields return defaults.
//
//	mock := &application.Mock{
//	    ProjectPathFunc: func() string { return "testdata/railmap.yaml" },
//	}
//	cmd := validate.NewCommand(mock)
type Mock struct {
	PipelineFunc     func(opts ...railmap.Option) (*railmap.Pipeline, error)
	ProjectPathFunc  func() string
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Pipeline uses the mock function, or opens ProjectPath with a no-op logger.
func (m *Mock) Pipeline(opts ...railmap.Option) (*railmap.Pipeline, error) {
	if m.PipelineFunc != nil {
		return m.PipelineFunc(opts...)
	}
	all := append([]railmap.Option{railmap.WithLogger(*m.Logger())}, opts...)
	return railmap.Open(m.ProjectPath(), all...)
}

// ProjectPath returns the project path using the mock function or "railmap.yaml".
func (m *Mock) ProjectPath() string {
	if m.ProjectPathFunc != nil {
		return m.ProjectPathFunc()
	}
	return "railmap.yaml"
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builder using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
