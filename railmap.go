// Package railmap builds a static transit map bundle from a project file.
//
// A run loads every configured station source into one catalog, resolves
// each line's stops against it and writes the resulting GeoJSON bundle.
// Nothing is written unless every stop resolves:
//
//	p, err := railmap.Open("bayarea/railmap.yaml")
//	if err != nil {
//		return err
//	}
//	report, err := p.Run(ctx)
package railmap

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/agentstation/railmap/pkg/assembler"
	"github.com/agentstation/railmap/pkg/bundle"
	"github.com/agentstation/railmap/pkg/errors"
	"github.com/agentstation/railmap/pkg/lines"
	"github.com/agentstation/railmap/pkg/logging"
	"github.com/agentstation/railmap/pkg/project"
	"github.com/agentstation/railmap/pkg/sources"
	"github.com/agentstation/railmap/pkg/stations"
)

// Pipeline runs one project.
type Pipeline struct {
	project *project.Project
	config  *config
}

// SourceReport is the ingestion outcome of one source.
type SourceReport struct {
	ID   sources.ID   `json:"id" yaml:"id"`
	Type sources.Type `json:"type" yaml:"type"`
	sources.Stats `yaml:",inline"`
}

// Report describes a finished run.
type Report struct {
	RunID     string                       `json:"run_id" yaml:"run_id"`
	OutputDir string                       `json:"output_dir" yaml:"output_dir"`
	Sources   []SourceReport               `json:"sources" yaml:"sources"`
	Result    *assembler.Result            `json:"-" yaml:"-"`
	Manifest  *bundle.Manifest             `json:"manifest,omitempty" yaml:"manifest,omitempty"`
	Missing   []assembler.MissingReference `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// Open loads the project file at path and creates a Pipeline for it.
func Open(path string, opts ...Option) (*Pipeline, error) {
	proj, err := project.Load(path)
	if err != nil {
		return nil, err
	}
	return New(proj, opts...)
}

// New creates a Pipeline for an already parsed project.
func New(proj *project.Project, opts ...Option) (*Pipeline, error) {
	if proj == nil {
		return nil, errors.NewValidationError("project", nil, "project is required")
	}
	p := &Pipeline{project: proj, config: &config{}}
	if err := p.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}
	if p.config.logger == nil {
		p.config.logger = logging.Default()
	}
	if p.config.runID == "" {
		p.config.runID = uuid.NewString()
	}
	return p, nil
}

func (p *Pipeline) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(p.config); err != nil {
			return err
		}
	}
	return nil
}

// Project returns the project being run.
func (p *Pipeline) Project() *project.Project {
	return p.project
}

// RunID returns the id attached to this pipeline's log lines.
func (p *Pipeline) RunID() string {
	return p.config.runID
}

// OutputDir returns the directory the bundle is written to.
func (p *Pipeline) OutputDir() string {
	if p.config.outputDir != "" {
		return filepath.Clean(p.config.outputDir)
	}
	return p.project.OutputDir()
}

// SQLitePath returns the SQLite export path, or "" when disabled.
func (p *Pipeline) SQLitePath() string {
	if p.config.sqlite != "" {
		return p.config.sqlite
	}
	return p.project.SQLitePath()
}

func (p *Pipeline) context(ctx context.Context) context.Context {
	if logging.RunID(ctx) == p.config.runID {
		return ctx
	}
	ctx = logging.WithLogger(ctx, p.config.logger)
	return logging.WithRunID(ctx, p.config.runID)
}

// Lines returns the project's line table with the line filter applied.
func (p *Pipeline) Lines() (*lines.Table, error) {
	table, err := p.project.LineTable()
	if err != nil {
		return nil, err
	}
	f := p.config.filter
	if f.Empty() {
		return table, nil
	}

	if unused := f.Unused(table.IDs()); len(unused) > 0 {
		p.config.logger.Warn().Strs("patterns", unused).Msg("Line filter patterns matched no line")
	}
	filtered := table.Filter(f.Match)
	if len(filtered.Lines) == 0 {
		return nil, errors.NewValidationError("lines", f.Patterns(), "line filter selected no lines")
	}
	return filtered, nil
}

// Catalog loads every source, in declaration order, into a new catalog.
func (p *Pipeline) Catalog(ctx context.Context) (*stations.Catalog, []SourceReport, error) {
	ctx = p.context(ctx)
	log := logging.FromContext(ctx)

	srcs, err := p.project.BuildSources()
	if err != nil {
		return nil, nil, err
	}

	catalog := stations.NewCatalog()
	reports := make([]SourceReport, 0, srcs.Len())
	for _, src := range srcs.List() {
		srcCtx := logging.WithSource(ctx, string(src.ID()))
		stats, err := src.Load(srcCtx, catalog)
		if err != nil {
			return nil, nil, errors.WrapResource("load", "source", string(src.ID()), err)
		}
		logging.FromContext(srcCtx).Debug().
			Int("read", stats.Read).
			Int("accepted", stats.Accepted).
			Int("rejected", stats.Rejected).
			Msg("Loaded source")
		reports = append(reports, SourceReport{ID: src.ID(), Type: src.Type(), Stats: stats})
	}

	log.Info().
		Int("stations", catalog.Len()).
		Int("rejected", catalog.Rejected()).
		Int("sources", len(reports)).
		Msg("Catalog ready")
	return catalog, reports, nil
}

// Assemble loads the catalog and resolves every selected line. The result
// may carry missing references; nothing is written.
func (p *Pipeline) Assemble(ctx context.Context) (*assembler.Result, []SourceReport, error) {
	table, err := p.Lines()
	if err != nil {
		return nil, nil, err
	}
	catalog, reports, err := p.Catalog(ctx)
	if err != nil {
		return nil, nil, err
	}

	log := logging.FromContext(p.context(ctx))
	result, err := assembler.Build(catalog, table.Lines, assembler.WithLogger(*log))
	if err != nil {
		return nil, reports, err
	}
	return result, reports, nil
}

// Run assembles the project and writes the bundle. When any stop fails to
// resolve, every missing reference is logged, nothing is written, and the
// returned error matches errors.ErrUnresolved. The report is returned in
// both cases.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	ctx = logging.WithOperation(p.context(ctx), "build")
	log := logging.FromContext(ctx)

	report := &Report{RunID: p.config.runID, OutputDir: p.OutputDir()}
	result, reports, err := p.Assemble(ctx)
	report.Sources = reports
	if err != nil {
		return report, err
	}
	report.Result = result

	if !result.IsComplete() {
		report.Missing = result.Missing
		for _, m := range result.Missing {
			logging.FromContext(logging.WithLine(ctx, m.Line)).Error().
				Str("stop", m.DisplayName).
				Str("match", m.MatchName).
				Msg("Missing station")
		}
		log.Error().Int("missing", len(result.Missing)).Msg(result.Summary())
		return report, result.Err()
	}

	var opts []bundle.Option
	opts = append(opts, bundle.WithLogger(*log))
	if path := p.SQLitePath(); path != "" {
		opts = append(opts, bundle.WithSQLite(path))
	}
	manifest, err := bundle.Write(ctx, result, report.OutputDir, opts...)
	if err != nil {
		return report, err
	}
	report.Manifest = manifest

	log.Info().Str("output", report.OutputDir).Msg(result.Summary())
	return report, nil
}
