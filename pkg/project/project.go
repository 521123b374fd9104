// Package project loads a railmap project file: the ordered list of station
// sources, the line table, and where to write the bundle.
//
//	name: bayarea
//	output: dist
//	lines_file: lines.yaml
//	sources:
//	  - id: bart
//	    type: geojson
//	    path: data/BART_Stations_2025.geojson
//	    name_fields: [Name2, Name]
//	    agency: BART
//	  - id: manual
//	    type: manual
//	    stations:
//	      - {name: Stanford Station, lon: -122.1611, lat: 37.4342}
//
// Relative paths are resolved against the directory holding the project file.
package project

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/railmap/internal/sources/registry"
	"github.com/agentstation/railmap/internal/validation"
	"github.com/agentstation/railmap/pkg/constants"
	"github.com/agentstation/railmap/pkg/errors"
	"github.com/agentstation/railmap/pkg/lines"
	"github.com/agentstation/railmap/pkg/sources"
)

// Project is a parsed project file.
type Project struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Output is the bundle directory. Default "dist".
	Output string `yaml:"output,omitempty" json:"output,omitempty"`

	// SQLite, when set, also exports the bundle to this database file.
	SQLite string `yaml:"sqlite,omitempty" json:"sqlite,omitempty"`

	// LinesFile is a line table file. Inline Lines are appended after it.
	LinesFile string             `yaml:"lines_file,omitempty" json:"lines_file,omitempty" validate:"required_without=Lines"`
	Lines     []lines.Definition `yaml:"lines,omitempty" json:"lines,omitempty"`

	// Sources load in this order.
	Sources []sources.Config `yaml:"sources" json:"sources" validate:"required,min=1,unique=ID,dive"`

	path string
}

// Load reads and validates the project file at path.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates a project file. path anchors relative paths.
func Parse(data []byte, path string) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, &errors.ParseError{
			Format:  "yaml",
			File:    path,
			Message: yaml.FormatError(err, false, true),
			Err:     err,
		}
	}
	if err := validation.Struct(&p); err != nil {
		return nil, err
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	p.path = path
	return &p, nil
}

// Path returns the absolute path of the project file.
func (p *Project) Path() string {
	return p.path
}

// Dir returns the directory relative paths resolve against.
func (p *Project) Dir() string {
	if p.path == "" {
		return ""
	}
	return filepath.Dir(p.path)
}

// OutputDir returns the resolved bundle directory.
func (p *Project) OutputDir() string {
	out := p.Output
	if out == "" {
		out = constants.DefaultOutputDir
	}
	return registry.ResolvePath(out, p.Dir())
}

// SQLitePath returns the resolved database path, or "" when export is off.
func (p *Project) SQLitePath() string {
	return registry.ResolvePath(p.SQLite, p.Dir())
}

// LineTable loads the lines file, appends the inline lines and validates
// the combined table.
func (p *Project) LineTable() (*lines.Table, error) {
	table := &lines.Table{}
	if p.LinesFile != "" {
		path := registry.ResolvePath(p.LinesFile, p.Dir())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapIO("read", path, err)
		}
		if err := yaml.Unmarshal(data, table); err != nil {
			return nil, errors.WrapParse("yaml", path, err)
		}
	}
	table.Lines = append(table.Lines, p.Lines...)

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// BuildSources creates the configured sources in declaration order.
func (p *Project) BuildSources() (*sources.Sources, error) {
	return registry.Build(p.Sources, p.Dir())
}
