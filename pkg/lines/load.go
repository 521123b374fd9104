package lines

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/railmap/internal/validation"
	"github.com/agentstation/railmap/pkg/errors"
)

// Load reads and validates a line table from path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates a line table. name is used in error messages.
func Parse(data []byte, name string) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, &errors.ParseError{
			Format:  "yaml",
			File:    name,
			Message: yaml.FormatError(err, false, true),
			Err:     err,
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks field constraints, then that every segment names only
// stops declared on its own line.
func (t *Table) Validate() error {
	if err := validation.Struct(t); err != nil {
		return err
	}
	for _, l := range t.Lines {
		if err := l.checkSegments(); err != nil {
			return err
		}
	}
	return nil
}

func (d Definition) checkSegments() error {
	if !d.HasSegments() {
		return nil
	}
	declared := make(map[string]struct{}, len(d.Stops))
	for _, s := range d.Stops {
		declared[s.Name] = struct{}{}
	}
	for i, seg := range d.Segments {
		for _, name := range seg {
			if _, ok := declared[name]; !ok {
				return errors.NewConfigError(
					"line "+d.ID,
					fmt.Sprintf("segment %d references unknown station %q", i+1, name),
					nil,
				)
			}
		}
	}
	return nil
}
