// Package lines defines transit line tables: ordered stop references that
// the assembler resolves against the station catalog.
//
// A line table is YAML. A stop is either a bare display name or a mapping:
//
//	lines:
//	  - id: SacRTGreen
//	    color: "#00A650"
//	    agencies: [SacRT]
//	    stops:
//	      - name: 13th Street
//	        match: 13Th Street Station
//	      - Archives Plaza
//
// Anchors and aliases may be used to share stops between lines.
package lines

// Stop is one stop reference within a line.
type Stop struct {
	// Name is the display name written to the output.
	Name string `yaml:"name" json:"name" validate:"required"`

	// Match is the name looked up in the catalog. Empty means Name.
	Match string `yaml:"match,omitempty" json:"match,omitempty"`

	// Alternates are extra names emitted with the feature.
	Alternates []string `yaml:"alternates,omitempty" json:"alternates,omitempty"`
}

// MatchName returns the name to resolve against the catalog.
func (s Stop) MatchName() string {
	if s.Match == "" {
		return s.Name
	}
	return s.Match
}

// UnmarshalYAML accepts a bare string as shorthand for a stop with only a name.
func (s *Stop) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	if name, ok := raw.(string); ok {
		*s = Stop{Name: name}
		return nil
	}

	type plain Stop
	var p plain
	if err := unmarshal(&p); err != nil {
		return err
	}
	*s = Stop(p)
	return nil
}

// Segment is an explicit run of stop display names drawn as one route.
type Segment []string

// Definition is one line: its stops in route order and optional display data.
type Definition struct {
	ID       string    `yaml:"id" json:"id" validate:"required"`
	Name     string    `yaml:"name,omitempty" json:"name,omitempty"`
	Color    string    `yaml:"color,omitempty" json:"color,omitempty" validate:"omitempty,linecolor"`
	Agencies []string  `yaml:"agencies,omitempty" json:"agencies,omitempty"`
	Stops    []Stop    `yaml:"stops" json:"stops" validate:"required,min=1,dive"`
	Segments []Segment `yaml:"segments,omitempty" json:"segments,omitempty" validate:"omitempty,dive,min=1"`
}

// DisplayName returns Name, or the id when the line has no name.
func (d Definition) DisplayName() string {
	if d.Name == "" {
		return d.ID
	}
	return d.Name
}

// HasSegments reports whether the line draws explicit segments instead of
// one route in stop order.
func (d Definition) HasSegments() bool {
	return len(d.Segments) > 0
}

// StopNames returns the display names of the line's stops in order.
func (d Definition) StopNames() []string {
	names := make([]string, len(d.Stops))
	for i, s := range d.Stops {
		names[i] = s.Name
	}
	return names
}

// Table is an ordered set of line definitions.
type Table struct {
	Lines []Definition `yaml:"lines" json:"lines" validate:"required,min=1,unique=ID,dive"`
}

// IDs returns line ids in declaration order.
func (t *Table) IDs() []string {
	ids := make([]string, len(t.Lines))
	for i, l := range t.Lines {
		ids[i] = l.ID
	}
	return ids
}

// Get returns the line with the given id.
func (t *Table) Get(id string) (Definition, bool) {
	for _, l := range t.Lines {
		if l.ID == id {
			return l, true
		}
	}
	return Definition{}, false
}

// Filter returns a table with only the lines keep accepts, in the same order.
func (t *Table) Filter(keep func(id string) bool) *Table {
	out := &Table{}
	for _, l := range t.Lines {
		if keep(l.ID) {
			out.Lines = append(out.Lines, l)
		}
	}
	return out
}

// StopCount returns the total number of stop references across all lines.
func (t *Table) StopCount() int {
	n := 0
	for _, l := range t.Lines {
		n += len(l.Stops)
	}
	return n
}
