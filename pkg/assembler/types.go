package assembler

import (
	"fmt"
	"strings"

	"github.com/agentstation/railmap/pkg/errors"
	"github.com/agentstation/railmap/pkg/stations"
)

// Feature is one resolved stop, emitted as a station point.
type Feature struct {
	// ID is 1-based and global across all lines, in emission order.
	ID             int                 `json:"id" yaml:"id"`
	Name           string              `json:"name" yaml:"name"`
	Line           string              `json:"line" yaml:"line"`
	Coordinate     stations.Coordinate `json:"coordinate" yaml:"coordinate"`
	AlternateNames []string            `json:"alternate_names,omitempty" yaml:"alternate_names,omitempty"`

	// Station and Agency describe the catalog record the stop resolved to.
	Station string `json:"station" yaml:"station"`
	Agency  string `json:"agency" yaml:"agency"`
}

// Route is an ordered run of resolved coordinates for one line.
type Route struct {
	Line   string                `json:"line" yaml:"line"`
	Points []stations.Coordinate `json:"points" yaml:"points"`

	// Segment is the 1-based index of the explicit segment this route was
	// drawn from, or 0 for a route in stop order.
	Segment int `json:"segment,omitempty" yaml:"segment,omitempty"`
}

// Positions returns the route as GeoJSON positions.
func (r Route) Positions() [][]float64 {
	out := make([][]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Position()
	}
	return out
}

// MissingReference is a stop that matched no catalog record.
type MissingReference struct {
	Line        string `json:"line" yaml:"line"`
	DisplayName string `json:"name" yaml:"name"`
	MatchName   string `json:"match" yaml:"match"`
}

// String formats the reference the way it is reported on failure.
func (m MissingReference) String() string {
	return fmt.Sprintf("line=%s stop=%s match=%s", m.Line, m.DisplayName, m.MatchName)
}

// LineMeta is display metadata for a line that declares a color.
type LineMeta struct {
	ID              string `json:"-" yaml:"-"`
	Name            string `json:"name" yaml:"name"`
	Color           string `json:"color" yaml:"color"`
	BackgroundColor string `json:"backgroundColor" yaml:"backgroundColor"`
	TextColor       string `json:"textColor" yaml:"textColor"`
	Order           int    `json:"order" yaml:"order"`
}

// Result holds everything one assembly pass produced.
type Result struct {
	Features []Feature
	Routes   []Route

	// StationsPerLine counts resolved stops per line id. Every processed
	// line has an entry, including lines that resolved nothing.
	StationsPerLine map[string]int

	// LineOrder lists processed line ids in declaration order.
	LineOrder []string

	// Lines holds metadata for lines that declare a color, keyed by id.
	Lines map[string]LineMeta

	Missing []MissingReference
}

func newResult() *Result {
	return &Result{
		Features:        []Feature{},
		Routes:          []Route{},
		StationsPerLine: make(map[string]int),
		LineOrder:       []string{},
		Lines:           make(map[string]LineMeta),
		Missing:         []MissingReference{},
	}
}

// TotalStations returns the number of emitted features.
func (r *Result) TotalStations() int {
	return len(r.Features)
}

// IsComplete reports whether every stop resolved.
func (r *Result) IsComplete() bool {
	return len(r.Missing) == 0
}

// Err returns a *MissingError listing every unresolved stop, or nil.
func (r *Result) Err() error {
	if r.IsComplete() {
		return nil
	}
	missing := make([]MissingReference, len(r.Missing))
	copy(missing, r.Missing)
	return &MissingError{Missing: missing}
}

// Summary returns a one-line description of the result.
func (r *Result) Summary() string {
	if !r.IsComplete() {
		return fmt.Sprintf("Unable to locate %d stops", len(r.Missing))
	}
	return fmt.Sprintf("Wrote %d stations across %d lines", r.TotalStations(), len(r.StationsPerLine))
}

// MissingError reports every stop that failed to resolve in one pass.
type MissingError struct {
	Missing []MissingReference
}

// Error implements the error interface
func (e *MissingError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		parts[i] = m.String()
	}
	return fmt.Sprintf("unable to locate %d stops: %s", len(e.Missing), strings.Join(parts, "; "))
}

// Is implements errors.Is support
func (e *MissingError) Is(target error) bool {
	return target == errors.ErrUnresolved
}
