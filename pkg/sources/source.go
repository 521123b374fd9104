// Package sources defines the interfaces and configuration for station data
// sources. Each source reads one external dataset and feeds its stations,
// as (name, coordinate, agency) rows, into a Sink such as the station catalog.
//
// Sources are loaded one after another in declaration order, which fixes the
// catalog's ingestion order and keeps resolution deterministic.
//
// Example usage:
//
//	list := sources.NewSources()
//	list.Add(src)
//	for _, src := range list.List() {
//	    stats, err := src.Load(ctx, catalog)
//	    ...
//	}
package sources

import (
	"context"
	"slices"
	"sync"
)

// ID identifies a configured source within a project.
type ID string

// String returns the string representation of a source id.
func (id ID) String() string {
	return string(id)
}

// Type names a source adapter.
type Type string

// Supported source types.
const (
	// TypeGeoJSON reads point features from a GeoJSON FeatureCollection.
	TypeGeoJSON Type = "geojson"
	// TypeGTFS reads stops.txt from a GTFS feed.
	TypeGTFS Type = "gtfs"
	// TypeManual takes stations listed inline in the project file.
	TypeManual Type = "manual"
)

// Types returns all supported source types.
func Types() []Type {
	return []Type{TypeGeoJSON, TypeGTFS, TypeManual}
}

// IsValid returns true if the type is one of the defined constants.
func (t Type) IsValid() bool {
	return slices.Contains(Types(), t)
}

// String returns the string representation of a source type.
func (t Type) String() string {
	return string(t)
}

// Sink receives station rows. It reports whether the row was accepted.
type Sink interface {
	AddFrom(source, name string, coord []float64, agency string) bool
}

// Source represents one station dataset.
type Source interface {
	// ID returns the configured id of this source
	ID() ID

	// Type returns the adapter type
	Type() Type

	// Load reads the dataset and adds every row to sink
	Load(ctx context.Context, sink Sink) (Stats, error)
}

// Stats counts what a Load call did.
type Stats struct {
	// Read is the number of rows seen in the dataset
	Read int `json:"read" yaml:"read"`
	// Accepted is the number of rows the sink kept
	Accepted int `json:"accepted" yaml:"accepted"`
	// Rejected is the number of rows the sink or adapter turned away
	Rejected int `json:"rejected" yaml:"rejected"`
}

// Record adds one row to sink and counts the outcome.
func (s *Stats) Record(sink Sink, source ID, name string, coord []float64, agency string) {
	if sink.AddFrom(string(source), name, coord, agency) {
		s.Accepted++
	} else {
		s.Rejected++
	}
}

// Sources is a thread-safe, ordered container of sources.
type Sources struct {
	mu      sync.RWMutex
	order   []ID
	sources map[ID]Source
}

// NewSources creates a new Sources instance.
func NewSources() *Sources {
	return &Sources{
		sources: make(map[ID]Source),
	}
}

// Add appends a source. A source with an id already present replaces the
// earlier one in place.
func (s *Sources) Add(src Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sources[src.ID()]; !exists {
		s.order = append(s.order, src.ID())
	}
	s.sources[src.ID()] = src
}

// Get returns a source by ID.
func (s *Sources) Get(id ID) (Source, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src, found := s.sources[id]
	return src, found
}

// Len returns the number of sources.
func (s *Sources) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// List returns the sources in the order they were added.
func (s *Sources) List() []Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Source, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sources[id])
	}
	return out
}

// IDs returns source ids in the order they were added.
func (s *Sources) IDs() []ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}
