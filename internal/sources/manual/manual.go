// Package manual feeds hand-entered station coordinates from the project
// file into the catalog. It covers stations missing from every published
// dataset.
package manual

import (
	"context"

	"github.com/agentstation/railmap/pkg/constants"
	"github.com/agentstation/railmap/pkg/sources"
)

// Source serves the stations listed in its config.
type Source struct {
	cfg sources.Config
}

// New creates a manual source.
func New(cfg sources.Config) *Source {
	return &Source{cfg: cfg}
}

// ID returns the configured source id.
func (s *Source) ID() sources.ID {
	return s.cfg.ID
}

// Type returns sources.TypeManual.
func (s *Source) Type() sources.Type {
	return sources.TypeManual
}

// Load adds every listed station. A station's own agency wins over the
// source agency, which defaults to "Manual".
func (s *Source) Load(ctx context.Context, sink sources.Sink) (sources.Stats, error) {
	var stats sources.Stats
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	fallback := s.cfg.Agency
	if fallback == "" {
		fallback = constants.ManualAgency
	}

	for _, st := range s.cfg.Stations {
		stats.Read++
		agency := st.Agency
		if agency == "" {
			agency = fallback
		}
		var coord []float64
		if st.Lon != nil && st.Lat != nil {
			coord = []float64{*st.Lon, *st.Lat}
		}
		stats.Record(sink, s.cfg.ID, st.Name, coord, agency)
	}
	return stats, nil
}
