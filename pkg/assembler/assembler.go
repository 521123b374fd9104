// Package assembler turns line definitions into station features and route
// geometry by resolving every stop against a station catalog.
//
// One pass visits every stop of every line. A stop that cannot be resolved is
// recorded and the pass carries on, so a single run reports all of them.
package assembler

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/agentstation/railmap/pkg/colors"
	"github.com/agentstation/railmap/pkg/errors"
	"github.com/agentstation/railmap/pkg/lines"
	"github.com/agentstation/railmap/pkg/stations"
)

// Option configures a Build call.
type Option func(*options)

type options struct {
	logger zerolog.Logger
}

// WithLogger sets the logger used for per-stop debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Build resolves every line in defs against resolver, in declaration order.
//
// Unresolved stops are collected in Result.Missing and do not make Build fail;
// call Result.Err to turn them into an error. Build itself fails only for
// defects in the definitions: a segment naming a stop its line does not
// declare, or a line color that cannot be parsed. Both are *errors.ConfigError.
func Build(resolver stations.Resolver, defs []lines.Definition, opts ...Option) (*Result, error) {
	o := &options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(o)
	}

	a := &assembly{
		resolver: resolver,
		log:      o.logger,
		result:   newResult(),
		nextID:   1,
	}
	for order, def := range defs {
		if err := a.line(order, def); err != nil {
			return nil, err
		}
	}
	return a.result, nil
}

type assembly struct {
	resolver stations.Resolver
	log      zerolog.Logger
	result   *Result
	nextID   int
}

func (a *assembly) line(order int, def lines.Definition) error {
	log := a.log.With().Str("line", def.ID).Logger()

	r := a.result
	r.LineOrder = append(r.LineOrder, def.ID)
	r.StationsPerLine[def.ID] = 0

	if def.Color != "" {
		palette, err := colors.PaletteFor(def.Color)
		if err != nil {
			return errors.NewConfigError("line "+def.ID, "invalid color", err)
		}
		r.Lines[def.ID] = LineMeta{
			ID:              def.ID,
			Name:            def.DisplayName(),
			Color:           palette.Color,
			BackgroundColor: palette.BackgroundColor,
			TextColor:       palette.TextColor,
			Order:           order,
		}
	}

	var route []stations.Coordinate
	resolved := make(map[string]stations.Coordinate, len(def.Stops))

	for _, stop := range def.Stops {
		match := stop.MatchName()
		record, ok := Resolve(a.resolver, stop, def.Agencies)
		if !ok {
			log.Debug().Str("stop", stop.Name).Str("match", match).Msg("Stop not found in catalog")
			r.Missing = append(r.Missing, MissingReference{
				Line:        def.ID,
				DisplayName: stop.Name,
				MatchName:   match,
			})
			continue
		}

		route = append(route, record.Coordinate)
		resolved[stop.Name] = record.Coordinate

		r.Features = append(r.Features, Feature{
			ID:             a.nextID,
			Name:           stop.Name,
			Line:           def.ID,
			Coordinate:     record.Coordinate,
			AlternateNames: alternateNames(stop),
			Station:        record.Name,
			Agency:         record.Agency,
		})
		a.nextID++
		r.StationsPerLine[def.ID]++

		log.Debug().
			Str("stop", stop.Name).
			Str("station", record.Name).
			Str("agency", record.Agency).
			Msg("Resolved stop")
	}

	if def.HasSegments() {
		return a.segments(def, resolved)
	}
	if len(route) >= 2 {
		r.Routes = append(r.Routes, Route{Line: def.ID, Points: route})
	}
	return nil
}

// Resolve finds the station for one stop of a line. The line's agencies are
// preferred; when none of their stations match, any agency is accepted.
func Resolve(resolver stations.Resolver, stop lines.Stop, lineAgencies []string) (stations.Record, bool) {
	match := stop.MatchName()
	if record, ok := resolver.Find(match, lineAgencies); ok {
		return record, true
	}
	return resolver.Find(match, nil)
}

// segments emits one route per explicit segment. Names must be declared
// stops of the line; declared stops that failed to resolve are already
// recorded as missing and are left out of the segment.
func (a *assembly) segments(def lines.Definition, resolved map[string]stations.Coordinate) error {
	declared := make(map[string]struct{}, len(def.Stops))
	for _, s := range def.Stops {
		declared[s.Name] = struct{}{}
	}

	for i, seg := range def.Segments {
		var points []stations.Coordinate
		for _, name := range seg {
			if _, ok := declared[name]; !ok {
				return errors.NewConfigError(
					"line "+def.ID,
					fmt.Sprintf("segment %d references unknown station %q", i+1, name),
					nil,
				)
			}
			if coord, ok := resolved[name]; ok {
				points = append(points, coord)
			}
		}
		if len(points) >= 2 {
			a.result.Routes = append(a.result.Routes, Route{Line: def.ID, Points: points, Segment: i + 1})
		}
	}
	return nil
}

// alternateNames merges declared alternates with the match name when it
// differs from the display name, sorted and without duplicates.
func alternateNames(stop lines.Stop) []string {
	seen := make(map[string]struct{}, len(stop.Alternates)+1)
	for _, alt := range stop.Alternates {
		seen[alt] = struct{}{}
	}
	if match := stop.MatchName(); match != stop.Name {
		seen[match] = struct{}{}
	}
	if len(seen) == 0 {
		return nil
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
