// Package geojson reads stations from a GeoJSON FeatureCollection whose
// property names vary from one publisher to the next.
package geojson

import (
	"context"
	"os"
	"strconv"
	"strings"

	geo "github.com/paulmach/go.geojson"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/railmap/pkg/constants"
	"github.com/agentstation/railmap/pkg/errors"
	"github.com/agentstation/railmap/pkg/logging"
	"github.com/agentstation/railmap/pkg/sources"
)

// Default property names tried when a source configures none.
var (
	DefaultNameFields = []string{"name", "Name", "stop_name"}
	DefaultLonFields  = []string{"lon", "LON", "longitude", "LONG_"}
	DefaultLatFields  = []string{"lat", "LAT", "latitude"}
)

// Source loads stations from one GeoJSON file.
type Source struct {
	cfg    sources.Config
	path   string
	titler cases.Caser
}

// New creates a GeoJSON source. path is the resolved dataset path.
func New(cfg sources.Config, path string) *Source {
	if len(cfg.NameFields) == 0 {
		cfg.NameFields = DefaultNameFields
	}
	if len(cfg.LonFields) == 0 {
		cfg.LonFields = DefaultLonFields
	}
	if len(cfg.LatFields) == 0 {
		cfg.LatFields = DefaultLatFields
	}
	return &Source{
		cfg:    cfg,
		path:   path,
		titler: cases.Title(language.English),
	}
}

// ID returns the configured source id.
func (s *Source) ID() sources.ID {
	return s.cfg.ID
}

// Type returns sources.TypeGeoJSON.
func (s *Source) Type() sources.Type {
	return sources.TypeGeoJSON
}

// Load reads the file and adds one row per named feature, plus a
// "<name> Station" row when the station suffix variant is enabled.
func (s *Source) Load(ctx context.Context, sink sources.Sink) (sources.Stats, error) {
	var stats sources.Stats
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return stats, errors.WrapIO("read", s.path, err)
	}
	fc, err := geo.UnmarshalFeatureCollection(data)
	if err != nil {
		return stats, errors.WrapParse("geojson", s.path, err)
	}

	log := logging.FromContext(ctx)
	for _, f := range fc.Features {
		stats.Read++
		s.feature(f, sink, &stats, log)
	}
	return stats, nil
}

func (s *Source) feature(f *geo.Feature, sink sources.Sink, stats *sources.Stats, log *zerolog.Logger) {
	name := firstString(f.Properties, s.cfg.NameFields)
	if name == "" {
		stats.Rejected++
		log.Trace().Str("source", string(s.cfg.ID)).Interface("id", f.ID).Msg("Skipping feature without a name")
		return
	}
	if s.cfg.TitleCase {
		name = s.titler.String(name)
	}

	coord := s.coordinate(f)
	agency := s.agency(f.Properties)

	stats.Record(sink, s.cfg.ID, name, coord, agency)
	if s.cfg.StationSuffix && !strings.HasSuffix(name, constants.StationSuffix) {
		stats.Record(sink, s.cfg.ID, name+" "+constants.StationSuffix, coord, agency)
	}
}

// coordinate returns nil when no usable position is found; the sink rejects it.
func (s *Source) coordinate(f *geo.Feature) []float64 {
	switch s.cfg.Mode() {
	case sources.CoordinatesGeometry:
		return pointOf(f.Geometry)
	case sources.CoordinatesProperties:
		return s.propertyCoordinate(f.Properties)
	default:
		if p := pointOf(f.Geometry); p != nil {
			return p
		}
		return s.propertyCoordinate(f.Properties)
	}
}

// pointOf accepts only a two-component [lon, lat] point.
func pointOf(g *geo.Geometry) []float64 {
	if g == nil || !g.IsPoint() || len(g.Point) != 2 {
		return nil
	}
	return g.Point
}

func (s *Source) propertyCoordinate(props map[string]any) []float64 {
	lon, okLon := firstNumber(props, s.cfg.LonFields)
	lat, okLat := firstNumber(props, s.cfg.LatFields)
	if !okLon || !okLat {
		return nil
	}
	return []float64{lon, lat}
}

func (s *Source) agency(props map[string]any) string {
	if s.cfg.Agency != "" {
		return s.cfg.Agency
	}
	if a := firstString(props, s.cfg.AgencyFields); a != "" {
		return a
	}
	return constants.DefaultAgency
}

// firstString returns the first non-blank string property among keys.
func firstString(props map[string]any, keys []string) string {
	for _, k := range keys {
		if v, ok := props[k].(string); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// firstNumber returns the first numeric property among keys. Numeric
// strings are accepted; null and blank values are skipped.
func firstNumber(props map[string]any, keys []string) (float64, bool) {
	for _, k := range keys {
		switch v := props[k].(type) {
		case float64:
			return v, true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}
