package bundle

import (
	geo "github.com/paulmach/go.geojson"

	"github.com/agentstation/railmap/pkg/assembler"
)

// Collection is a GeoJSON FeatureCollection with optional collection-level
// properties, which go.geojson's own type does not carry.
type Collection struct {
	Type       string         `json:"type"`
	Features   []*geo.Feature `json:"features"`
	Properties any            `json:"properties,omitempty"`
}

// Summary is the collection-level properties object of features.json.
type Summary struct {
	TotalStations   int            `json:"totalStations"`
	StationsPerLine map[string]int `json:"stationsPerLine"`
}

// StationCollection renders resolved stops as Point features. Each feature
// carries its id both at the top level and in its properties.
func StationCollection(result *assembler.Result) *Collection {
	features := make([]*geo.Feature, 0, len(result.Features))
	for _, f := range result.Features {
		pf := geo.NewPointFeature(f.Coordinate.Position())
		pf.ID = f.ID
		pf.SetProperty("id", f.ID)
		pf.SetProperty("name", f.Name)
		pf.SetProperty("line", f.Line)
		if len(f.AlternateNames) > 0 {
			pf.SetProperty("alternate_names", f.AlternateNames)
		}
		features = append(features, pf)
	}

	return &Collection{
		Type:     "FeatureCollection",
		Features: features,
		Properties: Summary{
			TotalStations:   result.TotalStations(),
			StationsPerLine: result.StationsPerLine,
		},
	}
}

// RouteCollection renders routes as LineString features. Routes of lines
// with display metadata also carry name, colors and order.
func RouteCollection(result *assembler.Result) *Collection {
	features := make([]*geo.Feature, 0, len(result.Routes))
	for _, r := range result.Routes {
		lf := geo.NewLineStringFeature(r.Positions())
		lf.SetProperty("line", r.Line)
		if r.Segment > 0 {
			lf.SetProperty("segment", r.Segment)
		}
		if meta, ok := result.Lines[r.Line]; ok {
			lf.SetProperty("name", meta.Name)
			lf.SetProperty("color", meta.Color)
			lf.SetProperty("backgroundColor", meta.BackgroundColor)
			lf.SetProperty("textColor", meta.TextColor)
			lf.SetProperty("order", meta.Order)
		}
		features = append(features, lf)
	}

	return &Collection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
