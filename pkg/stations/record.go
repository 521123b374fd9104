// Package stations holds the station catalog and the token-subset resolver
// that matches loosely written stop names against it.
package stations

import (
	"fmt"
	"math"

	"github.com/agentstation/railmap/pkg/tokens"
)

// Coordinate is a WGS84 position in decimal degrees.
type Coordinate struct {
	Lon float64 `json:"lon" yaml:"lon"`
	Lat float64 `json:"lat" yaml:"lat"`
}

// CoordinateFrom converts a [lon, lat] pair. It reports false when the slice
// is not exactly two finite numbers.
func CoordinateFrom(values []float64) (Coordinate, bool) {
	if len(values) != 2 {
		return Coordinate{}, false
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Coordinate{}, false
		}
	}
	return Coordinate{Lon: values[0], Lat: values[1]}, true
}

// Position returns the coordinate as a GeoJSON [lon, lat] position.
func (c Coordinate) Position() []float64 {
	return []float64{c.Lon, c.Lat}
}

// String formats the coordinate as "lon,lat".
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lon, c.Lat)
}

// Record is one ingested station. Records are immutable once added.
type Record struct {
	Name       string     `json:"name" yaml:"name"`
	Coordinate Coordinate `json:"coordinate" yaml:"coordinate"`
	Agency     string     `json:"agency" yaml:"agency"`
	Tokens     tokens.Set `json:"-" yaml:"-"`
	Source     string     `json:"source,omitempty" yaml:"source,omitempty"`
}

// servesAny reports whether the record's agency is one of agencies.
func (r Record) servesAny(agencies []string) bool {
	for _, a := range agencies {
		if r.Agency == a {
			return true
		}
	}
	return false
}
