package geojson

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/railmap/pkg/errors"
	"github.com/agentstation/railmap/pkg/sources"
	"github.com/agentstation/railmap/pkg/stations"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stations.geojson")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func names(c *stations.Catalog) []string {
	var out []string
	for _, r := range c.Records() {
		out = append(out, r.Name+"|"+r.Agency)
	}
	return out
}

func TestLoad_GeometryWithFallbackFields(t *testing.T) {
	path := writeFile(t, `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-122.39, 37.79]},
     "properties": {"station_na": "Embarcadero", "agencyname": "BART"}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-122.40, 37.77]},
     "properties": {"station_na": "", "ts_locatio": "4th & King", "mode_": "Caltrain"}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-122.41, 37.78]},
     "properties": {"station_na": "Civic Center"}},
    {"type": "Feature", "geometry": null,
     "properties": {"station_na": "Nowhere"}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [1, 2]},
     "properties": {"other": "unnamed"}}
  ]
}`)
	src := New(sources.Config{
		ID:           "master",
		Type:         sources.TypeGeoJSON,
		NameFields:   []string{"station_na", "ts_locatio"},
		AgencyFields: []string{"agencyname", "mode_"},
		Coordinates:  sources.CoordinatesGeometry,
	}, path)

	c := stations.NewCatalog()
	stats, err := src.Load(context.Background(), c)
	require.NoError(t, err)

	assert.Equal(t, sources.Stats{Read: 5, Accepted: 3, Rejected: 2}, stats)
	assert.Equal(t, []string{"Embarcadero|BART", "4th & King|Caltrain", "Civic Center|Unknown"}, names(c))
	assert.Equal(t, "master", c.Records()[0].Source)
	assert.Equal(t, sources.ID("master"), src.ID())
	assert.Equal(t, sources.TypeGeoJSON, src.Type())
}

func TestLoad_PropertyCoordinatesWithSuffixVariant(t *testing.T) {
	path := writeFile(t, `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": null,
     "properties": {"STA_NAME": "Tasman", "LONG_": -121.93, "LAT": 37.41}},
    {"type": "Feature", "geometry": null,
     "properties": {"STA_NAME": "Alum Rock", "LONG_": null, "LAT": 37.37}}
  ]
}`)
	src := New(sources.Config{
		ID:            "vta",
		Type:          sources.TypeGeoJSON,
		Agency:        "Santa Clara VTA",
		NameFields:    []string{"STA_NAME"},
		Coordinates:   sources.CoordinatesProperties,
		LonFields:     []string{"LONG_"},
		LatFields:     []string{"LAT"},
		StationSuffix: true,
	}, path)

	c := stations.NewCatalog()
	stats, err := src.Load(context.Background(), c)
	require.NoError(t, err)

	assert.Equal(t, sources.Stats{Read: 2, Accepted: 2, Rejected: 2}, stats)
	assert.Equal(t, []string{"Tasman|Santa Clara VTA", "Tasman Station|Santa Clara VTA"}, names(c))
	assert.Equal(t, stations.Coordinate{Lon: -121.93, Lat: 37.41}, c.Records()[1].Coordinate)
}

func TestLoad_AutoModeAndTitleCase(t *testing.T) {
	path := writeFile(t, `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-121.41, 38.55]},
     "properties": {"STOP_NAM_1": "POWER INN STATION"}},
    {"type": "Feature", "geometry": null,
     "properties": {"STOP_NAM_1": "archives plaza", "LONG_AVG": "-121.50", "LAT_AVG": "38.58"}}
  ]
}`)
	src := New(sources.Config{
		ID:            "sacrt",
		Type:          sources.TypeGeoJSON,
		Agency:        "SacRT",
		NameFields:    []string{"STOP_NAM_1"},
		LonFields:     []string{"LONG_AVG", "LONG_WB_NB"},
		LatFields:     []string{"LAT_AVG", "LAT_WB_SB"},
		TitleCase:     true,
		StationSuffix: true,
	}, path)

	c := stations.NewCatalog()
	_, err := src.Load(context.Background(), c)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Power Inn Station|SacRT",
		"Archives Plaza|SacRT",
		"Archives Plaza Station|SacRT",
	}, names(c))
	assert.Equal(t, stations.Coordinate{Lon: -121.50, Lat: 38.58}, c.Records()[1].Coordinate)
}

func TestLoad_PointsMustHaveTwoComponents(t *testing.T) {
	path := writeFile(t, `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-122.27, 37.80]},
     "properties": {"name": "12th St Oakland City Center"}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-122.26, 37.81, 12.5]},
     "properties": {"name": "19th St Oakland"}}
  ]
}`)
	c := stations.NewCatalog()
	stats, err := New(sources.Config{
		ID:          "bart",
		Type:        sources.TypeGeoJSON,
		Agency:      "BART",
		Coordinates: sources.CoordinatesGeometry,
	}, path).Load(context.Background(), c)
	require.NoError(t, err)

	assert.Equal(t, sources.Stats{Read: 2, Accepted: 1, Rejected: 1}, stats)
	assert.Equal(t, []string{"12th St Oakland City Center|BART"}, names(c))
}

func TestLoad_Errors(t *testing.T) {
	src := New(sources.Config{ID: "x", Type: sources.TypeGeoJSON}, filepath.Join(t.TempDir(), "missing.geojson"))
	_, err := src.Load(context.Background(), stations.NewCatalog())
	require.Error(t, err)
	var ioErr *errors.IOError
	assert.True(t, errors.As(err, &ioErr))

	src = New(sources.Config{ID: "x", Type: sources.TypeGeoJSON}, writeFile(t, "not json"))
	_, err = src.Load(context.Background(), stations.NewCatalog())
	require.Error(t, err)
	var parseErr *errors.ParseError
	assert.True(t, errors.As(err, &parseErr))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Load(ctx, stations.NewCatalog())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFirstNumber(t *testing.T) {
	props := map[string]any{"a": nil, "b": "  ", "c": "12.5", "d": 3.0}

	v, ok := firstNumber(props, []string{"a", "b", "c", "d"})
	require.True(t, ok)
	assert.Equal(t, 12.5, v)

	_, ok = firstNumber(props, []string{"a", "b", "missing"})
	assert.False(t, ok)
}
