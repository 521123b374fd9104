package bundle

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/railmap/pkg/assembler"
	"github.com/agentstation/railmap/pkg/errors"
	"github.com/agentstation/railmap/pkg/lines"
	"github.com/agentstation/railmap/pkg/stations"
)

func buildResult(t *testing.T, defs []lines.Definition) *assembler.Result {
	t.Helper()
	c := stations.NewCatalog()
	c.Add("Central Station", []float64{1.0, 2.0}, "X")
	c.Add("Harbor", []float64{3.0, 4.0}, "X")
	c.Add("Airport", []float64{-1.0, 5.0}, "Y")

	result, err := assembler.Build(c, defs)
	require.NoError(t, err)
	return result
}

func sampleDefs() []lines.Definition {
	return []lines.Definition{
		{
			ID:    "L1",
			Name:  "Harbor Line",
			Color: "#FFDD00",
			Stops: []lines.Stop{
				{Name: "Central", Match: "Central Station", Alternates: []string{"Centraal"}},
				{Name: "Harbor"},
			},
		},
		{ID: "L2", Stops: []lines.Stop{{Name: "Airport"}}},
	}
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var v map[string]any
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dist")
	result := buildResult(t, sampleDefs())

	manifest, err := Write(context.Background(), result, dir)
	require.NoError(t, err)

	features := readJSON(t, filepath.Join(dir, "features.json"))
	assert.Equal(t, "FeatureCollection", features["type"])
	assert.Equal(t, map[string]any{
		"totalStations":   float64(3),
		"stationsPerLine": map[string]any{"L1": float64(2), "L2": float64(1)},
	}, features["properties"])

	list := features["features"].([]any)
	require.Len(t, list, 3)
	first := list[0].(map[string]any)
	assert.Equal(t, float64(1), first["id"])
	assert.Equal(t, map[string]any{
		"id":              float64(1),
		"name":            "Central",
		"line":            "L1",
		"alternate_names": []any{"Centraal", "Central Station"},
	}, first["properties"])
	assert.Equal(t, map[string]any{"type": "Point", "coordinates": []any{1.0, 2.0}}, first["geometry"])

	second := list[1].(map[string]any)["properties"].(map[string]any)
	assert.NotContains(t, second, "alternate_names")

	routes := readJSON(t, filepath.Join(dir, "routes.json"))
	routeList := routes["features"].([]any)
	require.Len(t, routeList, 1, "L2 has a single stop")
	route := routeList[0].(map[string]any)
	assert.Equal(t, map[string]any{
		"line":            "L1",
		"name":            "Harbor Line",
		"color":           "#FFDD00",
		"backgroundColor": "#8C7900",
		"textColor":       "#000000",
		"order":           float64(0),
	}, route["properties"])
	assert.Equal(t, []any{[]any{1.0, 2.0}, []any{3.0, 4.0}}, route["geometry"].(map[string]any)["coordinates"])
	assert.NotContains(t, routes, "properties")

	meta := readJSON(t, filepath.Join(dir, "lines.json"))
	assert.Contains(t, meta, "L1")
	assert.NotContains(t, meta, "L2")

	assert.Equal(t, 3, manifest.Stations)
	assert.Equal(t, 2, manifest.Lines)
	assert.Equal(t, 1, manifest.Routes)
	assert.Equal(t, &Bounds{MinLon: -1, MinLat: 2, MaxLon: 3, MaxLat: 5}, manifest.Bounds)
	require.Len(t, manifest.Files, 3)

	data, err := os.ReadFile(filepath.Join(dir, "features.json"))
	require.NoError(t, err)
	assert.Equal(t, "features.json", manifest.Files[0].Path)
	assert.Equal(t, sha256Sum(data), manifest.Files[0].Checksum)
	assert.FileExists(t, filepath.Join(dir, "manifest.json"))
	assert.NoFileExists(t, filepath.Join(dir, "features.json.tmp"))
}

func TestWrite_RefusesIncompleteResult(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dist")
	defs := sampleDefs()
	defs[1].Stops = append(defs[1].Stops, lines.Stop{Name: "Atlantis"})
	result := buildResult(t, defs)

	_, err := Write(context.Background(), result, dir, WithSQLite(filepath.Join(dir, "db.sqlite")))
	require.Error(t, err)
	assert.True(t, errors.IsUnresolved(err))
	assert.NoDirExists(t, dir, "nothing may be written")
}

func TestWrite_Deterministic(t *testing.T) {
	base := t.TempDir()
	for _, name := range []string{"a", "b"} {
		_, err := Write(context.Background(), buildResult(t, sampleDefs()), filepath.Join(base, name))
		require.NoError(t, err)
	}

	for _, f := range []string{"features.json", "routes.json", "lines.json", "manifest.json"} {
		a, err := os.ReadFile(filepath.Join(base, "a", f))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(base, "b", f))
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), f)
	}
}

func TestWrite_FailedWriteKeepsPreviousBundle(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "dist")
	_, err := Write(context.Background(), buildResult(t, sampleDefs()), dir)
	require.NoError(t, err)

	before := make(map[string]string)
	for _, f := range []string{"features.json", "routes.json", "lines.json", "manifest.json"} {
		data, err := os.ReadFile(filepath.Join(dir, f))
		require.NoError(t, err)
		before[f] = string(data)
	}

	orig := writeFile
	t.Cleanup(func() { writeFile = orig })
	writeFile = func(path string, data []byte) error {
		if filepath.Base(path) == "lines.json" {
			return os.ErrPermission
		}
		return orig(path, data)
	}

	defs := sampleDefs()
	defs[0].Stops = defs[0].Stops[:1]
	_, err = Write(context.Background(), buildResult(t, defs), dir)
	require.Error(t, err)
	var ioErr *errors.IOError
	assert.True(t, errors.As(err, &ioErr))

	for f, want := range before {
		got, err := os.ReadFile(filepath.Join(dir, f))
		require.NoError(t, err)
		assert.Equal(t, want, string(got), f)
	}
	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	require.Len(t, entries, 1, "staging directory must be removed")
	assert.Equal(t, "dist", entries[0].Name())
}

func TestWrite_ReplacesBundleAndKeepsOtherFiles(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "dist")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("keep"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "features.json"), []byte("stale"), 0o644))

	_, err := Write(context.Background(), buildResult(t, sampleDefs()), dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "README.txt"))
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))

	features := readJSON(t, filepath.Join(dir, "features.json"))
	assert.Equal(t, "FeatureCollection", features["type"])

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "previous directory must be removed")
}

func TestExportSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "railmap.db")
	result := buildResult(t, sampleDefs())

	// Exporting twice must replace, not duplicate, rows.
	require.NoError(t, ExportSQLite(context.Background(), path, result))
	require.NoError(t, ExportSQLite(context.Background(), path, result))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM stations").Scan(&count))
	assert.Equal(t, 3, count)
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM routes WHERE line = 'L1'").Scan(&count))
	assert.Equal(t, 2, count)

	var alts, agency string
	require.NoError(t, db.QueryRow("SELECT alternate_names, agency FROM stations WHERE id = 1").Scan(&alts, &agency))
	assert.JSONEq(t, `["Centraal","Central Station"]`, alts)
	assert.Equal(t, "X", agency)

	var name string
	var stationCount, ord int
	require.NoError(t, db.QueryRow("SELECT name, ord, stations FROM lines WHERE id = 'L2'").Scan(&name, &ord, &stationCount))
	assert.Equal(t, "L2", name)
	assert.Equal(t, 1, ord)
	assert.Equal(t, 1, stationCount)
}

func TestComputeBounds(t *testing.T) {
	assert.Nil(t, ComputeBounds(nil))

	b := ComputeBounds([]assembler.Feature{
		{Coordinate: stations.Coordinate{Lon: 114.1, Lat: 22.3}},
		{Coordinate: stations.Coordinate{Lon: 114.3, Lat: 22.5}},
	})
	require.NotNil(t, b)
	assert.InDeltaSlice(t, []float64{114.2, 22.4}, b.Center(), 1e-9)
}
